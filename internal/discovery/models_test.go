package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanonicalPair(t *testing.T) {
	a, b := CanonicalPair(7, 3)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(7), b)

	a, b = CanonicalPair(3, 7)
	assert.Equal(t, int64(3), a)
	assert.Equal(t, int64(7), b)
}

func TestInteractionTypeCountsTowardMatch(t *testing.T) {
	assert.True(t, InteractionLike.CountsTowardMatch())
	assert.True(t, InteractionSuperlike.CountsTowardMatch())
	assert.False(t, InteractionPass.CountsTowardMatch())
}

func TestClassifyPair(t *testing.T) {
	like := &Interaction{Type: InteractionLike}
	superlike := &Interaction{Type: InteractionSuperlike}
	pass := &Interaction{Type: InteractionPass}

	tests := []struct {
		name string
		aToB *Interaction
		bToA *Interaction
		want PairState
	}{
		{"neither acted", nil, nil, PairNone},
		{"one-sided like", like, nil, PairOneSidedLike},
		{"one-sided like reversed", nil, like, PairOneSidedLike},
		{"one-sided pass", pass, nil, PairOneSidedPass},
		{"mutual like", like, like, PairMatched},
		{"superlike meets like", superlike, like, PairMatched},
		{"like meets pass", like, pass, PairMixed},
		{"pass meets like", pass, like, PairMixed},
		{"mutual pass", pass, pass, PairMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyPair(tt.aToB, tt.bToA))
		})
	}
}

func TestMatchOtherUser(t *testing.T) {
	m := &Match{User1ID: 3, User2ID: 7}

	assert.Equal(t, int64(7), m.OtherUser(3))
	assert.Equal(t, int64(3), m.OtherUser(7))
	assert.True(t, m.Involves(3))
	assert.True(t, m.Involves(7))
	assert.False(t, m.Involves(5))
}
