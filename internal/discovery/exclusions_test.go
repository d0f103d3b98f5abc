package discovery

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExclusionsUnionsAllSources(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.interactions.Create(ctx, &Interaction{FromUserID: 1, ToUserID: 10, Type: InteractionLike}))
	require.NoError(t, f.interactions.Create(ctx, &Interaction{FromUserID: 1, ToUserID: 11, Type: InteractionPass}))
	_, err := f.matches.Create(ctx, &Match{User1ID: 1, User2ID: 12})
	require.NoError(t, err)
	f.profiles.blocked[1] = []int64{13}

	set, err := f.svc.BuildExclusions(ctx, 1)
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 10, 11, 12, 13}, set.IDs())
	assert.True(t, set.Contains(1), "self is always excluded")
	assert.False(t, set.Contains(14))
}

func TestBuildExclusionsAlwaysContainsSelf(t *testing.T) {
	f := newFixture(t)

	set, err := f.svc.BuildExclusions(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, []int64{42}, set.IDs())
}

func TestBuildExclusionsIgnoresInactiveMatches(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	match := &Match{User1ID: 1, User2ID: 2}
	_, err := f.matches.Create(ctx, match)
	require.NoError(t, err)
	require.NoError(t, f.matches.Deactivate(ctx, match.ID, 1))

	set, err := f.svc.BuildExclusions(ctx, 1)
	require.NoError(t, err)

	// The unmatch drops the partner from the match exclusion, but the
	// original like still occupies the interaction slot in real flows.
	assert.False(t, set.Contains(2))
}
