package discovery

import "time"

// InteractionType is the kind of directional decision a user makes on a
// candidate.
type InteractionType string

const (
	InteractionLike      InteractionType = "like"
	InteractionPass      InteractionType = "pass"
	InteractionSuperlike InteractionType = "superlike"
)

// CountsTowardMatch reports whether this interaction type can satisfy the
// reciprocity check. A pass occupies the exclusion slot but never matches.
func (t InteractionType) CountsTowardMatch() bool {
	return t == InteractionLike || t == InteractionSuperlike
}

// Valid reports whether the type is one of the three known kinds.
func (t InteractionType) Valid() bool {
	return t == InteractionLike || t == InteractionPass || t == InteractionSuperlike
}

// Interaction is an append-only directional edge. One row per ordered
// (from, to) pair, enforced by a unique constraint at the write path; rows
// are never updated or deleted.
type Interaction struct {
	ID         int64           `json:"id" db:"id"`
	FromUserID int64           `json:"from_user_id" db:"from_user_id"`
	ToUserID   int64           `json:"to_user_id" db:"to_user_id"`
	Type       InteractionType `json:"type" db:"type"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}

// Match is the undirected edge materialized when two opposite-direction
// likes exist for a pair. User1ID < User2ID always (canonical ordering), and
// the unordered pair is unique, so the same two users can never hold two
// match rows — even across unmatches.
type Match struct {
	ID            int64      `json:"id" db:"id"`
	User1ID       int64      `json:"user1_id" db:"user1_id"`
	User2ID       int64      `json:"user2_id" db:"user2_id"`
	MatchedAt     time.Time  `json:"matched_at" db:"matched_at"`
	IsActive      bool       `json:"is_active" db:"is_active"`
	UnmatchedBy   *int64     `json:"unmatched_by,omitempty" db:"unmatched_by"`
	UnmatchedAt   *time.Time `json:"unmatched_at,omitempty" db:"unmatched_at"`
	LastMessageAt *time.Time `json:"last_message_at,omitempty" db:"last_message_at"`
}

// OtherUser returns the match partner of the given user.
func (m *Match) OtherUser(userID int64) int64 {
	if m.User1ID == userID {
		return m.User2ID
	}
	return m.User1ID
}

// Involves reports whether the user is one of the two parties.
func (m *Match) Involves(userID int64) bool {
	return m.User1ID == userID || m.User2ID == userID
}

// CanonicalPair orders two user ids so the smaller one comes first. Matches
// are always stored and looked up on the canonical pair.
func CanonicalPair(a, b int64) (int64, int64) {
	if a > b {
		return b, a
	}
	return a, b
}

// PairState is the explicit state of an unordered pair, computed from the
// two possible directional interactions.
type PairState int

const (
	// PairNone: neither side has acted.
	PairNone PairState = iota
	// PairOneSidedLike: exactly one side has liked, the other has not acted.
	PairOneSidedLike
	// PairOneSidedPass: exactly one side has passed, the other has not acted.
	PairOneSidedPass
	// PairMixed: both sides acted but at least one passed. Terminal, no match.
	PairMixed
	// PairMatched: both sides liked (or superliked). The pair matches.
	PairMatched
)

// ClassifyPair derives the pair state from the two directional interactions
// (either may be nil). A pass in either direction is terminal for the pair:
// only two opposite likes produce PairMatched.
func ClassifyPair(aToB, bToA *Interaction) PairState {
	switch {
	case aToB == nil && bToA == nil:
		return PairNone
	case aToB == nil || bToA == nil:
		acted := aToB
		if acted == nil {
			acted = bToA
		}
		if acted.Type.CountsTowardMatch() {
			return PairOneSidedLike
		}
		return PairOneSidedPass
	case aToB.Type.CountsTowardMatch() && bToA.Type.CountsTowardMatch():
		return PairMatched
	default:
		return PairMixed
	}
}
