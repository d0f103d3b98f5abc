// internal/discovery/stores.go
//
// Store contracts consumed by the discovery core. The postgres repository in
// this package implements the candidate/interaction/match contracts; the
// profile and user repositories satisfy theirs structurally. Tests swap in
// in-memory fakes.

package discovery

import (
	"context"

	"github.com/joinember/ember-backend/internal/profile"
)

// ProfileStore is the slice of the profile repository discovery needs.
type ProfileStore interface {
	GetByUserID(ctx context.Context, userID int64) (*profile.Profile, error)
	GetBlockedUsers(ctx context.Context, userID int64) ([]int64, error)
}

// UserStore is the slice of the user repository discovery needs.
type UserStore interface {
	TouchLastActive(ctx context.Context, id int64) error
}

// CandidateSource executes one planned filter and returns the full eligible
// candidate set sorted by profile creation time descending.
type CandidateSource interface {
	FindCandidates(ctx context.Context, filter *CandidateFilter) ([]*profile.Profile, error)
}

// InteractionLog is the append-only like/pass log. Create must enforce
// uniqueness of the ordered (from, to) pair and report ErrAlreadyInteracted
// on a duplicate.
type InteractionLog interface {
	Create(ctx context.Context, interaction *Interaction) error
	Get(ctx context.Context, fromUserID, toUserID int64) (*Interaction, error)
	ListActedUserIDs(ctx context.Context, fromUserID int64) ([]int64, error)
}

// MatchStore holds the materialized matches. Create must enforce uniqueness
// of the unordered pair: on conflict it loads the existing row and reports
// created=false, so two racing reciprocal likes still end with exactly one
// match row.
type MatchStore interface {
	Create(ctx context.Context, match *Match) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*Match, error)
	ListActiveByUser(ctx context.Context, userID int64) ([]*Match, error)
	ListActivePartnerIDs(ctx context.Context, userID int64) ([]int64, error)
	Deactivate(ctx context.Context, matchID, byUserID int64) error
}
