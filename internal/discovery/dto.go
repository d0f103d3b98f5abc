// internal/discovery/dto.go
package discovery

import (
	"github.com/joinember/ember-backend/internal/presence"
	"github.com/joinember/ember-backend/internal/profile"
)

// DTOs for API requests/responses

type InteractionRequest struct {
	TargetUserID int64  `json:"target_user_id" validate:"required"`
	Type         string `json:"type" validate:"omitempty,oneof=like superlike"`
}

// FeedCandidate is one discovery card: the candidate profile plus the
// per-request derived distance and presence payload.
type FeedCandidate struct {
	Profile      *profile.Profile      `json:"profile"`
	DistanceKm   *int                  `json:"distance_km,omitempty"`
	ActiveStatus presence.ActiveStatus `json:"active_status"`
}

// FeedResult is a page of the discovery feed. FallbackLevel reports how many
// relaxation steps were needed (0 = strict filter matched).
type FeedResult struct {
	Candidates    []FeedCandidate `json:"profiles"`
	Page          int             `json:"page"`
	Limit         int             `json:"limit"`
	Total         int             `json:"total"`
	FallbackLevel int             `json:"fallback_level"`
	Message       string          `json:"message,omitempty"`
}

// NextUserResult carries at most one candidate. A nil Candidate with a
// message means the feed is exhausted — that is a success, not an error.
type NextUserResult struct {
	Candidate *FeedCandidate `json:"profile"`
	Message   string         `json:"message,omitempty"`
}

// InteractionResult is the outcome of a recorded like/pass.
type InteractionResult struct {
	Interaction *Interaction `json:"interaction"`
	IsMatch     bool         `json:"is_match"`
	Match       *Match       `json:"match,omitempty"`
}

// MatchWithProfile is a match row enriched with the partner's profile card.
type MatchWithProfile struct {
	Match        *Match                `json:"match"`
	Profile      *profile.Profile      `json:"profile,omitempty"`
	ActiveStatus presence.ActiveStatus `json:"active_status"`
}
