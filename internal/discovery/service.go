// internal/discovery/service.go

package discovery

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/joinember/ember-backend/internal/common/logger"
	"github.com/joinember/ember-backend/internal/geo"
	"github.com/joinember/ember-backend/internal/presence"
	"github.com/joinember/ember-backend/internal/profile"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 100

	exhaustedMessage = "No more profiles match your filters right now. Try widening your preferences."
)

// Service is the discovery core: feed assembly, interaction recording and
// match resolution.
type Service interface {
	GetFeed(ctx context.Context, userID int64, page, limit int) (*FeedResult, error)
	GetNextUser(ctx context.Context, userID int64) (*NextUserResult, error)
	RecordInteraction(ctx context.Context, fromUserID, toUserID int64, interactionType InteractionType) (*InteractionResult, error)
	GetMatches(ctx context.Context, userID int64) ([]*MatchWithProfile, error)
	Unmatch(ctx context.Context, userID, matchID int64) error
	BuildExclusions(ctx context.Context, userID int64) (ExclusionSet, error)
}

// MatchNotifier pushes realtime match lifecycle events to connected
// clients. Optional dependency; nil means no realtime delivery.
type MatchNotifier interface {
	NotifyMatch(match *Match)
	NotifyUnmatch(match *Match, byUserID int64)
}

type service struct {
	profiles     ProfileStore
	users        UserStore
	candidates   CandidateSource
	interactions InteractionLog
	matches      MatchStore
	limiter      RateLimiter
	notifier     MatchNotifier

	minCompletion int
	defaultLimit  int
	maxLimit      int
	now           func() time.Time
}

// Options tunes the service; zero values fall back to defaults.
type Options struct {
	MinCompletion int
	DefaultLimit  int
	MaxLimit      int
	Limiter       RateLimiter
	Notifier      MatchNotifier
}

func NewService(profiles ProfileStore, users UserStore, candidates CandidateSource, interactions InteractionLog, matches MatchStore, opts Options) Service {
	minCompletion := opts.MinCompletion
	if minCompletion == 0 {
		minCompletion = 60
	}
	defaultLimit := opts.DefaultLimit
	if defaultLimit == 0 {
		defaultLimit = defaultFeedLimit
	}
	maxLimit := opts.MaxLimit
	if maxLimit == 0 {
		maxLimit = maxFeedLimit
	}
	limiter := opts.Limiter
	if limiter == nil {
		limiter = NoopLimiter{}
	}

	return &service{
		profiles:      profiles,
		users:         users,
		candidates:    candidates,
		interactions:  interactions,
		matches:       matches,
		limiter:       limiter,
		notifier:      opts.Notifier,
		minCompletion: minCompletion,
		defaultLimit:  defaultLimit,
		maxLimit:      maxLimit,
		now:           time.Now,
	}
}

// GetFeed returns one page of the discovery feed. The full eligible set is
// materialized and sorted newest-first, then sliced in memory, so page
// boundaries stay stable within a request.
func (s *service) GetFeed(ctx context.Context, userID int64, page, limit int) (*FeedResult, error) {
	page, limit = s.sanitizePagination(page, limit)

	eligible, fallbackLevel, err := s.eligibleCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := &FeedResult{
		Candidates:    []FeedCandidate{},
		Page:          page,
		Limit:         limit,
		Total:         len(eligible.candidates),
		FallbackLevel: fallbackLevel,
	}

	if len(eligible.candidates) == 0 {
		result.Message = exhaustedMessage
		RecordFeedRequest(eligible.label, 0)
		return result, nil
	}

	start := (page - 1) * limit
	if start < len(eligible.candidates) {
		end := start + limit
		if end > len(eligible.candidates) {
			end = len(eligible.candidates)
		}
		result.Candidates = s.decorate(eligible.requester, eligible.candidates[start:end])
	}

	RecordFeedRequest(eligible.label, len(result.Candidates))
	return result, nil
}

// GetNextUser returns the single best next candidate for a one-at-a-time
// swipe UI. An exhausted feed is a success with a nil profile, not an error.
func (s *service) GetNextUser(ctx context.Context, userID int64) (*NextUserResult, error) {
	eligible, _, err := s.eligibleCandidates(ctx, userID)
	if err != nil {
		return nil, err
	}

	if len(eligible.candidates) == 0 {
		return &NextUserResult{Message: exhaustedMessage}, nil
	}

	cards := s.decorate(eligible.requester, eligible.candidates[:1])
	return &NextUserResult{Candidate: &cards[0]}, nil
}

func (s *service) GetMatches(ctx context.Context, userID int64) ([]*MatchWithProfile, error) {
	matches, err := s.matches.ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	result := make([]*MatchWithProfile, 0, len(matches))
	for _, m := range matches {
		entry := &MatchWithProfile{Match: m}

		partner, err := s.profiles.GetByUserID(ctx, m.OtherUser(userID))
		if err == nil {
			entry.Profile = partner
			entry.ActiveStatus = presence.Classify(partner.LastActiveAt, now)
		} else if !errors.Is(err, profile.ErrProfileNotFound) {
			return nil, err
		}

		result = append(result, entry)
	}

	return result, nil
}

func (s *service) Unmatch(ctx context.Context, userID, matchID int64) error {
	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		return err
	}

	if !match.Involves(userID) {
		return ErrUnauthorized
	}

	if err := s.matches.Deactivate(ctx, matchID, userID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.NotifyUnmatch(match, userID)
	}

	return nil
}

// eligibleSet bundles the materialized candidate set with the requester
// profile and the relaxation step that produced it.
type eligibleSet struct {
	requester  *profile.Profile
	candidates []*profile.Profile
	label      string
}

// eligibleCandidates runs the shared discovery pipeline: touch activity,
// load the requester, build exclusions, plan the filter cascade, and execute
// steps until one returns candidates. Returns the fallback level (index of
// the step that produced results, or the last index when all were empty).
func (s *service) eligibleCandidates(ctx context.Context, userID int64) (*eligibleSet, int, error) {
	// Browsing discovery counts as activity.
	if err := s.users.TouchLastActive(ctx, userID); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("failed to touch last active")
	}

	requester, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			return nil, 0, ErrRequiresBasicInfo
		}
		return nil, 0, err
	}

	exclusions, err := s.BuildExclusions(ctx, userID)
	if err != nil {
		return nil, 0, err
	}

	steps, err := PlanQuery(plannerInput{
		HasBasicInfo:   requester.HasBasicInfo(),
		AgeRangeMin:    requester.AgeRangeMin,
		AgeRangeMax:    requester.AgeRangeMax,
		LookingFor:     requester.LookingFor,
		HasLocation:    requester.HasLocation(),
		Latitude:       requester.Latitude,
		Longitude:      requester.Longitude,
		DistancePrefKm: requester.DistancePrefKm,
	}, exclusions.IDs(), s.minCompletion)
	if err != nil {
		return nil, 0, err
	}

	var (
		candidates []*profile.Profile
		level      int
		label      string
	)
	for i, step := range steps {
		candidates, err = s.candidates.FindCandidates(ctx, &step)
		if err != nil {
			return nil, 0, err
		}
		level, label = i, step.Label
		if len(candidates) > 0 {
			break
		}
	}

	// Belt and braces: the store already excludes these ids, but the feed
	// must never leak an excluded candidate.
	filtered := candidates[:0]
	for _, c := range candidates {
		if !exclusions.Contains(c.UserID) {
			filtered = append(filtered, c)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	return &eligibleSet{requester: requester, candidates: filtered, label: label}, level, nil
}

// decorate attaches the per-request derived fields (rounded distance,
// presence bucket) to each candidate card.
func (s *service) decorate(requester *profile.Profile, candidates []*profile.Profile) []FeedCandidate {
	now := s.now()
	cards := make([]FeedCandidate, 0, len(candidates))

	for _, c := range candidates {
		card := FeedCandidate{
			Profile:      c,
			ActiveStatus: presence.Classify(c.LastActiveAt, now),
		}

		if requester.HasLocation() && c.HasLocation() {
			km := int(math.Round(geo.DistanceKm(requester.Latitude, requester.Longitude, c.Latitude, c.Longitude)))
			card.DistanceKm = &km
		}

		cards = append(cards, card)
	}

	return cards
}

// sanitizePagination floors page at 1 and clamps limit into (0, max],
// defaulting unset limits.
func (s *service) sanitizePagination(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > s.maxLimit {
		limit = s.maxLimit
	}
	return page, limit
}
