package discovery

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/joinember/ember-backend/internal/geo"
	"github.com/joinember/ember-backend/internal/profile"
)

// In-memory fakes for the store contracts so the service tests run without
// postgres.

type fakeProfileStore struct {
	profiles map[int64]*profile.Profile
	blocked  map[int64][]int64
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		profiles: make(map[int64]*profile.Profile),
		blocked:  make(map[int64][]int64),
	}
}

func (s *fakeProfileStore) GetByUserID(ctx context.Context, userID int64) (*profile.Profile, error) {
	p, ok := s.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

func (s *fakeProfileStore) GetBlockedUsers(ctx context.Context, userID int64) ([]int64, error) {
	return s.blocked[userID], nil
}

type fakeUserStore struct {
	touched []int64
}

func (s *fakeUserStore) TouchLastActive(ctx context.Context, id int64) error {
	s.touched = append(s.touched, id)
	return nil
}

// fakeCandidateSource filters its pool the way the postgres query does:
// eligibility basics first, then the optional dimensions of the filter.
type fakeCandidateSource struct {
	pool  []*profile.Profile
	calls []CandidateFilter
}

func (s *fakeCandidateSource) FindCandidates(ctx context.Context, filter *CandidateFilter) ([]*profile.Profile, error) {
	s.calls = append(s.calls, *filter)

	excluded := make(map[int64]bool, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = true
	}
	genders := make(map[string]bool, len(filter.Genders))
	for _, g := range filter.Genders {
		genders[g] = true
	}

	var out []*profile.Profile
	for _, p := range s.pool {
		if !p.IsVisible || !p.OnboardingCompleted {
			continue
		}
		if p.CompletionPercentage < filter.MinCompletion {
			continue
		}
		if excluded[p.UserID] {
			continue
		}
		if len(genders) > 0 && !genders[p.Gender] {
			continue
		}
		if filter.AgeMin != nil && p.Age < *filter.AgeMin {
			continue
		}
		if filter.AgeMax != nil && p.Age > *filter.AgeMax {
			continue
		}
		if filter.MaxDistanceM != nil {
			if !p.HasLocation() {
				continue
			}
			meters := geo.DistanceKm(filter.CenterLat, filter.CenterLon, p.Latitude, p.Longitude) * 1000
			if meters > float64(*filter.MaxDistanceM) {
				continue
			}
		}
		out = append(out, p)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

type fakeInteractionLog struct {
	mu     sync.Mutex
	items  map[[2]int64]*Interaction
	nextID int64
}

func newFakeInteractionLog() *fakeInteractionLog {
	return &fakeInteractionLog{items: make(map[[2]int64]*Interaction)}
}

func (l *fakeInteractionLog) Create(ctx context.Context, interaction *Interaction) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	key := [2]int64{interaction.FromUserID, interaction.ToUserID}
	if _, ok := l.items[key]; ok {
		return ErrAlreadyInteracted
	}

	l.nextID++
	interaction.ID = l.nextID
	interaction.CreatedAt = time.Now()
	stored := *interaction
	l.items[key] = &stored

	return nil
}

func (l *fakeInteractionLog) Get(ctx context.Context, fromUserID, toUserID int64) (*Interaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	interaction, ok := l.items[[2]int64{fromUserID, toUserID}]
	if !ok {
		return nil, ErrInteractionNotFound
	}
	return interaction, nil
}

func (l *fakeInteractionLog) ListActedUserIDs(ctx context.Context, fromUserID int64) ([]int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	var ids []int64
	for key := range l.items {
		if key[0] == fromUserID {
			ids = append(ids, key[1])
		}
	}
	return ids, nil
}

type fakeMatchStore struct {
	mu      sync.Mutex
	matches []*Match
	nextID  int64
}

func (s *fakeMatchStore) Create(ctx context.Context, match *Match) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user1, user2 := CanonicalPair(match.User1ID, match.User2ID)
	for _, m := range s.matches {
		if m.User1ID == user1 && m.User2ID == user2 {
			*match = *m
			return false, nil
		}
	}

	s.nextID++
	match.ID = s.nextID
	match.User1ID, match.User2ID = user1, user2
	match.MatchedAt = time.Now()
	match.IsActive = true
	stored := *match
	s.matches = append(s.matches, &stored)

	return true, nil
}

func (s *fakeMatchStore) GetByID(ctx context.Context, id int64) (*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.matches {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, ErrMatchNotFound
}

func (s *fakeMatchStore) ListActiveByUser(ctx context.Context, userID int64) ([]*Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*Match
	for _, m := range s.matches {
		if m.IsActive && m.Involves(userID) {
			out = append(out, m)
		}
	}
	return out, nil
}

func (s *fakeMatchStore) ListActivePartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var ids []int64
	for _, m := range s.matches {
		if m.IsActive && m.Involves(userID) {
			ids = append(ids, m.OtherUser(userID))
		}
	}
	return ids, nil
}

func (s *fakeMatchStore) Deactivate(ctx context.Context, matchID, byUserID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.matches {
		if m.ID == matchID && m.IsActive {
			now := time.Now()
			m.IsActive = false
			m.UnmatchedBy = &byUserID
			m.UnmatchedAt = &now
			return nil
		}
	}
	return ErrMatchNotFound
}

type denyLimiter struct{}

func (denyLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	return false, nil
}
