package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joinember/ember-backend/internal/profile"
)

type fixture struct {
	profiles     *fakeProfileStore
	users        *fakeUserStore
	candidates   *fakeCandidateSource
	interactions *fakeInteractionLog
	matches      *fakeMatchStore
	svc          Service
}

func newFixture(t *testing.T, opts ...Options) *fixture {
	t.Helper()

	f := &fixture{
		profiles:     newFakeProfileStore(),
		users:        &fakeUserStore{},
		candidates:   &fakeCandidateSource{},
		interactions: newFakeInteractionLog(),
		matches:      &fakeMatchStore{},
	}

	o := Options{}
	if len(opts) > 0 {
		o = opts[0]
	}
	f.svc = NewService(f.profiles, f.users, f.candidates, f.interactions, f.matches, o)

	return f
}

// addProfile registers a profile as both a requester and a candidate.
func (f *fixture) addProfile(p *profile.Profile) {
	f.profiles.profiles[p.UserID] = p
	f.candidates.pool = append(f.candidates.pool, p)
}

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

// swipeReady builds a profile that passes both discovery gates.
func swipeReady(userID int64, gender string, age int, createdAt time.Time) *profile.Profile {
	personality := profile.TraitMap{}
	for _, axis := range profile.PersonalityAxes {
		personality[axis] = "balanced"
	}
	dealbreakers := profile.TraitMap{}
	for _, axis := range profile.MandatoryDealbreakers {
		dealbreakers[axis] = "open"
	}

	photos := make(profile.PhotoList, 0, 4)
	for i := 0; i < 4; i++ {
		photos = append(photos, profile.Photo{URL: "https://cdn.example.com/p.jpg", IsMain: i == 0, Position: i})
	}

	lastActive := createdAt
	return &profile.Profile{
		UserID:               userID,
		DisplayName:          "User",
		Age:                  age,
		Gender:               gender,
		Orientation:          "straight",
		LookingFor:           pq.StringArray{"everyone"},
		City:                 strPtr("London"),
		Latitude:             51.5074,
		Longitude:            -0.1278,
		AgeRangeMin:          intPtr(18),
		AgeRangeMax:          intPtr(99),
		Interests:            pq.StringArray{"music", "hiking", "food"},
		Personality:          personality,
		Dealbreakers:         dealbreakers,
		Photos:               photos,
		Bio:                  strPtr("hello"),
		CompletionPercentage: 100,
		OnboardingCompleted:  true,
		IsVisible:            true,
		CreatedAt:            createdAt,
		UpdatedAt:            createdAt,
		LastActiveAt:         &lastActive,
	}
}

func TestGetFeedExcludesActedBlockedAndMatched(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	me := swipeReady(1, "male", 30, base)
	f.addProfile(me)
	for i := int64(2); i <= 6; i++ {
		f.addProfile(swipeReady(i, "female", 25, base.Add(time.Duration(i)*time.Minute)))
	}

	// Already passed on 2, blocked 3, active match with 4.
	require.NoError(t, f.interactions.Create(context.Background(), &Interaction{FromUserID: 1, ToUserID: 2, Type: InteractionPass}))
	f.profiles.blocked[1] = []int64{3}
	_, err := f.matches.Create(context.Background(), &Match{User1ID: 1, User2ID: 4})
	require.NoError(t, err)

	feed, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)

	var ids []int64
	for _, c := range feed.Candidates {
		ids = append(ids, c.Profile.UserID)
	}
	assert.ElementsMatch(t, []int64{5, 6}, ids)
	assert.NotContains(t, ids, int64(1), "feed must never contain the requester")
	assert.Equal(t, 2, feed.Total)
}

func TestGetFeedRequiresBasicInfo(t *testing.T) {
	f := newFixture(t)

	p := swipeReady(1, "male", 30, time.Now())
	p.Gender = ""
	f.addProfile(p)

	_, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	assert.ErrorIs(t, err, ErrRequiresBasicInfo)
}

func TestGetFeedMissingProfileIsBasicInfoFailure(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetFeed(context.Background(), 99, 1, 20)
	assert.ErrorIs(t, err, ErrRequiresBasicInfo)
}

func TestGetFeedPaginationDisjointAndOrdered(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-48 * time.Hour)

	f.addProfile(swipeReady(1, "male", 30, base))
	for i := int64(2); i <= 8; i++ {
		f.addProfile(swipeReady(i, "female", 25, base.Add(time.Duration(i)*time.Hour)))
	}

	page1, err := f.svc.GetFeed(context.Background(), 1, 1, 3)
	require.NoError(t, err)
	page2, err := f.svc.GetFeed(context.Background(), 1, 2, 3)
	require.NoError(t, err)
	page3, err := f.svc.GetFeed(context.Background(), 1, 3, 3)
	require.NoError(t, err)

	collect := func(r *FeedResult) []int64 {
		var ids []int64
		for _, c := range r.Candidates {
			ids = append(ids, c.Profile.UserID)
		}
		return ids
	}

	// Newest first, pages disjoint, union covers the whole set.
	assert.Equal(t, []int64{8, 7, 6}, collect(page1))
	assert.Equal(t, []int64{5, 4, 3}, collect(page2))
	assert.Equal(t, []int64{2}, collect(page3))
	assert.Equal(t, 7, page1.Total)
}

func TestGetFeedPaginationSanitized(t *testing.T) {
	f := newFixture(t)
	f.addProfile(swipeReady(1, "male", 30, time.Now()))

	feed, err := f.svc.GetFeed(context.Background(), 1, 0, -5)
	require.NoError(t, err)
	assert.Equal(t, 1, feed.Page)
	assert.Equal(t, 20, feed.Limit)

	feed, err = f.svc.GetFeed(context.Background(), 1, 1, 5000)
	require.NoError(t, err)
	assert.Equal(t, 100, feed.Limit)
}

func TestGetFeedFallbackRelaxesAgeThenGeo(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	me := swipeReady(1, "male", 30, base)
	me.AgeRangeMin = intPtr(25)
	me.AgeRangeMax = intPtr(30)
	me.DistancePrefKm = intPtr(50)
	f.addProfile(me)

	// In range geographically but outside the age preference.
	older := swipeReady(2, "female", 45, base)
	f.addProfile(older)

	feed, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)

	require.Len(t, feed.Candidates, 1)
	assert.Equal(t, int64(2), feed.Candidates[0].Profile.UserID)
	assert.Equal(t, 1, feed.FallbackLevel, "age filter should be dropped first")
	require.Len(t, f.candidates.calls, 2)
	assert.Equal(t, "strict", f.candidates.calls[0].Label)
	assert.Equal(t, "no_age", f.candidates.calls[1].Label)
}

func TestGetFeedFallbackDropsGeoLast(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	me := swipeReady(1, "male", 30, base)
	me.AgeRangeMin = intPtr(25)
	me.AgeRangeMax = intPtr(35)
	me.DistancePrefKm = intPtr(50)
	f.addProfile(me)

	// Right age, but in Paris (~344km from the fixture's London coords).
	far := swipeReady(2, "female", 30, base)
	far.Latitude, far.Longitude = 48.8566, 2.3522
	f.addProfile(far)

	feed, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)

	require.Len(t, feed.Candidates, 1)
	assert.Equal(t, 2, feed.FallbackLevel)
	require.Len(t, f.candidates.calls, 3)
	assert.Equal(t, "no_age_no_geo", f.candidates.calls[2].Label)
}

func TestGetFeedLookingForEveryoneSpansAllGenders(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	f.addProfile(swipeReady(1, "male", 30, base))
	f.addProfile(swipeReady(2, "female", 28, base.Add(time.Minute)))
	f.addProfile(swipeReady(3, "male", 29, base.Add(2*time.Minute)))
	other := swipeReady(4, "other", 31, base.Add(3*time.Minute))
	f.addProfile(other)

	feed, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)

	var genders []string
	for _, c := range feed.Candidates {
		genders = append(genders, c.Profile.Gender)
	}
	assert.ElementsMatch(t, []string{"female", "male", "other"}, genders)
}

func TestGetFeedBelowCompletionThresholdHidden(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	f.addProfile(swipeReady(1, "male", 30, base))

	low := swipeReady(2, "female", 28, base)
	low.CompletionPercentage = 55
	f.addProfile(low)

	feed, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, feed.Candidates)
	assert.NotEmpty(t, feed.Message)
}

func TestGetFeedDistanceAndPresenceDecoration(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	f.addProfile(swipeReady(1, "male", 30, base))

	paris := swipeReady(2, "female", 28, base)
	paris.Latitude, paris.Longitude = 48.8566, 2.3522
	online := time.Now()
	paris.LastActiveAt = &online
	f.addProfile(paris)

	noFix := swipeReady(3, "female", 28, base.Add(-time.Minute))
	noFix.Latitude, noFix.Longitude = 0, 0
	noFix.LastActiveAt = nil
	f.addProfile(noFix)

	feed, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	require.Len(t, feed.Candidates, 2)

	withDistance := feed.Candidates[0]
	require.NotNil(t, withDistance.DistanceKm)
	assert.InDelta(t, 344, *withDistance.DistanceKm, 5)
	assert.Equal(t, "online", string(withDistance.ActiveStatus.Status))

	withoutFix := feed.Candidates[1]
	assert.Nil(t, withoutFix.DistanceKm, "distance is omitted when either side lacks coordinates")
	assert.Equal(t, "offline", string(withoutFix.ActiveStatus.Status))
}

func TestGetFeedTouchesLastActive(t *testing.T) {
	f := newFixture(t)
	f.addProfile(swipeReady(1, "male", 30, time.Now()))

	_, err := f.svc.GetFeed(context.Background(), 1, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, f.users.touched)
}

func TestGetNextUserReturnsNewestCandidate(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	f.addProfile(swipeReady(1, "male", 30, base))
	f.addProfile(swipeReady(2, "female", 28, base.Add(time.Minute)))
	f.addProfile(swipeReady(3, "female", 28, base.Add(time.Hour)))

	next, err := f.svc.GetNextUser(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, next.Candidate)
	assert.Equal(t, int64(3), next.Candidate.Profile.UserID)
}

func TestGetNextUserExhaustedIsSuccess(t *testing.T) {
	f := newFixture(t)
	f.addProfile(swipeReady(1, "male", 30, time.Now()))

	next, err := f.svc.GetNextUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Nil(t, next.Candidate)
	assert.NotEmpty(t, next.Message)
}

func TestGetMatchesEnrichesPartnerProfiles(t *testing.T) {
	f := newFixture(t)
	base := time.Now().Add(-24 * time.Hour)

	f.addProfile(swipeReady(1, "male", 30, base))
	f.addProfile(swipeReady(2, "female", 28, base))

	_, err := f.matches.Create(context.Background(), &Match{User1ID: 1, User2ID: 2})
	require.NoError(t, err)

	matches, err := f.svc.GetMatches(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].Profile)
	assert.Equal(t, int64(2), matches[0].Profile.UserID)
}

func TestUnmatch(t *testing.T) {
	f := newFixture(t)

	created, err := f.matches.Create(context.Background(), &Match{User1ID: 1, User2ID: 2})
	require.NoError(t, err)
	require.True(t, created)

	err = f.svc.Unmatch(context.Background(), 3, 1)
	assert.ErrorIs(t, err, ErrUnauthorized)

	err = f.svc.Unmatch(context.Background(), 1, 99)
	assert.ErrorIs(t, err, ErrMatchNotFound)

	require.NoError(t, f.svc.Unmatch(context.Background(), 1, 1))

	matches, err := f.svc.GetMatches(context.Background(), 2)
	require.NoError(t, err)
	assert.Empty(t, matches)
}
