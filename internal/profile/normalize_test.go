package profile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/joinember/ember-backend/internal/profile"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func fullTraits(axes []string) profile.TraitMap {
	m := profile.TraitMap{}
	for _, axis := range axes {
		m[axis] = "set"
	}
	return m
}

// completeProfile builds a profile with every field group populated.
func completeProfile(t *testing.T) *profile.Profile {
	t.Helper()
	dob := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)
	return &profile.Profile{
		UserID:         1,
		DisplayName:    "Ada",
		DateOfBirth:    &dob,
		Gender:         "female",
		Orientation:    "straight",
		LookingFor:     []string{"men"},
		City:           strPtr("London"),
		Latitude:       51.5074,
		Longitude:      -0.1278,
		AgeRangeMin:    intPtr(25),
		AgeRangeMax:    intPtr(35),
		DistancePrefKm: intPtr(50),
		Interests:      []string{"climbing", "jazz", "cooking"},
		Personality:    fullTraits(profile.PersonalityAxes),
		Dealbreakers:   fullTraits(profile.MandatoryDealbreakers),
		Education:      strPtr("MSc"),
		Photos: profile.PhotoList{
			{URL: "a.jpg", IsMain: true, Position: 0},
			{URL: "b.jpg", Position: 1},
			{URL: "c.jpg", Position: 2},
			{URL: "d.jpg", Position: 3},
		},
		Bio: strPtr("hello"),
	}
}

func TestAgeFromDOB(t *testing.T) {
	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	birthdayPassed := time.Date(1996, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, profile.AgeFromDOB(&birthdayPassed, now))

	birthdayAhead := time.Date(1996, 11, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 29, profile.AgeFromDOB(&birthdayAhead, now))

	assert.Equal(t, 0, profile.AgeFromDOB(nil, now))
}

func TestCompletionPercentageFullProfile(t *testing.T) {
	p := completeProfile(t)
	assert.Equal(t, 100, profile.CompletionPercentage(p))
}

func TestCompletionPercentageEmptyProfile(t *testing.T) {
	p := &profile.Profile{}
	assert.Equal(t, 0, profile.CompletionPercentage(p))
}

func TestCompletionPercentageDropsWithMissingGroups(t *testing.T) {
	p := completeProfile(t)
	p.Bio = nil
	p.Photos = nil

	// bio (10) + photos (15) gone
	assert.Equal(t, 75, profile.CompletionPercentage(p))
}

func TestNormalizeRecomputesAgeBeforeCompletion(t *testing.T) {
	p := completeProfile(t)
	p.Age = 0
	p.CompletionPercentage = 0

	profile.Normalize(p, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, 31, p.Age)
	assert.Equal(t, 100, p.CompletionPercentage)
}

func TestMissingSwipeFieldsComplete(t *testing.T) {
	assert.Empty(t, profile.MissingSwipeFields(completeProfile(t)))
}

func TestMissingSwipeFieldsReportsEachSection(t *testing.T) {
	p := completeProfile(t)
	p.City = nil
	p.AgeRangeMax = nil
	p.Interests = []string{"jazz"}
	p.Photos = p.Photos[:2]
	p.Bio = strPtr("")
	delete(p.Personality, profile.PersonalityAxes[0])
	delete(p.Dealbreakers, profile.MandatoryDealbreakers[0])

	missing := profile.MissingSwipeFields(p)

	assert.ElementsMatch(t, []string{
		"location", "age_range", "interests", "personality",
		"dealbreakers", "photos", "bio",
	}, missing)
}

func TestMissingSwipeFieldsOptionalDealbreakerNotRequired(t *testing.T) {
	p := completeProfile(t)
	delete(p.Dealbreakers, profile.OptionalDealbreaker)

	assert.Empty(t, profile.MissingSwipeFields(p))
}
