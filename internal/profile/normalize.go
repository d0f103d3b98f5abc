// internal/profile/normalize.go
//
// Derived profile fields (age, completion percentage) are recomputed here in
// one place. Repositories call Normalize before every persist so a stored
// value is always derivable from the other stored fields.

package profile

import "time"

// Completion weights per field group. The sum is 100.
const (
	weightIdentity     = 15
	weightLocation     = 10
	weightPreferences  = 10
	weightInterests    = 10
	weightPersonality  = 15
	weightDealbreakers = 10
	weightPhotos       = 15
	weightBio          = 10
	weightFacts        = 5
)

// MinSwipeInterests, MinSwipePhotos are the swipe-readiness thresholds.
const (
	MinSwipeInterests = 3
	MinSwipePhotos    = 4
)

// Normalize recomputes every derived field in dependency order: age from
// date of birth first, then the completion percentage (which counts the
// identity group, and the identity group needs the age to be fresh).
func Normalize(p *Profile, now time.Time) {
	p.Age = AgeFromDOB(p.DateOfBirth, now)
	p.CompletionPercentage = CompletionPercentage(p)
}

// AgeFromDOB derives a whole-year age from a date of birth. Returns 0 when
// the date of birth is unset.
func AgeFromDOB(dob *time.Time, now time.Time) int {
	if dob == nil {
		return 0
	}

	age := now.Year() - dob.Year()
	// birthday not reached yet this year
	if now.YearDay() < dob.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// CompletionPercentage is a weighted count of populated field groups.
func CompletionPercentage(p *Profile) int {
	total := 0

	if p.HasBasicInfo() && p.DateOfBirth != nil {
		total += weightIdentity
	}
	if p.City != nil && *p.City != "" && p.HasLocation() {
		total += weightLocation
	}
	if p.AgeRangeMin != nil && p.AgeRangeMax != nil && p.DistancePrefKm != nil {
		total += weightPreferences
	}
	if len(p.Interests) >= MinSwipeInterests {
		total += weightInterests
	}
	if p.Personality.HasAll(PersonalityAxes) {
		total += weightPersonality
	}
	if p.Dealbreakers.HasAll(MandatoryDealbreakers) {
		total += weightDealbreakers
	}
	if len(p.Photos) > 0 {
		total += weightPhotos
	}
	if p.Bio != nil && *p.Bio != "" {
		total += weightBio
	}
	if hasAnyFact(p) {
		total += weightFacts
	}

	return total
}

func hasAnyFact(p *Profile) bool {
	if p.Education != nil && *p.Education != "" {
		return true
	}
	if p.Profession != nil && *p.Profession != "" {
		return true
	}
	if len(p.Languages) > 0 {
		return true
	}
	if p.Horoscope != nil && *p.Horoscope != "" {
		return true
	}
	return len(p.Prompts) > 0
}

// MissingSwipeFields returns the incomplete sections blocking the user from
// swiping, by client-routable section name. An empty result means the user
// passes the swipe-readiness gate: city, full age range, at least three
// interests, all eight personality axes, all four mandatory dealbreakers,
// at least four photos and a non-empty bio.
func MissingSwipeFields(p *Profile) []string {
	var missing []string

	if p.City == nil || *p.City == "" {
		missing = append(missing, "location")
	}
	if p.AgeRangeMin == nil || p.AgeRangeMax == nil {
		missing = append(missing, "age_range")
	}
	if len(p.Interests) < MinSwipeInterests {
		missing = append(missing, "interests")
	}
	if !p.Personality.HasAll(PersonalityAxes) {
		missing = append(missing, "personality")
	}
	if !p.Dealbreakers.HasAll(MandatoryDealbreakers) {
		missing = append(missing, "dealbreakers")
	}
	if len(p.Photos) < MinSwipePhotos {
		missing = append(missing, "photos")
	}
	if p.Bio == nil || *p.Bio == "" {
		missing = append(missing, "bio")
	}

	return missing
}
