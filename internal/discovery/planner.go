// internal/discovery/planner.go
//
// The candidate query planner builds the discovery filter from the
// requester's preferences and returns the full fallback cascade up front as
// an ordered list of strictly weaker filters. The feed assembler runs the
// steps in order until one yields candidates, so the relaxation logic stays
// a pure function testable without a store.

package discovery

// CandidateFilter describes one candidate query. Zero-valued optional
// members mean "no filter on this dimension". Eligibility basics (visible,
// onboarded, account active, completion threshold) always apply and are not
// relaxable.
type CandidateFilter struct {
	ExcludeIDs    []int64
	MinCompletion int

	// Gender filter; empty slice means all genders.
	Genders []string

	// Age filter; nil AgeMin means no age filter at all. AgeMax may be nil
	// with AgeMin set, meaning [min, inf).
	AgeMin *int
	AgeMax *int

	// Geo filter; nil MaxDistanceM means no geo filter.
	CenterLat    float64
	CenterLon    float64
	MaxDistanceM *int

	// Label names the relaxation step for diagnostics and metrics.
	Label string
}

// lookingForGenders maps the requester's looking-for values onto candidate
// genders: men -> male, women -> female, everyone -> all three. The union is
// taken across all selected values; unknown values are ignored.
func lookingForGenders(lookingFor []string) []string {
	seen := make(map[string]bool)
	var genders []string

	add := func(g string) {
		if !seen[g] {
			seen[g] = true
			genders = append(genders, g)
		}
	}

	for _, lf := range lookingFor {
		switch lf {
		case "men":
			add("male")
		case "women":
			add("female")
		case "everyone":
			add("male")
			add("female")
			add("other")
		}
	}

	return genders
}

// plannerInput is the slice of the requester's profile the planner reads.
type plannerInput struct {
	HasBasicInfo   bool
	AgeRangeMin    *int
	AgeRangeMax    *int
	LookingFor     []string
	HasLocation    bool
	Latitude       float64
	Longitude      float64
	DistancePrefKm *int
}

// PlanQuery builds the ordered filter cascade for a requester. The first
// step is the strict filter; each following step removes exactly one filter
// dimension (age first, then geo) and filters are never added back. Steps
// that would be identical to their predecessor are omitted.
//
// Returns ErrRequiresBasicInfo when the requester has not completed the
// minimum basic info — a terminal precondition, not a retryable error.
func PlanQuery(in plannerInput, excludeIDs []int64, minCompletion int) ([]CandidateFilter, error) {
	if !in.HasBasicInfo {
		return nil, ErrRequiresBasicInfo
	}

	strict := CandidateFilter{
		ExcludeIDs:    excludeIDs,
		MinCompletion: minCompletion,
		Genders:       lookingForGenders(in.LookingFor),
		Label:         "strict",
	}

	// Age filter only when the requester set a minimum. An absent range is a
	// deliberate permissive default: show all ages.
	hasAgeFilter := in.AgeRangeMin != nil
	if hasAgeFilter {
		strict.AgeMin = in.AgeRangeMin
		strict.AgeMax = in.AgeRangeMax
	}

	// Geo filter needs both a real coordinate fix and a distance preference;
	// a default (0,0) pair silently skips the filter.
	hasGeoFilter := in.HasLocation && in.DistancePrefKm != nil
	if hasGeoFilter {
		maxM := *in.DistancePrefKm * 1000
		strict.CenterLat = in.Latitude
		strict.CenterLon = in.Longitude
		strict.MaxDistanceM = &maxM
	}

	steps := []CandidateFilter{strict}

	if hasAgeFilter {
		noAge := strict
		noAge.AgeMin = nil
		noAge.AgeMax = nil
		noAge.Label = "no_age"
		steps = append(steps, noAge)
	}

	if hasGeoFilter {
		widest := steps[len(steps)-1]
		widest.MaxDistanceM = nil
		widest.Label = "no_age_no_geo"
		if !hasAgeFilter {
			widest.Label = "no_geo"
		}
		steps = append(steps, widest)
	}

	return steps, nil
}
