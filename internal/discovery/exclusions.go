// internal/discovery/exclusions.go

package discovery

import (
	"context"
	"sort"
)

// ExclusionSet is the set of user ids a requester must never see again in
// discovery.
type ExclusionSet map[int64]struct{}

func (s ExclusionSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

func (s ExclusionSet) add(ids ...int64) {
	for _, id := range ids {
		s[id] = struct{}{}
	}
}

// IDs returns the set as a sorted slice for use as a query parameter.
func (s ExclusionSet) IDs() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BuildExclusions unions everything already decided for this user: the user
// itself, every user they ever acted on (likes and passes both occupy the
// slot), the partner of every active match, and everyone they blocked. The
// set is recomputed per request — interaction state can change between
// calls, so it is never cached.
func (s *service) BuildExclusions(ctx context.Context, userID int64) (ExclusionSet, error) {
	set := ExclusionSet{}
	set.add(userID)

	actedOn, err := s.interactions.ListActedUserIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	set.add(actedOn...)

	partners, err := s.matches.ListActivePartnerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	set.add(partners...)

	blocked, err := s.profiles.GetBlockedUsers(ctx, userID)
	if err != nil {
		return nil, err
	}
	set.add(blocked...)

	return set, nil
}
