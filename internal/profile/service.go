// internal/profile/service.go

package profile

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrAlreadyBlocked  = errors.New("user is already blocked")
	ErrCannotBlockSelf = errors.New("cannot block yourself")
)

// Service defines the profile service interface
type Service interface {
	GetMyProfile(ctx context.Context, userID int64) (*Profile, error)
	SetupProfile(ctx context.Context, userID int64, req *SetupProfileRequest) (*Profile, error)
	UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error)
	GetProfileCompletion(ctx context.Context, userID int64) (*CompletionResponse, error)

	// Blocking
	BlockUser(ctx context.Context, userID, blockedID int64) error
	UnblockUser(ctx context.Context, userID, blockedID int64) error
	GetBlockedUsers(ctx context.Context, userID int64) ([]int64, error)
}

type service struct {
	repo Repository
}

// NewService creates a new profile service
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetMyProfile(ctx context.Context, userID int64) (*Profile, error) {
	return s.repo.GetByUserID(ctx, userID)
}

// SetupProfile records the basic-info step. A brand-new profile starts
// invisible; it becomes discoverable once the user finishes onboarding and
// crosses the completion gate.
func (s *service) SetupProfile(ctx context.Context, userID int64, req *SetupProfileRequest) (*Profile, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("invalid date format, use YYYY-MM-DD")
	}

	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrProfileNotFound) {
			return nil, err
		}
		p = &Profile{UserID: userID}
	}

	p.DisplayName = req.DisplayName
	p.DateOfBirth = &dob
	p.Gender = req.Gender
	p.Orientation = req.Orientation
	p.LookingFor = req.LookingFor

	Normalize(p, time.Now())
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int64, req *UpdateProfileRequest) (*Profile, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	applyUpdate(p, req)

	// Finishing every swipe-readiness section counts as completing onboarding.
	if !p.OnboardingCompleted && len(MissingSwipeFields(p)) == 0 {
		p.OnboardingCompleted = true
		p.IsVisible = true
	}

	Normalize(p, time.Now())
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *service) GetProfileCompletion(ctx context.Context, userID int64) (*CompletionResponse, error) {
	p, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	missing := MissingSwipeFields(p)
	return &CompletionResponse{
		Percentage:    CompletionPercentage(p),
		ReadyToSwipe:  len(missing) == 0,
		MissingFields: missing,
	}, nil
}

func (s *service) BlockUser(ctx context.Context, userID, blockedID int64) error {
	if userID == blockedID {
		return ErrCannotBlockSelf
	}

	exists, err := s.repo.IsBlocked(ctx, userID, blockedID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyBlocked
	}

	return s.repo.BlockUser(ctx, userID, blockedID)
}

func (s *service) UnblockUser(ctx context.Context, userID, blockedID int64) error {
	return s.repo.UnblockUser(ctx, userID, blockedID)
}

func (s *service) GetBlockedUsers(ctx context.Context, userID int64) ([]int64, error) {
	return s.repo.GetBlockedUsers(ctx, userID)
}

// applyUpdate copies the non-nil request fields onto the profile.
func applyUpdate(p *Profile, req *UpdateProfileRequest) {
	if req.DisplayName != nil {
		p.DisplayName = *req.DisplayName
	}
	if req.DateOfBirth != nil && *req.DateOfBirth != "" {
		if dob, err := time.Parse("2006-01-02", *req.DateOfBirth); err == nil {
			p.DateOfBirth = &dob
		}
	}
	if req.Gender != nil {
		p.Gender = *req.Gender
	}
	if req.Orientation != nil {
		p.Orientation = *req.Orientation
	}
	if req.LookingFor != nil {
		p.LookingFor = req.LookingFor
	}
	if req.City != nil {
		p.City = req.City
	}
	if req.Latitude != nil {
		p.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		p.Longitude = *req.Longitude
	}
	if req.AgeRangeMin != nil {
		p.AgeRangeMin = req.AgeRangeMin
	}
	if req.AgeRangeMax != nil {
		p.AgeRangeMax = req.AgeRangeMax
	}
	if req.DistancePrefKm != nil {
		p.DistancePrefKm = req.DistancePrefKm
	}
	if req.Interests != nil {
		p.Interests = req.Interests
	}
	if req.Personality != nil {
		if p.Personality == nil {
			p.Personality = TraitMap{}
		}
		for axis, value := range req.Personality {
			p.Personality[axis] = value
		}
	}
	if req.Dealbreakers != nil {
		if p.Dealbreakers == nil {
			p.Dealbreakers = TraitMap{}
		}
		for axis, value := range req.Dealbreakers {
			p.Dealbreakers[axis] = value
		}
	}
	if req.Education != nil {
		p.Education = req.Education
	}
	if req.Profession != nil {
		p.Profession = req.Profession
	}
	if req.Languages != nil {
		p.Languages = req.Languages
	}
	if req.Horoscope != nil {
		p.Horoscope = req.Horoscope
	}
	if req.Prompts != nil {
		p.Prompts = req.Prompts
	}
	if req.Photos != nil {
		p.Photos = req.Photos
	}
	if req.Bio != nil {
		p.Bio = req.Bio
	}
	if req.IsVisible != nil {
		p.IsVisible = *req.IsVisible
	}
}
