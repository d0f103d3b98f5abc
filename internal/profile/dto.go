// internal/profile/dto.go
package profile

// DTOs for API requests/responses

// UpdateProfileRequest carries a partial profile update. Nil fields are left
// untouched; the service re-normalizes the document before persisting.
type UpdateProfileRequest struct {
	DisplayName    *string           `json:"display_name" validate:"omitempty,min=2,max=100"`
	DateOfBirth    *string           `json:"date_of_birth" validate:"omitempty"`
	Gender         *string           `json:"gender" validate:"omitempty,oneof=male female other"`
	Orientation    *string           `json:"orientation" validate:"omitempty,max=50"`
	LookingFor     []string          `json:"looking_for" validate:"omitempty,dive,oneof=men women everyone"`
	City           *string           `json:"city" validate:"omitempty,max=100"`
	Latitude       *float64          `json:"latitude" validate:"omitempty,latitude"`
	Longitude      *float64          `json:"longitude" validate:"omitempty,longitude"`
	AgeRangeMin    *int              `json:"age_range_min" validate:"omitempty,min=18,max=100"`
	AgeRangeMax    *int              `json:"age_range_max" validate:"omitempty,min=18,max=100"`
	DistancePrefKm *int              `json:"distance_pref_km" validate:"omitempty,min=1,max=20000"`
	Interests      []string          `json:"interests" validate:"omitempty,max=20,dive,min=1,max=50"`
	Personality    map[string]string `json:"personality"`
	Dealbreakers   map[string]string `json:"dealbreakers"`
	Education      *string           `json:"education" validate:"omitempty,max=200"`
	Profession     *string           `json:"profession" validate:"omitempty,max=200"`
	Languages      []string          `json:"languages" validate:"omitempty,max=10,dive,min=2,max=50"`
	Horoscope      *string           `json:"horoscope" validate:"omitempty,max=50"`
	Prompts        []Prompt          `json:"prompts" validate:"omitempty,max=5"`
	Photos         []Photo           `json:"photos" validate:"omitempty,max=9"`
	Bio            *string           `json:"bio" validate:"omitempty,max=500"`
	IsVisible      *bool             `json:"is_visible"`
}

// SetupProfileRequest is the minimum basic info collected on first login.
// Everything else can come later, but discovery refuses to run without these.
type SetupProfileRequest struct {
	DisplayName string   `json:"display_name" validate:"required,min=2,max=100"`
	DateOfBirth string   `json:"date_of_birth" validate:"required"`
	Gender      string   `json:"gender" validate:"required,oneof=male female other"`
	Orientation string   `json:"orientation" validate:"required,max=50"`
	LookingFor  []string `json:"looking_for" validate:"required,min=1,dive,oneof=men women everyone"`
}

// CompletionResponse reports the derived completion state plus the sections
// still blocking the user from swiping.
type CompletionResponse struct {
	Percentage    int      `json:"percentage"`
	ReadyToSwipe  bool     `json:"ready_to_swipe"`
	MissingFields []string `json:"missing_fields"`
}
