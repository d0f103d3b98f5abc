// internal/profile/models.go

package profile

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/lib/pq"
)

// PersonalityAxes are the eight independent trait axes collected during
// onboarding. All eight must be set before a user may swipe.
var PersonalityAxes = []string{
	"energy",        // introvert / ambivert / extrovert
	"planning",      // spontaneous / flexible / planner
	"communication", // texter / caller / in_person
	"daily_rhythm",  // morning / flexible / night
	"adventure",     // homebody / balanced / explorer
	"affection",     // reserved / moderate / expressive
	"humor",         // dry / playful / goofy
	"social_energy", // small_circle / mixed / crowd
}

// MandatoryDealbreakers are the four axes a user must answer; "pets" is the
// one optional axis.
var MandatoryDealbreakers = []string{"smoking", "drinking", "religion", "wants_kids"}

const OptionalDealbreaker = "pets"

// Profile is the one-to-one profile document owned by a user. Age and
// CompletionPercentage are derived fields: Normalize recomputes both before
// every persist so the stored values are never stale.
type Profile struct {
	ID     int64 `json:"id" db:"id"`
	UserID int64 `json:"user_id" db:"user_id"`

	// Identity
	DisplayName string         `json:"display_name" db:"display_name"`
	DateOfBirth *time.Time     `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Age         int            `json:"age" db:"age"`
	Gender      string         `json:"gender" db:"gender"`
	Orientation string         `json:"orientation" db:"orientation"`
	LookingFor  pq.StringArray `json:"looking_for" db:"looking_for"`

	// Location: lat/lon default to (0,0) until the client reports a fix;
	// the planner treats the default pair as "no location".
	City      *string `json:"city,omitempty" db:"city"`
	Latitude  float64 `json:"latitude" db:"latitude"`
	Longitude float64 `json:"longitude" db:"longitude"`

	// Preferences
	AgeRangeMin   *int `json:"age_range_min,omitempty" db:"age_range_min"`
	AgeRangeMax   *int `json:"age_range_max,omitempty" db:"age_range_max"`
	DistancePrefKm *int `json:"distance_pref_km,omitempty" db:"distance_pref_km"`

	// Interests & traits
	Interests    pq.StringArray `json:"interests" db:"interests"`
	Personality  TraitMap       `json:"personality" db:"personality"`
	Dealbreakers TraitMap       `json:"dealbreakers" db:"dealbreakers"`

	// Optional facts
	Education  *string        `json:"education,omitempty" db:"education"`
	Profession *string        `json:"profession,omitempty" db:"profession"`
	Languages  pq.StringArray `json:"languages,omitempty" db:"languages"`
	Horoscope  *string        `json:"horoscope,omitempty" db:"horoscope"`
	Prompts    PromptList     `json:"prompts,omitempty" db:"prompts"`

	Photos PhotoList `json:"photos" db:"photos"`
	Bio    *string   `json:"bio,omitempty" db:"bio"`

	// Derived + gating
	CompletionPercentage int  `json:"completion_percentage" db:"completion_percentage"`
	OnboardingCompleted  bool `json:"onboarding_completed" db:"onboarding_completed"`
	IsVisible            bool `json:"is_visible" db:"is_visible"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Joined from users, not a profile column
	LastActiveAt *time.Time `json:"last_active_at,omitempty" db:"last_active_at"`
}

// Photo is one entry in the ordered photo list. Exactly one should be main.
type Photo struct {
	URL      string `json:"url"`
	IsMain   bool   `json:"is_main"`
	Position int    `json:"position"`
}

// PhotoList stores the ordered photos as a jsonb column.
type PhotoList []Photo

func (p *PhotoList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	if bytes, ok := value.([]byte); ok {
		return json.Unmarshal(bytes, p)
	}
	return nil
}

func (p PhotoList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// TraitMap stores enumerated axis -> value pairs as a jsonb column. Used for
// both personality traits and dealbreakers.
type TraitMap map[string]string

func (t *TraitMap) Scan(value interface{}) error {
	if value == nil {
		*t = nil
		return nil
	}
	if bytes, ok := value.([]byte); ok {
		return json.Unmarshal(bytes, t)
	}
	return nil
}

func (t TraitMap) Value() (driver.Value, error) {
	if t == nil {
		return json.Marshal(TraitMap{})
	}
	return json.Marshal(t)
}

// HasAll reports whether every axis in keys has a non-empty value.
func (t TraitMap) HasAll(keys []string) bool {
	for _, k := range keys {
		if t[k] == "" {
			return false
		}
	}
	return true
}

// Prompt is a freeform question/answer pair.
type Prompt struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PromptList stores prompts as a jsonb column.
type PromptList []Prompt

func (p *PromptList) Scan(value interface{}) error {
	if value == nil {
		*p = nil
		return nil
	}
	if bytes, ok := value.([]byte); ok {
		return json.Unmarshal(bytes, p)
	}
	return nil
}

func (p PromptList) Value() (driver.Value, error) {
	return json.Marshal(p)
}

// HasBasicInfo reports whether the minimum identity fields required to run
// discovery at all are present: name, gender, orientation and a non-empty
// looking-for set.
func (p *Profile) HasBasicInfo() bool {
	return p.DisplayName != "" &&
		p.Gender != "" &&
		p.Orientation != "" &&
		len(p.LookingFor) > 0
}

// HasLocation reports whether the profile carries a usable coordinate pair.
// The default (0,0) pair means the client never reported a fix.
func (p *Profile) HasLocation() bool {
	return p.Latitude != 0 || p.Longitude != 0
}
