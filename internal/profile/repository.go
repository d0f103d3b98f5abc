// internal/profile/repository.go

package profile

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Repository is the profile store. Save always persists the full document;
// callers go through the service so Normalize has run first.
type Repository interface {
	GetByUserID(ctx context.Context, userID int64) (*Profile, error)
	Save(ctx context.Context, p *Profile) error

	// Blocking
	BlockUser(ctx context.Context, userID, blockedID int64) error
	UnblockUser(ctx context.Context, userID, blockedID int64) error
	GetBlockedUsers(ctx context.Context, userID int64) ([]int64, error)
	IsBlocked(ctx context.Context, userID, targetID int64) (bool, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) GetByUserID(ctx context.Context, userID int64) (*Profile, error) {
	var p Profile
	query := `
		SELECT p.id, p.user_id, p.display_name, p.date_of_birth, p.age,
		       p.gender, p.orientation, p.looking_for,
		       p.city, p.latitude, p.longitude,
		       p.age_range_min, p.age_range_max, p.distance_pref_km,
		       p.interests, p.personality, p.dealbreakers,
		       p.education, p.profession, p.languages, p.horoscope, p.prompts,
		       p.photos, p.bio,
		       p.completion_percentage, p.onboarding_completed, p.is_visible,
		       p.created_at, p.updated_at,
		       u.last_active_at
		FROM profiles p
		JOIN users u ON u.id = p.user_id
		WHERE p.user_id = $1
	`

	err := r.db.GetContext(ctx, &p, query, userID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &p, nil
}

// Save upserts the full profile document keyed on user_id (one profile per
// user, enforced by the unique constraint).
func (r *postgresRepository) Save(ctx context.Context, p *Profile) error {
	query := `
		INSERT INTO profiles (
			user_id, display_name, date_of_birth, age, gender, orientation,
			looking_for, city, latitude, longitude,
			age_range_min, age_range_max, distance_pref_km,
			interests, personality, dealbreakers,
			education, profession, languages, horoscope, prompts,
			photos, bio, completion_percentage, onboarding_completed, is_visible
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10,
			$11, $12, $13,
			$14, $15, $16,
			$17, $18, $19, $20, $21,
			$22, $23, $24, $25, $26
		)
		ON CONFLICT (user_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			date_of_birth = EXCLUDED.date_of_birth,
			age = EXCLUDED.age,
			gender = EXCLUDED.gender,
			orientation = EXCLUDED.orientation,
			looking_for = EXCLUDED.looking_for,
			city = EXCLUDED.city,
			latitude = EXCLUDED.latitude,
			longitude = EXCLUDED.longitude,
			age_range_min = EXCLUDED.age_range_min,
			age_range_max = EXCLUDED.age_range_max,
			distance_pref_km = EXCLUDED.distance_pref_km,
			interests = EXCLUDED.interests,
			personality = EXCLUDED.personality,
			dealbreakers = EXCLUDED.dealbreakers,
			education = EXCLUDED.education,
			profession = EXCLUDED.profession,
			languages = EXCLUDED.languages,
			horoscope = EXCLUDED.horoscope,
			prompts = EXCLUDED.prompts,
			photos = EXCLUDED.photos,
			bio = EXCLUDED.bio,
			completion_percentage = EXCLUDED.completion_percentage,
			onboarding_completed = EXCLUDED.onboarding_completed,
			is_visible = EXCLUDED.is_visible,
			updated_at = CURRENT_TIMESTAMP
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		p.UserID, p.DisplayName, p.DateOfBirth, p.Age, p.Gender, p.Orientation,
		p.LookingFor, p.City, p.Latitude, p.Longitude,
		p.AgeRangeMin, p.AgeRangeMax, p.DistancePrefKm,
		p.Interests, p.Personality, p.Dealbreakers,
		p.Education, p.Profession, p.Languages, p.Horoscope, p.Prompts,
		p.Photos, p.Bio, p.CompletionPercentage, p.OnboardingCompleted, p.IsVisible,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	return nil
}

// Blocking

func (r *postgresRepository) BlockUser(ctx context.Context, userID, blockedID int64) error {
	query := `
		INSERT INTO blocked_users (user_id, blocked_id, blocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, blocked_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, blockedID, time.Now())
	return err
}

func (r *postgresRepository) UnblockUser(ctx context.Context, userID, blockedID int64) error {
	query := `DELETE FROM blocked_users WHERE user_id = $1 AND blocked_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, blockedID)
	return err
}

func (r *postgresRepository) GetBlockedUsers(ctx context.Context, userID int64) ([]int64, error) {
	var blockedIDs []int64
	query := `SELECT blocked_id FROM blocked_users WHERE user_id = $1`

	err := r.db.SelectContext(ctx, &blockedIDs, query, userID)
	if err != nil {
		return nil, err
	}

	return blockedIDs, nil
}

func (r *postgresRepository) IsBlocked(ctx context.Context, userID, targetID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM blocked_users WHERE user_id = $1 AND blocked_id = $2)`

	err := r.db.GetContext(ctx, &exists, query, userID, targetID)
	return exists, err
}
