// internal/discovery/repository.go

package discovery

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/joinember/ember-backend/internal/profile"
)

// Repository is the postgres store for candidate queries and the
// interaction log. Matches live in their own store because both stores have
// a Create in their contract.
type Repository interface {
	CandidateSource
	InteractionLog
}

type postgresRepository struct {
	db *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

// FindCandidates executes one planned filter. Eligibility basics always
// apply; the optional clauses are appended dynamically with a running arg
// counter, lib/pq arrays carry the id and gender lists.
func (r *postgresRepository) FindCandidates(ctx context.Context, filter *CandidateFilter) ([]*profile.Profile, error) {
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
		WHERE u.is_blocked = FALSE
		  AND u.is_deleted = FALSE
		  AND p.is_visible = TRUE
		  AND p.onboarding_completed = TRUE
	`

	args := []interface{}{}
	argCount := 0

	argCount++
	query += fmt.Sprintf(" AND p.completion_percentage >= $%d", argCount)
	args = append(args, filter.MinCompletion)

	if len(filter.ExcludeIDs) > 0 {
		argCount++
		query += fmt.Sprintf(" AND p.user_id <> ALL($%d)", argCount)
		args = append(args, pq.Array(filter.ExcludeIDs))
	}

	if len(filter.Genders) > 0 {
		argCount++
		query += fmt.Sprintf(" AND p.gender = ANY($%d)", argCount)
		args = append(args, pq.Array(filter.Genders))
	}

	if filter.AgeMin != nil {
		argCount++
		query += fmt.Sprintf(" AND p.age >= $%d", argCount)
		args = append(args, *filter.AgeMin)
	}
	if filter.AgeMax != nil {
		argCount++
		query += fmt.Sprintf(" AND p.age <= $%d", argCount)
		args = append(args, *filter.AgeMax)
	}

	if filter.MaxDistanceM != nil {
		// Haversine in meters; least() guards acos against float drift on
		// near-identical coordinates. Candidates without a coordinate fix
		// are excluded by a geo-filtered step.
		latArg, lonArg, distArg := argCount+1, argCount+2, argCount+3
		argCount += 3
		query += fmt.Sprintf(`
		  AND NOT (p.latitude = 0 AND p.longitude = 0)
		  AND 6371000 * acos(least(1.0,
		        cos(radians($%d)) * cos(radians(p.latitude)) *
		        cos(radians(p.longitude) - radians($%d)) +
		        sin(radians($%d)) * sin(radians(p.latitude)))) <= $%d`,
			latArg, lonArg, latArg, distArg)
		args = append(args, filter.CenterLat, filter.CenterLon, *filter.MaxDistanceM)
	}

	query += " ORDER BY p.created_at DESC"

	var candidates []*profile.Profile
	if err := r.db.SelectContext(ctx, &candidates, query, args...); err != nil {
		return nil, fmt.Errorf("failed to find candidates (%s): %w", filter.Label, err)
	}

	return candidates, nil
}

// Create inserts the directional interaction. The unique constraint on the
// ordered pair plus ON CONFLICT DO NOTHING makes repeats a no-op insert; the
// missing RETURNING row is how we detect them.
func (r *postgresRepository) Create(ctx context.Context, interaction *Interaction) error {
	query := `
		INSERT INTO interactions (from_user_id, to_user_id, type)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_user_id, to_user_id) DO NOTHING
		RETURNING id, created_at
	`

	err := r.db.QueryRowxContext(
		ctx, query,
		interaction.FromUserID, interaction.ToUserID, interaction.Type,
	).Scan(&interaction.ID, &interaction.CreatedAt)

	if err == sql.ErrNoRows {
		return ErrAlreadyInteracted
	}
	if err != nil {
		return fmt.Errorf("failed to create interaction: %w", err)
	}

	return nil
}

func (r *postgresRepository) Get(ctx context.Context, fromUserID, toUserID int64) (*Interaction, error) {
	var interaction Interaction
	query := `
		SELECT id, from_user_id, to_user_id, type, created_at
		FROM interactions
		WHERE from_user_id = $1 AND to_user_id = $2
	`

	err := r.db.GetContext(ctx, &interaction, query, fromUserID, toUserID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrInteractionNotFound
		}
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}

	return &interaction, nil
}

func (r *postgresRepository) ListActedUserIDs(ctx context.Context, fromUserID int64) ([]int64, error) {
	var ids []int64
	query := `SELECT to_user_id FROM interactions WHERE from_user_id = $1`

	if err := r.db.SelectContext(ctx, &ids, query, fromUserID); err != nil {
		return nil, fmt.Errorf("failed to list acted user ids: %w", err)
	}

	return ids, nil
}

type matchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) MatchStore {
	return &matchRepository{db: db}
}

// Create inserts the canonical-pair match. Two racing reciprocal likes both
// reach this point; the unique constraint lets exactly one insert win, and
// the loser loads the winner's row.
func (r *matchRepository) Create(ctx context.Context, match *Match) (bool, error) {
	user1, user2 := CanonicalPair(match.User1ID, match.User2ID)
	match.User1ID, match.User2ID = user1, user2

	query := `
		INSERT INTO matches (user1_id, user2_id)
		VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO NOTHING
		RETURNING id, matched_at, is_active
	`

	err := r.db.QueryRowxContext(ctx, query, user1, user2).
		Scan(&match.ID, &match.MatchedAt, &match.IsActive)
	if err == nil {
		return true, nil
	}
	if err != sql.ErrNoRows {
		return false, fmt.Errorf("failed to create match: %w", err)
	}

	// Lost the race or the pair matched before: load the existing row.
	existing, err := r.getByPair(ctx, user1, user2)
	if err != nil {
		return false, err
	}
	*match = *existing

	return false, nil
}

func (r *matchRepository) getByPair(ctx context.Context, user1, user2 int64) (*Match, error) {
	var match Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active,
		       unmatched_by, unmatched_at, last_message_at
		FROM matches
		WHERE user1_id = $1 AND user2_id = $2
	`

	err := r.db.GetContext(ctx, &match, query, user1, user2)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match by pair: %w", err)
	}

	return &match, nil
}

func (r *matchRepository) GetByID(ctx context.Context, id int64) (*Match, error) {
	var match Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active,
		       unmatched_by, unmatched_at, last_message_at
		FROM matches
		WHERE id = $1
	`

	err := r.db.GetContext(ctx, &match, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return &match, nil
}

func (r *matchRepository) ListActiveByUser(ctx context.Context, userID int64) ([]*Match, error) {
	var matches []*Match
	query := `
		SELECT id, user1_id, user2_id, matched_at, is_active,
		       unmatched_by, unmatched_at, last_message_at
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = TRUE
		ORDER BY last_message_at DESC NULLS LAST, matched_at DESC
	`

	if err := r.db.SelectContext(ctx, &matches, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}

	return matches, nil
}

func (r *matchRepository) ListActivePartnerIDs(ctx context.Context, userID int64) ([]int64, error) {
	var ids []int64
	query := `
		SELECT CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END
		FROM matches
		WHERE (user1_id = $1 OR user2_id = $1) AND is_active = TRUE
	`

	if err := r.db.SelectContext(ctx, &ids, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list match partners: %w", err)
	}

	return ids, nil
}

func (r *matchRepository) Deactivate(ctx context.Context, matchID, byUserID int64) error {
	query := `
		UPDATE matches
		SET is_active = FALSE, unmatched_by = $2, unmatched_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND is_active = TRUE
	`

	result, err := r.db.ExecContext(ctx, query, matchID, byUserID)
	if err != nil {
		return fmt.Errorf("failed to deactivate match: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMatchNotFound
	}

	return nil
}
