// cmd/api/migrations.go
// Schema migrations, applied at startup. Idempotent by construction.

package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			phone VARCHAR(20) UNIQUE NOT NULL,
			is_phone_verified BOOLEAN DEFAULT FALSE,
			is_premium BOOLEAN DEFAULT FALSE,
			is_blocked BOOLEAN DEFAULT FALSE,
			is_deleted BOOLEAN DEFAULT FALSE,
			last_active_at TIMESTAMP,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE TABLE IF NOT EXISTS profiles (
			id BIGSERIAL PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			display_name VARCHAR(100) NOT NULL DEFAULT '',
			date_of_birth DATE,
			age INTEGER NOT NULL DEFAULT 0,
			gender VARCHAR(20) NOT NULL DEFAULT '',
			orientation VARCHAR(30) NOT NULL DEFAULT '',
			looking_for TEXT[] NOT NULL DEFAULT '{}',
			city VARCHAR(100),
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			age_range_min INTEGER,
			age_range_max INTEGER,
			distance_pref_km INTEGER,
			interests TEXT[] NOT NULL DEFAULT '{}',
			personality JSONB NOT NULL DEFAULT '{}',
			dealbreakers JSONB NOT NULL DEFAULT '{}',
			education VARCHAR(100),
			profession VARCHAR(100),
			languages TEXT[] DEFAULT '{}',
			horoscope VARCHAR(30),
			prompts JSONB DEFAULT '[]',
			photos JSONB NOT NULL DEFAULT '[]',
			bio TEXT,
			completion_percentage INTEGER NOT NULL DEFAULT 0,
			onboarding_completed BOOLEAN NOT NULL DEFAULT FALSE,
			is_visible BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (user_id)
		)`,

		// One row per ordered pair: repeat swipes conflict here.
		`CREATE TABLE IF NOT EXISTS interactions (
			id BIGSERIAL PRIMARY KEY,
			from_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			to_user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			type VARCHAR(20) NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			UNIQUE (from_user_id, to_user_id)
		)`,

		// Canonical pair (user1_id < user2_id); the unique constraint makes
		// match creation race-safe.
		`CREATE TABLE IF NOT EXISTS matches (
			id BIGSERIAL PRIMARY KEY,
			user1_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			user2_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			matched_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			unmatched_by BIGINT REFERENCES users(id),
			unmatched_at TIMESTAMP,
			last_message_at TIMESTAMP,
			UNIQUE (user1_id, user2_id),
			CHECK (user1_id < user2_id)
		)`,

		`CREATE TABLE IF NOT EXISTS blocked_users (
			user_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			blocked_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			blocked_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, blocked_id)
		)`,

		// Indexes
		`CREATE INDEX IF NOT EXISTS idx_profiles_user_id ON profiles(user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_discovery ON profiles(is_visible, onboarding_completed, completion_percentage)`,
		`CREATE INDEX IF NOT EXISTS idx_profiles_created_at ON profiles(created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_from ON interactions(from_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_interactions_to ON interactions(to_user_id)`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user1 ON matches(user1_id) WHERE is_active`,
		`CREATE INDEX IF NOT EXISTS idx_matches_user2 ON matches(user2_id) WHERE is_active`,
		`CREATE INDEX IF NOT EXISTS idx_users_last_active ON users(last_active_at)`,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}
