package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/model"
)

type profileRepository struct {
	db *sqlx.DB
}

func NewProfileRepository(db *sqlx.DB) ProfileRepository {
	return &profileRepository{db: db}
}

// GetByUserID returns the profile row, or (nil, nil) when none exists.
// A missing profile is a valid state, not an error.
func (r *profileRepository) GetByUserID(ctx context.Context, userID int64) (*model.Profile, error) {
	query := `
		SELECT user_id, bio, avatar_url, cover_url, website, twitter, github, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var p model.Profile
	err := r.db.GetContext(ctx, &p, query, userID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	return &p, nil
}

// Upsert creates the profile row on first write and overwrites it on
// subsequent writes, keyed by the unique user_id.
func (r *profileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	query := `
		INSERT INTO profiles (user_id, bio, avatar_url, cover_url, website, twitter, github, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET bio = EXCLUDED.bio,
		    avatar_url = EXCLUDED.avatar_url,
		    cover_url = EXCLUDED.cover_url,
		    website = EXCLUDED.website,
		    twitter = EXCLUDED.twitter,
		    github = EXCLUDED.github,
		    updated_at = NOW()
		RETURNING updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		p.UserID, p.Bio, p.AvatarURL, p.CoverURL, p.Website, p.Twitter, p.GitHub,
	)
	if err := row.Scan(&p.UpdatedAt); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}
