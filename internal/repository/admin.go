package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/model"
)

type adminRepository struct {
	db *sqlx.DB
}

func NewAdminRepository(db *sqlx.DB) AdminRepository {
	return &adminRepository{db: db}
}

// Stats computes the moderation dashboard counts in a single query. These
// are live counts, not maintained counters.
func (r *adminRepository) Stats(ctx context.Context) (*model.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM users) AS user_count,
			(SELECT COUNT(*) FROM posts) AS post_count,
			(SELECT COUNT(*) FROM posts WHERE published = TRUE) AS published_count,
			(SELECT COUNT(*) FROM post_likes) AS like_count
	`

	var stats model.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("load stats: %w", err)
	}

	return &stats, nil
}
