package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

type engagementRepository struct {
	db *sqlx.DB
}

func NewEngagementRepository(db *sqlx.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ToggleLike flips the like row for (postID, actorKey) and returns the new
// state plus a live count, all inside one transaction.
//
// The insert uses ON CONFLICT DO NOTHING against the unique constraint on
// (post_id, actor_key): zero rows affected means the row already existed,
// so the toggle deletes it instead. Two concurrent toggles from the same
// actor serialize on the constraint rather than racing a read-then-write.
// The count is taken in the same transaction for a consistent snapshot.
func (r *engagementRepository) ToggleLike(ctx context.Context, postID int64, actorKey string) (bool, int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO post_likes (post_id, actor_key)
		VALUES ($1, $2)
		ON CONFLICT (post_id, actor_key) DO NOTHING
	`, postID, actorKey)
	if err != nil {
		return false, 0, fmt.Errorf("insert like: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, 0, fmt.Errorf("get rows affected: %w", err)
	}

	liked := inserted > 0
	if !liked {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM post_likes WHERE post_id = $1 AND actor_key = $2
		`, postID, actorKey); err != nil {
			return false, 0, fmt.Errorf("delete like: %w", err)
		}
	}

	var total int
	if err := tx.GetContext(ctx, &total, `
		SELECT COUNT(*) FROM post_likes WHERE post_id = $1
	`, postID); err != nil {
		return false, 0, fmt.Errorf("count likes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, 0, fmt.Errorf("commit transaction: %w", err)
	}

	return liked, total, nil
}

// ToggleSave flips the bookmark row for (postID, userID). Same
// constraint-backed toggle as ToggleLike, minus the count.
func (r *engagementRepository) ToggleSave(ctx context.Context, postID, userID int64) (bool, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO post_saves (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING
	`, postID, userID)
	if err != nil {
		return false, fmt.Errorf("insert save: %w", err)
	}

	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("get rows affected: %w", err)
	}

	saved := inserted > 0
	if !saved {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM post_saves WHERE post_id = $1 AND user_id = $2
		`, postID, userID); err != nil {
			return false, fmt.Errorf("delete save: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit transaction: %w", err)
	}

	return saved, nil
}

// CountLikes returns the live number of like rows for a post.
func (r *engagementRepository) CountLikes(ctx context.Context, postID int64) (int, error) {
	var total int
	err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM post_likes WHERE post_id = $1`, postID)
	if err != nil {
		return 0, fmt.Errorf("count likes: %w", err)
	}
	return total, nil
}
