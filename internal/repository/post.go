package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"inkwell/internal/model"
)

type postRepository struct {
	db *sqlx.DB
}

func NewPostRepository(db *sqlx.DB) PostRepository {
	return &postRepository{db: db}
}

// Create inserts a new post, draft or published.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	query := `
		INSERT INTO posts (author_id, title, description, content, thumbnail_url, category, published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, views, created_at
	`
	row := r.db.QueryRowxContext(ctx, query,
		post.AuthorID,
		post.Title,
		post.Description,
		post.Content,
		post.ThumbnailURL,
		post.Category,
		post.Published,
	)
	if err := row.Scan(&post.ID, &post.Views, &post.CreatedAt); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}
	return nil
}

// GetPublishedByID retrieves a single published post with its author and
// the author's profile fields joined in.
func (r *postRepository) GetPublishedByID(ctx context.Context, postID int64) (*model.Post, error) {
	query := `
		SELECT p.id, p.author_id, p.title, p.description, p.content,
		       p.thumbnail_url, p.category, p.published, p.views, p.created_at
		FROM posts p
		WHERE p.id = $1 AND p.published = TRUE
	`
	var post model.Post
	err := r.db.GetContext(ctx, &post, query, postID)
	if err == sql.ErrNoRows {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}

	authorQuery := `
		SELECT u.id, u.name, pr.bio, pr.avatar_url
		FROM users u
		LEFT JOIN profiles pr ON pr.user_id = u.id
		WHERE u.id = $1
	`
	var author model.AuthorSummary
	if err := r.db.GetContext(ctx, &author, authorQuery, post.AuthorID); err == nil {
		post.Author = &author
	}

	return &post, nil
}

// IncrementViews bumps the view counter on a post.
func (r *postRepository) IncrementViews(ctx context.Context, postID int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE posts SET views = views + 1 WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("increment views: %w", err)
	}
	return nil
}

// ListPublished returns published posts newest-first with optional title
// search, cursor-paginated on (created_at, id).
func (r *postRepository) ListPublished(ctx context.Context, search string, cursor *string, limit int) ([]model.Post, *string, error) {
	var query string
	var args []interface{}

	pattern := "%" + search + "%"

	if cursor == nil {
		query = `
			SELECT id, author_id, title, description, content, thumbnail_url,
			       category, published, views, created_at
			FROM posts
			WHERE published = TRUE AND title ILIKE $1
			ORDER BY created_at DESC, id DESC
			LIMIT $2
		`
		args = []interface{}{pattern, limit + 1}
	} else {
		ts, id, err := parseCursor(*cursor)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid cursor: %w", err)
		}
		query = `
			SELECT id, author_id, title, description, content, thumbnail_url,
			       category, published, views, created_at
			FROM posts
			WHERE published = TRUE AND title ILIKE $1
			  AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC
			LIMIT $4
		`
		args = []interface{}{pattern, ts, id, limit + 1}
	}

	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, nil, fmt.Errorf("list published posts: %w", err)
	}

	var nextCursor *string
	if len(posts) > limit {
		posts = posts[:limit]
		last := posts[len(posts)-1]
		c := formatCursor(last.CreatedAt, last.ID)
		nextCursor = &c
	}

	return posts, nextCursor, nil
}

// ListByAuthor returns an author's own posts, optionally drafts only.
func (r *postRepository) ListByAuthor(ctx context.Context, authorID int64, draftsOnly bool) ([]model.Post, error) {
	query := `
		SELECT id, author_id, title, description, content, thumbnail_url,
		       category, published, views, created_at
		FROM posts
		WHERE author_id = $1
	`
	if draftsOnly {
		query += ` AND published = FALSE`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query, authorID); err != nil {
		return nil, fmt.Errorf("list posts by author: %w", err)
	}
	return posts, nil
}

// Update edits a post, scoped to its owner by the WHERE clause. Zero
// affected rows means either a foreign post or a missing one; a follow-up
// existence check tells the two apart.
func (r *postRepository) Update(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error {
	query := `
		UPDATE posts
		SET title = $1, description = $2, content = $3, thumbnail_url = $4,
		    category = $5, published = $6
		WHERE id = $7 AND author_id = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		req.Title, req.Description, req.Content, req.ThumbnailURL,
		req.Category, req.Published, postID, authorID,
	)
	if err != nil {
		return fmt.Errorf("update post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return r.ownerOrMissing(ctx, postID)
	}
	return nil
}

// Delete removes an owner's post. Engagement rows go first in the same
// transaction since the store does not cascade.
func (r *postRepository) Delete(ctx context.Context, postID, authorID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteEngagement(ctx, tx, postID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1 AND author_id = $2`, postID, authorID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return r.ownerOrMissing(ctx, postID)
	}

	return tx.Commit()
}

// Exists checks if a post exists.
func (r *postRepository) Exists(ctx context.Context, postID int64) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if err != nil {
		return false, fmt.Errorf("check post exists: %w", err)
	}
	return exists, nil
}

// ListAll returns every post, drafts included. Admin surface.
func (r *postRepository) ListAll(ctx context.Context) ([]model.Post, error) {
	query := `
		SELECT id, author_id, title, description, content, thumbnail_url,
		       category, published, views, created_at
		FROM posts
		ORDER BY created_at DESC, id DESC
	`
	var posts []model.Post
	if err := r.db.SelectContext(ctx, &posts, query); err != nil {
		return nil, fmt.Errorf("list all posts: %w", err)
	}
	return posts, nil
}

// DeleteAny removes any post regardless of its owner. Admin surface.
func (r *postRepository) DeleteAny(ctx context.Context, postID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := deleteEngagement(ctx, tx, postID); err != nil {
		return err
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, postID)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrPostNotFound
	}

	return tx.Commit()
}

// deleteEngagement clears a post's likes and saves inside the caller's
// transaction, before the post row goes.
func deleteEngagement(ctx context.Context, tx *sqlx.Tx, postID int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_likes WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("delete post likes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM post_saves WHERE post_id = $1`, postID); err != nil {
		return fmt.Errorf("delete post saves: %w", err)
	}
	return nil
}

// ownerOrMissing disambiguates a zero-row owner-scoped mutation.
func (r *postRepository) ownerOrMissing(ctx context.Context, postID int64) error {
	var exists bool
	r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, postID)
	if exists {
		return model.ErrNotPostOwner
	}
	return model.ErrPostNotFound
}

// Helper: parse compound cursor "id:timestamp"
func parseCursor(cursor string) (time.Time, int64, error) {
	parts := strings.Split(cursor, ":")
	if len(parts) != 2 {
		return time.Time{}, 0, fmt.Errorf("invalid cursor format")
	}
	var id int64
	var ts int64
	_, err := fmt.Sscanf(parts[0], "%d", &id)
	if err != nil {
		return time.Time{}, 0, err
	}
	_, err = fmt.Sscanf(parts[1], "%d", &ts)
	if err != nil {
		return time.Time{}, 0, err
	}
	return time.Unix(ts, 0), id, nil
}

// Helper: format compound cursor "id:timestamp"
func formatCursor(t time.Time, id int64) string {
	return fmt.Sprintf("%d:%d", id, t.Unix())
}
