package model

import (
	"errors"
	"time"
)

// Post represents a blog post, draft or published.
type Post struct {
	ID           int64     `db:"id" json:"id"`
	AuthorID     int64     `db:"author_id" json:"author_id"`
	Title        string    `db:"title" json:"title"`
	Description  *string   `db:"description" json:"description"`
	Content      string    `db:"content" json:"content"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url"`
	Category     *string   `db:"category" json:"category"`
	Published    bool      `db:"published" json:"published"`
	Views        int       `db:"views" json:"views"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`

	// Joined fields (not in the posts table)
	Author    *AuthorSummary `json:"author,omitempty"`
	LikeCount int            `json:"like_count"`
}

// AuthorSummary is the slice of a user (plus profile) shown next to a post.
type AuthorSummary struct {
	ID        int64   `db:"id" json:"id"`
	Name      string  `db:"name" json:"name"`
	Bio       *string `db:"bio" json:"bio"`
	AvatarURL *string `db:"avatar_url" json:"avatar_url"`
}

// CreatePostRequest is the body for creating a post.
type CreatePostRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Content      string  `json:"content"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Category     *string `json:"category"`
	Published    bool    `json:"published"`
}

// UpdatePostRequest is the body for editing a post. Publishing is a flag
// flip through this same request, not a separate operation.
type UpdatePostRequest struct {
	Title        string  `json:"title"`
	Description  *string `json:"description"`
	Content      string  `json:"content"`
	ThumbnailURL *string `json:"thumbnail_url"`
	Category     *string `json:"category"`
	Published    bool    `json:"published"`
}

// PostListResponse is the cursor-paginated public post list.
type PostListResponse struct {
	Posts      []Post  `json:"posts"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

const (
	MaxPostTitleLength = 200
	DefaultPageSize    = 10
	MaxPageSize        = 50
)

var (
	ErrPostNotFound  = errors.New("post not found")
	ErrNotPostOwner  = errors.New("not the owner of this post")
	ErrTitleRequired = errors.New("title is required")
	ErrBodyRequired  = errors.New("content is required")
	ErrTitleTooLong  = errors.New("title too long")
)
