package repository

import (
	"context"
	"time"

	"inkwell/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	// Delete removes the user and everything they own: their engagement
	// rows, their posts with those posts' engagement rows, and their
	// profile, all in one transaction.
	Delete(ctx context.Context, id int64) error
}

type ProfileRepository interface {
	// GetByUserID returns (nil, nil) when no profile row exists; absence
	// is a valid state with empty defaults.
	GetByUserID(ctx context.Context, userID int64) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	GetPublishedByID(ctx context.Context, postID int64) (*model.Post, error)
	IncrementViews(ctx context.Context, postID int64) error
	// ListPublished returns published posts newest-first with optional
	// title search and compound created_at:id cursor pagination.
	ListPublished(ctx context.Context, query string, cursor *string, limit int) ([]model.Post, *string, error)
	ListByAuthor(ctx context.Context, authorID int64, draftsOnly bool) ([]model.Post, error)
	// Update and Delete are owner-scoped: zero affected rows is
	// disambiguated into ErrNotPostOwner vs ErrPostNotFound.
	Update(ctx context.Context, postID, authorID int64, req *model.UpdatePostRequest) error
	Delete(ctx context.Context, postID, authorID int64) error
	Exists(ctx context.Context, postID int64) (bool, error)
	// Admin surface.
	ListAll(ctx context.Context) ([]model.Post, error)
	DeleteAny(ctx context.Context, postID int64) error
}

type EngagementRepository interface {
	// ToggleLike flips the like row for (postID, actorKey) and returns
	// the new state plus a live count, all in a single transaction. The
	// unique constraint on (post_id, actor_key) is the race guard.
	ToggleLike(ctx context.Context, postID int64, actorKey string) (liked bool, total int, err error)
	ToggleSave(ctx context.Context, postID, userID int64) (saved bool, err error)
	CountLikes(ctx context.Context, postID int64) (int, error)
}

type RegistrationRepository interface {
	// Upsert creates the pending row or, when the email already has one,
	// overwrites its fields and code in place. Sets p.ID.
	Upsert(ctx context.Context, p *model.PendingRegistration) error
	GetByID(ctx context.Context, id int64) (*model.PendingRegistration, error)
	// RefreshCode overwrites code and expiry on the same row.
	RefreshCode(ctx context.Context, id int64, code string, expiresAt time.Time) error
	// Promote inserts the user and deletes the pending row in one
	// transaction, so a verify can never half-complete.
	Promote(ctx context.Context, p *model.PendingRegistration) (*model.User, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type AdminRepository interface {
	Stats(ctx context.Context) (*model.Stats, error)
}
