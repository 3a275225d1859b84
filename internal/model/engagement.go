package model

import "time"

// Like is an engagement row tying a post to an actor key. The actor key is
// "user_<id>" or "guest_<clientID>"; one table serves both namespaces.
type Like struct {
	PostID    int64     `db:"post_id" json:"post_id"`
	ActorKey  string    `db:"actor_key" json:"actor_key"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Save is a bookmark row; authenticated users only, no guest saves.
type Save struct {
	PostID    int64     `db:"post_id" json:"post_id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// LikeRequest carries the guest id when the caller is unauthenticated.
type LikeRequest struct {
	GuestID string `json:"guest_id"`
}

// ToggleLikeResponse reports the state after a like toggle. TotalLikes is
// a live row count taken in the same transaction as the toggle.
type ToggleLikeResponse struct {
	Liked      bool `json:"liked"`
	TotalLikes int  `json:"total_likes"`
}

// ToggleSaveResponse reports the state after a save toggle.
type ToggleSaveResponse struct {
	Saved bool `json:"saved"`
}
