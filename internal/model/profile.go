package model

import "time"

// Profile is the optional one-to-one extension of a user. Absence of a row
// is valid; reads of a missing profile yield empty defaults.
type Profile struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	Bio       *string   `db:"bio" json:"bio"`
	AvatarURL *string   `db:"avatar_url" json:"avatar_url"`
	CoverURL  *string   `db:"cover_url" json:"cover_url"`
	Website   *string   `db:"website" json:"website"`
	Twitter   *string   `db:"twitter" json:"twitter"`
	GitHub    *string   `db:"github" json:"github"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// UpdateProfileRequest is the body for the profile upsert.
type UpdateProfileRequest struct {
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	CoverURL  *string `json:"cover_url"`
	Website   *string `json:"website"`
	Twitter   *string `json:"twitter"`
	GitHub    *string `json:"github"`
}

// ProfileResponse joins the account with its profile fields.
type ProfileResponse struct {
	User    *User    `json:"user"`
	Profile *Profile `json:"profile"`
}
