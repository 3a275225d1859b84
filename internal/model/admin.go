package model

// Stats is the moderation dashboard summary.
type Stats struct {
	UserCount      int `db:"user_count" json:"user_count"`
	PostCount      int `db:"post_count" json:"post_count"`
	PublishedCount int `db:"published_count" json:"published_count"`
	LikeCount      int `db:"like_count" json:"like_count"`
}
