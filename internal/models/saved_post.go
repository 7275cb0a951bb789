package models

import "time"

// SavedPost is a user's bookmark on a feed post. Posts live in MongoDB, so PostID
// holds the post's ObjectID hex and carries no foreign key. A (user, post) pair is
// stored at most once.
type SavedPost struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_saved_post_owner,priority:1"`
	PostID    string    `json:"post_id" gorm:"size:24;not null;index;uniqueIndex:idx_saved_post_owner,priority:2"`
	CreatedAt time.Time `json:"saved_at"`
}
