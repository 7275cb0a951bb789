package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	Upvote   = 1
	Downvote = -1
)

// Vote is one user's vote on one post. There is at most one per (user, post).
type Vote struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	UserID    uint               `json:"user_id" bson:"user_id"`
	PostID    primitive.ObjectID `json:"post_id" bson:"post_id"`
	Value     int                `json:"value" bson:"value"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// VoteTally holds the derived counts for a post
type VoteTally struct {
	Upvotes   int64 `json:"upvotes" bson:"upvotes"`
	Downvotes int64 `json:"downvotes" bson:"downvotes"`
}

// Score is upvotes minus downvotes
func (t VoteTally) Score() int64 {
	return t.Upvotes - t.Downvotes
}

// VoteRequest defines the request body for voting on a post
type VoteRequest struct {
	Value int `json:"value"`
}
