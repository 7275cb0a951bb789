package services

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/anonto42/pet-adopt/backend/pkg/metrics"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// VoteService maintains the one-vote-per-user-per-post ledger
type VoteService struct {
	posts   repositories.PostRepository
	votes   repositories.VoteRepository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewVoteService(posts repositories.PostRepository, votes repositories.VoteRepository, m *metrics.Metrics, logger *zap.Logger) *VoteService {
	return &VoteService{posts: posts, votes: votes, metrics: m, logger: logger}
}

// CastVote records value as the user's vote on the post, overwriting any earlier vote.
// The post may be in any activity state.
func (s *VoteService) CastVote(ctx context.Context, userID uint, postID string, value int) (*models.Post, error) {
	if value != models.Upvote && value != models.Downvote {
		return nil, apperr.InvalidArgument("vote value must be 1 or -1")
	}
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if err := s.votes.Upsert(ctx, userID, post.ID, value); err != nil {
		// a concurrent first vote by the same user won the unique index
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.AlreadyExists("a vote on this post is already being recorded, try again")
		}
		return nil, err
	}
	s.metrics.RecordVote(ctx, value)
	s.logger.Debug("vote cast", zap.Uint("user_id", userID), zap.String("post_id", postID), zap.Int("value", value))
	return post, nil
}

// RemoveVote deletes the user's vote on the post. Removing a vote that does not
// exist succeeds.
func (s *VoteService) RemoveVote(ctx context.Context, userID uint, postID string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if err := s.votes.Delete(ctx, userID, post.ID); err != nil {
		return nil, err
	}
	return post, nil
}

// ScoreFor returns upvotes minus downvotes for the post, counted at call time
func (s *VoteService) ScoreFor(ctx context.Context, postID string) (int64, error) {
	id, err := repositories.ParseObjectID(postID)
	if err != nil {
		return 0, apperr.NotFound("post not found")
	}
	tallies, err := s.votes.TallyByPosts(ctx, []primitive.ObjectID{id})
	if err != nil {
		return 0, err
	}
	return tallies[id].Score(), nil
}

// VoteOf returns the user's vote on the post, or nil when they never voted
func (s *VoteService) VoteOf(ctx context.Context, userID uint, postID string) (*int, error) {
	id, err := repositories.ParseObjectID(postID)
	if err != nil {
		return nil, apperr.NotFound("post not found")
	}
	vote, err := s.votes.Get(ctx, userID, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &vote.Value, nil
}
