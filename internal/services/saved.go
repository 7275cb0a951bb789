package services

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SavedPostService manages users' saved post sets
type SavedPostService struct {
	saved repositories.SavedPostRepository
	posts *PostService
	store repositories.PostRepository
}

func NewSavedPostService(saved repositories.SavedPostRepository, store repositories.PostRepository, posts *PostService) *SavedPostService {
	return &SavedPostService{saved: saved, store: store, posts: posts}
}

// SavePost adds an active post to the user's saved set
func (s *SavedPostService) SavePost(ctx context.Context, userID uint, postID string) (*models.Post, error) {
	post, err := s.posts.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.saved.SavePost(ctx, userID, post.ID.Hex()); err != nil {
		return nil, err
	}
	return post, nil
}

// UnsavePost removes a post from the user's saved set. The post must exist but may
// have been deleted since it was saved.
func (s *SavedPostService) UnsavePost(ctx context.Context, userID uint, postID string) (*models.Post, error) {
	post, err := s.store.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if err := s.saved.UnsavePost(ctx, userID, post.ID.Hex()); err != nil {
		return nil, err
	}
	return post, nil
}

// SavedPosts returns the viewer's saved posts that are still active, most recently
// saved first
func (s *SavedPostService) SavedPosts(ctx context.Context, viewer *auth.Identity) ([]PostView, error) {
	if viewer == nil {
		return nil, apperr.ErrUnauthorized
	}
	saved, err := s.saved.GetSavedPostsByUser(ctx, viewer.UserID)
	if err != nil {
		return nil, err
	}
	ids := make([]primitive.ObjectID, 0, len(saved))
	for _, sp := range saved {
		if id, err := primitive.ObjectIDFromHex(sp.PostID); err == nil {
			ids = append(ids, id)
		}
	}
	found, err := s.store.GetPostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.Post, len(found))
	for _, p := range found {
		byID[p.ID] = p
	}

	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok && p.IsActive {
			posts = append(posts, p)
		}
	}
	return s.posts.ViewPosts(ctx, viewer, posts)
}
