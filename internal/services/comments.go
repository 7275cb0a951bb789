package services

import (
	"context"
	"slices"
	"unicode/utf8"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.uber.org/zap"
)

const maxCommentLength = 2000

// CommentView is a comment with its author resolved
type CommentView struct {
	models.Comment
	Author models.UserCompact `json:"author"`
}

// CommentService manages comments on posts
type CommentService struct {
	comments repositories.CommentRepository
	posts    repositories.PostRepository
	users    repositories.UserRepository
	logger   *zap.Logger
}

func NewCommentService(comments repositories.CommentRepository, posts repositories.PostRepository, users repositories.UserRepository, logger *zap.Logger) *CommentService {
	return &CommentService{comments: comments, posts: posts, users: users, logger: logger}
}

// CreateComment adds a comment to an active post. A reply's parent must belong to
// the same post.
func (s *CommentService) CreateComment(ctx context.Context, userID uint, postID, content string, parentID *uint) (*CommentView, error) {
	content = sanitizeText(content)
	if content == "" {
		return nil, apperr.InvalidArgument("comment content is required")
	}
	if utf8.RuneCountInString(content) > maxCommentLength {
		return nil, apperr.InvalidArgument("comment must be at most %d characters", maxCommentLength)
	}

	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if !post.IsActive {
		return nil, apperr.NotFound("post not found")
	}

	if parentID != nil {
		parent, err := s.comments.GetCommentByID(ctx, *parentID)
		if err != nil {
			return nil, lookupErr(err, "parent comment")
		}
		if !parent.IsActive || parent.PostID != post.ID.Hex() {
			return nil, apperr.InvalidArgument("parent comment does not belong to this post")
		}
	}

	comment := &models.Comment{PostID: post.ID.Hex(), UserID: userID, ParentID: parentID, Content: content}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	views, err := s.withAuthors(ctx, []models.Comment{*comment})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// DeleteComment soft deletes the author's comment and its direct replies
func (s *CommentService) DeleteComment(ctx context.Context, userID uint, id uint) error {
	comment, err := s.comments.GetCommentByID(ctx, id)
	if err != nil {
		return lookupErr(err, "comment")
	}
	if !comment.IsActive {
		return apperr.NotFound("comment not found")
	}
	if comment.UserID != userID {
		return apperr.Unauthorized("not allowed to delete this comment")
	}
	return s.comments.DeactivateComment(ctx, id)
}

// CommentsByPost lists the active comments of an active post, oldest first
func (s *CommentService) CommentsByPost(ctx context.Context, postID string) ([]CommentView, error) {
	post, err := s.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if !post.IsActive {
		return nil, apperr.NotFound("post not found")
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, post.ID.Hex())
	if err != nil {
		return nil, err
	}
	return s.withAuthors(ctx, comments)
}

func (s *CommentService) withAuthors(ctx context.Context, comments []models.Comment) ([]CommentView, error) {
	ids := make([]uint, 0, len(comments))
	for _, c := range comments {
		if !slices.Contains(ids, c.UserID) {
			ids = append(ids, c.UserID)
		}
	}
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		byID[u.ID] = u.ToCompact()
	}

	views := make([]CommentView, len(comments))
	for i, c := range comments {
		author, ok := byID[c.UserID]
		if !ok {
			author = models.DeletedUser(c.UserID)
		}
		views[i] = CommentView{Comment: c, Author: author}
	}
	return views, nil
}
