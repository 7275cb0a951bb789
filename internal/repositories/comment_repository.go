package repositories

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uint) (*models.Comment, error)
	// GetCommentsByPostID retrieves the active comments of a post, oldest first
	GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error)
	// CountActiveByPosts counts active comments per post
	CountActiveByPosts(ctx context.Context, postIDs []string) (map[string]int64, error)
	// DeactivateComment soft deletes the comment and its direct replies
	DeactivateComment(ctx context.Context, id uint) error
	DeactivateByPost(ctx context.Context, postID string) (int64, error)
	DeactivateByUser(ctx context.Context, userID uint) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	comment.IsActive = true
	return gormErr(r.db.WithContext(ctx).Create(comment).Error, "create comment")
}

// GetCommentByID retrieves a comment in any activity state
func (r *PostgresCommentRepository) GetCommentByID(ctx context.Context, id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.WithContext(ctx).First(&comment, id).Error; err != nil {
		return nil, gormErr(err, "find comment")
	}
	return &comment, nil
}

func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID string) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND is_active = ?", postID, true).
		Order("created_at ASC, id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, errors.Wrap(err, "find comments")
	}
	return comments, nil
}

func (r *PostgresCommentRepository) CountActiveByPosts(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		PostID string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.Comment{}).
		Select("post_id, COUNT(*) AS count").
		Where("post_id IN ? AND is_active = ?", postIDs, true).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.Wrap(err, "count comments")
	}
	for _, row := range rows {
		counts[row.PostID] = row.Count
	}
	return counts, nil
}

func (r *PostgresCommentRepository) DeactivateComment(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ? OR parent_id = ?", id, id).
		Update("is_active", false)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deactivate comment")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresCommentRepository) DeactivateByPost(ctx context.Context, postID string) (int64, error) {
	return r.deactivateWhere(ctx, "post_id = ?", postID)
}

func (r *PostgresCommentRepository) DeactivateByUser(ctx context.Context, userID uint) (int64, error) {
	return r.deactivateWhere(ctx, "user_id = ?", userID)
}

func (r *PostgresCommentRepository) deactivateWhere(ctx context.Context, query string, arg any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Comment{}).
		Where(query, arg).
		Where("is_active = ?", true).
		Update("is_active", false)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "deactivate comments")
	}
	return res.RowsAffected, nil
}
