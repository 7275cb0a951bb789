package repositories

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error)
	// ReplacePreferredSpecies swaps the user's preferred species set for speciesIDs
	ReplacePreferredSpecies(ctx context.Context, userID uint, speciesIDs []string) error
	DeactivateUser(ctx context.Context, id uint) error
}

// PostgresUserRepository implements UserRepository for PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) CreateUser(ctx context.Context, user *models.User) error {
	return gormErr(r.db.WithContext(ctx).Create(user).Error, "create user")
}

// GetUserByID retrieves a user with their preferred species
func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Preload("PreferredSpecies").First(&user, id).Error; err != nil {
		return nil, gormErr(err, "find user")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("PreferredSpecies").
		Where("firebase_uid = ?", firebaseUID).First(&user).Error
	if err != nil {
		return nil, gormErr(err, "find user by firebase uid")
	}
	return &user, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Preload("PreferredSpecies").
		Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, gormErr(err, "find user by email")
	}
	return &user, nil
}

// GetUsersByIDs retrieves users in any activity state
func (r *PostgresUserRepository) GetUsersByIDs(ctx context.Context, ids []uint) ([]models.User, error) {
	users := []models.User{}
	if len(ids) == 0 {
		return users, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "find users")
	}
	return users, nil
}

func (r *PostgresUserRepository) ReplacePreferredSpecies(ctx context.Context, userID uint, speciesIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.UserSpecies{}).Error; err != nil {
			return errors.Wrap(err, "clear preferred species")
		}
		seen := make(map[string]bool, len(speciesIDs))
		rows := make([]models.UserSpecies, 0, len(speciesIDs))
		for _, id := range speciesIDs {
			if seen[id] {
				continue
			}
			seen[id] = true
			rows = append(rows, models.UserSpecies{UserID: userID, SpeciesID: id})
		}
		if len(rows) == 0 {
			return nil
		}
		return errors.Wrap(tx.Create(&rows).Error, "store preferred species")
	})
}

func (r *PostgresUserRepository) DeactivateUser(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return errors.Wrap(res.Error, "deactivate user")
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
