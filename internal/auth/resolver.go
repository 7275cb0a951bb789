package auth

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrInactiveUser is returned when the token belongs to a deleted account
var ErrInactiveUser = errors.New("account is deactivated")

// Users is the user lookup the resolver needs
type Users interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
	GetUserByFirebaseUID(ctx context.Context, firebaseUID string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
}

// Resolver turns bearer tokens into identities
type Resolver struct {
	verifier   Verifier
	users      Users
	adminEmail string
	logger     *zap.Logger
}

func NewResolver(verifier Verifier, users Users, adminEmail string, logger *zap.Logger) *Resolver {
	return &Resolver{verifier: verifier, users: users, adminEmail: adminEmail, logger: logger}
}

// Resolve verifies token and loads its user. Firebase users seen for the first time
// are registered on the spot.
func (r *Resolver) Resolve(ctx context.Context, token string) (*Identity, error) {
	subject, err := r.verifier.Verify(ctx, token)
	if err != nil {
		return nil, err
	}

	var user *models.User
	if subject.FirebaseUID != "" {
		user, err = r.users.GetUserByFirebaseUID(ctx, subject.FirebaseUID)
		if errors.Is(err, repositories.ErrNotFound) {
			user, err = r.register(ctx, subject)
		}
	} else {
		user, err = r.users.GetUserByID(ctx, subject.UserID)
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, errors.Wrap(ErrInvalidToken, "unknown user")
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if !user.IsActive {
		return nil, ErrInactiveUser
	}
	return NewIdentity(user, r.adminEmail), nil
}

func (r *Resolver) register(ctx context.Context, s *Subject) (*models.User, error) {
	uid := s.FirebaseUID
	name := s.Name
	if name == "" {
		name = s.Email
	}
	user := &models.User{Name: name, Email: s.Email, FirebaseUID: &uid, Role: models.RoleUser, IsActive: true}
	if err := r.users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	r.logger.Info("registered firebase user", zap.Uint("user_id", user.ID), zap.String("firebase_uid", uid))
	return user, nil
}
