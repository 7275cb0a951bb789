package services

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.uber.org/zap"
)

// AccountService manages the signed-in user's account
type AccountService struct {
	users    repositories.UserRepository
	species  repositories.SpeciesRepository
	posts    repositories.PostRepository
	pets     repositories.PetRepository
	comments repositories.CommentRepository
	logger   *zap.Logger
}

func NewAccountService(
	users repositories.UserRepository,
	species repositories.SpeciesRepository,
	posts repositories.PostRepository,
	pets repositories.PetRepository,
	comments repositories.CommentRepository,
	logger *zap.Logger,
) *AccountService {
	return &AccountService{users: users, species: species, posts: posts, pets: pets, comments: comments, logger: logger}
}

func (s *AccountService) Me(ctx context.Context, userID uint) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, lookupErr(err, "user")
	}
	return user, nil
}

// UpdatePreferredSpecies replaces the user's preferred species. Every id must name a
// known species.
func (s *AccountService) UpdatePreferredSpecies(ctx context.Context, userID uint, speciesIDs []string) (*models.User, error) {
	for _, id := range speciesIDs {
		if _, err := s.species.GetSpeciesByID(ctx, id); err != nil {
			return nil, lookupErr(err, "species")
		}
	}
	if err := s.users.ReplacePreferredSpecies(ctx, userID, speciesIDs); err != nil {
		return nil, err
	}
	return s.Me(ctx, userID)
}

// DeleteAccount soft deletes the user together with their posts, pets and comments
func (s *AccountService) DeleteAccount(ctx context.Context, userID uint) error {
	posts, err := s.posts.DeactivateByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	pets, err := s.pets.DeactivateByOwner(ctx, userID)
	if err != nil {
		return err
	}
	comments, err := s.comments.DeactivateByUser(ctx, userID)
	if err != nil {
		return err
	}
	if err := s.users.DeactivateUser(ctx, userID); err != nil {
		return lookupErr(err, "user")
	}
	s.logger.Info("account deleted",
		zap.Uint("user_id", userID),
		zap.Int64("posts", posts),
		zap.Int64("pets", pets),
		zap.Int64("comments", comments))
	return nil
}
