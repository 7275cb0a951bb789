package services

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.uber.org/zap"
)

// AddPetInput carries the fields of a new pet
type AddPetInput struct {
	Name          string
	SpeciesID     string
	CustomSpecies string
	CustomBreed   string
}

// PetService manages pets and the species catalogue
type PetService struct {
	pets    repositories.PetRepository
	posts   repositories.PostRepository
	species repositories.SpeciesRepository
	logger  *zap.Logger
}

func NewPetService(pets repositories.PetRepository, posts repositories.PostRepository, species repositories.SpeciesRepository, logger *zap.Logger) *PetService {
	return &PetService{pets: pets, posts: posts, species: species, logger: logger}
}

// AddPet registers a pet for owner. A species id must name a known species.
func (s *PetService) AddPet(ctx context.Context, ownerID uint, in AddPetInput) (*models.Pet, error) {
	pet := &models.Pet{
		Name:          sanitizeText(in.Name),
		CustomSpecies: sanitizeText(in.CustomSpecies),
		CustomBreed:   sanitizeText(in.CustomBreed),
		OwnerID:       ownerID,
	}
	if pet.Name == "" {
		return nil, apperr.InvalidArgument("pet name is required")
	}
	if in.SpeciesID != "" {
		species, err := s.species.GetSpeciesByID(ctx, in.SpeciesID)
		if err != nil {
			return nil, lookupErr(err, "species")
		}
		pet.Species = &species.ID
	}
	if err := s.pets.CreatePet(ctx, pet); err != nil {
		return nil, err
	}
	return pet, nil
}

// PetsOf lists the owner's active pets
func (s *PetService) PetsOf(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	return s.pets.GetPetsByOwner(ctx, ownerID)
}

// DeletePet soft deletes a pet and every post that has it as its only pet
func (s *PetService) DeletePet(ctx context.Context, actor *auth.Identity, id string) error {
	pet, err := s.pets.GetPetByID(ctx, id)
	if err != nil {
		return lookupErr(err, "pet")
	}
	if !pet.IsActive {
		return apperr.NotFound("pet not found")
	}
	if pet.OwnerID != actor.UserID {
		return apperr.Unauthorized("not allowed to delete this pet")
	}

	if err := s.pets.DeactivatePet(ctx, pet.ID); err != nil {
		return err
	}
	n, err := s.posts.DeactivateSolePetPosts(ctx, pet.ID)
	if err != nil {
		return err
	}
	s.logger.Info("pet deleted", zap.String("pet_id", id), zap.Int64("posts_deactivated", n))
	return nil
}

func (s *PetService) ListSpecies(ctx context.Context) ([]models.Species, error) {
	return s.species.ListSpecies(ctx)
}
