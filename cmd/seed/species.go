package main

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var catalogue = []models.Species{
	{Name: "dog", Label: "Dog"},
	{Name: "cat", Label: "Cat"},
	{Name: "bird", Label: "Bird"},
	{Name: "rabbit", Label: "Rabbit"},
	{Name: "hamster", Label: "Hamster"},
	{Name: "fish", Label: "Fish"},
	{Name: "reptile", Label: "Reptile"},
	{Name: "horse", Label: "Horse"},
}

var speciesCmd = &cobra.Command{
	Use:   "species",
	Short: "Upsert the species catalogue",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(ctx context.Context, e *env, _ *cobra.Command, _ []string) error {
		species, err := seedSpecies(ctx, e.repos.Species)
		if err != nil {
			return err
		}
		e.logger.Info("species seeded", zap.Int("count", len(species)))
		return nil
	}),
}

// seedSpecies upserts the catalogue keyed by name and returns the stored entries
func seedSpecies(ctx context.Context, repo repositories.SpeciesRepository) ([]models.Species, error) {
	out := make([]models.Species, 0, len(catalogue))
	for _, s := range catalogue {
		s := s
		if err := repo.UpsertSpecies(ctx, &s); err != nil {
			return nil, errors.Wrapf(err, "upsert species %s", s.Name)
		}
		out = append(out, s)
	}
	return out, nil
}
