package memory

import (
	"context"
	"sort"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SpeciesRepository implements repositories.SpeciesRepository in memory
type SpeciesRepository struct {
	db *DB
}

var _ repositories.SpeciesRepository = (*SpeciesRepository)(nil)

func NewSpeciesRepository(db *DB) *SpeciesRepository {
	return &SpeciesRepository{db: db}
}

func (r *SpeciesRepository) UpsertSpecies(ctx context.Context, species *models.Species) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, s := range r.db.species {
		if s.Name == species.Name {
			s.Label = species.Label
			r.db.species[id] = s
			*species = s
			return nil
		}
	}
	species.ID = primitive.NewObjectID()
	r.db.species[species.ID] = *species
	return nil
}

func (r *SpeciesRepository) GetSpeciesByID(ctx context.Context, id string) (*models.Species, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	objID, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	s, ok := r.db.species[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &s, nil
}

func (r *SpeciesRepository) ListSpecies(ctx context.Context) ([]models.Species, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	out := make([]models.Species, 0, len(r.db.species))
	for _, s := range r.db.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
