package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PetRepository implements repositories.PetRepository in memory
type PetRepository struct {
	db *DB
}

var _ repositories.PetRepository = (*PetRepository)(nil)

func NewPetRepository(db *DB) *PetRepository {
	return &PetRepository{db: db}
}

func (r *PetRepository) CreatePet(ctx context.Context, pet *models.Pet) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pet.ID = primitive.NewObjectID()
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt
	pet.IsActive = true

	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.pets[pet.ID] = *pet
	return nil
}

func (r *PetRepository) GetPetByID(ctx context.Context, id string) (*models.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	objID, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.pets[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r *PetRepository) GetPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	pets := make([]models.Pet, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.db.pets[id]; ok {
			pets = append(pets, p)
		}
	}
	return pets, nil
}

func (r *PetRepository) GetPetsByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	pets := []models.Pet{}
	for _, p := range r.db.pets {
		if p.OwnerID == ownerID && p.IsActive {
			pets = append(pets, p)
		}
	}
	sort.Slice(pets, func(i, j int) bool { return pets[i].CreatedAt.After(pets[j].CreatedAt) })
	return pets, nil
}

func (r *PetRepository) FindPetIDsMatching(ctx context.Context, term string) ([]primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	term = strings.ToLower(term)
	return r.ids(func(p models.Pet) bool {
		for _, field := range []string{p.Name, p.CustomSpecies, p.CustomBreed} {
			if strings.Contains(strings.ToLower(field), term) {
				return true
			}
		}
		return false
	}), nil
}

func (r *PetRepository) FindPetIDsBySpecies(ctx context.Context, speciesID primitive.ObjectID) ([]primitive.ObjectID, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.ids(func(p models.Pet) bool {
		return p.Species != nil && *p.Species == speciesID
	}), nil
}

func (r *PetRepository) DeactivatePet(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.pets[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	r.db.pets[id] = p
	return nil
}

func (r *PetRepository) DeactivateByOwner(ctx context.Context, ownerID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	for id, p := range r.db.pets {
		if p.OwnerID != ownerID || !p.IsActive {
			continue
		}
		p.IsActive = false
		p.UpdatedAt = time.Now()
		r.db.pets[id] = p
		n++
	}
	return n, nil
}

// ids returns the active pets satisfying match
func (r *PetRepository) ids(match func(models.Pet) bool) []primitive.ObjectID {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	ids := []primitive.ObjectID{}
	for id, p := range r.db.pets {
		if p.IsActive && match(p) {
			ids = append(ids, id)
		}
	}
	return ids
}
