package repositories

import (
	"context"
	"regexp"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PetRepository defines the interface for pet data operations
type PetRepository interface {
	CreatePet(ctx context.Context, pet *models.Pet) error
	GetPetByID(ctx context.Context, id string) (*models.Pet, error)
	GetPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error)
	GetPetsByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error)
	// FindPetIDsMatching returns active pets whose name, custom species or custom
	// breed contains term, case-insensitively
	FindPetIDsMatching(ctx context.Context, term string) ([]primitive.ObjectID, error)
	// FindPetIDsBySpecies returns active pets of the species
	FindPetIDsBySpecies(ctx context.Context, speciesID primitive.ObjectID) ([]primitive.ObjectID, error)
	DeactivatePet(ctx context.Context, id primitive.ObjectID) error
	DeactivateByOwner(ctx context.Context, ownerID uint) (int64, error)
}

// MongoPetRepository implements PetRepository for MongoDB
type MongoPetRepository struct {
	collection *mongo.Collection
}

func NewMongoPetRepository(db *mongo.Database) *MongoPetRepository {
	return &MongoPetRepository{collection: db.Collection(models.PetsCollection)}
}

func (r *MongoPetRepository) CreatePet(ctx context.Context, pet *models.Pet) error {
	pet.ID = primitive.NewObjectID()
	pet.CreatedAt = time.Now()
	pet.UpdatedAt = pet.CreatedAt
	pet.IsActive = true
	_, err := r.collection.InsertOne(ctx, pet)
	return mongoErr(err, "insert pet")
}

// GetPetByID retrieves a pet in any activity state
func (r *MongoPetRepository) GetPetByID(ctx context.Context, id string) (*models.Pet, error) {
	objID, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	var pet models.Pet
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&pet); err != nil {
		return nil, mongoErr(err, "find pet")
	}
	return &pet, nil
}

func (r *MongoPetRepository) GetPetsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Pet, error) {
	if len(ids) == 0 {
		return []models.Pet{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

func (r *MongoPetRepository) GetPetsByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return r.find(ctx, bson.M{"owner_id": ownerID, "is_active": true}, opts)
}

func (r *MongoPetRepository) FindPetIDsMatching(ctx context.Context, term string) ([]primitive.ObjectID, error) {
	rx := primitive.Regex{Pattern: regexp.QuoteMeta(term), Options: "i"}
	return r.findIDs(ctx, bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"name": rx},
			bson.M{"custom_species": rx},
			bson.M{"custom_breed": rx},
		},
	})
}

func (r *MongoPetRepository) FindPetIDsBySpecies(ctx context.Context, speciesID primitive.ObjectID) ([]primitive.ObjectID, error) {
	return r.findIDs(ctx, bson.M{"is_active": true, "species": speciesID})
}

func (r *MongoPetRepository) DeactivatePet(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, deactivate())
	if err != nil {
		return errors.Wrap(err, "deactivate pet")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoPetRepository) DeactivateByOwner(ctx context.Context, ownerID uint) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, bson.M{"owner_id": ownerID, "is_active": true}, deactivate())
	if err != nil {
		return 0, errors.Wrap(err, "deactivate owner pets")
	}
	return res.ModifiedCount, nil
}

func (r *MongoPetRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Pet, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find pets")
	}
	defer cursor.Close(ctx)

	pets := []models.Pet{}
	if err := cursor.All(ctx, &pets); err != nil {
		return nil, errors.Wrap(err, "decode pets")
	}
	return pets, nil
}

func (r *MongoPetRepository) findIDs(ctx context.Context, filter bson.M) ([]primitive.ObjectID, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find pet ids")
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, errors.Wrap(err, "decode pet ids")
	}
	ids := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
	}
	return ids, nil
}
