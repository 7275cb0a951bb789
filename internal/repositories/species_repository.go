package repositories

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SpeciesRepository defines the interface for the species catalogue
type SpeciesRepository interface {
	// UpsertSpecies creates the species or refreshes its label, keyed by name
	UpsertSpecies(ctx context.Context, species *models.Species) error
	GetSpeciesByID(ctx context.Context, id string) (*models.Species, error)
	ListSpecies(ctx context.Context) ([]models.Species, error)
}

// MongoSpeciesRepository implements SpeciesRepository for MongoDB
type MongoSpeciesRepository struct {
	collection *mongo.Collection
}

func NewMongoSpeciesRepository(db *mongo.Database) *MongoSpeciesRepository {
	return &MongoSpeciesRepository{collection: db.Collection(models.SpeciesCollection)}
}

func (r *MongoSpeciesRepository) UpsertSpecies(ctx context.Context, species *models.Species) error {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.collection.FindOneAndUpdate(ctx,
		bson.M{"name": species.Name},
		bson.M{
			"$set":         bson.M{"label": species.Label},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		},
		opts,
	).Decode(species)
	return mongoErr(err, "upsert species")
}

func (r *MongoSpeciesRepository) GetSpeciesByID(ctx context.Context, id string) (*models.Species, error) {
	objID, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	var species models.Species
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&species); err != nil {
		return nil, mongoErr(err, "find species")
	}
	return &species, nil
}

func (r *MongoSpeciesRepository) ListSpecies(ctx context.Context) ([]models.Species, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(err, "find species")
	}
	defer cursor.Close(ctx)

	species := []models.Species{}
	if err := cursor.All(ctx, &species); err != nil {
		return nil, errors.Wrap(err, "decode species")
	}
	return species, nil
}
