package repositories

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the document store indexes. The unique vote index is what
// keeps the ledger at one vote per (user, post).
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		models.VotesCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "post_id", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("uniq_user_post"),
			},
			{Keys: bson.D{{Key: "post_id", Value: 1}, {Key: "value", Value: 1}}},
		},
		models.PostsCollection: {
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
			{Keys: bson.D{{Key: "author_id", Value: 1}}},
			{Keys: bson.D{{Key: "pets", Value: 1}}},
			{Keys: bson.D{{Key: "pet", Value: 1}}},
		},
		models.PetsCollection: {
			{Keys: bson.D{{Key: "species", Value: 1}, {Key: "is_active", Value: 1}}},
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		models.SpeciesCollection: {
			{
				Keys:    bson.D{{Key: "name", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for coll, idx := range indexes {
		if _, err := db.Collection(coll).Indexes().CreateMany(ctx, idx); err != nil {
			return errors.Wrapf(err, "create %s indexes", coll)
		}
	}
	return nil
}
