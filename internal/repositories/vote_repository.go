package repositories

import (
	"context"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// VoteRepository defines the interface for the vote ledger
type VoteRepository interface {
	// Upsert stores value as the user's vote on the post, replacing any earlier vote
	Upsert(ctx context.Context, userID uint, postID primitive.ObjectID, value int) error
	// Delete removes the user's vote; a missing vote is not an error
	Delete(ctx context.Context, userID uint, postID primitive.ObjectID) error
	Get(ctx context.Context, userID uint, postID primitive.ObjectID) (*models.Vote, error)
	CountForUserPost(ctx context.Context, userID uint, postID primitive.ObjectID) (int64, error)
	// TallyByPosts counts up and down votes per post. Posts without votes are absent.
	TallyByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]models.VoteTally, error)
	// VotesByUser returns the user's vote value per post for the posts they voted on
	VotesByUser(ctx context.Context, userID uint, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error)
}

// MongoVoteRepository implements VoteRepository for MongoDB
type MongoVoteRepository struct {
	collection *mongo.Collection
}

func NewMongoVoteRepository(db *mongo.Database) *MongoVoteRepository {
	return &MongoVoteRepository{collection: db.Collection(models.VotesCollection)}
}

func (r *MongoVoteRepository) Upsert(ctx context.Context, userID uint, postID primitive.ObjectID, value int) error {
	now := time.Now()
	update := bson.M{
		"$set":         bson.M{"value": value, "updated_at": now},
		"$setOnInsert": bson.M{"created_at": now},
	}
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"user_id": userID, "post_id": postID},
		update,
		options.Update().SetUpsert(true))
	return mongoErr(err, "upsert vote")
}

func (r *MongoVoteRepository) Delete(ctx context.Context, userID uint, postID primitive.ObjectID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"user_id": userID, "post_id": postID})
	return mongoErr(err, "delete vote")
}

func (r *MongoVoteRepository) Get(ctx context.Context, userID uint, postID primitive.ObjectID) (*models.Vote, error) {
	var vote models.Vote
	err := r.collection.FindOne(ctx, bson.M{"user_id": userID, "post_id": postID}).Decode(&vote)
	if err != nil {
		return nil, mongoErr(err, "find vote")
	}
	return &vote, nil
}

func (r *MongoVoteRepository) CountForUserPost(ctx context.Context, userID uint, postID primitive.ObjectID) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"user_id": userID, "post_id": postID})
	if err != nil {
		return 0, errors.Wrap(err, "count votes")
	}
	return n, nil
}

func (r *MongoVoteRepository) TallyByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]models.VoteTally, error) {
	tallies := make(map[primitive.ObjectID]models.VoteTally, len(postIDs))
	if len(postIDs) == 0 {
		return tallies, nil
	}

	countIf := func(v int) bson.M {
		return bson.M{"$sum": bson.M{"$cond": bson.A{bson.M{"$eq": bson.A{"$value", v}}, 1, 0}}}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"post_id": bson.M{"$in": postIDs}}}},
		{{Key: "$group", Value: bson.M{
			"_id":       "$post_id",
			"upvotes":   countIf(models.Upvote),
			"downvotes": countIf(models.Downvote),
		}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, errors.Wrap(err, "aggregate vote tallies")
	}
	defer cursor.Close(ctx)

	var rows []struct {
		PostID           primitive.ObjectID `bson:"_id"`
		models.VoteTally `bson:",inline"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode vote tallies")
	}
	for _, row := range rows {
		tallies[row.PostID] = row.VoteTally
	}
	return tallies, nil
}

func (r *MongoVoteRepository) VotesByUser(ctx context.Context, userID uint, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	votes := make(map[primitive.ObjectID]int)
	if len(postIDs) == 0 {
		return votes, nil
	}
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID, "post_id": bson.M{"$in": postIDs}})
	if err != nil {
		return nil, errors.Wrap(err, "find user votes")
	}
	defer cursor.Close(ctx)

	var rows []models.Vote
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, errors.Wrap(err, "decode user votes")
	}
	for _, v := range rows {
		votes[v.PostID] = v.Value
	}
	return votes, nil
}
