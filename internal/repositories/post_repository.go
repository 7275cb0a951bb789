package repositories

import (
	"context"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	feed.Store
	// GetPostByID returns the post in any activity state
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error)
	DeactivatePost(ctx context.Context, id primitive.ObjectID) error
	// DeactivateByAuthor soft deletes every post of the author
	DeactivateByAuthor(ctx context.Context, authorID uint) (int64, error)
	// DeactivateSolePetPosts soft deletes the posts whose only pet is petID
	DeactivateSolePetPosts(ctx context.Context, petID primitive.ObjectID) (int64, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection(models.PostsCollection)}
}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	post.IsActive = true
	post.Pet = nil
	_, err := r.collection.InsertOne(ctx, post)
	return mongoErr(err, "insert post")
}

// GetPostByID retrieves a post by ID in any activity state
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := ParseObjectID(id)
	if err != nil {
		return nil, err
	}

	var post models.Post
	if err := r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post); err != nil {
		return nil, mongoErr(err, "find post")
	}
	post.Normalize()
	return &post, nil
}

// PostKeyset returns the recency position of a post in any activity state
func (r *MongoPostRepository) PostKeyset(ctx context.Context, id string) (feed.Keyset, error) {
	objID, err := ParseObjectID(id)
	if err != nil {
		return feed.Keyset{}, errors.Wrap(feed.ErrCursorNotFound, err.Error())
	}

	var post models.Post
	opts := options.FindOne().SetProjection(bson.M{"_id": 1, "created_at": 1})
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}, opts).Decode(&post)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return feed.Keyset{}, errors.Wrapf(feed.ErrCursorNotFound, "post %s", id)
	}
	if err != nil {
		return feed.Keyset{}, mongoErr(err, "find feed cursor")
	}
	return feed.KeysetOf(&post), nil
}

// GetPostsByIDs retrieves the posts with the given ids in any activity state
func (r *MongoPostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": ids}}, options.Find())
}

// FindPosts retrieves active posts matching f, newest first
func (r *MongoPostRepository) FindPosts(ctx context.Context, f feed.Filter, limit int) ([]models.Post, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(int64(limit))
	return r.find(ctx, f.BSON(), opts)
}

// RankPopular runs the popularity aggregation over the posts matching f
func (r *MongoPostRepository) RankPopular(ctx context.Context, f feed.Filter, preferred []string, skip, limit int) ([]feed.RankedPost, error) {
	cursor, err := r.collection.Aggregate(ctx, feed.PopularityPipeline(f, preferred, skip, limit))
	if err != nil {
		return nil, errors.Wrap(err, "aggregate popular posts")
	}
	defer cursor.Close(ctx)

	ranked := []feed.RankedPost{}
	if err := cursor.All(ctx, &ranked); err != nil {
		return nil, errors.Wrap(err, "decode popular posts")
	}
	for i := range ranked {
		ranked[i].Normalize()
	}
	return ranked, nil
}

// CountPosts counts the posts matching f
func (r *MongoPostRepository) CountPosts(ctx context.Context, f feed.Filter) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, f.BSON())
	if err != nil {
		return 0, errors.Wrap(err, "count posts")
	}
	return n, nil
}

// DeactivatePost soft deletes a post
func (r *MongoPostRepository) DeactivatePost(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, deactivate())
	if err != nil {
		return errors.Wrap(err, "deactivate post")
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeactivateByAuthor soft deletes the author's active posts
func (r *MongoPostRepository) DeactivateByAuthor(ctx context.Context, authorID uint) (int64, error) {
	res, err := r.collection.UpdateMany(ctx, bson.M{"author_id": authorID, "is_active": true}, deactivate())
	if err != nil {
		return 0, errors.Wrap(err, "deactivate author posts")
	}
	return res.ModifiedCount, nil
}

// DeactivateSolePetPosts soft deletes posts that reference petID as their only pet,
// either through the canonical set or the legacy field.
func (r *MongoPostRepository) DeactivateSolePetPosts(ctx context.Context, petID primitive.ObjectID) (int64, error) {
	filter := bson.M{
		"is_active": true,
		"$or": bson.A{
			bson.M{"pets": bson.A{petID}},
			bson.M{"pet": petID, "$or": bson.A{
				bson.M{"pets": bson.M{"$exists": false}},
				bson.M{"pets": bson.M{"$size": 0}},
			}},
		},
	}
	res, err := r.collection.UpdateMany(ctx, filter, deactivate())
	if err != nil {
		return 0, errors.Wrap(err, "deactivate pet posts")
	}
	return res.ModifiedCount, nil
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.Post, error) {
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, errors.Wrap(err, "find posts")
	}
	defer cursor.Close(ctx)

	posts := []models.Post{}
	if err = cursor.All(ctx, &posts); err != nil {
		return nil, errors.Wrap(err, "decode posts")
	}
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, nil
}

func deactivate() bson.M {
	return bson.M{"$set": bson.M{"is_active": false, "updated_at": time.Now()}}
}
