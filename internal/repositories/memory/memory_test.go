package memory

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPostRepositoryNormalizesLegacyPet(t *testing.T) {
	db := NewDB()
	repo := NewPostRepository(db)
	petID := primitive.NewObjectID()
	post := models.Post{ID: primitive.NewObjectID(), Title: "old", Pet: &petID, IsActive: true}
	db.PutPost(post)

	got, err := repo.GetPostByID(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{petID}, got.Pets)
	assert.Nil(t, got.Pet)
	assert.Equal(t, models.PostTypePost, got.PostType)

	_, err = repo.GetPostByID(context.Background(), "nope")
	assert.ErrorIs(t, err, repositories.ErrInvalidID)
	_, err = repo.GetPostByID(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestFindPostsNewestFirst(t *testing.T) {
	db := NewDB()
	repo := NewPostRepository(db)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, title := range []string{"a", "b", "c"} {
		db.PutPost(models.Post{Title: title, IsActive: true, CreatedAt: base.Add(time.Duration(i) * time.Hour)})
	}
	db.PutPost(models.Post{Title: "hidden", CreatedAt: base.Add(time.Hour * 5)})

	posts, err := repo.FindPosts(context.Background(), feed.Filter{}, 2)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "c", posts[0].Title)
	assert.Equal(t, "b", posts[1].Title)

	n, err := repo.CountPosts(context.Background(), feed.Filter{})
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRankPopularJoinsVotesAndPets(t *testing.T) {
	ctx := context.Background()
	db := NewDB()
	posts, votes := NewPostRepository(db), NewVoteRepository(db)
	dog := primitive.NewObjectID()
	rex := models.Pet{ID: primitive.NewObjectID(), Name: "Rex", Species: &dog, IsActive: true}
	db.PutPet(rex)

	now := time.Now()
	voted := models.Post{ID: primitive.NewObjectID(), Title: "voted", IsActive: true, CreatedAt: now}
	preferred := models.Post{ID: primitive.NewObjectID(), Title: "preferred", Pets: []primitive.ObjectID{rex.ID}, IsActive: true, CreatedAt: now.Add(-time.Hour)}
	db.PutPost(voted)
	db.PutPost(preferred)
	for user := uint(1); user <= 2; user++ {
		require.NoError(t, votes.Upsert(ctx, user, voted.ID, models.Upvote))
	}

	ranked, err := posts.RankPopular(ctx, feed.Filter{}, nil, 0, 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	assert.Equal(t, "voted", ranked[0].Title)
	assert.Equal(t, int64(2), ranked[0].VoteScore)

	ranked, err = posts.RankPopular(ctx, feed.Filter{}, []string{dog.Hex()}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, "preferred", ranked[0].Title)
	assert.Equal(t, int64(5), ranked[0].CombinedScore)
}

func TestDeactivateSolePetPosts(t *testing.T) {
	db := NewDB()
	repo := NewPostRepository(db)
	rex, tom := primitive.NewObjectID(), primitive.NewObjectID()
	sole := models.Post{ID: primitive.NewObjectID(), Pets: []primitive.ObjectID{rex}, IsActive: true}
	shared := models.Post{ID: primitive.NewObjectID(), Pets: []primitive.ObjectID{rex, tom}, IsActive: true}
	legacy := models.Post{ID: primitive.NewObjectID(), Pet: &rex, IsActive: true}
	for _, p := range []models.Post{sole, shared, legacy} {
		db.PutPost(p)
	}

	n, err := repo.DeactivateSolePetPosts(context.Background(), rex)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.True(t, db.posts[shared.ID].IsActive)
	assert.False(t, db.posts[legacy.ID].IsActive)
}

func TestVoteRepositoryKeepsOneVotePerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewVoteRepository(NewDB())
	post := primitive.NewObjectID()

	require.NoError(t, repo.Upsert(ctx, 1, post, models.Upvote))
	require.NoError(t, repo.Upsert(ctx, 1, post, models.Downvote))
	n, err := repo.CountForUserPost(ctx, 1, post)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	tallies, err := repo.TallyByPosts(ctx, []primitive.ObjectID{post})
	require.NoError(t, err)
	assert.Equal(t, models.VoteTally{Downvotes: 1}, tallies[post])

	require.NoError(t, repo.Delete(ctx, 1, post))
	_, err = repo.Get(ctx, 1, post)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestPostKeysetUnknownIDs(t *testing.T) {
	db := NewDB()
	repo := NewPostRepository(db)
	post := models.Post{ID: primitive.NewObjectID(), IsActive: false, CreatedAt: time.Now()}
	db.PutPost(post)

	k, err := repo.PostKeyset(context.Background(), post.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, feed.KeysetOf(&post), k)

	for _, id := range []string{"nope", primitive.NewObjectID().Hex()} {
		_, err := repo.PostKeyset(context.Background(), id)
		assert.ErrorIs(t, err, feed.ErrCursorNotFound, id)
	}
}

func TestCancelledContext(t *testing.T) {
	db := NewDB()
	posts, votes := NewPostRepository(db), NewVoteRepository(db)
	pets, species := NewPetRepository(db), NewSpeciesRepository(db)
	post := models.Post{ID: primitive.NewObjectID(), IsActive: true}
	db.PutPost(post)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := posts.GetPostByID(ctx, post.ID.Hex())
	assert.ErrorIs(t, err, context.Canceled)
	_, err = posts.FindPosts(ctx, feed.Filter{}, 10)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = posts.CountPosts(ctx, feed.Filter{})
	assert.ErrorIs(t, err, context.Canceled)
	_, err = posts.PostKeyset(ctx, post.ID.Hex())
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, votes.Upsert(ctx, 1, post.ID, 1), context.Canceled)
	_, err = pets.GetPetsByOwner(ctx, 1)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = species.ListSpecies(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = votes.Get(context.Background(), 1, post.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound, "cancelled upsert wrote nothing")
}
