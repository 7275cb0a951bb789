package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/anonto42/pet-adopt/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	rex := f.Pet(alice, "Rex", nil)
	tom := f.Pet(bob, "Tom", nil)

	post, err := f.Services.Posts.CreatePost(ctx, alice.ID, services.CreatePostInput{
		Title:       "<script>x</script>Rex needs a home",
		Description: "Friendly <i>and</i> calm",
		PostType:    "adopt",
		PetIDs:      []string{rex.ID.Hex(), rex.ID.Hex()},
		Tags:        []string{"<b>dog</b>"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Rex needs a home", post.Title)
	assert.Equal(t, "Friendly and calm", post.Description)
	assert.Equal(t, []string{"dog"}, post.Tags)
	assert.Equal(t, []primitive.ObjectID{rex.ID}, post.Pets)
	assert.Nil(t, post.Pet, "only the canonical pet set is written")
	assert.True(t, post.IsActive)

	_, err = f.Services.Posts.CreatePost(ctx, alice.ID, services.CreatePostInput{
		Title: "Tom", Description: "not mine", PostType: "post", PetIDs: []string{tom.ID.Hex()},
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidOperation)

	_, err = f.Services.Posts.CreatePost(ctx, alice.ID, services.CreatePostInput{
		Title: "Lost", Description: "wrong type", PostType: "adopt", ReportType: "lost",
	})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	missing, err := f.Services.Posts.CreatePost(ctx, alice.ID, services.CreatePostInput{
		Title: "Lost", Description: "near the park", PostType: "missing", ReportType: "lost",
	})
	require.NoError(t, err)
	require.NotNil(t, missing.ReportType)
	assert.Equal(t, models.ReportTypeLost, *missing.ReportType)

	_, err = f.Services.Posts.CreatePost(ctx, alice.ID, services.CreatePostInput{Title: "x", Description: "y", PostType: "story"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.Services.Posts.CreatePost(ctx, alice.ID, services.CreatePostInput{Title: "<p></p>", Description: "y", PostType: "post"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "title empty after sanitizing")
}

func TestEnrichDerivedFields(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob, carol := f.User(t, "Alice"), f.User(t, "Bob"), f.User(t, "Carol")
	rex := f.Pet(alice, "Rex", nil)
	gonePet := f.Pet(alice, "Ghost", nil)
	require.NoError(t, f.Repos.Pets.DeactivatePet(ctx, gonePet.ID))

	post := f.Post(alice, 0, "Rex", testutil.WithPets(rex, gonePet))
	id := post.ID.Hex()

	_, err := f.Services.Votes.CastVote(ctx, bob.ID, id, 1)
	require.NoError(t, err)
	_, err = f.Services.Votes.CastVote(ctx, carol.ID, id, -1)
	require.NoError(t, err)
	_, err = f.Services.Votes.CastVote(ctx, alice.ID, id, 1)
	require.NoError(t, err)

	_, err = f.Services.Comments.CreateComment(ctx, bob.ID, id, "cute", nil)
	require.NoError(t, err)
	deleted, err := f.Services.Comments.CreateComment(ctx, bob.ID, id, "oops", nil)
	require.NoError(t, err)
	require.NoError(t, f.Services.Comments.DeleteComment(ctx, bob.ID, deleted.ID))

	_, err = f.Services.Reports.ReportPost(ctx, carol.ID, id, []string{"spam"}, "")
	require.NoError(t, err)
	_, err = f.Services.Saved.SavePost(ctx, bob.ID, id)
	require.NoError(t, err)

	anon, err := f.Services.Posts.View(ctx, nil, &post)
	require.NoError(t, err)
	assert.Equal(t, int64(2), anon.Upvotes)
	assert.Equal(t, int64(1), anon.Downvotes)
	assert.Equal(t, int64(1), anon.VoteScore)
	assert.Nil(t, anon.UserVote)
	assert.False(t, anon.IsSaved)
	assert.Equal(t, int64(1), anon.CommentCount, "inactive comments are not counted")
	assert.Equal(t, int64(1), anon.ReportCount)
	assert.Equal(t, "Alice", anon.Author.Name)
	require.Len(t, anon.PetList, 1, "inactive pets are dropped")
	require.NotNil(t, anon.Pet)
	assert.Equal(t, rex.ID, anon.Pet.ID)

	asBob, err := f.Services.Posts.View(ctx, f.Identity(t, bob), &post)
	require.NoError(t, err)
	require.NotNil(t, asBob.UserVote)
	assert.Equal(t, 1, *asBob.UserVote)
	assert.True(t, asBob.IsSaved)

	asCarol, err := f.Services.Posts.View(ctx, f.Identity(t, carol), &post)
	require.NoError(t, err)
	require.NotNil(t, asCarol.UserVote)
	assert.Equal(t, -1, *asCarol.UserVote)
	assert.False(t, asCarol.IsSaved)
}

func TestEnrichLegacyPetAndMissingAuthor(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice := f.User(t, "Alice")
	rex := f.Pet(alice, "Rex", nil)
	ghost := &models.User{ID: 9999}
	post := f.Post(ghost, 0, "legacy", func(p *models.Post) { p.Pet = &rex.ID; p.Tags = nil })

	views, err := f.Services.Posts.ViewPosts(ctx, nil, []models.Post{post})
	require.NoError(t, err)
	require.Len(t, views, 1)
	v := views[0]
	assert.Equal(t, models.DeletedUser(9999), v.Author)
	assert.Equal(t, []primitive.ObjectID{rex.ID}, v.Pets)
	require.Len(t, v.PetList, 1)
	assert.Equal(t, "Rex", v.PetList[0].Name)
	assert.NotNil(t, v.Tags)
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	post := f.Post(alice, 0, "hello")
	id := post.ID.Hex()

	_, err := f.Services.Comments.CreateComment(ctx, bob.ID, id, "hi", nil)
	require.NoError(t, err)
	_, err = f.Services.Saved.SavePost(ctx, bob.ID, id)
	require.NoError(t, err)

	err = f.Services.Posts.DeletePost(ctx, f.Identity(t, bob), id)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)

	require.NoError(t, f.Services.Posts.DeletePost(ctx, f.Identity(t, alice), id))

	_, err = f.Services.Posts.GetPost(ctx, id)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	counts, err := f.Repos.Comments.CountActiveByPosts(ctx, []string{id})
	require.NoError(t, err)
	assert.Zero(t, counts[id])

	saved, err := f.Services.Saved.SavedPosts(ctx, f.Identity(t, bob))
	require.NoError(t, err)
	assert.Empty(t, saved)

	err = f.Services.Posts.DeletePost(ctx, f.Identity(t, alice), id)
	assert.ErrorIs(t, err, apperr.ErrNotFound, "already deleted")
}

func TestAdminDeletesAnyPost(t *testing.T) {
	f := testutil.New(t)
	alice := f.User(t, "Alice")
	admin := f.Identity(t, f.User(t, "Admin"))
	post := f.Post(alice, 0, "hello")

	assert.NoError(t, f.Services.Posts.DeletePost(context.Background(), admin, post.ID.Hex()))
}
