package services_test

import (
	"context"
	"testing"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUpdatePreferredSpecies(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice := f.User(t, "Alice")
	dog, cat := f.Species(t, "dog"), f.Species(t, "cat")

	user, err := f.Services.Accounts.UpdatePreferredSpecies(ctx, alice.ID, []string{dog.ID.Hex(), cat.ID.Hex(), dog.ID.Hex()})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{dog.ID.Hex(), cat.ID.Hex()}, user.PreferredSpeciesIDs())

	user, err = f.Services.Accounts.UpdatePreferredSpecies(ctx, alice.ID, []string{cat.ID.Hex()})
	require.NoError(t, err)
	assert.Equal(t, []string{cat.ID.Hex()}, user.PreferredSpeciesIDs(), "the set is replaced")

	_, err = f.Services.Accounts.UpdatePreferredSpecies(ctx, alice.ID, []string{primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	user, err = f.Services.Accounts.UpdatePreferredSpecies(ctx, alice.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, user.PreferredSpeciesIDs())
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	rex := f.Pet(alice, "Rex", nil)
	alicePost := f.Post(alice, 0, "alice", testutil.WithPets(rex))
	bobPost := f.Post(bob, 1, "bob")

	comment, err := f.Services.Comments.CreateComment(ctx, alice.ID, bobPost.ID.Hex(), "nice", nil)
	require.NoError(t, err)

	require.NoError(t, f.Services.Accounts.DeleteAccount(ctx, alice.ID))

	post, err := f.Repos.Posts.GetPostByID(ctx, alicePost.ID.Hex())
	require.NoError(t, err)
	assert.False(t, post.IsActive)

	pet, err := f.Repos.Pets.GetPetByID(ctx, rex.ID.Hex())
	require.NoError(t, err)
	assert.False(t, pet.IsActive)

	c, err := f.Repos.Comments.GetCommentByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, c.IsActive)

	user, err := f.Repos.Users.GetUserByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, user.IsActive)

	conn, err := f.Services.Feed.PostsFeed(ctx, nil, feed.Request{})
	require.NoError(t, err)
	require.Len(t, conn.Edges, 1)
	assert.Equal(t, "bob", conn.Edges[0].Node.Title)
	assert.Equal(t, int64(1), conn.TotalCount)
	assert.Zero(t, conn.Edges[0].Node.CommentCount)
}

func TestDeletedAuthorBecomesTombstone(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice := f.User(t, "Alice")
	post := f.Post(alice, 0, "hello")
	require.NoError(t, f.Repos.Users.DeactivateUser(ctx, alice.ID))

	view, err := f.Services.Posts.View(ctx, nil, &post)
	require.NoError(t, err)
	assert.True(t, view.Author.IsDeleted)
	assert.Equal(t, "Deleted User", view.Author.Name)
}
