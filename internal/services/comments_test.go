package services_test

import (
	"context"
	"strings"
	"testing"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	post := f.Post(alice, 0, "hello").ID.Hex()
	other := f.Post(alice, 1, "other").ID.Hex()
	gone := f.Post(alice, 2, "gone", func(p *models.Post) { p.IsActive = false }).ID.Hex()

	root, err := f.Services.Comments.CreateComment(ctx, bob.ID, post, " <b>so</b> cute ", nil)
	require.NoError(t, err)
	assert.Equal(t, "so cute", root.Content)
	assert.Equal(t, "Bob", root.Author.Name)

	reply, err := f.Services.Comments.CreateComment(ctx, alice.ID, post, "thanks", &root.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, root.ID, *reply.ParentID)

	_, err = f.Services.Comments.CreateComment(ctx, alice.ID, other, "wrong thread", &root.ID)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.Services.Comments.CreateComment(ctx, bob.ID, gone, "late", nil)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = f.Services.Comments.CreateComment(ctx, bob.ID, post, "<i></i>", nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	_, err = f.Services.Comments.CreateComment(ctx, bob.ID, post, strings.Repeat("a", 2001), nil)
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)

	comments, err := f.Services.Comments.CommentsByPost(ctx, post)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, root.ID, comments[0].ID, "oldest first")
}

func TestDeleteCommentTakesReplies(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	post := f.Post(alice, 0, "hello").ID.Hex()

	root, err := f.Services.Comments.CreateComment(ctx, bob.ID, post, "root", nil)
	require.NoError(t, err)
	_, err = f.Services.Comments.CreateComment(ctx, alice.ID, post, "reply", &root.ID)
	require.NoError(t, err)
	keep, err := f.Services.Comments.CreateComment(ctx, alice.ID, post, "separate", nil)
	require.NoError(t, err)

	assert.ErrorIs(t, f.Services.Comments.DeleteComment(ctx, alice.ID, root.ID), apperr.ErrUnauthorized)
	require.NoError(t, f.Services.Comments.DeleteComment(ctx, bob.ID, root.ID))

	comments, err := f.Services.Comments.CommentsByPost(ctx, post)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, keep.ID, comments[0].ID)

	assert.ErrorIs(t, f.Services.Comments.DeleteComment(ctx, bob.ID, root.ID), apperr.ErrNotFound)
	assert.ErrorIs(t, f.Services.Comments.DeleteComment(ctx, bob.ID, 424242), apperr.ErrNotFound)
}

func TestSavedPosts(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	first := f.Post(alice, 0, "first").ID.Hex()
	second := f.Post(alice, 1, "second").ID.Hex()
	gone := f.Post(alice, 2, "gone", func(p *models.Post) { p.IsActive = false }).ID.Hex()

	_, err := f.Services.Saved.SavePost(ctx, bob.ID, first)
	require.NoError(t, err)
	_, err = f.Services.Saved.SavePost(ctx, bob.ID, first)
	require.NoError(t, err, "saving twice is a no-op")
	_, err = f.Services.Saved.SavePost(ctx, bob.ID, second)
	require.NoError(t, err)

	_, err = f.Services.Saved.SavePost(ctx, bob.ID, gone)
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	saved, err := f.Services.Saved.SavedPosts(ctx, f.Identity(t, bob))
	require.NoError(t, err)
	require.Len(t, saved, 2)
	for _, v := range saved {
		assert.True(t, v.IsSaved)
	}

	_, err = f.Services.Saved.UnsavePost(ctx, bob.ID, first)
	require.NoError(t, err)
	_, err = f.Services.Saved.UnsavePost(ctx, bob.ID, first)
	require.NoError(t, err, "unsaving twice is a no-op")
	_, err = f.Services.Saved.UnsavePost(ctx, bob.ID, gone)
	require.NoError(t, err, "inactive posts can still be unsaved")

	saved, err = f.Services.Saved.SavedPosts(ctx, f.Identity(t, bob))
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "second", saved[0].Title)

	_, err = f.Services.Saved.SavedPosts(ctx, nil)
	assert.ErrorIs(t, err, apperr.ErrUnauthorized)
}
