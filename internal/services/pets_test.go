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

func TestAddPet(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice := f.User(t, "Alice")
	dog := f.Species(t, "dog")

	pet, err := f.Services.Pets.AddPet(ctx, alice.ID, services.AddPetInput{Name: "Rex", SpeciesID: dog.ID.Hex()})
	require.NoError(t, err)
	require.NotNil(t, pet.Species)
	assert.Equal(t, dog.ID, *pet.Species)
	assert.True(t, pet.IsActive)

	custom, err := f.Services.Pets.AddPet(ctx, alice.ID, services.AddPetInput{Name: "Spike", CustomSpecies: "iguana"})
	require.NoError(t, err)
	assert.Nil(t, custom.Species)

	_, err = f.Services.Pets.AddPet(ctx, alice.ID, services.AddPetInput{Name: "Nemo", SpeciesID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, apperr.ErrNotFound)

	pets, err := f.Services.Pets.PetsOf(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, pets, 2)
}

func TestDeletePetDeactivatesSolePetPosts(t *testing.T) {
	ctx := context.Background()
	f := testutil.New(t)
	alice, bob := f.User(t, "Alice"), f.User(t, "Bob")
	rex, fido := f.Pet(alice, "Rex", nil), f.Pet(alice, "Fido", nil)

	sole := f.Post(alice, 0, "only rex", testutil.WithPets(rex))
	shared := f.Post(alice, 1, "rex and fido", testutil.WithPets(rex, fido))
	legacy := f.Post(alice, 2, "legacy rex", func(p *models.Post) { p.Pet = &rex.ID })
	other := f.Post(alice, 3, "only fido", testutil.WithPets(fido))

	assert.ErrorIs(t, f.Services.Pets.DeletePet(ctx, f.Identity(t, bob), rex.ID.Hex()), apperr.ErrUnauthorized)
	require.NoError(t, f.Services.Pets.DeletePet(ctx, f.Identity(t, alice), rex.ID.Hex()))

	active := func(p models.Post) bool {
		got, err := f.Repos.Posts.GetPostByID(ctx, p.ID.Hex())
		require.NoError(t, err)
		return got.IsActive
	}
	assert.False(t, active(sole))
	assert.False(t, active(legacy))
	assert.True(t, active(shared))
	assert.True(t, active(other))

	assert.ErrorIs(t, f.Services.Pets.DeletePet(ctx, f.Identity(t, alice), rex.ID.Hex()), apperr.ErrNotFound)
}
