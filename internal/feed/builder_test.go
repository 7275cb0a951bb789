package feed

import (
	"context"
	"testing"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func intp(n int) *int       { return &n }
func strp(s string) *string { return &s }

func TestBuildDefaults(t *testing.T) {
	q, err := NewQueryBuilder(&stubPets{}).Build(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, DefaultPageSize, q.First)
	assert.Equal(t, SortPopular, q.Sort)
	assert.Equal(t, Filter{}, q.Filter)
}

func TestBuildRejectsPageSize(t *testing.T) {
	b := NewQueryBuilder(&stubPets{})
	for _, n := range []int{0, -1, MaxPageSize + 1} {
		_, err := b.Build(context.Background(), Request{First: intp(n)})
		assert.ErrorIs(t, err, apperr.ErrInvalidArgument, "first=%d", n)
	}
	_, err := b.Build(context.Background(), Request{First: intp(MaxPageSize)})
	assert.NoError(t, err)
}

func TestBuildRejectsUnknownPostType(t *testing.T) {
	_, err := NewQueryBuilder(&stubPets{}).Build(context.Background(), Request{PostType: "story"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}

func TestParseSortMode(t *testing.T) {
	assert.Equal(t, SortPopular, ParseSortMode(nil))
	assert.Equal(t, SortPopular, ParseSortMode(strp("popular")))
	assert.Equal(t, SortRecent, ParseSortMode(strp("recent")))
	assert.Equal(t, SortRecent, ParseSortMode(strp("hot")))
}

func TestBuildKeywordBecomesPostType(t *testing.T) {
	q, err := NewQueryBuilder(&stubPets{}).Build(context.Background(), Request{Search: "Adopción"})
	require.NoError(t, err)
	assert.Equal(t, models.PostTypeAdopt, q.Filter.PostType)
	assert.Nil(t, q.Filter.Search)
}

func TestBuildKeywordWithExplicitPostType(t *testing.T) {
	q, err := NewQueryBuilder(&stubPets{}).Build(context.Background(), Request{Search: "lost", PostType: "adopt"})
	require.NoError(t, err)
	assert.Equal(t, models.PostTypeAdopt, q.Filter.PostType)
	require.NotNil(t, q.Filter.Search)
	assert.Equal(t, "lost", q.Filter.Search.Term)
}

func TestBuildSpeciesIntersectsSearchPets(t *testing.T) {
	species := primitive.NewObjectID()
	rexDog, rexCat, fidoDog := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	pets := &stubPets{
		matching:  map[string][]primitive.ObjectID{"rex": {rexDog, rexCat}},
		bySpecies: map[primitive.ObjectID][]primitive.ObjectID{species: {rexDog, fidoDog}},
	}

	q, err := NewQueryBuilder(pets).Build(context.Background(), Request{Search: "rex", SpeciesID: species.Hex()})
	require.NoError(t, err)
	assert.True(t, q.Filter.SpeciesFiltered)
	assert.ElementsMatch(t, []primitive.ObjectID{rexDog, fidoDog}, q.Filter.SpeciesPetIDs)
	require.NotNil(t, q.Filter.Search)
	assert.Equal(t, []primitive.ObjectID{rexDog}, q.Filter.Search.PetIDs)
}

func TestBuildUnknownSpeciesSelectsNothing(t *testing.T) {
	q, err := NewQueryBuilder(&stubPets{}).Build(context.Background(), Request{SpeciesID: primitive.NewObjectID().Hex()})
	require.NoError(t, err)
	assert.True(t, q.Filter.SpeciesFiltered)
	assert.NotNil(t, q.Filter.SpeciesPetIDs)
	assert.Empty(t, q.Filter.SpeciesPetIDs)
}

func TestBuildMalformedSpecies(t *testing.T) {
	_, err := NewQueryBuilder(&stubPets{}).Build(context.Background(), Request{SpeciesID: "dog"})
	assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
}
