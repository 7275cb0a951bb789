package feed

import (
	"testing"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilterBSONActiveOnly(t *testing.T) {
	assert.Equal(t, bson.M{"is_active": true}, Filter{}.BSON())
}

func TestFilterBSONClauses(t *testing.T) {
	petID := primitive.NewObjectID()
	before := Keyset{CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), ID: primitive.NewObjectID()}
	f := Filter{
		PostType:        models.PostTypeAdopt,
		Search:          &SearchClause{Term: "a.b", PetIDs: []primitive.ObjectID{petID}},
		SpeciesPetIDs:   []primitive.ObjectID{petID},
		SpeciesFiltered: true,
		Before:          &before,
	}

	q := f.BSON()
	assert.Equal(t, true, q["is_active"])
	and, ok := q["$and"].(bson.A)
	require.True(t, ok)
	require.Len(t, and, 4)

	assert.Equal(t, bson.M{"post_type": models.PostTypeAdopt}, and[0])

	search := and[1].(bson.M)["$or"].(bson.A)
	require.Len(t, search, 4)
	assert.Equal(t, bson.M{"title": primitive.Regex{Pattern: `a\.b`, Options: "i"}}, search[0])
	assert.Equal(t, petIn([]primitive.ObjectID{petID}), search[3])

	assert.Equal(t, petIn([]primitive.ObjectID{petID}), and[2])
	assert.Equal(t, bson.M{"$or": bson.A{
		bson.M{"created_at": bson.M{"$lt": before.CreatedAt}},
		bson.M{"created_at": before.CreatedAt, "_id": bson.M{"$lt": before.ID}},
	}}, and[3])
}

func TestFilterBSONEmptySpeciesSetMatchesNothing(t *testing.T) {
	q := Filter{SpeciesFiltered: true}.BSON()
	and := q["$and"].(bson.A)
	require.Len(t, and, 1)
	branches := and[0].(bson.M)["$or"].(bson.A)
	assert.Equal(t, bson.M{"pets": bson.M{"$in": []primitive.ObjectID{}}}, branches[0])
}

func TestFilterBSONPlainPostTypeCoversLegacy(t *testing.T) {
	and := Filter{PostType: models.PostTypePost}.BSON()["$and"].(bson.A)
	branches := and[0].(bson.M)["$or"].(bson.A)
	assert.Contains(t, branches, bson.M{"post_type": bson.M{"$exists": false}})
}

func TestFilterWithoutCursor(t *testing.T) {
	f := Filter{}.WithBefore(Keyset{CreatedAt: time.Now()})
	require.NotNil(t, f.Before)
	assert.Nil(t, f.WithoutCursor().Before)
	assert.NotNil(t, f.Before, "WithoutCursor does not mutate the receiver")
}

func TestFilterMatches(t *testing.T) {
	dog := primitive.NewObjectID()
	legacy := primitive.NewObjectID()
	now := time.Now()

	active := models.Post{Title: "Friendly Dog", IsActive: true, Pets: []primitive.ObjectID{dog}, CreatedAt: now}
	legacyPost := models.Post{Title: "old", IsActive: true, Pet: &legacy, CreatedAt: now}
	inactive := models.Post{Title: "Friendly Dog", IsActive: false}

	assert.True(t, Filter{}.Matches(&active))
	assert.False(t, Filter{}.Matches(&inactive))

	assert.True(t, Filter{PostType: models.PostTypePost}.Matches(&active), "missing type reads as post")
	assert.False(t, Filter{PostType: models.PostTypeAdopt}.Matches(&active))

	assert.True(t, Filter{Search: &SearchClause{Term: "dog"}}.Matches(&active))
	assert.False(t, Filter{Search: &SearchClause{Term: "cat"}}.Matches(&active))
	assert.True(t, Filter{Search: &SearchClause{Term: "zzz", PetIDs: []primitive.ObjectID{legacy}}}.Matches(&legacyPost))

	assert.True(t, Filter{SpeciesFiltered: true, SpeciesPetIDs: []primitive.ObjectID{legacy}}.Matches(&legacyPost))
	assert.False(t, Filter{SpeciesFiltered: true}.Matches(&active))

	assert.False(t, Filter{}.WithBefore(KeysetOf(&active)).Matches(&active))
	assert.True(t, Filter{}.WithBefore(Keyset{CreatedAt: now.Add(time.Second)}).Matches(&active))
}

func TestFilterMatchesBreaksTimestampTiesByID(t *testing.T) {
	now := time.Now()
	low := models.Post{ID: primitive.NewObjectID(), IsActive: true, CreatedAt: now}
	high := models.Post{ID: primitive.NewObjectID(), IsActive: true, CreatedAt: now}
	require.Less(t, low.ID.Hex(), high.ID.Hex())

	f := Filter{}.WithBefore(KeysetOf(&high))
	assert.True(t, f.Matches(&low))
	assert.False(t, f.Matches(&high))
	assert.False(t, Filter{}.WithBefore(KeysetOf(&low)).Matches(&high))
}

func TestIntersect(t *testing.T) {
	a, b, c := primitive.NewObjectID(), primitive.NewObjectID(), primitive.NewObjectID()
	assert.Equal(t, []primitive.ObjectID{a, c}, intersect([]primitive.ObjectID{a, b, c}, []primitive.ObjectID{c, a}))
	assert.Empty(t, intersect([]primitive.ObjectID{a}, nil))
}
