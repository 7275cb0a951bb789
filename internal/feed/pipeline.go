package feed

import (
	"sort"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// PreferenceBonusPoints is added to the score of posts whose primary pet is of a
// species the viewer prefers.
const PreferenceBonusPoints = 5

// RankedPost is a post with the scores the popularity ranking computed for it.
// PetData holds the primary pet when the ranking already joined it.
type RankedPost struct {
	models.Post     `bson:",inline"`
	VoteScore       int64        `bson:"vote_score"`
	PreferenceBonus int64        `bson:"preference_bonus"`
	CombinedScore   int64        `bson:"combined_score"`
	PetData         []models.Pet `bson:"pet_data,omitempty"`
}

// PreferenceBonus returns the bonus for a pet of speciesID given the viewer's
// preferred species. Custom species ("") never earn it.
func PreferenceBonus(speciesID string, preferred []string) int64 {
	if speciesID == "" || len(preferred) == 0 {
		return 0
	}
	for _, s := range preferred {
		if s == speciesID {
			return PreferenceBonusPoints
		}
	}
	return 0
}

// PopularityPipeline builds the aggregation that ranks the posts selected by f:
// filter, join votes, score, join the primary pet, add the preference bonus, sort by
// combined score then recency, then skip and limit.
func PopularityPipeline(f Filter, preferred []string, skip, limit int) mongo.Pipeline {
	if preferred == nil {
		preferred = []string{}
	}
	countValue := func(v int) bson.M {
		return bson.M{"$size": bson.M{"$filter": bson.M{
			"input": "$votes",
			"cond":  bson.M{"$eq": bson.A{"$$this.value", v}},
		}}}
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: f.BSON()}},
		{{Key: "$lookup", Value: bson.M{
			"from":         models.VotesCollection,
			"localField":   "_id",
			"foreignField": "post_id",
			"as":           "votes",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"vote_score":  bson.M{"$subtract": bson.A{countValue(models.Upvote), countValue(models.Downvote)}},
			"primary_pet": bson.M{"$ifNull": bson.A{bson.M{"$arrayElemAt": bson.A{"$pets", 0}}, "$pet"}},
		}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         models.PetsCollection,
			"localField":   "primary_pet",
			"foreignField": "_id",
			"as":           "pet_data",
		}}},
		{{Key: "$addFields", Value: bson.M{
			"preference_bonus": bson.M{"$cond": bson.M{
				"if": bson.M{"$and": bson.A{
					bson.M{"$gt": bson.A{bson.M{"$size": "$pet_data"}, 0}},
					bson.M{"$gt": bson.A{len(preferred), 0}},
					bson.M{"$in": bson.A{
						bson.M{"$toString": bson.M{"$arrayElemAt": bson.A{"$pet_data.species", 0}}},
						preferred,
					}},
				}},
				"then": PreferenceBonusPoints,
				"else": 0,
			}},
		}}},
		{{Key: "$addFields", Value: bson.M{
			"combined_score": bson.M{"$add": bson.A{"$vote_score", "$preference_bonus"}},
		}}},
		{{Key: "$sort", Value: bson.D{
			{Key: "combined_score", Value: -1},
			{Key: "created_at", Value: -1},
			{Key: "_id", Value: -1},
		}}},
	}
	if skip > 0 {
		pipeline = append(pipeline, bson.D{{Key: "$skip", Value: int64(skip)}})
	}
	pipeline = append(pipeline,
		bson.D{{Key: "$limit", Value: int64(limit)}},
		bson.D{{Key: "$project", Value: bson.M{"votes": 0, "primary_pet": 0}}},
	)
	return pipeline
}

// Candidate is a post with what the in-process ranking needs to score it
type Candidate struct {
	Post       models.Post
	Tally      models.VoteTally
	PrimaryPet *models.Pet
}

// RankCandidates is the in-process equivalent of PopularityPipeline for stores that
// cannot aggregate. It sorts the whole candidate set, so the set must be bounded.
func RankCandidates(candidates []Candidate, preferred []string, skip, limit int) []RankedPost {
	ranked := make([]RankedPost, 0, len(candidates))
	for _, c := range candidates {
		rp := RankedPost{Post: c.Post, VoteScore: c.Tally.Score()}
		if c.PrimaryPet != nil {
			rp.PreferenceBonus = PreferenceBonus(c.PrimaryPet.SpeciesHex(), preferred)
			rp.PetData = []models.Pet{*c.PrimaryPet}
		}
		rp.CombinedScore = rp.VoteScore + rp.PreferenceBonus
		ranked = append(ranked, rp)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.CombinedScore != b.CombinedScore {
			return a.CombinedScore > b.CombinedScore
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID.Hex() > b.ID.Hex()
	})

	if skip >= len(ranked) {
		return []RankedPost{}
	}
	ranked = ranked[skip:]
	if limit < len(ranked) {
		ranked = ranked[:limit]
	}
	return ranked
}
