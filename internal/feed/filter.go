package feed

import (
	"regexp"
	"strings"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Filter is the declarative description of which posts a feed request selects.
// Only active posts are ever selected.
type Filter struct {
	// PostType restricts the post type; empty means any
	PostType models.PostType
	// Search is the free-text clause; nil means no text constraint
	Search *SearchClause
	// SpeciesPetIDs restricts posts to these pets when SpeciesFiltered is set.
	// An empty set with SpeciesFiltered selects nothing.
	SpeciesPetIDs   []primitive.ObjectID
	SpeciesFiltered bool
	// Before is the recency cursor clause; nil means start from the newest post
	Before *Keyset
}

// Keyset is a position in the recency order (created_at desc, _id desc)
type Keyset struct {
	CreatedAt time.Time
	ID        primitive.ObjectID
}

// KeysetOf returns the recency position of p
func KeysetOf(p *models.Post) Keyset {
	return Keyset{CreatedAt: p.CreatedAt, ID: p.ID}
}

// follows reports whether p comes after k in the recency order
func (k Keyset) follows(p *models.Post) bool {
	if p.CreatedAt.Equal(k.CreatedAt) {
		return p.ID.Hex() < k.ID.Hex()
	}
	return p.CreatedAt.Before(k.CreatedAt)
}

// WithoutCursor returns the filter minus any pagination clause. Total counts use it so
// they reflect the whole filtered set rather than the current page.
func (f Filter) WithoutCursor() Filter {
	f.Before = nil
	return f
}

// WithBefore returns the filter restricted to posts after k in the recency order
func (f Filter) WithBefore(k Keyset) Filter {
	f.Before = &k
	return f
}

// BSON renders the filter as a MongoDB query document
func (f Filter) BSON() bson.M {
	query := bson.M{"is_active": true}
	var and bson.A

	if f.PostType != "" {
		if f.PostType == models.PostTypePost {
			// documents written before post types existed read back as plain posts
			and = append(and, bson.M{"$or": bson.A{
				bson.M{"post_type": f.PostType},
				bson.M{"post_type": bson.M{"$exists": false}},
			}})
		} else {
			and = append(and, bson.M{"post_type": f.PostType})
		}
	}

	if f.Search != nil {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search.Term), Options: "i"}
		conds := bson.A{
			bson.M{"title": rx},
			bson.M{"description": rx},
			bson.M{"tags": rx},
		}
		if len(f.Search.PetIDs) > 0 {
			conds = append(conds, petIn(f.Search.PetIDs))
		}
		and = append(and, bson.M{"$or": conds})
	}

	if f.SpeciesFiltered {
		and = append(and, petIn(f.SpeciesPetIDs))
	}

	if f.Before != nil {
		// posts sharing the cursor's timestamp continue in _id order
		and = append(and, bson.M{"$or": bson.A{
			bson.M{"created_at": bson.M{"$lt": f.Before.CreatedAt}},
			bson.M{"created_at": f.Before.CreatedAt, "_id": bson.M{"$lt": f.Before.ID}},
		}})
	}

	if len(and) > 0 {
		query["$and"] = and
	}
	return query
}

// petIn matches posts whose canonical pet set or legacy pet field hits ids
func petIn(ids []primitive.ObjectID) bson.M {
	if ids == nil {
		ids = []primitive.ObjectID{}
	}
	return bson.M{"$or": bson.A{
		bson.M{"pets": bson.M{"$in": ids}},
		bson.M{"pet": bson.M{"$in": ids}},
	}}
}

// Matches evaluates the filter against a single post in process
func (f Filter) Matches(p *models.Post) bool {
	if !p.IsActive {
		return false
	}

	if f.PostType != "" {
		t := p.PostType
		if t == "" {
			t = models.PostTypePost
		}
		if t != f.PostType {
			return false
		}
	}

	if f.Search != nil && !f.Search.matches(p) {
		return false
	}

	if f.SpeciesFiltered && !hasAnyPet(p, f.SpeciesPetIDs) {
		return false
	}

	if f.Before != nil && !f.Before.follows(p) {
		return false
	}
	return true
}

func (c *SearchClause) matches(p *models.Post) bool {
	if containsFold(p.Title, c.Term) || containsFold(p.Description, c.Term) {
		return true
	}
	for _, tag := range p.Tags {
		if containsFold(tag, c.Term) {
			return true
		}
	}
	return hasAnyPet(p, c.PetIDs)
}

func hasAnyPet(p *models.Post, ids []primitive.ObjectID) bool {
	for _, id := range ids {
		if p.HasPet(id) {
			return true
		}
	}
	return false
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), term)
}

// intersect keeps the ids of a that also appear in b, in a's order
func intersect(a, b []primitive.ObjectID) []primitive.ObjectID {
	in := make(map[primitive.ObjectID]struct{}, len(b))
	for _, id := range b {
		in[id] = struct{}{}
	}
	out := make([]primitive.ObjectID, 0, len(a))
	for _, id := range a {
		if _, ok := in[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
