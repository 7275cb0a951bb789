package feed

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// SortMode selects the feed ordering
type SortMode string

const (
	SortPopular SortMode = "popular"
	SortRecent  SortMode = "recent"
)

// ParseSortMode maps the sortBy argument to a mode. A missing value means popular and
// anything other than "popular" means recent.
func ParseSortMode(sortBy *string) SortMode {
	if sortBy == nil || *sortBy == string(SortPopular) {
		return SortPopular
	}
	return SortRecent
}

// Request carries the raw postsFeed arguments
type Request struct {
	First     *int
	After     string
	SpeciesID string
	PostType  string
	SortBy    *string
	Search    string
	// PreferredSpecies is the viewer's preferred species set, empty for anonymous viewers
	PreferredSpecies []string
}

// Query is a validated feed request ready for the ranker
type Query struct {
	Filter           Filter
	First            int
	After            string
	Sort             SortMode
	PreferredSpecies []string
}

// CountFilter is the filter total counts are computed with
func (q Query) CountFilter() Filter {
	return q.Filter.WithoutCursor()
}

// PetFinder is the pet lookup the builder needs
type PetFinder interface {
	PetMatcher
	FindPetIDsBySpecies(ctx context.Context, speciesID primitive.ObjectID) ([]primitive.ObjectID, error)
}

// QueryBuilder composes feed arguments into a Query
type QueryBuilder struct {
	pets     PetFinder
	resolver *SearchTermResolver
}

func NewQueryBuilder(pets PetFinder) *QueryBuilder {
	return &QueryBuilder{pets: pets, resolver: NewSearchTermResolver(pets)}
}

// Build validates req and composes its filter
func (b *QueryBuilder) Build(ctx context.Context, req Request) (Query, error) {
	first := DefaultPageSize
	if req.First != nil {
		first = *req.First
	}
	if first <= 0 {
		return Query{}, apperr.InvalidArgument("first must be greater than 0")
	}
	if first > MaxPageSize {
		return Query{}, apperr.InvalidArgument("first must be at most %d", MaxPageSize)
	}

	var f Filter
	if req.PostType != "" {
		t := models.PostType(req.PostType)
		if !t.Valid() {
			return Query{}, apperr.InvalidArgument("unknown post type %q", req.PostType)
		}
		f.PostType = t
	}

	res, err := b.resolver.Resolve(ctx, req.Search, f.PostType)
	if err != nil {
		return Query{}, err
	}
	if res.PostType != "" {
		f.PostType = res.PostType
	}
	f.Search = res.Clause

	if req.SpeciesID != "" {
		speciesID, err := primitive.ObjectIDFromHex(req.SpeciesID)
		if err != nil {
			return Query{}, apperr.InvalidArgument("invalid species id %q", req.SpeciesID)
		}
		petIDs, err := b.pets.FindPetIDsBySpecies(ctx, speciesID)
		if err != nil {
			return Query{}, errors.Wrap(err, "find pets by species")
		}
		if petIDs == nil {
			petIDs = []primitive.ObjectID{}
		}
		f.SpeciesFiltered = true
		f.SpeciesPetIDs = petIDs
		// the text search only gets to match through pets of the requested species
		if f.Search != nil {
			f.Search.PetIDs = intersect(f.Search.PetIDs, petIDs)
		}
	}

	return Query{
		Filter:           f,
		First:            first,
		After:            req.After,
		Sort:             ParseSortMode(req.SortBy),
		PreferredSpecies: req.PreferredSpecies,
	}, nil
}
