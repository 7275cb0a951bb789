package feed

import (
	"context"
	"strings"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// postTypeKeywords maps English and Spanish search words to a post type
var postTypeKeywords = map[string]models.PostType{
	// English
	"adopt":    models.PostTypeAdopt,
	"adoption": models.PostTypeAdopt,
	"missing":  models.PostTypeMissing,
	"lost":     models.PostTypeMissing,
	"post":     models.PostTypePost,
	"general":  models.PostTypePost,
	// Spanish
	"adopcion":    models.PostTypeAdopt,
	"adopción":    models.PostTypeAdopt,
	"perdido":     models.PostTypeMissing,
	"perdida":     models.PostTypeMissing,
	"extraviado":  models.PostTypeMissing,
	"extraviada":  models.PostTypeMissing,
	"publicacion": models.PostTypePost,
	"publicación": models.PostTypePost,
}

// PostTypeForKeyword returns the post type a search word stands for
func PostTypeForKeyword(term string) (models.PostType, bool) {
	t, ok := postTypeKeywords[NormalizeTerm(term)]
	return t, ok
}

// NormalizeTerm trims and lower-cases a search input
func NormalizeTerm(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SearchClause matches posts whose title, description or any tag contains Term, or
// whose pets include one of PetIDs.
type SearchClause struct {
	Term   string
	PetIDs []primitive.ObjectID
}

// SearchResult is the outcome of resolving a search input. At most one of PostType
// and Clause is set; both are empty when there is nothing to search for.
type SearchResult struct {
	PostType models.PostType
	Clause   *SearchClause
}

// PetMatcher finds pets whose name, custom species or custom breed contains a term
type PetMatcher interface {
	FindPetIDsMatching(ctx context.Context, term string) ([]primitive.ObjectID, error)
}

// SearchTermResolver turns free-text search input into feed constraints
type SearchTermResolver struct {
	pets PetMatcher
}

func NewSearchTermResolver(pets PetMatcher) *SearchTermResolver {
	return &SearchTermResolver{pets: pets}
}

// Resolve maps search to a constraint. A post type keyword becomes a pure type filter
// unless the caller already asked for an explicit post type, in which case the keyword
// is searched for like any other text.
func (r *SearchTermResolver) Resolve(ctx context.Context, search string, explicit models.PostType) (SearchResult, error) {
	term := NormalizeTerm(search)
	if term == "" {
		return SearchResult{}, nil
	}

	if t, ok := postTypeKeywords[term]; ok && explicit == "" {
		return SearchResult{PostType: t}, nil
	}

	petIDs, err := r.pets.FindPetIDsMatching(ctx, term)
	if err != nil {
		return SearchResult{}, errors.Wrap(err, "search pets")
	}
	return SearchResult{Clause: &SearchClause{Term: term, PetIDs: petIDs}}, nil
}
