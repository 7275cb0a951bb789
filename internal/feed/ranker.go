package feed

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/anonto42/pet-adopt/backend/internal/models"
)

// ErrCursorNotFound is returned by Store.PostKeyset for ids that are malformed
// or name no stored post
var ErrCursorNotFound = errors.New("feed cursor not found")

// Store is the post storage the ranker reads from
type Store interface {
	// PostKeyset returns the recency position of the post in any activity state
	PostKeyset(ctx context.Context, id string) (Keyset, error)
	// FindPosts returns posts matching f, newest first
	FindPosts(ctx context.Context, f Filter, limit int) ([]models.Post, error)
	// RankPopular returns posts matching f ordered by combined score
	RankPopular(ctx context.Context, f Filter, preferred []string, skip, limit int) ([]RankedPost, error)
	CountPosts(ctx context.Context, f Filter) (int64, error)
}

// Edge is one post of a page with its cursor
type Edge struct {
	Cursor string
	Post   RankedPost
}

// Page is one page of the feed
type Page struct {
	Edges       []Edge
	HasNextPage bool
	EndCursor   *string
	TotalCount  int64
}

// Ranker fetches and paginates feed pages
type Ranker struct {
	store  Store
	logger *zap.Logger
}

func NewRanker(store Store, logger *zap.Logger) *Ranker {
	return &Ranker{store: store, logger: logger}
}

// Page returns the page q asks for
func (r *Ranker) Page(ctx context.Context, q Query) (*Page, error) {
	var (
		page *Page
		err  error
	)
	if q.Sort == SortPopular {
		page, err = r.popular(ctx, q)
	} else {
		page, err = r.recent(ctx, q)
	}
	if err != nil {
		return nil, err
	}

	total, err := r.store.CountPosts(ctx, q.CountFilter())
	if err != nil {
		return nil, errors.Wrap(err, "count feed posts")
	}
	page.TotalCount = total
	return page, nil
}

// popular pages by integer offset; the ranking is recomputed from live votes on every
// call so there is no stable per-post position to resume from.
func (r *Ranker) popular(ctx context.Context, q Query) (*Page, error) {
	offset := ParseOffset(q.After)

	posts, err := r.store.RankPopular(ctx, q.Filter, q.PreferredSpecies, offset, q.First+1)
	if err != nil {
		return nil, errors.Wrap(err, "rank feed posts")
	}

	page := &Page{HasNextPage: len(posts) > q.First}
	if page.HasNextPage {
		posts = posts[:q.First]
	}
	page.Edges = make([]Edge, len(posts))
	for i, p := range posts {
		page.Edges[i] = Edge{Cursor: strconv.Itoa(offset + i + 1), Post: p}
	}
	if len(posts) > 0 {
		end := strconv.Itoa(offset + len(posts))
		page.EndCursor = &end
	}
	return page, nil
}

// recent pages by the id of the last post seen. A cursor that no longer resolves
// restarts from the newest post instead of failing.
func (r *Ranker) recent(ctx context.Context, q Query) (*Page, error) {
	f := q.Filter
	if q.After != "" {
		k, err := r.store.PostKeyset(ctx, q.After)
		switch {
		case errors.Is(err, ErrCursorNotFound):
			r.logger.Debug("feed cursor did not resolve, starting from the top",
				zap.String("cursor", q.After), zap.Error(err))
		case err != nil:
			return nil, errors.Wrap(err, "load feed cursor")
		default:
			f = f.WithBefore(k)
		}
	}

	posts, err := r.store.FindPosts(ctx, f, q.First+1)
	if err != nil {
		return nil, errors.Wrap(err, "find feed posts")
	}

	page := &Page{HasNextPage: len(posts) > q.First}
	if page.HasNextPage {
		posts = posts[:q.First]
	}
	page.Edges = make([]Edge, len(posts))
	for i, p := range posts {
		page.Edges[i] = Edge{Cursor: p.ID.Hex(), Post: RankedPost{Post: p}}
	}
	if len(posts) > 0 {
		end := page.Edges[len(posts)-1].Cursor
		page.EndCursor = &end
	}
	return page, nil
}

// ParseOffset reads a popularity cursor. Anything that is not a non-negative integer
// counts as the start.
func ParseOffset(after string) int {
	if after == "" {
		return 0
	}
	n, err := strconv.Atoi(after)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
