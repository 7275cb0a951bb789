package services

import (
	"context"

	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/pkg/metrics"
	"go.uber.org/zap"
)

// PostEdge is one node of a feed connection
type PostEdge struct {
	Cursor string   `json:"cursor"`
	Node   PostView `json:"node"`
}

type PageInfo struct {
	HasNextPage bool    `json:"has_next_page"`
	EndCursor   *string `json:"end_cursor"`
}

// PostConnection is a page of the feed in connection form
type PostConnection struct {
	Edges      []PostEdge `json:"edges"`
	PageInfo   PageInfo   `json:"page_info"`
	TotalCount int64      `json:"total_count"`
}

// FeedService serves postsFeed pages
type FeedService struct {
	builder *feed.QueryBuilder
	ranker  *feed.Ranker
	posts   *PostService
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewFeedService(builder *feed.QueryBuilder, ranker *feed.Ranker, posts *PostService, m *metrics.Metrics, logger *zap.Logger) *FeedService {
	return &FeedService{builder: builder, ranker: ranker, posts: posts, metrics: m, logger: logger}
}

// PostsFeed returns one page of the feed for viewer, who may be nil. The viewer's
// preferred species drive the popularity bonus.
func (s *FeedService) PostsFeed(ctx context.Context, viewer *auth.Identity, req feed.Request) (*PostConnection, error) {
	req.PreferredSpecies = nil
	if viewer != nil {
		req.PreferredSpecies = viewer.PreferredSpecies
	}

	q, err := s.builder.Build(ctx, req)
	if err != nil {
		return nil, err
	}
	page, err := s.ranker.Page(ctx, q)
	if err != nil {
		return nil, err
	}

	ranked := make([]feed.RankedPost, len(page.Edges))
	for i, e := range page.Edges {
		ranked[i] = e.Post
	}
	views, err := s.posts.Enrich(ctx, viewer, ranked)
	if err != nil {
		return nil, err
	}

	conn := &PostConnection{
		Edges:      make([]PostEdge, len(views)),
		PageInfo:   PageInfo{HasNextPage: page.HasNextPage, EndCursor: page.EndCursor},
		TotalCount: page.TotalCount,
	}
	for i, v := range views {
		conn.Edges[i] = PostEdge{Cursor: page.Edges[i].Cursor, Node: v}
	}
	s.metrics.RecordFeedRequest(ctx, string(q.Sort))
	return conn, nil
}
