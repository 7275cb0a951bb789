package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler serves the paginated post feed
type FeedHandler struct {
	feed *services.FeedService
}

func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
}

// GetFeed returns one page of the feed. Query parameters mirror the postsFeed
// arguments: first, after, species_id, post_type, sort_by and search.
func (h *FeedHandler) GetFeed(c echo.Context) error {
	req := feed.Request{
		After:     c.QueryParam("after"),
		SpeciesID: c.QueryParam("species_id"),
		PostType:  c.QueryParam("post_type"),
		Search:    c.QueryParam("search"),
	}
	if raw := c.QueryParam("first"); raw != "" {
		first, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "first must be an integer")
		}
		req.First = &first
	}
	if sortBy := c.QueryParam("sort_by"); sortBy != "" {
		req.SortBy = &sortBy
	}

	conn, err := h.feed.PostsFeed(c.Request().Context(), middleware.Identity(c), req)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, conn)
}
