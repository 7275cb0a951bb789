package handlers

import (
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// VoteHandler handles up and down votes on posts
type VoteHandler struct {
	votes *services.VoteService
	posts *services.PostService
}

func NewVoteHandler(votes *services.VoteService, posts *services.PostService) *VoteHandler {
	return &VoteHandler{votes: votes, posts: posts}
}

// RegisterVoteRoutes registers vote routes
func (h *VoteHandler) RegisterVoteRoutes(g *echo.Group) {
	g.PUT("/posts/:id/vote", h.VotePost, middleware.RequireAuth())
	g.DELETE("/posts/:id/vote", h.RemoveVote, middleware.RequireAuth())
}

// VotePost casts or replaces the user's vote. The body value must be 1 or -1.
func (h *VoteHandler) VotePost(c echo.Context) error {
	var req models.VoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	viewer := middleware.Identity(c)
	post, err := h.votes.CastVote(c.Request().Context(), viewer.UserID, c.Param("id"), req.Value)
	if err != nil {
		return httpError(err)
	}
	return h.respond(c, post)
}

// RemoveVote deletes the user's vote if there is one
func (h *VoteHandler) RemoveVote(c echo.Context) error {
	viewer := middleware.Identity(c)
	post, err := h.votes.RemoveVote(c.Request().Context(), viewer.UserID, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	return h.respond(c, post)
}

func (h *VoteHandler) respond(c echo.Context, post *models.Post) error {
	view, err := h.posts.View(c.Request().Context(), middleware.Identity(c), post)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, view)
}
