package handlers

import (
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles saved post HTTP requests
type SavedPostHandler struct {
	saved *services.SavedPostService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(saved *services.SavedPostService) *SavedPostHandler {
	return &SavedPostHandler{saved: saved}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/posts/:id/save", h.SavePost, middleware.RequireAuth())
	g.DELETE("/posts/:id/save", h.UnsavePost, middleware.RequireAuth())
	g.GET("/saved-posts", h.GetSavedPosts, middleware.RequireAuth())
}

// SavePost bookmarks a post. Saving twice is not an error.
func (h *SavedPostHandler) SavePost(c echo.Context) error {
	viewer := middleware.Identity(c)
	if _, err := h.saved.SavePost(c.Request().Context(), viewer.UserID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"saved": true})
}

// UnsavePost removes a post from saved
func (h *SavedPostHandler) UnsavePost(c echo.Context) error {
	viewer := middleware.Identity(c)
	if _, err := h.saved.UnsavePost(c.Request().Context(), viewer.UserID, c.Param("id")); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"saved": false})
}

// GetSavedPosts lists the user's saved posts that are still active
func (h *SavedPostHandler) GetSavedPosts(c echo.Context) error {
	posts, err := h.saved.SavedPosts(c.Request().Context(), middleware.Identity(c))
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"posts": posts})
}
