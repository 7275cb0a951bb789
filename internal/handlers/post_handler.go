package handlers

import (
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts *services.PostService
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost, middleware.RequireAuth())
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost, middleware.RequireAuth())
}

// CreatePost creates a new post for the authenticated user
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	viewer := middleware.Identity(c)
	ctx := c.Request().Context()
	post, err := h.posts.CreatePost(ctx, viewer.UserID, services.CreatePostInput{
		Title:       req.Title,
		Description: req.Description,
		PostType:    req.PostType,
		ReportType:  req.ReportType,
		PetIDs:      req.PetIDs,
		Tags:        req.Tags,
		Images:      req.Images,
		Location:    req.Location,
	})
	if err != nil {
		return httpError(err)
	}
	view, err := h.posts.View(ctx, viewer, post)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusCreated, view)
}

// GetPost retrieves an active post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	ctx := c.Request().Context()
	post, err := h.posts.GetPost(ctx, c.Param("id"))
	if err != nil {
		return httpError(err)
	}
	view, err := h.posts.View(ctx, middleware.Identity(c), post)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, view)
}

// DeletePost soft deletes a post owned by the user, or any post for admins
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.posts.DeletePost(c.Request().Context(), middleware.Identity(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"deleted": true})
}
