package handlers

import (
	"net/http"
	"strconv"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	comments *services.CommentService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(comments *services.CommentService) *CommentHandler {
	return &CommentHandler{comments: comments}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment, middleware.RequireAuth())
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.DELETE("/comments/:id", h.DeleteComment, middleware.RequireAuth())
}

// CreateComment creates a new comment on a post
func (h *CommentHandler) CreateComment(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	viewer := middleware.Identity(c)
	comment, err := h.comments.CreateComment(c.Request().Context(), viewer.UserID, c.Param("post_id"), req.Content, req.ParentID)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusCreated, comment)
}

// GetCommentsByPostID lists the active comments of a post, oldest first
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	comments, err := h.comments.CommentsByPost(c.Request().Context(), c.Param("post_id"))
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"comments": comments})
}

// DeleteComment soft deletes the user's comment and its replies
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}
	viewer := middleware.Identity(c)
	if err := h.comments.DeleteComment(c.Request().Context(), viewer.UserID, uint(id)); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"deleted": true})
}
