package handlers

import (
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// AccountHandler handles the authenticated user's own account
type AccountHandler struct {
	accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// RegisterProfileRoutes registers routes acting on the current user
func (h *AccountHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/me", h.GetProfile, middleware.RequireAuth())
	g.PUT("/me/preferences", h.UpdatePreferences, middleware.RequireAuth())
	g.DELETE("/me", h.DeleteAccount, middleware.RequireAuth())
}

// GetProfile retrieves the current user's profile
func (h *AccountHandler) GetProfile(c echo.Context) error {
	user, err := h.accounts.Me(c.Request().Context(), middleware.Identity(c).UserID)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, user)
}

// UpdatePreferences replaces the preferred species that boost the feed ranking
func (h *AccountHandler) UpdatePreferences(c echo.Context) error {
	var req models.UpdatePreferencesRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	user, err := h.accounts.UpdatePreferredSpecies(c.Request().Context(), middleware.Identity(c).UserID, req.PreferredSpecies)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, user)
}

// DeleteAccount deactivates the user along with their posts, pets and comments
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	if err := h.accounts.DeleteAccount(c.Request().Context(), middleware.Identity(c).UserID); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"deleted": true})
}
