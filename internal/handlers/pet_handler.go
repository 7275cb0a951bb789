package handlers

import (
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// PetHandler handles pets and the species catalogue
type PetHandler struct {
	pets *services.PetService
}

func NewPetHandler(pets *services.PetService) *PetHandler {
	return &PetHandler{pets: pets}
}

// RegisterPetRoutes registers pet and species routes
func (h *PetHandler) RegisterPetRoutes(g *echo.Group) {
	g.GET("/species", h.ListSpecies)
	g.POST("/pets", h.AddPet, middleware.RequireAuth())
	g.GET("/pets", h.GetMyPets, middleware.RequireAuth())
	g.DELETE("/pets/:id", h.DeletePet, middleware.RequireAuth())
}

func (h *PetHandler) ListSpecies(c echo.Context) error {
	species, err := h.pets.ListSpecies(c.Request().Context())
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"species": species})
}

// AddPet registers a pet for the authenticated user
func (h *PetHandler) AddPet(c echo.Context) error {
	var req models.CreatePetRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	viewer := middleware.Identity(c)
	pet, err := h.pets.AddPet(c.Request().Context(), viewer.UserID, services.AddPetInput{
		Name:          req.Name,
		SpeciesID:     req.SpeciesID,
		CustomSpecies: req.CustomSpecies,
		CustomBreed:   req.CustomBreed,
	})
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusCreated, pet)
}

func (h *PetHandler) GetMyPets(c echo.Context) error {
	pets, err := h.pets.PetsOf(c.Request().Context(), middleware.Identity(c).UserID)
	if err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"pets": pets})
}

// DeletePet soft deletes a pet and the posts that only feature it
func (h *PetHandler) DeletePet(c echo.Context) error {
	if err := h.pets.DeletePet(c.Request().Context(), middleware.Identity(c), c.Param("id")); err != nil {
		return httpError(err)
	}
	return success(c, http.StatusOK, echo.Map{"deleted": true})
}
