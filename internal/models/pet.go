package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Pet represents a pet stored in MongoDB. Species is nil when the owner typed a
// custom species instead of picking a known one.
type Pet struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Species       *primitive.ObjectID `json:"species_id,omitempty" bson:"species,omitempty"`
	CustomSpecies string              `json:"custom_species,omitempty" bson:"custom_species,omitempty"`
	CustomBreed   string              `json:"custom_breed,omitempty" bson:"custom_breed,omitempty"`
	OwnerID       uint                `json:"owner_id" bson:"owner_id"`
	IsActive      bool                `json:"is_active" bson:"is_active"`
	CreatedAt     time.Time           `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updated_at"`
}

// SpeciesHex returns the species reference as a hex string, or "" for custom species
func (p *Pet) SpeciesHex() string {
	if p.Species == nil {
		return ""
	}
	return p.Species.Hex()
}

// CreatePetRequest defines the request body for adding a pet
type CreatePetRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	SpeciesID     string `json:"species_id,omitempty" validate:"omitempty,len=24,hexadecimal"`
	CustomSpecies string `json:"custom_species,omitempty" validate:"omitempty,max=60"`
	CustomBreed   string `json:"custom_breed,omitempty" validate:"omitempty,max=60"`
}
