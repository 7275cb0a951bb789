package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostType is the kind of a post
type PostType string

const (
	PostTypePost    PostType = "post"
	PostTypeAdopt   PostType = "adopt"
	PostTypeMissing PostType = "missing"
)

// Valid reports whether t is one of the known post types
func (t PostType) Valid() bool {
	switch t {
	case PostTypePost, PostTypeAdopt, PostTypeMissing:
		return true
	}
	return false
}

// ReportType qualifies a missing post
type ReportType string

const (
	ReportTypeLost  ReportType = "lost"
	ReportTypeFound ReportType = "found"
)

// Post represents a pet post stored in MongoDB.
//
// Pets is the canonical pet set. Pet is the legacy single-pet reference that older
// documents carry instead of Pets; new documents never write it.
type Post struct {
	ID          primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Title       string               `json:"title" bson:"title"`
	Description string               `json:"description" bson:"description"`
	AuthorID    uint                 `json:"author_id" bson:"author_id"`
	Pet         *primitive.ObjectID  `json:"-" bson:"pet,omitempty"`
	Pets        []primitive.ObjectID `json:"pet_ids" bson:"pets,omitempty"`
	PostType    PostType             `json:"post_type" bson:"post_type"`
	ReportType  *ReportType          `json:"report_type,omitempty" bson:"report_type,omitempty"`
	Tags        []string             `json:"tags" bson:"tags"`
	Images      []string             `json:"images" bson:"images"`
	Location    string               `json:"location,omitempty" bson:"location,omitempty"`
	IsActive    bool                 `json:"is_active" bson:"is_active"`
	CreatedAt   time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at" bson:"updated_at"`
}

// Normalize folds the legacy single-pet field into the canonical set and fills the
// defaults older documents may lack. Every read path calls it before handing a post out.
func (p *Post) Normalize() {
	if len(p.Pets) == 0 && p.Pet != nil {
		p.Pets = []primitive.ObjectID{*p.Pet}
	}
	p.Pet = nil
	if p.PostType == "" {
		p.PostType = PostTypePost
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
}

// PrimaryPetID returns the first associated pet, if any
func (p *Post) PrimaryPetID() (primitive.ObjectID, bool) {
	if len(p.Pets) > 0 {
		return p.Pets[0], true
	}
	if p.Pet != nil {
		return *p.Pet, true
	}
	return primitive.NilObjectID, false
}

// HasPet reports whether id is one of the post's pets
func (p *Post) HasPet(id primitive.ObjectID) bool {
	for _, pid := range p.Pets {
		if pid == id {
			return true
		}
	}
	return p.Pet != nil && *p.Pet == id
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Title       string   `json:"title" validate:"required,min=1,max=200"`
	Description string   `json:"description" validate:"required,min=1,max=5000"`
	PostType    string   `json:"post_type" validate:"required,oneof=post adopt missing"`
	ReportType  string   `json:"report_type,omitempty" validate:"omitempty,oneof=lost found"`
	PetIDs      []string `json:"pet_ids,omitempty" validate:"omitempty,dive,len=24,hexadecimal"`
	Tags        []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,min=1,max=40"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	Location    string   `json:"location,omitempty" validate:"omitempty,max=200"`
}
