package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	ID               uint          `json:"id" gorm:"primaryKey"`
	Name             string        `json:"name"`
	Email            string        `json:"email" gorm:"uniqueIndex"`
	FirebaseUID      *string       `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID
	Role             string        `json:"role" gorm:"size:20;default:user"`
	IsActive         bool          `json:"is_active" gorm:"default:true;index"`
	PreferredSpecies []UserSpecies `json:"preferred_species" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// UserSpecies is one entry of a user's preferred species set
type UserSpecies struct {
	ID        uint   `json:"-" gorm:"primaryKey"`
	UserID    uint   `json:"-" gorm:"index;uniqueIndex:idx_user_species"`
	SpeciesID string `json:"species_id" gorm:"size:24;uniqueIndex:idx_user_species"` // MongoDB ObjectID as string
}

// PreferredSpeciesIDs returns the preferred species as hex ids
func (u *User) PreferredSpeciesIDs() []string {
	ids := make([]string, 0, len(u.PreferredSpecies))
	for _, s := range u.PreferredSpecies {
		ids = append(ids, s.SpeciesID)
	}
	return ids
}

// UserCompact is the author view embedded in posts and comments
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	IsDeleted bool   `json:"is_deleted"`
}

// ToCompact returns the compact view, or the tombstone for a deactivated account
func (u *User) ToCompact() UserCompact {
	if !u.IsActive {
		return DeletedUser(u.ID)
	}
	return UserCompact{ID: u.ID, Name: u.Name}
}

// DeletedUser is the placeholder returned when an author no longer resolves
func DeletedUser(id uint) UserCompact {
	return UserCompact{ID: id, Name: "Deleted User", IsDeleted: true}
}

type UpdatePreferencesRequest struct {
	PreferredSpecies []string `json:"preferred_species" validate:"max=50,dive,len=24,hexadecimal"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}
