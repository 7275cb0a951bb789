// Package auth resolves request credentials into the identity the services act for.
package auth

import (
	"context"
	"strings"

	"github.com/anonto42/pet-adopt/backend/internal/models"
)

// Identity is the authenticated user behind a request
type Identity struct {
	UserID           uint
	Email            string
	Admin            bool
	PreferredSpecies []string
}

// NewIdentity builds the identity for user. adminEmail grants admin rights on top of
// the admin role.
func NewIdentity(user *models.User, adminEmail string) *Identity {
	admin := user.Role == models.RoleAdmin
	if adminEmail != "" && strings.EqualFold(user.Email, adminEmail) {
		admin = true
	}
	return &Identity{
		UserID:           user.ID,
		Email:            user.Email,
		Admin:            admin,
		PreferredSpecies: user.PreferredSpeciesIDs(),
	}
}

type identityKey struct{}

// WithIdentity returns a context carrying id
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// FromContext returns the request identity, or nil for anonymous requests
func FromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
