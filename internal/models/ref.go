package models

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Ref is a reference that is either still an id or already carries the entity
type Ref[T any] struct {
	ID    primitive.ObjectID
	Value *T
}

// Unresolved returns a reference holding only an id
func Unresolved[T any](id primitive.ObjectID) Ref[T] {
	return Ref[T]{ID: id}
}

// Resolved returns a reference that already carries its entity
func Resolved[T any](id primitive.ObjectID, v *T) Ref[T] {
	return Ref[T]{ID: id, Value: v}
}

// IsResolved reports whether the entity is present
func (r Ref[T]) IsResolved() bool {
	return r.Value != nil
}

// Resolve returns the entity, calling fetch only when the reference is unresolved
func (r Ref[T]) Resolve(ctx context.Context, fetch func(context.Context, primitive.ObjectID) (*T, error)) (*T, error) {
	if r.Value != nil {
		return r.Value, nil
	}
	return fetch(ctx, r.ID)
}
