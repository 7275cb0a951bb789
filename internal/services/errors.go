package services

import (
	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/pkg/errors"
)

// lookupErr turns a repository lookup failure into the error callers see. Missing
// records and malformed ids both read as "not found" for the named entity.
func lookupErr(err error, entity string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, repositories.ErrInvalidID):
		return apperr.NotFound("%s not found", entity)
	}
	return errors.Wrapf(err, "load %s", entity)
}
