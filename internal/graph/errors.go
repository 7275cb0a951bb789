package graph

import (
	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// resolverError carries the error kind to the client as extensions.code
type resolverError struct {
	kind    apperr.Kind
	message string
}

func (e *resolverError) Error() string {
	return e.message
}

func (e *resolverError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": string(e.kind)}
}

// resolveErr converts a service error for the GraphQL response. Internal errors
// are logged and replaced with a generic message.
func (r *Resolver) resolveErr(err error) error {
	if err == nil {
		return nil
	}
	kind := apperr.KindOf(err)
	if kind == apperr.KindInternal {
		r.logger.Error("resolver failed", zap.Error(err))
		return &resolverError{kind: kind, message: "internal error"}
	}
	var ae *apperr.Error
	errors.As(err, &ae)
	return &resolverError{kind: kind, message: ae.Message}
}
