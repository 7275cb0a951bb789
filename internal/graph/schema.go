// Package graph serves the GraphQL API over the services.
package graph

import (
	_ "embed"
	"net/http"

	"github.com/anonto42/pet-adopt/backend/internal/services"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/graph-gophers/graphql-go/relay"
	"go.uber.org/zap"
)

//go:embed schema.graphql
var schemaSource string

// NewSchema parses the schema and binds it to the services
func NewSchema(svc *services.Services, logger *zap.Logger) (*graphql.Schema, error) {
	return graphql.ParseSchema(schemaSource, &Resolver{svc: svc, logger: logger})
}

// Handler serves GraphQL requests over HTTP. The request context must carry the
// caller's identity when there is one.
func Handler(schema *graphql.Schema) http.Handler {
	return &relay.Handler{Schema: schema}
}
