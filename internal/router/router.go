package router

import (
	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/graph"
	"github.com/anonto42/pet-adopt/backend/internal/handlers"
	"github.com/anonto42/pet-adopt/backend/internal/middleware"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// SetupRoutes configures the REST and GraphQL routes over svc
func SetupRoutes(e *echo.Echo, svc *services.Services, resolver *auth.Resolver, logger *zap.Logger) error {
	e.GET("/health", handlers.HealthCheck)

	authenticate := middleware.Authenticate(resolver, logger.Named("auth"))

	schema, err := graph.NewSchema(svc, logger.Named("graphql"))
	if err != nil {
		return errors.Wrap(err, "parse GraphQL schema")
	}
	gql := echo.WrapHandler(graph.Handler(schema))
	e.POST("/graphql", gql, authenticate)

	api := e.Group("/api/v1", authenticate)
	api.POST("/graphql", gql)

	handlers.NewFeedHandler(svc.Feed).RegisterFeedRoutes(api)
	handlers.NewPostHandler(svc.Posts).RegisterPostRoutes(api)
	handlers.NewVoteHandler(svc.Votes, svc.Posts).RegisterVoteRoutes(api)
	handlers.NewReportHandler(svc.Reports).RegisterReportRoutes(api)
	handlers.NewCommentHandler(svc.Comments).RegisterCommentRoutes(api)
	handlers.NewSavedPostHandler(svc.Saved).RegisterSavedPostRoutes(api)
	handlers.NewPetHandler(svc.Pets).RegisterPetRoutes(api)
	handlers.NewAccountHandler(svc.Accounts).RegisterProfileRoutes(api)

	logger.Info("routes configured", zap.Int("count", len(e.Routes())))
	return nil
}
