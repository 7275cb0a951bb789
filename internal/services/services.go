// Package services implements the feed, vote, report and moderation operations on
// top of the repositories. Both the REST handlers and the GraphQL resolvers call it.
package services

import (
	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/anonto42/pet-adopt/backend/pkg/metrics"
	"go.uber.org/zap"
)

// Repositories is the storage the services run on
type Repositories struct {
	Posts    repositories.PostRepository
	Pets     repositories.PetRepository
	Votes    repositories.VoteRepository
	Species  repositories.SpeciesRepository
	Users    repositories.UserRepository
	Comments repositories.CommentRepository
	Saved    repositories.SavedPostRepository
	Reports  repositories.ReportRepository
}

type Services struct {
	Feed     *FeedService
	Posts    *PostService
	Votes    *VoteService
	Pets     *PetService
	Comments *CommentService
	Saved    *SavedPostService
	Reports  *ReportService
	Accounts *AccountService
}

func New(r Repositories, m *metrics.Metrics, logger *zap.Logger) *Services {
	posts := NewPostService(r.Posts, r.Pets, r.Votes, r.Comments, r.Reports, r.Saved, r.Users, logger.Named("posts"))
	return &Services{
		Feed: NewFeedService(
			feed.NewQueryBuilder(r.Pets),
			feed.NewRanker(r.Posts, logger.Named("feed")),
			posts, m, logger.Named("feed"),
		),
		Posts:    posts,
		Votes:    NewVoteService(r.Posts, r.Votes, m, logger.Named("votes")),
		Pets:     NewPetService(r.Pets, r.Posts, r.Species, logger.Named("pets")),
		Comments: NewCommentService(r.Comments, r.Posts, r.Users, logger.Named("comments")),
		Saved:    NewSavedPostService(r.Saved, r.Posts, posts),
		Reports:  NewReportService(r.Reports, r.Posts, m, logger.Named("reports")),
		Accounts: NewAccountService(r.Users, r.Species, r.Posts, r.Pets, r.Comments, logger.Named("accounts")),
	}
}
