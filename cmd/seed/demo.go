package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

var demoPosts int

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Create demo users, pets, posts and votes",
	Args:  cobra.NoArgs,
	RunE:  withEnv(runDemo),
}

func init() {
	demoCmd.Flags().IntVar(&demoPosts, "posts", 20, "number of posts to create")
}

var demoUsers = []string{"Ana", "Bruno", "Carla", "Diego"}

var demoTitles = map[models.PostType][]string{
	models.PostTypePost:    {"Sunday at the park", "Bath time", "New toy day"},
	models.PostTypeAdopt:   {"Looking for a loving home", "Adopt me, I am house trained", "Gentle senior needs a sofa"},
	models.PostTypeMissing: {"Missing since Tuesday", "Found near the market", "Please help us find her"},
}

func runDemo(ctx context.Context, e *env, _ *cobra.Command, _ []string) error {
	if demoPosts < 0 {
		return errors.New("--posts must not be negative")
	}
	species, err := seedSpecies(ctx, e.repos.Species)
	if err != nil {
		return err
	}

	users := make([]*models.User, 0, len(demoUsers))
	for _, name := range demoUsers {
		email := fmt.Sprintf("%s@demo.petfeed.local", name)
		user, err := e.repos.Users.GetUserByEmail(ctx, email)
		if err != nil {
			user = &models.User{Name: name, Email: email, Role: models.RoleUser, IsActive: true}
			if err := e.repos.Users.CreateUser(ctx, user); err != nil {
				return errors.Wrapf(err, "create user %s", name)
			}
		}
		users = append(users, user)
	}

	pets := make(map[uint][]models.Pet, len(users))
	for i, u := range users {
		for j := 0; j < 2; j++ {
			s := species[(i*2+j)%len(species)]
			pet := &models.Pet{Name: fmt.Sprintf("%s's %s #%d", u.Name, s.Label, j+1), Species: &s.ID, OwnerID: u.ID, IsActive: true}
			if err := e.repos.Pets.CreatePet(ctx, pet); err != nil {
				return errors.Wrap(err, "create pet")
			}
			pets[u.ID] = append(pets[u.ID], *pet)
		}
	}

	types := []models.PostType{models.PostTypePost, models.PostTypeAdopt, models.PostTypeMissing}
	for i := 0; i < demoPosts; i++ {
		author := users[rand.Intn(len(users))]
		postType := types[rand.Intn(len(types))]
		own := pets[author.ID]
		post := &models.Post{
			Title:       demoTitles[postType][rand.Intn(len(demoTitles[postType]))],
			Description: "Demo content generated by the seed command.",
			AuthorID:    author.ID,
			PostType:    postType,
			Pets:        []primitive.ObjectID{own[rand.Intn(len(own))].ID},
			Tags:        []string{string(postType)},
			Images:      []string{},
		}
		if postType == models.PostTypeMissing {
			rt := models.ReportTypeLost
			post.ReportType = &rt
		}
		if err := e.repos.Posts.CreatePost(ctx, post); err != nil {
			return errors.Wrap(err, "create post")
		}
		for _, voter := range users {
			if voter.ID == author.ID || rand.Intn(3) == 0 {
				continue
			}
			value := models.Upvote
			if rand.Intn(4) == 0 {
				value = models.Downvote
			}
			if err := e.repos.Votes.Upsert(ctx, voter.ID, post.ID, value); err != nil {
				return errors.Wrap(err, "cast vote")
			}
		}
	}

	e.logger.Info("demo data seeded", zap.Int("users", len(users)), zap.Int("posts", demoPosts))
	return nil
}
