// Package testutil builds a fully wired service set over the in-memory document
// store and an in-memory SQLite database.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/anonto42/pet-adopt/backend/internal/repositories/memory"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	"github.com/anonto42/pet-adopt/backend/pkg/config"
	"github.com/anonto42/pet-adopt/backend/pkg/metrics"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	JWTSecret  = "test-secret"
	AdminEmail = "admin@example.com"
)

type Fixture struct {
	Doc      *memory.DB
	SQL      *gorm.DB
	Repos    services.Repositories
	Services *services.Services
	Resolver *auth.Resolver
	Base     time.Time
}

// OpenSQLite opens a migrated in-memory database private to t
func OpenSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func New(t *testing.T) *Fixture {
	t.Helper()
	doc := memory.NewDB()
	sql := OpenSQLite(t)
	repos := services.Repositories{
		Posts:    memory.NewPostRepository(doc),
		Pets:     memory.NewPetRepository(doc),
		Votes:    memory.NewVoteRepository(doc),
		Species:  memory.NewSpeciesRepository(doc),
		Users:    repositories.NewPostgresUserRepository(sql),
		Comments: repositories.NewPostgresCommentRepository(sql),
		Saved:    repositories.NewPostgresSavedPostRepository(sql),
		Reports:  repositories.NewPostgresReportRepository(sql),
	}
	logger := zap.NewNop()
	return &Fixture{
		Doc:      doc,
		SQL:      sql,
		Repos:    repos,
		Services: services.New(repos, metrics.Noop(), logger),
		Resolver: auth.NewResolver(auth.NewJWTVerifier(JWTSecret), repos.Users, AdminEmail, logger),
		Base:     time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// User creates an active user
func (f *Fixture) User(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com", Role: models.RoleUser, IsActive: true}
	require.NoError(t, f.Repos.Users.CreateUser(context.Background(), u))
	return u
}

// Identity loads the identity of user the way an authenticated request would
func (f *Fixture) Identity(t *testing.T, user *models.User) *auth.Identity {
	t.Helper()
	loaded, err := f.Repos.Users.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	return auth.NewIdentity(loaded, AdminEmail)
}

// Token mints a bearer token for user
func (f *Fixture) Token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := auth.MintToken(JWTSecret, user, time.Hour)
	require.NoError(t, err)
	return token
}

// Species stores a known species
func (f *Fixture) Species(t *testing.T, name string) models.Species {
	t.Helper()
	s := models.Species{Name: name, Label: strings.ToUpper(name[:1]) + name[1:]}
	require.NoError(t, f.Repos.Species.UpsertSpecies(context.Background(), &s))
	return s
}

// Pet stores an active pet for owner
func (f *Fixture) Pet(owner *models.User, name string, species *models.Species) models.Pet {
	p := models.Pet{ID: primitive.NewObjectID(), Name: name, OwnerID: owner.ID, IsActive: true, CreatedAt: f.Base}
	if species != nil {
		p.Species = &species.ID
	}
	f.Doc.PutPet(p)
	return p
}

// Post stores an active post by author created n minutes after the base time
func (f *Fixture) Post(author *models.User, n int, title string, mutate ...func(*models.Post)) models.Post {
	p := models.Post{
		ID:        primitive.NewObjectID(),
		Title:     title,
		AuthorID:  author.ID,
		PostType:  models.PostTypePost,
		Tags:      []string{},
		Images:    []string{},
		IsActive:  true,
		CreatedAt: f.Base.Add(time.Duration(n) * time.Minute),
	}
	for _, m := range mutate {
		m(&p)
	}
	f.Doc.PutPost(p)
	return p
}

// WithPets attaches pets to a post
func WithPets(pets ...models.Pet) func(*models.Post) {
	return func(p *models.Post) {
		for _, pet := range pets {
			p.Pets = append(p.Pets, pet.ID)
		}
	}
}
