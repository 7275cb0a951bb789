// Package memory is an in-process implementation of the document store
// repositories. It backs DOCUMENT_STORE=memory and the tests.
package memory

import (
	"sync"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type voteKey struct {
	userID uint
	postID primitive.ObjectID
}

// DB holds the collections shared by the memory repositories
type DB struct {
	mu      sync.RWMutex
	posts   map[primitive.ObjectID]models.Post
	pets    map[primitive.ObjectID]models.Pet
	votes   map[voteKey]models.Vote
	species map[primitive.ObjectID]models.Species
}

func NewDB() *DB {
	return &DB{
		posts:   make(map[primitive.ObjectID]models.Post),
		pets:    make(map[primitive.ObjectID]models.Pet),
		votes:   make(map[voteKey]models.Vote),
		species: make(map[primitive.ObjectID]models.Species),
	}
}

// PutPost stores p as is, keeping its id and timestamps. Tests use it to seed
// documents in shapes CreatePost never writes, such as the legacy pet field.
func (db *DB) PutPost(p models.Post) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	db.posts[p.ID] = clonePost(p)
}

// PutPet stores p as is
func (db *DB) PutPet(p models.Pet) {
	db.mu.Lock()
	defer db.mu.Unlock()
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	db.pets[p.ID] = p
}

func clonePost(p models.Post) models.Post {
	p.Pets = append([]primitive.ObjectID(nil), p.Pets...)
	p.Tags = append([]string(nil), p.Tags...)
	p.Images = append([]string(nil), p.Images...)
	if p.Pet != nil {
		id := *p.Pet
		p.Pet = &id
	}
	return p
}
