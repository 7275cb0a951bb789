package memory

import (
	"context"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VoteRepository implements repositories.VoteRepository in memory
type VoteRepository struct {
	db *DB
}

var _ repositories.VoteRepository = (*VoteRepository)(nil)

func NewVoteRepository(db *DB) *VoteRepository {
	return &VoteRepository{db: db}
}

func (r *VoteRepository) Upsert(ctx context.Context, userID uint, postID primitive.ObjectID, value int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := voteKey{userID: userID, postID: postID}
	now := time.Now()
	v, ok := r.db.votes[key]
	if !ok {
		v = models.Vote{ID: primitive.NewObjectID(), UserID: userID, PostID: postID, CreatedAt: now}
	}
	v.Value = value
	v.UpdatedAt = now
	r.db.votes[key] = v
	return nil
}

func (r *VoteRepository) Delete(ctx context.Context, userID uint, postID primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	delete(r.db.votes, voteKey{userID: userID, postID: postID})
	return nil
}

func (r *VoteRepository) Get(ctx context.Context, userID uint, postID primitive.ObjectID) (*models.Vote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	v, ok := r.db.votes[voteKey{userID: userID, postID: postID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &v, nil
}

func (r *VoteRepository) CountForUserPost(ctx context.Context, userID uint, postID primitive.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	var n int64
	for k := range r.db.votes {
		if k.userID == userID && k.postID == postID {
			n++
		}
	}
	return n, nil
}

func (r *VoteRepository) TallyByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]models.VoteTally, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	wanted := make(map[primitive.ObjectID]bool, len(postIDs))
	for _, id := range postIDs {
		wanted[id] = true
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	tallies := make(map[primitive.ObjectID]models.VoteTally, len(postIDs))
	for k, v := range r.db.votes {
		if !wanted[k.postID] {
			continue
		}
		t := tallies[k.postID]
		switch v.Value {
		case models.Upvote:
			t.Upvotes++
		case models.Downvote:
			t.Downvotes++
		}
		tallies[k.postID] = t
	}
	return tallies, nil
}

func (r *VoteRepository) VotesByUser(ctx context.Context, userID uint, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	votes := make(map[primitive.ObjectID]int)
	for _, id := range postIDs {
		if v, ok := r.db.votes[voteKey{userID: userID, postID: id}]; ok {
			votes[id] = v.Value
		}
	}
	return votes, nil
}
