package memory

import (
	"context"
	"sort"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PostRepository implements repositories.PostRepository in memory
type PostRepository struct {
	db *DB
}

var _ repositories.PostRepository = (*PostRepository)(nil)

func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	post.IsActive = true
	post.Pet = nil

	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.posts[post.ID] = clonePost(*post)
	return nil
}

func (r *PostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	objID, err := repositories.ParseObjectID(id)
	if err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.posts[objID]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p = clonePost(p)
	p.Normalize()
	return &p, nil
}

func (r *PostRepository) PostKeyset(ctx context.Context, id string) (feed.Keyset, error) {
	if err := ctx.Err(); err != nil {
		return feed.Keyset{}, err
	}
	objID, err := repositories.ParseObjectID(id)
	if err != nil {
		return feed.Keyset{}, errors.Wrap(feed.ErrCursorNotFound, err.Error())
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	p, ok := r.db.posts[objID]
	if !ok {
		return feed.Keyset{}, errors.Wrapf(feed.ErrCursorNotFound, "post %s", id)
	}
	return feed.KeysetOf(&p), nil
}

func (r *PostRepository) GetPostsByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.db.posts[id]; ok {
			p = clonePost(p)
			p.Normalize()
			posts = append(posts, p)
		}
	}
	return posts, nil
}

func (r *PostRepository) FindPosts(ctx context.Context, f feed.Filter, limit int) ([]models.Post, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts := r.matching(f)
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID.Hex() > posts[j].ID.Hex()
	})
	if limit < len(posts) {
		posts = posts[:limit]
	}
	return posts, nil
}

// RankPopular scores every matching post in process. The candidate set is the whole
// filtered collection, which is fine for the data sizes this store serves.
func (r *PostRepository) RankPopular(ctx context.Context, f feed.Filter, preferred []string, skip, limit int) ([]feed.RankedPost, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	posts := r.matching(f)

	r.db.mu.RLock()
	tallies := make(map[primitive.ObjectID]models.VoteTally, len(posts))
	for k, v := range r.db.votes {
		t := tallies[k.postID]
		switch v.Value {
		case models.Upvote:
			t.Upvotes++
		case models.Downvote:
			t.Downvotes++
		}
		tallies[k.postID] = t
	}
	candidates := make([]feed.Candidate, 0, len(posts))
	for _, p := range posts {
		c := feed.Candidate{Post: p, Tally: tallies[p.ID]}
		if petID, ok := p.PrimaryPetID(); ok {
			if pet, ok := r.db.pets[petID]; ok {
				c.PrimaryPet = &pet
			}
		}
		candidates = append(candidates, c)
	}
	r.db.mu.RUnlock()

	return feed.RankCandidates(candidates, preferred, skip, limit), nil
}

func (r *PostRepository) CountPosts(ctx context.Context, f feed.Filter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return int64(len(r.matching(f))), nil
}

func (r *PostRepository) DeactivatePost(ctx context.Context, id primitive.ObjectID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	p, ok := r.db.posts[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	r.db.posts[id] = p
	return nil
}

func (r *PostRepository) DeactivateByAuthor(ctx context.Context, authorID uint) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.deactivateWhere(func(p *models.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *PostRepository) DeactivateSolePetPosts(ctx context.Context, petID primitive.ObjectID) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return r.deactivateWhere(func(p *models.Post) bool {
		if len(p.Pets) > 0 {
			return len(p.Pets) == 1 && p.Pets[0] == petID
		}
		return p.Pet != nil && *p.Pet == petID
	}), nil
}

func (r *PostRepository) deactivateWhere(match func(*models.Post) bool) int64 {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var n int64
	now := time.Now()
	for id, p := range r.db.posts {
		if !p.IsActive || !match(&p) {
			continue
		}
		p.IsActive = false
		p.UpdatedAt = now
		r.db.posts[id] = p
		n++
	}
	return n
}

func (r *PostRepository) matching(f feed.Filter) []models.Post {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()
	posts := make([]models.Post, 0)
	for _, p := range r.db.posts {
		if f.Matches(&p) {
			p = clonePost(p)
			p.Normalize()
			posts = append(posts, p)
		}
	}
	return posts
}
