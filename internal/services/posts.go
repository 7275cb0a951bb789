package services

import (
	"context"
	"slices"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// PostView is a post with the fields derived for a particular viewer
type PostView struct {
	models.Post
	Author       models.UserCompact `json:"author"`
	Pet          *models.Pet        `json:"pet"`
	PetList      []models.Pet       `json:"pets"`
	Upvotes      int64              `json:"upvotes"`
	Downvotes    int64              `json:"downvotes"`
	VoteScore    int64              `json:"vote_score"`
	UserVote     *int               `json:"user_vote"`
	CommentCount int64              `json:"comment_count"`
	ReportCount  int64              `json:"report_count"`
	IsSaved      bool               `json:"is_saved"`
}

// CreatePostInput carries the fields of a new post
type CreatePostInput struct {
	Title       string
	Description string
	PostType    string
	ReportType  string
	PetIDs      []string
	Tags        []string
	Images      []string
	Location    string
}

// PostService handles the post lifecycle and builds post views
type PostService struct {
	posts    repositories.PostRepository
	pets     repositories.PetRepository
	votes    repositories.VoteRepository
	comments repositories.CommentRepository
	reports  repositories.ReportRepository
	saved    repositories.SavedPostRepository
	users    repositories.UserRepository
	logger   *zap.Logger
}

func NewPostService(
	posts repositories.PostRepository,
	pets repositories.PetRepository,
	votes repositories.VoteRepository,
	comments repositories.CommentRepository,
	reports repositories.ReportRepository,
	saved repositories.SavedPostRepository,
	users repositories.UserRepository,
	logger *zap.Logger,
) *PostService {
	return &PostService{
		posts:    posts,
		pets:     pets,
		votes:    votes,
		comments: comments,
		reports:  reports,
		saved:    saved,
		users:    users,
		logger:   logger,
	}
}

// CreatePost stores a new post for the author. Every pet must be active and owned by
// the author.
func (s *PostService) CreatePost(ctx context.Context, authorID uint, in CreatePostInput) (*models.Post, error) {
	post := &models.Post{
		Title:       sanitizeText(in.Title),
		Description: sanitizeText(in.Description),
		AuthorID:    authorID,
		PostType:    models.PostType(in.PostType),
		Tags:        sanitizeAll(in.Tags),
		Images:      in.Images,
		Location:    sanitizeText(in.Location),
	}
	if post.Title == "" || post.Description == "" {
		return nil, apperr.InvalidArgument("title and description are required")
	}
	if !post.PostType.Valid() {
		return nil, apperr.InvalidArgument("unknown post type %q", in.PostType)
	}
	if in.ReportType != "" {
		rt := models.ReportType(in.ReportType)
		if post.PostType != models.PostTypeMissing {
			return nil, apperr.InvalidArgument("report type only applies to missing posts")
		}
		if rt != models.ReportTypeLost && rt != models.ReportTypeFound {
			return nil, apperr.InvalidArgument("unknown report type %q", in.ReportType)
		}
		post.ReportType = &rt
	}
	if post.Images == nil {
		post.Images = []string{}
	}

	for _, hex := range in.PetIDs {
		pet, err := s.pets.GetPetByID(ctx, hex)
		if err != nil {
			return nil, lookupErr(err, "pet")
		}
		if !pet.IsActive {
			return nil, apperr.NotFound("pet not found")
		}
		if pet.OwnerID != authorID {
			return nil, apperr.InvalidOperation("pet %s does not belong to you", hex)
		}
		if !slices.Contains(post.Pets, pet.ID) {
			post.Pets = append(post.Pets, pet.ID)
		}
	}

	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	s.logger.Info("post created", zap.String("post_id", post.ID.Hex()), zap.Uint("author_id", authorID))
	return post, nil
}

// GetPost returns an active post
func (s *PostService) GetPost(ctx context.Context, id string) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, "post")
	}
	if !post.IsActive {
		return nil, apperr.NotFound("post not found")
	}
	return post, nil
}

// DeletePost soft deletes a post along with its comments and drops it from every
// saved list. Only the author or an admin may delete.
func (s *PostService) DeletePost(ctx context.Context, actor *auth.Identity, id string) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.UserID && !actor.Admin {
		return apperr.Unauthorized("not allowed to delete this post")
	}

	if err := s.posts.DeactivatePost(ctx, post.ID); err != nil {
		return errors.Wrap(err, "deactivate post")
	}
	comments, err := s.comments.DeactivateByPost(ctx, id)
	if err != nil {
		return err
	}
	unsaved, err := s.saved.RemovePostEverywhere(ctx, id)
	if err != nil {
		return err
	}
	s.logger.Info("post deleted",
		zap.String("post_id", id),
		zap.Uint("actor_id", actor.UserID),
		zap.Int64("comments_deactivated", comments),
		zap.Int64("saves_removed", unsaved))
	return nil
}

// View builds the view of a single post
func (s *PostService) View(ctx context.Context, viewer *auth.Identity, post *models.Post) (*PostView, error) {
	views, err := s.ViewPosts(ctx, viewer, []models.Post{*post})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ViewPosts builds views for plain posts
func (s *PostService) ViewPosts(ctx context.Context, viewer *auth.Identity, posts []models.Post) ([]PostView, error) {
	ranked := make([]feed.RankedPost, len(posts))
	for i, p := range posts {
		ranked[i] = feed.RankedPost{Post: p}
	}
	return s.Enrich(ctx, viewer, ranked)
}

// Enrich derives the per-viewer fields of a page of posts. Every derived field costs
// one batched query for the whole page. viewer may be nil.
func (s *PostService) Enrich(ctx context.Context, viewer *auth.Identity, ranked []feed.RankedPost) ([]PostView, error) {
	views := make([]PostView, len(ranked))
	if len(ranked) == 0 {
		return views, nil
	}

	ids := make([]primitive.ObjectID, len(ranked))
	hexIDs := make([]string, len(ranked))
	authorIDs := make([]uint, 0, len(ranked))
	for i, rp := range ranked {
		ids[i] = rp.ID
		hexIDs[i] = rp.ID.Hex()
		if !slices.Contains(authorIDs, rp.AuthorID) {
			authorIDs = append(authorIDs, rp.AuthorID)
		}
	}

	tallies, err := s.votes.TallyByPosts(ctx, ids)
	if err != nil {
		return nil, err
	}
	comments, err := s.comments.CountActiveByPosts(ctx, hexIDs)
	if err != nil {
		return nil, err
	}
	reports, err := s.reports.CountByPosts(ctx, hexIDs)
	if err != nil {
		return nil, err
	}

	userVotes := map[primitive.ObjectID]int{}
	saved := map[string]bool{}
	if viewer != nil {
		if userVotes, err = s.votes.VotesByUser(ctx, viewer.UserID, ids); err != nil {
			return nil, err
		}
		if saved, err = s.saved.GetSavedPostIDs(ctx, viewer.UserID, hexIDs); err != nil {
			return nil, err
		}
	}

	authors, err := s.authors(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	pets, err := s.resolvePets(ctx, ranked)
	if err != nil {
		return nil, err
	}

	for i, rp := range ranked {
		post := rp.Post
		post.Normalize()
		tally := tallies[post.ID]
		v := PostView{
			Post:         post,
			PetList:      pets[i],
			Upvotes:      tally.Upvotes,
			Downvotes:    tally.Downvotes,
			VoteScore:    tally.Score(),
			CommentCount: comments[hexIDs[i]],
			ReportCount:  reports[hexIDs[i]],
			IsSaved:      saved[hexIDs[i]],
		}
		if author, ok := authors[post.AuthorID]; ok {
			v.Author = author
		} else {
			v.Author = models.DeletedUser(post.AuthorID)
		}
		if len(v.PetList) > 0 {
			v.Pet = &v.PetList[0]
		}
		if value, ok := userVotes[post.ID]; ok {
			v.UserVote = &value
		}
		views[i] = v
	}
	return views, nil
}

func (s *PostService) authors(ctx context.Context, ids []uint) (map[uint]models.UserCompact, error) {
	users, err := s.users.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		out[u.ID] = u.ToCompact()
	}
	return out, nil
}

// resolvePets returns the active pets of each post in order. Pets the ranking already
// joined arrive resolved; the rest are fetched in one batch.
func (s *PostService) resolvePets(ctx context.Context, ranked []feed.RankedPost) ([][]models.Pet, error) {
	refs := make([][]models.Ref[models.Pet], len(ranked))
	var missing []primitive.ObjectID
	for i, rp := range ranked {
		post := rp.Post
		post.Normalize()
		for _, id := range post.Pets {
			ref := models.Unresolved[models.Pet](id)
			for j := range rp.PetData {
				if rp.PetData[j].ID == id {
					ref = models.Resolved(id, &rp.PetData[j])
				}
			}
			if !ref.IsResolved() && !slices.Contains(missing, id) {
				missing = append(missing, id)
			}
			refs[i] = append(refs[i], ref)
		}
	}

	fetched := make(map[primitive.ObjectID]*models.Pet, len(missing))
	if len(missing) > 0 {
		pets, err := s.pets.GetPetsByIDs(ctx, missing)
		if err != nil {
			return nil, err
		}
		for i := range pets {
			fetched[pets[i].ID] = &pets[i]
		}
	}
	fromBatch := func(_ context.Context, id primitive.ObjectID) (*models.Pet, error) {
		return fetched[id], nil
	}

	out := make([][]models.Pet, len(ranked))
	for i, postRefs := range refs {
		out[i] = []models.Pet{}
		for _, ref := range postRefs {
			pet, err := ref.Resolve(ctx, fromBatch)
			if err != nil {
				return nil, err
			}
			if pet != nil && pet.IsActive {
				out[i] = append(out[i], *pet)
			}
		}
	}
	return out, nil
}
