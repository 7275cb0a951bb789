package graph

import (
	"context"
	"strconv"

	"github.com/anonto42/pet-adopt/backend/internal/apperr"
	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/feed"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	graphql "github.com/graph-gophers/graphql-go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Resolver is the root of both Query and Mutation
type Resolver struct {
	svc    *services.Services
	logger *zap.Logger
}

func viewer(ctx context.Context) (*auth.Identity, error) {
	id := auth.FromContext(ctx)
	if id == nil {
		return nil, apperr.Unauthorized("authentication required")
	}
	return id, nil
}

func parseUintID(id graphql.ID, entity string) (uint, error) {
	n, err := strconv.ParseUint(string(id), 10, 32)
	if err != nil {
		return 0, apperr.NotFound("%s not found", entity)
	}
	return uint(n), nil
}

func (r *Resolver) view(ctx context.Context, post *models.Post) (*postResolver, error) {
	v, err := r.svc.Posts.View(ctx, auth.FromContext(ctx), post)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &postResolver{v: v}, nil
}

// Queries

type postsFeedArgs struct {
	First     graphql.NullInt
	After     *string
	SpeciesID *graphql.ID
	PostType  *string
	SortBy    *string
	Search    *string
}

func (r *Resolver) PostsFeed(ctx context.Context, args postsFeedArgs) (*postConnectionResolver, error) {
	req := feed.Request{SortBy: args.SortBy}
	if args.First.Set && args.First.Value != nil {
		first := int(*args.First.Value)
		req.First = &first
	}
	if args.After != nil {
		req.After = *args.After
	}
	if args.SpeciesID != nil {
		req.SpeciesID = string(*args.SpeciesID)
	}
	if args.PostType != nil {
		req.PostType = *args.PostType
	}
	if args.Search != nil {
		req.Search = *args.Search
	}

	conn, err := r.svc.Feed.PostsFeed(ctx, auth.FromContext(ctx), req)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &postConnectionResolver{conn: conn}, nil
}

// Post returns null for unknown and deleted posts
func (r *Resolver) Post(ctx context.Context, args struct{ ID graphql.ID }) (*postResolver, error) {
	post, err := r.svc.Posts.GetPost(ctx, string(args.ID))
	if errors.Is(err, apperr.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return r.view(ctx, post)
}

func (r *Resolver) Comments(ctx context.Context, args struct{ PostID graphql.ID }) ([]*commentResolver, error) {
	comments, err := r.svc.Comments.CommentsByPost(ctx, string(args.PostID))
	if err != nil {
		return nil, r.resolveErr(err)
	}
	out := make([]*commentResolver, len(comments))
	for i, c := range comments {
		out[i] = &commentResolver{c: c}
	}
	return out, nil
}

func (r *Resolver) SavedPosts(ctx context.Context) ([]*postResolver, error) {
	views, err := r.svc.Saved.SavedPosts(ctx, auth.FromContext(ctx))
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return postResolvers(views), nil
}

func (r *Resolver) MyPets(ctx context.Context) ([]*petResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	pets, err := r.svc.Pets.PetsOf(ctx, id.UserID)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	out := make([]*petResolver, len(pets))
	for i := range pets {
		out[i] = &petResolver{p: &pets[i]}
	}
	return out, nil
}

func (r *Resolver) Species(ctx context.Context) ([]*speciesResolver, error) {
	species, err := r.svc.Pets.ListSpecies(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	out := make([]*speciesResolver, len(species))
	for i, s := range species {
		out[i] = &speciesResolver{s: s}
	}
	return out, nil
}

// Me returns null for anonymous requests
func (r *Resolver) Me(ctx context.Context) (*userResolver, error) {
	id := auth.FromContext(ctx)
	if id == nil {
		return nil, nil
	}
	user, err := r.svc.Accounts.Me(ctx, id.UserID)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &userResolver{u: user}, nil
}

type adminReportsArgs struct {
	Status *string
	Reason *string
	Limit  graphql.NullInt
	Offset graphql.NullInt
}

func (r *Resolver) AdminReports(ctx context.Context, args adminReportsArgs) (*reportConnectionResolver, error) {
	in := services.ReportListInput{}
	if args.Status != nil {
		in.Status = *args.Status
	}
	if args.Reason != nil {
		in.Reason = *args.Reason
	}
	if args.Limit.Set && args.Limit.Value != nil {
		in.Limit = int(*args.Limit.Value)
	}
	if args.Offset.Set && args.Offset.Value != nil {
		in.Offset = int(*args.Offset.Value)
	}
	reports, total, err := r.svc.Reports.ListReports(ctx, auth.FromContext(ctx), in)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &reportConnectionResolver{reports: reports, total: total}, nil
}

func (r *Resolver) Report(ctx context.Context, args struct{ ID graphql.ID }) (*reportResolver, error) {
	id, err := parseUintID(args.ID, "report")
	if err != nil {
		return nil, r.resolveErr(err)
	}
	report, err := r.svc.Reports.GetReport(ctx, auth.FromContext(ctx), id)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &reportResolver{r: report}, nil
}

// Mutations

func (r *Resolver) VotePost(ctx context.Context, args struct {
	PostID graphql.ID
	Value  int32
}) (*postResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	post, err := r.svc.Votes.CastVote(ctx, id.UserID, string(args.PostID), int(args.Value))
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return r.view(ctx, post)
}

func (r *Resolver) RemoveVote(ctx context.Context, args struct{ PostID graphql.ID }) (*postResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	post, err := r.svc.Votes.RemoveVote(ctx, id.UserID, string(args.PostID))
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return r.view(ctx, post)
}

func (r *Resolver) ReportPost(ctx context.Context, args struct {
	PostID      graphql.ID
	Reasons     []string
	Description *string
}) (*reportResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	var description string
	if args.Description != nil {
		description = *args.Description
	}
	report, err := r.svc.Reports.ReportPost(ctx, id.UserID, string(args.PostID), args.Reasons, description)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &reportResolver{r: report}, nil
}

type createPostInput struct {
	Title       string
	Description string
	PostType    string
	ReportType  *string
	PetIDs      *[]graphql.ID
	Tags        *[]string
	Images      *[]string
	Location    *string
}

func (r *Resolver) CreatePost(ctx context.Context, args struct{ Input createPostInput }) (*postResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	in := services.CreatePostInput{
		Title:       args.Input.Title,
		Description: args.Input.Description,
		PostType:    args.Input.PostType,
	}
	if args.Input.ReportType != nil {
		in.ReportType = *args.Input.ReportType
	}
	if args.Input.PetIDs != nil {
		for _, pid := range *args.Input.PetIDs {
			in.PetIDs = append(in.PetIDs, string(pid))
		}
	}
	if args.Input.Tags != nil {
		in.Tags = *args.Input.Tags
	}
	if args.Input.Images != nil {
		in.Images = *args.Input.Images
	}
	if args.Input.Location != nil {
		in.Location = *args.Input.Location
	}

	post, err := r.svc.Posts.CreatePost(ctx, id.UserID, in)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return r.view(ctx, post)
}

func (r *Resolver) DeletePost(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := viewer(ctx)
	if err != nil {
		return false, r.resolveErr(err)
	}
	if err := r.svc.Posts.DeletePost(ctx, id, string(args.ID)); err != nil {
		return false, r.resolveErr(err)
	}
	return true, nil
}

type addPetInput struct {
	Name          string
	SpeciesID     *graphql.ID
	CustomSpecies *string
	CustomBreed   *string
}

func (r *Resolver) AddPet(ctx context.Context, args struct{ Input addPetInput }) (*petResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	in := services.AddPetInput{Name: args.Input.Name}
	if args.Input.SpeciesID != nil {
		in.SpeciesID = string(*args.Input.SpeciesID)
	}
	if args.Input.CustomSpecies != nil {
		in.CustomSpecies = *args.Input.CustomSpecies
	}
	if args.Input.CustomBreed != nil {
		in.CustomBreed = *args.Input.CustomBreed
	}
	pet, err := r.svc.Pets.AddPet(ctx, id.UserID, in)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &petResolver{p: pet}, nil
}

func (r *Resolver) DeletePet(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := viewer(ctx)
	if err != nil {
		return false, r.resolveErr(err)
	}
	if err := r.svc.Pets.DeletePet(ctx, id, string(args.ID)); err != nil {
		return false, r.resolveErr(err)
	}
	return true, nil
}

func (r *Resolver) CreateComment(ctx context.Context, args struct {
	PostID   graphql.ID
	Content  string
	ParentID *graphql.ID
}) (*commentResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	var parentID *uint
	if args.ParentID != nil {
		pid, err := parseUintID(*args.ParentID, "parent comment")
		if err != nil {
			return nil, r.resolveErr(err)
		}
		parentID = &pid
	}
	comment, err := r.svc.Comments.CreateComment(ctx, id.UserID, string(args.PostID), args.Content, parentID)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &commentResolver{c: *comment}, nil
}

func (r *Resolver) DeleteComment(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	id, err := viewer(ctx)
	if err != nil {
		return false, r.resolveErr(err)
	}
	commentID, err := parseUintID(args.ID, "comment")
	if err != nil {
		return false, r.resolveErr(err)
	}
	if err := r.svc.Comments.DeleteComment(ctx, id.UserID, commentID); err != nil {
		return false, r.resolveErr(err)
	}
	return true, nil
}

func (r *Resolver) SavePost(ctx context.Context, args struct{ PostID graphql.ID }) (*postResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	post, err := r.svc.Saved.SavePost(ctx, id.UserID, string(args.PostID))
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return r.view(ctx, post)
}

func (r *Resolver) UnsavePost(ctx context.Context, args struct{ PostID graphql.ID }) (*postResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	post, err := r.svc.Saved.UnsavePost(ctx, id.UserID, string(args.PostID))
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return r.view(ctx, post)
}

func (r *Resolver) UpdatePreferredSpecies(ctx context.Context, args struct{ SpeciesIDs []graphql.ID }) (*userResolver, error) {
	id, err := viewer(ctx)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	ids := make([]string, len(args.SpeciesIDs))
	for i, s := range args.SpeciesIDs {
		ids[i] = string(s)
	}
	user, err := r.svc.Accounts.UpdatePreferredSpecies(ctx, id.UserID, ids)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &userResolver{u: user}, nil
}

func (r *Resolver) DeleteAccount(ctx context.Context) (bool, error) {
	id, err := viewer(ctx)
	if err != nil {
		return false, r.resolveErr(err)
	}
	if err := r.svc.Accounts.DeleteAccount(ctx, id.UserID); err != nil {
		return false, r.resolveErr(err)
	}
	return true, nil
}

func (r *Resolver) UpdateReport(ctx context.Context, args struct {
	ID         graphql.ID
	Status     *string
	AdminNotes *string
}) (*reportResolver, error) {
	reportID, err := parseUintID(args.ID, "report")
	if err != nil {
		return nil, r.resolveErr(err)
	}
	in := services.ReportUpdateInput{AdminNotes: args.AdminNotes}
	if args.Status != nil {
		in.Status = *args.Status
	}
	report, err := r.svc.Reports.UpdateReport(ctx, auth.FromContext(ctx), reportID, in)
	if err != nil {
		return nil, r.resolveErr(err)
	}
	return &reportResolver{r: report}, nil
}

func (r *Resolver) DeleteReport(ctx context.Context, args struct{ ID graphql.ID }) (bool, error) {
	reportID, err := parseUintID(args.ID, "report")
	if err != nil {
		return false, r.resolveErr(err)
	}
	if err := r.svc.Reports.DeleteReport(ctx, auth.FromContext(ctx), reportID); err != nil {
		return false, r.resolveErr(err)
	}
	return true, nil
}
