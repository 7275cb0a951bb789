package graph

import (
	"strconv"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/services"
	graphql "github.com/graph-gophers/graphql-go"
)

func timeString(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func uintID(id uint) graphql.ID {
	return graphql.ID(strconv.FormatUint(uint64(id), 10))
}

type postConnectionResolver struct {
	conn *services.PostConnection
}

func (r *postConnectionResolver) Edges() []*postEdgeResolver {
	out := make([]*postEdgeResolver, len(r.conn.Edges))
	for i := range r.conn.Edges {
		out[i] = &postEdgeResolver{edge: &r.conn.Edges[i]}
	}
	return out
}

func (r *postConnectionResolver) PageInfo() *pageInfoResolver {
	return &pageInfoResolver{info: r.conn.PageInfo}
}

func (r *postConnectionResolver) TotalCount() int32 {
	return int32(r.conn.TotalCount)
}

type postEdgeResolver struct {
	edge *services.PostEdge
}

func (r *postEdgeResolver) Cursor() string {
	return r.edge.Cursor
}

func (r *postEdgeResolver) Node() *postResolver {
	return &postResolver{v: &r.edge.Node}
}

type pageInfoResolver struct {
	info services.PageInfo
}

func (r *pageInfoResolver) HasNextPage() bool {
	return r.info.HasNextPage
}

func (r *pageInfoResolver) EndCursor() *string {
	return r.info.EndCursor
}

type postResolver struct {
	v *services.PostView
}

func postResolvers(views []services.PostView) []*postResolver {
	out := make([]*postResolver, len(views))
	for i := range views {
		out[i] = &postResolver{v: &views[i]}
	}
	return out
}

func (r *postResolver) ID() graphql.ID      { return graphql.ID(r.v.ID.Hex()) }
func (r *postResolver) Title() string       { return r.v.Title }
func (r *postResolver) Description() string { return r.v.Description }
func (r *postResolver) PostType() string    { return string(r.v.PostType) }
func (r *postResolver) Tags() []string      { return r.v.Tags }
func (r *postResolver) Images() []string    { return r.v.Images }
func (r *postResolver) Location() *string   { return optional(r.v.Location) }
func (r *postResolver) CreatedAt() string   { return timeString(r.v.CreatedAt) }
func (r *postResolver) UpdatedAt() string   { return timeString(r.v.UpdatedAt) }
func (r *postResolver) Upvotes() int32      { return int32(r.v.Upvotes) }
func (r *postResolver) Downvotes() int32    { return int32(r.v.Downvotes) }
func (r *postResolver) VoteScore() int32    { return int32(r.v.VoteScore) }
func (r *postResolver) CommentCount() int32 { return int32(r.v.CommentCount) }
func (r *postResolver) ReportCount() int32  { return int32(r.v.ReportCount) }
func (r *postResolver) IsSaved() bool       { return r.v.IsSaved }
func (r *postResolver) Author() *authorResolver {
	return &authorResolver{u: r.v.Author}
}

func (r *postResolver) ReportType() *string {
	if r.v.ReportType == nil {
		return nil
	}
	s := string(*r.v.ReportType)
	return &s
}

func (r *postResolver) Pet() *petResolver {
	if r.v.Pet == nil {
		return nil
	}
	return &petResolver{p: r.v.Pet}
}

func (r *postResolver) Pets() []*petResolver {
	out := make([]*petResolver, len(r.v.PetList))
	for i := range r.v.PetList {
		out[i] = &petResolver{p: &r.v.PetList[i]}
	}
	return out
}

func (r *postResolver) UserVote() *int32 {
	if r.v.UserVote == nil {
		return nil
	}
	v := int32(*r.v.UserVote)
	return &v
}

type authorResolver struct {
	u models.UserCompact
}

func (r *authorResolver) ID() graphql.ID  { return uintID(r.u.ID) }
func (r *authorResolver) Name() string    { return r.u.Name }
func (r *authorResolver) IsDeleted() bool { return r.u.IsDeleted }

type petResolver struct {
	p *models.Pet
}

func (r *petResolver) ID() graphql.ID         { return graphql.ID(r.p.ID.Hex()) }
func (r *petResolver) Name() string           { return r.p.Name }
func (r *petResolver) CustomSpecies() *string { return optional(r.p.CustomSpecies) }
func (r *petResolver) CustomBreed() *string   { return optional(r.p.CustomBreed) }
func (r *petResolver) SpeciesID() *graphql.ID {
	if r.p.Species == nil {
		return nil
	}
	id := graphql.ID(r.p.Species.Hex())
	return &id
}

type speciesResolver struct {
	s models.Species
}

func (r *speciesResolver) ID() graphql.ID { return graphql.ID(r.s.ID.Hex()) }
func (r *speciesResolver) Name() string   { return r.s.Name }
func (r *speciesResolver) Label() string  { return r.s.Label }

type userResolver struct {
	u *models.User
}

func (r *userResolver) ID() graphql.ID { return uintID(r.u.ID) }
func (r *userResolver) Name() string   { return r.u.Name }
func (r *userResolver) Email() string  { return r.u.Email }
func (r *userResolver) Role() string   { return r.u.Role }

func (r *userResolver) PreferredSpecies() []graphql.ID {
	ids := r.u.PreferredSpeciesIDs()
	out := make([]graphql.ID, len(ids))
	for i, id := range ids {
		out[i] = graphql.ID(id)
	}
	return out
}

type commentResolver struct {
	c services.CommentView
}

func (r *commentResolver) ID() graphql.ID     { return uintID(r.c.ID) }
func (r *commentResolver) PostID() graphql.ID { return graphql.ID(r.c.PostID) }
func (r *commentResolver) Content() string    { return r.c.Content }
func (r *commentResolver) CreatedAt() string  { return timeString(r.c.CreatedAt) }
func (r *commentResolver) Author() *authorResolver {
	return &authorResolver{u: r.c.Author}
}

func (r *commentResolver) ParentID() *graphql.ID {
	if r.c.ParentID == nil {
		return nil
	}
	id := uintID(*r.c.ParentID)
	return &id
}

type reportResolver struct {
	r *models.Report
}

func (r *reportResolver) ID() graphql.ID         { return uintID(r.r.ID) }
func (r *reportResolver) PostID() graphql.ID     { return graphql.ID(r.r.PostID) }
func (r *reportResolver) ReporterID() graphql.ID { return uintID(r.r.ReporterID) }
func (r *reportResolver) Description() *string   { return optional(r.r.Description) }
func (r *reportResolver) Status() string         { return string(r.r.Status) }
func (r *reportResolver) AdminNotes() *string    { return optional(r.r.AdminNotes) }
func (r *reportResolver) CreatedAt() string      { return timeString(r.r.CreatedAt) }

func (r *reportResolver) Reasons() []string {
	reasons := r.r.ReasonList()
	out := make([]string, len(reasons))
	for i, reason := range reasons {
		out[i] = string(reason)
	}
	return out
}

func (r *reportResolver) ReviewedBy() *graphql.ID {
	if r.r.ReviewedBy == nil {
		return nil
	}
	id := uintID(*r.r.ReviewedBy)
	return &id
}

func (r *reportResolver) ReviewedAt() *string {
	if r.r.ReviewedAt == nil {
		return nil
	}
	s := timeString(*r.r.ReviewedAt)
	return &s
}

type reportConnectionResolver struct {
	reports []models.Report
	total   int64
}

func (r *reportConnectionResolver) Reports() []*reportResolver {
	out := make([]*reportResolver, len(r.reports))
	for i := range r.reports {
		out[i] = &reportResolver{r: &r.reports[i]}
	}
	return out
}

func (r *reportConnectionResolver) TotalCount() int32 {
	return int32(r.total)
}
