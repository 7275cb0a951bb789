package router_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/router"
	"github.com/anonto42/pet-adopt/backend/internal/testutil"
	"github.com/anonto42/pet-adopt/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type server struct {
	e *echo.Echo
	f *testutil.Fixture
}

func newServer(t *testing.T) *server {
	t.Helper()
	f := testutil.New(t)
	e := echo.New()
	e.Validator = validators.NewValidator()
	require.NoError(t, router.SetupRoutes(e, f.Services, f.Resolver, zap.NewNop()))
	return &server{e: e, f: f}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Message string          `json:"message"`
}

func (s *server) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	s := newServer(t)
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)
	post := s.f.Post(s.f.User(t, "Alice"), 0, "hello").ID.Hex()

	for _, tc := range []struct{ method, path string }{
		{http.MethodPut, "/api/v1/posts/" + post + "/vote"},
		{http.MethodPost, "/api/v1/posts/" + post + "/report"},
		{http.MethodDelete, "/api/v1/posts/" + post},
		{http.MethodGet, "/api/v1/saved-posts"},
		{http.MethodGet, "/api/v1/me"},
		{http.MethodGet, "/api/v1/admin/reports"},
	} {
		code, _ := s.do(t, tc.method, tc.path, "", "")
		assert.Equal(t, http.StatusUnauthorized, code, "%s %s", tc.method, tc.path)
	}

	code, _ := s.do(t, http.MethodGet, "/api/v1/feed", "not-a-token", "")
	assert.Equal(t, http.StatusUnauthorized, code, "a bad token is rejected even on public routes")
}

func TestVoteEndpoint(t *testing.T) {
	s := newServer(t)
	alice, bob := s.f.User(t, "Alice"), s.f.User(t, "Bob")
	post := s.f.Post(alice, 0, "hello").ID.Hex()
	token := s.f.Token(t, bob)

	code, env := s.do(t, http.MethodPut, "/api/v1/posts/"+post+"/vote", token, `{"value":-1}`)
	require.Equal(t, http.StatusOK, code)
	var view struct {
		VoteScore int64 `json:"vote_score"`
		Downvotes int64 `json:"downvotes"`
		UserVote  *int  `json:"user_vote"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Equal(t, int64(-1), view.VoteScore)
	assert.Equal(t, int64(1), view.Downvotes)
	require.NotNil(t, view.UserVote)
	assert.Equal(t, -1, *view.UserVote)

	code, _ = s.do(t, http.MethodPut, "/api/v1/posts/"+post+"/vote", token, `{"value":2}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, env = s.do(t, http.MethodDelete, "/api/v1/posts/"+post+"/vote", token, "")
	require.Equal(t, http.StatusOK, code)
	view.UserVote = nil
	require.NoError(t, json.Unmarshal(env.Data, &view))
	assert.Zero(t, view.VoteScore)
	assert.Nil(t, view.UserVote)
}

func TestReportEndpoint(t *testing.T) {
	s := newServer(t)
	alice, bob := s.f.User(t, "Alice"), s.f.User(t, "Bob")
	post := s.f.Post(alice, 0, "hello").ID.Hex()
	path := "/api/v1/posts/" + post + "/report"

	code, _ := s.do(t, http.MethodPost, path, s.f.Token(t, bob), `{"reasons":["spam"]}`)
	assert.Equal(t, http.StatusCreated, code)

	code, _ = s.do(t, http.MethodPost, path, s.f.Token(t, bob), `{"reasons":["scam"]}`)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(t, http.MethodPost, path, s.f.Token(t, alice), `{"reasons":["spam"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "own post")

	code, _ = s.do(t, http.MethodPost, path, s.f.Token(t, alice), `{"reasons":["boring"]}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/admin/reports", s.f.Token(t, bob), "")
	assert.Equal(t, http.StatusUnauthorized, code, "not an admin")

	admin := s.f.User(t, "Admin")
	code, env := s.do(t, http.MethodGet, "/api/v1/admin/reports?reason=spam", s.f.Token(t, admin), "")
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, env.Meta["totalItems"])
	var data struct {
		Reports []struct {
			ID      uint     `json:"id"`
			Reasons []string `json:"reasons"`
			Status  string   `json:"status"`
		} `json:"reports"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	require.Len(t, data.Reports, 1)
	assert.Equal(t, []string{"spam"}, data.Reports[0].Reasons)
	assert.Equal(t, "pending", data.Reports[0].Status)
}

func TestFeedEndpointPaginates(t *testing.T) {
	s := newServer(t)
	alice := s.f.User(t, "Alice")
	for i, title := range []string{"P1", "P2", "P3"} {
		s.f.Post(alice, i, title)
	}
	s.f.Post(alice, 9, "gone", func(p *models.Post) { p.IsActive = false })

	type page struct {
		Edges []struct {
			Cursor string `json:"cursor"`
			Node   struct {
				Title string `json:"title"`
			} `json:"node"`
		} `json:"edges"`
		PageInfo struct {
			HasNextPage bool    `json:"has_next_page"`
			EndCursor   *string `json:"end_cursor"`
		} `json:"page_info"`
		TotalCount int64 `json:"total_count"`
	}

	code, env := s.do(t, http.MethodGet, "/api/v1/feed?first=2", "", "")
	require.Equal(t, http.StatusOK, code)
	var first page
	require.NoError(t, json.Unmarshal(env.Data, &first))
	require.Len(t, first.Edges, 2)
	assert.Equal(t, "P3", first.Edges[0].Node.Title, "ties on score fall back to recency")
	assert.True(t, first.PageInfo.HasNextPage)
	require.NotNil(t, first.PageInfo.EndCursor)
	assert.Equal(t, "2", *first.PageInfo.EndCursor)
	assert.Equal(t, int64(3), first.TotalCount)

	code, env = s.do(t, http.MethodGet, "/api/v1/feed?first=2&after="+*first.PageInfo.EndCursor, "", "")
	require.Equal(t, http.StatusOK, code)
	var second page
	require.NoError(t, json.Unmarshal(env.Data, &second))
	require.Len(t, second.Edges, 1)
	assert.Equal(t, "P1", second.Edges[0].Node.Title)
	assert.False(t, second.PageInfo.HasNextPage)
	assert.Equal(t, int64(3), second.TotalCount)

	code, _ = s.do(t, http.MethodGet, "/api/v1/feed?first=0", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = s.do(t, http.MethodGet, "/api/v1/feed?first=abc", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPostLifecycleEndpoints(t *testing.T) {
	s := newServer(t)
	alice, bob := s.f.User(t, "Alice"), s.f.User(t, "Bob")
	rex := s.f.Pet(alice, "Rex", nil)

	body := `{"title":"Rex needs a home","description":"friendly","post_type":"adopt","pet_ids":["` + rex.ID.Hex() + `"]}`
	code, env := s.do(t, http.MethodPost, "/api/v1/posts", s.f.Token(t, alice), body)
	require.Equal(t, http.StatusCreated, code)
	var created struct {
		ID   string `json:"id"`
		Pets []struct {
			Name string `json:"name"`
		} `json:"pets"`
		Author struct {
			Name string `json:"name"`
		} `json:"author"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.Len(t, created.Pets, 1)
	assert.Equal(t, "Rex", created.Pets[0].Name)
	assert.Equal(t, "Alice", created.Author.Name)

	code, _ = s.do(t, http.MethodPost, "/api/v1/posts", s.f.Token(t, bob), body)
	assert.Equal(t, http.StatusUnprocessableEntity, code, "pet of another user")

	code, _ = s.do(t, http.MethodDelete, "/api/v1/posts/"+created.ID, s.f.Token(t, bob), "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(t, http.MethodDelete, "/api/v1/posts/"+created.ID, s.f.Token(t, alice), "")
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(t, http.MethodGet, "/api/v1/posts/"+created.ID, "", "")
	assert.Equal(t, http.StatusNotFound, code)
}
