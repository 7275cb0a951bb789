package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/anonto42/pet-adopt/backend/internal/auth"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/anonto42/pet-adopt/backend/internal/repositories"
	"github.com/anonto42/pet-adopt/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVerifier struct {
	subject *auth.Subject
}

func (f fakeVerifier) Verify(context.Context, string) (*auth.Subject, error) {
	if f.subject == nil {
		return nil, auth.ErrInvalidToken
	}
	return f.subject, nil
}

func newUsers(t *testing.T) *repositories.PostgresUserRepository {
	return repositories.NewPostgresUserRepository(testutil.OpenSQLite(t))
}

func TestJWTRoundTrip(t *testing.T) {
	user := &models.User{ID: 7, Email: "a@example.com"}
	token, err := auth.MintToken("secret", user, time.Hour)
	require.NoError(t, err)

	subject, err := auth.NewJWTVerifier("secret").Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), subject.UserID)
	assert.Equal(t, "a@example.com", subject.Email)
	assert.Empty(t, subject.FirebaseUID)

	_, err = auth.NewJWTVerifier("other").Verify(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	expired, err := auth.MintToken("secret", user, -time.Minute)
	require.NoError(t, err)
	_, err = auth.NewJWTVerifier("secret").Verify(context.Background(), expired)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = auth.NewJWTVerifier("secret").Verify(context.Background(), "garbage")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestResolveJWTUser(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)
	alice := &models.User{Name: "Alice", Email: "alice@example.com", Role: models.RoleUser, IsActive: true}
	require.NoError(t, users.CreateUser(ctx, alice))
	require.NoError(t, users.ReplacePreferredSpecies(ctx, alice.ID, []string{"dog"}))

	resolver := auth.NewResolver(auth.NewJWTVerifier("secret"), users, "", zap.NewNop())
	token, err := auth.MintToken("secret", alice, time.Hour)
	require.NoError(t, err)

	id, err := resolver.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, alice.ID, id.UserID)
	assert.False(t, id.Admin)
	assert.Equal(t, []string{"dog"}, id.PreferredSpecies)

	require.NoError(t, users.DeactivateUser(ctx, alice.ID))
	_, err = resolver.Resolve(ctx, token)
	assert.ErrorIs(t, err, auth.ErrInactiveUser)

	ghost, err := auth.MintToken("secret", &models.User{ID: 999}, time.Hour)
	require.NoError(t, err)
	_, err = resolver.Resolve(ctx, ghost)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestResolveRegistersFirebaseUser(t *testing.T) {
	ctx := context.Background()
	users := newUsers(t)
	verifier := fakeVerifier{subject: &auth.Subject{FirebaseUID: "fb-1", Email: "new@example.com"}}
	resolver := auth.NewResolver(verifier, users, "", zap.NewNop())

	first, err := resolver.Resolve(ctx, "token")
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.UserID, second.UserID, "the second call finds the registered user")

	stored, err := users.GetUserByFirebaseUID(ctx, "fb-1")
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", stored.Name, "name falls back to the email")

	_, err = auth.NewResolver(fakeVerifier{}, users, "", zap.NewNop()).Resolve(ctx, "bad")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestNewIdentityAdmin(t *testing.T) {
	assert.True(t, auth.NewIdentity(&models.User{Email: "Boss@Example.com"}, "boss@example.com").Admin)
	assert.True(t, auth.NewIdentity(&models.User{Role: models.RoleAdmin}, "").Admin)
	assert.False(t, auth.NewIdentity(&models.User{Email: "a@example.com"}, "").Admin)
}

func TestIdentityContext(t *testing.T) {
	assert.Nil(t, auth.FromContext(context.Background()))
	id := &auth.Identity{UserID: 3}
	assert.Same(t, id, auth.FromContext(auth.WithIdentity(context.Background(), id)))
}
