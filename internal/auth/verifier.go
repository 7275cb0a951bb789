package auth

import (
	"context"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/anonto42/pet-adopt/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// ErrInvalidToken is returned for tokens that fail verification
var ErrInvalidToken = errors.New("invalid token")

// Subject is what a verified token says about its bearer. Exactly one of UserID and
// FirebaseUID is set.
type Subject struct {
	UserID      uint
	FirebaseUID string
	Email       string
	Name        string
}

// Verifier checks a bearer token
type Verifier interface {
	Verify(ctx context.Context, token string) (*Subject, error)
}

// JWTVerifier verifies HS256 tokens carrying models.JwtCustomClaims
type JWTVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

func (v *JWTVerifier) Verify(_ context.Context, tokenString string) (*Subject, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(ErrInvalidToken, "jwt")
	}
	if claims.UserID == 0 {
		return nil, errors.Wrap(ErrInvalidToken, "jwt without user id")
	}
	return &Subject{UserID: claims.UserID, Email: claims.Email}, nil
}

// MintToken signs a token for user, valid for ttl
func MintToken(secret string, user *models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &models.JwtCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// FirebaseVerifier verifies Firebase ID tokens
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(client *fbauth.Client) *FirebaseVerifier {
	return &FirebaseVerifier{client: client}
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (*Subject, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, errors.Wrap(ErrInvalidToken, err.Error())
	}
	s := &Subject{FirebaseUID: token.UID}
	if email, ok := token.Claims["email"].(string); ok {
		s.Email = email
	}
	if name, ok := token.Claims["name"].(string); ok {
		s.Name = name
	}
	return s, nil
}
