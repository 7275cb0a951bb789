// Package firebase opens the Firebase Admin auth client used when identity tokens
// come from Firebase instead of the service's own JWTs.
package firebase

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// ErrNoCredentials is returned when the service account file is unset or missing
var ErrNoCredentials = errors.New("firebase service account credentials unavailable")

// NewAuthClient loads the service account at credentialsPath and returns an auth
// client able to verify ID tokens.
func NewAuthClient(ctx context.Context, credentialsPath string, logger *zap.Logger) (*auth.Client, error) {
	if err := checkCredentials(credentialsPath); err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "create firebase app")
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "open firebase auth")
	}

	logger.Info("verifying identity tokens with firebase", zap.String("credentials", credentialsPath))
	return client, nil
}

func checkCredentials(path string) error {
	if path == "" {
		return errors.Wrap(ErrNoCredentials, "FIREBASE_CREDENTIALS_PATH is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(ErrNoCredentials, "%s: %v", path, err)
	}
	if info.IsDir() {
		return errors.Wrapf(ErrNoCredentials, "%s is a directory", path)
	}
	return nil
}
