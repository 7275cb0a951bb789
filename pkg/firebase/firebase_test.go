package firebase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCheckCredentials(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "service-account.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o600))

	assert.NoError(t, checkCredentials(file))
	for _, path := range []string{"", filepath.Join(dir, "missing.json"), dir} {
		assert.ErrorIs(t, checkCredentials(path), ErrNoCredentials, path)
	}
}

func TestNewAuthClientWithoutCredentials(t *testing.T) {
	_, err := NewAuthClient(context.Background(), "", zap.NewNop())
	assert.ErrorIs(t, err, ErrNoCredentials)
}
