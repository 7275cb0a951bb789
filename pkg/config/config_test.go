package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Env:              "development",
		DocumentStore:    DocumentStoreMemory,
		RelationalDriver: RelationalSQLite,
		AuthProvider:     AuthJWT,
		DBOpTimeout:      time.Second,
	}
}

func TestValidateFillsDevelopmentSecret(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.validate())
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestValidateRejects(t *testing.T) {
	for name, mutate := range map[string]func(*Config){
		"mongo without uri":       func(c *Config) { c.DocumentStore = DocumentStoreMongo },
		"unknown document store":  func(c *Config) { c.DocumentStore = "redis" },
		"postgres without dsn":    func(c *Config) { c.RelationalDriver = RelationalPostgres },
		"unknown driver":          func(c *Config) { c.RelationalDriver = "mysql" },
		"production without jwt":  func(c *Config) { c.Env = "production" },
		"firebase without creds":  func(c *Config) { c.AuthProvider = AuthFirebase },
		"unknown auth provider":   func(c *Config) { c.AuthProvider = "saml" },
		"non positive op timeout": func(c *Config) { c.DBOpTimeout = 0 },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			mutate(&cfg)
			assert.Error(t, cfg.validate())
		})
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("DOCUMENT_STORE", DocumentStoreMemory)
	t.Setenv("RELATIONAL_DRIVER", RelationalSQLite)
	t.Setenv("RATE_LIMIT_RPS", "5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_OP_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 3*time.Second, cfg.DBOpTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}
