package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DocumentStoreMongo  = "mongo"
	DocumentStoreMemory = "memory"

	RelationalPostgres = "postgres"
	RelationalSQLite   = "sqlite"

	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

type Config struct {
	Port        string `mapstructure:"PORT"`
	Env         string `mapstructure:"ENV"`
	MetricsPort string `mapstructure:"METRICS_PORT"`

	DocumentStore string `mapstructure:"DOCUMENT_STORE"`
	MongoURI      string `mapstructure:"MONGO_URI"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	RelationalDriver string `mapstructure:"RELATIONAL_DRIVER"`
	PostgresConnStr  string `mapstructure:"POSTGRES_CONN_STR"`
	SQLitePath       string `mapstructure:"SQLITE_PATH"`

	DBOpTimeout time.Duration `mapstructure:"DB_OP_TIMEOUT"`

	AuthProvider            string `mapstructure:"AUTH_PROVIDER"`
	JWTSecret               string `mapstructure:"JWT_SECRET"`
	FirebaseCredentialsPath string `mapstructure:"FIREBASE_CREDENTIALS_PATH"`
	AdminEmail              string `mapstructure:"ADMIN_EMAIL"`

	RateLimitRPS       float64  `mapstructure:"RATE_LIMIT_RPS"`
	CORSAllowedOrigins []string `mapstructure:"CORS_ALLOWED_ORIGINS"`
}

// IsProduction reports whether the service runs with production settings
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads .env when present, then the environment, and validates the result
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, assuming environment variables are set.")
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	if origins := v.GetString("CORS_ALLOWED_ORIGINS"); origins != "" {
		v.Set("CORS_ALLOWED_ORIGINS", strings.Split(origins, ","))
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := cfg.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("METRICS_PORT", "9090")
	v.SetDefault("DOCUMENT_STORE", DocumentStoreMongo)
	v.SetDefault("MONGO_URI", "")
	v.SetDefault("MONGO_DATABASE", "petfeed")
	v.SetDefault("RELATIONAL_DRIVER", RelationalPostgres)
	v.SetDefault("POSTGRES_CONN_STR", "")
	v.SetDefault("SQLITE_PATH", "petfeed.db")
	v.SetDefault("DB_OP_TIMEOUT", "10s")
	v.SetDefault("AUTH_PROVIDER", AuthJWT)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("FIREBASE_CREDENTIALS_PATH", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
}

func (c *Config) validate() error {
	switch c.DocumentStore {
	case DocumentStoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when DOCUMENT_STORE=mongo")
		}
	case DocumentStoreMemory:
	default:
		return errors.Errorf("unsupported DOCUMENT_STORE %q", c.DocumentStore)
	}

	switch c.RelationalDriver {
	case RelationalPostgres:
		if c.PostgresConnStr == "" {
			return errors.New("POSTGRES_CONN_STR is required when RELATIONAL_DRIVER=postgres")
		}
	case RelationalSQLite:
	default:
		return errors.Errorf("unsupported RELATIONAL_DRIVER %q", c.RelationalDriver)
	}

	switch c.AuthProvider {
	case AuthJWT:
		if c.JWTSecret == "" {
			if c.IsProduction() {
				return errors.New("JWT_SECRET is required in production")
			}
			c.JWTSecret = "supersecretjwtkey"
		}
	case AuthFirebase:
		if c.FirebaseCredentialsPath == "" {
			return errors.New("FIREBASE_CREDENTIALS_PATH is required when AUTH_PROVIDER=firebase")
		}
	default:
		return errors.Errorf("unsupported AUTH_PROVIDER %q", c.AuthProvider)
	}

	if c.DBOpTimeout <= 0 {
		return errors.New("DB_OP_TIMEOUT must be positive")
	}
	return nil
}
