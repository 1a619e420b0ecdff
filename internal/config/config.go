// Package config loads the service configuration from the environment, an
// optional .env file and command-line overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"dario.cat/mergo"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	devClientURL = "http://localhost:5173"
)

// ErrMissingEnv is wrapped by Validate for every required variable that is unset.
var ErrMissingEnv = errors.New("missing required environment variable")

type Config struct {
	Port      int    `env:"PORT" envDefault:"5000"`
	Env       string `env:"NODE_ENV" envDefault:"development"`
	ClientURL string `env:"CLIENT_URL"`
	StaticDir string `env:"STATIC_DIR" envDefault:"frontend/dist"`

	// DatabaseURL falls back to MONGO_URI so deployments configured for the
	// previous backend keep working.
	DatabaseURL string `env:"DATABASE_URL"`
	MongoURI    string `env:"MONGO_URI"`

	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"720h"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`
	HashWorkers int           `env:"HASH_WORKERS"`

	Redis Redis `envPrefix:"REDIS_"`
}

// Redis is optional; token revocation is disabled when Addr is empty.
type Redis struct {
	Addr     string `env:"ADDR"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

var (
	loadDotEnv = godotenv.Load
	parseEnv   = env.ParseAs[Config]
)

// Load reads .env (outside production), parses the environment and lets the
// non-zero fields of overrides win. It does not validate; call Validate.
func Load(overrides *Config) (*Config, error) {
	if os.Getenv("NODE_ENV") != EnvProduction {
		// a missing .env is fine
		_ = loadDotEnv()
	}

	parsed, err := parseEnv()
	if err != nil {
		return nil, fmt.Errorf("error getting env configs: %w", err)
	}

	cfg := &Config{}
	if overrides != nil {
		*cfg = *overrides
	}
	if err := mergo.Merge(cfg, parsed); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}
	return cfg, nil
}

// StorageURL is the connection string the stores use.
func (c *Config) StorageURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.MongoURI
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// AllowedOrigin is the single origin CORS accepts.
func (c *Config) AllowedOrigin() string {
	if c.IsProduction() {
		return c.ClientURL
	}
	return devClientURL
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate is the deploy-readiness check. It reports every missing variable,
// not only the first one.
func (c *Config) Validate() error {
	var errs []error
	if c.StorageURL() == "" {
		errs = append(errs, fmt.Errorf("%w: DATABASE_URL or MONGO_URI", ErrMissingEnv))
	}
	if c.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("%w: JWT_SECRET", ErrMissingEnv))
	}
	if c.IsProduction() && c.ClientURL == "" {
		errs = append(errs, fmt.Errorf("%w: CLIENT_URL", ErrMissingEnv))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("invalid TOKEN_TTL %s", c.TokenTTL))
	}
	return errors.Join(errs...)
}
