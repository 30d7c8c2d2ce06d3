package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/nikolayk812/storefront/internal/core"
	pkgredis "github.com/nikolayk812/storefront/pkg/redis"
)

const Prefix = "STOREFRONT"

type StorageDriver string

const (
	DriverMemory   StorageDriver = "memory"
	DriverFile     StorageDriver = "file"
	DriverRedis    StorageDriver = "redis"
	DriverPostgres StorageDriver = "postgres"
)

type Config struct {
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `split_words:"true" default:"info"`

	// OwnerID scopes persisted state, like a browser profile.
	OwnerID          string        `split_words:"true" default:"local"`
	SimulatedLatency time.Duration `split_words:"true" default:"1s"`
	OrderLatency     time.Duration `split_words:"true" default:"2s"`

	Storage  StorageConfig
	Redis    pkgredis.Config
	Postgres PostgresConfig
}

type StorageConfig struct {
	Driver StorageDriver `default:"file"`
	Dir    string        `default:".storefront"`
}

type PostgresConfig struct {
	URL string
}

func (c Config) Environment() core.Environment {
	return core.ParseEnvironment(c.AppEnv)
}

// Load reads the optional .env files, then the STOREFRONT_* environment.
// Variables already set in the environment win over .env values.
func Load(envFiles ...string) (Config, error) {
	for _, f := range envFiles {
		// a missing .env is fine
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("godotenv.Load[%s]: %w", f, err)
		}
	}

	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("envconfig.Process: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverFile, DriverRedis:
	case DriverPostgres:
		if c.Postgres.URL == "" {
			return fmt.Errorf("postgres storage requires %s_POSTGRES_URL", Prefix)
		}
	default:
		return fmt.Errorf("storage driver[%s] is not supported", c.Storage.Driver)
	}

	if c.OwnerID == "" {
		return fmt.Errorf("ownerID is empty")
	}
	if c.SimulatedLatency < 0 {
		return fmt.Errorf("simulated latency[%s] is negative", c.SimulatedLatency)
	}
	if c.OrderLatency < 0 {
		return fmt.Errorf("order latency[%s] is negative", c.OrderLatency)
	}

	return nil
}
