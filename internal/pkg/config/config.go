package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

type Config struct {
	Port            string        `env:"PORT,             default=8080"`
	Env             string        `env:"ENV,              default=development"`
	LogLevel        string        `env:"LOG_LEVEL,        default=info"`
	MaxPageLimit    int           `env:"MAX_PAGE_LIMIT,   default=100"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT, default=10s"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	// Kind selects the tracker store: "mongo" or "memory".
	Kind string `env:"STORE,     default=mongo"`
	// SeedFile is a JSON array of trackers loaded into the memory store.
	SeedFile string `env:"SEED_FILE"`
	// WatchSeed reloads SeedFile whenever it changes on disk.
	WatchSeed bool `env:"SEED_WATCH, default=false"`
}

type MongoConfig struct {
	URI                 string `env:"MONGO_URI,                  default=mongodb://localhost:27017"`
	Database            string `env:"MONGO_DB,                   default=shipment_tracker"`
	TrackersCollection  string `env:"MONGO_TRACKERS_COLLECTION,  default=tracked_shipments"`
	AddressesCollection string `env:"MONGO_ADDRESSES_COLLECTION, default=company_addresses"`
}

type RedisConfig struct {
	// Addr enables the tracker detail cache when set.
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB,          default=0"`
	TTL      time.Duration `env:"TRACKER_CACHE_TTL, default=5m"`
}

// IsDevelopment reports whether logs should be human-friendly.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadWith(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadWith reads configuration through the given lookuper and validates it.
func LoadWith(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Kind {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("STORE must be %q or %q, got %q", StoreMongo, StoreMemory, c.Store.Kind)
	}
	if c.MaxPageLimit < 1 {
		return fmt.Errorf("MAX_PAGE_LIMIT must be positive, got %d", c.MaxPageLimit)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}
