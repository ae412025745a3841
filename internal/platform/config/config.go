// Package config loads server configuration: built-in defaults, then an
// optional YAML file, then environment variables.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const PathEnv = "NFTFORGE_CONFIG"

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	LedgerMemory   = "memory"
	LedgerRedis    = "redis"
	LedgerPostgres = "postgres"
)

type Config struct {
	HTTP    HTTPConfig    `yaml:"http" envPrefix:"NFTFORGE_HTTP_"`
	Metrics MetricsConfig `yaml:"metrics" envPrefix:"NFTFORGE_METRICS_"`
	Store   StoreConfig   `yaml:"store" envPrefix:"NFTFORGE_"`
	Ledger  LedgerConfig  `yaml:"ledger" envPrefix:"NFTFORGE_"`
	Log     LogConfig     `yaml:"log" envPrefix:"NFTFORGE_LOG_"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

type MetricsConfig struct {
	// Addr empty disables the prometheus listener.
	Addr string `yaml:"addr" env:"ADDR"`
	Path string `yaml:"path" env:"PATH"`
}

type StoreConfig struct {
	Backend         string        `yaml:"backend" env:"STORE_BACKEND"`
	DSN             string        `yaml:"dsn" env:"DB_DSN"`
	MigrationsDir   string        `yaml:"migrations_dir" env:"DB_MIGRATIONS_DIR"`
	MaxOpenConns    int           `yaml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"`
}

type LedgerConfig struct {
	Backend       string `yaml:"backend" env:"LEDGER_BACKEND"`
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redis_password" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
	RedisPrefix   string `yaml:"redis_prefix" env:"REDIS_PREFIX"`
}

type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`
	Format string `yaml:"format" env:"FORMAT"`
	// File enables rotated file output next to stdout.
	File       string `yaml:"file" env:"FILE"`
	MaxSizeMB  int    `yaml:"max_size_mb" env:"MAX_SIZE_MB"`
	MaxBackups int    `yaml:"max_backups" env:"MAX_BACKUPS"`
	MaxAgeDays int    `yaml:"max_age_days" env:"MAX_AGE_DAYS"`
}

func Default() Config {
	return Config{
		HTTP:    HTTPConfig{Addr: ":8080"},
		Metrics: MetricsConfig{Addr: ":9090", Path: "/metrics"},
		Store: StoreConfig{
			Backend:         StoreMemory,
			MigrationsDir:   "db/migrations",
			MaxOpenConns:    20,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
		},
		Ledger: LedgerConfig{Backend: LedgerMemory, RedisAddr: "localhost:6379", RedisPrefix: "nftforge:asset:"},
		Log:    LogConfig{Level: "info", Format: "json", MaxSizeMB: 100, MaxBackups: 7, MaxAgeDays: 14},
	}
}

// Load reads the file named by NFTFORGE_CONFIG when set, then applies
// environment overrides.
func Load() (Config, error) {
	return LoadFile(strings.TrimSpace(os.Getenv(PathEnv)))
}

func LoadFile(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "read config %s", path)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parse config %s", path)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case StoreMemory:
	case StorePostgres:
		if strings.TrimSpace(c.Store.DSN) == "" {
			return errors.New("store: postgres backend requires a dsn")
		}
	default:
		return errors.Newf("store: unknown backend %q", c.Store.Backend)
	}

	switch c.Ledger.Backend {
	case LedgerMemory:
	case LedgerRedis:
		if strings.TrimSpace(c.Ledger.RedisAddr) == "" {
			return errors.New("ledger: redis backend requires an address")
		}
	case LedgerPostgres:
		if c.Store.Backend != StorePostgres {
			return errors.New("ledger: postgres backend requires the postgres store")
		}
	default:
		return errors.Newf("ledger: unknown backend %q", c.Ledger.Backend)
	}

	if strings.TrimSpace(c.HTTP.Addr) == "" {
		return errors.New("http: addr is required")
	}
	return nil
}
