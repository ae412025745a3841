package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadFile("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nftforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":7000"
store:
  backend: postgres
  dsn: postgres://from-file
  conn_max_lifetime: 5m
ledger:
  backend: redis
  redis_addr: redis:6379
log:
  level: debug
`), 0o644))

	t.Setenv("NFTFORGE_DB_DSN", "postgres://from-env")
	t.Setenv("NFTFORGE_LEDGER_BACKEND", "postgres")
	t.Setenv("NFTFORGE_LOG_FORMAT", "console")

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTP.Addr)
	assert.Equal(t, StorePostgres, cfg.Store.Backend)
	assert.Equal(t, "postgres://from-env", cfg.Store.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Store.ConnMaxLifetime)
	assert.Equal(t, LedgerPostgres, cfg.Ledger.Backend)
	assert.Equal(t, "redis:6379", cfg.Ledger.RedisAddr)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, ":9090", cfg.Metrics.Addr, "unset keys keep their defaults")
}

func TestLoad_ReadsPathFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.yaml")
	require.NoError(t, os.WriteFile(path, []byte("metrics:\n  addr: \"\"\n"), 0o644))
	t.Setenv(PathEnv, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Empty(t, cfg.Metrics.Addr)
}

func TestLoadFile_Errors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("http: [\n"), 0o644))
	_, err = LoadFile(bad)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{name: "defaults", mutate: func(*Config) {}, ok: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.Store.Backend = StorePostgres }},
		{name: "unknown store", mutate: func(c *Config) { c.Store.Backend = "sqlite" }},
		{name: "unknown ledger", mutate: func(c *Config) { c.Ledger.Backend = "chain" }},
		{name: "redis without addr", mutate: func(c *Config) {
			c.Ledger.Backend = LedgerRedis
			c.Ledger.RedisAddr = ""
		}},
		{name: "postgres ledger on memory store", mutate: func(c *Config) { c.Ledger.Backend = LedgerPostgres }},
		{name: "postgres ledger on postgres store", mutate: func(c *Config) {
			c.Store.Backend = StorePostgres
			c.Store.DSN = "postgres://x"
			c.Ledger.Backend = LedgerPostgres
		}, ok: true},
		{name: "empty http addr", mutate: func(c *Config) { c.HTTP.Addr = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
