package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "mltrading-api/pkg/market/exchanges/sim"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

const minimalYAML = `
Name: mltrading-api
Host: 127.0.0.1
Port: 8000
Database:
  Driver: sqlite
  DSN: "file::memory:"
`

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.yaml", minimalYAML)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "test", cfg.Env)
	assert.True(t, cfg.IsTestEnv())
	assert.Equal(t, 300, cfg.TTL.Current)
	assert.Equal(t, 3600, cfg.TTL.History)
	assert.Equal(t, 7, cfg.Resolver.FreshnessDays)
	assert.Equal(t, 30, cfg.Resolver.SufficiencyFloor)
	assert.Equal(t, 2, cfg.Resolver.Overfetch)
	assert.Equal(t, "5y", cfg.Backfill.Period)
	assert.Equal(t, 15*time.Second, cfg.Backfill.Delay)
	assert.Equal(t, "30 16 * * 1-5", cfg.Backfill.UpdateCron)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Nil(t, cfg.Market.Value)
	assert.Equal(t, filepath.Dir(path), cfg.BaseDir())
	assert.Equal(t, path, cfg.MainPath())
}

func TestLoadPartialSectionKeepsOtherDefaults(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.yaml", minimalYAML+`
TTL:
  Current: 60
Backfill:
  Delay: 2s
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.TTL.Current)
	assert.Equal(t, 3600, cfg.TTL.History)
	assert.Equal(t, 2*time.Second, cfg.Backfill.Delay)
	assert.Equal(t, "5y", cfg.Backfill.Period)
	assert.Equal(t, 7, cfg.Resolver.FreshnessDays)
}

func TestLoadWithoutDatabaseSection(t *testing.T) {
	path := writeFile(t, t.TempDir(), "app.yaml", `
Name: mltrading-api
Host: 127.0.0.1
Port: 8000
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.dsn")
}

func TestLoadHydratesMarketSection(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "market.yaml", `
default: sim
providers:
  sim:
    type: sim
    seed: 11
    timeout: ${SIM_TIMEOUT}
`)
	t.Setenv("SIM_TIMEOUT", "3s")

	path := writeFile(t, dir, "app.yaml", minimalYAML+`
Market:
  File: market.yaml
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Market.Value)
	assert.Equal(t, filepath.Join(dir, "market.yaml"), cfg.Market.File)
	assert.Equal(t, "sim", cfg.Market.Value.Default)
	assert.Equal(t, 3*time.Second, cfg.Market.Value.Providers["sim"].Timeout)

	mkt, source := cfg.MarketConfig()
	assert.Same(t, cfg.Market.Value, mkt)
	assert.Equal(t, cfg.Market.File, source)
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("MLTRADING_DSN", "postgres://u:p@db:5432/prices?sslmode=disable")
	path := writeFile(t, t.TempDir(), "app.yaml", `
Name: mltrading-api
Host: 127.0.0.1
Port: 8000
Env: prod
Database:
  DSN: ${MLTRADING_DSN}
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pgx", cfg.Database.Driver)
	assert.Equal(t, "postgres://u:p@db:5432/prices?sslmode=disable", cfg.Database.DSN)
	assert.False(t, cfg.IsTestEnv())
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Env:      "dev",
			Database: DatabaseConf{Driver: "sqlite", DSN: "file::memory:"},
			TTL:      CacheTTL{Current: 300, History: 3600},
			Resolver: ResolverConf{FreshnessDays: 7, SufficiencyFloor: 30, Overfetch: 2, Timezone: "UTC"},
			Backfill: BackfillConf{Period: "5y", Delay: time.Second, UpdateCron: "0 17 * * *", Timezone: "UTC"},
		}
	}
	base := valid()
	require.NoError(t, base.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"bad env", func(c *Config) { c.Env = "staging" }, "env must be"},
		{"bad driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"missing dsn", func(c *Config) { c.Database.DSN = " " }, "database.dsn"},
		{"zero current ttl", func(c *Config) { c.TTL.Current = 0 }, "ttl.current"},
		{"zero history ttl", func(c *Config) { c.TTL.History = 0 }, "ttl.history"},
		{"zero freshness", func(c *Config) { c.Resolver.FreshnessDays = 0 }, "freshnessDays"},
		{"zero floor", func(c *Config) { c.Resolver.SufficiencyFloor = 0 }, "sufficiencyFloor"},
		{"zero overfetch", func(c *Config) { c.Resolver.Overfetch = 0 }, "overfetch"},
		{"bad resolver tz", func(c *Config) { c.Resolver.Timezone = "Mars/Olympus" }, "resolver.timezone"},
		{"unknown period", func(c *Config) { c.Backfill.Period = "10y" }, "backfill.period"},
		{"negative delay", func(c *Config) { c.Backfill.Delay = -time.Second }, "backfill.delay"},
		{"missing cron", func(c *Config) { c.Backfill.UpdateCron = "" }, "updateCron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateDefaultsEmptyEnv(t *testing.T) {
	cfg := Config{
		Database: DatabaseConf{Driver: "pgx", DSN: "postgres://x"},
		TTL:      CacheTTL{Current: 1, History: 1},
		Resolver: ResolverConf{FreshnessDays: 1, SufficiencyFloor: 1, Overfetch: 1},
		Backfill: BackfillConf{Period: "1w", UpdateCron: "@daily"},
	}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "test", cfg.Env)

	loc, err := cfg.Resolver.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}
