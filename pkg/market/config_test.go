package market_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	market "mltrading-api/pkg/market"
	_ "mltrading-api/pkg/market/exchanges/polygon"
	_ "mltrading-api/pkg/market/exchanges/sim"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "market.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadMarketConfig(t *testing.T) {
	path := writeConfig(t, `
default: polygon
providers:
  polygon:
    type: polygon
    base_url: https://api.polygon.io
    api_key: demo
    timeout: 6s
    http_timeout: 10s
    max_retries: 4
  sim:
    type: sim
    seed: 7
`)

	cfg, err := market.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "polygon", cfg.Default)
	assert.Equal(t, 4, cfg.Providers["polygon"].MaxRetries)
	assert.Equal(t, int64(7), cfg.Providers["sim"].Seed)

	assert.Equal(t, 6*time.Second, cfg.Providers["polygon"].Timeout)
	assert.Equal(t, 10*time.Second, cfg.Providers["polygon"].HTTPTimeout)

	def, err := cfg.BuildDefault()
	require.NoError(t, err)
	require.NotNil(t, def)
}

func TestBuildDefaultIgnoresUnusedKeylessProvider(t *testing.T) {
	t.Setenv("POLYGON_API_KEY", "")
	cfg, err := market.LoadConfigFromReader(strings.NewReader(`
default: sim
providers:
  polygon:
    type: polygon
    api_key: ${POLYGON_API_KEY}
  sim:
    type: sim
`))
	require.NoError(t, err)

	def, err := cfg.BuildDefault()
	require.NoError(t, err)
	require.NotNil(t, def)

	_, err = cfg.Build("polygon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key required")
	_, err = cfg.Build("missing")
	require.Error(t, err)
}

func TestMarketConfigInvalidType(t *testing.T) {
	path := writeConfig(t, `
providers:
  demo:
    type: foobar
`)
	_, err := market.LoadConfig(path)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported"), err.Error())
}

func TestMarketConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "empty providers", body: "default: x\n", want: "providers cannot be empty"},
		{name: "unknown default", body: "default: nope\nproviders:\n  sim:\n    type: sim\n", want: `default provider "nope"`},
		{name: "missing type", body: "providers:\n  sim:\n    seed: 1\n", want: "must specify type"},
		{name: "bad timeout", body: "providers:\n  sim:\n    type: sim\n    timeout: soon\n", want: "invalid timeout"},
		{name: "negative http timeout", body: "providers:\n  sim:\n    type: sim\n    http_timeout: -1s\n", want: "invalid http_timeout"},
		{name: "negative retries", body: "providers:\n  sim:\n    type: sim\n    max_retries: -1\n", want: "max_retries"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := market.LoadConfigFromReader(strings.NewReader(tt.body))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestBuildDefaultWithoutDefault(t *testing.T) {
	cfg, err := market.LoadConfigFromReader(strings.NewReader("providers:\n  sim:\n    type: sim\n"))
	require.NoError(t, err)
	def, err := cfg.BuildDefault()
	require.NoError(t, err)
	assert.Nil(t, def)
}
