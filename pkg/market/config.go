package market

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"mltrading-api/pkg/confkit"
)

// Config names the market data providers available to the service and the one
// used by default.
type Config struct {
	Default   string                     `yaml:"default"`
	Providers map[string]*ProviderConfig `yaml:"providers"`
}

// ProviderConfig configures one provider entry. String fields accept ${VAR}
// placeholders; durations use Go syntax (e.g. 10s).
type ProviderConfig struct {
	Type    string
	BaseURL string
	APIKey  string
	Seed    int64
	// Timeout bounds one provider call including retries.
	Timeout time.Duration
	// HTTPTimeout bounds a single HTTP round trip.
	HTTPTimeout time.Duration
	MaxRetries  int
}

type providerConfigYAML struct {
	Type        string `yaml:"type"`
	BaseURL     string `yaml:"base_url"`
	APIKey      string `yaml:"api_key"`
	Seed        int64  `yaml:"seed"`
	Timeout     string `yaml:"timeout"`
	HTTPTimeout string `yaml:"http_timeout"`
	MaxRetries  int    `yaml:"max_retries"`
}

// UnmarshalYAML expands env placeholders and parses durations.
func (p *ProviderConfig) UnmarshalYAML(node *yaml.Node) error {
	var raw providerConfigYAML
	if err := node.Decode(&raw); err != nil {
		return err
	}
	timeout, err := envDuration(raw.Timeout)
	if err != nil {
		return fmt.Errorf("line %d: invalid timeout: %w", node.Line, err)
	}
	httpTimeout, err := envDuration(raw.HTTPTimeout)
	if err != nil {
		return fmt.Errorf("line %d: invalid http_timeout: %w", node.Line, err)
	}
	*p = ProviderConfig{
		Type:        envString(raw.Type),
		BaseURL:     envString(raw.BaseURL),
		APIKey:      envString(raw.APIKey),
		Seed:        raw.Seed,
		Timeout:     timeout,
		HTTPTimeout: httpTimeout,
		MaxRetries:  raw.MaxRetries,
	}
	return nil
}

func envString(v string) string {
	return strings.TrimSpace(os.ExpandEnv(v))
}

func envDuration(v string) (time.Duration, error) {
	v = envString(v)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", v, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%q must be positive", v)
	}
	return d, nil
}

// ProviderBuilder constructs a Provider from its configuration entry.
type ProviderBuilder func(name string, cfg *ProviderConfig) (Provider, error)

var (
	buildersMu sync.RWMutex
	builders   = map[string]ProviderBuilder{}
)

// RegisterProvider makes a provider type available to configuration. Provider
// packages call it from init.
func RegisterProvider(typeName string, builder ProviderBuilder) {
	buildersMu.Lock()
	defer buildersMu.Unlock()
	builders[strings.ToLower(strings.TrimSpace(typeName))] = builder
}

func builderFor(typeName string) (ProviderBuilder, bool) {
	buildersMu.RLock()
	defer buildersMu.RUnlock()
	b, ok := builders[strings.ToLower(strings.TrimSpace(typeName))]
	return b, ok
}

// LoadConfig reads a market config file.
func LoadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open market config: %w", err)
	}
	defer f.Close()
	return LoadConfigFromReader(f)
}

// MustLoad reads etc/market.yaml under the project root and panics on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(confkit.MustProjectPath("etc/market.yaml"))
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfigFromReader decodes and validates a market config.
func LoadConfigFromReader(r io.Reader) (*Config, error) {
	confkit.LoadDotenvOnce()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read market config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal market config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks every entry names a registered type and that the default exists.
func (c *Config) Validate() error {
	if len(c.Providers) == 0 {
		return errors.New("market config: providers cannot be empty")
	}
	if c.Default != "" {
		if _, ok := c.Providers[c.Default]; !ok {
			return fmt.Errorf("market config: default provider %q not defined", c.Default)
		}
	}
	for name, p := range c.Providers {
		switch {
		case strings.TrimSpace(name) == "":
			return errors.New("market config: provider name cannot be empty")
		case p == nil || p.Type == "":
			return fmt.Errorf("market config: provider %s must specify type", name)
		case p.MaxRetries < 0:
			return fmt.Errorf("market config: provider %s max_retries cannot be negative", name)
		}
		if _, ok := builderFor(p.Type); !ok {
			return fmt.Errorf("market config: provider %s has unsupported type %q", name, p.Type)
		}
	}
	return nil
}

// Build instantiates the provider entry called name. Entries are built on
// demand, so an unused entry with missing credentials does not block others.
func (c *Config) Build(name string) (Provider, error) {
	p, ok := c.Providers[name]
	if !ok || p == nil {
		return nil, fmt.Errorf("market provider %q not defined", name)
	}
	builder, ok := builderFor(p.Type)
	if !ok {
		return nil, fmt.Errorf("market provider %s: unsupported type %q", name, p.Type)
	}
	provider, err := builder(name, p)
	if err != nil {
		return nil, fmt.Errorf("market provider %s: %w", name, err)
	}
	return provider, nil
}

// BuildDefault builds the provider named by Default, or returns nil when none is set.
func (c *Config) BuildDefault() (Provider, error) {
	if c.Default == "" {
		return nil, nil
	}
	return c.Build(c.Default)
}
