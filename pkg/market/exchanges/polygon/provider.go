package polygon

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"mltrading-api/pkg/market"
)

const defaultProviderTimeout = 10 * time.Second

// Provider adapts the Polygon client to the market.Provider contract.
type Provider struct {
	client     *Client
	timeout    time.Duration
	now        func() time.Time
	providerID string
}

type providerConfig struct {
	timeout      time.Duration
	now          func() time.Time
	clientConfig []Option
}

// ProviderOption customises the Polygon provider.
type ProviderOption func(*providerConfig)

// WithTimeout overrides the per-call deadline, retries included.
func WithTimeout(timeout time.Duration) ProviderOption {
	return func(cfg *providerConfig) {
		if timeout > 0 {
			cfg.timeout = timeout
		}
	}
}

// WithClock replaces the wall clock used to compute history windows.
func WithClock(now func() time.Time) ProviderOption {
	return func(cfg *providerConfig) {
		if now != nil {
			cfg.now = now
		}
	}
}

// WithClientOptions passes options to the underlying client.
func WithClientOptions(options ...Option) ProviderOption {
	return func(cfg *providerConfig) {
		cfg.clientConfig = append(cfg.clientConfig, options...)
	}
}

// NewProvider constructs a Polygon market provider.
func NewProvider(opts ...ProviderOption) *Provider {
	cfg := &providerConfig{
		timeout: defaultProviderTimeout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return &Provider{
		client:     NewClient(cfg.clientConfig...),
		timeout:    cfg.timeout,
		now:        cfg.now,
		providerID: "polygon",
	}
}

func init() {
	market.RegisterProvider("polygon", func(name string, cfg *market.ProviderConfig) (market.Provider, error) {
		opts := []ProviderOption{}
		clientOptions := []Option{WithBaseURL(cfg.BaseURL), WithAPIKey(cfg.APIKey)}
		if cfg.Timeout > 0 {
			opts = append(opts, WithTimeout(cfg.Timeout))
		}
		if cfg.HTTPTimeout > 0 {
			clientOptions = append(clientOptions, WithHTTPClient(&http.Client{Timeout: cfg.HTTPTimeout}))
		}
		if cfg.MaxRetries > 0 {
			clientOptions = append(clientOptions, WithMaxRetries(cfg.MaxRetries))
		}
		opts = append(opts, WithClientOptions(clientOptions...))
		provider := NewProvider(opts...)
		if !provider.client.HasAPIKey() {
			return nil, errors.New("polygon: api key required (set api_key or " + APIKeyEnv + ")")
		}
		provider.providerID = name
		return provider, nil
	})
}

// Name returns the configured provider name.
func (p *Provider) Name() string {
	return p.providerID
}

// Latest implements market.Provider using the previous-close endpoint.
func (p *Provider) Latest(ctx context.Context, symbol string) (*market.Bar, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	return p.client.PreviousClose(ctx, normalizeSymbol(symbol))
}

// History implements market.Provider by requesting daily aggregates over the period window.
func (p *Provider) History(ctx context.Context, symbol string, period market.Period) ([]market.Bar, error) {
	ctx, cancel := p.withTimeout(ctx)
	defer cancel()
	to := market.Truncate(p.now(), p.client.location)
	from := to.AddDate(0, 0, -period.Days())
	return p.client.DailyAggregates(ctx, normalizeSymbol(symbol), from, to)
}

func (p *Provider) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, p.timeout)
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
