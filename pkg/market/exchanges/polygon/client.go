package polygon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/zeromicro/go-zero/core/logx"

	"mltrading-api/pkg/market"
)

const (
	defaultBaseURL          = "https://api.polygon.io"
	defaultHTTPTimeout      = 10 * time.Second
	defaultMaxRetries       = 2
	defaultRetryBackoffBase = 250 * time.Millisecond

	// APIKeyEnv is consulted when no key is configured explicitly.
	APIKeyEnv = "POLYGON_API_KEY"
)

// Client wraps the Polygon.io aggregates endpoints.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	location   *time.Location
}

// Option configures a new Client.
type Option func(*Client)

// WithHTTPClient injects a custom http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithBaseURL overrides the default API host.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithAPIKey sets the API key sent as the apiKey query parameter.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		if key != "" {
			c.apiKey = key
		}
	}
}

// WithMaxRetries adjusts the retry budget.
func WithMaxRetries(max int) Option {
	return func(c *Client) {
		if max >= 0 {
			c.maxRetries = max
		}
	}
}

// WithRetryBackoff sets the initial backoff between attempts.
func WithRetryBackoff(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.backoff = d
		}
	}
}

// WithLocation sets the exchange time zone used to derive bar dates.
func WithLocation(loc *time.Location) Option {
	return func(c *Client) {
		if loc != nil {
			c.location = loc
		}
	}
}

// NewClient constructs a Polygon API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:    defaultBaseURL,
		apiKey:     os.Getenv(APIKeyEnv),
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		maxRetries: defaultMaxRetries,
		backoff:    defaultRetryBackoffBase,
		location:   exchangeLocation(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// HasAPIKey reports whether requests will be authenticated.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

// PreviousClose returns the bar for the most recent completed trading day.
func (c *Client) PreviousClose(ctx context.Context, symbol string) (*market.Bar, error) {
	path := fmt.Sprintf("/v2/aggs/ticker/%s/prev", url.PathEscape(symbol))
	query := url.Values{"adjusted": {"true"}}

	var resp AggsResponse
	if err := c.doRequest(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(symbol, &resp); err != nil {
		return nil, err
	}
	if len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: invalid symbol or no data available for %s", market.ErrNoData, symbol)
	}
	bar := resp.Results[0].toBar(c.location)
	return &bar, nil
}

// DailyAggregates returns daily bars between from and to (inclusive), newest first.
func (c *Client) DailyAggregates(ctx context.Context, symbol string, from, to time.Time) ([]market.Bar, error) {
	path := fmt.Sprintf("/v2/aggs/ticker/%s/range/1/day/%s/%s",
		url.PathEscape(symbol), from.Format(market.DateLayout), to.Format(market.DateLayout))
	query := url.Values{
		"adjusted": {"true"},
		"sort":     {"desc"},
		"limit":    {"50000"},
	}

	var resp AggsResponse
	if err := c.doRequest(ctx, path, query, &resp); err != nil {
		return nil, err
	}
	if err := checkStatus(symbol, &resp); err != nil {
		return nil, err
	}
	if resp.ResultsCount == 0 || len(resp.Results) == 0 {
		return nil, fmt.Errorf("%w: no data available for %s in this period", market.ErrNoData, symbol)
	}

	bars := make([]market.Bar, 0, len(resp.Results))
	for _, agg := range resp.Results {
		bars = append(bars, agg.toBar(c.location))
	}
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Date.After(bars[j].Date)
	})
	return bars, nil
}

func checkStatus(symbol string, resp *AggsResponse) error {
	switch strings.ToUpper(resp.Status) {
	case "", "OK", "DELAYED":
		return nil
	case "NOT_FOUND":
		return fmt.Errorf("%w: invalid symbol or no data available for %s", market.ErrNoData, symbol)
	default:
		return &APIError{Status: resp.Status, Message: resp.detail()}
	}
}

// doRequest issues a GET and decodes the JSON body into result, retrying transport errors, 429 and 5xx.
func (c *Client) doRequest(ctx context.Context, path string, query url.Values, result *AggsResponse) error {
	if query == nil {
		query = url.Values{}
	}
	if c.apiKey != "" {
		query.Set("apiKey", c.apiKey)
	}
	endpoint := c.baseURL + path + "?" + query.Encode()

	var lastErr error
	backoff := c.backoff
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return fmt.Errorf("polygon: build request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")

		retryable, err := c.roundTrip(httpReq, result)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !retryable {
			return err
		}
		lastErr = err

		if attempt < c.maxRetries {
			logx.WithContext(ctx).Infof("polygon: retrying %s attempt=%d err=%v", path, attempt+1, err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
				backoff *= 2
			}
		}
	}
	if lastErr != nil {
		return lastErr
	}
	return errors.New("polygon: request failed without error detail")
}

func (c *Client) roundTrip(req *http.Request, result *AggsResponse) (bool, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return true, fmt.Errorf("polygon: request: %w", err)
	}
	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return true, fmt.Errorf("polygon: read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return true, fmt.Errorf("%w: http 429", market.ErrRateLimited)
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("polygon: http status %d: %s", resp.StatusCode, truncate(body))
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		var envelope AggsResponse
		_ = json.Unmarshal(body, &envelope)
		if resp.StatusCode == http.StatusNotFound || strings.EqualFold(envelope.Status, "NOT_FOUND") {
			return false, fmt.Errorf("%w: %s", market.ErrNoData, envelope.detail())
		}
		status := envelope.Status
		if status == "" {
			status = http.StatusText(resp.StatusCode)
		}
		return false, &APIError{StatusCode: resp.StatusCode, Status: status, Message: envelope.detail()}
	}

	if err := json.Unmarshal(body, result); err != nil {
		return false, fmt.Errorf("polygon: decode response: %w", err)
	}
	return false, nil
}

func truncate(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}

func exchangeLocation() *time.Location {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}
