package polygon

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mltrading-api/pkg/market"
)

var utc = time.UTC

func msAt(y int, m time.Month, d int) int64 {
	return time.Date(y, m, d, 0, 0, 0, 0, utc).UnixMilli()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(
		WithBaseURL(server.URL),
		WithAPIKey("test-key"),
		WithRetryBackoff(time.Millisecond),
		WithLocation(utc),
	)
	return server, client
}

func TestClientPreviousClose(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/aggs/ticker/AAPL/prev", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "true", r.URL.Query().Get("adjusted"))
		fmt.Fprintf(w, `{"ticker":"AAPL","status":"OK","resultsCount":1,"results":[{"T":"AAPL","t":%d,"o":189.123,"h":191.5,"l":188.01,"c":190.987,"v":51234567.0}]}`,
			msAt(2024, 3, 8))
	})

	bar, err := client.PreviousClose(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, bar)
	assert.Equal(t, "2024-03-08", bar.Day())
	assert.InDelta(t, 189.123, bar.Open, 1e-9)
	assert.InDelta(t, 190.987, bar.Close, 1e-9)
	assert.Equal(t, int64(51234567), bar.Volume)
}

func TestClientPreviousCloseNoResults(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"ticker":"ZZZZ","status":"OK","resultsCount":0}`)
	})
	_, err := client.PreviousClose(context.Background(), "ZZZZ")
	require.ErrorIs(t, err, market.ErrNoData)
}

func TestClientStatusMapping(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		noData  bool
		message string
	}{
		{name: "not found status", status: 200, body: `{"status":"NOT_FOUND","message":"Data not found."}`, noData: true},
		{name: "http 404", status: 404, body: `{"status":"NOT_FOUND","message":"nothing"}`, noData: true},
		{name: "error status", status: 200, body: `{"status":"ERROR","error":"Unknown API Key"}`, message: "Unknown API Key"},
		{name: "unauthorized", status: 401, body: `{"status":"NOT_AUTHORIZED","message":"upgrade your plan"}`, message: "upgrade your plan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			})
			_, err := client.PreviousClose(context.Background(), "AAPL")
			require.Error(t, err)
			assert.Equal(t, int32(1), atomic.LoadInt32(&calls), "client errors must not be retried")
			if tt.noData {
				assert.ErrorIs(t, err, market.ErrNoData)
				return
			}
			var apiErr *APIError
			require.True(t, errors.As(err, &apiErr))
			assert.Contains(t, apiErr.Error(), tt.message)
		})
	}
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls int32
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprintf(w, `{"status":"OK","resultsCount":1,"results":[{"t":%d,"o":1,"h":2,"l":0.5,"c":1.5,"v":10}]}`, msAt(2024, 3, 8))
	})
	bar, err := client.PreviousClose(context.Background(), "MSFT")
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
	assert.InDelta(t, 1.5, bar.Close, 1e-9)
}

func TestClientRateLimitExhausted(t *testing.T) {
	var calls int32
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})
	client.maxRetries = 1
	_, err := client.PreviousClose(context.Background(), "MSFT")
	require.ErrorIs(t, err, market.ErrRateLimited)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestClientDailyAggregatesNewestFirst(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/aggs/ticker/AAPL/range/1/day/2024-02-07/2024-03-08", r.URL.Path)
		assert.Equal(t, "desc", r.URL.Query().Get("sort"))
		// Deliberately out of order; the client sorts defensively.
		fmt.Fprintf(w, `{"status":"OK","resultsCount":3,"results":[
			{"t":%d,"o":1,"h":1,"l":1,"c":1,"v":1},
			{"t":%d,"o":3,"h":3,"l":3,"c":3,"v":3},
			{"t":%d,"o":2,"h":2,"l":2,"c":2,"v":2}]}`,
			msAt(2024, 3, 6), msAt(2024, 3, 8), msAt(2024, 3, 7))
	})
	from := time.Date(2024, 2, 7, 0, 0, 0, 0, utc)
	to := time.Date(2024, 3, 8, 0, 0, 0, 0, utc)
	bars, err := client.DailyAggregates(context.Background(), "AAPL", from, to)
	require.NoError(t, err)
	require.Len(t, bars, 3)
	assert.Equal(t, "2024-03-08", bars[0].Day())
	assert.Equal(t, "2024-03-07", bars[1].Day())
	assert.Equal(t, "2024-03-06", bars[2].Day())
}

func TestClientDailyAggregatesEmpty(t *testing.T) {
	_, client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"OK","resultsCount":0,"results":[]}`)
	})
	_, err := client.DailyAggregates(context.Background(), "AAPL", time.Now(), time.Now())
	require.ErrorIs(t, err, market.ErrNoData)
	assert.True(t, strings.Contains(err.Error(), "period"))
}

func TestProviderHistoryWindow(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/aggs/ticker/BRK.B/range/1/day/2024-03-01/2024-03-08", r.URL.Path)
		fmt.Fprintf(w, `{"status":"OK","resultsCount":1,"results":[{"t":%d,"o":1,"h":1,"l":1,"c":1,"v":1}]}`, msAt(2024, 3, 8))
	}))
	defer server.Close()

	now := time.Date(2024, 3, 8, 15, 0, 0, 0, utc)
	provider := NewProvider(
		WithClock(func() time.Time { return now }),
		WithClientOptions(WithBaseURL(server.URL), WithAPIKey("k"), WithLocation(utc)),
	)
	bars, err := provider.History(context.Background(), "brk.b", market.Period1W)
	require.NoError(t, err)
	require.Len(t, bars, 1)
}

func TestProviderTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	provider := NewProvider(
		WithTimeout(50*time.Millisecond),
		WithClientOptions(WithBaseURL(server.URL), WithAPIKey("k"), WithMaxRetries(0)),
	)
	start := time.Now()
	_, err := provider.Latest(context.Background(), "AAPL")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRegisteredBuilderRequiresAPIKey(t *testing.T) {
	t.Setenv(APIKeyEnv, "")
	cfg := &market.Config{Providers: map[string]*market.ProviderConfig{"pg": {Type: "polygon"}}}
	_, err := cfg.Build("pg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api key required")
}
