package polygon

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/dnaeon/go-vcr/recorder"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// This test uses go-vcr to record/replay a real previous-close call.
// It skips by default if cassette is absent and RECORD_CASSETTES != 1.
func TestClient_PreviousClose_Recorded(t *testing.T) {
	cassette := filepath.Join("testdata", "cassettes", "polygon_prev")
	if _, err := os.Stat(cassette + ".yaml"); os.IsNotExist(err) {
		if os.Getenv("RECORD_CASSETTES") != "1" {
			t.Skipf("cassette missing; set RECORD_CASSETTES=1 to record: %s", cassette)
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(cassette), 0o755))
	}

	r, err := recorder.New(cassette)
	require.NoError(t, err)
	defer func() { _ = r.Stop() }()

	client := NewClient(WithHTTPClient(&http.Client{Transport: r}))
	bar, err := client.PreviousClose(context.Background(), "AAPL")
	require.NoError(t, err)
	require.NotNil(t, bar)
	assert.Greater(t, bar.Close, 0.0)
	assert.Greater(t, bar.Volume, int64(0))
}
