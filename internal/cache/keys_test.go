package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"mltrading-api/internal/config"
)

func TestKeyFormats(t *testing.T) {
	assert.Equal(t, "price:current:AAPL", PriceCurrentKey("AAPL"))
	assert.Equal(t, "history:AAPL:1mo", HistoryKey("AAPL", "1mo"))
	assert.Equal(t, "history:BRK.B:10y", HistoryKey("BRK.B", "10y"))
}

func TestSymbolKeys(t *testing.T) {
	keys := SymbolKeys("MSFT")
	assert.Len(t, keys, 9)
	assert.Equal(t, "price:current:MSFT", keys[0])
	assert.Contains(t, keys, "history:MSFT:1d")
	assert.Contains(t, keys, "history:MSFT:5y")
}

func TestNewTTLSet(t *testing.T) {
	ttl := NewTTLSet(config.CacheTTL{Current: 300, History: 3600})
	assert.Equal(t, 300*time.Second, ttl.Duration(TTLCurrent))
	assert.Equal(t, time.Hour, ttl.Duration(TTLHistory))
	assert.Zero(t, ttl.Duration("other"))

	defaults := DefaultTTLSet()
	assert.Equal(t, ttl, defaults)

	disabled := NewTTLSet(config.CacheTTL{Current: -1, History: 10})
	assert.Zero(t, disabled.Current)
	assert.Equal(t, 10*time.Second, disabled.History)
}
