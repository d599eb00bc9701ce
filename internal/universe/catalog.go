package universe

import (
	"sort"
	"strings"

	"mltrading-api/pkg/market"
)

// Stock is one entry in the served universe.
type Stock struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`
}

// SectorCount summarises how many stocks belong to a sector.
type SectorCount struct {
	Sector string `json:"sector"`
	Count  int    `json:"count"`
}

// Catalog is an immutable, case-insensitive symbol allow-list. Safe for concurrent use.
type Catalog struct {
	stocks   []Stock
	bySymbol map[string]Stock
}

var defaultCatalog = NewCatalog(defaultStocks)

// Default returns the built-in universe.
func Default() *Catalog {
	return defaultCatalog
}

// NewCatalog builds a catalog; symbols are upper-cased and later duplicates are ignored.
func NewCatalog(stocks []Stock) *Catalog {
	c := &Catalog{
		stocks:   make([]Stock, 0, len(stocks)),
		bySymbol: make(map[string]Stock, len(stocks)),
	}
	for _, s := range stocks {
		s.Symbol = Normalize(s.Symbol)
		if s.Symbol == "" {
			continue
		}
		if _, dup := c.bySymbol[s.Symbol]; dup {
			continue
		}
		c.bySymbol[s.Symbol] = s
		c.stocks = append(c.stocks, s)
	}
	return c
}

// Normalize upper-cases and trims a ticker.
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// Lookup returns the stock for symbol, matching case-insensitively.
func (c *Catalog) Lookup(symbol string) (Stock, bool) {
	s, ok := c.bySymbol[Normalize(symbol)]
	return s, ok
}

// IsValid reports whether symbol belongs to the universe.
func (c *Catalog) IsValid(symbol string) bool {
	_, ok := c.Lookup(symbol)
	return ok
}

// All returns a copy of every stock in declaration order.
func (c *Catalog) All() []Stock {
	out := make([]Stock, len(c.stocks))
	copy(out, c.stocks)
	return out
}

// Len returns the number of stocks.
func (c *Catalog) Len() int {
	return len(c.stocks)
}

// BySector returns stocks whose sector matches case-insensitively.
func (c *Catalog) BySector(sector string) []Stock {
	sector = strings.TrimSpace(sector)
	var out []Stock
	for _, s := range c.stocks {
		if strings.EqualFold(s.Sector, sector) {
			out = append(out, s)
		}
	}
	return out
}

// Sectors returns the distinct sectors sorted alphabetically with their sizes.
func (c *Catalog) Sectors() []SectorCount {
	counts := make(map[string]int)
	for _, s := range c.stocks {
		counts[s.Sector]++
	}
	out := make([]SectorCount, 0, len(counts))
	for sector, n := range counts {
		out = append(out, SectorCount{Sector: sector, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Sector < out[j].Sector })
	return out
}

// Assets converts the catalog into market assets for persistence.
func (c *Catalog) Assets() []market.Asset {
	out := make([]market.Asset, 0, len(c.stocks))
	for _, s := range c.stocks {
		out = append(out, market.Asset{Symbol: s.Symbol, Name: s.Name, Sector: s.Sector})
	}
	return out
}
