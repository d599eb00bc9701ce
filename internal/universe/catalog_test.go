package universe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	assert.Equal(t, 50, c.Len())

	s, ok := c.Lookup("aapl")
	require.True(t, ok)
	assert.Equal(t, Stock{Symbol: "AAPL", Name: "Apple Inc.", Sector: "Technology"}, s)

	assert.True(t, c.IsValid(" brk.b "))
	assert.False(t, c.IsValid("INVALID"))
	assert.False(t, c.IsValid(""))
}

func TestBySector(t *testing.T) {
	c := Default()
	energy := c.BySector("energy")
	require.Len(t, energy, 2)
	assert.Equal(t, "XOM", energy[0].Symbol)
	assert.Equal(t, "CVX", energy[1].Symbol)
	assert.Empty(t, c.BySector("Crypto"))
}

func TestSectorsSortedWithCounts(t *testing.T) {
	sectors := Default().Sectors()
	total := 0
	for i, s := range sectors {
		total += s.Count
		if i > 0 {
			assert.Less(t, sectors[i-1].Sector, s.Sector)
		}
	}
	assert.Equal(t, 50, total)
	assert.Equal(t, "Automotive", sectors[0].Sector)
	assert.Equal(t, 1, sectors[0].Count)
}

func TestNewCatalogNormalises(t *testing.T) {
	c := NewCatalog([]Stock{
		{Symbol: " abc ", Name: "ABC Corp", Sector: "Tech"},
		{Symbol: "ABC", Name: "Duplicate", Sector: "Tech"},
		{Symbol: "", Name: "Blank"},
	})
	require.Equal(t, 1, c.Len())
	s, ok := c.Lookup("Abc")
	require.True(t, ok)
	assert.Equal(t, "ABC Corp", s.Name)

	all := c.All()
	all[0].Name = "mutated"
	s, _ = c.Lookup("ABC")
	assert.Equal(t, "ABC Corp", s.Name)

	assets := c.Assets()
	require.Len(t, assets, 1)
	assert.Equal(t, "Tech", assets[0].Sector)
}
