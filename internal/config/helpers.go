package config

import (
	"mltrading-api/pkg/market"
)

// MustLoadMarket loads etc/market.yaml from the project root and panics on error.
// It lets jobs run when the main config has no Market section.
func MustLoadMarket() *market.Config {
	return market.MustLoad()
}

// MarketConfig returns the hydrated market section, falling back to the project default.
// The second value names where the configuration came from.
func (c *Config) MarketConfig() (*market.Config, string) {
	if c.Market.Value != nil {
		return c.Market.Value, c.Market.File
	}
	return MustLoadMarket(), "etc/market.yaml (default)"
}
