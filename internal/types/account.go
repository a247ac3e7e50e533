package types

// AssetType separates stock and option capital for caps and counts.
type AssetType string

const (
	AssetTypeStock  AssetType = "STOCK"
	AssetTypeOption AssetType = "OPTION"
)

// AccountSnapshot is the brokerage account state refreshed once per cycle.
// The engine reads it and never mutates it.
type AccountSnapshot struct {
	// PortfolioValue is the total account value including open positions
	PortfolioValue float64 `yaml:"portfolio_value" json:"portfolio_value" validate:"gte=0"`
	// Cash is the uninvested cash balance
	Cash float64 `yaml:"cash" json:"cash"`
	// BuyingPower is the amount available for new purchases
	BuyingPower float64 `yaml:"buying_power" json:"buying_power" validate:"gte=0"`
	// Equity is the account equity reported by the broker
	Equity float64 `yaml:"equity" json:"equity"`
	// LastEquity is the equity at the previous session close
	LastEquity float64 `yaml:"last_equity" json:"last_equity"`
	// LongMarketValue is the market value of all long stock positions
	LongMarketValue float64 `yaml:"long_market_value" json:"long_market_value"`
	// DaytradeCount is the rolling pattern day trade count
	DaytradeCount int `yaml:"daytrade_count" json:"daytrade_count"`
}

// Position is an open holding reported by the broker.
type Position struct {
	Symbol         string    `yaml:"symbol" json:"symbol" validate:"required"`
	AssetType      AssetType `yaml:"asset_type" json:"asset_type" validate:"required,oneof=STOCK OPTION"`
	Quantity       float64   `yaml:"quantity" json:"quantity"`
	AvgEntryPrice  float64   `yaml:"avg_entry_price" json:"avg_entry_price" validate:"gte=0"`
	CurrentPrice   float64   `yaml:"current_price" json:"current_price" validate:"gte=0"`
	MarketValue    float64   `yaml:"market_value" json:"market_value"`
	UnrealizedPLPC float64   `yaml:"unrealized_plpc" json:"unrealized_plpc"`
	// Sector is empty when the broker does not classify the holding
	Sector string `yaml:"sector" json:"sector"`
}

// PositionCounts are the open position counters checked against the configured maxima.
type PositionCounts struct {
	Total   int `yaml:"total" json:"total"`
	Stocks  int `yaml:"stocks" json:"stocks"`
	Options int `yaml:"options" json:"options"`
}

// Add returns the counts after opening one more position of the given asset type.
func (c PositionCounts) Add(assetType AssetType) PositionCounts {
	c.Total++

	if assetType == AssetTypeOption {
		c.Options++
	} else {
		c.Stocks++
	}

	return c
}

// CountPositions recomputes the counters from the open positions.
func CountPositions(positions []Position) PositionCounts {
	counts := PositionCounts{Total: 0, Stocks: 0, Options: 0}
	for _, p := range positions {
		counts = counts.Add(p.AssetType)
	}

	return counts
}

// SectorExposure sums market value per sector. Unclassified holdings are skipped.
func SectorExposure(positions []Position) map[string]float64 {
	exposure := make(map[string]float64)

	for _, p := range positions {
		if p.Sector == "" {
			continue
		}

		exposure[p.Sector] += p.MarketValue
	}

	return exposure
}

// InvestedIn sums market value held in one asset type.
func InvestedIn(positions []Position, assetType AssetType) float64 {
	var total float64

	for _, p := range positions {
		if p.AssetType == assetType {
			total += p.MarketValue
		}
	}

	return total
}

// HasPosition reports whether any open position is in symbol.
func HasPosition(positions []Position, symbol string) bool {
	for _, p := range positions {
		if p.Symbol == symbol {
			return true
		}
	}

	return false
}
