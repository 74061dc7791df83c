package views

import (
	"github.com/shopspring/decimal"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/internal/burrow"
)

// Asset asset view
type Asset struct {
	core.Asset
	Available        string          `json:"available"`
	UtilizationRate  decimal.Decimal `json:"utilization_rate"`
	BorrowRatePerSec decimal.Decimal `json:"borrow_rate_per_sec"`
	SupplyRatePerSec decimal.Decimal `json:"supply_rate_per_sec"`
}

// NewAsset build the asset view with the derived rates
func NewAsset(asset *core.Asset) *Asset {
	cfg := asset.Config
	utilization := burrow.UtilizationRate(asset.Supplied.Balance, asset.Borrowed.Balance)

	return &Asset{
		Asset:            *asset,
		Available:        asset.AvailableAmount().String(),
		UtilizationRate:  utilization,
		BorrowRatePerSec: burrow.GetBorrowRatePerSecond(utilization, cfg.BaseRate, cfg.Multiplier, cfg.JumpMultiplier, cfg.Kink),
		SupplyRatePerSec: burrow.GetSupplyRatePerSecond(utilization, cfg.BaseRate, cfg.Multiplier, cfg.JumpMultiplier, cfg.Kink, cfg.ReserveFactor),
	}
}
