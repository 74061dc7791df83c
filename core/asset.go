package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// AssetConfig per-asset capability flags, limits and rate parameters.
type AssetConfig struct {
	CanDeposit         bool `json:"can_deposit"`
	CanWithdraw        bool `json:"can_withdraw"`
	CanUseAsCollateral bool `json:"can_use_as_collateral"`
	CanBorrow          bool `json:"can_borrow"`

	// optional limits; nil means unlimited
	SuppliedLimit     *sdkmath.Int `json:"supplied_limit,omitempty"`
	BorrowedLimit     *sdkmath.Int `json:"borrowed_limit,omitempty"`
	MinBorrowedAmount *sdkmath.Int `json:"min_borrowed_amount,omitempty"`

	// 波动率因子, 抵押品价值按此折扣, 债务价值按此放大 [0, 10000] bps
	VolatilityRatio uint64 `json:"volatility_ratio"`

	// interest curve, per year
	BaseRate       decimal.Decimal `json:"base_rate"`
	Multiplier     decimal.Decimal `json:"multiplier"`
	JumpMultiplier decimal.Decimal `json:"jump_multiplier"`
	Kink           decimal.Decimal `json:"kink"`
	// 平台保留金率 (0, 1)
	ReserveFactor decimal.Decimal `json:"reserve_factor"`
}

// Asset one record per token.
type Asset struct {
	TokenID  string `json:"token_id"`
	Supplied Pool   `json:"supplied"`
	Borrowed Pool   `json:"borrowed"`

	MarginDebt        Pool        `json:"margin_debt"`
	MarginPendingDebt sdkmath.Int `json:"margin_pending_debt"`
	MarginPosition    sdkmath.Int `json:"margin_position"`

	Reserved sdkmath.Int `json:"reserved"`
	ProtFee  sdkmath.Int `json:"prot_fee"`

	// UnitAccHpInterest unit accumulated holding-position interest,
	// scaled by UnitHpDenominator, monotonically increasing
	UnitAccHpInterest sdkmath.Int `json:"unit_acc_hp_interest"`

	// nanoseconds
	LastUpdateTimestamp uint64 `json:"last_update_timestamp"`

	Config AssetConfig `json:"config"`
}

// NewAsset new empty asset for the token
func NewAsset(tokenID string, cfg AssetConfig) *Asset {
	return &Asset{
		TokenID:           tokenID,
		Supplied:          NewPool(),
		Borrowed:          NewPool(),
		MarginDebt:        NewPool(),
		MarginPendingDebt: sdkmath.ZeroInt(),
		MarginPosition:    sdkmath.ZeroInt(),
		Reserved:          sdkmath.ZeroInt(),
		ProtFee:           sdkmath.ZeroInt(),
		UnitAccHpInterest: sdkmath.ZeroInt(),
		Config:            cfg,
	}
}

// AvailableAmount liquidity not lent out. Margin debt funds the dex leg and
// leaves custody, so it reduces what suppliers can withdraw just like a
// regular borrow; pending debt is reserved the moment it is booked.
func (a *Asset) AvailableAmount() sdkmath.Int {
	out := a.Supplied.Balance.
		Sub(a.Borrowed.Balance).
		Sub(a.MarginDebt.Balance).
		Sub(a.MarginPendingDebt)
	if out.IsNegative() {
		return sdkmath.ZeroInt()
	}
	return out
}

// IAssetStore asset store interface
type IAssetStore interface {
	Save(ctx context.Context, tx *db.DB, asset *Asset) error
	Find(ctx context.Context, tokenID string) (*Asset, error)
	All(ctx context.Context) ([]*Asset, error)
	AllAsMap(ctx context.Context) (map[string]*Asset, error)
}

// IInterestService advances an asset's pool balances and UAHPI index to the
// given chain time before the asset is read for a mutating action. Accrual is
// monotonic non-negative and idempotent when called twice at one timestamp.
type IInterestService interface {
	Accrue(ctx context.Context, asset *Asset, nowNanos uint64) error
}
