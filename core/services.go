package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// IRiskService validates proposed actions against prices, limits and margin
// rules before any balance mutation.
type IRiskService interface {
	// ValidateSnapshot runs the freshness checks against chain time.
	ValidateSnapshot(ctx context.Context, snapshot *PriceSnapshot, nowNanos uint64) error
	// AmountInOther converts an amount of one token into the equivalent
	// amount of another at the snapshot prices.
	AmountInOther(amount sdkmath.Int, from, to Price) sdkmath.Int
	// CheckSlippage rejects a proposed minimum output below the slippage
	// bound of the computed output.
	CheckSlippage(minAmountOut, computedAmountOut sdkmath.Int) error
	// CheckMarginPair validates debt/position party segregation and the
	// margin token choice.
	CheckMarginPair(debtToken, positionToken, marginToken string) error
	// AccountHealth values the account's collateral and debt in the common
	// unit, collateral discounted and debt inflated by each asset's
	// volatility ratio.
	AccountHealth(ctx context.Context, account *Account, assets map[string]*Asset, book *PriceBook) (collateral, debt sdkmath.Int, err error)
	// HasEnoughCollateral reports whether discounted collateral still
	// covers inflated debt plus the safety buffer.
	HasEnoughCollateral(ctx context.Context, account *Account, assets map[string]*Asset, book *PriceBook) (bool, error)
	// IsLiquidatable placeholder liquidation trigger.
	IsLiquidatable(ctx context.Context, account *Account, assets map[string]*Asset, book *PriceBook) (bool, error)
}

// RepayOutcome what a repayment settled to.
type RepayOutcome struct {
	// RepaidAmount amount actually burned against debt
	RepaidAmount sdkmath.Int
	// RepaidShares borrow-shares extinguished
	RepaidShares sdkmath.Int
	// ExcessAmount amount deposited into plain supply, non-zero only on
	// full repayment
	ExcessAmount sdkmath.Int
}

// IPositionService per-account ledger operations on top of the share pools.
// All operations assume the asset has been accrued to the current timestamp
// and mutate the in-memory records only; persistence is the executor's job.
type IPositionService interface {
	Deposit(ctx context.Context, account *Account, asset *Asset, amount sdkmath.Int) error
	Withdraw(ctx context.Context, account *Account, asset *Asset, amount sdkmath.Int) error
	IncreaseCollateral(ctx context.Context, account *Account, asset *Asset, posID string, amount sdkmath.Int) error
	DecreaseCollateral(ctx context.Context, account *Account, asset *Asset, posID string, amount sdkmath.Int) error
	Borrow(ctx context.Context, account *Account, asset *Asset, posID string, amount sdkmath.Int) error
	Repay(ctx context.Context, account *Account, asset *Asset, posID string, amount sdkmath.Int) (*RepayOutcome, error)

	OpenMargin(ctx context.Context, account *Account, debtAsset, positionAsset *Asset, action *MarginAction, positionAmount sdkmath.Int) error
	CloseMargin(ctx context.Context, account *Account, debtAsset, positionAsset *Asset, action *MarginAction, debtTokenIn sdkmath.Int) error
}
