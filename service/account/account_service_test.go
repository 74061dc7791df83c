package account

import (
	"context"
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burrowHQ/burrowland-sub002/core"
)

func newService() core.IPositionService {
	return New(core.RiskConfig{MaxNumAssets: 4})
}

func newAssetX() *core.Asset {
	limit := sdkmath.NewInt(1200)
	asset := core.NewAsset("X", core.AssetConfig{
		CanDeposit:         true,
		CanWithdraw:        true,
		CanUseAsCollateral: true,
		CanBorrow:          true,
		SuppliedLimit:      &limit,
	})
	asset.Supplied = core.Pool{Balance: sdkmath.NewInt(1000), Shares: sdkmath.NewInt(1000)}
	asset.Borrowed = core.Pool{Balance: sdkmath.NewInt(500), Shares: sdkmath.NewInt(500)}
	return asset
}

func TestIncreaseCollateralSupplyLimit(t *testing.T) {
	s := newService()
	ctx := context.Background()

	asset := newAssetX()
	acct := core.NewAccount("alice")

	// 1000 + 150 <= 1200
	require.NoError(t, s.IncreaseCollateral(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(150)))
	assert.Equal(t, "1150", asset.Supplied.Balance.String())
	assert.Equal(t, "1150", asset.Supplied.Shares.String(), "1:1 rate mints 150 shares")
	assert.Equal(t, "150", acct.Positions[core.PosIDRegular].Collateral["X"].String())

	// 1150 + 100 > 1200
	err := s.IncreaseCollateral(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(100))
	assert.Equal(t, core.ErrSupplyLimitExceeded, err)
	assert.Equal(t, "1150", asset.Supplied.Balance.String(), "no partial application")
}

func TestIncreaseCollateralLockedAccount(t *testing.T) {
	s := newService()
	ctx := context.Background()

	acct := core.NewAccount("alice")
	acct.IsLocked = true

	for _, amount := range []int64{1, 150, 1 << 40} {
		err := s.IncreaseCollateral(ctx, acct, newAssetX(), core.PosIDRegular, sdkmath.NewInt(amount))
		assert.Equal(t, core.ErrAccountLocked, err)
	}
}

func TestIncreaseCollateralFlagDisabled(t *testing.T) {
	s := newService()

	asset := newAssetX()
	asset.Config.CanUseAsCollateral = false

	err := s.IncreaseCollateral(context.Background(), core.NewAccount("alice"), asset, core.PosIDRegular, sdkmath.NewInt(10))
	assert.Equal(t, core.ErrNotCollateralizable, err)
}

func TestRepayFull(t *testing.T) {
	s := newService()
	ctx := context.Background()

	asset := newAssetX()
	acct := core.NewAccount("alice")
	pos := acct.Position(core.PosIDRegular, true)
	pos.Borrowed["X"] = sdkmath.NewInt(250)

	outcome, err := s.Repay(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(250))
	require.NoError(t, err)

	assert.Equal(t, "250", outcome.RepaidAmount.String())
	assert.Equal(t, "250", outcome.RepaidShares.String())
	assert.True(t, outcome.ExcessAmount.IsZero())

	_, ok := pos.Borrowed["X"]
	assert.False(t, ok, "full repayment removes the debt entry")
	assert.Equal(t, "250", asset.Borrowed.Balance.String())
}

func TestRepayWithExcess(t *testing.T) {
	s := newService()
	ctx := context.Background()

	// position owes exactly 250 of Y, repay 300
	asset := newAssetX()
	asset.TokenID = "Y"
	acct := core.NewAccount("alice")
	pos := acct.Position(core.PosIDRegular, true)
	pos.Borrowed["Y"] = sdkmath.NewInt(250)

	outcome, err := s.Repay(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(300))
	require.NoError(t, err)

	assert.Equal(t, "250", outcome.RepaidAmount.String())
	assert.Equal(t, "50", outcome.ExcessAmount.String())

	_, ok := pos.Borrowed["Y"]
	assert.False(t, ok)
	assert.Equal(t, "50", acct.SuppliedShares("Y").String(), "excess lands in plain supply, not collateral")
	assert.True(t, positionShares(pos.Collateral, "Y").IsZero())
}

func TestRepayPartial(t *testing.T) {
	s := newService()
	ctx := context.Background()

	asset := newAssetX()
	// 2 units of debt per share
	asset.Borrowed = core.Pool{Balance: sdkmath.NewInt(1000), Shares: sdkmath.NewInt(500)}

	acct := core.NewAccount("alice")
	pos := acct.Position(core.PosIDRegular, true)
	pos.Borrowed["X"] = sdkmath.NewInt(100) // owes 200

	outcome, err := s.Repay(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(50))
	require.NoError(t, err)

	assert.Equal(t, "50", outcome.RepaidAmount.String())
	assert.Equal(t, "25", outcome.RepaidShares.String())
	assert.True(t, outcome.ExcessAmount.IsZero())
	assert.Equal(t, "75", pos.Borrowed["X"].String())
}

func TestRepayNoDebt(t *testing.T) {
	s := newService()
	ctx := context.Background()

	acct := core.NewAccount("alice")
	acct.Position(core.PosIDRegular, true)

	_, err := s.Repay(ctx, acct, newAssetX(), core.PosIDRegular, sdkmath.NewInt(10))
	assert.Equal(t, core.ErrDebtNotFound, err)
}

func TestBorrowLimits(t *testing.T) {
	s := newService()
	ctx := context.Background()

	asset := newAssetX()
	minBorrow := sdkmath.NewInt(10)
	borrowLimit := sdkmath.NewInt(600)
	asset.Config.MinBorrowedAmount = &minBorrow
	asset.Config.BorrowedLimit = &borrowLimit

	acct := core.NewAccount("alice")

	assert.Equal(t, core.ErrMinBorrowedAmount, s.Borrow(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(5)))
	assert.Equal(t, core.ErrBorrowLimitExceeded, s.Borrow(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(200)))

	require.NoError(t, s.Borrow(ctx, acct, asset, core.PosIDRegular, sdkmath.NewInt(100)))
	assert.Equal(t, "600", asset.Borrowed.Balance.String())
	assert.Equal(t, "100", acct.Positions[core.PosIDRegular].Borrowed["X"].String())
	assert.Equal(t, "100", acct.SuppliedShares("X").String(), "proceeds credited to plain supply")
}

func TestWithdraw(t *testing.T) {
	s := newService()
	ctx := context.Background()

	asset := newAssetX()
	acct := core.NewAccount("alice")
	acct.DepositSupplied("X", sdkmath.NewInt(400))

	require.NoError(t, s.Withdraw(ctx, acct, asset, sdkmath.NewInt(300)))
	assert.Equal(t, "100", acct.SuppliedShares("X").String())
	assert.Equal(t, "700", asset.Supplied.Balance.String())

	// only 500 liquidity remains (borrowed 500 of 700 supplied)
	err := s.Withdraw(ctx, acct, asset, sdkmath.NewInt(201))
	assert.Equal(t, core.ErrInsufficientBalance, err)
}

func TestTooManyAssets(t *testing.T) {
	s := New(core.RiskConfig{MaxNumAssets: 1})
	ctx := context.Background()

	acct := core.NewAccount("alice")
	require.NoError(t, s.Deposit(ctx, acct, newAssetX(), sdkmath.NewInt(10)))

	other := newAssetX()
	other.TokenID = "Y"
	assert.Equal(t, core.ErrTooManyAssets, s.Deposit(ctx, acct, other, sdkmath.NewInt(10)))
}
