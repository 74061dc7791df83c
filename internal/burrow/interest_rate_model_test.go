package burrow

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/burrowHQ/burrowland-sub002/core"
)

func newTestAsset() *core.Asset {
	asset := core.NewAsset("btc", core.AssetConfig{
		BaseRate:       decimal.NewFromFloat(0.02),
		Multiplier:     decimal.NewFromFloat(0.2),
		JumpMultiplier: decimal.NewFromFloat(1.0),
		Kink:           decimal.NewFromFloat(0.8),
		ReserveFactor:  decimal.NewFromFloat(0.1),
	})
	asset.Supplied = core.Pool{Balance: sdkmath.NewInt(1_000_000), Shares: sdkmath.NewInt(1_000_000)}
	asset.Borrowed = core.Pool{Balance: sdkmath.NewInt(500_000), Shares: sdkmath.NewInt(500_000)}
	return asset
}

func TestUtilizationRate(t *testing.T) {
	u := UtilizationRate(sdkmath.NewInt(1000), sdkmath.NewInt(500))
	assert.True(t, u.Equal(decimal.NewFromFloat(0.5)))

	assert.True(t, UtilizationRate(sdkmath.ZeroInt(), sdkmath.NewInt(500)).IsZero())
}

func TestBorrowRateKink(t *testing.T) {
	base := decimal.NewFromFloat(0.02)
	mul := decimal.NewFromFloat(0.2)
	jump := decimal.NewFromFloat(1.0)
	kink := decimal.NewFromFloat(0.8)

	below := GetBorrowRatePerSecond(decimal.NewFromFloat(0.5), base, mul, jump, kink)
	atKink := GetBorrowRatePerSecond(kink, base, mul, jump, kink)
	above := GetBorrowRatePerSecond(decimal.NewFromFloat(0.95), base, mul, jump, kink)

	assert.True(t, below.LessThan(atKink))
	assert.True(t, atKink.LessThan(above))
}

func TestAccrueMonotonicAndIdempotent(t *testing.T) {
	asset := newTestAsset()
	asset.LastUpdateTimestamp = NanosPerSecond

	now := NanosPerSecond * (1 + 3600) // one hour later

	Accrue(asset, now)

	borrowedAfter := asset.Borrowed.Balance
	suppliedAfter := asset.Supplied.Balance
	uahpiAfter := asset.UnitAccHpInterest

	assert.True(t, borrowedAfter.GT(sdkmath.NewInt(500_000)), "interest accrues on debt")
	assert.True(t, suppliedAfter.GT(sdkmath.NewInt(1_000_000)), "interest passes through to suppliers")
	assert.True(t, asset.ProtFee.IsPositive(), "reserve factor cut lands in prot fee")
	assert.True(t, uahpiAfter.IsPositive())

	interest := borrowedAfter.Sub(sdkmath.NewInt(500_000))
	passedThrough := suppliedAfter.Sub(sdkmath.NewInt(1_000_000))
	assert.Equal(t, interest.String(), passedThrough.Add(asset.ProtFee).String(),
		"interest splits exactly between suppliers and prot fee")

	// second call at the same timestamp changes nothing
	Accrue(asset, now)
	assert.Equal(t, borrowedAfter.String(), asset.Borrowed.Balance.String())
	assert.Equal(t, suppliedAfter.String(), asset.Supplied.Balance.String())
	assert.Equal(t, uahpiAfter.String(), asset.UnitAccHpInterest.String())
}

func TestAccrueFirstTouchOnlySetsTimestamp(t *testing.T) {
	asset := newTestAsset()

	Accrue(asset, NanosPerSecond*100)

	assert.Equal(t, NanosPerSecond*100, asset.LastUpdateTimestamp)
	assert.Equal(t, "500000", asset.Borrowed.Balance.String())
}
