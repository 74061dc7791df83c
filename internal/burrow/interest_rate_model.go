package burrow

import (
	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"

	"github.com/burrowHQ/burrowland-sub002/core"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// NanosPerSecond nanoseconds per second
	NanosPerSecond uint64 = 1_000_000_000
	// MaxPricision max pricision
	MaxPricision int32 = 16
	// UnitHpDenominator scale of the unit accumulated holding-position
	// interest index
	UnitHpDenominator = sdkmath.NewInt(1_000_000_000_000_000_000)
)

// UtilizationRate utilization rate
// utilization_rate = borrowed.balance / supplied.balance
func UtilizationRate(supplied, borrowed sdkmath.Int) decimal.Decimal {
	if !supplied.IsPositive() {
		return decimal.Zero
	}

	return decimalFromInt(borrowed).Div(decimalFromInt(supplied)).Truncate(MaxPricision)
}

// GetBorrowRatePerSecond borrow rate per second from the two-slope curve
func GetBorrowRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.Equal(decimal.Zero) ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(perSecond(multiplier)).Add(perSecond(baseRate)).Truncate(MaxPricision)
	}

	normalRate := kink.Mul(perSecond(multiplier)).Add(perSecond(baseRate))
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(perSecond(jumpMultiplier)).Add(normalRate).Truncate(MaxPricision)
}

// GetSupplyRatePerSecond supply rate per second
func GetSupplyRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	oneMinusReserveFactor := decimal.NewFromInt(1).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPricision)
}

func perSecond(ratePerYear decimal.Decimal) decimal.Decimal {
	return ratePerYear.Div(SecondsPerYear).Truncate(MaxPricision)
}

// Accrue advances the asset's pool balances and UAHPI index to nowNanos.
//
// Accruing only occurs on actions that change the asset's balances (deposit,
// withdraw, borrow, repay, collateral moves, margin ops); calling twice at
// one timestamp is a no-op. Borrower interest flows to suppliers minus the
// reserve-factor cut, which accumulates as protocol fee.
func Accrue(asset *core.Asset, nowNanos uint64) {
	if nowNanos <= asset.LastUpdateTimestamp {
		return
	}

	if asset.LastUpdateTimestamp == 0 {
		asset.LastUpdateTimestamp = nowNanos
		return
	}

	elapsedSec := decimal.NewFromInt(int64((nowNanos - asset.LastUpdateTimestamp) / NanosPerSecond))
	asset.LastUpdateTimestamp = nowNanos
	if !elapsedSec.IsPositive() {
		return
	}

	cfg := asset.Config
	util := UtilizationRate(asset.Supplied.Balance, asset.Borrowed.Balance)
	borrowRate := GetBorrowRatePerSecond(util, cfg.BaseRate, cfg.Multiplier, cfg.JumpMultiplier, cfg.Kink)

	interest := intFromDecimal(decimalFromInt(asset.Borrowed.Balance).Mul(borrowRate).Mul(elapsedSec))
	if interest.IsPositive() {
		reserved := intFromDecimal(decimalFromInt(interest).Mul(cfg.ReserveFactor))
		asset.Borrowed.Balance = asset.Borrowed.Balance.Add(interest)
		asset.Supplied.Balance = asset.Supplied.Balance.Add(interest.Sub(reserved))
		asset.ProtFee = asset.ProtFee.Add(reserved)
	}

	// margin debt accrues at the borrow rate as well, its interest flowing
	// to suppliers through the same reserve split
	marginInterest := intFromDecimal(decimalFromInt(asset.MarginDebt.Balance).Mul(borrowRate).Mul(elapsedSec))
	if marginInterest.IsPositive() {
		reserved := intFromDecimal(decimalFromInt(marginInterest).Mul(cfg.ReserveFactor))
		asset.MarginDebt.Balance = asset.MarginDebt.Balance.Add(marginInterest)
		asset.Supplied.Balance = asset.Supplied.Balance.Add(marginInterest.Sub(reserved))
		asset.ProtFee = asset.ProtFee.Add(reserved)
	}

	// per-unit holding fee index for open margin positions
	unitAcc := intFromDecimal(borrowRate.Mul(elapsedSec).Mul(decimalFromInt(UnitHpDenominator)))
	if unitAcc.IsPositive() {
		asset.UnitAccHpInterest = asset.UnitAccHpInterest.Add(unitAcc)
	}
}

func decimalFromInt(v sdkmath.Int) decimal.Decimal {
	return decimal.NewFromBigInt(v.BigInt(), 0)
}

func intFromDecimal(d decimal.Decimal) sdkmath.Int {
	return sdkmath.NewIntFromBigInt(d.Floor().BigInt())
}
