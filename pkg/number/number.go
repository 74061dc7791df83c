package number

import (
	sdkmath "cosmossdk.io/math"
	"github.com/shopspring/decimal"
)

// Int parses an integer amount, Zero on garbage.
func Int(v string) sdkmath.Int {
	i, ok := sdkmath.NewIntFromString(v)
	if !ok {
		return sdkmath.ZeroInt()
	}
	return i
}

// Decimal parses a decimal, Zero on garbage.
func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// Pow10 10^n as an integer
func Pow10(n uint8) sdkmath.Int {
	out := sdkmath.OneInt()
	ten := sdkmath.NewInt(10)
	for i := uint8(0); i < n; i++ {
		out = out.Mul(ten)
	}
	return out
}
