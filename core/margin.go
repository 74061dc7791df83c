package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
)

// RateDenominator denominator of all bps-denominated rates.
const RateDenominator = 10000

// MarginConfig margin-trading configuration surface.
type MarginConfig struct {
	// MaxSlippageRate bps
	MaxSlippageRate uint64 `json:"max_slippage_rate"`
	// MinSafetyBuffer bps of debt value the collateral must exceed
	MinSafetyBuffer uint64 `json:"min_safety_buffer"`
	// RegisteredDexes whitelisted dex accounts
	RegisteredDexes []string `json:"registered_dexes"`
	// RegisteredTokens token -> party tag; a token must not be both debt
	// and position collateral within one party
	RegisteredTokens map[string]uint8 `json:"registered_tokens"`
}

// DexRegistered whitelisted check
func (c *MarginConfig) DexRegistered(dexID string) bool {
	for _, d := range c.RegisteredDexes {
		if d == dexID {
			return true
		}
	}
	return false
}

// Party registered party tag for the token
func (c *MarginConfig) Party(tokenID string) (uint8, bool) {
	p, ok := c.RegisteredTokens[tokenID]
	return p, ok
}

// DexQuoter quotes the expected output of a swap on a registered dex. The
// concentrated-liquidity math behind the quote is external; only the quote is
// consumed here.
type DexQuoter interface {
	QuoteAmountOut(ctx context.Context, dexID, tokenIn, tokenOut string, amountIn sdkmath.Int) (sdkmath.Int, error)
}
