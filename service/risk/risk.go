package risk

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/pkg/number"
)

type riskService struct {
	cfg    core.RiskConfig
	margin core.MarginConfig
}

// New new risk service
func New(cfg core.RiskConfig, margin core.MarginConfig) core.IRiskService {
	return &riskService{
		cfg:    cfg,
		margin: margin,
	}
}

const nanosPerSecond = uint64(1_000_000_000)

func (s *riskService) ValidateSnapshot(ctx context.Context, snapshot *core.PriceSnapshot, nowNanos uint64) error {
	if snapshot.RecencyDurationSec > s.cfg.MaximumRecencyDurationSec {
		return core.ErrRecencyTooLarge
	}

	if snapshot.Timestamp > nowNanos {
		return core.ErrPriceInFuture
	}

	staleness := uint64(s.cfg.MaximumStalenessDurationSec) * nanosPerSecond
	if nowNanos-snapshot.Timestamp > staleness {
		return core.ErrPriceTooStale
	}

	return nil
}

// AmountInOther computes amount * from.multiplier * 10^to.decimals /
// (to.multiplier * 10^from.decimals), floored. Intermediates are arbitrary
// precision, so the wide dynamic range of multipliers cannot overflow.
func (s *riskService) AmountInOther(amount sdkmath.Int, from, to core.Price) sdkmath.Int {
	if to.Multiplier.IsZero() {
		return sdkmath.ZeroInt()
	}

	num := amount.Mul(from.Multiplier).Mul(number.Pow10(to.Decimals))
	den := to.Multiplier.Mul(number.Pow10(from.Decimals))
	return num.Quo(den)
}

func (s *riskService) CheckSlippage(minAmountOut, computedAmountOut sdkmath.Int) error {
	tolerated := computedAmountOut.MulRaw(int64(s.margin.MaxSlippageRate)).QuoRaw(core.RateDenominator)
	if minAmountOut.LT(computedAmountOut.Sub(tolerated)) {
		return core.ErrSlippageViolation
	}

	return nil
}

func (s *riskService) CheckMarginPair(debtToken, positionToken, marginToken string) error {
	debtParty, ok := s.margin.Party(debtToken)
	if !ok {
		return core.ErrTokenNotRegistered
	}

	positionParty, ok := s.margin.Party(positionToken)
	if !ok {
		return core.ErrTokenNotRegistered
	}

	if debtParty == positionParty {
		return core.ErrIllegalDebtPositionPair
	}

	if marginToken != debtToken && marginToken != positionToken {
		return core.ErrMarginTokenMismatch
	}

	return nil
}

// common unit: value = amount * multiplier / 10^decimals, held to extra
// precision so small collateral is not flattened to zero
var commonUnitScale = number.Pow10(18)

func (s *riskService) valueOf(amount sdkmath.Int, price core.Price, roundUp bool) sdkmath.Int {
	num := amount.Mul(price.Multiplier).Mul(commonUnitScale)
	den := number.Pow10(price.Decimals)
	if roundUp {
		return num.Add(den).SubRaw(1).Quo(den)
	}
	return num.Quo(den)
}

func (s *riskService) AccountHealth(ctx context.Context, account *core.Account, assets map[string]*core.Asset, book *core.PriceBook) (sdkmath.Int, sdkmath.Int, error) {
	collateral := sdkmath.ZeroInt()
	debt := sdkmath.ZeroInt()

	for posID, position := range account.Positions {
		for token, shares := range position.Collateral {
			asset, ok := assets[token]
			if !ok {
				return sdkmath.Int{}, sdkmath.Int{}, core.ErrAssetNotFound
			}

			price, err := book.Get(token)
			if err != nil {
				return sdkmath.Int{}, sdkmath.Int{}, err
			}

			amount := asset.Supplied.SharesToAmount(shares, false)
			value := s.valueOf(amount, price, false)
			// collateral discounted by the volatility ratio
			collateral = collateral.Add(value.MulRaw(int64(asset.Config.VolatilityRatio)).QuoRaw(core.RateDenominator))
		}

		for token, shares := range position.Borrowed {
			asset, ok := assets[token]
			if !ok {
				return sdkmath.Int{}, sdkmath.Int{}, core.ErrAssetNotFound
			}

			price, err := book.Get(token)
			if err != nil {
				return sdkmath.Int{}, sdkmath.Int{}, err
			}

			// margin positions owe against the margin debt pool
			debtPool := asset.Borrowed
			if posID != core.PosIDRegular {
				debtPool = asset.MarginDebt
			}

			amount := debtPool.SharesToAmount(shares, true)
			value := s.valueOf(amount, price, true)
			// debt inflated by the inverse of the volatility ratio
			if asset.Config.VolatilityRatio > 0 {
				value = value.MulRaw(core.RateDenominator).QuoRaw(int64(asset.Config.VolatilityRatio))
			}
			debt = debt.Add(value)
		}
	}

	return collateral, debt, nil
}

func (s *riskService) HasEnoughCollateral(ctx context.Context, account *core.Account, assets map[string]*core.Asset, book *core.PriceBook) (bool, error) {
	collateral, debt, err := s.AccountHealth(ctx, account, assets, book)
	if err != nil {
		return false, err
	}

	if debt.IsZero() {
		return true, nil
	}

	buffer := debt.MulRaw(int64(s.margin.MinSafetyBuffer)).QuoRaw(core.RateDenominator)
	return collateral.GTE(debt.Add(buffer)), nil
}

// IsLiquidatable is the liquidation trigger extension point. The threshold
// below compares discounted collateral with inflated debt; the forced-sale
// accounting hangs off the same pool primitives and is wired separately.
func (s *riskService) IsLiquidatable(ctx context.Context, account *core.Account, assets map[string]*core.Asset, book *core.PriceBook) (bool, error) {
	collateral, debt, err := s.AccountHealth(ctx, account, assets, book)
	if err != nil {
		return false, err
	}

	return debt.IsPositive() && collateral.LT(debt), nil
}
