package account

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/burrowHQ/burrowland-sub002/core"
)

type positionService struct {
	cfg core.RiskConfig
}

// New new position service
func New(cfg core.RiskConfig) core.IPositionService {
	return &positionService{cfg: cfg}
}

func (s *positionService) checkMutable(account *core.Account) error {
	if account.IsLocked {
		return core.ErrAccountLocked
	}
	return nil
}

func (s *positionService) checkAssetCount(account *core.Account) error {
	if uint32(account.DistinctAssetCount()) > s.cfg.MaxNumAssets {
		return core.ErrTooManyAssets
	}
	return nil
}

func checkSupplyLimit(asset *core.Asset, amount sdkmath.Int) error {
	if limit := asset.Config.SuppliedLimit; limit != nil {
		if asset.Supplied.Balance.Add(amount).GT(*limit) {
			return core.ErrSupplyLimitExceeded
		}
	}
	return nil
}

// Deposit credits amount already in contract custody to the account's plain
// supply.
func (s *positionService) Deposit(ctx context.Context, account *core.Account, asset *core.Asset, amount sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	if !asset.Config.CanDeposit {
		return core.ErrDepositNotEnabled
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := checkSupplyLimit(asset, amount); err != nil {
		return err
	}

	// the depositor receives the shares, round in the protocol's favor
	shares := asset.Supplied.AmountToShares(amount, false)
	asset.Supplied.Deposit(shares, amount)
	account.DepositSupplied(asset.TokenID, shares)

	account.TouchToken(asset.TokenID)
	return s.checkAssetCount(account)
}

// Withdraw debits plain supply; the executor dispatches the actual transfer.
func (s *positionService) Withdraw(ctx context.Context, account *core.Account, asset *core.Asset, amount sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	if !asset.Config.CanWithdraw {
		return core.ErrWithdrawNotEnabled
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if amount.GT(asset.AvailableAmount()) {
		return core.ErrInsufficientBalance
	}

	// the account redeems an exact amount, round the share cost up
	shares := asset.Supplied.AmountToShares(amount, true)
	if err := account.WithdrawSupplied(asset.TokenID, shares); err != nil {
		return err
	}

	if err := asset.Supplied.Withdraw(shares, amount); err != nil {
		return err
	}

	account.TouchToken(asset.TokenID)
	return nil
}

// IncreaseCollateral mints supplied shares for amount already in custody and
// pledges them on the position.
func (s *positionService) IncreaseCollateral(ctx context.Context, account *core.Account, asset *core.Asset, posID string, amount sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	if !asset.Config.CanUseAsCollateral {
		return core.ErrNotCollateralizable
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := checkSupplyLimit(asset, amount); err != nil {
		return err
	}

	shares := asset.Supplied.AmountToShares(amount, false)
	asset.Supplied.Deposit(shares, amount)

	position := account.Position(posID, true)
	position.Collateral[asset.TokenID] = positionShares(position.Collateral, asset.TokenID).Add(shares)

	account.TouchToken(asset.TokenID)
	return s.checkAssetCount(account)
}

// DecreaseCollateral unpledges collateral worth amount back into plain
// supply; the pools are untouched, only the earmark moves.
func (s *positionService) DecreaseCollateral(ctx context.Context, account *core.Account, asset *core.Asset, posID string, amount sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	position := account.Position(posID, false)
	if position == nil {
		return core.ErrPositionNotFound
	}

	shares := asset.Supplied.AmountToShares(amount, true)
	held := positionShares(position.Collateral, asset.TokenID)
	if held.LT(shares) {
		return core.ErrInsufficientShares
	}

	setOrDelete(position.Collateral, asset.TokenID, held.Sub(shares))
	account.DepositSupplied(asset.TokenID, shares)
	account.PrunePosition(posID)

	account.TouchToken(asset.TokenID)
	return nil
}

// Borrow records debt on the position and credits the proceeds to plain
// supply; collateral sufficiency is validated by the caller afterwards.
func (s *positionService) Borrow(ctx context.Context, account *core.Account, asset *core.Asset, posID string, amount sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	if !asset.Config.CanBorrow {
		return core.ErrBorrowNotEnabled
	}

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if min := asset.Config.MinBorrowedAmount; min != nil && amount.LT(*min) {
		return core.ErrMinBorrowedAmount
	}

	if limit := asset.Config.BorrowedLimit; limit != nil {
		if asset.Borrowed.Balance.Add(amount).GT(*limit) {
			return core.ErrBorrowLimitExceeded
		}
	}

	if amount.GT(asset.AvailableAmount()) {
		return core.ErrInsufficientBalance
	}

	// debt shares round up so the protocol never under-collects
	debtShares := asset.Borrowed.AmountToShares(amount, true)
	asset.Borrowed.Deposit(debtShares, amount)

	position := account.Position(posID, true)
	position.Borrowed[asset.TokenID] = positionShares(position.Borrowed, asset.TokenID).Add(debtShares)

	// proceeds stay in contract custody as plain supply
	supplyShares := asset.Supplied.AmountToShares(amount, false)
	asset.Supplied.Deposit(supplyShares, amount)
	account.DepositSupplied(asset.TokenID, supplyShares)

	account.TouchToken(asset.TokenID)
	return s.checkAssetCount(account)
}

// Repay extinguishes debt. A full repayment converts the whole share balance
// at a rounded-up amount so no dust debt is left; any excess lands in plain
// supply.
func (s *positionService) Repay(ctx context.Context, account *core.Account, asset *core.Asset, posID string, amount sdkmath.Int) (*core.RepayOutcome, error) {
	if err := s.checkMutable(account); err != nil {
		return nil, err
	}

	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	position := account.Position(posID, false)
	if position == nil {
		return nil, core.ErrPositionNotFound
	}

	debtShares := positionShares(position.Borrowed, asset.TokenID)
	if debtShares.IsZero() {
		return nil, core.ErrDebtNotFound
	}

	fullAmount := asset.Borrowed.SharesToAmount(debtShares, true)

	outcome := &core.RepayOutcome{ExcessAmount: sdkmath.ZeroInt()}
	if amount.GTE(fullAmount) {
		outcome.RepaidShares = debtShares
		outcome.RepaidAmount = fullAmount
		outcome.ExcessAmount = amount.Sub(fullAmount)
	} else {
		// partial: round shares down so the remaining debt is never
		// under-credited
		outcome.RepaidShares = asset.Borrowed.AmountToShares(amount, false)
		outcome.RepaidAmount = amount
	}

	if err := asset.Borrowed.Withdraw(outcome.RepaidShares, outcome.RepaidAmount); err != nil {
		return nil, err
	}

	setOrDelete(position.Borrowed, asset.TokenID, debtShares.Sub(outcome.RepaidShares))
	account.PrunePosition(posID)

	if outcome.ExcessAmount.IsPositive() {
		shares := asset.Supplied.AmountToShares(outcome.ExcessAmount, false)
		asset.Supplied.Deposit(shares, outcome.ExcessAmount)
		account.DepositSupplied(asset.TokenID, shares)
	}

	account.TouchToken(asset.TokenID)
	return outcome, nil
}

func positionShares(side map[string]sdkmath.Int, tokenID string) sdkmath.Int {
	if s, ok := side[tokenID]; ok {
		return s
	}
	return sdkmath.ZeroInt()
}

func setOrDelete(side map[string]sdkmath.Int, tokenID string, shares sdkmath.Int) {
	if shares.IsZero() {
		delete(side, tokenID)
	} else {
		side[tokenID] = shares
	}
}
