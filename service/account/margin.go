package account

import (
	"context"

	sdkmath "cosmossdk.io/math"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// OpenMargin books an opened margin trade: margin collateral is earmarked
// from plain supply, the traded-into position amount is custodied as supplied
// shares on the margin position, and the debt lands in the asset's margin
// debt pool. Pair legality and slippage have been validated by the caller;
// positionAmount is the dex-quoted output.
func (s *positionService) OpenMargin(ctx context.Context, account *core.Account, debtAsset, positionAsset *core.Asset, action *core.MarginAction, positionAmount sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	if action.PosID == core.PosIDRegular {
		return core.ErrOperationForbidden
	}

	if !action.DebtAmount.IsPositive() || !action.MarginAmount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if action.DebtAmount.GT(debtAsset.AvailableAmount()) {
		return core.ErrInsufficientBalance
	}

	marginAsset := debtAsset
	if action.MarginTokenID == positionAsset.TokenID {
		marginAsset = positionAsset
	}

	// earmark margin collateral out of plain supply
	marginShares := marginAsset.Supplied.AmountToShares(action.MarginAmount, true)
	if err := account.WithdrawSupplied(marginAsset.TokenID, marginShares); err != nil {
		return err
	}

	position := account.Position(action.PosID, true)
	position.Collateral[marginAsset.TokenID] = positionShares(position.Collateral, marginAsset.TokenID).Add(marginShares)

	// debt into the margin debt pool, rounded against the borrower
	debtShares := debtAsset.MarginDebt.AmountToShares(action.DebtAmount, true)
	debtAsset.MarginDebt.Deposit(debtShares, action.DebtAmount)
	position.Borrowed[debtAsset.TokenID] = positionShares(position.Borrowed, debtAsset.TokenID).Add(debtShares)

	// custody the traded-into tokens as supplied shares on the position
	posShares := positionAsset.Supplied.AmountToShares(positionAmount, false)
	positionAsset.Supplied.Deposit(posShares, positionAmount)
	position.Collateral[positionAsset.TokenID] = positionShares(position.Collateral, positionAsset.TokenID).Add(posShares)
	positionAsset.MarginPosition = positionAsset.MarginPosition.Add(positionAmount)

	account.TouchToken(debtAsset.TokenID)
	account.TouchToken(positionAsset.TokenID)
	return s.checkAssetCount(account)
}

// CloseMargin unwinds a margin position: the position tokens are sold back
// (debtTokenIn is the dex-quoted proceeds in the debt token), the margin debt
// repaid, and on full repayment the remaining collateral is released to plain
// supply. A partial close leaves the position and its collateral in place.
func (s *positionService) CloseMargin(ctx context.Context, account *core.Account, debtAsset, positionAsset *core.Asset, action *core.MarginAction, debtTokenIn sdkmath.Int) error {
	if err := s.checkMutable(account); err != nil {
		return err
	}

	position := account.Position(action.PosID, false)
	if position == nil || action.PosID == core.PosIDRegular {
		return core.ErrPositionNotFound
	}

	debtShares := positionShares(position.Borrowed, debtAsset.TokenID)
	if debtShares.IsZero() {
		return core.ErrDebtNotFound
	}

	// release the traded position tokens
	posShares := positionShares(position.Collateral, positionAsset.TokenID)
	posAmount := positionAsset.Supplied.SharesToAmount(posShares, false)
	if err := positionAsset.Supplied.Withdraw(posShares, posAmount); err != nil {
		return err
	}
	delete(position.Collateral, positionAsset.TokenID)

	positionAsset.MarginPosition = positionAsset.MarginPosition.Sub(posAmount)
	if positionAsset.MarginPosition.IsNegative() {
		positionAsset.MarginPosition = sdkmath.ZeroInt()
	}

	fullDebt := debtAsset.MarginDebt.SharesToAmount(debtShares, true)

	if debtTokenIn.GTE(fullDebt) {
		if err := debtAsset.MarginDebt.Withdraw(debtShares, fullDebt); err != nil {
			return err
		}
		delete(position.Borrowed, debtAsset.TokenID)

		// proceeds beyond the debt go to plain supply
		if excess := debtTokenIn.Sub(fullDebt); excess.IsPositive() {
			shares := debtAsset.Supplied.AmountToShares(excess, false)
			debtAsset.Supplied.Deposit(shares, excess)
			account.DepositSupplied(debtAsset.TokenID, shares)
		}

		// release remaining (margin) collateral earmarks
		for token, shares := range position.Collateral {
			account.DepositSupplied(token, shares)
			delete(position.Collateral, token)
		}

		account.PrunePosition(action.PosID)
	} else {
		repayShares := debtAsset.MarginDebt.AmountToShares(debtTokenIn, false)
		if err := debtAsset.MarginDebt.Withdraw(repayShares, debtTokenIn); err != nil {
			return err
		}
		setOrDelete(position.Borrowed, debtAsset.TokenID, debtShares.Sub(repayShares))
	}

	account.TouchToken(debtAsset.TokenID)
	account.TouchToken(positionAsset.TokenID)
	return nil
}
