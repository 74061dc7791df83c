package core

import (
	sdkmath "cosmossdk.io/math"
)

// Pool tracks one side (supplied or borrowed) of one asset as a
// balance/shares pair. A holder of s shares owns s * Balance / Shares of the
// absolute balance; the exchange rate drifts as interest accrues on Balance
// while Shares stays put.
type Pool struct {
	Balance sdkmath.Int `json:"balance"`
	Shares  sdkmath.Int `json:"shares"`
}

// NewPool new empty pool
func NewPool() Pool {
	return Pool{
		Balance: sdkmath.ZeroInt(),
		Shares:  sdkmath.ZeroInt(),
	}
}

// AmountToShares converts an absolute amount into pool shares at the current
// exchange rate. Round up when the protocol is selling shares (minting
// borrow-shares for debt) so it never under-collects; round down when
// computing shares redeemable by a user so it never over-pays.
func (p Pool) AmountToShares(amount sdkmath.Int, roundUp bool) sdkmath.Int {
	if p.Shares.IsZero() || p.Balance.IsZero() {
		// bootstrap: 1 share = 1 unit
		return amount
	}

	num := amount.Mul(p.Shares)
	if roundUp {
		return ceilQuo(num, p.Balance)
	}
	return num.Quo(p.Balance)
}

// SharesToAmount converts pool shares back into an absolute amount. Round up
// when settling a full repayment so no unrepaid dust is left behind; round
// down when paying a withdrawal out.
func (p Pool) SharesToAmount(shares sdkmath.Int, roundUp bool) sdkmath.Int {
	if p.Shares.IsZero() || p.Balance.IsZero() {
		return shares
	}

	num := shares.Mul(p.Balance)
	if roundUp {
		return ceilQuo(num, p.Shares)
	}
	return num.Quo(p.Shares)
}

// Deposit adds shares and amount to the pool.
func (p *Pool) Deposit(shares, amount sdkmath.Int) {
	p.Shares = p.Shares.Add(shares)
	p.Balance = p.Balance.Add(amount)
}

// Withdraw removes shares and amount from the pool, failing if either side
// would underflow.
func (p *Pool) Withdraw(shares, amount sdkmath.Int) error {
	if p.Shares.LT(shares) || p.Balance.LT(amount) {
		return ErrInsufficientPoolBalance
	}

	p.Shares = p.Shares.Sub(shares)
	p.Balance = p.Balance.Sub(amount)
	return nil
}

func ceilQuo(num, den sdkmath.Int) sdkmath.Int {
	return num.Add(den).Sub(sdkmath.OneInt()).Quo(den)
}
