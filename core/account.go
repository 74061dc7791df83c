package core

import (
	"context"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
)

// PosIDRegular the ordinary borrow/lend position; margin positions use their
// own identifiers.
const PosIDRegular = "REGULAR"

// FarmKind reward-accrual bucket kind
type FarmKind string

const (
	// FarmSupplied supplied-side reward bucket
	FarmSupplied FarmKind = "supplied"
	// FarmBorrowed borrowed-side reward bucket
	FarmBorrowed FarmKind = "borrowed"
	// FarmTokenNetBalance net-balance reward bucket
	FarmTokenNetBalance FarmKind = "token_net_balance"
)

// FarmID identifies one reward-accrual bucket whose bookkeeping must be
// recomputed before the account is persisted.
type FarmID struct {
	Kind    FarmKind `json:"kind"`
	TokenID string   `json:"token_id"`
}

// Position a named sub-ledger of collateral and borrowed shares per token.
type Position struct {
	Collateral map[string]sdkmath.Int `json:"collateral"`
	Borrowed   map[string]sdkmath.Int `json:"borrowed"`
}

// NewPosition new empty position
func NewPosition() *Position {
	return &Position{
		Collateral: make(map[string]sdkmath.Int),
		Borrowed:   make(map[string]sdkmath.Int),
	}
}

// IsEmpty reports whether the position holds nothing on either side.
func (p *Position) IsEmpty() bool {
	return len(p.Collateral) == 0 && len(p.Borrowed) == 0
}

// Account one record per user.
type Account struct {
	AccountID string `json:"account_id"`
	// IsLocked forbids any position mutation while a multi-step operation
	// spanning calls is in flight.
	IsLocked bool `json:"is_locked"`
	// Supplied plain (non-collateral) supplied shares per token
	Supplied map[string]sdkmath.Int `json:"supplied"`
	// Positions keyed by PosID
	Positions map[string]*Position `json:"positions"`
	// AffectedFarms dirty-set of reward buckets, ordered, flushed exactly
	// once when the batch persists
	AffectedFarms []FarmID `json:"affected_farms,omitempty"`
}

// NewAccount new account for the user
func NewAccount(accountID string) *Account {
	return &Account{
		AccountID: accountID,
		Supplied:  make(map[string]sdkmath.Int),
		Positions: make(map[string]*Position),
	}
}

// Position returns the named position, creating it when create is set.
func (a *Account) Position(posID string, create bool) *Position {
	if p, ok := a.Positions[posID]; ok {
		return p
	}

	if !create {
		return nil
	}

	p := NewPosition()
	a.Positions[posID] = p
	return p
}

// PrunePosition drops the position once both sides are empty. The REGULAR
// position is kept.
func (a *Account) PrunePosition(posID string) {
	if posID == PosIDRegular {
		return
	}

	if p, ok := a.Positions[posID]; ok && p.IsEmpty() {
		delete(a.Positions, posID)
	}
}

// SuppliedShares plain supplied shares for the token
func (a *Account) SuppliedShares(tokenID string) sdkmath.Int {
	if s, ok := a.Supplied[tokenID]; ok {
		return s
	}
	return sdkmath.ZeroInt()
}

// DepositSupplied credits plain supplied shares for the token.
func (a *Account) DepositSupplied(tokenID string, shares sdkmath.Int) {
	a.Supplied[tokenID] = a.SuppliedShares(tokenID).Add(shares)
}

// WithdrawSupplied debits plain supplied shares, failing on underflow.
func (a *Account) WithdrawSupplied(tokenID string, shares sdkmath.Int) error {
	held := a.SuppliedShares(tokenID)
	if held.LT(shares) {
		return ErrInsufficientShares
	}

	if rest := held.Sub(shares); rest.IsZero() {
		delete(a.Supplied, tokenID)
	} else {
		a.Supplied[tokenID] = rest
	}
	return nil
}

// AddAffectedFarm marks a reward bucket dirty, keeping insertion order and
// dropping duplicates.
func (a *Account) AddAffectedFarm(farm FarmID) {
	for _, f := range a.AffectedFarms {
		if f == farm {
			return
		}
	}
	a.AffectedFarms = append(a.AffectedFarms, farm)
}

// TouchToken marks all three reward buckets of the token dirty.
func (a *Account) TouchToken(tokenID string) {
	a.AddAffectedFarm(FarmID{Kind: FarmSupplied, TokenID: tokenID})
	a.AddAffectedFarm(FarmID{Kind: FarmBorrowed, TokenID: tokenID})
	a.AddAffectedFarm(FarmID{Kind: FarmTokenNetBalance, TokenID: tokenID})
}

// DistinctAssetCount number of distinct tokens the account touches across
// plain supplies and all positions.
func (a *Account) DistinctAssetCount() int {
	seen := make(map[string]struct{})
	for token := range a.Supplied {
		seen[token] = struct{}{}
	}
	for _, p := range a.Positions {
		for token := range p.Collateral {
			seen[token] = struct{}{}
		}
		for token := range p.Borrowed {
			seen[token] = struct{}{}
		}
	}
	return len(seen)
}

// IAccountStore account store interface
type IAccountStore interface {
	Save(ctx context.Context, tx *db.DB, account *Account) error
	Find(ctx context.Context, accountID string) (*Account, error)
	Delete(ctx context.Context, tx *db.DB, accountID string) error
}

// FarmNotifier receives the accumulated affected-farm set exactly once per
// persisted account mutation. Reward math itself lives elsewhere.
type FarmNotifier interface {
	NotifyAffectedFarms(ctx context.Context, accountID string, farms []FarmID) error
}
