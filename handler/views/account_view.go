package views

import (
	sdkmath "cosmossdk.io/math"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// AccountBalance one token balance converted from shares to amount
type AccountBalance struct {
	TokenID string `json:"token_id"`
	Shares  string `json:"shares"`
	Amount  string `json:"amount"`
}

// AccountPosition position view with share-to-amount conversion applied
type AccountPosition struct {
	PosID      string           `json:"pos_id"`
	Collateral []AccountBalance `json:"collateral"`
	Borrowed   []AccountBalance `json:"borrowed"`
}

// Account account view
type Account struct {
	AccountID string            `json:"account_id"`
	IsLocked  bool              `json:"is_locked"`
	Supplied  []AccountBalance  `json:"supplied"`
	Positions []AccountPosition `json:"positions"`
}

// NewAccount build the account view against the current pool states
func NewAccount(account *core.Account, assets map[string]*core.Asset) *Account {
	view := &Account{
		AccountID: account.AccountID,
		IsLocked:  account.IsLocked,
		Supplied:  make([]AccountBalance, 0, len(account.Supplied)),
		Positions: make([]AccountPosition, 0, len(account.Positions)),
	}

	for token, shares := range account.Supplied {
		view.Supplied = append(view.Supplied, balance(token, shares, assets, false))
	}

	for posID, position := range account.Positions {
		pv := AccountPosition{
			PosID:      posID,
			Collateral: make([]AccountBalance, 0, len(position.Collateral)),
			Borrowed:   make([]AccountBalance, 0, len(position.Borrowed)),
		}

		for token, shares := range position.Collateral {
			pv.Collateral = append(pv.Collateral, balance(token, shares, assets, false))
		}

		for token, shares := range position.Borrowed {
			pv.Borrowed = append(pv.Borrowed, debtBalance(posID, token, shares, assets))
		}

		view.Positions = append(view.Positions, pv)
	}

	return view
}

func balance(token string, shares sdkmath.Int, assets map[string]*core.Asset, roundUp bool) AccountBalance {
	out := AccountBalance{
		TokenID: token,
		Shares:  shares.String(),
		Amount:  shares.String(),
	}

	if asset, ok := assets[token]; ok {
		out.Amount = asset.Supplied.SharesToAmount(shares, roundUp).String()
	}

	return out
}

func debtBalance(posID, token string, shares sdkmath.Int, assets map[string]*core.Asset) AccountBalance {
	out := AccountBalance{
		TokenID: token,
		Shares:  shares.String(),
		Amount:  shares.String(),
	}

	if asset, ok := assets[token]; ok {
		pool := asset.Borrowed
		if posID != core.PosIDRegular {
			pool = asset.MarginDebt
		}
		out.Amount = pool.SharesToAmount(shares, true).String()
	}

	return out
}
