package core

import (
	"testing"

	sdkmath "cosmossdk.io/math"
	"github.com/stretchr/testify/assert"
)

func TestAccountAffectedFarmsOrderedDedup(t *testing.T) {
	a := NewAccount("alice")

	a.TouchToken("btc")
	a.TouchToken("eth")
	a.TouchToken("btc")

	assert.Len(t, a.AffectedFarms, 6)
	assert.Equal(t, FarmID{Kind: FarmSupplied, TokenID: "btc"}, a.AffectedFarms[0])
	assert.Equal(t, FarmID{Kind: FarmSupplied, TokenID: "eth"}, a.AffectedFarms[3])
}

func TestAccountDistinctAssetCount(t *testing.T) {
	a := NewAccount("alice")
	a.DepositSupplied("btc", sdkmath.NewInt(1))

	p := a.Position(PosIDRegular, true)
	p.Collateral["btc"] = sdkmath.NewInt(5)
	p.Borrowed["usdt"] = sdkmath.NewInt(7)

	m := a.Position("margin-1", true)
	m.Collateral["usdt"] = sdkmath.NewInt(3)
	m.Borrowed["eth"] = sdkmath.NewInt(2)

	assert.Equal(t, 3, a.DistinctAssetCount())
}

func TestAccountWithdrawSupplied(t *testing.T) {
	a := NewAccount("alice")
	a.DepositSupplied("btc", sdkmath.NewInt(10))

	assert.Equal(t, ErrInsufficientShares, a.WithdrawSupplied("btc", sdkmath.NewInt(11)))
	assert.NoError(t, a.WithdrawSupplied("btc", sdkmath.NewInt(10)))

	_, ok := a.Supplied["btc"]
	assert.False(t, ok, "empty entries are removed")
}

func TestAccountPrunePosition(t *testing.T) {
	a := NewAccount("alice")
	a.Position(PosIDRegular, true)
	a.Position("margin-1", true)

	a.PrunePosition(PosIDRegular)
	a.PrunePosition("margin-1")

	assert.NotNil(t, a.Position(PosIDRegular, false), "REGULAR is kept")
	assert.Nil(t, a.Position("margin-1", false))
}
