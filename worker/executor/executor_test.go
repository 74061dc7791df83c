package executor

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/internal/burrow"
	accountsvc "github.com/burrowHQ/burrowland-sub002/service/account"
	"github.com/burrowHQ/burrowland-sub002/service/risk"
)

type fakeAssetStore struct {
	assets map[string]*core.Asset
}

func (s *fakeAssetStore) Save(ctx context.Context, tx *db.DB, asset *core.Asset) error {
	s.assets[asset.TokenID] = asset
	return nil
}

func (s *fakeAssetStore) Find(ctx context.Context, tokenID string) (*core.Asset, error) {
	return s.assets[tokenID], nil
}

func (s *fakeAssetStore) All(ctx context.Context) ([]*core.Asset, error) {
	out := make([]*core.Asset, 0, len(s.assets))
	for _, asset := range s.assets {
		out = append(out, asset)
	}
	return out, nil
}

func (s *fakeAssetStore) AllAsMap(ctx context.Context) (map[string]*core.Asset, error) {
	out := make(map[string]*core.Asset, len(s.assets))
	for token, asset := range s.assets {
		out[token] = asset
	}
	return out, nil
}

type fakeAccountStore struct {
	accounts map[string]*core.Account
}

func (s *fakeAccountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	s.accounts[account.AccountID] = account
	return nil
}

func (s *fakeAccountStore) Find(ctx context.Context, accountID string) (*core.Account, error) {
	return s.accounts[accountID], nil
}

func (s *fakeAccountStore) Delete(ctx context.Context, tx *db.DB, accountID string) error {
	delete(s.accounts, accountID)
	return nil
}

type fakeQuoter struct {
	out sdkmath.Int
}

func (q *fakeQuoter) QuoteAmountOut(ctx context.Context, dexID, tokenIn, tokenOut string, amountIn sdkmath.Int) (sdkmath.Int, error) {
	return q.out, nil
}

func testMarginConfig() core.MarginConfig {
	return core.MarginConfig{
		MaxSlippageRate: 1000,
		MinSafetyBuffer: 1000,
		RegisteredDexes: []string{"dex1"},
		RegisteredTokens: map[string]uint8{
			"usdt": 1,
			"btc":  2,
		},
	}
}

func testExecutor(assets *fakeAssetStore, accounts *fakeAccountStore, quote sdkmath.Int) *Executor {
	riskCfg := core.RiskConfig{
		MaxNumAssets:                8,
		MaximumRecencyDurationSec:   90,
		MaximumStalenessDurationSec: 3600,
	}
	margin := testMarginConfig()

	return New(
		nil, nil,
		assets, accounts,
		nil, nil, nil,
		burrow.NewInterestService(),
		risk.New(riskCfg, margin),
		accountsvc.New(riskCfg),
		&fakeQuoter{out: quote},
		nil,
		margin,
	)
}

func testAsset(tokenID string, volatility uint64) *core.Asset {
	return core.NewAsset(tokenID, core.AssetConfig{
		CanDeposit:         true,
		CanWithdraw:        true,
		CanUseAsCollateral: true,
		CanBorrow:          true,
		VolatilityRatio:    volatility,
	})
}

func seedPool(asset *core.Asset, amount int64) {
	asset.Supplied.Deposit(sdkmath.NewInt(amount), sdkmath.NewInt(amount))
}

func freshSnapshot(prices ...core.AssetPrice) []byte {
	data, _ := json.Marshal(core.PriceSnapshot{
		Timestamp:          uint64(time.Now().UnixNano()),
		RecencyDurationSec: 60,
		Prices:             prices,
	})
	return data
}

func price(multiplier int64, decimals uint8) *core.Price {
	return &core.Price{Multiplier: sdkmath.NewInt(multiplier), Decimals: decimals}
}

func executeBatch(t *testing.T, accountID string, snapshot []byte, actions ...core.RegularAction) *core.Batch {
	t.Helper()

	data, err := core.MarshalBatchMessage(&core.BatchMessage{
		Kind:    core.BatchKindExecute,
		Execute: actions,
	})
	require.NoError(t, err)

	return &core.Batch{
		ID:        1,
		TraceID:   "trace-1",
		AccountID: accountID,
		Message:   data,
		Snapshot:  snapshot,
		Status:    core.BatchStatusPending,
	}
}

func TestProcessDepositCollateralBorrow(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	btc := testAsset("btc", 9500)
	seedPool(btc, 1000)

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt, "btc": btc}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": core.NewAccount("u1")}}
	w := testExecutor(assets, accounts, sdkmath.ZeroInt())

	snapshot := freshSnapshot(
		core.AssetPrice{AssetID: "usdt", Price: price(1, 0)},
		core.AssetPrice{AssetID: "btc", Price: price(100, 0)},
	)

	b := executeBatch(t, "u1", snapshot,
		core.RegularAction{Type: core.ActionTypeDeposit, TokenID: "usdt", Amount: sdkmath.NewInt(10000)},
		core.RegularAction{Type: core.ActionTypeIncreaseCollateral, TokenID: "usdt", Amount: sdkmath.NewInt(10000)},
		core.RegularAction{Type: core.ActionTypeBorrow, TokenID: "btc", Amount: sdkmath.NewInt(10)},
	)

	res, err := w.process(ctx, b)
	require.NoError(t, err)

	account := res.account
	assert.True(t, account.SuppliedShares("usdt").IsZero())
	assert.Equal(t, "10", account.SuppliedShares("btc").String())

	position := account.Position(core.PosIDRegular, false)
	require.NotNil(t, position)
	assert.Equal(t, "10000", position.Collateral["usdt"].String())
	assert.Equal(t, "10", position.Borrowed["btc"].String())

	require.Len(t, res.events, 3)
	assert.Equal(t, core.EventDeposit, res.events[0].Name)
	assert.Equal(t, core.EventIncreaseCollateral, res.events[1].Name)
	assert.Equal(t, core.EventBorrow, res.events[2].Name)

	assert.Empty(t, res.transfers)
	assert.Len(t, res.assets, 2)
}

func TestProcessRejectsUndercollateralizedBorrow(t *testing.T) {
	ctx := context.Background()

	btc := testAsset("btc", 9500)
	seedPool(btc, 1000)

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"btc": btc}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": core.NewAccount("u1")}}
	w := testExecutor(assets, accounts, sdkmath.ZeroInt())

	snapshot := freshSnapshot(core.AssetPrice{AssetID: "btc", Price: price(100, 0)})
	b := executeBatch(t, "u1", snapshot,
		core.RegularAction{Type: core.ActionTypeBorrow, TokenID: "btc", Amount: sdkmath.NewInt(10)},
	)

	_, err := w.process(ctx, b)
	assert.Equal(t, core.ErrNotEnoughCollateral, err)
}

func TestProcessAccountNotFound(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{}}
	w := testExecutor(assets, accounts, sdkmath.ZeroInt())

	b := executeBatch(t, "ghost", nil,
		core.RegularAction{Type: core.ActionTypeDeposit, TokenID: "usdt", Amount: sdkmath.NewInt(100)},
	)

	_, err := w.process(ctx, b)
	assert.Equal(t, core.ErrAccountNotFound, err)
}

func TestProcessWithdrawCreatesTransfer(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	seedPool(usdt, 500)

	account := core.NewAccount("u1")
	account.DepositSupplied("usdt", sdkmath.NewInt(500))

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": account}}
	w := testExecutor(assets, accounts, sdkmath.ZeroInt())

	b := executeBatch(t, "u1", freshSnapshot(),
		core.RegularAction{Type: core.ActionTypeWithdraw, TokenID: "usdt", Amount: sdkmath.NewInt(200)},
	)

	res, err := w.process(ctx, b)
	require.NoError(t, err)

	require.Len(t, res.transfers, 1)
	transfer := res.transfers[0]
	assert.Equal(t, "u1", transfer.AccountID)
	assert.Equal(t, "usdt", transfer.TokenID)
	assert.Equal(t, "200", transfer.Amount.String())
	assert.Equal(t, core.TransferStatusPending, transfer.Status)

	require.Len(t, res.events, 1)
	assert.Equal(t, core.EventWithdrawStarted, res.events[0].Name)

	assert.Equal(t, "300", res.account.SuppliedShares("usdt").String())
}

func TestProcessRepayExcessEmitsDeposit(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	seedPool(usdt, 1000)
	usdt.Borrowed.Deposit(sdkmath.NewInt(250), sdkmath.NewInt(250))

	account := core.NewAccount("u1")
	position := account.Position(core.PosIDRegular, true)
	position.Borrowed["usdt"] = sdkmath.NewInt(250)

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": account}}
	w := testExecutor(assets, accounts, sdkmath.ZeroInt())

	b := executeBatch(t, "u1", nil,
		core.RegularAction{Type: core.ActionTypeRepay, TokenID: "usdt", Amount: sdkmath.NewInt(300)},
	)

	res, err := w.process(ctx, b)
	require.NoError(t, err)

	require.Len(t, res.events, 2)
	assert.Equal(t, core.EventRepay, res.events[0].Name)
	assert.Equal(t, core.EventDeposit, res.events[1].Name)

	assert.True(t, res.account.Position(core.PosIDRegular, false).Borrowed["usdt"].IsNil() ||
		res.account.Position(core.PosIDRegular, false).Borrowed["usdt"].IsZero())
	assert.Equal(t, "50", res.account.SuppliedShares("usdt").String())
}

func TestProcessStaleSnapshot(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	seedPool(usdt, 500)

	account := core.NewAccount("u1")
	account.DepositSupplied("usdt", sdkmath.NewInt(500))

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": account}}
	w := testExecutor(assets, accounts, sdkmath.ZeroInt())

	stale, _ := json.Marshal(core.PriceSnapshot{
		Timestamp:          uint64(time.Now().Add(-2 * time.Hour).UnixNano()),
		RecencyDurationSec: 60,
	})

	b := executeBatch(t, "u1", stale,
		core.RegularAction{Type: core.ActionTypeWithdraw, TokenID: "usdt", Amount: sdkmath.NewInt(100)},
	)

	_, err := w.process(ctx, b)
	assert.Equal(t, core.ErrPriceTooStale, err)
}

func TestProcessOpenMargin(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	seedPool(usdt, 2000)
	btc := testAsset("btc", 9500)

	account := core.NewAccount("u1")
	account.DepositSupplied("usdt", sdkmath.NewInt(2000))

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt, "btc": btc}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": account}}
	w := testExecutor(assets, accounts, sdkmath.NewInt(10))

	msg, err := core.MarshalBatchMessage(&core.BatchMessage{
		Kind: core.BatchKindMarginExecute,
		Margin: []core.MarginAction{
			{
				Type:              core.ActionTypeOpenMargin,
				PosID:             "m1",
				DebtTokenID:       "usdt",
				DebtAmount:        sdkmath.NewInt(1000),
				PositionToken:     "btc",
				MinPositionAmount: sdkmath.NewInt(9),
				MarginTokenID:     "usdt",
				MarginAmount:      sdkmath.NewInt(500),
				DexID:             "dex1",
			},
		},
	})
	require.NoError(t, err)

	b := &core.Batch{
		ID:        1,
		TraceID:   "trace-m1",
		AccountID: "u1",
		Message:   msg,
		Snapshot: freshSnapshot(
			core.AssetPrice{AssetID: "usdt", Price: price(1, 0)},
			core.AssetPrice{AssetID: "btc", Price: price(100, 0)},
		),
		Status: core.BatchStatusPending,
	}

	res, err := w.process(ctx, b)
	require.NoError(t, err)

	position := res.account.Position("m1", false)
	require.NotNil(t, position)
	assert.Equal(t, "500", position.Collateral["usdt"].String())
	assert.Equal(t, "10", position.Collateral["btc"].String())
	assert.Equal(t, "1000", position.Borrowed["usdt"].String())

	assert.Equal(t, "1000", usdt.MarginDebt.Balance.String())
	assert.Equal(t, "10", btc.MarginPosition.String())

	require.Len(t, res.events, 1)
	assert.Equal(t, core.EventMarginOpen, res.events[0].Name)
}

func TestProcessUnregisteredDex(t *testing.T) {
	ctx := context.Background()

	usdt := testAsset("usdt", 9500)
	seedPool(usdt, 2000)
	btc := testAsset("btc", 9500)

	account := core.NewAccount("u1")
	account.DepositSupplied("usdt", sdkmath.NewInt(2000))

	assets := &fakeAssetStore{assets: map[string]*core.Asset{"usdt": usdt, "btc": btc}}
	accounts := &fakeAccountStore{accounts: map[string]*core.Account{"u1": account}}
	w := testExecutor(assets, accounts, sdkmath.NewInt(10))

	msg, err := core.MarshalBatchMessage(&core.BatchMessage{
		Kind: core.BatchKindMarginExecute,
		Margin: []core.MarginAction{
			{
				Type:              core.ActionTypeOpenMargin,
				PosID:             "m1",
				DebtTokenID:       "usdt",
				DebtAmount:        sdkmath.NewInt(1000),
				PositionToken:     "btc",
				MinPositionAmount: sdkmath.NewInt(9),
				MarginTokenID:     "usdt",
				MarginAmount:      sdkmath.NewInt(500),
				DexID:             "unknown",
			},
		},
	})
	require.NoError(t, err)

	b := &core.Batch{
		ID:        1,
		TraceID:   "trace-m2",
		AccountID: "u1",
		Message:   msg,
		Snapshot:  freshSnapshot(),
		Status:    core.BatchStatusPending,
	}

	_, err = w.process(ctx, b)
	assert.Equal(t, core.ErrDexNotRegistered, err)
}

func TestRequiresPrices(t *testing.T) {
	strengthening := &core.BatchMessage{
		Kind: core.BatchKindExecute,
		Execute: []core.RegularAction{
			{Type: core.ActionTypeDeposit},
			{Type: core.ActionTypeIncreaseCollateral},
			{Type: core.ActionTypeRepay},
		},
	}
	assert.False(t, requiresPrices(strengthening))

	withWithdraw := &core.BatchMessage{
		Kind: core.BatchKindExecute,
		Execute: []core.RegularAction{
			{Type: core.ActionTypeDeposit},
			{Type: core.ActionTypeWithdraw},
		},
	}
	assert.True(t, requiresPrices(withWithdraw))

	margin := &core.BatchMessage{Kind: core.BatchKindMarginExecute}
	assert.True(t, requiresPrices(margin))
}
