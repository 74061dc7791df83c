package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/pkg/id"
)

const (
	checkpointKey = "executor_checkpoint"
	limit         = 100
)

// Executor drains pending batches in id order and applies each one
// atomically: every sub-action succeeds or the whole batch is rejected with
// no state change. Batches of one account never interleave because a single
// executor walks the queue sequentially.
type Executor struct {
	db            *db.DB
	propertyStore property.Store
	assetStore    core.IAssetStore
	accountStore  core.IAccountStore
	batchStore    core.IBatchStore
	transferStore core.ITransferStore
	eventStore    core.IEventStore
	interestz     core.IInterestService
	riskz         core.IRiskService
	positionz     core.IPositionService
	quoter        core.DexQuoter
	notifier      core.FarmNotifier
	margin        core.MarginConfig
}

// New new executor worker
func New(
	db *db.DB,
	propertyStore property.Store,
	assetStore core.IAssetStore,
	accountStore core.IAccountStore,
	batchStore core.IBatchStore,
	transferStore core.ITransferStore,
	eventStore core.IEventStore,
	interestz core.IInterestService,
	riskz core.IRiskService,
	positionz core.IPositionService,
	quoter core.DexQuoter,
	notifier core.FarmNotifier,
	margin core.MarginConfig,
) *Executor {
	return &Executor{
		db:            db,
		propertyStore: propertyStore,
		assetStore:    assetStore,
		accountStore:  accountStore,
		batchStore:    batchStore,
		transferStore: transferStore,
		eventStore:    eventStore,
		interestz:     interestz,
		riskz:         riskz,
		positionz:     positionz,
		quoter:        quoter,
		notifier:      notifier,
		margin:        margin,
	}
}

// Run run worker
func (w *Executor) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "executor")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := w.run(ctx); err == nil {
				dur = 100 * time.Millisecond
			} else {
				dur = 500 * time.Millisecond
			}
		}
	}
}

func (w *Executor) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	v, err := w.propertyStore.Get(ctx, checkpointKey)
	if err != nil {
		log.WithError(err).Errorln("property.Get error")
		return err
	}

	batches, err := w.batchStore.List(ctx, v.Int64(), limit)
	if err != nil {
		log.WithError(err).Errorln("batches.List")
		return err
	}

	if len(batches) == 0 {
		return errors.New("EOF")
	}

	for _, b := range batches {
		if err := w.handleBatch(ctx, b); err != nil {
			return err
		}

		if err := w.propertyStore.Save(ctx, checkpointKey, b.ID); err != nil {
			log.WithError(err).Errorln("property.Save:", b.ID)
			return err
		}
	}

	return nil
}

func (w *Executor) handleBatch(ctx context.Context, b *core.Batch) error {
	log := logger.FromContext(ctx).WithField("batch", b.TraceID)
	ctx = logger.WithContext(ctx, log)

	if b.Status != core.BatchStatusPending {
		return nil
	}

	res, err := w.process(ctx, b)
	if err != nil {
		var code core.ErrorCode
		if errors.As(err, &code) {
			log.WithField("code", code).Infoln("batch rejected")
			return w.db.Tx(func(tx *db.DB) error {
				return w.batchStore.UpdateStatus(ctx, tx, b.ID, core.BatchStatusRejected, int(code))
			})
		}
		return err
	}

	farms := res.account.AffectedFarms
	res.account.AffectedFarms = nil

	if err := w.db.Tx(func(tx *db.DB) error {
		for _, asset := range res.sortedAssets() {
			if err := w.assetStore.Save(ctx, tx, asset); err != nil {
				return err
			}
		}

		if err := w.accountStore.Save(ctx, tx, res.account); err != nil {
			return err
		}

		for _, transfer := range res.transfers {
			if err := w.transferStore.Create(ctx, tx, transfer); err != nil {
				return err
			}
		}

		if err := w.eventStore.Create(ctx, tx, res.events...); err != nil {
			return err
		}

		return w.batchStore.UpdateStatus(ctx, tx, b.ID, core.BatchStatusDone, 0)
	}); err != nil {
		log.WithError(err).Errorln("commit batch")
		return err
	}

	if w.notifier != nil && len(farms) > 0 {
		if err := w.notifier.NotifyAffectedFarms(ctx, b.AccountID, farms); err != nil {
			log.WithError(err).Errorln("notify affected farms")
		}
	}

	return nil
}

type batchResult struct {
	account   *core.Account
	assets    map[string]*core.Asset
	transfers []*core.Transfer
	events    []*core.Event
}

func (r *batchResult) sortedAssets() []*core.Asset {
	tokens := make([]string, 0, len(r.assets))
	for token := range r.assets {
		tokens = append(tokens, token)
	}
	sort.Strings(tokens)

	out := make([]*core.Asset, 0, len(tokens))
	for _, token := range tokens {
		out = append(out, r.assets[token])
	}
	return out
}

// process applies the batch to in-memory copies of the account and assets.
// Any core.ErrorCode returned here aborts the batch without persisting.
func (w *Executor) process(ctx context.Context, b *core.Batch) (*batchResult, error) {
	msg, err := core.UnmarshalBatchMessage(b.Message)
	if err != nil {
		return nil, core.ErrUnknown
	}

	nowNanos := uint64(time.Now().UnixNano())

	var book *core.PriceBook
	if requiresPrices(msg) {
		var snapshot core.PriceSnapshot
		if len(b.Snapshot) == 0 {
			return nil, core.ErrMissingPrice
		}
		if err := json.Unmarshal(b.Snapshot, &snapshot); err != nil {
			return nil, core.ErrMissingPrice
		}

		if err := w.riskz.ValidateSnapshot(ctx, &snapshot, nowNanos); err != nil {
			return nil, err
		}
		book = core.NewPriceBook(&snapshot)
	}

	account, err := w.accountStore.Find(ctx, b.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, core.ErrAccountNotFound
	}

	res := &batchResult{
		account: account,
		assets:  make(map[string]*core.Asset),
	}

	healthCheck := false

	switch msg.Kind {
	case core.BatchKindExecute:
		for i, action := range msg.Execute {
			check, err := w.applyRegular(ctx, b, res, i, action, nowNanos)
			if err != nil {
				return nil, err
			}
			healthCheck = healthCheck || check
		}
	case core.BatchKindMarginExecute:
		for _, action := range msg.Margin {
			if err := w.applyMargin(ctx, b, res, action, nowNanos); err != nil {
				return nil, err
			}
		}
		healthCheck = true
	default:
		return nil, core.ErrOperationForbidden
	}

	if healthCheck {
		assets, err := w.assetsForValuation(ctx, res)
		if err != nil {
			return nil, err
		}

		enough, err := w.riskz.HasEnoughCollateral(ctx, account, assets, book)
		if err != nil {
			return nil, err
		}
		if !enough {
			return nil, core.ErrNotEnoughCollateral
		}
	}

	return res, nil
}

// applyRegular returns whether the action weakens the account and therefore
// requires a collateral sufficiency check once the whole batch has applied.
func (w *Executor) applyRegular(ctx context.Context, b *core.Batch, res *batchResult, index int, action core.RegularAction, nowNanos uint64) (bool, error) {
	asset, err := w.loadAsset(ctx, res, action.TokenID, nowNanos)
	if err != nil {
		return false, err
	}

	posID := action.PosID
	if posID == "" {
		posID = core.PosIDRegular
	}

	payload := &core.EventPayload{
		AccountID: b.AccountID,
		Amount:    action.Amount,
		TokenID:   action.TokenID,
		Position:  posID,
	}

	switch action.Type {
	case core.ActionTypeDeposit:
		if err := w.positionz.Deposit(ctx, res.account, asset, action.Amount); err != nil {
			return false, err
		}
		payload.Position = ""
		res.pushEvent(b.ID, core.EventDeposit, payload)
		return false, nil

	case core.ActionTypeWithdraw:
		if err := w.positionz.Withdraw(ctx, res.account, asset, action.Amount); err != nil {
			return false, err
		}

		// pessimistic debit: the balance is gone before delivery is known
		res.transfers = append(res.transfers, &core.Transfer{
			TraceID:   id.TraceIDFrom(fmt.Sprintf("%s.transfer.%d", b.TraceID, index)),
			AccountID: b.AccountID,
			TokenID:   action.TokenID,
			Amount:    action.Amount,
			Memo:      core.EventWithdrawStarted,
			Status:    core.TransferStatusPending,
		})

		payload.Position = ""
		res.pushEvent(b.ID, core.EventWithdrawStarted, payload)
		return true, nil

	case core.ActionTypeIncreaseCollateral:
		if err := w.positionz.IncreaseCollateral(ctx, res.account, asset, posID, action.Amount); err != nil {
			return false, err
		}
		res.pushEvent(b.ID, core.EventIncreaseCollateral, payload)
		return false, nil

	case core.ActionTypeDecreaseCollateral:
		if err := w.positionz.DecreaseCollateral(ctx, res.account, asset, posID, action.Amount); err != nil {
			return false, err
		}
		res.pushEvent(b.ID, core.EventDecreaseCollateral, payload)
		return true, nil

	case core.ActionTypeBorrow:
		if err := w.positionz.Borrow(ctx, res.account, asset, posID, action.Amount); err != nil {
			return false, err
		}
		res.pushEvent(b.ID, core.EventBorrow, payload)
		return true, nil

	case core.ActionTypeRepay:
		outcome, err := w.positionz.Repay(ctx, res.account, asset, posID, action.Amount)
		if err != nil {
			return false, err
		}
		payload.Amount = outcome.RepaidAmount
		res.pushEvent(b.ID, core.EventRepay, payload)

		// overpayment lands in plain supply as its own deposit
		if outcome.ExcessAmount.IsPositive() {
			res.pushEvent(b.ID, core.EventDeposit, &core.EventPayload{
				AccountID: b.AccountID,
				Amount:    outcome.ExcessAmount,
				TokenID:   action.TokenID,
			})
		}
		return false, nil

	default:
		return false, core.ErrOperationForbidden
	}
}

func (w *Executor) applyMargin(ctx context.Context, b *core.Batch, res *batchResult, action core.MarginAction, nowNanos uint64) error {
	if err := w.riskz.CheckMarginPair(action.DebtTokenID, action.PositionToken, action.MarginTokenID); err != nil {
		return err
	}

	if !w.margin.DexRegistered(action.DexID) {
		return core.ErrDexNotRegistered
	}

	debtAsset, err := w.loadAsset(ctx, res, action.DebtTokenID, nowNanos)
	if err != nil {
		return err
	}
	positionAsset, err := w.loadAsset(ctx, res, action.PositionToken, nowNanos)
	if err != nil {
		return err
	}

	switch action.Type {
	case core.ActionTypeOpenMargin:
		quote, err := w.quoter.QuoteAmountOut(ctx, action.DexID, action.DebtTokenID, action.PositionToken, action.DebtAmount)
		if err != nil {
			return err
		}

		if err := w.riskz.CheckSlippage(action.MinPositionAmount, quote); err != nil {
			return err
		}

		if err := w.positionz.OpenMargin(ctx, res.account, debtAsset, positionAsset, &action, quote); err != nil {
			return err
		}

		res.pushEvent(b.ID, core.EventMarginOpen, &core.EventPayload{
			AccountID: b.AccountID,
			Amount:    action.DebtAmount,
			TokenID:   action.DebtTokenID,
			Position:  action.PosID,
		})
		return nil

	case core.ActionTypeCloseMargin:
		position := res.account.Position(action.PosID, false)
		if position == nil {
			return core.ErrPositionNotFound
		}

		posShares, ok := position.Collateral[action.PositionToken]
		if !ok {
			return core.ErrPositionNotFound
		}
		posAmount := positionAsset.Supplied.SharesToAmount(posShares, false)

		quote, err := w.quoter.QuoteAmountOut(ctx, action.DexID, action.PositionToken, action.DebtTokenID, posAmount)
		if err != nil {
			return err
		}

		// MinPositionAmount bounds the debt-token proceeds on close
		if err := w.riskz.CheckSlippage(action.MinPositionAmount, quote); err != nil {
			return err
		}

		if err := w.positionz.CloseMargin(ctx, res.account, debtAsset, positionAsset, &action, quote); err != nil {
			return err
		}

		res.pushEvent(b.ID, core.EventMarginClose, &core.EventPayload{
			AccountID: b.AccountID,
			Amount:    posAmount,
			TokenID:   action.PositionToken,
			Position:  action.PosID,
		})
		return nil

	default:
		return core.ErrOperationForbidden
	}
}

// loadAsset reads an asset through to the db and accrues it to chain time,
// memoizing so every action of the batch sees one accrued copy.
func (w *Executor) loadAsset(ctx context.Context, res *batchResult, tokenID string, nowNanos uint64) (*core.Asset, error) {
	if asset, ok := res.assets[tokenID]; ok {
		return asset, nil
	}

	asset, err := w.assetStore.Find(ctx, tokenID)
	if err != nil {
		return nil, err
	}
	if asset == nil {
		return nil, core.ErrAssetNotFound
	}

	if err := w.interestz.Accrue(ctx, asset, nowNanos); err != nil {
		return nil, err
	}

	res.assets[tokenID] = asset
	return asset, nil
}

// assetsForValuation assembles the full asset map for the health check,
// overlaying the accrued working copies on the stored ones.
func (w *Executor) assetsForValuation(ctx context.Context, res *batchResult) (map[string]*core.Asset, error) {
	assets, err := w.assetStore.AllAsMap(ctx)
	if err != nil {
		return nil, err
	}

	for token, asset := range res.assets {
		assets[token] = asset
	}

	return assets, nil
}

func (r *batchResult) pushEvent(batchID int64, name string, payload interface{}) {
	r.events = append(r.events, core.NewEvent(batchID, name, payload))
}

// requiresPrices reports whether the batch can weaken the account. Batches
// that only strengthen it (deposit, add collateral, repay) run without an
// oracle snapshot.
func requiresPrices(msg *core.BatchMessage) bool {
	if msg.Kind == core.BatchKindMarginExecute {
		return true
	}

	for _, action := range msg.Execute {
		switch action.Type {
		case core.ActionTypeDeposit, core.ActionTypeIncreaseCollateral, core.ActionTypeRepay:
		default:
			return true
		}
	}

	return false
}
