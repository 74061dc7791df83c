package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Reconciler settles submitted transfers once their delivery result arrives.
// A delivered transfer just goes terminal; a failed one credits the amount
// back into the account's plain supply, or into lost-and-found when the
// account is gone or locked, because the debiting batch has long committed.
type Reconciler struct {
	db            *db.DB
	transferStore core.ITransferStore
	accountStore  core.IAccountStore
	assetStore    core.IAssetStore
	eventStore    core.IEventStore
	interestz     core.IInterestService
}

// New new reconciler worker
func New(
	db *db.DB,
	transferStore core.ITransferStore,
	accountStore core.IAccountStore,
	assetStore core.IAssetStore,
	eventStore core.IEventStore,
	interestz core.IInterestService,
) *Reconciler {
	return &Reconciler{
		db:            db,
		transferStore: transferStore,
		accountStore:  accountStore,
		assetStore:    assetStore,
		eventStore:    eventStore,
		interestz:     interestz,
	}
}

// Run run worker
func (w *Reconciler) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "reconciler")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := w.run(ctx); err == nil {
				dur = 500 * time.Millisecond
			} else {
				dur = time.Second
			}
		}
	}
}

func (w *Reconciler) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	const limit = 100
	transfers, err := w.transferStore.ListByStatus(ctx, core.TransferStatusSubmitted, limit)
	if err != nil {
		log.WithError(err).Errorln("transfers.ListByStatus")
		return err
	}

	if len(transfers) == 0 {
		return errors.New("EOF")
	}

	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			log.WithError(err).WithField("trace", transfer.TraceID).Errorln("handleTransfer")
		}
	}

	return nil
}

func (w *Reconciler) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	results, err := w.transferStore.Results(ctx, transfer.ID)
	if err != nil {
		log.WithError(err).Errorln("transfers.Results")
		return err
	}

	if len(results) == 0 {
		// result not observed yet
		return nil
	}

	// the backend contract is exactly one result per transfer
	if len(results) > 1 {
		log.WithField("count", len(results)).Errorln(core.ErrPromiseResultCountInvalid)
		return core.ErrPromiseResultCountInvalid
	}

	if results[0].Success {
		return w.settleSuccess(ctx, transfer)
	}

	return w.settleFailure(ctx, transfer)
}

func (w *Reconciler) settleSuccess(ctx context.Context, transfer *core.Transfer) error {
	return w.db.Tx(func(tx *db.DB) error {
		transfer.Status = core.TransferStatusReconciled
		if err := w.transferStore.Update(ctx, tx, transfer); err != nil {
			return err
		}

		event := core.NewEvent(0, core.EventWithdrawSucceeded, &core.EventPayload{
			AccountID: transfer.AccountID,
			Amount:    transfer.Amount,
			TokenID:   transfer.TokenID,
		})
		return w.eventStore.Create(ctx, tx, event)
	})
}

func (w *Reconciler) settleFailure(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx)

	account, err := w.accountStore.Find(ctx, transfer.AccountID)
	if err != nil {
		log.WithError(err).Errorln("accounts.Find")
		return err
	}

	if account == nil || account.IsLocked {
		return w.recordLostAndFound(ctx, transfer)
	}

	asset, err := w.assetStore.Find(ctx, transfer.TokenID)
	if err != nil {
		log.WithError(err).Errorln("assets.Find")
		return err
	}
	if asset == nil {
		return w.recordLostAndFound(ctx, transfer)
	}

	if err := w.interestz.Accrue(ctx, asset, uint64(time.Now().UnixNano())); err != nil {
		return err
	}

	// credit back bypasses the deposit gates: the balance never truly left
	shares := asset.Supplied.AmountToShares(transfer.Amount, false)
	asset.Supplied.Deposit(shares, transfer.Amount)
	account.DepositSupplied(transfer.TokenID, shares)

	return w.db.Tx(func(tx *db.DB) error {
		if err := w.assetStore.Save(ctx, tx, asset); err != nil {
			return err
		}
		if err := w.accountStore.Save(ctx, tx, account); err != nil {
			return err
		}

		transfer.Status = core.TransferStatusReconciled
		if err := w.transferStore.Update(ctx, tx, transfer); err != nil {
			return err
		}

		event := core.NewEvent(0, core.EventWithdrawFailed, &core.EventPayload{
			AccountID: transfer.AccountID,
			Amount:    transfer.Amount,
			TokenID:   transfer.TokenID,
		})
		return w.eventStore.Create(ctx, tx, event)
	})
}

func (w *Reconciler) recordLostAndFound(ctx context.Context, transfer *core.Transfer) error {
	return w.db.Tx(func(tx *db.DB) error {
		if err := w.transferStore.CreateLostAndFound(ctx, tx, newLostAndFound(transfer)); err != nil {
			return err
		}

		transfer.Status = core.TransferStatusReconciled
		if err := w.transferStore.Update(ctx, tx, transfer); err != nil {
			return err
		}

		event := core.NewEvent(0, core.EventLostFound, &core.LostFoundPayload{
			User:   transfer.AccountID,
			Token:  transfer.TokenID,
			Amount: transfer.Amount,
			Locked: true,
		})
		return w.eventStore.Create(ctx, tx, event)
	})
}

// newLostAndFound the amount is out of reach for the account so the record
// always carries the locked marker.
func newLostAndFound(transfer *core.Transfer) *core.LostAndFound {
	return &core.LostAndFound{
		AccountID: transfer.AccountID,
		TokenID:   transfer.TokenID,
		Amount:    transfer.Amount,
		Locked:    true,
	}
}
