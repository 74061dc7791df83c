package txsender

import (
	"context"
	"errors"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Sender dispatches pending transfers to the wallet backend and marks them
// submitted. Delivery itself is asynchronous; the reconciler settles it.
type Sender struct {
	db            *db.DB
	transferStore core.ITransferStore
	walletz       core.WalletService
}

// New new sender worker
func New(db *db.DB, transferStore core.ITransferStore, walletz core.WalletService) *Sender {
	return &Sender{
		db:            db,
		transferStore: transferStore,
		walletz:       walletz,
	}
}

// Run run worker
func (w *Sender) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "txsender")
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

func (w *Sender) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	const limit = 20
	transfers, err := w.transferStore.ListByStatus(ctx, core.TransferStatusPending, limit)
	if err != nil {
		log.WithError(err).Errorln("transfers.ListByStatus")
		return err
	}

	if len(transfers) == 0 {
		return errors.New("EOF")
	}

	var g errgroup.Group
	for _, transfer := range transfers {
		transfer := transfer
		g.Go(func() error {
			return w.handleTransfer(ctx, transfer)
		})
	}

	return g.Wait()
}

func (w *Sender) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace_id", transfer.TraceID)
	ctx = logger.WithContext(ctx, log)

	if err := w.walletz.HandleTransfer(ctx, transfer); err != nil {
		log.WithError(err).Errorln("walletz.HandleTransfer")
		return err
	}

	transfer.Status = core.TransferStatusSubmitted
	if err := w.transferStore.Update(ctx, w.db, transfer); err != nil {
		log.WithError(err).Errorln("transfers.Update")
		return err
	}

	return nil
}
