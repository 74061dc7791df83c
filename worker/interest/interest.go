package interest

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/errgroup"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Worker drives accrual forward on idle assets so that pool balances and the
// holding-position index never fall far behind chain time. Actions accrue on
// touch regardless; this keeps read views fresh.
type Worker struct {
	db         *db.DB
	assetStore core.IAssetStore
	interestz  core.IInterestService
}

// New new interest worker
func New(db *db.DB, assetStore core.IAssetStore, interestz core.IInterestService) *Worker {
	return &Worker{
		db:         db,
		assetStore: assetStore,
		interestz:  interestz,
	}
}

// Run run worker
func (w *Worker) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "interest")
	ctx = logger.WithContext(ctx, log)

	dur := time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(dur):
			if err := w.run(ctx); err != nil {
				dur = 10 * time.Second
			} else {
				dur = time.Second
			}
		}
	}
}

func (w *Worker) run(ctx context.Context) error {
	log := logger.FromContext(ctx)

	assets, err := w.assetStore.All(ctx)
	if err != nil {
		log.WithError(err).Errorln("assets.All")
		return err
	}

	nowNanos := uint64(time.Now().UnixNano())

	var g errgroup.Group
	for _, asset := range assets {
		asset := asset
		g.Go(func() error {
			if err := w.interestz.Accrue(ctx, asset, nowNanos); err != nil {
				log.WithError(err).Errorln("accrue:", asset.TokenID)
				return err
			}

			return w.db.Tx(func(tx *db.DB) error {
				return w.assetStore.Save(ctx, tx, asset)
			})
		})
	}

	return g.Wait()
}
