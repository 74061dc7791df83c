package cmd

import (
	"sync"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"

	"github.com/burrowHQ/burrowland-sub002/worker"
	"github.com/burrowHQ/burrowland-sub002/worker/executor"
	"github.com/burrowHQ/burrowland-sub002/worker/interest"
	"github.com/burrowHQ/burrowland-sub002/worker/reconciler"
	"github.com/burrowHQ/burrowland-sub002/worker/txsender"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "burrowland job worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		database := provideDatabase()
		defer database.Close()

		propertyStore := providePropertyStore(database)
		assetStore := provideAssetStore(database)
		accountStore := provideAccountStore(database)
		batchStore := provideBatchStore(database)
		transferStore := provideTransferStore(database)
		eventStore := provideEventStore(database)

		interestz := provideInterestService()
		riskz := provideRiskService()
		positionz := providePositionService()
		walletz := provideWalletService()
		quoter := provideDexQuoter()
		notifier := provideFarmNotifier()

		workers := []worker.Worker{
			executor.New(
				database,
				propertyStore,
				assetStore,
				accountStore,
				batchStore,
				transferStore,
				eventStore,
				interestz,
				riskz,
				positionz,
				quoter,
				notifier,
				cfg.Margin,
			),
			txsender.New(database, transferStore, walletz),
			reconciler.New(database, transferStore, accountStore, assetStore, eventStore, interestz),
			interest.New(database, assetStore, interestz),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(worker worker.Worker) {
				defer wg.Done()
				_ = worker.Run(ctx)
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
