package cmd

import (
	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/internal/burrow"
	accountservice "github.com/burrowHQ/burrowland-sub002/service/account"
	"github.com/burrowHQ/burrowland-sub002/service/dex"
	"github.com/burrowHQ/burrowland-sub002/service/farm"
	"github.com/burrowHQ/burrowland-sub002/service/oracle"
	"github.com/burrowHQ/burrowland-sub002/service/risk"
	walletservice "github.com/burrowHQ/burrowland-sub002/service/wallet"
	"github.com/burrowHQ/burrowland-sub002/store/account"
	"github.com/burrowHQ/burrowland-sub002/store/asset"
	"github.com/burrowHQ/burrowland-sub002/store/batch"
	"github.com/burrowHQ/burrowland-sub002/store/event"
	"github.com/burrowHQ/burrowland-sub002/store/transfer"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideConfig() *core.Config {
	return &cfg
}

func provideSystem(ver string) *core.System {
	return &core.System{
		Genesis:  cfg.App.Genesis,
		Location: cfg.App.Location,
		Version:  ver,
		Risk:     cfg.Risk,
		Margin:   cfg.Margin,
	}
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideAssetStore(db *db.DB) core.IAssetStore {
	return asset.New(db)
}

func provideAccountStore(db *db.DB) core.IAccountStore {
	return account.New(db)
}

func provideBatchStore(db *db.DB) core.IBatchStore {
	return batch.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideEventStore(db *db.DB) core.IEventStore {
	return event.New(db)
}

// ------------------service------------------------------------

func provideInterestService() core.IInterestService {
	return burrow.NewInterestService()
}

func provideRiskService() core.IRiskService {
	return risk.New(cfg.Risk, cfg.Margin)
}

func providePositionService() core.IPositionService {
	return accountservice.New(cfg.Risk)
}

func provideWalletService() core.WalletService {
	walletz, err := walletservice.New(cfg.MainWallet)
	if err != nil {
		panic(err)
	}

	return walletz
}

func provideDexQuoter() core.DexQuoter {
	return dex.New(cfg.Dex.Endpoints)
}

func provideFarmNotifier() core.FarmNotifier {
	return farm.NewNotifier()
}

func provideOracleService() *oracle.PriceService {
	return oracle.New(cfg.Oracle)
}
