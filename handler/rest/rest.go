package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/render"
)

// PriceOracle pulls the oracle snapshot attached to batches that arrive
// without one.
type PriceOracle interface {
	PullPriceSnapshot(ctx context.Context, t time.Time) (*core.PriceSnapshot, error)
}

// Handle handle rest api request
func Handle(
	system *core.System,
	assetStore core.IAssetStore,
	accountStore core.IAccountStore,
	batchStore core.IBatchStore,
	eventStore core.IEventStore,
	priceOracle PriceOracle,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/system", systemHandler(system))
	router.Get("/assets", allAssetsHandler(assetStore))
	router.Get("/assets/{asset_id}", assetHandler(assetStore))
	router.Get("/accounts/{account_id}", accountHandler(accountStore, assetStore))
	router.Post("/batches", createBatchHandler(batchStore, priceOracle))
	router.Get("/events", eventsHandler(eventStore))

	return router
}
