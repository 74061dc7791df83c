package handler

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/rest"
)

// Server server
type Server struct {
	system       *core.System
	assetStore   core.IAssetStore
	accountStore core.IAccountStore
	batchStore   core.IBatchStore
	eventStore   core.IEventStore
	priceOracle  rest.PriceOracle
}

// New new server
func New(
	system *core.System,
	assetStore core.IAssetStore,
	accountStore core.IAccountStore,
	batchStore core.IBatchStore,
	eventStore core.IEventStore,
	priceOracle rest.PriceOracle,
) Server {
	return Server{
		system:       system,
		assetStore:   assetStore,
		accountStore: accountStore,
		batchStore:   batchStore,
		eventStore:   eventStore,
		priceOracle:  priceOracle,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()

	r.Mount("/v1", rest.Handle(s.system, s.assetStore, s.accountStore, s.batchStore, s.eventStore, s.priceOracle))

	return r
}
