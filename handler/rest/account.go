package rest

import (
	"net/http"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/param"
	"github.com/burrowHQ/burrowland-sub002/handler/render"
	"github.com/burrowHQ/burrowland-sub002/handler/views"
)

func accountHandler(accountStore core.IAccountStore, assetStore core.IAssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			AccountID string `json:"account_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		account, err := accountStore.Find(r.Context(), params.AccountID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if account == nil {
			render.NotFoundRequest(w, core.ErrAccountNotFound)
			return
		}

		assets, err := assetStore.AllAsMap(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, views.NewAccount(account, assets))
	}
}
