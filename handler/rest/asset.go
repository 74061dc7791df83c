package rest

import (
	"net/http"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/param"
	"github.com/burrowHQ/burrowland-sub002/handler/render"
	"github.com/burrowHQ/burrowland-sub002/handler/views"
)

func allAssetsHandler(assetStore core.IAssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := assetStore.All(r.Context())
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		assetViews := make([]*views.Asset, 0, len(assets))
		for _, asset := range assets {
			assetViews = append(assetViews, views.NewAsset(asset))
		}

		render.JSON(w, assetViews)
	}
}

func assetHandler(assetStore core.IAssetStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			AssetID string `json:"asset_id"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		asset, err := assetStore.Find(r.Context(), params.AssetID)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		if asset == nil {
			render.NotFoundRequest(w, core.ErrAssetNotFound)
			return
		}

		render.JSON(w, views.NewAsset(asset))
	}
}
