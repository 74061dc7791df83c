package rest

import (
	"net/http"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/render"
)

func systemHandler(system *core.System) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, render.H{
			"genesis":  system.Genesis,
			"location": system.Location,
			"version":  system.Version,
			"risk":     system.Risk,
			"margin":   system.Margin,
		})
	}
}
