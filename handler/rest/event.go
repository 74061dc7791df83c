package rest

import (
	"net/http"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/param"
	"github.com/burrowHQ/burrowland-sub002/handler/render"
)

func eventsHandler(eventStore core.IEventStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Cursor int64 `json:"cursor"`
			Limit  int   `json:"limit"`
		}
		if err := param.Binding(r, &params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Limit <= 0 || params.Limit > 500 {
			params.Limit = 100
		}

		events, err := eventStore.List(r.Context(), params.Cursor, params.Limit)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		cursor := params.Cursor
		if len(events) > 0 {
			cursor = events[len(events)-1].ID
		}

		render.JSON(w, render.H{
			"events": events,
			"cursor": cursor,
		})
	}
}
