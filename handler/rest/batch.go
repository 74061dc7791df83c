package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/handler/render"
	"github.com/burrowHQ/burrowland-sub002/pkg/id"
)

type batchRequest struct {
	TraceID   string              `json:"trace_id"`
	AccountID string              `json:"account_id"`
	Message   *core.BatchMessage  `json:"message"`
	Snapshot  *core.PriceSnapshot `json:"snapshot"`
}

// createBatchHandler queues an action batch; the executor applies it
// asynchronously and strictly in order.
func createBatchHandler(batchStore core.IBatchStore, priceOracle PriceOracle) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			render.BadRequest(w, err)
			return
		}

		if req.AccountID == "" || req.Message == nil {
			render.BadRequest(w, errors.New("account_id and message are required"))
			return
		}

		if req.TraceID == "" {
			req.TraceID = id.GenTraceID()
		}

		message, err := core.MarshalBatchMessage(req.Message)
		if err != nil {
			render.BadRequest(w, err)
			return
		}

		batch := &core.Batch{
			TraceID:   req.TraceID,
			AccountID: req.AccountID,
			Message:   message,
			Status:    core.BatchStatusPending,
		}

		snapshot := req.Snapshot
		if snapshot == nil && priceOracle != nil {
			snapshot, err = priceOracle.PullPriceSnapshot(r.Context(), time.Now())
			if err != nil {
				render.BadRequest(w, err)
				return
			}
		}

		if snapshot != nil {
			data, err := json.Marshal(snapshot)
			if err != nil {
				render.BadRequest(w, err)
				return
			}
			batch.Snapshot = data
		}

		if err := batchStore.Create(r.Context(), batch); err != nil {
			render.BadRequest(w, err)
			return
		}

		render.JSON(w, render.H{"trace_id": batch.TraceID})
	}
}
