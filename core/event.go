package core

import (
	"context"
	"encoding/json"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
)

// event names, one JSON object per event in the append-only log
const (
	EventDeposit            = "deposit"
	EventWithdrawStarted    = "withdraw_started"
	EventWithdrawSucceeded  = "withdraw_succeeded"
	EventWithdrawFailed     = "withdraw_failed"
	EventIncreaseCollateral = "increase_collateral"
	EventDecreaseCollateral = "decrease_collateral"
	EventBorrow             = "borrow"
	EventRepay              = "repay"
	EventMarginOpen         = "open_margin"
	EventMarginClose        = "close_margin"
	EventLostFound          = "lostfound"
)

// Event one append-only log record. Order within a batch follows
// sub-operation order.
type Event struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	BatchID   int64          `sql:"index:event_batch_idx" json:"batch_id,omitempty"`
	Name      string         `sql:"size:36" json:"name"`
	Data      types.JSONText `sql:"type:TEXT" json:"data"`
}

// EventPayload the common payload of balance-changing events.
type EventPayload struct {
	AccountID string      `json:"account_id"`
	Amount    sdkmath.Int `json:"amount"`
	TokenID   string      `json:"token_id"`
	Position  string      `json:"position,omitempty"`
}

// LostFoundPayload payload of the reconciliation lostfound event.
type LostFoundPayload struct {
	User   string      `json:"user"`
	Token  string      `json:"token"`
	Amount sdkmath.Int `json:"amount"`
	Locked bool        `json:"locked"`
}

// NewEvent builds an event record from any payload.
func NewEvent(batchID int64, name string, payload interface{}) *Event {
	data, _ := json.Marshal(payload)
	return &Event{
		BatchID: batchID,
		Name:    name,
		Data:    data,
	}
}

// IEventStore event store interface
type IEventStore interface {
	Create(ctx context.Context, tx *db.DB, events ...*Event) error
	List(ctx context.Context, fromID int64, limit int) ([]*Event, error)
}
