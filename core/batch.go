package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jmoiron/sqlx/types"
)

// BatchStatus batch status
type BatchStatus int

const (
	// BatchStatusPending not yet processed
	BatchStatusPending BatchStatus = iota
	// BatchStatusDone applied and persisted
	BatchStatusDone
	// BatchStatusRejected aborted atomically, no state change
	BatchStatusRejected
)

// Batch one action batch queued against one account with one price snapshot.
// Batches for the same account are processed strictly sequentially.
type Batch struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	TraceID   string         `sql:"size:36;unique_index:batch_trace_idx" json:"trace_id"`
	AccountID string         `sql:"size:64;index:batch_account_idx" json:"account_id"`
	Message   types.JSONText `sql:"type:TEXT" json:"message"`
	Snapshot  types.JSONText `sql:"type:TEXT" json:"snapshot"`
	Status    BatchStatus    `sql:"default:0" json:"status"`
	ErrorCode int            `sql:"default:0" json:"error_code"`
}

// IBatchStore batch store interface
type IBatchStore interface {
	Create(ctx context.Context, batch *Batch) error
	List(ctx context.Context, fromID int64, limit int) ([]*Batch, error)
	UpdateStatus(ctx context.Context, tx *db.DB, id int64, status BatchStatus, errCode int) error
}
