package core

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"github.com/burrowHQ/burrowland-sub002/pkg/mtg"
)

// TransferStatus transfer status
type TransferStatus int

const (
	// TransferStatusPending debited in contract, not yet dispatched
	TransferStatusPending TransferStatus = iota
	// TransferStatusSubmitted dispatched, awaiting the callback result
	TransferStatusSubmitted
	// TransferStatusSucceeded confirmed delivered
	TransferStatusSucceeded
	// TransferStatusFailed delivery failed, amount pending credit back
	TransferStatusFailed
	// TransferStatusReconciled terminal, reconciler has settled the outcome
	TransferStatusReconciled
)

// Transfer one outbound token transfer triggered by a withdrawal. The account
// is debited pessimistically before dispatch, so between dispatch and the
// callback it is "ahead" of its true external balance.
type Transfer struct {
	ID        int64          `json:"id,omitempty"`
	CreatedAt time.Time      `json:"created_at,omitempty"`
	TraceID   string         `json:"trace_id,omitempty"`
	AccountID string         `json:"account_id,omitempty"`
	TokenID   string         `json:"token_id,omitempty"`
	Amount    sdkmath.Int    `json:"amount,omitempty"`
	Memo      string         `json:"memo,omitempty"`
	Status    TransferStatus `json:"status,omitempty"`
}

// TransferResult exactly one result must be observed per transfer.
type TransferResult struct {
	ID         int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	TransferID int64     `sql:"index:result_transfer_idx" json:"transfer_id,omitempty"`
	Success    bool      `json:"success"`
	Reason     string    `sql:"size:250" json:"reason,omitempty"`
}

// LostAndFound records a failed credit-back whose account no longer exists.
// Recorded rather than raised: the triggering batch has already committed.
type LostAndFound struct {
	ID        int64       `json:"id,omitempty"`
	CreatedAt time.Time   `json:"created_at,omitempty"`
	AccountID string      `json:"account_id,omitempty"`
	TokenID   string      `json:"token_id,omitempty"`
	Amount    sdkmath.Int `json:"amount,omitempty"`
	Locked    bool        `json:"locked"`
}

// TransferMemo the compact memo attached to outbound transfers so the
// receiving side can tie the payment back to its trigger.
type TransferMemo struct {
	Action  string
	TraceID string
}

// MarshalBinary implement encoding.BinaryMarshaler
func (m TransferMemo) MarshalBinary() ([]byte, error) {
	return mtg.Encode(m.Action, m.TraceID)
}

// UnmarshalBinary implement encoding.BinaryUnmarshaler
func (m *TransferMemo) UnmarshalBinary(data []byte) error {
	_, err := mtg.Scan(data, &m.Action, &m.TraceID)
	return err
}

// ITransferStore transfer store interface
type ITransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	Update(ctx context.Context, tx *db.DB, transfer *Transfer) error
	ListByStatus(ctx context.Context, status TransferStatus, limit int) ([]*Transfer, error)
	PutResult(ctx context.Context, result *TransferResult) error
	Results(ctx context.Context, transferID int64) ([]*TransferResult, error)
	CreateLostAndFound(ctx context.Context, tx *db.DB, rec *LostAndFound) error
}

// WalletService dispatches outbound transfers to the token-transfer
// collaborator. The call is opaque and asynchronous; delivery is observed
// later as a TransferResult.
type WalletService interface {
	HandleTransfer(ctx context.Context, transfer *Transfer) error
}
