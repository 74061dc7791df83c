package transfer

import (
	"context"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/fox-one/pkg/store/db"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Row transfer row. The amount is persisted as a decimal string because the
// sql driver has no mapping for the wide integer type.
type Row struct {
	ID        int64               `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time           `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	TraceID   string              `sql:"size:36;unique_index:transfer_trace_idx" json:"trace_id"`
	AccountID string              `sql:"size:64;index:transfer_account_idx" json:"account_id"`
	TokenID   string              `sql:"size:64" json:"token_id"`
	Amount    string              `sql:"size:40" json:"amount"`
	Memo      string              `sql:"size:140" json:"memo"`
	Status    core.TransferStatus `sql:"default:0" json:"status"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "transfers"
}

// LostAndFoundRow lost-and-found row, amount stored as a decimal string.
type LostAndFoundRow struct {
	ID        int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	AccountID string    `sql:"size:64" json:"account_id"`
	TokenID   string    `sql:"size:64" json:"token_id"`
	Amount    string    `sql:"size:40" json:"amount"`
	Locked    bool      `json:"locked"`
}

// TableName gorm table name
func (LostAndFoundRow) TableName() string {
	return "lostandfounds"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()

		if err := tx.Model(Row{}).AutoMigrate(Row{}).Error; err != nil {
			return err
		}

		if err := tx.Model(core.TransferResult{}).AutoMigrate(core.TransferResult{}).Error; err != nil {
			return err
		}

		if err := tx.Model(LostAndFoundRow{}).AutoMigrate(LostAndFoundRow{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type transferStore struct {
	db *db.DB
}

// New new transfer store
func New(db *db.DB) core.ITransferStore {
	return &transferStore{db: db}
}

func (s *transferStore) Create(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	row := toRow(transfer)
	if err := tx.Update().Where("trace_id = ?", transfer.TraceID).FirstOrCreate(row).Error; err != nil {
		return err
	}

	transfer.ID = row.ID
	transfer.CreatedAt = row.CreatedAt
	return nil
}

func (s *transferStore) Update(ctx context.Context, tx *db.DB, transfer *core.Transfer) error {
	return tx.Update().Model(Row{}).
		Where("id = ?", transfer.ID).
		Updates(map[string]interface{}{
			"status": transfer.Status,
		}).Error
}

func (s *transferStore) ListByStatus(ctx context.Context, status core.TransferStatus, limit int) ([]*core.Transfer, error) {
	var rows []*Row
	if err := s.db.View().
		Where("status = ?", status).
		Order("id").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	transfers := make([]*core.Transfer, 0, len(rows))
	for _, row := range rows {
		transfer, err := fromRow(row)
		if err != nil {
			return nil, err
		}
		transfers = append(transfers, transfer)
	}

	return transfers, nil
}

func (s *transferStore) PutResult(ctx context.Context, result *core.TransferResult) error {
	return s.db.Update().Create(result).Error
}

func (s *transferStore) Results(ctx context.Context, transferID int64) ([]*core.TransferResult, error) {
	var results []*core.TransferResult
	if err := s.db.View().
		Where("transfer_id = ?", transferID).
		Order("id").
		Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (s *transferStore) CreateLostAndFound(ctx context.Context, tx *db.DB, rec *core.LostAndFound) error {
	row := &LostAndFoundRow{
		AccountID: rec.AccountID,
		TokenID:   rec.TokenID,
		Amount:    rec.Amount.String(),
		Locked:    rec.Locked,
	}
	return tx.Update().Create(row).Error
}

func toRow(transfer *core.Transfer) *Row {
	return &Row{
		ID:        transfer.ID,
		CreatedAt: transfer.CreatedAt,
		TraceID:   transfer.TraceID,
		AccountID: transfer.AccountID,
		TokenID:   transfer.TokenID,
		Amount:    transfer.Amount.String(),
		Memo:      transfer.Memo,
		Status:    transfer.Status,
	}
}

func fromRow(row *Row) (*core.Transfer, error) {
	amount, ok := sdkmath.NewIntFromString(row.Amount)
	if !ok {
		return nil, fmt.Errorf("transfer %d: malformed amount %q", row.ID, row.Amount)
	}

	return &core.Transfer{
		ID:        row.ID,
		CreatedAt: row.CreatedAt,
		TraceID:   row.TraceID,
		AccountID: row.AccountID,
		TokenID:   row.TokenID,
		Amount:    amount,
		Memo:      row.Memo,
		Status:    row.Status,
	}, nil
}
