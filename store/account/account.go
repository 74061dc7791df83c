package account

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/jmoiron/sqlx/types"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Row account row, the ledger body kept as JSON
type Row struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AccountID string         `sql:"size:64;unique_index:account_id_idx" json:"account_id"`
	IsLocked  bool           `sql:"default:0" json:"is_locked"`
	Data      types.JSONText `sql:"type:TEXT" json:"data"`
	Version   int64          `sql:"default:0" json:"version"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "accounts"
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Row{})
		if err := tx.AutoMigrate(Row{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type accountStore struct {
	db *db.DB
}

// New new account store
func New(db *db.DB) core.IAccountStore {
	return &accountStore{db: db}
}

func (s *accountStore) Save(ctx context.Context, tx *db.DB, account *core.Account) error {
	data, err := json.Marshal(account)
	if err != nil {
		return err
	}

	updates := tx.Update().Model(Row{}).
		Where("account_id = ?", account.AccountID).
		Updates(map[string]interface{}{
			"data":      types.JSONText(data),
			"is_locked": account.IsLocked,
			"version":   gorm.Expr("version + 1"),
		})
	if updates.Error != nil {
		return updates.Error
	}

	if updates.RowsAffected == 0 {
		row := &Row{
			AccountID: account.AccountID,
			IsLocked:  account.IsLocked,
			Data:      data,
			Version:   1,
		}
		return tx.Update().Create(row).Error
	}

	return nil
}

func (s *accountStore) Find(ctx context.Context, accountID string) (*core.Account, error) {
	var row Row
	if err := s.db.View().Where("account_id = ?", accountID).First(&row).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	var account core.Account
	if err := json.Unmarshal(row.Data, &account); err != nil {
		return nil, err
	}

	return &account, nil
}

func (s *accountStore) Delete(ctx context.Context, tx *db.DB, accountID string) error {
	return tx.Update().Where("account_id = ?", accountID).Delete(Row{}).Error
}
