package batch

import (
	"context"

	"github.com/fox-one/pkg/store/db"

	"github.com/burrowHQ/burrowland-sub002/core"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Batch{})
		if err := tx.AutoMigrate(core.Batch{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type batchStore struct {
	db *db.DB
}

// New new batch store
func New(db *db.DB) core.IBatchStore {
	return &batchStore{db: db}
}

func (s *batchStore) Create(ctx context.Context, batch *core.Batch) error {
	tx := s.db.Update().Where("trace_id = ?", batch.TraceID).FirstOrCreate(batch)
	return tx.Error
}

func (s *batchStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Batch, error) {
	var batches []*core.Batch
	if err := s.db.View().
		Where("id > ? AND status = ?", fromID, core.BatchStatusPending).
		Order("id").
		Limit(limit).
		Find(&batches).Error; err != nil {
		return nil, err
	}

	return batches, nil
}

func (s *batchStore) UpdateStatus(ctx context.Context, tx *db.DB, id int64, status core.BatchStatus, errCode int) error {
	return tx.Update().Model(core.Batch{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"error_code": errCode,
		}).Error
}
