package asset

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/jmoiron/sqlx/types"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Row asset row; the full asset record is kept as JSON so the integer pool
// fields survive any column precision.
type Row struct {
	ID        int64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TokenID   string         `sql:"size:64;unique_index:asset_token_idx" json:"token_id"`
	Data      types.JSONText `sql:"type:TEXT" json:"data"`
	Version   int64          `sql:"default:0" json:"version"`
	CreatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time      `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName gorm table name
func (Row) TableName() string {
	return "assets"
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

type assetStore struct {
	db *db.DB
}

// New new asset store
func New(db *db.DB) core.IAssetStore {
	return &assetStore{db: db}
}

func (s *assetStore) Save(ctx context.Context, tx *db.DB, asset *core.Asset) error {
	data, err := json.Marshal(asset)
	if err != nil {
		return err
	}

	updates := tx.Update().Model(Row{}).
		Where("token_id = ?", asset.TokenID).
		Updates(map[string]interface{}{
			"data":    types.JSONText(data),
			"version": gorm.Expr("version + 1"),
		})
	if updates.Error != nil {
		return updates.Error
	}

	if updates.RowsAffected == 0 {
		row := &Row{
			TokenID: asset.TokenID,
			Data:    data,
			Version: 1,
		}
		return tx.Update().Create(row).Error
	}

	return nil
}

func (s *assetStore) Find(ctx context.Context, tokenID string) (*core.Asset, error) {
	var row Row
	if err := s.db.View().Where("token_id = ?", tokenID).First(&row).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}

	return unmarshalAsset(&row)
}

func (s *assetStore) All(ctx context.Context) ([]*core.Asset, error) {
	var rows []*Row
	if err := s.db.View().Order("token_id").Find(&rows).Error; err != nil {
		return nil, err
	}

	assets := make([]*core.Asset, 0, len(rows))
	for _, row := range rows {
		asset, err := unmarshalAsset(row)
		if err != nil {
			return nil, err
		}
		assets = append(assets, asset)
	}

	return assets, nil
}

func (s *assetStore) AllAsMap(ctx context.Context) (map[string]*core.Asset, error) {
	assets, err := s.All(ctx)
	if err != nil {
		return nil, err
	}

	m := make(map[string]*core.Asset, len(assets))
	for _, a := range assets {
		m[a.TokenID] = a
	}

	return m, nil
}

func unmarshalAsset(row *Row) (*core.Asset, error) {
	var asset core.Asset
	if err := json.Unmarshal(row.Data, &asset); err != nil {
		return nil, err
	}

	return &asset, nil
}
