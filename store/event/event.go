package event

import (
	"context"

	"github.com/fox-one/pkg/store/db"

	"github.com/burrowHQ/burrowland-sub002/core"
)

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update()

		if err := tx.Model(core.Event{}).AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.IEventStore {
	return &eventStore{db: db}
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, events ...*core.Event) error {
	for _, e := range events {
		if err := tx.Update().Create(e).Error; err != nil {
			return err
		}
	}

	return nil
}

func (s *eventStore) List(ctx context.Context, fromID int64, limit int) ([]*core.Event, error) {
	var events []*core.Event
	if err := s.db.View().
		Where("id > ?", fromID).
		Order("id").
		Limit(limit).
		Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
