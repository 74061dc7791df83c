package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"

	"github.com/burrowHQ/burrowland-sub002/core"
)

// Cache wraps the store with a small read-through TTL cache. Intended for
// the read-only API surface; the executor always reads through to the db.
func Cache(store core.IAssetStore, exp time.Duration) core.IAssetStore {
	return &cacheAssetStore{
		IAssetStore: store,
		cache:       gcache.New(256).LRU().Build(),
		sf:          &singleflight.Group{},
		exp:         exp,
	}
}

type cacheAssetStore struct {
	core.IAssetStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

func (s *cacheAssetStore) Find(ctx context.Context, tokenID string) (*core.Asset, error) {
	key := s.assetKey(tokenID)
	if v, err := s.cache.Get(key); err == nil {
		if asset, ok := v.(*core.Asset); ok {
			return asset, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		asset, err := s.IAssetStore.Find(ctx, tokenID)
		if err != nil {
			return nil, err
		}
		if asset != nil {
			_ = s.cache.SetWithExpire(key, asset, s.exp)
		}
		return asset, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.Asset), nil
}

func (s *cacheAssetStore) assetKey(tokenID string) string {
	return fmt.Sprintf("asset:token:%s", tokenID)
}
