package oracle

import (
	"context"
	"fmt"
	"time"

	"github.com/fox-one/pkg/logger"

	"github.com/burrowHQ/burrowland-sub002/core"
	"github.com/burrowHQ/burrowland-sub002/pkg/resthttp"
)

// PriceService pulls oracle price snapshots over rest. The snapshot travels
// with the batch; validation happens in the risk service.
type PriceService struct {
	cfg core.OracleConfig
}

// New new oracle price service
func New(cfg core.OracleConfig) *PriceService {
	return &PriceService{cfg: cfg}
}

// PullPriceSnapshot pull the snapshot observed at t
func (s *PriceService) PullPriceSnapshot(ctx context.Context, t time.Time) (*core.PriceSnapshot, error) {
	url := fmt.Sprintf("%s/api/prices?ts=%d", s.cfg.EndPoint, t.UTC().Unix())
	logger.FromContext(ctx).Debugln("pull prices:", url)

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var snapshot core.PriceSnapshot
	if err := resthttp.ParseResponse(resp, &snapshot); err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// PullPrice pull one token's price
func (s *PriceService) PullPrice(ctx context.Context, tokenID string, t time.Time) (*core.AssetPrice, error) {
	url := fmt.Sprintf("%s/api/prices/%s?ts=%d", s.cfg.EndPoint, tokenID, t.UTC().Unix())

	resp, err := resthttp.Request(ctx).Get(url)
	if err != nil {
		return nil, err
	}

	var price core.AssetPrice
	if err := resthttp.ParseResponse(resp, &price); err != nil {
		return nil, err
	}

	return &price, nil
}
