package burrow

import (
	"context"

	"github.com/burrowHQ/burrowland-sub002/core"
)

type interestService struct{}

// NewInterestService accrual service over the two-slope curve
func NewInterestService() core.IInterestService {
	return &interestService{}
}

func (s *interestService) Accrue(ctx context.Context, asset *core.Asset, nowNanos uint64) error {
	Accrue(asset, nowNanos)
	return nil
}
