package farm

import (
	"context"

	"github.com/fox-one/pkg/logger"

	"github.com/burrowHQ/burrowland-sub002/core"
)

type notifier struct{}

// NewNotifier new farm notifier. Reward bookkeeping runs in a separate
// system; this end only reports which buckets went dirty.
func NewNotifier() core.FarmNotifier {
	return &notifier{}
}

func (n *notifier) NotifyAffectedFarms(ctx context.Context, accountID string, farms []core.FarmID) error {
	log := logger.FromContext(ctx).WithField("account", accountID)

	for _, farm := range farms {
		log.Debugf("farm affected: %s/%s", farm.Kind, farm.TokenID)
	}

	return nil
}
