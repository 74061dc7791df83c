package worker

import (
	"context"
)

// Worker a background job, runs until the context is cancelled.
type Worker interface {
	Run(ctx context.Context) error
}
