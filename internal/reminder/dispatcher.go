package reminder

import (
	"context"
	"time"

	"leadbot_backend/platform/logger"
)

// Dispatcher enqueues a sweep task on a fixed interval. Splitting enqueue
// from execution keeps sweeps on the worker's queue, where retries and
// concurrency limits apply.
type Dispatcher struct {
	client   *Client
	interval time.Duration
	log      *logger.Logger
}

func NewDispatcher(client *Client, interval time.Duration, log *logger.Logger) *Dispatcher {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Dispatcher{
		client:   client,
		interval: interval,
		log:      log,
	}
}

func (d *Dispatcher) Run(ctx context.Context) {
	if d == nil || d.client == nil {
		return
	}

	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if err := d.client.EnqueueSweep(ctx, SweepPayload{}); err != nil {
			d.log.Warn("sweep enqueue failed", "error", err)
		}
	}
}
