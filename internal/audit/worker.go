package audit

import (
	"context"
	"log/slog"
	"time"
)

// shutdownFlushTimeout bounds the final flush once the run context is gone.
const shutdownFlushTimeout = 5 * time.Second

// Worker consumes audit events from a channel and persists them in batches.
// A batch is flushed when it reaches the configured size or when the flush
// interval elapses, whichever comes first. Store failures are logged and the
// batch dropped; the worker keeps running.
type Worker struct {
	store     Store
	inbox     <-chan Event
	batchSize int
	interval  time.Duration
	logger    *slog.Logger
	metrics   *Metrics
}

func NewWorker(store Store, inbox <-chan Event, batchSize int, interval time.Duration, logger *slog.Logger, metrics *Metrics) *Worker {
	if batchSize <= 0 {
		batchSize = 1
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Worker{
		store:     store,
		inbox:     inbox,
		batchSize: batchSize,
		interval:  interval,
		logger:    logger,
		metrics:   metrics,
	}
}

// Run blocks until ctx is canceled. Whatever is buffered at shutdown is
// drained and flushed on a fresh context before returning.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	batch := make([]Event, 0, w.batchSize)

	for {
		select {
		case <-ctx.Done():
			w.drain(&batch)
			flushCtx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
			w.flush(flushCtx, &batch)
			cancel()
			return ctx.Err()

		case event := <-w.inbox:
			batch = append(batch, event)
			if len(batch) >= w.batchSize {
				w.flush(ctx, &batch)
			}

		case <-ticker.C:
			w.flush(ctx, &batch)
		}
	}
}

// flush persists and resets the pending batch.
func (w *Worker) flush(ctx context.Context, batch *[]Event) {
	if len(*batch) == 0 {
		return
	}

	start := time.Now()
	err := w.store.Append(ctx, (*batch)...)
	w.metrics.ObserveFlush(len(*batch), time.Since(start))

	if err != nil {
		w.metrics.IncrementDropped("store_error", len(*batch))
		w.logger.Error("audit flush failed, dropping batch",
			"error", err,
			"events", len(*batch),
		)
	}
	*batch = (*batch)[:0]
}

// drain moves events still sitting in the channel into the batch.
func (w *Worker) drain(batch *[]Event) {
	for {
		select {
		case event := <-w.inbox:
			*batch = append(*batch, event)
		default:
			return
		}
	}
}
