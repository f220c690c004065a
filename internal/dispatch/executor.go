package dispatch

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/semaphore"
)

// DefaultConcurrency bounds running observer tasks when no limit is
// configured.
const DefaultConcurrency = 64

// Executor runs observer tasks on their own goroutines, with at most limit
// running at once. Submit never blocks; a task waits for a slot on its own
// goroutine.
type Executor struct {
	log    zerolog.Logger
	sem    *semaphore.Weighted
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewExecutor(logger zerolog.Logger, limit int64) *Executor {
	if limit <= 0 {
		limit = DefaultConcurrency
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Executor{
		log:    logger.With().Str("component", "executor").Logger(),
		sem:    semaphore.NewWeighted(limit),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Submit queues task. The context it receives is cancelled by Close.
func (x *Executor) Submit(task func(ctx context.Context)) {
	x.wg.Add(1)
	go func() {
		defer x.wg.Done()
		if err := x.sem.Acquire(x.ctx, 1); err != nil {
			x.log.Debug().Err(err).Msg("Dropping task queued at shutdown")
			return
		}
		defer x.sem.Release(1)
		task(x.ctx)
	}()
}

// Wait blocks until every submitted task has returned or ctx is done.
func (x *Executor) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		x.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close cancels the task context. Queued tasks are dropped and running ones
// see cancellation.
func (x *Executor) Close() {
	x.cancel()
}
