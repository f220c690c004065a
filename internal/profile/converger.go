package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/metrics"
	"github.com/journal-relay/backend/internal/session"
	"github.com/rs/zerolog"
)

const (
	DefaultAttempts      = 6
	DefaultInterval      = 15 * time.Second
	DefaultFallbackDelay = 2 * time.Second
)

var (
	errStationMoved   = errors.New("commander is no longer at the station")
	errSourceNotReady = errors.New("profile source became unavailable")
	errNotConverged   = errors.New("profile has not caught up with the journal")
)

// State is the part of the session controller the loop reads and updates.
type State interface {
	CurrentStationName() string
	CurrentSystemName() string
	MergeMarket(required string, m session.MarketData, at time.Time) bool
	ApplyProfile(p session.Profile)
}

// Dispatcher receives the market notifications the loop produces.
type Dispatcher interface {
	Dispatch(ev event.Event)
}

// Options tunes the loop. Zero values take the defaults.
type Options struct {
	Attempts      uint
	Interval      time.Duration
	FallbackDelay time.Duration
}

// Converger polls the profile source after docking until it reports the
// station the journal says the commander docked at.
type Converger struct {
	log    zerolog.Logger
	source Source
	state  State
	opts   Options
	now    func() time.Time

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	out    Dispatcher
	closed bool
}

func NewConverger(logger zerolog.Logger, source Source, state State, opts Options) *Converger {
	if opts.Attempts == 0 {
		opts.Attempts = DefaultAttempts
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.FallbackDelay <= 0 {
		opts.FallbackDelay = DefaultFallbackDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Converger{
		log:    logger.With().Str("component", "profile").Logger(),
		source: source,
		state:  state,
		opts:   opts,
		now:    time.Now,
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetDispatcher installs the sink for market notifications. Until it is
// set, notifications are dropped.
func (c *Converger) SetDispatcher(d Dispatcher) {
	c.mu.Lock()
	c.out = d
	c.mu.Unlock()
}

func (c *Converger) emit(reason string) {
	c.mu.RLock()
	out := c.out
	c.mu.RUnlock()
	if out == nil {
		return
	}
	out.Dispatch(event.MarketInformationUpdated{
		Header: event.NewHeader(c.now(), ""),
		Reason: reason,
	})
}

// RefreshStation is called by the session controller after a genuine
// docking. It never blocks.
func (c *Converger) RefreshStation(name string) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	if c.source.Ready() {
		go func() {
			defer c.wg.Done()
			c.Converge(c.ctx, name)
		}()
		return
	}
	go func() {
		defer c.wg.Done()
		timer := time.NewTimer(c.opts.FallbackDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
			metrics.RecordConvergence(metrics.ConvergenceFallback)
			c.emit(event.MarketReasonFallback)
		case <-c.ctx.Done():
		}
	}()
}

// Converge retries until the profile reports required, the commander
// leaves required, or the attempts run out. It reports whether station data
// was merged.
func (c *Converger) Converge(ctx context.Context, required string) bool {
	log := c.log.With().Str("station", required).Logger()
	attempt := 0

	op := func() (struct{}, error) {
		if c.state.CurrentStationName() != required {
			return struct{}{}, backoff.Permanent(errStationMoved)
		}
		if !c.source.Ready() {
			return struct{}{}, backoff.Permanent(errSourceNotReady)
		}
		attempt++
		snap, err := c.source.FetchStation(ctx, c.state.CurrentSystemName())
		if err != nil {
			log.Debug().Err(err).Int("attempt", attempt).Msg("Profile fetch failed")
			return struct{}{}, fmt.Errorf("fetching station: %w", err)
		}
		if snap.Name != required {
			log.Debug().Str("profile_station", snap.Name).Int("attempt", attempt).Msg("Profile not converged")
			return struct{}{}, errNotConverged
		}
		if !c.state.MergeMarket(required, snap.market(), c.now()) {
			return struct{}{}, backoff.Permanent(errStationMoved)
		}
		return struct{}{}, nil
	}

	_, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewConstantBackOff(c.opts.Interval)),
		backoff.WithMaxTries(c.opts.Attempts),
	)
	switch {
	case err == nil:
		log.Info().Int("attempts", attempt).Msg("Station data refreshed from profile")
		metrics.RecordConvergence(metrics.ConvergenceMerged)
		c.emit(event.MarketReasonProfile)
		return true
	case errors.Is(err, errStationMoved), errors.Is(err, errSourceNotReady),
		errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		log.Debug().Err(err).Int("attempts", attempt).Msg("Abandoning station refresh")
		metrics.RecordConvergence(metrics.ConvergenceAbandoned)
	default:
		log.Info().Err(err).Int("attempts", attempt).Msg("Profile never caught up with docking; giving up")
		metrics.RecordConvergence(metrics.ConvergenceExhausted)
	}
	return false
}

// RefreshProfile pulls commander details from the source and applies them.
// It does nothing when the source is not ready.
func (c *Converger) RefreshProfile(ctx context.Context) error {
	if !c.source.Ready() {
		return nil
	}
	snap, err := c.source.FetchProfile(ctx)
	if err != nil {
		return fmt.Errorf("fetching profile: %w", err)
	}
	c.state.ApplyProfile(snap.sessionProfile())
	return nil
}

// RefreshCommander is called by the session controller after undocking. It
// refreshes the commander profile in the background and never blocks.
func (c *Converger) RefreshCommander() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.wg.Add(1)
	c.mu.Unlock()

	go func() {
		defer c.wg.Done()
		if err := c.RefreshProfile(c.ctx); err != nil {
			c.log.Debug().Err(err).Msg("Profile refresh after undocking failed")
		}
	}()
}

// Close cancels outstanding loops and waits for them to return.
func (c *Converger) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
	c.wg.Wait()
}
