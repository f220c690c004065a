// Package supervise keeps long-running tasks alive across failures, up to a
// fixed number of starts.
package supervise

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/journal-relay/backend/internal/metrics"
	"github.com/rs/zerolog"
)

const (
	DefaultMaxStarts = 5
	DefaultGrace     = 5 * time.Second
)

// ErrAbandoned is returned by Shutdown when some tasks did not return within
// the grace period.
var ErrAbandoned = errors.New("supervised tasks abandoned")

// Status is a point-in-time view of one supervised task.
type Status struct {
	Name      string `json:"name"`
	Starts    int    `json:"starts"`
	Running   bool   `json:"running"`
	Stopped   bool   `json:"stopped"`
	LastError string `json:"lastError,omitempty"`
}

type task struct {
	starts  int
	running bool
	stopped bool
	lastErr string
	done    chan struct{}
}

// Supervisor runs each entry point on its own goroutine and starts it again
// when it returns, for as long as the supervisor is running.
type Supervisor struct {
	log       zerolog.Logger
	maxStarts int
	grace     time.Duration

	ctx     context.Context
	cancel  context.CancelFunc
	running atomic.Bool

	mu    sync.Mutex
	tasks map[string]*task
}

func New(logger zerolog.Logger, maxStarts int, grace time.Duration) *Supervisor {
	if maxStarts <= 0 {
		maxStarts = DefaultMaxStarts
	}
	if grace <= 0 {
		grace = DefaultGrace
	}
	ctx, cancel := context.WithCancel(context.Background())
	s := &Supervisor{
		log:       logger.With().Str("component", "supervisor").Logger(),
		maxStarts: maxStarts,
		grace:     grace,
		ctx:       ctx,
		cancel:    cancel,
		tasks:     make(map[string]*task),
	}
	s.running.Store(true)
	return s
}

// Supervise starts entry under name. Names must be unique; a second call
// with a live name is ignored. It is a no-op after Shutdown.
func (s *Supervisor) Supervise(name string, entry func(ctx context.Context) error) {
	if !s.running.Load() {
		return
	}
	s.mu.Lock()
	if t, ok := s.tasks[name]; ok && !t.stopped {
		s.mu.Unlock()
		s.log.Warn().Str("task", name).Msg("Task already supervised")
		return
	}
	t := &task{done: make(chan struct{})}
	s.tasks[name] = t
	s.mu.Unlock()

	go s.loop(name, t, entry)
}

func (s *Supervisor) loop(name string, t *task, entry func(ctx context.Context) error) {
	defer close(t.done)
	log := s.log.With().Str("task", name).Logger()

	for s.running.Load() {
		s.mu.Lock()
		t.starts++
		t.running = true
		starts := t.starts
		s.mu.Unlock()

		if starts > 1 {
			metrics.RecordRestart(name)
			log.Info().Int("start", starts).Msg("Restarting task")
		}

		err := s.run(entry)

		s.mu.Lock()
		t.running = false
		if err != nil {
			t.lastErr = err.Error()
		}
		s.mu.Unlock()

		if !s.running.Load() {
			break
		}
		if err != nil {
			log.Error().Err(err).Int("start", starts).Msg("Task failed")
		} else {
			log.Warn().Int("start", starts).Msg("Task returned unexpectedly")
		}
		if starts >= s.maxStarts {
			log.Warn().Int("starts", starts).Msg("Task keeps failing; giving up")
			break
		}
	}

	s.mu.Lock()
	t.stopped = true
	s.mu.Unlock()
}

func (s *Supervisor) run(entry func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return entry(s.ctx)
}

// Shutdown stops restarts, cancels every task and waits up to the grace
// period, or until ctx is done, for them to return. Tasks still running
// after that are named in the returned ErrAbandoned.
func (s *Supervisor) Shutdown(ctx context.Context) error {
	s.running.Store(false)
	s.cancel()

	ctx, cancel := context.WithTimeout(ctx, s.grace)
	defer cancel()

	s.mu.Lock()
	waiting := make(map[string]*task, len(s.tasks))
	for name, t := range s.tasks {
		waiting[name] = t
	}
	s.mu.Unlock()

	var abandoned []string
	for name, t := range waiting {
		select {
		case <-t.done:
		case <-ctx.Done():
			// The deadline may have passed while waiting on another task.
			select {
			case <-t.done:
			default:
				abandoned = append(abandoned, name)
			}
		}
	}
	if len(abandoned) == 0 {
		return nil
	}
	sort.Strings(abandoned)
	s.log.Warn().Strs("tasks", abandoned).Msg("Abandoning tasks that did not stop in time")
	return fmt.Errorf("%w: %s", ErrAbandoned, strings.Join(abandoned, ", "))
}

// Status reports the named task.
func (s *Supervisor) Status(name string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tasks[name]
	if !ok {
		return Status{}, false
	}
	return t.status(name), true
}

// Statuses reports every task, sorted by name.
func (s *Supervisor) Statuses() []Status {
	s.mu.Lock()
	out := make([]Status, 0, len(s.tasks))
	for name, t := range s.tasks {
		out = append(out, t.status(name))
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (t *task) status(name string) Status {
	return Status{
		Name:      name,
		Starts:    t.starts,
		Running:   t.running,
		Stopped:   t.stopped,
		LastError: t.lastErr,
	}
}
