// Package material tracks engineering materials and reports counts that
// cross configured limits.
package material

import (
	"context"
	"sort"
	"sync"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

// Name is the observer name the monitor registers under.
const Name = "material"

// Limits are the thresholds watched for one material. A zero limit is not
// watched.
type Limits struct {
	Minimum int64 `yaml:"minimum" json:"minimum,omitempty"`
	Desired int64 `yaml:"desired" json:"desired,omitempty"`
	Maximum int64 `yaml:"maximum" json:"maximum,omitempty"`
}

// Stock is the held amount of one material.
type Stock struct {
	Material string `json:"material"`
	Category string `json:"category,omitempty"`
	Amount   int64  `json:"amount"`
	Limits
}

// Dispatcher receives the threshold events.
type Dispatcher interface {
	Dispatch(ev event.Event)
}

// Monitor tallies materials from the journal. Threshold crossings are
// found while tallying and dispatched as new events from PostHandle, so
// they follow the event that caused them.
type Monitor struct {
	log    zerolog.Logger
	limits map[string]Limits

	mu      sync.RWMutex
	stock   map[string]*Stock
	out     Dispatcher
	pending []event.MaterialThreshold
}

// NewMonitor returns a monitor watching limits, keyed by material name.
func NewMonitor(logger zerolog.Logger, limits map[string]Limits) *Monitor {
	l := make(map[string]Limits, len(limits))
	for k, v := range limits {
		l[k] = v
	}
	return &Monitor{
		log:    logger.With().Str("component", "material").Logger(),
		limits: l,
		stock:  make(map[string]*Stock),
	}
}

// SetDispatcher sets where threshold events go. Without one they are
// logged and dropped.
func (m *Monitor) SetDispatcher(d Dispatcher) {
	m.mu.Lock()
	m.out = d
	m.mu.Unlock()
}

func (m *Monitor) Name() string { return Name }

// PreHandle updates the tally and queues any threshold crossings.
func (m *Monitor) PreHandle(ev event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e := ev.(type) {
	case event.MaterialInventory:
		m.stock = make(map[string]*Stock, len(e.Materials))
		for _, a := range e.Materials {
			if a.Material == "" {
				continue
			}
			m.stock[a.Material] = &Stock{Material: a.Material, Category: a.Category, Amount: a.Amount}
		}
	case event.MaterialCollected:
		m.adjust(e.Header, e.Material, e.Amount)
	case event.MaterialDiscarded:
		m.adjust(e.Header, e.Material, -e.Amount)
	case event.MaterialDonated:
		m.adjust(e.Header, e.Material, -e.Amount)
	case event.ModificationCrafted:
		for _, a := range e.Materials {
			m.adjust(e.Header, a.Material, -a.Amount)
		}
	}
	return nil
}

// PostHandle dispatches the queued threshold events.
func (m *Monitor) PostHandle(ctx context.Context, _ event.Event) error {
	m.mu.Lock()
	pending, out := m.pending, m.out
	m.pending = nil
	m.mu.Unlock()

	for _, ev := range pending {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if out == nil {
			m.log.Debug().Str("material", ev.Material).Str("level", ev.Level).Msg("No dispatcher for threshold event")
			continue
		}
		out.Dispatch(ev)
	}
	return nil
}

func (m *Monitor) adjust(h event.Header, material string, delta int64) {
	if material == "" || delta == 0 {
		return
	}
	s, ok := m.stock[material]
	if !ok {
		s = &Stock{Material: material}
		m.stock[material] = s
	}
	previous := s.Amount
	s.Amount += delta
	if s.Amount < 0 {
		m.log.Debug().Str("material", material).Int64("missing", -s.Amount).Msg("Used more material than tracked")
		s.Amount = 0
	}

	lim, ok := m.limits[material]
	if !ok {
		return
	}
	emit := func(level string, limit int64, change string) {
		m.pending = append(m.pending, event.MaterialThreshold{
			Header:   event.NewHeader(h.Timestamp(), h.Raw()),
			Material: material,
			Level:    level,
			Limit:    limit,
			Amount:   s.Amount,
			Change:   change,
		})
	}
	if s.Amount > previous {
		if lim.Maximum > 0 && previous <= lim.Maximum && s.Amount > lim.Maximum {
			emit(event.ThresholdMaximum, lim.Maximum, event.ChangeIncrease)
		}
		if lim.Desired > 0 && previous < lim.Desired && s.Amount >= lim.Desired {
			emit(event.ThresholdDesired, lim.Desired, event.ChangeIncrease)
		}
		return
	}
	if s.Amount < previous {
		if lim.Minimum > 0 && previous >= lim.Minimum && s.Amount < lim.Minimum {
			emit(event.ThresholdMinimum, lim.Minimum, event.ChangeDecrease)
		}
		if lim.Desired > 0 && previous >= lim.Desired && s.Amount < lim.Desired {
			emit(event.ThresholdDesired, lim.Desired, event.ChangeDecrease)
		}
	}
}

// Inventory returns the held materials sorted by name, with their limits.
func (m *Monitor) Inventory() []Stock {
	m.mu.RLock()
	out := make([]Stock, 0, len(m.stock))
	for name, s := range m.stock {
		st := *s
		st.Limits = m.limits[name]
		out = append(out, st)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Material < out[j].Material })
	return out
}
