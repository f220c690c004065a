// Package cargo keeps a running tally of the ship's hold.
package cargo

import (
	"context"
	"sort"
	"sync"

	"github.com/journal-relay/backend/internal/event"
	"github.com/rs/zerolog"
)

// Name is the observer name the monitor registers under.
const Name = "cargo"

// Item is one stack in the hold. Stolen goods are tracked apart from legal
// goods of the same commodity.
type Item struct {
	Commodity string `json:"commodity"`
	Amount    int64  `json:"amount"`
	Stolen    bool   `json:"stolen,omitempty"`
	Price     int64  `json:"price,omitempty"`
}

type key struct {
	commodity string
	stolen    bool
}

// Monitor tracks cargo from trade events. A full inventory listing
// replaces the tally; individual purchases, sales and pickups adjust it in
// between. Limpets are not cargo here because the journal does not report
// launching them.
type Monitor struct {
	log zerolog.Logger

	mu    sync.RWMutex
	items map[key]*Item
}

func NewMonitor(logger zerolog.Logger) *Monitor {
	return &Monitor{
		log:   logger.With().Str("component", "cargo").Logger(),
		items: make(map[key]*Item),
	}
}

func (m *Monitor) Name() string { return Name }

// PreHandle updates the tally. It runs before responders, so they see the
// hold as of the event.
func (m *Monitor) PreHandle(ev event.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch e := ev.(type) {
	case event.CargoInventory:
		m.items = make(map[key]*Item, len(e.Inventory))
		for _, it := range e.Inventory {
			m.add(it.Commodity, false, it.Amount, 0)
		}
	case event.CommodityPurchased:
		m.add(e.Commodity, false, e.Amount, e.Price)
	case event.CommodityCollected:
		m.add(e.Commodity, e.Stolen, 1, 0)
	case event.CommodityRefined:
		m.add(e.Commodity, false, 1, 0)
	case event.CommoditySold:
		m.remove(e.Commodity, e.Stolen, e.Amount)
	case event.CommodityEjected:
		m.remove(e.Commodity, false, e.Amount)
	}
	return nil
}

func (m *Monitor) PostHandle(context.Context, event.Event) error { return nil }

func (m *Monitor) add(commodity string, stolen bool, amount, price int64) {
	if commodity == "" || amount <= 0 {
		return
	}
	k := key{commodity, stolen}
	it, ok := m.items[k]
	if !ok {
		m.items[k] = &Item{Commodity: commodity, Amount: amount, Stolen: stolen, Price: price}
		return
	}
	if price > 0 {
		// Weighted average cost basis.
		it.Price = (it.Price*it.Amount + price*amount) / (it.Amount + amount)
	}
	it.Amount += amount
}

// remove takes amount from the matching stack, falling back to the other
// legality when the journal and the tally disagree about which was sold.
func (m *Monitor) remove(commodity string, stolen bool, amount int64) {
	for _, k := range []key{{commodity, stolen}, {commodity, !stolen}} {
		it, ok := m.items[k]
		if !ok {
			continue
		}
		if it.Amount > amount {
			it.Amount -= amount
			return
		}
		amount -= it.Amount
		delete(m.items, k)
		if amount == 0 {
			return
		}
	}
	if amount > 0 {
		m.log.Debug().Str("commodity", commodity).Int64("missing", amount).Msg("Removed more cargo than tracked")
	}
}

// Inventory returns the hold sorted by commodity, legal stacks first.
func (m *Monitor) Inventory() []Item {
	m.mu.RLock()
	out := make([]Item, 0, len(m.items))
	for _, it := range m.items {
		out = append(out, *it)
	}
	m.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].Commodity != out[j].Commodity {
			return out[i].Commodity < out[j].Commodity
		}
		return !out[i].Stolen && out[j].Stolen
	})
	return out
}

// Total is the number of units in the hold.
func (m *Monitor) Total() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var n int64
	for _, it := range m.items {
		n += it.Amount
	}
	return n
}
