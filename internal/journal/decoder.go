package journal

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/metrics"
	"github.com/rs/zerolog"
	"github.com/tidwall/gjson"
)

var (
	errMalformed = errors.New("malformed record")
	errTimestamp = errors.New("unparseable timestamp")
)

// StateView is the read-only slice of session state the decoder consults to
// filter redundant records. Implementations must be safe for concurrent use.
type StateView interface {
	CombatRank() (rank int, known bool)
	InShip() bool
}

// Scheduler accepts follow-on events that fire after a delay.
type Scheduler interface {
	Schedule(d event.Delayed)
}

// Decoder turns journal lines into typed events. It is safe for use by a
// single line source; SetFileName may be called from the same goroutine
// between lines.
type Decoder struct {
	log       zerolog.Logger
	state     StateView
	scheduler Scheduler
	rules     map[string]rule
	now       func() time.Time

	mu       sync.Mutex
	fileName string
}

// NewDecoder builds a decoder. state and scheduler may be nil, in which case
// no state-dependent filtering happens and no follow-on events are scheduled.
func NewDecoder(logger zerolog.Logger, state StateView, scheduler Scheduler) *Decoder {
	return &Decoder{
		log:       logger.With().Str("component", "decoder").Logger(),
		state:     state,
		scheduler: scheduler,
		rules:     buildRules(),
		now:       time.Now,
	}
}

// SetFileName records the journal file currently being read; it is reported
// by the next file header.
func (d *Decoder) SetFileName(name string) {
	d.mu.Lock()
	d.fileName = name
	d.mu.Unlock()
}

func (d *Decoder) currentFileName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.fileName
}

// Decode returns the events carried by one journal line. Malformed lines,
// unknown record types and filtered records all yield an empty result.
func (d *Decoder) Decode(line string) (events []event.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Str("line", line).Msg("Panic while decoding line")
			metrics.RecordLine(metrics.LineFailed)
			events = nil
		}
	}()

	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}

	events, delayed, err := d.decode(line)
	if err != nil {
		d.log.Warn().Err(err).Str("line", line).Msg("Failed to decode line")
		metrics.RecordLine(metrics.LineFailed)
		return nil
	}
	if events == nil {
		return nil
	}
	metrics.RecordLine(metrics.LineDecoded)

	if d.scheduler != nil {
		for _, de := range delayed {
			d.scheduler.Schedule(de)
		}
	}
	return events
}

func (d *Decoder) decode(line string) ([]event.Event, []event.Delayed, error) {
	if !gjson.Valid(line) {
		return nil, nil, errMalformed
	}
	obj := gjson.Parse(line)
	if !obj.IsObject() {
		return nil, nil, errMalformed
	}

	name := obj.Get("event")
	if name.Type != gjson.String || name.Str == "" {
		d.log.Warn().Str("line", line).Msg("Record without event field")
		metrics.RecordLine(metrics.LineSkipped)
		return nil, nil, nil
	}

	at, err := d.timestamp(obj)
	if err != nil {
		return nil, nil, err
	}

	fn, ok := d.rules[name.Str]
	if !ok {
		d.log.Debug().Str("event", name.Str).Msg("Unhandled event")
		metrics.RecordLine(metrics.LineUnhandled)
		return nil, nil, nil
	}

	rec := &record{fields: newFields(obj), line: line, at: at, d: d}
	events := fn(rec)
	if err := rec.Err(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", name.Str, err)
	}
	if len(events) == 0 {
		metrics.RecordLine(metrics.LineSkipped)
		return nil, nil, nil
	}
	return events, rec.delayed, nil
}

func (d *Decoder) timestamp(obj gjson.Result) (time.Time, error) {
	v := obj.Get("timestamp")
	if !present(v) {
		d.log.Warn().Msg("Event without timestamp; using current time")
		return d.now().UTC(), nil
	}
	if v.Type != gjson.String {
		return time.Time{}, errTimestamp
	}
	at, err := time.Parse(time.RFC3339, v.Str)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", errTimestamp, err)
	}
	return at.UTC(), nil
}

// record is the per-line decoding context handed to rules.
type record struct {
	*fields
	line    string
	at      time.Time
	d       *Decoder
	delayed []event.Delayed
}

func (r *record) header() event.Header {
	return event.NewHeader(r.at, r.line)
}

func (r *record) schedule(origin event.Event, delay time.Duration, rebuild func(at event.Place) event.Event) {
	r.delayed = append(r.delayed, event.Delayed{Origin: origin, Delay: delay, Rebuild: rebuild})
}

// one wraps a single event; most rules produce exactly one.
func one(ev event.Event) []event.Event {
	return []event.Event{ev}
}

type rule func(r *record) []event.Event

func buildRules() map[string]rule {
	rules := make(map[string]rule, 160)
	for _, group := range []map[string]rule{
		navigationRules(),
		commanderRules(),
		combatRules(),
		commsRules(),
		crewRules(),
		shipRules(),
		tradeRules(),
		missionRules(),
		miscRules(),
	} {
		for name, fn := range group {
			rules[name] = fn
		}
	}
	return rules
}

// cleanCommanderName strips the journal's commander name decoration.
func cleanCommanderName(name string) string {
	name = strings.ReplaceAll(name, "$cmdr_decorate:#name=", "Commander ")
	name = strings.ReplaceAll(name, ";", "")
	return strings.ReplaceAll(name, "&", "Commander ")
}

// crewRole maps journal role identifiers to spoken names.
func crewRole(role string) string {
	switch role {
	case "FireCon":
		return "Gunner"
	case "FighterCon":
		return "Fighter"
	}
	return role
}

// superpowerFaction normalizes the superpower names the journal uses as
// faction identifiers.
func superpowerFaction(name string) string {
	switch name {
	case "$faction_Federation;", "Federation":
		return "Federation"
	case "$faction_Empire;", "Empire":
		return "Empire"
	case "$faction_Alliance;", "Alliance":
		return "Alliance"
	case "$faction_Independent;", "Independent":
		return "Independent"
	case "$faction_none;", "$faction_None;":
		return ""
	}
	return name
}
