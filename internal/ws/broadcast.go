package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/journal-relay/backend/internal/dispatch"
	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/session"
	"github.com/rs/zerolog"
)

// FeedName is the responder name the broadcaster registers under.
const FeedName = "feed"

// ErrTooManyConnections is returned by AddClient when the connection limit
// has been reached.
var ErrTooManyConnections = errors.New("too many websocket connections")

// StateSource supplies session snapshots.
type StateSource interface {
	Snapshot() session.State
}

type client struct {
	conn *websocket.Conn
	b    *Broadcaster
	send chan []byte
}

func (c *client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.b.RemoveClient(c)
			return
		}
	}
}

// Broadcaster fans session snapshots and dispatched events out to websocket
// clients. It is registered as a responder, so it only sees events that
// changed session state.
type Broadcaster struct {
	log      zerolog.Logger
	mu       sync.RWMutex
	clients  map[*client]bool
	state    StateSource
	privacy  *session.PrivacyFilter
	maxConns int

	snapshotTicker *time.Ticker
	done           chan struct{}
	stopOnce       sync.Once
}

// NewBroadcaster starts the periodic snapshot loop. maxConns <= 0 means no
// limit. privacy may be nil.
func NewBroadcaster(logger zerolog.Logger, state StateSource, privacy *session.PrivacyFilter, snapshotInterval time.Duration, maxConns int) *Broadcaster {
	if privacy == nil {
		privacy = &session.PrivacyFilter{}
	}
	if snapshotInterval <= 0 {
		snapshotInterval = 5 * time.Second
	}
	b := &Broadcaster{
		log:            logger.With().Str("component", "ws").Logger(),
		clients:        make(map[*client]bool),
		state:          state,
		privacy:        privacy,
		maxConns:       maxConns,
		snapshotTicker: time.NewTicker(snapshotInterval),
		done:           make(chan struct{}),
	}
	go b.snapshotLoop()
	return b
}

func (b *Broadcaster) Name() string { return FeedName }

// Handle broadcasts ev to every client.
func (b *Broadcaster) Handle(ctx context.Context, ev event.Event) error {
	b.broadcast(WSMessage{
		Type: MsgEvent,
		Payload: EventPayload{
			DispatchID: dispatch.DispatchID(ctx),
			Kind:       ev.Kind(),
			Timestamp:  ev.Timestamp(),
			Event:      ev,
		},
	})
	return nil
}

// Snapshot is the session state as clients are allowed to see it.
func (b *Broadcaster) Snapshot() session.State {
	s := b.state.Snapshot()
	if b.privacy.IsNoop() {
		return s
	}
	return b.privacy.Apply(s)
}

func (b *Broadcaster) AddClient(conn *websocket.Conn) (*client, error) {
	c := &client{
		conn: conn,
		b:    b,
		send: make(chan []byte, 64),
	}

	b.mu.Lock()
	if b.maxConns > 0 && len(b.clients) >= b.maxConns {
		b.mu.Unlock()
		return nil, ErrTooManyConnections
	}
	b.clients[c] = true
	b.mu.Unlock()

	go c.writePump()

	data, err := json.Marshal(WSMessage{Type: MsgSnapshot, Payload: SnapshotPayload{State: b.Snapshot()}})
	if err != nil {
		b.log.Error().Err(err).Msg("Failed to marshal snapshot")
		return c, nil
	}
	b.mu.RLock()
	if b.clients[c] {
		select {
		case c.send <- data:
		default:
			// Client too slow, drop the snapshot
		}
	}
	b.mu.RUnlock()
	return c, nil
}

func (b *Broadcaster) RemoveClient(c *client) {
	b.mu.Lock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.send)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) snapshotLoop() {
	for {
		select {
		case <-b.done:
			return
		case <-b.snapshotTicker.C:
			if b.ClientCount() == 0 {
				continue
			}
			b.broadcast(WSMessage{Type: MsgSnapshot, Payload: SnapshotPayload{State: b.Snapshot()}})
		}
	}
}

func (b *Broadcaster) broadcast(msg WSMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		b.log.Error().Err(err).Str("type", string(msg.Type)).Msg("Broadcast marshal error")
		return
	}

	// Sends happen under the read lock so RemoveClient cannot close a
	// channel mid-send.
	var slow []*client
	b.mu.RLock()
	for c := range b.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	b.mu.RUnlock()

	for _, c := range slow {
		b.log.Warn().Msg("WebSocket client too slow, disconnecting")
		b.RemoveClient(c)
	}
}

func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Stop ends the snapshot loop and disconnects every client.
func (b *Broadcaster) Stop() {
	b.stopOnce.Do(func() {
		b.snapshotTicker.Stop()
		close(b.done)
		b.mu.Lock()
		for c := range b.clients {
			delete(b.clients, c)
			close(c.send)
		}
		b.mu.Unlock()
	})
}
