package ws

import (
	"time"

	"github.com/journal-relay/backend/internal/event"
	"github.com/journal-relay/backend/internal/session"
)

type MessageType string

const (
	MsgSnapshot MessageType = "snapshot"
	MsgEvent    MessageType = "event"
	MsgError    MessageType = "error"
)

type WSMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

type SnapshotPayload struct {
	State session.State `json:"state"`
}

// EventPayload wraps a dispatched event. Events carry their timestamp and
// kind in unexported header fields, so both are repeated here.
type EventPayload struct {
	DispatchID string      `json:"dispatchId,omitempty"`
	Kind       event.Kind  `json:"kind"`
	Timestamp  time.Time   `json:"timestamp"`
	Event      event.Event `json:"event"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
