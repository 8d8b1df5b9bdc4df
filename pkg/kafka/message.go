package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is the broker-agnostic view of an event on the wire. The key is
// the partition key (booking id) so that events for one booking stay
// ordered.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Timestamp time.Time
}

const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// NewMessage JSON-encodes the payload and stamps event id, type, and
// source headers.
func NewMessage(key string, payload any, eventType, source string) (Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return Message{}, err
	}

	now := time.Now().UTC()
	return Message{
		Key:   key,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: eventType,
			HeaderSource:    source,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
		Timestamp: now,
	}, nil
}

// DecodeValue unmarshals the message payload into v.
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

func (m *Message) GetHeader(key string) (string, bool) {
	value, ok := m.Headers[key]
	return value, ok
}

func (m *Message) GetEventType() string {
	return m.Headers[HeaderEventType]
}

// MessageHandler processes one consumed message. A nil return commits the
// offset; an error leaves it for redelivery.
type MessageHandler func(ctx context.Context, msg Message) error
