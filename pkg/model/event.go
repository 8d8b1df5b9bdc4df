package model

import "time"

type EventType string

const (
	EventBookingCreated  EventType = "booking.created"
	EventBookingCanceled EventType = "booking.canceled"
)

// BookingEvent is the payload published after a successful create or
// cancel. Consumers (the notifier worker) must treat delivery as
// best-effort: the booking operation never fails because of the broker.
type BookingEvent struct {
	EventID    string     `json:"event_id"`
	Type       EventType  `json:"type"`
	BookingID  string     `json:"booking_id"`
	ResourceID string     `json:"resource_id"`
	OwnerID    string     `json:"owner_id"`
	Window     TimeWindow `json:"window"`
	OccurredAt time.Time  `json:"occurred_at"`
}
