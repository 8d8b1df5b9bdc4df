// Package events publishes booking lifecycle events to the broker.
// Publishing is best-effort: a broker outage degrades notifications, it
// never fails the booking operation that triggered the event.
package events

import (
	"context"
	"time"

	"resbook/pkg/kafka"
	"resbook/pkg/logger"
	"resbook/pkg/model"

	"github.com/google/uuid"
)

const source = "bookings"

type EventPublisher interface {
	BookingCreated(ctx context.Context, booking *model.Booking)
	BookingCanceled(ctx context.Context, booking *model.Booking)
}

type kafkaEventPublisher struct {
	producer *kafka.Producer
	logger   *logger.Logger
	timeout  time.Duration
}

func NewKafkaEventPublisher(producer *kafka.Producer, log *logger.Logger, timeout time.Duration) EventPublisher {
	return &kafkaEventPublisher{
		producer: producer,
		logger:   log,
		timeout:  timeout,
	}
}

func (p *kafkaEventPublisher) BookingCreated(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, model.EventBookingCreated, booking)
}

func (p *kafkaEventPublisher) BookingCanceled(ctx context.Context, booking *model.Booking) {
	p.publish(ctx, model.EventBookingCanceled, booking)
}

func (p *kafkaEventPublisher) publish(ctx context.Context, eventType model.EventType, booking *model.Booking) {
	event := model.BookingEvent{
		EventID:    uuid.New().String(),
		Type:       eventType,
		BookingID:  booking.ID,
		ResourceID: booking.ResourceID,
		OwnerID:    booking.OwnerID,
		Window:     booking.Window,
		OccurredAt: time.Now().UTC(),
	}

	msg, err := kafka.NewMessage(booking.ID, event, string(eventType), source)
	if err != nil {
		p.logger.Error("Failed to encode booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"error", err,
		)
		return
	}

	// Detach from the request context so a handler timeout does not cut
	// the publish short, but still bound the attempt.
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.timeout)
	defer cancel()

	if err := p.producer.Publish(publishCtx, msg); err != nil {
		p.logger.Error("Failed to publish booking event",
			"event_type", eventType,
			"booking_id", booking.ID,
			"resource_id", booking.ResourceID,
			"error", err,
		)
		return
	}

	p.logger.Debug("Published booking event",
		"event_type", eventType,
		"booking_id", booking.ID,
	)
}

// NopEventPublisher drops all events. Used when events are disabled by
// configuration and as the default in tests.
type NopEventPublisher struct{}

func (NopEventPublisher) BookingCreated(context.Context, *model.Booking)  {}
func (NopEventPublisher) BookingCanceled(context.Context, *model.Booking) {}
