package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"resbook/pkg/config"
	"resbook/pkg/kafka"
	"resbook/pkg/model"
)

const ServiceName = "notifier"

// The notifier consumes booking lifecycle events and fans them out to
// owners. Delivery targets are logged for now; the consume/commit loop
// and the at-least-once semantics are the part that matters.
func main() {
	cfg := config.Load(ServiceName)

	if len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Fatal("Notifier requires at least one Kafka broker")
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerOptions{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-shutdown
		cfg.Log.Info("Shutdown signal received", "signal", sig)
		cancel()
		_ = consumer.Close()
	}()

	cfg.Log.Info("Notifier started", "topic", cfg.KafkaTopic, "group_id", cfg.KafkaGroupID)
	if err := consumer.Run(ctx, handleEvent(cfg)); err != nil {
		cfg.Log.Fatal("Consumer stopped with error", "error", err)
	}
	cfg.Log.Info("Notifier stopped gracefully")
}

func handleEvent(cfg *config.Config) kafka.MessageHandler {
	return func(_ context.Context, msg kafka.Message) error {
		var event model.BookingEvent
		if err := msg.DecodeValue(&event); err != nil {
			// A payload that cannot decode will never decode; skip it
			// instead of blocking the partition.
			cfg.Log.Error("Discarding undecodable event",
				"key", msg.Key,
				"event_type", msg.GetEventType(),
				"error", err,
			)
			return nil
		}

		switch event.Type {
		case model.EventBookingCreated:
			cfg.Log.Info("Notify owner: booking confirmed",
				"booking_id", event.BookingID,
				"owner_id", event.OwnerID,
				"resource_id", event.ResourceID,
				"start_at", event.Window.Start,
				"end_at", event.Window.End,
			)
		case model.EventBookingCanceled:
			cfg.Log.Info("Notify owner: booking canceled",
				"booking_id", event.BookingID,
				"owner_id", event.OwnerID,
				"resource_id", event.ResourceID,
			)
		default:
			cfg.Log.Warn("Unknown event type", "event_type", event.Type, "key", msg.Key)
		}
		return nil
	}
}
