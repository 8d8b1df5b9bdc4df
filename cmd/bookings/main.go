package main

import (
	"resbook/internal/bookings/events"
	"resbook/internal/bookings/handler"
	"resbook/internal/bookings/repository"
	"resbook/internal/bookings/service"
	"resbook/internal/bookings/validator"
	resourcesrepo "resbook/internal/resources/repository"
	resourcesservice "resbook/internal/resources/service"
	"resbook/pkg/app"
	"resbook/pkg/config"
	"resbook/pkg/kafka"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()

	cfg.Log.Info("Starting Bookings service")

	publisher, producer := initPublisher(cfg)
	if producer != nil {
		defer producer.Close()
	}

	bookingService := initServices(cfg, publisher)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(cfg, bookingService),
		handler.NewHealthHandler(cfg),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher events.EventPublisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log, cfg.MinBookingDuration, cfg.MaxBookingDuration)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	catalog := resourcesservice.NewResourceService(cfg, resourcesrepo.NewMongoResourceRepository(cfg))

	bookingService := service.NewBookingService(
		cfg,
		bookingRepo,
		catalog,
		bookingValidator,
		service.NewSystemClock(),
		publisher,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}

func initPublisher(cfg *config.Config) (events.EventPublisher, *kafka.Producer) {
	if cfg.EventsDisabled || len(cfg.KafkaBrokers) == 0 {
		cfg.Log.Warn("Event publishing disabled, booking events will be dropped")
		return events.NopEventPublisher{}, nil
	}

	producer, err := kafka.NewProducer(kafka.ProducerOptions{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaTopic,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}

	cfg.Log.Info("Event publisher initialized", "topic", cfg.KafkaTopic)
	return events.NewKafkaEventPublisher(producer, cfg.Log, cfg.WriteTimeout), producer
}
