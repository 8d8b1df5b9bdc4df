package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "resbook"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	// Booking policy bounds. Both are caller-visible: validation errors
	// reference the configured values.
	DefaultMinBookingDuration = 15 * time.Minute
	DefaultMaxBookingDuration = 8 * time.Hour

	// Advisory locks auto-expire so a crashed request cannot wedge a
	// resource.
	DefaultLockTTL = 10 * time.Second

	DefaultKafkaTopic   = "booking.events"
	DefaultKafkaGroupID = "resbook-notifier"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100
)
