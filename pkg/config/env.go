package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvMinBookingDuration = "MIN_BOOKING_DURATION"
	EnvMaxBookingDuration = "MAX_BOOKING_DURATION"
	EnvLockTTL            = "BOOKING_LOCK_TTL"

	EnvKafkaBrokers   = "KAFKA_BROKERS"
	EnvKafkaTopic     = "KAFKA_BOOKING_EVENTS_TOPIC"
	EnvKafkaGroupID   = "KAFKA_CONSUMER_GROUP_ID"
	EnvEventsDisabled = "BOOKING_EVENTS_DISABLED"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout  = "REQUEST_TIMEOUT"
	EnvMaxRequestSize  = "MAX_REQUEST_SIZE"
	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"
)
