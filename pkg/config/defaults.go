package config

import "time"

const (
	DefaultMongoDatabaseName = "staynest"
	DefaultMongoConnTimeout  = 10 * time.Second
	DefaultAutoMigrate       = true

	DefaultPort = "4000"

	DefaultTokenTTL     = 7 * 24 * time.Hour
	MinJWTSecretBytes   = 16
	DefaultCookieSecure = false

	DefaultRequestTimeout = 60 * time.Second
	DefaultMaxRequestSize = 1 * 1024 * 1024   // 1MB
	DefaultMaxUploadSize  = 100 * 1024 * 1024 // 100MB
	DefaultMaxUploadFiles = 100

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 75 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultUploadDir    = "./uploads"
	DefaultFetchTimeout = 30 * time.Second

	DefaultS3Region = "us-east-1"

	DefaultKafkaEventsTopic = "staynest.events"

	DefaultPhoneRegion = "US"

	// Per-operation Mongo deadlines. The request context still bounds them.
	DefaultDBReadTimeout  = 10 * time.Second
	DefaultDBWriteTimeout = 10 * time.Second
)
