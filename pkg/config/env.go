package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"
	EnvAutoMigrate       = "AUTO_MIGRATE"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvJWTSecretKey = "JWT_SECRET_KEY"
	EnvTokenTTL     = "TOKEN_TTL"
	EnvCookieSecure = "COOKIE_SECURE"

	EnvCORSAllowedOrigins = "CORS_ALLOWED_ORIGINS"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"
	EnvMaxUploadSize  = "MAX_UPLOAD_SIZE"
	EnvMaxUploadFiles = "MAX_UPLOAD_FILES"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvUploadDir    = "UPLOAD_DIR"
	EnvFetchTimeout = "FETCH_TIMEOUT"

	EnvS3Bucket          = "S3_BUCKET"
	EnvS3Region          = "S3_REGION"
	EnvS3Endpoint        = "S3_ENDPOINT"
	EnvS3AccessKeyID     = "S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "S3_SECRET_ACCESS_KEY"
	EnvS3PublicBaseURL   = "S3_PUBLIC_BASE_URL"

	EnvKafkaEventsTopic = "KAFKA_EVENTS_TOPIC"

	EnvDefaultPhoneRegion = "DEFAULT_PHONE_REGION"
)
