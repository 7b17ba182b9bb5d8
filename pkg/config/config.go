package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"staynest/pkg/client"
	kafka_config "staynest/pkg/kafka/config"
	"staynest/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration
	AutoMigrate       bool

	Port string

	JWTSecretKey string
	TokenTTL     time.Duration
	CookieSecure bool

	CORSAllowedOrigins []string

	RequestTimeout time.Duration
	MaxRequestSize int
	MaxUploadSize  int
	MaxUploadFiles int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DBReadTimeout  time.Duration
	DBWriteTimeout time.Duration

	UploadDir    string
	FetchTimeout time.Duration

	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicBaseURL   string

	Kafka            *kafka_config.Config
	KafkaEventsTopic string

	DefaultPhoneRegion string

	Log    *logger.Logger
	Client *client.Client
}

var (
	mongoURIRegex   = regexp.MustCompile(`^mongodb(\+srv)?://`)
	credentialRegex = regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
)

// Load reads the environment, exits the process on invalid configuration and
// logs the effective values.
func Load(serviceName string) *Config {
	cfg, err := LoadFromEnv(serviceName)
	if err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

// LoadFromEnv builds the configuration without exiting. The returned Config is
// never nil so the caller can still use its logger to report err.
func LoadFromEnv(serviceName string) (*Config, error) {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, ""),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),
		AutoMigrate:       getEnvBool(EnvAutoMigrate, DefaultAutoMigrate),

		Port: getEnvStr(EnvPort, DefaultPort),

		JWTSecretKey: strings.TrimSpace(os.Getenv(EnvJWTSecretKey)),
		TokenTTL:     getEnvDuration(EnvTokenTTL, DefaultTokenTTL),
		CookieSecure: getEnvBool(EnvCookieSecure, DefaultCookieSecure),

		CORSAllowedOrigins: getEnvList(EnvCORSAllowedOrigins),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		MaxUploadSize:  getEnvNum(EnvMaxUploadSize, DefaultMaxUploadSize),
		MaxUploadFiles: getEnvNum(EnvMaxUploadFiles, DefaultMaxUploadFiles),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DBReadTimeout:  DefaultDBReadTimeout,
		DBWriteTimeout: DefaultDBWriteTimeout,

		UploadDir:    getEnvStr(EnvUploadDir, DefaultUploadDir),
		FetchTimeout: getEnvDuration(EnvFetchTimeout, DefaultFetchTimeout),

		S3Bucket:          getEnvStr(EnvS3Bucket, ""),
		S3Region:          getEnvStr(EnvS3Region, DefaultS3Region),
		S3Endpoint:        getEnvStr(EnvS3Endpoint, ""),
		S3AccessKeyID:     getEnvStr(EnvS3AccessKeyID, ""),
		S3SecretAccessKey: getEnvStr(EnvS3SecretAccessKey, ""),
		S3PublicBaseURL:   getEnvStr(EnvS3PublicBaseURL, ""),

		KafkaEventsTopic: getEnvStr(EnvKafkaEventsTopic, DefaultKafkaEventsTopic),

		DefaultPhoneRegion: strings.ToUpper(getEnvStr(EnvDefaultPhoneRegion, DefaultPhoneRegion)),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, logger.INFO),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	var kafkaErr error
	if os.Getenv(kafka_config.EnvKafkaBrokers) != "" {
		cfg.Kafka, kafkaErr = kafka_config.Load()
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if kafkaErr != nil {
		return cfg, kafkaErr
	}
	return cfg, nil
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// UsesS3 reports whether uploaded media goes to object storage instead of UploadDir.
func (cfg *Config) UsesS3() bool {
	return cfg.S3Bucket != ""
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !mongoURIRegex.MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}
	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.JWTSecretKey == "" {
		errors = append(errors, "JWTSecretKey cannot be empty")
	} else if len(cfg.JWTSecretKey) < MinJWTSecretBytes {
		errors = append(errors, fmt.Sprintf("JWTSecretKey must be at least %d characters", MinJWTSecretBytes))
	}
	if cfg.TokenTTL < 0 {
		errors = append(errors, fmt.Sprintf("TokenTTL cannot be negative, got: %s", cfg.TokenTTL))
	}

	for _, timeout := range []struct {
		name  string
		value time.Duration
	}{
		{"MongoConnTimeout", cfg.MongoConnTimeout},
		{"RequestTimeout", cfg.RequestTimeout},
		{"ReadTimeout", cfg.ReadTimeout},
		{"WriteTimeout", cfg.WriteTimeout},
		{"IdleTimeout", cfg.IdleTimeout},
		{"ShutdownTimeout", cfg.ShutdownTimeout},
		{"FetchTimeout", cfg.FetchTimeout},
	} {
		if timeout.value <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %s", timeout.name, timeout.value))
		}
	}

	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.MaxUploadSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxUploadSize must be positive, got: %d", cfg.MaxUploadSize))
	}
	if cfg.MaxUploadFiles <= 0 {
		errors = append(errors, fmt.Sprintf("MaxUploadFiles must be positive, got: %d", cfg.MaxUploadFiles))
	}

	if cfg.UploadDir == "" {
		errors = append(errors, "UploadDir cannot be empty")
	}
	if cfg.UsesS3() {
		if cfg.S3Region == "" {
			errors = append(errors, "S3Region cannot be empty when S3Bucket is set")
		}
		if (cfg.S3AccessKeyID == "") != (cfg.S3SecretAccessKey == "") {
			errors = append(errors, "S3AccessKeyID and S3SecretAccessKey must be set together")
		}
	}

	if len(cfg.DefaultPhoneRegion) != 2 {
		errors = append(errors, fmt.Sprintf("DefaultPhoneRegion must be a two-letter region code, got: %s", cfg.DefaultPhoneRegion))
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"auto_migrate", cfg.AutoMigrate,
		"port", cfg.Port,
		"jwt_secret_set", cfg.JWTSecretKey != "",
		"token_ttl", cfg.TokenTTL,
		"cookie_secure", cfg.CookieSecure,
		"cors_allowed_origins", cfg.CORSAllowedOrigins,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"max_upload_size", cfg.MaxUploadSize,
		"max_upload_files", cfg.MaxUploadFiles,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"upload_dir", cfg.UploadDir,
		"fetch_timeout", cfg.FetchTimeout,
		"s3_bucket", cfg.S3Bucket,
		"s3_region", cfg.S3Region,
		"s3_endpoint", cfg.S3Endpoint,
		"s3_credentials_set", cfg.S3AccessKeyID != "",
		"kafka_enabled", cfg.Kafka != nil,
		"kafka_events_topic", cfg.KafkaEventsTopic,
		"default_phone_region", cfg.DefaultPhoneRegion,
	)
	if cfg.Kafka != nil {
		cfg.Kafka.LogConfiguration(cfg.Log.Info)
	}
}

func redactMongoURI(uri string) string {
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvList(key string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.ShutdownTimeout)
}
