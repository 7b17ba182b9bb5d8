package main

import (
	"context"
	"time"

	auditrepository "staynest/internal/audit/repository"
	bookingshandler "staynest/internal/bookings/handler"
	bookingsrepository "staynest/internal/bookings/repository"
	bookingsservice "staynest/internal/bookings/service"
	bookingsvalidator "staynest/internal/bookings/validator"
	mediahandler "staynest/internal/media/handler"
	mediaservice "staynest/internal/media/service"
	"staynest/internal/media/storage"
	mongoMigration "staynest/internal/migrations/mongo"
	placeshandler "staynest/internal/places/handler"
	placesrepository "staynest/internal/places/repository"
	placesservice "staynest/internal/places/service"
	placesvalidator "staynest/internal/places/validator"
	systemhandler "staynest/internal/system/handler"
	usershandler "staynest/internal/users/handler"
	usersrepository "staynest/internal/users/repository"
	usersservice "staynest/internal/users/service"
	usersvalidator "staynest/internal/users/validator"
	"staynest/pkg/app"
	"staynest/pkg/auth"
	"staynest/pkg/config"
	"staynest/pkg/contracts"
	"staynest/pkg/events"
	httputil "staynest/pkg/http"
	"staynest/pkg/kafka"
	kafkamiddleware "staynest/pkg/kafka/middleware"
	"staynest/pkg/middleware"
)

const (
	ServiceName      = "staynest-api"
	migrationTimeout = 120 * time.Second
)

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Staynest API")

	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	if cfg.AutoMigrate {
		migrate(cfg)
	}

	publisher := initPublisher(cfg)
	handlers := initHandlers(cfg, publisher)

	serverApp := app.NewApplication()
	serverApp.SetApp(cfg, systemhandler.NewHealthHandler(cfg.Client, cfg.Log), handlers...)
	serverApp.OnShutdown(publisher)
	serverApp.Run()
}

func migrate(cfg *config.Config) {
	ctx, cancel := context.WithTimeout(context.Background(), migrationTimeout)
	defer cancel()

	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	if err := mongoMigration.RunMigration(ctx, db, cfg.Log); err != nil {
		cfg.Log.Fatal("Migration failed", "error", err)
	}
}

// initPublisher returns a no-op publisher when Kafka is not configured.
func initPublisher(cfg *config.Config) events.Publisher {
	if cfg.Kafka == nil {
		cfg.Log.Info("Kafka not configured, domain events disabled")
		return events.Noop{}
	}

	producer, err := kafka.NewProducer(cfg.Kafka, cfg.KafkaEventsTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if cfg.Kafka.EnableMiddleware {
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
	}

	cfg.Log.Info("Domain events enabled", "topic", cfg.KafkaEventsTopic)
	return events.NewKafkaPublisher(producer, cfg.Kafka.PublishTimeout, cfg.Log)
}

func initHandlers(cfg *config.Config, publisher events.Publisher) []contracts.Handler {
	tokens := auth.NewTokenIssuer(cfg.JWTSecretKey, cfg.TokenTTL)
	session := middleware.NewSession(tokens, cfg.Log)
	cookies := httputil.CookieOptions{Secure: cfg.CookieSecure, MaxAge: cfg.TokenTTL}

	userService := usersservice.NewUserService(
		usersrepository.NewMongoUserRepository(cfg),
		usersvalidator.NewUserValidator(cfg.Log),
		tokens,
		publisher,
		cfg,
	)

	placeRepo := placesrepository.NewMongoPlaceRepository(cfg)
	placeService := placesservice.NewPlaceService(
		placeRepo,
		auditrepository.NewMongoAuditRepository(cfg),
		placesvalidator.NewPlaceValidator(cfg.Log),
		publisher,
		cfg,
	)

	bookingService := bookingsservice.NewBookingService(
		bookingsrepository.NewMongoBookingRepository(cfg),
		placeRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		publisher,
		cfg,
	)

	store, localFiles := initStorage(cfg)
	mediaService, err := mediaservice.NewMediaService(
		store,
		mediaservice.NewRemoteFetcher(cfg.FetchTimeout, int64(cfg.MaxUploadSize)),
		cfg,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize media service", "error", err)
	}

	cfg.Log.Info("Services initialized", "database", cfg.MongoDatabaseName)

	return []contracts.Handler{
		systemhandler.NewPingHandler(cfg.Log),
		usershandler.NewUserHandler(userService, session, cookies, cfg.Log),
		placeshandler.NewPlaceHandler(placeService, session, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, session, cfg.Log),
		mediahandler.NewMediaHandler(mediaService, localFiles, cfg.Log),
	}
}

// initStorage picks S3 when a bucket is configured. The returned
// LocalStorage is nil in that case, so no file route is registered.
func initStorage(cfg *config.Config) (storage.Storage, *storage.LocalStorage) {
	if cfg.UsesS3() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.MongoConnTimeout)
		defer cancel()

		s3Store, err := storage.NewS3Storage(ctx, storage.S3Config{
			Bucket:          cfg.S3Bucket,
			Region:          cfg.S3Region,
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			PublicBaseURL:   cfg.S3PublicBaseURL,
		})
		if err != nil {
			cfg.Log.Fatal("Failed to initialize S3 storage", "error", err)
		}
		cfg.Log.Info("Media storage: S3", "bucket", cfg.S3Bucket)
		return s3Store, nil
	}

	local, err := storage.NewLocalStorage(cfg.UploadDir)
	if err != nil {
		cfg.Log.Fatal("Failed to initialize local storage", "error", err)
	}
	cfg.Log.Info("Media storage: local", "dir", local.Dir())
	return local, local
}
