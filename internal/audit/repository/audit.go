package repository

import (
	"context"
	"fmt"
	"time"

	"staynest/pkg/config"
	mongodb "staynest/pkg/db/mongo"
	"staynest/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Audit_log"
)

// AuditRepository is append-only; entries are never updated.
type AuditRepository interface {
	Log(ctx context.Context, entry *model.AuditEntry) error
	ListByResource(ctx context.Context, resourceType, resourceID string) ([]*model.AuditEntry, error)
}

type mongoAuditRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoAuditRepository(cfg *config.Config) AuditRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewAuditRepository(db, cfg.DBReadTimeout, cfg.DBWriteTimeout)
}

func NewAuditRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) AuditRepository {
	return &mongoAuditRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (r *mongoAuditRepository) Log(ctx context.Context, entry *model.AuditEntry) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}
	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return fmt.Errorf("failed to write audit entry: %w", err)
	}

	entry.ID = mongodb.InsertedHex(result.InsertedID)
	return nil
}

// ListByResource returns the newest entries first.
func (r *mongoAuditRepository) ListByResource(ctx context.Context, resourceType, resourceID string) ([]*model.AuditEntry, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	filter := bson.M{"resource_type": resourceType, "resource_id": resourceID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find audit entries: %w", err)
	}
	defer cursor.Close(ctx)

	entries := []*model.AuditEntry{}
	if err = cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode audit entries: %w", err)
	}

	return entries, nil
}
