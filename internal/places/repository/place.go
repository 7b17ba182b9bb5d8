package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	placeserrors "staynest/internal/places/errors"
	"staynest/pkg/config"
	mongodb "staynest/pkg/db/mongo"
	"staynest/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Places"
)

type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id string) (*model.Place, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Place, error)
	FindByOwner(ctx context.Context, ownerID string) ([]*model.Place, error)
	FindAll(ctx context.Context) ([]*model.Place, error)
	Update(ctx context.Context, place *model.Place) error
}

type mongoPlaceRepository struct {
	collection   *mongo.Collection
	readTimeout  time.Duration
	writeTimeout time.Duration
}

func NewMongoPlaceRepository(cfg *config.Config) PlaceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return NewPlaceRepository(db, cfg.DBReadTimeout, cfg.DBWriteTimeout)
}

func NewPlaceRepository(db *mongo.Database, readTimeout, writeTimeout time.Duration) PlaceRepository {
	return &mongoPlaceRepository{
		collection:   db.Collection(CollectionName),
		readTimeout:  readTimeout,
		writeTimeout: writeTimeout,
	}
}

func (r *mongoPlaceRepository) Create(ctx context.Context, place *model.Place) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	place.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, place)
	if err != nil {
		return fmt.Errorf("failed to create place: %w", err)
	}

	place.ID = mongodb.InsertedHex(result.InsertedID)
	return nil
}

func (r *mongoPlaceRepository) FindByID(ctx context.Context, id string) (*model.Place, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	objectID, err := mongodb.ObjectID(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", placeserrors.ErrInvalidID, id)
	}

	var place model.Place
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&place); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, placeserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find place: %w", err)
	}

	return &place, nil
}

// FindByIDs ignores malformed and unknown ids; order is not guaranteed.
func (r *mongoPlaceRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Place, error) {
	objectIDs := mongodb.ObjectIDs(ids)
	if len(objectIDs) == 0 {
		return []*model.Place{}, nil
	}
	return r.find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
}

func (r *mongoPlaceRepository) FindByOwner(ctx context.Context, ownerID string) ([]*model.Place, error) {
	return r.find(ctx, bson.M{"owner": ownerID})
}

func (r *mongoPlaceRepository) FindAll(ctx context.Context) ([]*model.Place, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoPlaceRepository) find(ctx context.Context, filter bson.M) ([]*model.Place, error) {
	ctx, cancel := mongodb.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find places: %w", err)
	}
	defer cursor.Close(ctx)

	places := []*model.Place{}
	if err = cursor.All(ctx, &places); err != nil {
		return nil, fmt.Errorf("failed to decode places: %w", err)
	}

	return places, nil
}

// Update replaces the editable fields. The owner is not part of the update,
// so it stays what it was at creation.
func (r *mongoPlaceRepository) Update(ctx context.Context, place *model.Place) error {
	ctx, cancel := mongodb.WithTimeout(ctx, r.writeTimeout)
	defer cancel()

	objectID, err := mongodb.ObjectID(place.ID)
	if err != nil {
		return fmt.Errorf("%w: %s", placeserrors.ErrInvalidID, place.ID)
	}

	update := bson.M{
		"$set": bson.M{
			"title":       place.Title,
			"address":     place.Address,
			"photos":      place.Photos,
			"description": place.Description,
			"perks":       place.Perks,
			"extraInfo":   place.ExtraInfo,
			"checkIn":     place.CheckIn,
			"checkOut":    place.CheckOut,
			"maxGuests":   place.MaxGuests,
			"price":       place.Price,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update place: %w", err)
	}

	if result.MatchedCount == 0 {
		return placeserrors.ErrNotFound
	}

	return nil
}
