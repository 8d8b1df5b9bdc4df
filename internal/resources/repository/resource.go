package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	resourceserrors "resbook/internal/resources/errors"
	"resbook/pkg/config"
	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "Resources"

// ResourceRepository is the read-side of the catalog plus the seeding
// hook used by the migration tool. Resources are administered out of
// band; the booking flow only ever reads them.
type ResourceRepository interface {
	FindActiveByID(ctx context.Context, id string) (*model.Resource, error)
	Upsert(ctx context.Context, resource *model.Resource) error
}

type mongoResourceRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoResourceRepository(cfg *config.Config) ResourceRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoResourceRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

// FindActiveByID resolves an id to a resource only when that resource is
// active; deactivated and unknown ids are indistinguishable to callers.
func (r *mongoResourceRepository) FindActiveByID(ctx context.Context, id string) (*model.Resource, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	if id == "" {
		return nil, resourceserrors.ErrInvalidID
	}

	var resource model.Resource
	err := r.collection.FindOne(ctx, bson.M{"_id": id, "is_active": true}).Decode(&resource)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, resourceserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resource: %w", err)
	}
	return &resource, nil
}

func (r *mongoResourceRepository) Upsert(ctx context.Context, resource *model.Resource) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if resource.CreatedAt.IsZero() {
		resource.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	}

	update := bson.M{
		"$set": bson.M{
			"name":      resource.Name,
			"is_active": resource.IsActive,
		},
		"$setOnInsert": bson.M{
			"created_at": resource.CreatedAt,
		},
	}
	opts := options.Update().SetUpsert(true)

	_, err := r.collection.UpdateOne(ctx, bson.M{"_id": resource.ID}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to upsert resource: %w", err)
	}
	return nil
}
