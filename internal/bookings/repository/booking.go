package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "resbook/internal/bookings/errors"
	"resbook/internal/bookings/query"
	"resbook/pkg/config"
	mongotx "resbook/pkg/db/mongo"
	"resbook/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Bookings"
)

// BookingRepository is the conflict-safe booking store. CreateIfNoConflict
// is the only operation needing atomicity stronger than read-then-write:
// its contract is that of two concurrent conflicting creates for the same
// resource, at most one ever becomes active — the loser gets ErrConflict
// (or ErrLockUnavailable when it could not even enter the critical
// section).
type BookingRepository interface {
	CreateIfNoConflict(ctx context.Context, booking *model.Booking) error
	HasActiveOverlap(ctx context.Context, resourceID string, window model.TimeWindow) (bool, error)
	FindByID(ctx context.Context, id string) (*model.Booking, error)
	UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error)
	Query(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error)
	Count(ctx context.Context, filter model.BookingFilter) (int64, error)
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
	lockRepo   BookingLockRepository
	txManager  mongotx.TransactionManager
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
		lockRepo:   NewMongoBookingLockRepository(cfg),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo),
	}
}

// withTimeout wraps the context with a timeout unless already inside a
// transaction; a SessionContext cannot be wrapped without breaking
// transaction semantics.
func (r *mongoBookingRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if _, ok := ctx.(mongo.SessionContext); ok {
		return ctx, func() {}
	}

	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline {
		if remaining := time.Until(deadline); remaining < timeout {
			return context.WithTimeout(ctx, remaining)
		}
	}
	return context.WithTimeout(ctx, timeout)
}

// CreateIfNoConflict runs the overlap check and the insert as one atomic
// step. The per-resource advisory lock serializes concurrent creates for
// one resource without blocking creates on other resources; the
// transaction keeps the check-then-insert invisible to readers until
// commit. A held lock is reported immediately as ErrLockUnavailable
// rather than waited on.
func (r *mongoBookingRepository) CreateIfNoConflict(ctx context.Context, booking *model.Booking) error {
	lock := &model.BookingLock{
		ID:        lockID(booking.ResourceID),
		ExpiresAt: time.Now().Add(r.cfg.LockTTL),
	}
	if err := r.lockRepo.Acquire(ctx, lock); err != nil {
		return err
	}
	defer func() {
		_ = r.lockRepo.Release(ctx, lock.ID)
	}()

	return r.txManager.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		overlap, err := r.HasActiveOverlap(sessCtx, booking.ResourceID, booking.Window)
		if err != nil {
			return err
		}
		if overlap {
			return bookingserrors.ErrConflict
		}

		now := time.Now().UTC().Truncate(time.Millisecond)
		booking.CreatedAt = now
		booking.ModifiedAt = now

		result, err := r.collection.InsertOne(sessCtx, booking)
		if err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
			booking.ID = oid.Hex()
		}
		return nil
	})
}

func (r *mongoBookingRepository) HasActiveOverlap(ctx context.Context, resourceID string, window model.TimeWindow) (bool, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"resource_id": resourceID,
		"status":      string(model.StatusActive),
		"start_at":    bson.M{"$lt": window.End},
		"end_at":      bson.M{"$gt": window.Start},
	}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check active overlap: %w", err)
	}
	return count > 0, nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var booking model.Booking
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find booking: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"status":      string(status),
			"modified_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var booking model.Booking
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objectID}, update, opts).Decode(&booking)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update booking status: %w", err)
	}
	return &booking, nil
}

func (r *mongoBookingRepository) Query(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(query.SortSpec()).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, query.BuildMongoFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	defer cursor.Close(ctx)

	var bookings []*model.Booking
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode bookings: %w", err)
	}
	return bookings, nil
}

func (r *mongoBookingRepository) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, query.BuildMongoFilter(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}
	return count, nil
}

func lockID(resourceID string) string {
	return "booking_lock_" + resourceID
}
