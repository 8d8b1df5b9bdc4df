package repository

import (
	"context"
	"sync"
	"time"

	bookingserrors "resbook/internal/bookings/errors"
	"resbook/internal/bookings/query"
	"resbook/pkg/model"

	"github.com/google/uuid"
)

// MemoryBookingRepository implements the conflict-safe store contract
// with a per-resource mutex held across the check-and-insert critical
// section. Creates on different resources never block each other. It is
// the reference implementation of the atomicity strategy and the backing
// store for service and concurrency tests.
type MemoryBookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*model.Booking

	lockMu        sync.Mutex
	resourceLocks map[string]*sync.Mutex
}

func NewMemoryBookingRepository() *MemoryBookingRepository {
	return &MemoryBookingRepository{
		bookings:      make(map[string]*model.Booking),
		resourceLocks: make(map[string]*sync.Mutex),
	}
}

func (r *MemoryBookingRepository) resourceLock(resourceID string) *sync.Mutex {
	r.lockMu.Lock()
	defer r.lockMu.Unlock()

	lock, ok := r.resourceLocks[resourceID]
	if !ok {
		lock = &sync.Mutex{}
		r.resourceLocks[resourceID] = lock
	}
	return lock
}

func (r *MemoryBookingRepository) CreateIfNoConflict(ctx context.Context, booking *model.Booking) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	lock := r.resourceLock(booking.ResourceID)
	lock.Lock()
	defer lock.Unlock()

	overlap, err := r.HasActiveOverlap(ctx, booking.ResourceID, booking.Window)
	if err != nil {
		return err
	}
	if overlap {
		return bookingserrors.ErrConflict
	}

	if booking.ID == "" {
		booking.ID = uuid.New().String()
	}
	now := time.Now().UTC()
	booking.CreatedAt = now
	booking.ModifiedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *booking
	r.bookings[booking.ID] = &stored
	return nil
}

func (r *MemoryBookingRepository) HasActiveOverlap(ctx context.Context, resourceID string, window model.TimeWindow) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, b := range r.bookings {
		if b.ResourceID != resourceID || b.Status != model.StatusActive {
			continue
		}
		if b.Window.Overlaps(window) {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	found := *b
	return &found, nil
}

func (r *MemoryBookingRepository) UpdateStatus(ctx context.Context, id string, status model.BookingStatus) (*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, bookingserrors.ErrNotFound
	}
	b.Status = status
	b.ModifiedAt = time.Now().UTC()
	updated := *b
	return &updated, nil
}

func (r *MemoryBookingRepository) Query(ctx context.Context, filter model.BookingFilter, limit int, offset int64) ([]*model.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var matched []*model.Booking
	for _, b := range r.bookings {
		if query.Matches(b, filter) {
			found := *b
			matched = append(matched, &found)
		}
	}
	r.mu.RUnlock()

	query.SortByStartDesc(matched)
	return query.Page(matched, limit, offset), nil
}

func (r *MemoryBookingRepository) Count(ctx context.Context, filter model.BookingFilter) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, b := range r.bookings {
		if query.Matches(b, filter) {
			count++
		}
	}
	return count, nil
}

var _ BookingRepository = (*MemoryBookingRepository)(nil)
