package service

import (
	"context"
	"errors"
	"sync"

	bookingserrors "resbook/internal/bookings/errors"
	"resbook/internal/bookings/events"
	"resbook/internal/bookings/policy"
	"resbook/internal/bookings/repository"
	"resbook/internal/bookings/validator"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/model"
	"resbook/pkg/sanitizer"
)

// ResourceCatalog is the read-side view of the resource catalog the
// booking flow needs: existence and active state, nothing else.
type ResourceCatalog interface {
	GetActiveResource(ctx context.Context, resourceID string) (*model.Resource, error)
}

type BookingService interface {
	Create(ctx context.Context, req *model.CreateBookingRequest, principal model.Principal) (*model.Booking, error)
	GetByID(ctx context.Context, id string, principal model.Principal) (*model.Booking, error)
	Cancel(ctx context.Context, id string, principal model.Principal) (*model.Booking, error)
	List(ctx context.Context, filter model.BookingFilter, limit int, offset int64, principal model.Principal) ([]*model.Booking, int64, error)
}

type bookingService struct {
	cfg       *config.Config
	repo      repository.BookingRepository
	catalog   ResourceCatalog
	validator *validator.BookingValidator
	clock     Clock
	publisher events.EventPublisher
}

func NewBookingService(
	cfg *config.Config,
	repo repository.BookingRepository,
	catalog ResourceCatalog,
	bookingValidator *validator.BookingValidator,
	clock Clock,
	publisher events.EventPublisher,
) BookingService {
	return &bookingService{
		cfg:       cfg,
		repo:      repo,
		catalog:   catalog,
		validator: bookingValidator,
		clock:     clock,
		publisher: publisher,
	}
}

// Create validates the request, confirms the resource is bookable, and
// hands the booking to the conflict-safe store. The event publish after a
// successful insert is best-effort and cannot fail the create.
func (s *bookingService) Create(ctx context.Context, req *model.CreateBookingRequest, principal model.Principal) (*model.Booking, error) {
	req.Description = sanitizer.SanitizeDescription(req.Description)

	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	if err := s.validator.ValidateWindow(req.Window(), s.clock.Now()); err != nil {
		if windowErr, ok := validator.AsWindowError(err); ok {
			return nil, apperrors.Validation(windowErr.Message, map[string]any{
				"rule": windowErr.Rule,
			})
		}
		return nil, apperrors.AsAppError(err)
	}

	if _, err := s.catalog.GetActiveResource(ctx, req.ResourceID); err != nil {
		return nil, apperrors.AsAppError(err)
	}

	booking := &model.Booking{
		ResourceID:  req.ResourceID,
		OwnerID:     principal.ID,
		Window:      req.Window(),
		Status:      model.StatusActive,
		Description: req.Description,
	}

	if err := s.repo.CreateIfNoConflict(ctx, booking); err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrConflict):
			return nil, apperrors.Conflict("Booking overlaps an existing active booking for this resource").
				WithDetails(map[string]any{"resource_id": req.ResourceID})
		case errors.Is(err, bookingserrors.ErrLockUnavailable):
			return nil, apperrors.Conflict("Resource is being booked by another request, please retry").
				WithDetails(map[string]any{"resource_id": req.ResourceID})
		default:
			return nil, apperrors.Internal("Failed to create booking", err)
		}
	}

	s.cfg.Log.Info("Booking created",
		"booking_id", booking.ID,
		"resource_id", booking.ResourceID,
		"owner_id", booking.OwnerID,
		"start_at", booking.Window.Start,
		"end_at", booking.Window.End,
	)
	s.publisher.BookingCreated(ctx, booking)

	return booking, nil
}

// GetByID loads the booking and enforces the access policy. An existing
// booking owned by someone else is reported as Forbidden, not NotFound.
func (s *bookingService) GetByID(ctx context.Context, id string, principal model.Principal) (*model.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccess(booking, principal) {
		return nil, apperrors.Forbidden("You do not have access to this booking")
	}
	return booking, nil
}

// Cancel transitions an active booking to canceled. The transition is
// terminal and only allowed before the booking's window has started.
func (s *bookingService) Cancel(ctx context.Context, id string, principal model.Principal) (*model.Booking, error) {
	booking, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanAccess(booking, principal) {
		return nil, apperrors.Forbidden("You do not have access to this booking")
	}

	if booking.Status == model.StatusCanceled {
		return nil, apperrors.AlreadyCanceled(booking.ID)
	}
	if !booking.Window.Start.After(s.clock.Now()) {
		return nil, apperrors.AlreadyStarted(booking.ID)
	}

	canceled, err := s.repo.UpdateStatus(ctx, booking.ID, model.StatusCanceled)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	s.cfg.Log.Info("Booking canceled",
		"booking_id", canceled.ID,
		"resource_id", canceled.ResourceID,
		"canceled_by", principal.ID,
	)
	s.publisher.BookingCanceled(ctx, canceled)

	return canceled, nil
}

// List applies the principal's visibility scope to the filter, then runs
// the count and the page query concurrently.
func (s *bookingService) List(ctx context.Context, filter model.BookingFilter, limit int, offset int64, principal model.Principal) ([]*model.Booking, int64, error) {
	scoped := policy.Scope(filter, principal)
	limit = config.NormalizePaginationLimit(limit)
	offset = config.NormalizeOffset(offset)

	var (
		wg       sync.WaitGroup
		bookings []*model.Booking
		total    int64
		queryErr error
		countErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bookings, queryErr = s.repo.Query(ctx, scoped, limit, offset)
	}()
	go func() {
		defer wg.Done()
		total, countErr = s.repo.Count(ctx, scoped)
	}()
	wg.Wait()

	if queryErr != nil {
		return nil, 0, apperrors.Internal("Failed to list bookings", queryErr)
	}
	if countErr != nil {
		return nil, 0, apperrors.Internal("Failed to count bookings", countErr)
	}

	return bookings, total, nil
}

func (s *bookingService) load(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, bookingserrors.ErrInvalidID):
			return nil, apperrors.InvalidInput("Invalid booking id")
		case errors.Is(err, bookingserrors.ErrNotFound):
			return nil, apperrors.NotFoundWithID("Booking", id)
		default:
			return nil, apperrors.Internal("Failed to load booking", err)
		}
	}
	return booking, nil
}
