package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"resbook/internal/bookings/repository"
	"resbook/internal/bookings/validator"
	"resbook/pkg/config"
	apperrors "resbook/pkg/errors"
	"resbook/pkg/logger"
	"resbook/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

type stubCatalog struct {
	active map[string]bool
}

func (c *stubCatalog) GetActiveResource(_ context.Context, resourceID string) (*model.Resource, error) {
	if c.active[resourceID] {
		return &model.Resource{ID: resourceID, Name: "Room " + resourceID, IsActive: true}, nil
	}
	return nil, apperrors.NotFoundWithID("Resource", resourceID)
}

type recordingPublisher struct {
	mu       sync.Mutex
	created  []string
	canceled []string
}

func (p *recordingPublisher) BookingCreated(_ context.Context, b *model.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, b.ID)
}

func (p *recordingPublisher) BookingCanceled(_ context.Context, b *model.Booking) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.canceled = append(p.canceled, b.ID)
}

type fixture struct {
	svc       BookingService
	repo      *repository.MemoryBookingRepository
	clock     *fakeClock
	publisher *recordingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	log := logger.New(logger.Config{Level: logger.LevelError, Output: io.Discard})
	cfg := &config.Config{
		MinBookingDuration: 15 * time.Minute,
		MaxBookingDuration: 8 * time.Hour,
		Log:                log,
	}

	repo := repository.NewMemoryBookingRepository()
	clock := &fakeClock{now: time.Date(2026, time.August, 1, 9, 0, 0, 0, time.UTC)}
	publisher := &recordingPublisher{}
	catalog := &stubCatalog{active: map[string]bool{"room-1": true, "room-2": true}}
	bookingValidator := validator.NewBookingValidator(log, cfg.MinBookingDuration, cfg.MaxBookingDuration)

	return &fixture{
		svc:       NewBookingService(cfg, repo, catalog, bookingValidator, clock, publisher),
		repo:      repo,
		clock:     clock,
		publisher: publisher,
	}
}

func (f *fixture) createRequest(resourceID string, startOffset, duration time.Duration) *model.CreateBookingRequest {
	start := f.clock.now.Add(startOffset)
	return &model.CreateBookingRequest{
		ResourceID: resourceID,
		StartAt:    start,
		EndAt:      start.Add(duration),
	}
}

var (
	alice = model.Principal{ID: "alice", Role: model.RoleStandard}
	bob   = model.Principal{ID: "bob", Role: model.RoleStandard}
	admin = model.Principal{ID: "root", Role: model.RoleAdmin}
)

func TestCreateSuccess(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest("room-1", time.Hour, time.Hour)
	req.Description = "  team   sync\t"

	booking, err := f.svc.Create(context.Background(), req, alice)
	require.NoError(t, err)

	assert.NotEmpty(t, booking.ID)
	assert.Equal(t, "room-1", booking.ResourceID)
	assert.Equal(t, "alice", booking.OwnerID)
	assert.Equal(t, model.StatusActive, booking.Status)
	assert.Equal(t, "team sync", booking.Description)
	assert.Equal(t, []string{booking.ID}, f.publisher.created)
}

func TestCreateWindowRuleViolations(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name     string
		req      *model.CreateBookingRequest
		wantRule string
	}{
		{
			name: "inverted window",
			req: &model.CreateBookingRequest{
				ResourceID: "room-1",
				StartAt:    f.clock.now.Add(2 * time.Hour),
				EndAt:      f.clock.now.Add(time.Hour),
			},
			wantRule: validator.RuleInvertedWindow,
		},
		{
			name:     "starts in the past",
			req:      f.createRequest("room-1", -time.Hour, time.Hour),
			wantRule: validator.RuleNotInFuture,
		},
		{
			name:     "too short",
			req:      f.createRequest("room-1", time.Hour, 10*time.Minute),
			wantRule: validator.RuleTooShort,
		},
		{
			name:     "too long",
			req:      f.createRequest("room-1", time.Hour, 9*time.Hour),
			wantRule: validator.RuleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tt.req, alice)
			require.Error(t, err)
			assert.True(t, apperrors.HasCode(err, apperrors.CodeValidation))

			appErr := apperrors.AsAppError(err)
			assert.Equal(t, tt.wantRule, appErr.Details["rule"])
		})
	}
}

func TestCreateRequiresResourceID(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest("", time.Hour, time.Hour)
	_, err := f.svc.Create(context.Background(), req, alice)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidInput))
}

func TestCreateUnknownResource(t *testing.T) {
	f := newFixture(t)

	req := f.createRequest("room-missing", time.Hour, time.Hour)
	_, err := f.svc.Create(context.Background(), req, alice)

	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
	assert.Empty(t, f.publisher.created)
}

func TestCreateConflict(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	// Overlapping window on the same resource loses.
	overlap := f.createRequest("room-1", 90*time.Minute, time.Hour)
	_, err = f.svc.Create(ctx, overlap, bob)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	// Adjacent window and other resources are fine.
	_, err = f.svc.Create(ctx, f.createRequest("room-1", 2*time.Hour, time.Hour), bob)
	assert.NoError(t, err)
	_, err = f.svc.Create(ctx, f.createRequest("room-2", 90*time.Minute, time.Hour), bob)
	assert.NoError(t, err)
}

func TestGetByIDAccess(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	got, err := f.svc.GetByID(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = f.svc.GetByID(ctx, created.ID, admin)
	assert.NoError(t, err)

	// Existence is not hidden from other users; access is.
	_, err = f.svc.GetByID(ctx, created.ID, bob)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	_, err = f.svc.GetByID(ctx, "missing", alice)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNotFound))
}

func TestCancelByOwner(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, created.ID, alice)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, canceled.Status)
	assert.Equal(t, []string{created.ID}, f.publisher.canceled)
}

func TestCancelByAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	canceled, err := f.svc.Cancel(ctx, created.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCanceled, canceled.Status)
}

func TestCancelForbiddenForOtherUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, bob)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
	assert.Empty(t, f.publisher.canceled)
}

func TestCancelIsTerminal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, alice)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, alice)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyCanceled))
}

func TestCancelAfterStartRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	// The window has begun by the time the cancel arrives.
	f.clock.now = f.clock.now.Add(time.Hour)

	_, err = f.svc.Cancel(ctx, created.ID, alice)
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeAlreadyStarted))
}

func TestCancelFreesWindowForRebooking(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	created, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)

	_, err = f.svc.Cancel(ctx, created.ID, alice)
	require.NoError(t, err)

	rebooked, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), bob)
	require.NoError(t, err)
	assert.Equal(t, "bob", rebooked.OwnerID)
}

func TestListScopesStandardUsersToOwnBookings(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.createRequest("room-1", 3*time.Hour, time.Hour), bob)
	require.NoError(t, err)

	bookings, total, err := f.svc.List(ctx, model.BookingFilter{}, 10, 0, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "alice", bookings[0].OwnerID)

	// An owner filter pointing at someone else is overridden, not honored.
	bookings, total, err = f.svc.List(ctx, model.BookingFilter{OwnerID: "bob"}, 10, 0, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "alice", bookings[0].OwnerID)
}

func TestListAdminSeesEverything(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, f.createRequest("room-1", 3*time.Hour, time.Hour), bob)
	require.NoError(t, err)

	bookings, total, err := f.svc.List(ctx, model.BookingFilter{}, 10, 0, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, bookings, 2)

	bookings, total, err = f.svc.List(ctx, model.BookingFilter{OwnerID: "bob"}, 10, 0, admin)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, bookings, 1)
	assert.Equal(t, "bob", bookings[0].OwnerID)
}

func TestListPaginatesNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		offset := time.Duration(i+1) * 2 * time.Hour
		_, err := f.svc.Create(ctx, f.createRequest("room-1", offset, time.Hour), alice)
		require.NoError(t, err)
	}

	page, total, err := f.svc.List(ctx, model.BookingFilter{}, 2, 0, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	assert.True(t, page[0].Window.Start.After(page[1].Window.Start))

	last, total, err := f.svc.List(ctx, model.BookingFilter{}, 2, 4, alice)
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, last, 1)
}

func TestConcurrentCreatesThroughService(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	const racers = 16
	var wg sync.WaitGroup
	results := make([]error, racers)

	for i := 0; i < racers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = f.svc.Create(ctx, f.createRequest("room-1", time.Hour, time.Hour), alice)
		}(i)
	}
	wg.Wait()

	var wins, conflicts int
	for _, err := range results {
		switch {
		case err == nil:
			wins++
		case apperrors.HasCode(err, apperrors.CodeConflict):
			conflicts++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 1, wins)
	assert.Equal(t, racers-1, conflicts)
	assert.Len(t, f.publisher.created, 1)
}
