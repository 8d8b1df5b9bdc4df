package validator

import (
	"strings"
	"testing"
	"time"

	"resbook/pkg/logger"
	"resbook/pkg/model"
)

func newTestValidator() *BookingValidator {
	log := logger.New(logger.Config{Level: logger.LevelError, Service: "test"})
	return NewBookingValidator(log, 15*time.Minute, 8*time.Hour)
}

func TestValidateWindowRuleOrder(t *testing.T) {
	v := newTestValidator()
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		window   model.TimeWindow
		wantRule string
	}{
		{
			name:     "inverted window",
			window:   model.NewTimeWindow(now.Add(2*time.Hour), now.Add(1*time.Hour)),
			wantRule: RuleInvertedWindow,
		},
		{
			name:     "zero-length window is inverted",
			window:   model.NewTimeWindow(now.Add(1*time.Hour), now.Add(1*time.Hour)),
			wantRule: RuleInvertedWindow,
		},
		{
			name:     "window in the past",
			window:   model.NewTimeWindow(now.Add(-1*time.Hour), now),
			wantRule: RuleNotInFuture,
		},
		{
			name:     "starting exactly now is not in the future",
			window:   model.NewTimeWindow(now, now.Add(1*time.Hour)),
			wantRule: RuleNotInFuture,
		},
		{
			name:     "inversion reported before past start",
			window:   model.NewTimeWindow(now.Add(-1*time.Hour), now.Add(-2*time.Hour)),
			wantRule: RuleInvertedWindow,
		},
		{
			name:     "too short",
			window:   model.NewTimeWindow(now.Add(1*time.Hour), now.Add(1*time.Hour+10*time.Minute)),
			wantRule: RuleTooShort,
		},
		{
			name:     "too long",
			window:   model.NewTimeWindow(now.Add(1*time.Hour), now.Add(10*time.Hour)),
			wantRule: RuleTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateWindow(tt.window, now)
			if err == nil {
				t.Fatal("expected a window error, got nil")
			}
			we, ok := AsWindowError(err)
			if !ok {
				t.Fatalf("expected *WindowError, got %T", err)
			}
			if we.Rule != tt.wantRule {
				t.Errorf("rule = %q, want %q", we.Rule, tt.wantRule)
			}
		})
	}
}

func TestValidateWindowBoundaries(t *testing.T) {
	v := newTestValidator()
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	// Exactly the minimum duration is allowed.
	w := model.NewTimeWindow(now.Add(1*time.Hour), now.Add(1*time.Hour+15*time.Minute))
	if err := v.ValidateWindow(w, now); err != nil {
		t.Errorf("minimum-length window should be valid, got %v", err)
	}

	// Exactly the maximum duration is allowed.
	w = model.NewTimeWindow(now.Add(1*time.Hour), now.Add(9*time.Hour))
	if err := v.ValidateWindow(w, now); err != nil {
		t.Errorf("maximum-length window should be valid, got %v", err)
	}
}

func TestWindowErrorMessagesReferenceConfiguredBounds(t *testing.T) {
	log := logger.New(logger.Config{Level: logger.LevelError, Service: "test"})
	v := NewBookingValidator(log, 30*time.Minute, 4*time.Hour)
	now := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)

	err := v.ValidateWindow(model.NewTimeWindow(now.Add(time.Hour), now.Add(time.Hour+10*time.Minute)), now)
	if err == nil || !strings.Contains(err.Error(), "30 minutes") {
		t.Errorf("too-short message should mention 30 minutes, got %v", err)
	}

	err = v.ValidateWindow(model.NewTimeWindow(now.Add(time.Hour), now.Add(7*time.Hour)), now)
	if err == nil || !strings.Contains(err.Error(), "4 hours") {
		t.Errorf("too-long message should mention 4 hours, got %v", err)
	}
}

func TestValidateCreate(t *testing.T) {
	v := newTestValidator()
	now := time.Now()

	req := &model.CreateBookingRequest{
		ResourceID:  "507f1f77bcf86cd799439011",
		StartAt:     now.Add(time.Hour),
		EndAt:       now.Add(2 * time.Hour),
		Description: "quarterly planning",
	}
	if err := v.ValidateCreate(req); err != nil {
		t.Errorf("valid request should pass, got %v", err)
	}

	missing := &model.CreateBookingRequest{
		StartAt: now.Add(time.Hour),
		EndAt:   now.Add(2 * time.Hour),
	}
	if err := v.ValidateCreate(missing); err == nil {
		t.Error("request without resource_id should fail")
	}

	long := &model.CreateBookingRequest{
		ResourceID:  "507f1f77bcf86cd799439011",
		StartAt:     now.Add(time.Hour),
		EndAt:       now.Add(2 * time.Hour),
		Description: strings.Repeat("x", 501),
	}
	if err := v.ValidateCreate(long); err == nil {
		t.Error("over-long description should fail")
	}
}
