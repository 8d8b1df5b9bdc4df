package validator

import (
	"errors"
	"fmt"
	"time"

	"resbook/pkg/logger"
	"resbook/pkg/model"

	"github.com/go-playground/validator/v10"
)

// Window rule identifiers. Exactly one rule is reported per failure, in
// the order below; tests assert against these.
const (
	RuleInvertedWindow = "inverted_window"
	RuleNotInFuture    = "not_in_future"
	RuleTooShort       = "too_short"
	RuleTooLong        = "too_long"
)

type WindowError struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// AsWindowError extracts a *WindowError from err, if it is one.
func AsWindowError(err error) (*WindowError, bool) {
	var we *WindowError
	ok := errors.As(err, &we)
	return we, ok
}

type BookingValidator struct {
	validate    *validator.Validate
	minDuration time.Duration
	maxDuration time.Duration
	logger      *logger.Logger
}

func NewBookingValidator(log *logger.Logger, minDuration, maxDuration time.Duration) *BookingValidator {
	return &BookingValidator{
		validate:    validator.New(),
		minDuration: minDuration,
		maxDuration: maxDuration,
		logger:      log,
	}
}

// ValidateCreate checks the request shape (required fields, description
// length) before any temporal rule runs.
func (v *BookingValidator) ValidateCreate(req *model.CreateBookingRequest) error {
	if err := v.validate.Struct(req); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			return translateStructErrors(validationErrs)
		}
		return err
	}
	return nil
}

// ValidateWindow applies the temporal policy rules in a fixed order and
// stops at the first violation:
//
//  1. start must be strictly before end
//  2. start must be strictly in the future
//  3. duration must be at least the configured minimum
//  4. duration must not exceed the configured maximum
func (v *BookingValidator) ValidateWindow(w model.TimeWindow, now time.Time) error {
	if !w.Start.Before(w.End) {
		return &WindowError{
			Rule:    RuleInvertedWindow,
			Message: "start time must be strictly before end time",
		}
	}

	if !w.Start.After(now) {
		return &WindowError{
			Rule:    RuleNotInFuture,
			Message: "booking must start in the future",
		}
	}

	duration := w.Duration()
	if duration < v.minDuration {
		return &WindowError{
			Rule:    RuleTooShort,
			Message: fmt.Sprintf("booking duration must be at least %d minutes", int(v.minDuration.Minutes())),
		}
	}

	if duration > v.maxDuration {
		return &WindowError{
			Rule:    RuleTooLong,
			Message: fmt.Sprintf("booking duration cannot exceed %d hours", int(v.maxDuration.Hours())),
		}
	}

	return nil
}

func translateStructErrors(errs validator.ValidationErrors) error {
	var messages []string
	for _, err := range errs {
		switch err.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", err.Field()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", err.Field(), err.Param()))
		case "mongodb":
			messages = append(messages, fmt.Sprintf("%s must be a valid object id", err.Field()))
		default:
			messages = append(messages, err.Error())
		}
	}
	return fmt.Errorf("invalid request: %v", messages)
}
