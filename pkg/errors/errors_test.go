package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorMessageFormat(t *testing.T) {
	err := Conflict("window overlaps an existing booking")
	want := "CONFLICT: window overlaps an existing booking"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := Internal("failed to save booking", fmt.Errorf("connection reset"))
	if wrapped.Error() != "INTERNAL_ERROR: failed to save booking (caused by: connection reset)" {
		t.Errorf("unexpected wrapped message: %q", wrapped.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("write concern error")
	err := Internal("storage failure", cause)
	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the cause through Unwrap")
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		err  *AppError
		want int
	}{
		{NotFound("Booking"), http.StatusNotFound},
		{NotFoundWithID("Resource", "abc"), http.StatusNotFound},
		{Validation("bad window", nil), http.StatusUnprocessableEntity},
		{InvalidInput("bad limit"), http.StatusBadRequest},
		{Unauthorized("missing principal"), http.StatusUnauthorized},
		{Forbidden("not your booking"), http.StatusForbidden},
		{Conflict("overlap"), http.StatusConflict},
		{AlreadyCanceled("b1"), http.StatusConflict},
		{AlreadyStarted("b1"), http.StatusUnprocessableEntity},
		{Internal("boom", nil), http.StatusInternalServerError},
		{Timeout("deadline exceeded"), http.StatusGatewayTimeout},
	}

	for _, tt := range tests {
		if got := tt.err.StatusCode(); got != tt.want {
			t.Errorf("%s: StatusCode() = %d, want %d", tt.err.Code, got, tt.want)
		}
	}
}

func TestHasCode(t *testing.T) {
	err := AlreadyCanceled("b42")
	if !HasCode(err, CodeAlreadyCanceled) {
		t.Error("HasCode should match ALREADY_CANCELED")
	}
	if HasCode(err, CodeConflict) {
		t.Error("HasCode should not match a different code")
	}
	if HasCode(errors.New("plain"), CodeConflict) {
		t.Error("HasCode should be false for non-AppError")
	}
}

func TestAsAppErrorWrapsUnknown(t *testing.T) {
	plain := errors.New("cursor exhausted")
	appErr := AsAppError(plain)
	if appErr.Code != CodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", appErr.Code)
	}
	if !errors.Is(appErr, plain) {
		t.Error("original error should be preserved as cause")
	}
}
