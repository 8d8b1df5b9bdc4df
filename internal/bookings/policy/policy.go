// Package policy holds the role-scoped access rules for bookings. The
// role is a closed two-value enumeration, so decisions are explicit
// branches rather than a dispatch hierarchy.
package policy

import (
	"resbook/pkg/model"
)

// CanAccess reports whether the principal may read or cancel the booking:
// administrators may touch any booking, everyone else only their own.
func CanAccess(booking *model.Booking, principal model.Principal) bool {
	if principal.IsAdmin() {
		return true
	}
	return booking.OwnerID == principal.ID
}

// Scope constrains a listing filter to what the principal is allowed to
// see. Non-administrators are pinned to their own bookings regardless of
// any owner filter they supplied; administrators pass through untouched.
func Scope(filter model.BookingFilter, principal model.Principal) model.BookingFilter {
	if !principal.IsAdmin() {
		filter.OwnerID = principal.ID
	}
	return filter
}
