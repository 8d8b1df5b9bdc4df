package model

import (
	"time"
)

type BookingStatus string

const (
	// StatusActive bookings are the only ones subject to the no-overlap
	// invariant on their resource.
	StatusActive BookingStatus = "active"
	// StatusCanceled is terminal. A canceled booking never becomes
	// active again and its window is permanently freed.
	StatusCanceled BookingStatus = "canceled"
)

type Booking struct {
	ID          string        `json:"id,omitempty" bson:"_id,omitempty" validate:"omitempty,mongodb"`
	ResourceID  string        `json:"resource_id" bson:"resource_id" validate:"required,mongodb"`
	OwnerID     string        `json:"owner_id" bson:"owner_id" validate:"required"`
	Window      TimeWindow    `json:"window" bson:",inline"`
	Status      BookingStatus `json:"status" bson:"status" validate:"required,oneof=active canceled"`
	Description string        `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=500"`
	CreatedAt   time.Time     `json:"created_at" bson:"created_at"`
	ModifiedAt  time.Time     `json:"modified_at" bson:"modified_at"`
}

// CreateBookingRequest is the payload accepted by the create endpoint. The
// owner is never part of the payload; it comes from the resolved principal.
type CreateBookingRequest struct {
	ResourceID  string    `json:"resource_id" validate:"required"`
	StartAt     time.Time `json:"start_at" validate:"required"`
	EndAt       time.Time `json:"end_at" validate:"required"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=500"`
}

func (r CreateBookingRequest) Window() TimeWindow {
	return TimeWindow{Start: r.StartAt, End: r.EndAt}
}

// BookingFilter holds the optional listing filters. Zero fields impose no
// constraint; supplied fields are combined conjunctively. OwnerID is forced
// by the access policy for non-administrators before the filter reaches the
// store.
type BookingFilter struct {
	ResourceID string
	OwnerID    string
	Status     BookingStatus
	StartFrom  *time.Time
	EndUntil   *time.Time
}
