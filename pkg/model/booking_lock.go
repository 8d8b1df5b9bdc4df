package model

import "time"

// BookingLock is an advisory lock document keyed by resource identity.
// Inserting it claims the resource's critical section for the duration of a
// conflict check plus insert; a duplicate-key error means another request
// holds the slot. ExpiresAt backs a TTL index so crashed holders cannot
// wedge a resource.
type BookingLock struct {
	ID        string    `bson:"_id" json:"id"`
	ExpiresAt time.Time `bson:"expires_at" json:"expires_at"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
