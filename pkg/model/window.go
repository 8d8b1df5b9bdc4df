package model

import "time"

// TimeWindow is a half-open interval [Start, End). A window is well-formed
// only when Start is strictly before End.
type TimeWindow struct {
	Start time.Time `json:"start_at" bson:"start_at"`
	End   time.Time `json:"end_at" bson:"end_at"`
}

func NewTimeWindow(start, end time.Time) TimeWindow {
	return TimeWindow{Start: start, End: end}
}

func (w TimeWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Overlaps reports whether the two windows share at least one instant.
// Touching endpoints (a.End == b.Start) do not overlap: back-to-back
// bookings on the same resource are allowed.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.Start.Before(other.End) && w.End.After(other.Start)
}
