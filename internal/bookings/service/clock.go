package service

import "time"

// Clock supplies the current instant to the temporal rules. Injected so
// tests can pin "now" instead of sleeping around real time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func NewSystemClock() Clock {
	return systemClock{}
}
