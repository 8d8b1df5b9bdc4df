// Package sanitizer normalizes free-form user text before it is persisted.
// Booking descriptions come straight from request bodies and may carry
// control characters or pathological whitespace.
package sanitizer

import (
	"strings"
	"unicode"
)

// SanitizeDescription trims the text, collapses runs of whitespace to a
// single space, and drops non-printable runes. The result is safe to store
// and echo back in API responses and event payloads.
func SanitizeDescription(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	lastWasSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		if !unicode.IsPrint(r) {
			continue
		}
		b.WriteRune(r)
		lastWasSpace = false
	}

	return strings.TrimSpace(b.String())
}
