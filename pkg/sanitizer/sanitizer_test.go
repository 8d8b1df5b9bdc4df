package sanitizer

import "testing"

func TestSanitizeDescription(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text", "Weekly sync in room A", "Weekly sync in room A"},
		{"leading and trailing whitespace", "  standup  ", "standup"},
		{"collapses inner whitespace", "team\t\tretro\n\nnotes", "team retro notes"},
		{"drops control characters", "demo\x00\x08 session", "demo session"},
		{"empty", "", ""},
		{"only whitespace", " \t\n ", ""},
		{"unicode preserved", "réunion générale — salle B", "réunion générale — salle B"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeDescription(tt.input); got != tt.want {
				t.Errorf("SanitizeDescription(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
