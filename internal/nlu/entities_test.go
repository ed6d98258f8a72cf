package nlu

import "testing"

func TestFindOrderID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		// Prefixed codes beat bare digit runs regardless of position.
		{"order ORD1001 or 12345", "ORD1001"},
		{"ord123 please", "ORD123"},
		{"ORDER4567 status", "ORDER4567"},
		{"my number is 1234567", "1234567"},
		{"ticket #4321 please", "#4321"},
		{"no identifiers here", ""},
		{"", ""},
		// A 4-digit bare number is too short for the bare-number rule.
		{"call me at 1234", ""},
	}

	for _, tt := range tests {
		if got := FindOrderID(tt.in); got != tt.want {
			t.Errorf("FindOrderID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
