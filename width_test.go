package vtcore

import "testing"

func TestIsCombining(t *testing.T) {
	tests := []struct {
		r        rune
		expected bool
	}{
		{'A', false},
		{'a', false},
		{' ', false},
		{'中', false},
		{0x0301, true}, // combining acute accent
		{0x200B, true}, // zero width space
		{0, true},
	}

	for _, tt := range tests {
		if got := isCombining(tt.r); got != tt.expected {
			t.Errorf("isCombining(%q) = %v, want %v", tt.r, got, tt.expected)
		}
	}
}
