package keyin

import "testing"

func TestEncode(t *testing.T) {
	tests := []struct {
		k    Key
		want string
	}{
		{KeyEnter, "\r"},
		{KeyBackspace, "\x7f"},
		{KeyUp, "\x1b[A"},
		{KeyF1, "\x1bOP"},
	}
	for _, tt := range tests {
		if got := string(Encode(tt.k)); got != tt.want {
			t.Errorf("Encode(%v) = %q, want %q", tt.k, got, tt.want)
		}
	}
}

func TestEncodeUnknownKey(t *testing.T) {
	if got := Encode(Key(999)); got != nil {
		t.Errorf("Encode(unknown) = %v, want nil", got)
	}
}

func TestEncodeRune(t *testing.T) {
	if got := string(EncodeRune('A')); got != "A" {
		t.Errorf("EncodeRune('A') = %q, want %q", got, "A")
	}
	if got := string(EncodeRune('中')); got != "中" {
		t.Errorf("EncodeRune('中') = %q, want %q", got, "中")
	}
}

func TestEncodeCtrl(t *testing.T) {
	tests := []struct {
		letter rune
		want   byte
	}{
		{'a', 1},
		{'A', 1},
		{'c', 3},
		{'z', 26},
	}
	for _, tt := range tests {
		if got := EncodeCtrl(tt.letter); got != tt.want {
			t.Errorf("EncodeCtrl(%q) = %d, want %d", tt.letter, got, tt.want)
		}
	}
}

func TestEncodeCtrlPanicsOnNonLetter(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected EncodeCtrl to panic on a non-letter argument")
		}
	}()
	EncodeCtrl('1')
}
