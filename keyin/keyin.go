// Package keyin encodes host keyboard events into the byte sequences a
// terminal-attached program expects on its input stream. It is a thin,
// stateless table lookup, not a terminal-state consumer: it knows nothing
// about cursor-key mode, application keypad mode, or any other mode a
// vtcore.Session tracks, and always emits the normal-mode sequence.
package keyin

import "fmt"

// Key names a non-printable key the host can report.
type Key int

const (
	KeyEnter Key = iota
	KeyBackspace
	KeyTab
	KeyEscape
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
)

var sequences = map[Key]string{
	KeyEnter:     "\r",
	KeyBackspace: "\x7f",
	KeyTab:       "\t",
	KeyEscape:    "\x1b",
	KeyUp:        "\x1b[A",
	KeyDown:      "\x1b[B",
	KeyRight:     "\x1b[C",
	KeyLeft:      "\x1b[D",
	KeyHome:      "\x1b[H",
	KeyEnd:       "\x1b[F",
	KeyPageUp:    "\x1b[5~",
	KeyPageDown:  "\x1b[6~",
	KeyInsert:    "\x1b[2~",
	KeyDelete:    "\x1b[3~",
	KeyF1:        "\x1bOP",
	KeyF2:        "\x1bOQ",
	KeyF3:        "\x1bOR",
	KeyF4:        "\x1bOS",
}

// Encode returns the byte sequence for a non-printable key, or nil if k is
// not one of the known constants.
func Encode(k Key) []byte {
	s, ok := sequences[k]
	if !ok {
		return nil
	}
	return []byte(s)
}

// EncodeRune returns the byte sequence for an ordinary printable rune,
// UTF-8 encoded with no translation.
func EncodeRune(r rune) []byte {
	return []byte(string(r))
}

// EncodeCtrl returns the control byte for Ctrl+letter (letter - 'a' + 1),
// case-insensitive. It panics if letter is not in 'a'-'z' or 'A'-'Z', since
// this is a programming error in the caller rather than a runtime condition.
func EncodeCtrl(letter rune) byte {
	switch {
	case letter >= 'a' && letter <= 'z':
		return byte(letter-'a') + 1
	case letter >= 'A' && letter <= 'Z':
		return byte(letter-'A') + 1
	default:
		panic(fmt.Sprintf("keyin: EncodeCtrl called with non-letter %q", letter))
	}
}
