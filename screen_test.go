package vtcore

import "testing"

func newTestScreen(w, h int) *ScreenState {
	return NewScreenState(w, h, nil)
}

func TestScreenEraseDisplayZeroEqualsTwoAtOrigin(t *testing.T) {
	a := newTestScreen(5, 3)
	b := newTestScreen(5, 3)
	fill := func(s *ScreenState) {
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				s.Grid.Cell(x, y).Ch = 'X'
			}
		}
	}
	fill(a)
	fill(b)

	a.Execute(Command{Kind: CmdEraseDisplay, Mode: 0})
	b.Execute(Command{Kind: CmdEraseDisplay, Mode: 2})

	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			if a.Grid.Cell(x, y).Ch != b.Grid.Cell(x, y).Ch {
				t.Fatalf("cell (%d,%d) differs: %q vs %q", x, y, a.Grid.Cell(x, y).Ch, b.Grid.Cell(x, y).Ch)
			}
		}
	}
}

func TestScreenInsertDeleteLine(t *testing.T) {
	s := newTestScreen(5, 3)
	for y := 0; y < 3; y++ {
		s.Grid.Cell(0, y).Ch = rune('0' + y)
	}
	s.Cursor.Y = 0

	s.Execute(Command{Kind: CmdInsertLine, N: 1})
	if s.Grid.Cell(0, 1).Ch != '0' {
		t.Errorf("expected row 0's content pushed to row 1, got %q", s.Grid.Cell(0, 1).Ch)
	}
	if s.Grid.Cell(0, 0).Ch != ' ' {
		t.Errorf("expected blank row inserted at cursor, got %q", s.Grid.Cell(0, 0).Ch)
	}

	s.Execute(Command{Kind: CmdDeleteLine, N: 1})
	if s.Grid.Cell(0, 0).Ch != '0' {
		t.Errorf("expected delete-line to restore original row 0, got %q", s.Grid.Cell(0, 0).Ch)
	}
}

func TestScreenReverseIndexScrollsAtTop(t *testing.T) {
	s := newTestScreen(5, 3)
	s.Grid.Cell(0, 0).Ch = 'A'
	s.Cursor.Y = 0

	s.Execute(Command{Kind: CmdReverseIndex})

	if s.Grid.Cell(0, 1).Ch != 'A' {
		t.Errorf("expected row 0 pushed down to row 1, got %q", s.Grid.Cell(0, 1).Ch)
	}
	if s.Grid.Cell(0, 0).Ch != ' ' {
		t.Errorf("expected blank row revealed at top, got %q", s.Grid.Cell(0, 0).Ch)
	}
	if s.Cursor.Y != 0 {
		t.Errorf("expected cursor to stay at top row, got %d", s.Cursor.Y)
	}
}

func TestScreenSubstituteDoesNotAdvanceCursor(t *testing.T) {
	s := newTestScreen(5, 3)
	s.Cursor.X, s.Cursor.Y = 2, 0

	s.Execute(Command{Kind: CmdSubstitute})

	if s.Grid.Cell(2, 0).Ch != '?' {
		t.Errorf("expected '?' written at cursor, got %q", s.Grid.Cell(2, 0).Ch)
	}
	if s.Cursor.X != 2 {
		t.Errorf("expected cursor to stay at column 2, got %d", s.Cursor.X)
	}
}

func TestScreenSaveRestoreCursorRoundTrip(t *testing.T) {
	s := newTestScreen(10, 10)
	s.Cursor.X, s.Cursor.Y = 3, 3
	s.Style.Fg = Color{1, 2, 3}
	s.Execute(Command{Kind: CmdSaveCursor})

	s.Execute(Command{Kind: CmdMoveCursor, X: 8, Y: 8})
	s.Style.Fg = Color{9, 9, 9}

	s.Execute(Command{Kind: CmdRestoreCursor})

	if s.Cursor.X != 3 || s.Cursor.Y != 3 {
		t.Errorf("cursor = (%d,%d), want (3,3)", s.Cursor.X, s.Cursor.Y)
	}
	if s.Style.Fg != (Color{1, 2, 3}) {
		t.Errorf("style.Fg = %+v, want (1,2,3)", s.Style.Fg)
	}
}

func TestScreenAlternateScreenEnterEnterExit(t *testing.T) {
	s := newTestScreen(10, 5)
	s.Grid.Cell(0, 0).Ch = 'P'
	s.Cursor.X, s.Cursor.Y = 2, 2

	s.Execute(Command{Kind: CmdEnterAlternateScreen})
	s.Execute(Command{Kind: CmdEnterAlternateScreen}) // idempotent: second enter is a no-op
	s.Grid.Cell(0, 0).Ch = 'Z'                        // mutate the alt screen only
	s.Execute(Command{Kind: CmdExitAlternateScreen})

	if s.Grid.Cell(0, 0).Ch != 'P' {
		t.Errorf("expected primary content restored, got %q", s.Grid.Cell(0, 0).Ch)
	}
	if s.Cursor.X != 2 || s.Cursor.Y != 2 {
		t.Errorf("expected primary cursor restored, got (%d,%d)", s.Cursor.X, s.Cursor.Y)
	}
	if s.IsAlternate() {
		t.Error("expected primary screen active after exit")
	}
}

func TestScreenAlternateScreenIsAlwaysFresh(t *testing.T) {
	s := newTestScreen(10, 5)

	s.Execute(Command{Kind: CmdEnterAlternateScreen})
	s.Grid.Cell(0, 0).Ch = 'Q'
	s.Execute(Command{Kind: CmdExitAlternateScreen})

	s.Execute(Command{Kind: CmdEnterAlternateScreen})
	if s.Grid.Cell(0, 0).Ch != ' ' {
		t.Errorf("expected a fresh blank alternate screen, got %q", s.Grid.Cell(0, 0).Ch)
	}
}

func TestScreenAlternateScreenDoesNotFeedScrollback(t *testing.T) {
	s := newTestScreen(3, 1)
	s.Execute(Command{Kind: CmdEnterAlternateScreen})

	before := s.Scrollback.Len()
	s.Execute(Command{Kind: CmdPrint, Ch: 'a'})
	s.Execute(Command{Kind: CmdPrint, Ch: 'b'})
	s.Execute(Command{Kind: CmdPrint, Ch: 'c'}) // wraps and scrolls within the alt screen

	if s.Scrollback.Len() != before {
		t.Errorf("expected scrollback unchanged on the alternate screen, got %d -> %d", before, s.Scrollback.Len())
	}
}

func TestScreenCombiningCharacterAppendsToPreviousCell(t *testing.T) {
	s := newTestScreen(10, 1)
	s.Execute(Command{Kind: CmdPrint, Ch: 'e'})
	s.Execute(Command{Kind: CmdPrint, Ch: 0x0301, Bool: true})

	cell := s.Grid.Cell(0, 0)
	if cell.Ch != 'e' {
		t.Errorf("base cell rune = %q, want 'e'", cell.Ch)
	}
	if len(cell.Combining) != 1 || cell.Combining[0] != 0x0301 {
		t.Errorf("combining = %v, want [U+0301]", cell.Combining)
	}
	if s.Cursor.X != 1 {
		t.Errorf("cursor.X = %d, want 1 (combining rune must not advance it)", s.Cursor.X)
	}
}

func TestScreenPrintAtLastColumnWrapsInSameCall(t *testing.T) {
	s := newTestScreen(3, 2)
	s.Cursor.X, s.Cursor.Y = 2, 1 // last column, last row

	s.Execute(Command{Kind: CmdPrint, Ch: 'Z'})

	if s.Grid.Cell(2, 0).Ch != 'Z' {
		t.Fatalf("expected 'Z' written at (2,1) and scrolled up to (2,0), got %q", s.Grid.Cell(2, 0).Ch)
	}
	if s.Cursor.X != 0 || s.Cursor.Y != 1 {
		t.Errorf("cursor = (%d,%d), want (0,1): wrap+scroll must happen within the same Execute call", s.Cursor.X, s.Cursor.Y)
	}
	if s.Scrollback.Len() != 1 {
		t.Errorf("scrollback length = %d, want 1", s.Scrollback.Len())
	}
}

func TestScreenCombiningCharacterAfterWrapAttachesToWrappedCell(t *testing.T) {
	s := newTestScreen(3, 2)
	s.Cursor.X, s.Cursor.Y = 2, 0 // last column: next print wraps to row 1

	s.Execute(Command{Kind: CmdPrint, Ch: 'e'})
	s.Execute(Command{Kind: CmdPrint, Ch: 0x0301, Bool: true})

	if s.Cursor.X != 0 || s.Cursor.Y != 1 {
		t.Fatalf("cursor = (%d,%d), want (0,1) after the wrapping print", s.Cursor.X, s.Cursor.Y)
	}
	cell := s.Grid.Cell(2, 0)
	if cell.Ch != 'e' {
		t.Fatalf("base cell rune at (2,0) = %q, want 'e'", cell.Ch)
	}
	if len(cell.Combining) != 1 || cell.Combining[0] != 0x0301 {
		t.Errorf("combining at (2,0) = %v, want [U+0301]", cell.Combining)
	}
}

func TestScreenScrollViewportClampsToScrollbackLength(t *testing.T) {
	s := newTestScreen(3, 2)
	for i := 0; i < 5; i++ {
		s.Execute(Command{Kind: CmdPrint, Ch: 'x'})
		s.Execute(Command{Kind: CmdPrint, Ch: 'x'})
		s.Execute(Command{Kind: CmdPrint, Ch: 'x'}) // wraps; from the second row on, also scrolls and feeds scrollback
	}
	max := s.Scrollback.Len()

	if got := s.ScrollViewport(max + 10); got != max {
		t.Errorf("ScrollViewport overshoot = %d, want clamped to %d", got, max)
	}
	if got := s.ScrollViewport(-(max + 10)); got != 0 {
		t.Errorf("ScrollViewport undershoot = %d, want clamped to 0", got)
	}
	if s.ScrollOffset != 0 {
		t.Errorf("ScrollOffset = %d, want 0", s.ScrollOffset)
	}
}

func TestScreenResizeReportsNothingButResizesGrid(t *testing.T) {
	s := newTestScreen(10, 5)
	s.Resize(20, 8)

	if s.Grid.Width != 20 || s.Grid.Height != 8 {
		t.Errorf("grid = %dx%d, want 20x8", s.Grid.Width, s.Grid.Height)
	}
}
