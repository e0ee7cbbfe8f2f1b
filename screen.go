package vtcore

import "errors"

// ErrInvalidSize is returned by Session.Resize for non-positive dimensions.
// It is the single recoverable error surface the core exposes (spec.md §7):
// every other misuse is absorbed by clamping or silent ignoring.
var ErrInvalidSize = errors.New("vtcore: width and height must both be positive")

// MouseMode selects which pointer events are reported to the host.
type MouseMode int

const (
	MouseModeNone MouseMode = iota
	MouseModeClick
	MouseModeMotion
	MouseModeAll
)

// deviceAttributesReply is the literal byte sequence emitted for
// DeviceAttributeQuery (CSI c): ESC [ ? 1 ; 2 c.
var deviceAttributesReply = []byte{0x1B, '[', '?', '1', ';', '2', 'c'}

// alternateSnapshot is the saved primary state while the alternate screen is
// active. Re-entering alternate screen always installs a fresh blank grid;
// nothing from a previous alt-screen session is ever reused.
type alternateSnapshot struct {
	grid         *Grid
	cursor       Cursor
	style        CellStyle
	scrollback   *Scrollback
	scrollTop    int
	scrollBot    int
	scrollOffset int
}

// ScreenState is the Screen Model: the cell grid, cursor, current style,
// scrollback, alternate-screen state, tab stops, scroll region and
// pending-response queue described in spec.md §3-4.2.
type ScreenState struct {
	Grid       *Grid
	Cursor     Cursor
	Style      CellStyle
	Saved      *SavedCursor
	Scrollback *Scrollback

	ScrollOffset int
	ScrollTop    int // 0-based, inclusive
	ScrollBottom int // 0-based, exclusive (row one past the bottom of the region)

	alt *alternateSnapshot

	BracketedPaste bool
	Charset        Charset
	Mouse          MouseMode
	Title          string
	titleStack     []string
	Hyperlink      *Hyperlink

	// lastX, lastY locate the most recently printed cell, for appendCombining
	// to attach to even when the print that wrote it wrapped to a new row in
	// the same call. -1 means "nothing printed since the last reset".
	lastX, lastY int

	pending [][]byte
}

// NewScreenState returns a screen of the given dimensions with a fresh
// grid, default cursor and style, and the given scrollback (nil installs the
// default in-memory ring).
func NewScreenState(width, height int, scrollback ScrollbackProvider) *ScreenState {
	s := &ScreenState{
		Grid:       NewGrid(width, height),
		Cursor:     NewCursor(),
		Style:      DefaultStyle(),
		Scrollback: NewScrollback(scrollback),
	}
	s.ScrollTop = 0
	s.ScrollBottom = height
	s.lastX, s.lastY = -1, -1
	return s
}

// IsAlternate reports whether the alternate screen is currently active.
func (s *ScreenState) IsAlternate() bool { return s.alt != nil }

// DrainResponses returns and clears the pending host-to-child response queue.
func (s *ScreenState) DrainResponses() [][]byte {
	out := s.pending
	s.pending = nil
	return out
}

func (s *ScreenState) respond(b []byte) {
	s.pending = append(s.pending, append([]byte(nil), b...))
}

// clampCursor enforces 0<=X<width and 0<=Y<height.
func (s *ScreenState) clampCursor() {
	if s.Cursor.X < 0 {
		s.Cursor.X = 0
	}
	if s.Cursor.X >= s.Grid.Width {
		s.Cursor.X = s.Grid.Width - 1
	}
	if s.Cursor.Y < 0 {
		s.Cursor.Y = 0
	}
	if s.Cursor.Y >= s.Grid.Height {
		s.Cursor.Y = s.Grid.Height - 1
	}
}

func (s *ScreenState) scrollBottomOrGrid() int {
	if s.ScrollBottom > 0 && s.ScrollBottom <= s.Grid.Height {
		return s.ScrollBottom
	}
	return s.Grid.Height
}

// scrollback feed is nil on the alternate screen (spec.md invariant: alternate
// screen never feeds scrollback).
func (s *ScreenState) scrollbackSink() *Scrollback {
	if s.IsAlternate() {
		return nil
	}
	return s.Scrollback
}

func (s *ScreenState) scrollUp(n int) {
	top, bottom := s.ScrollTop, s.scrollBottomOrGrid()
	s.Grid.ScrollUp(top, bottom, n, s.scrollbackSink())
	s.Cursor.Y -= n
	if s.Cursor.Y < top {
		s.Cursor.Y = top
	}
}

// ScrollViewport shifts the read-only history viewport by delta rows (positive
// moves further back into scrollback, negative moves toward the live grid),
// clamped to [0, Scrollback.Len()]. It returns the resulting offset.
func (s *ScreenState) ScrollViewport(delta int) int {
	s.ScrollOffset += delta
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
	if max := s.Scrollback.Len(); s.ScrollOffset > max {
		s.ScrollOffset = max
	}
	return s.ScrollOffset
}

func (s *ScreenState) scrollDown(n int) {
	top, bottom := s.ScrollTop, s.scrollBottomOrGrid()
	s.Grid.ScrollDown(top, bottom, n)
	s.Cursor.Y += n
	if s.Cursor.Y >= bottom {
		s.Cursor.Y = bottom - 1
	}
}

// printOne writes a single printable, non-combining rune and advances the
// cursor per spec.md §4.2's character-output algorithm.
func (s *ScreenState) printOne(r rune) {
	r = translateCharset(s.Charset, r)
	writeX, writeY := s.Cursor.X, s.Cursor.Y

	if cell := s.Grid.Cell(writeX, writeY); cell != nil {
		cell.Ch = r
		cell.Style = s.Style
		cell.Hyperlink = s.Hyperlink
		cell.Combining = nil
		s.Grid.MarkRowDirty(writeY)
	}
	s.Cursor.X++

	if s.Cursor.X >= s.Grid.Width {
		s.Cursor.X = 0
		s.Cursor.Y++
		bottom := s.scrollBottomOrGrid()
		if s.Cursor.Y >= bottom {
			n := s.Cursor.Y - bottom + 1
			s.scrollUp(n)
			writeY -= n // the row just written to scrolled up along with the rest
		}
	}
	s.lastX, s.lastY = writeX, writeY
}

// appendCombining attaches r to the most recently printed cell (lastX,lastY),
// not Cursor.X-1: a print that fills the last column wraps the cursor to the
// next row within the same call, so Cursor.X-1 would miss the cell a
// following combining rune needs to attach to.
func (s *ScreenState) appendCombining(r rune) {
	x, y := s.lastX, s.lastY
	if x < 0 || y < 0 {
		return
	}
	if cell := s.Grid.Cell(x, y); cell != nil {
		cell.Combining = append(cell.Combining, r)
		s.Grid.MarkRowDirty(y)
	}
}

func (s *ScreenState) execute0(b byte) {
	switch b {
	case 0x08: // Backspace
		if s.Cursor.X > 0 {
			s.Cursor.X--
		}
	case 0x09: // Horizontal tab
		s.Cursor.X = s.Grid.NextTabStop(s.Cursor.X)
	case 0x0A, 0x0B, 0x0C: // Line feed / vertical tab / form feed
		bottom := s.scrollBottomOrGrid()
		s.Cursor.Y++
		if s.Cursor.Y >= bottom {
			s.scrollUp(s.Cursor.Y - bottom + 1)
		}
	case 0x0D: // Carriage return
		s.Cursor.X = 0
	}
}

func (s *ScreenState) eraseDisplay(mode int) {
	switch mode {
	case 0:
		s.Grid.ClearRowRange(s.Cursor.Y, s.Cursor.X, s.Grid.Width)
		for y := s.Cursor.Y + 1; y < s.Grid.Height; y++ {
			s.Grid.ClearRow(y)
		}
	case 1:
		for y := 0; y < s.Cursor.Y; y++ {
			s.Grid.ClearRow(y)
		}
		s.Grid.ClearRowRange(s.Cursor.Y, 0, s.Cursor.X+1)
	case 2:
		s.Grid.ClearAll()
	}
}

func (s *ScreenState) eraseLine(mode int) {
	switch mode {
	case 0:
		s.Grid.ClearRowRange(s.Cursor.Y, s.Cursor.X, s.Grid.Width)
	case 1:
		s.Grid.ClearRowRange(s.Cursor.Y, 0, s.Cursor.X+1)
	case 2:
		s.Grid.ClearRow(s.Cursor.Y)
	}
}

func (s *ScreenState) enterAlternateScreen() {
	if s.IsAlternate() {
		return
	}
	s.alt = &alternateSnapshot{
		grid:         s.Grid,
		cursor:       s.Cursor,
		style:        s.Style,
		scrollback:   s.Scrollback,
		scrollTop:    s.ScrollTop,
		scrollBot:    s.ScrollBottom,
		scrollOffset: s.ScrollOffset,
	}
	s.Grid = NewGrid(s.alt.grid.Width, s.alt.grid.Height)
	s.Cursor = NewCursor()
	s.Style = DefaultStyle()
	s.Hyperlink = nil
	s.ScrollTop = 0
	s.ScrollBottom = s.Grid.Height
	s.ScrollOffset = 0 // the alternate screen has no scrollback to offset into
	s.lastX, s.lastY = -1, -1
}

func (s *ScreenState) exitAlternateScreen() {
	if !s.IsAlternate() {
		return
	}
	snap := s.alt
	s.alt = nil
	s.Grid = snap.grid
	s.Cursor = snap.cursor
	s.Style = snap.style
	s.Scrollback = snap.scrollback
	s.ScrollTop = snap.scrollTop
	s.ScrollBottom = snap.scrollBot
	s.ScrollOffset = snap.scrollOffset
	s.lastX, s.lastY = -1, -1 // unknown after a context switch; appendCombining no-ops until the next print
}

// Resize allocates a new grid preserving the top-left intersecting
// rectangle, rebuilds tab stops, clamps the cursor, marks every row dirty,
// and resets the scroll region to the full new grid. If the alternate
// screen is active, the stashed primary snapshot is resized too so that
// exiting alternate screen afterward lands on consistent dimensions.
func (s *ScreenState) Resize(width, height int) {
	s.Grid = s.Grid.Resize(width, height)
	s.ScrollTop = 0
	s.ScrollBottom = height
	s.clampCursor()
	if s.alt != nil {
		s.alt.grid = s.alt.grid.Resize(width, height)
		s.alt.scrollTop, s.alt.scrollBot = 0, height
		if s.alt.cursor.X >= width {
			s.alt.cursor.X = width - 1
		}
		if s.alt.cursor.Y >= height {
			s.alt.cursor.Y = height - 1
		}
	}
}

// Execute applies one Command to the screen state. It is infallible: all
// parameters are clamped to the grid.
func (s *ScreenState) Execute(cmd Command) {
	switch cmd.Kind {
	case CmdPrint:
		if cmd.Bool { // Bool marks a zero-width combining rune
			s.appendCombining(cmd.Ch)
		} else {
			s.printOne(cmd.Ch)
		}

	case CmdExecute:
		s.execute0(cmd.Byte)

	case CmdBell:
		// No observable screen-model state, and nothing is queued for
		// DrainResponses. Nothing to do here.

	case CmdMoveCursor:
		s.Cursor.X, s.Cursor.Y = cmd.X, cmd.Y
		s.clampCursor()

	case CmdMoveCursorRelative:
		s.Cursor.X += cmd.DX
		s.Cursor.Y += cmd.DY
		s.clampCursor()

	case CmdMoveCursorCol:
		s.Cursor.X = cmd.X
		s.clampCursor()

	case CmdMoveCursorRow:
		s.Cursor.Y = cmd.Y
		s.clampCursor()

	case CmdTabMove:
		for i := 0; i < cmd.N; i++ {
			if cmd.Forward {
				s.Cursor.X = s.Grid.NextTabStop(s.Cursor.X)
			} else {
				s.Cursor.X = s.Grid.PrevTabStop(s.Cursor.X)
			}
		}

	case CmdEraseDisplay:
		s.eraseDisplay(cmd.Mode)

	case CmdEraseLine:
		s.eraseLine(cmd.Mode)

	case CmdEraseChars:
		n := cmd.N
		if s.Cursor.X+n > s.Grid.Width {
			n = s.Grid.Width - s.Cursor.X
		}
		s.Grid.ClearRowRange(s.Cursor.Y, s.Cursor.X, s.Cursor.X+n)

	case CmdClearScreen:
		s.eraseDisplay(2)

	case CmdClearLine:
		s.eraseLine(0)

	case CmdClearScrollback:
		s.Scrollback.Clear()

	case CmdScrollUp:
		s.scrollUp(cmd.N)

	case CmdScrollDown:
		s.scrollDown(cmd.N)

	case CmdInsertLine:
		bottom := s.scrollBottomOrGrid()
		if s.Cursor.Y >= s.ScrollTop && s.Cursor.Y < bottom {
			s.Grid.ScrollDown(s.Cursor.Y, bottom, cmd.N)
		}

	case CmdDeleteLine:
		bottom := s.scrollBottomOrGrid()
		if s.Cursor.Y >= s.ScrollTop && s.Cursor.Y < bottom {
			s.Grid.ScrollUp(s.Cursor.Y, bottom, cmd.N, nil)
		}

	case CmdInsertChars:
		s.Grid.InsertChars(s.Cursor.Y, s.Cursor.X, cmd.N)

	case CmdDeleteChars:
		s.Grid.DeleteChars(s.Cursor.Y, s.Cursor.X, cmd.N)

	case CmdSetStyle:
		s.Style = cmd.Style

	case CmdSetForeground:
		s.Style.Fg = cmd.Color

	case CmdSetBackground:
		s.Style.Bg = cmd.Color

	case CmdSaveCursor:
		saved := SavedCursor{X: s.Cursor.X, Y: s.Cursor.Y, Style: s.Style}
		s.Saved = &saved

	case CmdRestoreCursor:
		if s.Saved != nil {
			s.Cursor.X, s.Cursor.Y = s.Saved.X, s.Saved.Y
			s.Style = s.Saved.Style
			s.clampCursor()
		}

	case CmdEnterAlternateScreen:
		s.enterAlternateScreen()

	case CmdExitAlternateScreen:
		s.exitAlternateScreen()

	case CmdSetCursorStyle:
		s.Cursor.Style = cmd.CursorVar

	case CmdShowCursor:
		s.Cursor.Visible = true

	case CmdHideCursor:
		s.Cursor.Visible = false

	case CmdSetScrollRegion:
		top := cmd.Top
		bottom := cmd.Bottom
		if bottom <= 0 || bottom > s.Grid.Height {
			bottom = s.Grid.Height
		}
		if top < 0 {
			top = 0
		}
		if top >= bottom {
			return
		}
		s.ScrollTop = top
		s.ScrollBottom = bottom
		s.Cursor.X, s.Cursor.Y = 0, top

	case CmdSetCharset:
		s.Charset = cmd.Charset

	case CmdSetTabStop:
		s.Grid.SetTabStop(s.Cursor.X)

	case CmdClearTabStop:
		s.Grid.ClearTabStop(s.Cursor.X)

	case CmdClearAllTabStops:
		s.Grid.ClearAllTabStops()

	case CmdSetTitle:
		s.Title = cmd.Title

	case CmdPushTitle:
		s.titleStack = append(s.titleStack, s.Title)

	case CmdPopTitle:
		if n := len(s.titleStack); n > 0 {
			s.Title = s.titleStack[n-1]
			s.titleStack = s.titleStack[:n-1]
		}

	case CmdSetHyperlink:
		s.Hyperlink = cmd.Hyperlink

	case CmdSetBracketedPaste:
		s.BracketedPaste = cmd.Bool

	case CmdSetMouseMode:
		s.Mouse = cmd.Mouse

	case CmdDeviceAttributeQuery:
		s.respond(deviceAttributesReply)

	case CmdReset:
		width, height := s.Grid.Width, s.Grid.Height
		s.Grid = NewGrid(width, height)
		s.Cursor = NewCursor()
		s.Style = DefaultStyle()
		s.Saved = nil
		s.Hyperlink = nil
		s.Charset = CharsetASCII
		s.BracketedPaste = false
		s.Mouse = MouseModeNone
		s.ScrollTop = 0
		s.ScrollBottom = height
		s.ScrollOffset = 0
		s.titleStack = nil
		s.lastX, s.lastY = -1, -1

	case CmdReverseIndex:
		if s.Cursor.Y == s.ScrollTop {
			s.Grid.ScrollDown(s.ScrollTop, s.scrollBottomOrGrid(), 1)
		} else if s.Cursor.Y > 0 {
			s.Cursor.Y--
		}

	case CmdSubstitute:
		// Writes in place; unlike a normal print, the cursor does not advance.
		if cell := s.Grid.Cell(s.Cursor.X, s.Cursor.Y); cell != nil {
			cell.Ch = '?'
			cell.Style = s.Style
			cell.Hyperlink = s.Hyperlink
			cell.Combining = nil
			s.Grid.MarkRowDirty(s.Cursor.Y)
		}
	}
}
