package vtcore

import (
	"strings"
	"sync"
)

// DefaultRows and DefaultCols are the dimensions a Session is built with
// when WithSize is not supplied.
const (
	DefaultRows = 24
	DefaultCols = 80
)

// Session is the host-facing entry point: one Parser feeding one ScreenState,
// guarded by a single lock so a host can drive WriteBytes from an I/O goroutine
// while a renderer calls View from another.
type Session struct {
	mu     sync.RWMutex
	parser *Parser
	screen *ScreenState

	selection Selection
}

// Option configures a Session during construction.
type Option func(*sessionConfig)

type sessionConfig struct {
	rows, cols int
	scrollback ScrollbackProvider
}

// WithSize sets the initial grid dimensions. Values <= 0 fall back to the
// defaults (24x80).
func WithSize(rows, cols int) Option {
	return func(c *sessionConfig) {
		if rows > 0 {
			c.rows = rows
		}
		if cols > 0 {
			c.cols = cols
		}
	}
}

// WithScrollback installs a custom ScrollbackProvider in place of the
// default in-memory ring.
func WithScrollback(p ScrollbackProvider) Option {
	return func(c *sessionConfig) { c.scrollback = p }
}

// WithScrollbackLimit installs the default in-memory ring scrollback sized
// to limit rows. A limit of 0 disables scrollback retention.
func WithScrollbackLimit(limit int) Option {
	return func(c *sessionConfig) { c.scrollback = newRingScrollback(limit) }
}

// NewSession builds a Session ready to accept bytes.
func NewSession(opts ...Option) *Session {
	cfg := sessionConfig{rows: DefaultRows, cols: DefaultCols}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Session{
		parser: NewParser(),
		screen: NewScreenState(cfg.cols, cfg.rows, cfg.scrollback),
	}
}

// WriteBytes decodes data and applies every Command it implies to the screen
// model. It always consumes all of data and never returns an error.
func (s *Session) WriteBytes(data []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cmd := range s.parser.Parse(data) {
		s.screen.Execute(cmd)
	}
	return len(data), nil
}

// Write is WriteBytes under the io.Writer name, so a Session can be used
// wherever an io.Writer is expected.
func (s *Session) Write(data []byte) (int, error) {
	return s.WriteBytes(data)
}

// Resize changes the grid dimensions. Both width and height must be
// positive; spec.md's one recoverable error surface is returned otherwise.
func (s *Session) Resize(cols, rows int) error {
	if cols <= 0 || rows <= 0 {
		return ErrInvalidSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Resize(cols, rows)
	return nil
}

// View returns a read-only rendering snapshot of the current screen state.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return newView(s.screen)
}

// ScrollViewport shifts the read-only history viewport by delta rows
// (positive scrolls back into scrollback, negative scrolls toward the live
// grid), clamped to [0, scrollback length]. It returns the resulting offset,
// which View().ScrollOffset subsequently reflects.
func (s *Session) ScrollViewport(delta int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.ScrollViewport(delta)
}

// DrainResponses returns and clears bytes the screen model queued for the
// host to write back to the child process (e.g. a device-attributes reply).
func (s *Session) DrainResponses() [][]byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screen.DrainResponses()
}

// Clear resets the session to a freshly constructed screen of the same
// dimensions, discarding scrollback and all style/mode state.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.screen.Execute(Command{Kind: CmdExitAlternateScreen})
	s.screen.Execute(Command{Kind: CmdReset})
	s.screen.Scrollback.Clear()
	s.parser.bridge.style = DefaultStyle()
}

// Rows and Cols report the current grid dimensions.
func (s *Session) Rows() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen.Grid.Height
}

func (s *Session) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.screen.Grid.Width
}

// LineContent returns the text of row, trimming trailing spaces and ignoring
// combining runes' base-cell attachment (they render as part of the base
// glyph). An out-of-range row returns "".
func (s *Session) LineContent(row int) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lineText(s.screen.Grid.Row(row))
}

func lineText(row []Cell) string {
	if row == nil {
		return ""
	}
	var b strings.Builder
	for _, c := range row {
		if c.Ch == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteRune(c.Ch)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// String returns the visible screen content as a newline-separated string,
// with trailing blank lines omitted. Implements fmt.Stringer.
func (s *Session) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	lines := make([]string, s.screen.Grid.Height)
	last := -1
	for y := 0; y < s.screen.Grid.Height; y++ {
		lines[y] = lineText(s.screen.Grid.Row(y))
		if lines[y] != "" {
			last = y
		}
	}
	if last < 0 {
		return ""
	}
	return strings.Join(lines[:last+1], "\n")
}

// Search finds every occurrence of pattern in the visible screen, returning
// the position of each match's first rune.
func (s *Session) Search(pattern string) []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if pattern == "" {
		return nil
	}
	var matches []Position
	needle := []rune(pattern)
	for y := 0; y < s.screen.Grid.Height; y++ {
		haystack := []rune(lineText(s.screen.Grid.Row(y)))
		for x := 0; x+len(needle) <= len(haystack); x++ {
			if runesEqual(haystack[x:x+len(needle)], needle) {
				matches = append(matches, Position{Row: y, Col: x})
			}
		}
	}
	return matches
}

// SearchScrollback finds every occurrence of pattern in scrollback history.
// Returned rows are negative, with -1 the most recently scrolled-off line.
func (s *Session) SearchScrollback(pattern string) []Position {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if pattern == "" {
		return nil
	}
	var matches []Position
	needle := []rune(pattern)
	n := s.screen.Scrollback.Len()
	for i := 0; i < n; i++ {
		haystack := []rune(lineText(s.screen.Scrollback.Line(i)))
		for x := 0; x+len(needle) <= len(haystack); x++ {
			if runesEqual(haystack[x:x+len(needle)], needle) {
				matches = append(matches, Position{Row: -(n - i), Col: x})
			}
		}
	}
	return matches
}

func runesEqual(a, b []rune) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetSelection records a normalized text selection range.
func (s *Session) SetSelection(start, end Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if end.Before(start) {
		start, end = end, start
	}
	s.selection = Selection{Start: start, End: end, Active: true}
}

// ClearSelection deactivates the current selection without forgetting its
// bounds (a subsequent SetSelection still works normally).
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selection.Active = false
}

// GetSelection returns the current selection state.
func (s *Session) GetSelection() Selection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selection
}

// SelectedText extracts the text within the active selection, empty cells
// rendered as spaces and rows joined by newlines. Returns "" if no
// selection is active.
func (s *Session) SelectedText() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.selection.Active {
		return ""
	}
	start, end := s.selection.Start, s.selection.End
	width := s.screen.Grid.Width
	height := s.screen.Grid.Height

	var b strings.Builder
	for y := start.Row; y <= end.Row && y < height; y++ {
		x0, x1 := 0, width
		if y == start.Row {
			x0 = start.Col
		}
		if y == end.Row {
			x1 = end.Col + 1
		}
		row := s.screen.Grid.Row(y)
		for x := x0; x < x1 && x < width; x++ {
			if row[x].Ch == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteRune(row[x].Ch)
			}
		}
		if y < end.Row {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
