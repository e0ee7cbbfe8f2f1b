package vtcore

// View is an immutable snapshot of a Session's screen state, safe to read
// without holding the Session's lock after it is returned. Every Cell and
// row slice is copied out of the live grid.
type View struct {
	Width, Height int
	Rows          [][]Cell

	CursorX, CursorY int
	CursorStyle      CursorStyle
	CursorVisible    bool

	Alternate bool

	ScrollbackLen    int
	ScrollOffset     int
	DirtyRows        []bool

	Title string
}

func newView(s *ScreenState) View {
	v := View{
		Width:         s.Grid.Width,
		Height:        s.Grid.Height,
		Rows:          make([][]Cell, s.Grid.Height),
		CursorX:       s.Cursor.X,
		CursorY:       s.Cursor.Y,
		CursorStyle:   s.Cursor.Style,
		CursorVisible: s.Cursor.Visible,
		Alternate:     s.IsAlternate(),
		ScrollbackLen: s.Scrollback.Len(),
		ScrollOffset:  s.ScrollOffset,
		DirtyRows:     s.Grid.DirtyRows(),
		Title:         s.Title,
	}
	for y := 0; y < s.Grid.Height; y++ {
		row := s.Grid.Row(y)
		out := make([]Cell, len(row))
		for x, c := range row {
			out[x] = c.Clone()
		}
		v.Rows[y] = out
	}
	return v
}

// Cell returns the cell at (x, y), or the zero Cell if out of range.
func (v View) Cell(x, y int) Cell {
	if y < 0 || y >= len(v.Rows) || x < 0 || x >= len(v.Rows[y]) {
		return Cell{}
	}
	return v.Rows[y][x]
}
