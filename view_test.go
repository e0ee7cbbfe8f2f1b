package vtcore

import "testing"

func TestViewCellOutOfRange(t *testing.T) {
	s := NewScreenState(5, 3, nil)
	v := newView(s)

	if c := v.Cell(-1, 0); c.Ch != 0 || c.Hyperlink != nil || c.Combining != nil {
		t.Errorf("expected zero Cell for negative x, got %+v", c)
	}
	if c := v.Cell(0, 3); c.Ch != 0 || c.Hyperlink != nil || c.Combining != nil {
		t.Errorf("expected zero Cell for out-of-range y, got %+v", c)
	}
}

func TestViewIsIndependentOfLiveGrid(t *testing.T) {
	s := NewScreenState(5, 3, nil)
	s.Grid.Cell(0, 0).Ch = 'A'

	v := newView(s)
	s.Grid.Cell(0, 0).Ch = 'Z'

	if v.Cell(0, 0).Ch != 'A' {
		t.Errorf("expected snapshot to retain 'A' after live mutation, got %q", v.Cell(0, 0).Ch)
	}
}

func TestViewReflectsCursorAndDimensions(t *testing.T) {
	s := NewScreenState(7, 4, nil)
	s.Cursor.X, s.Cursor.Y = 2, 1

	v := newView(s)
	if v.Width != 7 || v.Height != 4 {
		t.Errorf("dims = %dx%d, want 7x4", v.Width, v.Height)
	}
	if v.CursorX != 2 || v.CursorY != 1 {
		t.Errorf("cursor = (%d,%d), want (2,1)", v.CursorX, v.CursorY)
	}
	if len(v.DirtyRows) != 4 {
		t.Errorf("len(DirtyRows) = %d, want 4", len(v.DirtyRows))
	}
}
