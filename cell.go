package vtcore

// UnderlineStyle selects the rendering variant of the underline attribute.
type UnderlineStyle int

const (
	UnderlineNone UnderlineStyle = iota
	UnderlineSingle
	UnderlineDouble
	UnderlineCurly
	UnderlineDotted
	UnderlineDashed
)

// StyleFlags is a bitmask of the boolean CellStyle attributes.
type StyleFlags uint16

const (
	StyleBold StyleFlags = 1 << iota
	StyleDim
	StyleItalic
	StyleStrike
	StyleReverse
	StyleHidden
)

// CellStyle is the full set of rendering attributes applied to a cell.
// The zero value is not the default style; use DefaultStyle.
type CellStyle struct {
	Fg, Bg    Color
	Underline UnderlineStyle
	Flags     StyleFlags
}

// DefaultStyle is {fg=white, bg=black, all flags clear, underline=none}.
func DefaultStyle() CellStyle {
	return CellStyle{Fg: DefaultForeground, Bg: DefaultBackground}
}

func (s *CellStyle) HasFlag(f StyleFlags) bool { return s.Flags&f != 0 }
func (s *CellStyle) SetFlag(f StyleFlags)      { s.Flags |= f }
func (s *CellStyle) ClearFlag(f StyleFlags)    { s.Flags &^= f }

// Hyperlink is a shared record of {id, uri}. Cells reference a hyperlink by
// pointer so long runs of linked text do not duplicate the URI string; the
// Screen Model's current-hyperlink slot holds the pointer handed to
// subsequently printed cells until SetHyperlink(nil) clears it.
type Hyperlink struct {
	ID  string
	URI string
}

// Cell is a single grid position: a primary character, its style, an
// optional hyperlink, and any zero-width combining characters appended to
// the primary (e.g. combining diacritics that follow a base rune).
type Cell struct {
	Ch        rune
	Style     CellStyle
	Hyperlink *Hyperlink
	Combining []rune
}

// NewCell returns a cell holding a space with the default style.
func NewCell() Cell {
	return Cell{Ch: ' ', Style: DefaultStyle()}
}

// Reset restores the cell to its default state in place.
func (c *Cell) Reset() {
	c.Ch = ' '
	c.Style = DefaultStyle()
	c.Hyperlink = nil
	c.Combining = nil
}

// Clone returns an independent copy of the cell (the combining-rune slice is
// copied, not shared, so mutating the clone cannot alias the original).
func (c Cell) Clone() Cell {
	clone := c
	if len(c.Combining) > 0 {
		clone.Combining = append([]rune(nil), c.Combining...)
	}
	return clone
}

// Equal reports componentwise equality, including combining runes and the
// hyperlink's value (not pointer identity).
func (c Cell) Equal(other Cell) bool {
	if c.Ch != other.Ch || c.Style != other.Style {
		return false
	}
	if (c.Hyperlink == nil) != (other.Hyperlink == nil) {
		return false
	}
	if c.Hyperlink != nil && *c.Hyperlink != *other.Hyperlink {
		return false
	}
	if len(c.Combining) != len(other.Combining) {
		return false
	}
	for i := range c.Combining {
		if c.Combining[i] != other.Combining[i] {
			return false
		}
	}
	return true
}
