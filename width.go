package vtcore

import "github.com/unilibs/uniwidth"

// isCombining reports whether r is a zero-width rune (combining marks,
// most control/format characters) that should attach to the previous cell
// rather than occupy a column of its own. spec.md's Cell model has no
// wide-character (CJK double-width) concept, so only the zero-width case is
// consulted; uniwidth's wide-character classification is unused here.
func isCombining(r rune) bool {
	return uniwidth.RuneWidth(r) == 0
}
