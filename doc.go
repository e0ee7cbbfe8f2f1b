// Package vtcore provides a headless VT/ANSI terminal emulator core: a
// byte-stream parser, a cell-grid screen model, and a host-facing Session
// that composes the two. It renders nothing and owns no process; it turns
// bytes in (from a PTY, a recorded session, a network stream) into a grid of
// styled cells a host can draw however it likes.
//
// # Quick Start
//
//	sess := vtcore.NewSession(vtcore.WithSize(24, 80))
//	sess.WriteBytes([]byte("\x1b[31mHello \x1b[32mWorld\x1b[0m!"))
//	fmt.Println(sess.String()) // "Hello World!"
//
// # Architecture
//
// Three layers, each independently usable:
//
//   - [Parser]: decodes raw bytes into an ordered []Command
//   - [ScreenState]: applies one Command at a time to a [Grid], [Cursor] and
//     style, with no knowledge of byte streams
//   - [Session]: owns one Parser and one ScreenState behind a lock, and is
//     the type most callers want
//
// # Driving a Session
//
//	sess := vtcore.NewSession(
//	    vtcore.WithSize(24, 80),
//	    vtcore.WithScrollbackLimit(5000),
//	)
//
//	cmd := exec.Command("ls", "-la", "--color")
//	cmd.Stdout = sess // Session implements io.Writer
//	cmd.Run()
//
//	for y := 0; y < sess.Rows(); y++ {
//	    fmt.Println(sess.LineContent(y))
//	}
//
// # Alternate Screen
//
// Full-screen applications (vim, less, htop) switch to a second, unscrolled
// screen via CSI ?1049h/l. Every entry installs a fresh blank grid; nothing
// from a prior alternate-screen session survives a round trip:
//
//	view := sess.View()
//	if view.Alternate {
//	    // a full-screen app is in control
//	}
//
// # Cells and Styling
//
// Each [View] row is a slice of [Cell], each with its own [CellStyle]:
//
//	view := sess.View()
//	c := view.Cell(0, 0)
//	fmt.Printf("char=%c bold=%v fg=%v\n", c.Ch, c.Style.HasFlag(vtcore.StyleBold), c.Style.Fg)
//
// Style flags include Bold, Dim, Italic, Strike, Reverse and Hidden; underline
// is a separate six-way enum ([UnderlineStyle]: none plus five variants) since curly/dotted/dashed
// underlines are independent of the boolean flags.
//
// # Scrollback
//
// Lines scrolled off the top of the primary grid are retained up to a
// configurable limit. Supply a custom store with [WithScrollback], or rely on
// the default in-memory ring sized by [WithScrollbackLimit]:
//
//	for i := 0; i < sess.View().ScrollbackLen; i++ {
//	    // host-side scrollback reader, e.g. via a ScrollbackProvider
//	}
//
// # Responses
//
// Some sequences (device-attributes queries) require a reply written back to
// the child process. The screen model queues these instead of writing them
// itself; drain and forward them after every WriteBytes call:
//
//	sess.WriteBytes(data)
//	for _, resp := range sess.DrainResponses() {
//	    ptyWriter.Write(resp)
//	}
//
// # Selection and Search
//
//	sess.SetSelection(vtcore.Position{Row: 0, Col: 0}, vtcore.Position{Row: 2, Col: 10})
//	text := sess.SelectedText()
//	sess.ClearSelection()
//
//	matches := sess.Search("error")
//	scrollbackMatches := sess.SearchScrollback("error")
//
// # Dirty Tracking
//
// [View] carries a per-row (not per-cell) dirty vector, so a renderer's frame
// cost is proportional to changed rows:
//
//	view := sess.View()
//	for y, dirty := range view.DirtyRows {
//	    if dirty {
//	        // redraw row y
//	    }
//	}
//
// # Thread Safety
//
// Session methods are safe for concurrent use; a single RWMutex serializes
// WriteBytes against View, Resize and the read-only accessors.
//
// # Keyboard Encoding
//
// The reverse direction — host key events into child-process input bytes —
// is a separate, stateless concern handled by the vtcore/keyin subpackage,
// not by Session.
//
// # Supported Sequences
//
// The parser, via [github.com/danielgatis/go-ansicode], covers:
//
//   - Cursor movement (CUU/CUD/CUF/CUB/CUP/HVP/CHA/VPA/CHT/CBT)
//   - Cursor save/restore (DECSC/DECRC)
//   - Erase (ED/EL/ECH) and insert/delete (ICH/DCH/IL/DL)
//   - Scrolling (SU/SD/DECSTBM) and reverse index (RI)
//   - Character attributes (SGR) with 16-color, 256-color and true-color support
//   - Terminal modes (DECSET/DECRST), alternate screen, bracketed paste, mouse reporting
//   - Window title, including the title stack (OSC 0/1/2, XTPUSHTITLE/XTPOPTITLE)
//   - Hyperlinks (OSC 8)
//   - Device attributes (DA1) and device reset (RIS)
//
// Kitty/Sixel graphics, the Kitty keyboard protocol, clipboard access (OSC
// 52), dynamic color reports (OSC 4/10/11/12), working-directory and shell
// integration reporting (OSC 7/133) are intentionally out of scope; see
// DESIGN.md for the rationale.
package vtcore
