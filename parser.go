package vtcore

import (
	"image/color"

	"github.com/danielgatis/go-ansicode"
	"github.com/google/uuid"
)

// Parser decodes a raw VT/ANSI byte stream into an ordered Command slice.
// It wraps the VT500-series state machine of github.com/danielgatis/go-ansicode
// (itself backed by go-vte) so that THE CORE reuses a faithful, already-tested
// transition table instead of reimplementing one. The wrapped Decoder
// dispatches synchronously into bridgeHandler from within Write, so by the
// time Parse returns, every command implied by the consumed bytes has been
// buffered.
//
// Parse is resumable: splitting a byte stream across two calls yields the
// same logical command sequence as one call over the concatenation, because
// the underlying decoder carries its partial-escape state across Write calls
// and bridgeHandler's buffer is drained (not reset) on every Parse.
type Parser struct {
	decoder *ansicode.Decoder
	bridge  *bridgeHandler
}

// NewParser returns a ready-to-use Parser with ASCII as the initial charset.
func NewParser() *Parser {
	b := &bridgeHandler{style: DefaultStyle()}
	return &Parser{
		decoder: ansicode.NewDecoder(b),
		bridge:  b,
	}
}

// Parse decodes data and returns the Commands it implies, in order. The
// returned slice is owned by the caller; the Parser's internal buffer is
// cleared before returning.
func (p *Parser) Parse(data []byte) []Command {
	p.decoder.Write(data)
	cmds := p.bridge.commands
	p.bridge.commands = nil
	return cmds
}

// bridgeHandler implements ansicode.Handler, translating every VT action
// into zero or more Command values instead of mutating terminal state
// directly (that is the Screen Model's job, one layer up). Handler methods
// for protocols outside SPEC_FULL's scope (Kitty/Sixel graphics, clipboard,
// dynamic colors, working directory, the Kitty keyboard protocol, and DEC
// private modes with no ScreenState field) are present to satisfy the
// interface but intentionally emit nothing; see DESIGN.md.
type bridgeHandler struct {
	commands []Command
	style    CellStyle // running SGR accumulator, re-emitted whole on every attribute change
}

func (b *bridgeHandler) emit(c Command) {
	b.commands = append(b.commands, c)
}

var _ ansicode.Handler = (*bridgeHandler)(nil)

// --- text and C0 controls ---

func (b *bridgeHandler) Input(r rune) {
	if isCombining(r) {
		b.emit(Command{Kind: CmdPrint, Ch: r, Bool: true})
		return
	}
	b.emit(Command{Kind: CmdPrint, Ch: r})
}

func (b *bridgeHandler) Backspace()      { b.emit(Command{Kind: CmdExecute, Byte: 0x08}) }
func (b *bridgeHandler) CarriageReturn() { b.emit(Command{Kind: CmdExecute, Byte: 0x0D}) }
func (b *bridgeHandler) LineFeed()       { b.emit(Command{Kind: CmdExecute, Byte: 0x0A}) }
func (b *bridgeHandler) Bell()           { b.emit(Command{Kind: CmdBell}) }
func (b *bridgeHandler) Substitute()     { b.emit(Command{Kind: CmdSubstitute}) }

func (b *bridgeHandler) Tab(n int) { b.emit(Command{Kind: CmdTabMove, N: n, Forward: true}) }

// --- cursor motion ---

func (b *bridgeHandler) Goto(row, col int) { b.emit(Command{Kind: CmdMoveCursor, X: col, Y: row}) }
func (b *bridgeHandler) GotoCol(col int)   { b.emit(Command{Kind: CmdMoveCursorCol, X: col}) }
func (b *bridgeHandler) GotoLine(row int)  { b.emit(Command{Kind: CmdMoveCursorRow, Y: row}) }

func (b *bridgeHandler) MoveUp(n int)       { b.emit(Command{Kind: CmdMoveCursorRelative, DY: -n}) }
func (b *bridgeHandler) MoveDown(n int)     { b.emit(Command{Kind: CmdMoveCursorRelative, DY: n}) }
func (b *bridgeHandler) MoveForward(n int)  { b.emit(Command{Kind: CmdMoveCursorRelative, DX: n}) }
func (b *bridgeHandler) MoveBackward(n int) { b.emit(Command{Kind: CmdMoveCursorRelative, DX: -n}) }

func (b *bridgeHandler) MoveUpCr(n int) {
	b.emit(Command{Kind: CmdMoveCursorRelative, DY: -n})
	b.emit(Command{Kind: CmdExecute, Byte: 0x0D})
}

func (b *bridgeHandler) MoveDownCr(n int) {
	b.emit(Command{Kind: CmdMoveCursorRelative, DY: n})
	b.emit(Command{Kind: CmdExecute, Byte: 0x0D})
}

func (b *bridgeHandler) MoveForwardTabs(n int)  { b.emit(Command{Kind: CmdTabMove, N: n, Forward: true}) }
func (b *bridgeHandler) MoveBackwardTabs(n int) { b.emit(Command{Kind: CmdTabMove, N: n, Forward: false}) }

func (b *bridgeHandler) HorizontalTabSet() { b.emit(Command{Kind: CmdSetTabStop}) }

// --- erasure ---

func (b *bridgeHandler) ClearLine(mode ansicode.LineClearMode) {
	b.emit(Command{Kind: CmdEraseLine, Mode: lineClearModeToInt(mode)})
}

func (b *bridgeHandler) ClearScreen(mode ansicode.ClearMode) {
	if mode == ansicode.ClearModeSaved {
		b.emit(Command{Kind: CmdClearScrollback})
		return
	}
	b.emit(Command{Kind: CmdEraseDisplay, Mode: clearModeToInt(mode)})
}

func (b *bridgeHandler) EraseChars(n int) { b.emit(Command{Kind: CmdEraseChars, N: n}) }

func (b *bridgeHandler) ClearTabs(mode ansicode.TabulationClearMode) {
	if mode == ansicode.TabulationClearModeAll {
		b.emit(Command{Kind: CmdClearAllTabStops})
		return
	}
	b.emit(Command{Kind: CmdClearTabStop})
}

// --- scroll-buffer edits ---

func (b *bridgeHandler) ScrollUp(n int)   { b.emit(Command{Kind: CmdScrollUp, N: n}) }
func (b *bridgeHandler) ScrollDown(n int) { b.emit(Command{Kind: CmdScrollDown, N: n}) }

func (b *bridgeHandler) InsertBlankLines(n int) { b.emit(Command{Kind: CmdInsertLine, N: n}) }
func (b *bridgeHandler) DeleteLines(n int)      { b.emit(Command{Kind: CmdDeleteLine, N: n}) }
func (b *bridgeHandler) InsertBlank(n int)      { b.emit(Command{Kind: CmdInsertChars, N: n}) }
func (b *bridgeHandler) DeleteChars(n int)      { b.emit(Command{Kind: CmdDeleteChars, N: n}) }

// --- SGR ---

func (b *bridgeHandler) SetTerminalCharAttribute(attr ansicode.TerminalCharAttribute) {
	switch attr.Attr {
	case ansicode.CharAttributeForeground:
		b.emit(Command{Kind: CmdSetForeground, Color: resolveAttrColor(attr, DefaultForeground)})
	case ansicode.CharAttributeBackground:
		b.emit(Command{Kind: CmdSetBackground, Color: resolveAttrColor(attr, DefaultBackground)})
	}
	b.style = applyCharAttribute(b.style, attr)
	b.emit(Command{Kind: CmdSetStyle, Style: b.style})
}

// --- state save/restore ---

func (b *bridgeHandler) SaveCursorPosition()    { b.emit(Command{Kind: CmdSaveCursor}) }
func (b *bridgeHandler) RestoreCursorPosition() { b.emit(Command{Kind: CmdRestoreCursor}) }

// --- screen mode / private modes ---

func (b *bridgeHandler) SetMode(mode ansicode.TerminalMode)   { b.setMode(mode, true) }
func (b *bridgeHandler) UnsetMode(mode ansicode.TerminalMode) { b.setMode(mode, false) }

func (b *bridgeHandler) setMode(mode ansicode.TerminalMode, set bool) {
	switch mode {
	case ansicode.TerminalModeShowCursor:
		if set {
			b.emit(Command{Kind: CmdShowCursor})
		} else {
			b.emit(Command{Kind: CmdHideCursor})
		}
	case ansicode.TerminalModeBracketedPaste:
		b.emit(Command{Kind: CmdSetBracketedPaste, Bool: set})
	case ansicode.TerminalModeSwapScreenAndSetRestoreCursor:
		if set {
			b.emit(Command{Kind: CmdEnterAlternateScreen})
		} else {
			b.emit(Command{Kind: CmdExitAlternateScreen})
		}
	case ansicode.TerminalModeReportMouseClicks:
		b.emit(Command{Kind: CmdSetMouseMode, Mouse: mouseModeOrNone(set, MouseModeClick)})
	case ansicode.TerminalModeReportCellMouseMotion:
		b.emit(Command{Kind: CmdSetMouseMode, Mouse: mouseModeOrNone(set, MouseModeMotion)})
	case ansicode.TerminalModeReportAllMouseMotion:
		b.emit(Command{Kind: CmdSetMouseMode, Mouse: mouseModeOrNone(set, MouseModeAll)})
	}
	// TerminalModeInsert, TerminalModeOrigin, TerminalModeCursorKeys,
	// TerminalModeColumnMode, TerminalModeLineFeedNewLine,
	// TerminalModeBlinkingCursor, TerminalModeUTF8Mouse, TerminalModeSGRMouse,
	// TerminalModeAlternateScroll, TerminalModeUrgencyHints and
	// TerminalModeReportFocusInOut have no SPEC_FULL ScreenState field: no-op.
}

func mouseModeOrNone(set bool, m MouseMode) MouseMode {
	if set {
		return m
	}
	return MouseModeNone
}

func (b *bridgeHandler) SetCursorStyle(style ansicode.CursorStyle) {
	b.emit(Command{Kind: CmdSetCursorStyle, CursorVar: CursorStyle(style)})
}

func (b *bridgeHandler) SetScrollingRegion(top, bottom int) {
	b.emit(Command{Kind: CmdSetScrollRegion, Top: top - 1, Bottom: bottom})
}

// --- character set (G0 only; G1-G3 and non-G0 active-slot selection are
// out of SPEC_FULL's ScreenState, which tracks a single active charset) ---

func (b *bridgeHandler) ConfigureCharset(index ansicode.CharsetIndex, charset ansicode.Charset) {
	if index != ansicode.CharsetIndexG0 {
		return
	}
	b.emit(Command{Kind: CmdSetCharset, Charset: Charset(charset)})
}

func (b *bridgeHandler) SetActiveCharset(n int) {}

// --- title, hyperlink ---

func (b *bridgeHandler) SetTitle(title string) { b.emit(Command{Kind: CmdSetTitle, Title: title}) }
func (b *bridgeHandler) PushTitle()            { b.emit(Command{Kind: CmdPushTitle}) }
func (b *bridgeHandler) PopTitle()             { b.emit(Command{Kind: CmdPopTitle}) }

func (b *bridgeHandler) SetHyperlink(h *ansicode.Hyperlink) {
	if h == nil || h.URI == "" {
		b.emit(Command{Kind: CmdSetHyperlink, Hyperlink: nil})
		return
	}
	id := h.ID
	if id == "" {
		id = uuid.NewString()
	}
	b.emit(Command{Kind: CmdSetHyperlink, Hyperlink: &Hyperlink{ID: id, URI: h.URI}})
}

// --- device attributes / reset / reverse index ---

func (b *bridgeHandler) IdentifyTerminal(byte)  { b.emit(Command{Kind: CmdDeviceAttributeQuery}) }
func (b *bridgeHandler) ResetState()            { b.emit(Command{Kind: CmdReset}); b.style = DefaultStyle() }
func (b *bridgeHandler) ReverseIndex()          { b.emit(Command{Kind: CmdReverseIndex}) }

// --- handler methods with no SPEC_FULL-scoped effect ---

func (b *bridgeHandler) ApplicationCommandReceived([]byte)                 {}
func (b *bridgeHandler) StartOfStringReceived([]byte)                      {}
func (b *bridgeHandler) PrivacyMessageReceived([]byte)                     {}
func (b *bridgeHandler) SixelReceived(_ [][]uint16, _ []byte)              {}
func (b *bridgeHandler) ClipboardLoad(_ byte, _ string)                    {}
func (b *bridgeHandler) ClipboardStore(_ byte, _ []byte)                   {}
func (b *bridgeHandler) SetDynamicColor(_ string, _ int, _ string) {}
func (b *bridgeHandler) SetColor(int, color.Color)                 {}
func (b *bridgeHandler) ResetColor(int)                            {}
func (b *bridgeHandler) SetWorkingDirectory(string)            {}
func (b *bridgeHandler) SetKeyboardMode(ansicode.KeyboardMode, ansicode.KeyboardModeBehavior) {}
func (b *bridgeHandler) PushKeyboardMode(ansicode.KeyboardMode)   {}
func (b *bridgeHandler) PopKeyboardMode(int)                      {}
func (b *bridgeHandler) ReportKeyboardMode()                      {}
func (b *bridgeHandler) ReportModifyOtherKeys()                   {}
func (b *bridgeHandler) SetModifyOtherKeys(ansicode.ModifyOtherKeys) {}
func (b *bridgeHandler) SetKeypadApplicationMode()                {}
func (b *bridgeHandler) UnsetKeypadApplicationMode()              {}
func (b *bridgeHandler) DeviceStatus(int)                         {}
func (b *bridgeHandler) Decaln()                                  {}
func (b *bridgeHandler) TextAreaSizeChars()                       {}
func (b *bridgeHandler) TextAreaSizePixels()                      {}
func (b *bridgeHandler) CellSizePixels()                          {}

// style is the bridge's running SGR accumulator, mirroring the teacher's
// per-Terminal "template": each SetTerminalCharAttribute call mutates it in
// place and re-emits the whole thing as CmdSetStyle, so the Screen Model
// always converges on the correct final style before the next Print even
// though go-ansicode delivers one attribute per callback rather than one
// callback per whole SGR sequence.
func applyCharAttribute(s CellStyle, attr ansicode.TerminalCharAttribute) CellStyle {
	switch attr.Attr {
	case ansicode.CharAttributeReset:
		return DefaultStyle()
	case ansicode.CharAttributeBold:
		s.SetFlag(StyleBold)
	case ansicode.CharAttributeDim:
		s.SetFlag(StyleDim)
	case ansicode.CharAttributeItalic:
		s.SetFlag(StyleItalic)
	case ansicode.CharAttributeUnderline:
		s.Underline = UnderlineSingle
	case ansicode.CharAttributeDoubleUnderline:
		s.Underline = UnderlineDouble
	case ansicode.CharAttributeCurlyUnderline:
		s.Underline = UnderlineCurly
	case ansicode.CharAttributeDottedUnderline:
		s.Underline = UnderlineDotted
	case ansicode.CharAttributeDashedUnderline:
		s.Underline = UnderlineDashed
	case ansicode.CharAttributeReverse:
		s.SetFlag(StyleReverse)
	case ansicode.CharAttributeHidden:
		s.SetFlag(StyleHidden)
	case ansicode.CharAttributeStrike:
		s.SetFlag(StyleStrike)
	case ansicode.CharAttributeCancelBold:
		s.ClearFlag(StyleBold)
	case ansicode.CharAttributeCancelBoldDim:
		s.ClearFlag(StyleBold | StyleDim)
	case ansicode.CharAttributeCancelItalic:
		s.ClearFlag(StyleItalic)
	case ansicode.CharAttributeCancelUnderline:
		s.Underline = UnderlineNone
	case ansicode.CharAttributeCancelReverse:
		s.ClearFlag(StyleReverse)
	case ansicode.CharAttributeCancelHidden:
		s.ClearFlag(StyleHidden)
	case ansicode.CharAttributeCancelStrike:
		s.ClearFlag(StyleStrike)
	case ansicode.CharAttributeForeground:
		s.Fg = resolveAttrColor(attr, DefaultForeground)
	case ansicode.CharAttributeBackground:
		s.Bg = resolveAttrColor(attr, DefaultBackground)
	}
	return s
}

// resolveAttrColor converts a go-ansicode resolved color (RGB or indexed;
// go-ansicode itself resolves named SGR colors 30-37/90-97/40-47/100-107
// into an index before reaching the handler) into a vtcore.Color.
func resolveAttrColor(attr ansicode.TerminalCharAttribute, fallback Color) Color {
	if attr.RGBColor != nil {
		return Color{attr.RGBColor.R, attr.RGBColor.G, attr.RGBColor.B}
	}
	if attr.IndexedColor != nil {
		return IndexedColor(int(attr.IndexedColor.Index))
	}
	return fallback
}

func lineClearModeToInt(m ansicode.LineClearMode) int {
	switch m {
	case ansicode.LineClearModeLeft:
		return 1
	case ansicode.LineClearModeAll:
		return 2
	default:
		return 0
	}
}

func clearModeToInt(m ansicode.ClearMode) int {
	switch m {
	case ansicode.ClearModeAbove:
		return 1
	case ansicode.ClearModeAll:
		return 2
	default:
		return 0
	}
}
