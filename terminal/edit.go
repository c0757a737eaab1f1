package terminal

import (
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/color"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/screen"
	"github.com/hnimtadd/termcore/terminal/sequences/csi"
	"github.com/hnimtadd/termcore/terminal/set"
	"github.com/hnimtadd/termcore/terminal/sgr"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/style"
)

// withEraseBg runs f with the interned background-only style id erased
// cells take on, 0 while the current background is the default. The id
// is valid only for the duration of the call.
func (t *Terminal) withEraseBg(f func(bg set.ID)) {
	s := t.active
	bg := s.Cursor.Style.Bg
	if bg.Tag == color.TagNone {
		f(0)
		return
	}
	id, err := s.Styles().Add(style.Style{Bg: bg})
	if err != nil {
		t.logger.Warn("terminal: style set full, erasing unstyled", "error", err)
		f(0)
		return
	}
	f(id)
	s.Styles().Release(id)
}

// EraseInLine implements EL.
func (t *Terminal) EraseInLine(mode csi.ELMode) {
	s := t.active
	cur := &s.Cursor
	t.withEraseBg(func(bg set.ID) {
		switch mode {
		case csi.ELModeRight:
			t.clearWidePair(cur.X, cur.Y)
			s.ClearCells(cur.Y, cur.X, t.cols, bg)
			s.Row(cur.Y).Wrapped = false
		case csi.ELModeLeft:
			t.clearWidePair(cur.X, cur.Y)
			s.ClearCells(cur.Y, 0, cur.X+1, bg)
		case csi.ELModeAll:
			s.ClearCells(cur.Y, 0, t.cols, bg)
			s.Row(cur.Y).Wrapped = false
		default:
			t.logger.Debug("terminal: unknown EL mode", "mode", mode)
		}
	})
	cur.PendingWrap = false
}

// EraseInDisplay implements ED, including the scrollback erase of
// ED 3.
func (t *Terminal) EraseInDisplay(mode csi.EDMode) {
	s := t.active
	cur := &s.Cursor
	switch mode {
	case csi.EDModeBelow:
		t.EraseInLine(csi.ELModeRight)
		t.withEraseBg(func(bg set.ID) {
			for y := cur.Y + 1; y < t.rows; y++ {
				s.ClearCells(y, 0, t.cols, bg)
				s.Row(y).Wrapped = false
			}
		})
	case csi.EDModeAbove:
		t.withEraseBg(func(bg set.ID) {
			for y := size.CellCountInt(0); y < cur.Y; y++ {
				s.ClearCells(y, 0, t.cols, bg)
				s.Row(y).Wrapped = false
			}
		})
		t.EraseInLine(csi.ELModeLeft)
	case csi.EDModeComplete:
		t.withEraseBg(func(bg set.ID) {
			s.Clear(bg)
		})
		cur.PendingWrap = false
	case csi.EDModeScrollback:
		s.ClearScrollback()
	default:
		t.logger.Debug("terminal: unknown ED mode", "mode", mode)
	}
}

// EraseChars implements ECH: cells are blanked in place, nothing
// shifts.
func (t *Terminal) EraseChars(repeated uint16) {
	s := t.active
	cur := &s.Cursor
	n := size.CellCountInt(oneBased(repeated))
	if n > t.cols-cur.X {
		n = t.cols - cur.X
	}
	t.clearWidePair(cur.X, cur.Y)
	t.clearWidePair(cur.X+n-1, cur.Y)
	t.withEraseBg(func(bg set.ID) {
		s.ClearCells(cur.Y, cur.X, cur.X+n, bg)
	})
	cur.PendingWrap = false
}

// DeleteChars implements DCH.
func (t *Terminal) DeleteChars(repeated uint16) {
	s := t.active
	cur := &s.Cursor
	t.withEraseBg(func(bg set.ID) {
		s.DeleteCells(cur.X, cur.Y, size.CellCountInt(oneBased(repeated)), bg)
	})
	cur.PendingWrap = false
}

// InsertBlanks implements ICH.
func (t *Terminal) InsertBlanks(repeated uint16) {
	s := t.active
	cur := &s.Cursor
	t.withEraseBg(func(bg set.ID) {
		s.InsertCells(cur.X, cur.Y, size.CellCountInt(oneBased(repeated)), bg)
	})
	cur.PendingWrap = false
}

// InsertLines implements IL. No-op outside the scroll region; the
// cursor returns to the left margin.
func (t *Terminal) InsertLines(repeated uint16) {
	s := t.active
	cur := &s.Cursor
	top, bottom := s.ScrollRegion()
	if cur.Y < top || cur.Y > bottom {
		return
	}
	s.InsertLines(cur.Y, size.CellCountInt(oneBased(repeated)))
	cur.X = 0
	cur.PendingWrap = false
}

// DeleteLines implements DL. No-op outside the scroll region; the
// cursor returns to the left margin.
func (t *Terminal) DeleteLines(repeated uint16) {
	s := t.active
	cur := &s.Cursor
	top, bottom := s.ScrollRegion()
	if cur.Y < top || cur.Y > bottom {
		return
	}
	s.DeleteLines(cur.Y, size.CellCountInt(oneBased(repeated)))
	cur.X = 0
	cur.PendingWrap = false
}

// ScrollUp implements SU: the region scrolls, the cursor stays.
func (t *Terminal) ScrollUp(repeated uint16) {
	t.active.ScrollUp(size.CellCountInt(oneBased(repeated)))
}

// ScrollDown implements SD.
func (t *Terminal) ScrollDown(repeated uint16) {
	t.active.ScrollDown(size.CellCountInt(oneBased(repeated)))
}

// SetGraphicsRendition implements handler.SGRHandler: one attribute of
// an SGR sequence mutates the cursor style, which is re-interned.
func (t *Terminal) SetGraphicsRendition(attr *sgr.Attribute) {
	if attr.Type == sgr.AttributeTypeUnknown {
		t.logger.Debug("terminal: unknown SGR attribute",
			"full", attr.Unknown.Full, "partial", attr.Unknown.Partial)
		return
	}
	if !t.active.Cursor.Style.Apply(attr) {
		t.logger.Debug("terminal: unhandled SGR attribute", "type", attr.Type)
		return
	}
	t.internCursorStyle()
}

// internCursorStyle swaps the cursor's interned style id to match its
// style value. A full style set degrades to the default style rather
// than failing the stream.
func (t *Terminal) internCursorStyle() {
	s := t.active
	cur := &s.Cursor
	if cur.StyleID != style.DefaultID {
		s.Styles().Release(cur.StyleID)
		cur.StyleID = style.DefaultID
	}
	if cur.Style.IsDefault() {
		return
	}
	id, err := s.Styles().Add(cur.Style)
	if err != nil {
		t.logger.Warn("terminal: style set full, printing unstyled", "error", err)
		return
	}
	cur.StyleID = id
}

// FullReset implements RIS: both screens, modes, tabstops, charsets and
// the palette return to their power-on state. The window title
// survives, matching xterm.
func (t *Terminal) FullReset() {
	t.primary = screen.NewScreen(t.cols, t.rows, t.scrollbackCap)
	t.alt = screen.NewScreen(t.cols, t.rows, 0)
	t.active = t.primary
	t.modes.Reset()
	t.tabstops.Reset(defaultTabInterval)
	t.charsets = charset.NewState(t.baseCharset)
	t.palette = t.basePalette
	t.defaultFg = t.baseFg
	t.defaultBg = t.baseBg
	t.prevPrint = 0
	t.titleStack = nil
}

// SoftReset implements DECSTR: modes, margins, graphic rendition,
// charsets and the saved cursor return to their defaults. Display
// content, cursor position, scrollback and the title are untouched.
func (t *Terminal) SoftReset() {
	s := t.active
	t.modes.Set(core.ModeCursorVisible, true)
	t.modes.Set(core.ModeInsert, false)
	t.modes.Set(core.ModeOrigin, false)
	t.modes.Set(core.ModeWraparound, true)
	s.SetScrollRegion(0, t.rows-1)
	s.Cursor.PendingWrap = false
	s.Cursor.Style = style.Style{}
	t.internCursorStyle()
	s.Saved = nil
	t.charsets = charset.NewState(t.baseCharset)
	t.prevPrint = 0
}
