package terminal

import (
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/set"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/style"
)

// SetMode implements handler.VT100Handler for recognized modes. Most
// modes only store their value; a few carry side effects here.
func (t *Terminal) SetMode(mode core.Mode, value bool) {
	switch mode {
	case core.ModeOrigin:
		t.modes.Set(mode, value)
		t.cursorHome()

	case core.ModeReverseColors:
		t.modes.Set(mode, value)
		t.markAllDirty()

	case core.ModeAltScreen:
		t.modes.Set(mode, value)
		if value {
			t.switchToAlt(false)
		} else {
			t.switchToPrimary()
		}

	case core.ModeSaveCursor:
		t.modes.Set(mode, value)
		if value {
			t.SaveCursor()
		} else {
			t.RestoreCursor()
		}

	case core.ModeAltScreenAndClear:
		t.modes.Set(mode, value)
		if value {
			if !t.IsAlt() {
				t.SaveCursor()
				t.switchToAlt(true)
			}
		} else if t.IsAlt() {
			t.switchToPrimary()
			t.RestoreCursor()
		}

	default:
		t.modes.Set(mode, value)
	}
}

// SetUnknownMode records a mode number this implementation does not
// recognize, so DECRQM can still report its value.
func (t *Terminal) SetUnknownMode(value int, ansi bool, setTo bool) {
	t.logger.Debug("terminal: unrecognized mode", "mode", value, "ansi", ansi, "set", setTo)
	t.modes.SetUnknown(value, ansi, setTo)
}

// RequestMode implements DECRQM, answering with a DECRPM report.
func (t *Terminal) RequestMode(value int, ansi bool) {
	rep := t.modes.Report(value, ansi)
	if ansi {
		t.respond("\x1b[%d;%d$y", value, rep)
		return
	}
	t.respond("\x1b[?%d;%d$y", value, rep)
}

// DeviceAttributes answers DA1 as a VT102.
func (t *Terminal) DeviceAttributes() {
	t.respond("\x1b[?6c")
}

// DeviceStatusReport answers DSR 5 (operating status) and DSR 6
// (cursor position report, origin-relative under DECOM).
func (t *Terminal) DeviceStatusReport(req uint16) {
	switch req {
	case 5:
		t.respond("\x1b[0n")
	case 6:
		cur := t.active.Cursor
		row := cur.Y - t.originTop() + 1
		col := cur.X + 1
		t.respond("\x1b[%d;%dR", row, col)
	default:
		t.logger.Debug("terminal: unknown DSR request", "req", req)
	}
}

// PushTitle implements XTWINOPS 22. The stack is bounded; pushes beyond
// the bound drop the oldest entry.
func (t *Terminal) PushTitle() {
	if len(t.titleStack) >= maxTitleStack {
		copy(t.titleStack, t.titleStack[1:])
		t.titleStack = t.titleStack[:maxTitleStack-1]
	}
	t.titleStack = append(t.titleStack, t.title)
}

// PopTitle implements XTWINOPS 23. An empty stack is a no-op.
func (t *Terminal) PopTitle() {
	if n := len(t.titleStack); n > 0 {
		t.title = t.titleStack[n-1]
		t.titleStack = t.titleStack[:n-1]
	}
}

// switchToAlt activates the alternate screen, carrying the cursor
// position and style over. The alternate screen holds no scrollback.
func (t *Terminal) switchToAlt(clear bool) {
	if t.IsAlt() {
		return
	}
	pc := t.primary.Cursor
	t.active = t.alt
	cur := &t.alt.Cursor
	cur.X = min(pc.X, t.cols-1)
	cur.Y = min(pc.Y, t.rows-1)
	cur.PendingWrap = false
	cur.Style = pc.Style
	cur.StyleID = style.DefaultID
	cur.HyperlinkID = set.ID(0)
	t.internCursorStyle()
	if clear {
		t.withEraseBg(func(bg set.ID) {
			t.alt.Clear(bg)
		})
	}
	t.markAllDirty()
}

// switchToPrimary returns to the primary screen, dropping the alternate
// cursor's interned references.
func (t *Terminal) switchToPrimary() {
	if !t.IsAlt() {
		return
	}
	cur := &t.alt.Cursor
	if cur.StyleID != style.DefaultID {
		t.alt.Styles().Release(cur.StyleID)
		cur.StyleID = style.DefaultID
	}
	if cur.HyperlinkID != 0 {
		t.alt.Hyperlinks().Release(cur.HyperlinkID)
		cur.HyperlinkID = 0
	}
	t.active = t.primary
	t.markAllDirty()
}

func (t *Terminal) markAllDirty() {
	for y := size.CellCountInt(0); y < t.rows; y++ {
		t.active.MarkDirty(y)
	}
}
