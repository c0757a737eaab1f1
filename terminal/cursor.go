package terminal

import (
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/page"
	"github.com/hnimtadd/termcore/terminal/screen"
	"github.com/hnimtadd/termcore/terminal/size"
)

// originTop and originBottom are the rows cursor addressing is relative
// to: the scroll region under DECOM, the full screen otherwise.
func (t *Terminal) originTop() size.CellCountInt {
	if t.modes.Get(core.ModeOrigin) {
		top, _ := t.active.ScrollRegion()
		return top
	}
	return 0
}

func (t *Terminal) originBottom() size.CellCountInt {
	if t.modes.Get(core.ModeOrigin) {
		_, bottom := t.active.ScrollRegion()
		return bottom
	}
	return t.rows - 1
}

func (t *Terminal) cursorHome() {
	cur := &t.active.Cursor
	cur.X = 0
	cur.Y = t.originTop()
	cur.PendingWrap = false
}

// index moves the cursor down one row, scrolling the region when the
// cursor sits on the bottom margin.
func (t *Terminal) index() {
	s := t.active
	cur := &s.Cursor
	cur.PendingWrap = false
	_, bottom := s.ScrollRegion()
	switch {
	case cur.Y == bottom:
		s.ScrollUp(1)
	case cur.Y < t.rows-1:
		cur.Y++
	}
}

func (t *Terminal) reverseIndex() {
	s := t.active
	cur := &s.Cursor
	cur.PendingWrap = false
	top, _ := s.ScrollRegion()
	switch {
	case cur.Y == top:
		s.ScrollDown(1)
	case cur.Y > 0:
		cur.Y--
	}
}

// Index implements ESC D.
func (t *Terminal) Index() { t.index() }

// ReverseIndex implements ESC M.
func (t *Terminal) ReverseIndex() { t.reverseIndex() }

// NextLine implements ESC E.
func (t *Terminal) NextLine() {
	t.index()
	t.active.Cursor.X = 0
}

// LineFeed implements LF, VT and FF. Under LNM the linefeed also
// returns the carriage.
func (t *Terminal) LineFeed() {
	t.index()
	if t.modes.Get(core.ModeLineFeed) {
		t.active.Cursor.X = 0
	}
}

func (t *Terminal) CarriageReturn() {
	cur := &t.active.Cursor
	cur.X = 0
	cur.PendingWrap = false
}

func (t *Terminal) Backspace() {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	if cur.X > 0 {
		cur.X--
	}
}

// SetCursorPosition implements CUP and HVP. Parameters are 1-based and
// 0 means 1; under DECOM they are relative to the scroll region.
func (t *Terminal) SetCursorPosition(row, col uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false

	top, bottom := t.originTop(), t.originBottom()
	y := top + size.CellCountInt(oneBased(row)) - 1
	if y > bottom {
		y = bottom
	}
	cur.Y = y
	cur.X = min(size.CellCountInt(oneBased(col))-1, t.cols-1)
}

// SetCursorRow implements VPA.
func (t *Terminal) SetCursorRow(row uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	top, bottom := t.originTop(), t.originBottom()
	y := top + size.CellCountInt(oneBased(row)) - 1
	if y > bottom {
		y = bottom
	}
	cur.Y = y
}

// SetCursorCol implements CHA and HPA.
func (t *Terminal) SetCursorCol(col uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	cur.X = min(size.CellCountInt(oneBased(col))-1, t.cols-1)
}

// SetCursorUp implements CUU and CPL. Movement stops at the top margin
// when the cursor starts inside the region.
func (t *Terminal) SetCursorUp(offset uint16, carriage bool) {
	s := t.active
	cur := &s.Cursor
	cur.PendingWrap = false

	limit := size.CellCountInt(0)
	if top, _ := s.ScrollRegion(); cur.Y >= top {
		limit = top
	}
	n := size.CellCountInt(oneBased(offset))
	if cur.Y < limit+n {
		cur.Y = limit
	} else {
		cur.Y -= n
	}
	if carriage {
		cur.X = 0
	}
}

// SetCursorDown implements CUD and CNL. Movement stops at the bottom
// margin when the cursor starts inside the region.
func (t *Terminal) SetCursorDown(offset uint16, carriage bool) {
	s := t.active
	cur := &s.Cursor
	cur.PendingWrap = false

	limit := t.rows - 1
	if _, bottom := s.ScrollRegion(); cur.Y <= bottom {
		limit = bottom
	}
	cur.Y += size.CellCountInt(oneBased(offset))
	if cur.Y > limit {
		cur.Y = limit
	}
	if carriage {
		cur.X = 0
	}
}

func (t *Terminal) SetCursorLeft(offset uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	n := size.CellCountInt(oneBased(offset))
	if cur.X < n {
		cur.X = 0
	} else {
		cur.X -= n
	}
}

func (t *Terminal) SetCursorRight(offset uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	cur.X += size.CellCountInt(oneBased(offset))
	if cur.X >= t.cols {
		cur.X = t.cols - 1
	}
}

// SetCursorTabRight implements HT and CHT.
func (t *Terminal) SetCursorTabRight(repeated uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	for i := uint16(0); i < oneBased(repeated); i++ {
		if cur.X >= t.cols-1 {
			break
		}
		x := cur.X + 1
		for x < t.cols-1 && !t.tabstops.Get(x) {
			x++
		}
		cur.X = x
	}
}

// SetCursorTabLeft implements CBT.
func (t *Terminal) SetCursorTabLeft(repeated uint16) {
	cur := &t.active.Cursor
	cur.PendingWrap = false
	for i := uint16(0); i < oneBased(repeated); i++ {
		if cur.X == 0 {
			break
		}
		x := cur.X - 1
		for x > 0 && !t.tabstops.Get(x) {
			x--
		}
		cur.X = x
	}
}

// TabSet implements HTS.
func (t *Terminal) TabSet() {
	t.tabstops.Set(t.active.Cursor.X)
}

// TabClear implements TBC: mode 0 clears the stop at the cursor, mode 3
// clears every stop.
func (t *Terminal) TabClear(mode uint16) {
	switch mode {
	case 0:
		t.tabstops.Unset(t.active.Cursor.X)
	case 3:
		t.tabstops.Reset(0)
	default:
		t.logger.Debug("terminal: unknown tab clear mode", "mode", mode)
	}
}

// SaveCursor implements DECSC.
func (t *Terminal) SaveCursor() {
	s := t.active
	cur := &s.Cursor
	s.Saved = &screen.SavedCursor{
		X:           cur.X,
		Y:           cur.Y,
		PendingWrap: cur.PendingWrap,
		Style:       cur.Style,
		Origin:      t.modes.Get(core.ModeOrigin),
		Charsets:    t.charsets.Snapshot(),
	}
}

// RestoreCursor implements DECRC. With nothing saved the cursor homes
// and origin mode resets, per VT100 behavior.
func (t *Terminal) RestoreCursor() {
	s := t.active
	cur := &s.Cursor
	saved := s.Saved
	if saved == nil {
		t.modes.Set(core.ModeOrigin, false)
		cur.X, cur.Y = 0, 0
		cur.PendingWrap = false
		return
	}
	cur.X = min(saved.X, t.cols-1)
	cur.Y = min(saved.Y, t.rows-1)
	cur.PendingWrap = saved.PendingWrap
	cur.Style = saved.Style
	t.internCursorStyle()
	t.modes.Set(core.ModeOrigin, saved.Origin)
	t.charsets.Restore(saved.Charsets)
}

// SetTopAndBottomMargin implements DECSTBM. Zero parameters default to
// the respective screen edge; an empty or inverted region is ignored.
// The cursor moves to the origin.
func (t *Terminal) SetTopAndBottomMargin(top, bottom uint16) {
	topRow := size.CellCountInt(oneBased(top))
	bottomRow := size.CellCountInt(bottom)
	if bottomRow == 0 || bottomRow > t.rows {
		bottomRow = t.rows
	}
	if topRow >= bottomRow {
		return
	}
	t.active.SetScrollRegion(topRow-1, bottomRow-1)
	t.cursorHome()
}

// ScreenAlignmentTest implements DECALN: the margins reset, every cell
// is replaced by an unstyled E and the cursor homes.
func (t *Terminal) ScreenAlignmentTest() {
	s := t.active
	s.SetScrollRegion(0, t.rows-1)
	for y := size.CellCountInt(0); y < t.rows; y++ {
		for x := size.CellCountInt(0); x < t.cols; x++ {
			s.SetCell(x, y, page.Cell{Codepoint: 'E'})
		}
		s.Row(y).Wrapped = false
	}
	t.cursorHome()
}

// SetCursorStyle implements DECSCUSR.
func (t *Terminal) SetCursorStyle(style uint16) {
	t.active.Cursor.Shape = screen.CursorShapeFromStyle(style)
}

func oneBased(v uint16) uint16 {
	if v == 0 {
		return 1
	}
	return v
}
