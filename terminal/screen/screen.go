// Package screen owns the cell grid: the active rows, the scrollback
// ring, the cursor and the interned style and hyperlink sets.
package screen

import (
	"errors"
	"strings"

	"github.com/hnimtadd/termcore/terminal/page"
	"github.com/hnimtadd/termcore/terminal/set"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/utils"
)

// ErrInvalidSize is returned by Resize for a zero dimension.
var ErrInvalidSize = errors.New("screen: size must be at least 1x1")

const (
	defaultStyleCap     = 4096
	defaultHyperlinkCap = 1024
)

type Screen struct {
	rows   []*page.Row
	cols   size.CellCountInt
	height size.CellCountInt

	scrollback *Scrollback

	Cursor Cursor
	Saved  *SavedCursor

	// Scroll region, 0-based inclusive rows.
	top    size.CellCountInt
	bottom size.CellCountInt

	styles     *set.RefCountedSet
	hyperlinks *set.RefCountedSet

	dirty           *utils.StaticBitSet
	scrollbackDirty bool
}

func NewScreen(cols, rows size.CellCountInt, scrollbackCap int) *Screen {
	utils.Assert(cols > 0 && rows > 0, "screen dimensions must be positive")
	s := &Screen{
		cols:       cols,
		height:     rows,
		scrollback: NewScrollback(scrollbackCap),
		styles:     set.NewRefCountedSet(set.Options{Cap: defaultStyleCap}),
		hyperlinks: set.NewRefCountedSet(set.Options{Cap: defaultHyperlinkCap}),
		bottom:     rows - 1,
		dirty:      utils.NewStaticBitSet(int(rows)),
	}
	s.rows = make([]*page.Row, rows)
	for i := range s.rows {
		s.rows[i] = page.NewRow(cols)
	}
	return s
}

func (s *Screen) Cols() size.CellCountInt { return s.cols }
func (s *Screen) Rows() size.CellCountInt { return s.height }

func (s *Screen) Styles() *set.RefCountedSet     { return s.styles }
func (s *Screen) Hyperlinks() *set.RefCountedSet { return s.hyperlinks }

// Row returns the y-th active row, nil when out of range.
func (s *Screen) Row(y size.CellCountInt) *page.Row {
	if y >= s.height {
		return nil
	}
	return s.rows[y]
}

// Cell returns a pointer into the grid, nil when out of range.
func (s *Screen) Cell(x, y size.CellCountInt) *page.Cell {
	row := s.Row(y)
	if row == nil || x >= s.cols {
		return nil
	}
	return &row.Cells[x]
}

// MarkDirty flags a row as changed since the last DirtyReset.
func (s *Screen) MarkDirty(y size.CellCountInt) {
	if int(y) < s.dirty.Size() {
		s.dirty.Set(int(y))
	}
}

func (s *Screen) markAllDirty() {
	s.dirty.SetRange(0, int(s.height))
}

// Dirty reports whether row y changed since the last DirtyReset.
func (s *Screen) Dirty(y size.CellCountInt) bool {
	if int(y) >= s.dirty.Size() {
		return false
	}
	return s.dirty.IsSet(int(y))
}

// ScrollbackDirty reports whether the scrollback changed since the last
// DirtyReset.
func (s *Screen) ScrollbackDirty() bool { return s.scrollbackDirty }

// DirtyReset clears all dirty flags.
func (s *Screen) DirtyReset() {
	s.dirty.Clear()
	s.scrollbackDirty = false
}

// retain adds a cell's style and hyperlink references.
func (s *Screen) retain(c *page.Cell) {
	if c.StyleID != 0 {
		s.styles.Use(c.StyleID)
	}
	if c.HyperlinkID != 0 {
		s.hyperlinks.Use(c.HyperlinkID)
	}
}

// release drops a cell's style and hyperlink references and zeroes the
// cell.
func (s *Screen) release(c *page.Cell) {
	if c.StyleID != 0 {
		s.styles.Release(c.StyleID)
	}
	if c.HyperlinkID != 0 {
		s.hyperlinks.Release(c.HyperlinkID)
	}
	*c = page.Cell{}
}

func (s *Screen) releaseRow(row *page.Row) {
	for i := range row.Cells {
		s.release(&row.Cells[i])
	}
	row.Wrapped = false
}

// SetCell places a cell, taking over the reference bookkeeping for the
// ids it carries.
func (s *Screen) SetCell(x, y size.CellCountInt, c page.Cell) {
	cell := s.Cell(x, y)
	if cell == nil {
		return
	}
	s.retain(&c)
	s.release(cell)
	*cell = c
	s.MarkDirty(y)
}

// ClearCells erases cells [from, to) of row y, applying the given
// background style id to each erased cell.
func (s *Screen) ClearCells(y, from, to size.CellCountInt, bg set.ID) {
	row := s.Row(y)
	if row == nil {
		return
	}
	to = min(to, s.cols)
	for i := from; i < to; i++ {
		s.release(&row.Cells[i])
		if bg != 0 {
			s.styles.Use(bg)
			row.Cells[i].StyleID = bg
		}
	}
	s.MarkDirty(y)
}

// ScrollRegion returns the 0-based inclusive scroll region.
func (s *Screen) ScrollRegion() (top, bottom size.CellCountInt) {
	return s.top, s.bottom
}

// SetScrollRegion sets the scroll region from 0-based inclusive rows.
// An invalid region (top >= bottom) resets to the full screen.
func (s *Screen) SetScrollRegion(top, bottom size.CellCountInt) {
	if bottom >= s.height {
		bottom = s.height - 1
	}
	if top >= bottom {
		top, bottom = 0, s.height-1
	}
	s.top, s.bottom = top, bottom
}

// ScrollUp scrolls the scroll region up by n rows. Rows leaving an
// unrestricted top margin feed the scrollback; a restricted region
// discards them.
func (s *Screen) ScrollUp(n size.CellCountInt) {
	if n == 0 {
		return
	}
	region := s.bottom - s.top + 1
	if n > region {
		n = region
	}

	for i := size.CellCountInt(0); i < n; i++ {
		leaving := s.rows[s.top]
		if s.top == 0 && s.scrollback.Cap() > 0 {
			if evicted := s.scrollback.Push(leaving); evicted != nil {
				s.releaseRow(evicted)
			}
			s.scrollbackDirty = true
			s.rows[s.top] = page.NewRow(s.cols)
		} else {
			s.releaseRow(leaving)
		}
		// The cleared or fresh top row moves to the bottom.
		utils.RotateOnce(s.rows[s.top : s.bottom+1])
	}

	s.dirtyRegion()
}

// ScrollDown scrolls the scroll region down by n rows. Rows leaving the
// bottom are discarded; blank rows enter at the top.
func (s *Screen) ScrollDown(n size.CellCountInt) {
	if n == 0 {
		return
	}
	region := s.bottom - s.top + 1
	if n > region {
		n = region
	}

	for i := size.CellCountInt(0); i < n; i++ {
		s.releaseRow(s.rows[s.bottom])
		utils.RotateOnceR(s.rows[s.top : s.bottom+1])
	}

	s.dirtyRegion()
}

func (s *Screen) dirtyRegion() {
	for y := s.top; y <= s.bottom; y++ {
		s.MarkDirty(y)
	}
}

// InsertLines inserts n blank lines at row y, pushing rows below toward
// the bottom of the scroll region. No-op outside the region.
func (s *Screen) InsertLines(y, n size.CellCountInt) {
	if y < s.top || y > s.bottom || n == 0 {
		return
	}
	avail := s.bottom - y + 1
	if n > avail {
		n = avail
	}
	for i := size.CellCountInt(0); i < n; i++ {
		s.releaseRow(s.rows[s.bottom])
		utils.RotateOnceR(s.rows[y : s.bottom+1])
	}
	for r := y; r <= s.bottom; r++ {
		s.MarkDirty(r)
	}
}

// DeleteLines deletes n lines at row y, pulling rows below upward and
// introducing blanks at the bottom of the scroll region. No-op outside
// the region.
func (s *Screen) DeleteLines(y, n size.CellCountInt) {
	if y < s.top || y > s.bottom || n == 0 {
		return
	}
	avail := s.bottom - y + 1
	if n > avail {
		n = avail
	}
	for i := size.CellCountInt(0); i < n; i++ {
		s.releaseRow(s.rows[y])
		utils.RotateOnce(s.rows[y : s.bottom+1])
	}
	for r := y; r <= s.bottom; r++ {
		s.MarkDirty(r)
	}
}

// InsertCells inserts n blank cells at (x, y), shifting the rest of the
// row right. Cells pushed past the right edge are dropped.
func (s *Screen) InsertCells(x, y, n size.CellCountInt, bg set.ID) {
	row := s.Row(y)
	if row == nil || x >= s.cols {
		return
	}
	if n > s.cols-x {
		n = s.cols - x
	}
	// Drop the cells that fall off the right edge.
	for i := s.cols - n; i < s.cols; i++ {
		s.release(&row.Cells[i])
	}
	copy(row.Cells[x+n:], row.Cells[x:s.cols-n])
	for i := x; i < x+n; i++ {
		row.Cells[i] = page.Cell{}
		if bg != 0 {
			s.styles.Use(bg)
			row.Cells[i].StyleID = bg
		}
	}
	s.fixupWide(row)
	s.MarkDirty(y)
}

// DeleteCells deletes n cells at (x, y), shifting the rest of the row
// left and clearing the tail.
func (s *Screen) DeleteCells(x, y, n size.CellCountInt, bg set.ID) {
	row := s.Row(y)
	if row == nil || x >= s.cols {
		return
	}
	if n > s.cols-x {
		n = s.cols - x
	}
	for i := x; i < x+n; i++ {
		s.release(&row.Cells[i])
	}
	copy(row.Cells[x:], row.Cells[x+n:s.cols])
	for i := s.cols - n; i < s.cols; i++ {
		row.Cells[i] = page.Cell{}
		if bg != 0 {
			s.styles.Use(bg)
			row.Cells[i].StyleID = bg
		}
	}
	s.fixupWide(row)
	s.MarkDirty(y)
}

// fixupWide repairs wide-cell pairing after a structural row edit:
// orphaned spacers and heads are cleared to blanks.
func (s *Screen) fixupWide(row *page.Row) {
	for i := range row.Cells {
		c := &row.Cells[i]
		switch c.Wide {
		case page.WideSpacerTail:
			if i == 0 || row.Cells[i-1].Wide != page.WideWide {
				s.release(c)
			}
		case page.WideWide:
			if int(s.cols) == i+1 || (i+1 < len(row.Cells) && row.Cells[i+1].Wide != page.WideSpacerTail) {
				s.release(c)
			}
		}
	}
}

// ClearScrollback drops all scrollback rows.
func (s *Screen) ClearScrollback() {
	for _, row := range s.scrollback.Drain() {
		s.releaseRow(row)
	}
	s.scrollbackDirty = true
}

// ScrollbackLen returns the number of rows in the scrollback.
func (s *Screen) ScrollbackLen() int { return s.scrollback.Len() }

// ScrollbackRow returns the i-th scrollback row, 0 being the oldest.
func (s *Screen) ScrollbackRow(i int) *page.Row { return s.scrollback.At(i) }

// Clear erases the whole active grid without touching the scrollback.
func (s *Screen) Clear(bg set.ID) {
	for y := size.CellCountInt(0); y < s.height; y++ {
		s.ClearCells(y, 0, s.cols, bg)
		s.rows[y].Wrapped = false
	}
	s.markAllDirty()
}

// String renders the active grid as text, rows joined by newlines.
// Used by tests and plain-text export.
func (s *Screen) String() string {
	var sb strings.Builder
	for y := size.CellCountInt(0); y < s.height; y++ {
		if y > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(s.rows[y].String())
	}
	return sb.String()
}
