package screen

import (
	"github.com/hnimtadd/termcore/terminal/page"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/utils"
)

// logicalLine is a run of rows joined by soft wraps, flattened back
// into a single cell sequence for re-layout at a new width.
type logicalLine struct {
	cells []page.Cell

	// cursor is the cell offset of the cursor within this line, -1
	// when the cursor is elsewhere.
	cursor int
}

// Resize changes the grid dimensions, reflowing soft-wrapped lines to
// the new width. Hard line breaks are preserved. The scroll region
// resets to the full screen and the cursor stays on its logical line,
// clamped into bounds.
func (s *Screen) Resize(cols, rows size.CellCountInt) error {
	if cols == 0 || rows == 0 {
		return ErrInvalidSize
	}
	if cols == s.cols && rows == s.height {
		return nil
	}

	lines, cursorLine := s.collectLogicalLines()

	s.cols = cols
	s.height = rows
	s.dirty = utils.NewStaticBitSet(int(rows))

	// Re-layout every logical line at the new width.
	var outRows []*page.Row
	cursorRow, cursorCol := -1, size.CellCountInt(0)
	for li, line := range lines {
		rowsOut, curRow, curCol := s.layoutLine(line, cols)
		if li == cursorLine && curRow >= 0 {
			cursorRow = len(outRows) + curRow
			cursorCol = curCol
		}
		outRows = append(outRows, rowsOut...)
	}

	// The last `rows` rows stay active, everything above feeds the
	// scrollback. Keep the cursor on screen: never push it into the
	// scrollback.
	first := len(outRows) - int(rows)
	if first < 0 {
		first = 0
	}
	if cursorRow >= 0 && cursorRow < first {
		first = cursorRow
	}

	// The drained rows were already copied into outRows; their cell
	// references transferred with the copies.
	s.scrollback.Drain()
	s.scrollback = NewScrollback(s.scrollback.Cap())
	for _, row := range outRows[:first] {
		if evicted := s.scrollback.Push(row); evicted != nil {
			s.releaseRow(evicted)
		}
	}

	active := outRows[first:]
	if len(active) > int(rows) {
		// The cursor pinning above can leave more rows than fit; drop
		// from the bottom.
		for _, row := range active[rows:] {
			s.releaseRow(row)
		}
		active = active[:rows]
	}
	s.rows = make([]*page.Row, rows)
	copy(s.rows, active)
	for i := len(active); i < int(rows); i++ {
		s.rows[i] = page.NewRow(cols)
	}

	s.top, s.bottom = 0, rows-1

	// Place the cursor.
	if cursorRow >= 0 {
		y := cursorRow - first
		if y < 0 {
			y = 0
		}
		if y >= int(rows) {
			y = int(rows) - 1
		}
		s.Cursor.Y = size.CellCountInt(y)
		s.Cursor.X = min(cursorCol, cols-1)
	} else {
		s.Cursor.Y = min(s.Cursor.Y, rows-1)
		s.Cursor.X = min(s.Cursor.X, cols-1)
	}
	s.Cursor.PendingWrap = false

	s.scrollbackDirty = true
	s.markAllDirty()
	return nil
}

// collectLogicalLines joins scrollback and active rows into logical
// lines, breaking at hard line ends. The returned index is the line
// holding the cursor.
func (s *Screen) collectLogicalLines() (lines []logicalLine, cursorLine int) {
	cursorLine = -1

	var current logicalLine
	current.cursor = -1

	flush := func() {
		lines = append(lines, current)
		current = logicalLine{cursor: -1}
	}

	appendRow := func(row *page.Row, cursorAt int) {
		// Trailing unwritten cells do not survive a reflow; the
		// logical line is the written prefix of each row.
		used := int(row.TrailingBlank())
		if cursorAt >= 0 {
			if cursorAt >= used {
				used = cursorAt + 1
			}
			current.cursor = len(current.cells) + cursorAt
		}
		current.cells = append(current.cells, row.Cells[:used]...)
		for i := used; i < len(row.Cells); i++ {
			s.release(&row.Cells[i])
		}
		if !row.Wrapped {
			flush()
		}
	}

	total := s.scrollback.Len()
	for i := 0; i < total; i++ {
		appendRow(s.scrollback.At(i), -1)
	}
	for y := size.CellCountInt(0); y < s.height; y++ {
		at := -1
		if y == s.Cursor.Y {
			at = int(s.Cursor.X)
			cursorLine = len(lines)
			// The cursor may sit mid-line; remember which logical
			// line it will land in once this row is appended.
		}
		appendRow(s.rows[y], at)
	}
	// An unterminated trailing soft wrap still forms a line.
	if len(current.cells) > 0 || current.cursor >= 0 {
		flush()
	}
	return lines, cursorLine
}

// layoutLine splits a logical line into rows of the given width,
// marking soft wraps. Returns the row/col of the line's cursor marker,
// row -1 when it has none.
func (s *Screen) layoutLine(line logicalLine, cols size.CellCountInt) (out []*page.Row, cursorRow int, cursorCol size.CellCountInt) {
	cursorRow = -1

	row := page.NewRow(cols)
	out = append(out, row)
	x := size.CellCountInt(0)

	wrap := func() {
		row.Wrapped = true
		row = page.NewRow(cols)
		out = append(out, row)
		x = 0
	}

	for i := 0; i < len(line.cells); i++ {
		c := line.cells[i]

		// Spacers are an artifact of the previous layout.
		if c.Wide == page.WideSpacerHead || c.Wide == page.WideSpacerTail {
			if line.cursor == i {
				cursorRow = len(out) - 1
				cursorCol = x
			}
			s.release(&c)
			continue
		}

		width := size.CellCountInt(1)
		if c.Wide == page.WideWide {
			width = 2
		}

		if x+width > cols {
			if c.Wide == page.WideWide && cols > 1 {
				// A wide cell that no longer fits leaves a spacer head
				// in the last column.
				row.Cells[x] = page.Cell{Wide: page.WideSpacerHead}
			}
			wrap()
		}

		if line.cursor == i {
			cursorRow = len(out) - 1
			cursorCol = x
		}

		if c.Wide == page.WideWide && cols == 1 {
			// Degenerate width, the wide cell cannot be represented.
			s.release(&c)
			c = page.Cell{}
		}

		row.Cells[x] = c
		x++
		if c.Wide == page.WideWide {
			row.Cells[x] = page.Cell{Wide: page.WideSpacerTail}
			x++
		}
		if x >= cols && i+1 < len(line.cells) {
			wrap()
		}
	}

	if line.cursor >= len(line.cells) && line.cursor >= 0 {
		cursorRow = len(out) - 1
		cursorCol = min(x, cols-1)
	}
	return out, cursorRow, cursorCol
}
