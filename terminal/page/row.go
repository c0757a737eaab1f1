package page

import (
	"strings"

	"github.com/hnimtadd/termcore/terminal/size"
)

// Row is one line of the grid.
type Row struct {
	Cells []Cell

	// Wrapped marks a soft wrap: the logical line continues on the next
	// row. Hard line breaks (LF) leave it false. Reflow on resize joins
	// wrapped rows back into logical lines.
	Wrapped bool
}

func NewRow(cols size.CellCountInt) *Row {
	return &Row{Cells: make([]Cell, cols)}
}

// Clear resets every cell to the zero cell and drops the wrap flag.
func (r *Row) Clear() {
	for i := range r.Cells {
		r.Cells[i] = Cell{}
	}
	r.Wrapped = false
}

// Len returns the row width in columns.
func (r *Row) Len() size.CellCountInt {
	return size.CellCountInt(len(r.Cells))
}

// TrailingBlank returns the index of the first cell after the last cell
// with text, i.e. the used width of the row.
func (r *Row) TrailingBlank() size.CellCountInt {
	for i := len(r.Cells); i > 0; i-- {
		c := &r.Cells[i-1]
		if c.HasText() || c.Wide == WideSpacerTail {
			return size.CellCountInt(i)
		}
	}
	return 0
}

// String renders the row's text, trailing blanks trimmed. Spacer cells
// contribute nothing; empty cells inside the line render as spaces.
func (r *Row) String() string {
	var sb strings.Builder
	used := r.TrailingBlank()
	for i := size.CellCountInt(0); i < used; i++ {
		c := &r.Cells[i]
		switch c.Wide {
		case WideSpacerTail, WideSpacerHead:
			continue
		}
		if !c.HasText() {
			sb.WriteRune(' ')
			continue
		}
		for _, cp := range c.Runes() {
			sb.WriteRune(cp)
		}
	}
	return sb.String()
}
