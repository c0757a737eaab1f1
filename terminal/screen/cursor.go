package screen

import (
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/set"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/style"
)

// CursorShape is the visual shape requested via DECSCUSR.
type CursorShape uint8

const (
	CursorShapeDefault CursorShape = iota
	CursorShapeBlockBlink
	CursorShapeBlock
	CursorShapeUnderlineBlink
	CursorShapeUnderline
	CursorShapeBarBlink
	CursorShapeBar
)

// CursorShapeFromStyle maps a DECSCUSR parameter to a shape. Unknown
// values fall back to the default shape.
func CursorShapeFromStyle(v uint16) CursorShape {
	if v <= uint16(CursorShapeBar) {
		return CursorShape(v)
	}
	return CursorShapeDefault
}

// Cursor is the active write position of a screen.
type Cursor struct {
	// X and Y are 0-based grid coordinates, always within bounds.
	X size.CellCountInt
	Y size.CellCountInt

	// PendingWrap is set after a character lands in the last column
	// with wraparound enabled. The next print wraps first; cursor
	// movement clears the flag.
	PendingWrap bool

	// Style is the current graphic rendition applied to printed cells.
	// StyleID is its interned id, 0 while the style is default.
	Style   style.Style
	StyleID set.ID

	// HyperlinkID is the id of the currently open OSC 8 hyperlink, 0
	// when none is open.
	HyperlinkID set.ID

	Shape CursorShape
}

// SavedCursor is the state stored by DECSC and restored by DECRC.
type SavedCursor struct {
	X           size.CellCountInt
	Y           size.CellCountInt
	PendingWrap bool
	Style       style.Style
	Origin      bool
	Charsets    charset.State
}
