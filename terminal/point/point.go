// Package point addresses cells across the different coordinate spaces
// of a terminal: the active grid a program draws on, the scrollback
// history, and the combined view of both.
package point

import (
	"github.com/hnimtadd/termcore/terminal/coordinate"
	"github.com/hnimtadd/termcore/terminal/size"
)

// Tag names the coordinate space a point's origin lives in. "(4, 2)"
// alone is ambiguous once the screen has scrollback.
type Tag int

const (
	// TagActive addresses the grid a running program can move the
	// cursor over. Row 0 is the top of the screen; every row is
	// addressable even when unwritten.
	TagActive Tag = iota

	// TagHistory addresses the scrollback only. Row 0 is the oldest
	// row still retained.
	TagHistory

	// TagScreen addresses history and active rows as one contiguous
	// space: row 0 is the oldest scrollback row, the active grid
	// follows after the last history row.
	TagScreen
)

func (t Tag) String() string {
	switch t {
	case TagActive:
		return "active"
	case TagHistory:
		return "history"
	case TagScreen:
		return "screen"
	default:
		return "unknown"
	}
}

// Point is a cell location within the coordinate space named by Tag.
type Point struct {
	Tag        Tag
	Coordinate coordinate.Point[size.CellCountInt]
}
