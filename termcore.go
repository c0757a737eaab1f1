// Package termcore is a headless terminal emulation engine: feed it the
// byte stream a program writes to its pty and read back the resulting
// grid of cells, colors and modes. Rendering and I/O stay with the
// caller.
package termcore

import (
	"math"
	"sync"

	"github.com/hnimtadd/termcore/logger"
	"github.com/hnimtadd/termcore/terminal"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/page"
	"github.com/hnimtadd/termcore/terminal/point"
	"github.com/hnimtadd/termcore/terminal/screen"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/stream"
)

// Options configures a new Engine. See terminal.Options.
type Options = terminal.Options

// ErrInvalidSize is returned by Resize for dimensions outside 1..65535.
var ErrInvalidSize = screen.ErrInvalidSize

// Cursor is a read-only snapshot of the cursor state.
type Cursor struct {
	X       int
	Y       int
	Visible bool
	Shape   screen.CursorShape
}

// Engine wraps the terminal state machine behind a lock so a renderer
// can read a consistent frame while a pty reader feeds bytes.
type Engine struct {
	mu     sync.RWMutex
	term   *terminal.Terminal
	stream *stream.Stream
	logger logger.Logger
}

func New(opts Options) *Engine {
	log := opts.Logger
	if log == nil {
		log = logger.Nop
	}
	term := terminal.New(opts)
	return &Engine{
		term:   term,
		stream: stream.NewStream(term, log),
		logger: log,
	}
}

// Feed consumes a chunk of pty output. It is total: malformed input is
// interpreted as far as possible and never returns an error or panics.
// Parser and decoder state persist, so sequences may be split across
// calls at any byte boundary.
func (e *Engine) Feed(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("termcore: feed recovered", "panic", r)
		}
	}()
	e.stream.NextSlice(data)
}

// Resize changes the grid dimensions, reflowing soft-wrapped lines.
func (e *Engine) Resize(cols, rows int) error {
	if cols < 1 || rows < 1 || cols > math.MaxUint16 || rows > math.MaxUint16 {
		return ErrInvalidSize
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.term.Resize(size.CellCountInt(cols), size.CellCountInt(rows))
}

func (e *Engine) Cols() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return int(e.term.Cols())
}

func (e *Engine) Rows() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return int(e.term.Rows())
}

// CellAt returns a copy of the cell addressed by p, which may point
// into the active grid, the scrollback history, or the combined screen
// space.
func (e *Engine) CellAt(p point.Point) (page.Cell, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	s := e.term.Screen()
	x, y := p.Coordinate.X, p.Coordinate.Y
	var row *page.Row
	switch p.Tag {
	case point.TagActive:
		row = s.Row(y)
	case point.TagHistory:
		row = s.ScrollbackRow(int(y))
	case point.TagScreen:
		if n := s.ScrollbackLen(); int(y) < n {
			row = s.ScrollbackRow(int(y))
		} else {
			row = s.Row(y - size.CellCountInt(n))
		}
	}
	if row == nil || x >= row.Len() {
		return page.Cell{}, false
	}
	return row.Cells[x], true
}

// Cell returns a copy of the cell at (x, y) on the active screen.
func (e *Engine) Cell(x, y int) (page.Cell, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if x < 0 || y < 0 {
		return page.Cell{}, false
	}
	c := e.term.Screen().Cell(size.CellCountInt(x), size.CellCountInt(y))
	if c == nil {
		return page.Cell{}, false
	}
	return *c, true
}

// Line returns the text of row y, trailing blanks trimmed.
func (e *Engine) Line(y int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if y < 0 {
		return ""
	}
	row := e.term.Screen().Row(size.CellCountInt(y))
	if row == nil {
		return ""
	}
	return row.String()
}

// PlainString dumps the active grid as text, rows joined by newlines.
func (e *Engine) PlainString() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term.Screen().String()
}

// Cursor returns the cursor position, visibility and shape.
func (e *Engine) Cursor() Cursor {
	e.mu.RLock()
	defer e.mu.RUnlock()
	cur := e.term.Screen().Cursor
	return Cursor{
		X:       int(cur.X),
		Y:       int(cur.Y),
		Visible: e.term.Mode(core.ModeCursorVisible),
		Shape:   cur.Shape,
	}
}

// Mode returns the value of a recognized mode.
func (e *Engine) Mode(m core.Mode) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term.Mode(m)
}

func (e *Engine) Title() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term.Title()
}

func (e *Engine) Pwd() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term.Pwd()
}

// ScrollbackLen returns the number of rows in the scrollback of the
// active screen. The alternate screen always reports zero.
func (e *Engine) ScrollbackLen() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term.Screen().ScrollbackLen()
}

// ScrollbackLine returns the text of the i-th scrollback row, oldest
// first.
func (e *Engine) ScrollbackLine(i int) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	row := e.term.Screen().ScrollbackRow(i)
	if row == nil {
		return ""
	}
	return row.String()
}

// Dirty reports whether row y changed since the last ResetDirty.
func (e *Engine) Dirty(y int) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.term.Screen().Dirty(size.CellCountInt(y))
}

// ResetDirty clears the dirty flags after a frame was rendered.
func (e *Engine) ResetDirty() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.term.Screen().DirtyReset()
}
