package terminal

import (
	"github.com/hnimtadd/termcore/terminal/charset"
	"github.com/hnimtadd/termcore/terminal/core"
	"github.com/hnimtadd/termcore/terminal/page"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/width"
)

// Print implements handler.PrintHandler. The codepoint already passed
// UTF-8 decoding; bytes in the GL range still go through the active
// charset designation.
func (t *Terminal) Print(cp uint32) {
	r := rune(cp)
	if cp < 0x80 {
		r = t.charsets.Map(uint8(cp))
	}
	t.printRune(r)
}

func (t *Terminal) printRune(r rune) {
	s := t.active
	cur := &s.Cursor

	w := width.Of(r)
	if w == 0 {
		t.attachCombining(r)
		return
	}

	autowrap := t.modes.Get(core.ModeWraparound)

	if cur.PendingWrap {
		cur.PendingWrap = false
		if autowrap {
			s.Row(cur.Y).Wrapped = true
			cur.X = 0
			t.index()
		}
	}

	if w == 2 && t.cols < 2 {
		// A wide cell cannot exist on a one-column screen.
		return
	}

	// A wide cell never splits across the right margin: the last
	// column gets a spacer head and the pair starts on the next line.
	if w == 2 && cur.X == t.cols-1 {
		if autowrap {
			s.SetCell(cur.X, cur.Y, page.Cell{
				Wide:        page.WideSpacerHead,
				StyleID:     cur.StyleID,
				HyperlinkID: cur.HyperlinkID,
			})
			s.Row(cur.Y).Wrapped = true
			cur.X = 0
			t.index()
		} else {
			cur.X = t.cols - 2
		}
	}

	if t.modes.Get(core.ModeInsert) {
		s.InsertCells(cur.X, cur.Y, size.CellCountInt(w), 0)
	}

	// Overwriting half of an existing wide pair clears the other half.
	t.clearWidePair(cur.X, cur.Y)
	if w == 2 {
		t.clearWidePair(cur.X+1, cur.Y)
	}

	cell := page.Cell{
		Codepoint:   r,
		StyleID:     cur.StyleID,
		HyperlinkID: cur.HyperlinkID,
	}
	if w == 2 {
		cell.Wide = page.WideWide
	}
	s.SetCell(cur.X, cur.Y, cell)
	if w == 2 {
		s.SetCell(cur.X+1, cur.Y, page.Cell{
			Wide:        page.WideSpacerTail,
			StyleID:     cur.StyleID,
			HyperlinkID: cur.HyperlinkID,
		})
	}
	t.prevPrint = r

	next := cur.X + size.CellCountInt(w)
	if next >= t.cols {
		cur.X = t.cols - 1
		if autowrap {
			cur.PendingWrap = true
		}
	} else {
		cur.X = next
	}
}

// attachCombining appends a zero-width codepoint to the most recently
// printed cell. With no such cell the codepoint is dropped.
func (t *Terminal) attachCombining(r rune) {
	s := t.active
	cur := &s.Cursor

	x := cur.X
	if !cur.PendingWrap {
		if x == 0 {
			return
		}
		x--
	}
	cell := s.Cell(x, cur.Y)
	if cell == nil {
		return
	}
	if cell.Wide == page.WideSpacerTail && x > 0 {
		cell = s.Cell(x-1, cur.Y)
	}
	if !cell.HasText() {
		return
	}
	cell.AppendGrapheme(r)
	s.MarkDirty(cur.Y)
}

// clearWidePair neutralizes the partner of a wide pair before the cell
// at (x, y) is overwritten.
func (t *Terminal) clearWidePair(x, y size.CellCountInt) {
	s := t.active
	c := s.Cell(x, y)
	if c == nil {
		return
	}
	switch c.Wide {
	case page.WideSpacerTail:
		if x > 0 {
			s.SetCell(x-1, y, page.Cell{})
		}
	case page.WideWide:
		if x+1 < t.cols {
			s.SetCell(x+1, y, page.Cell{})
		}
	}
}

// RepeatLastChar implements CSI b (REP).
func (t *Terminal) RepeatLastChar(repeated uint16) {
	if t.prevPrint == 0 {
		return
	}
	if repeated == 0 {
		repeated = 1
	}
	for i := uint16(0); i < repeated; i++ {
		t.printRune(t.prevPrint)
	}
}

// DesignateCharset implements handler.CharsetHandler.
func (t *Terminal) DesignateCharset(slot charset.Slot, cs charset.Charset) {
	t.charsets.Designate(slot, cs)
}

// InvokeCharset activates a slot. Only the locking shifts SI and SO are
// reachable from the stream, so slots beyond G1 are ignored.
func (t *Terminal) InvokeCharset(slot charset.Slot) {
	switch slot {
	case charset.G0:
		t.charsets.ShiftIn()
	case charset.G1:
		t.charsets.ShiftOut()
	default:
		t.logger.Debug("terminal: unsupported charset invocation", "slot", slot)
	}
}
