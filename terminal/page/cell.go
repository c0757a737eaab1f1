// Package page holds the cell grid primitives: cells, rows and the
// wide-character pairing rules between them.
package page

import "github.com/hnimtadd/termcore/terminal/set"

// Cell is a single grid position. The zero Cell is an empty cell with
// default style and no hyperlink.
type Cell struct {
	// Codepoint is the primary character, 0 for an empty cell. Spacer
	// cells always have codepoint 0.
	Codepoint rune

	// Grapheme holds zero-width codepoints attached to this cell
	// (combining marks, variation selectors). nil for the common case
	// of a single-codepoint cell.
	Grapheme []rune

	Wide Wide

	// StyleID indexes the screen's style set, 0 for the default style.
	// Erased cells can carry a non-default id so the background color
	// survives erasure.
	StyleID set.ID

	// HyperlinkID indexes the screen's hyperlink set, 0 for none.
	HyperlinkID set.ID
}

// HasText reports whether the cell holds a printable character.
func (c *Cell) HasText() bool { return c.Codepoint != 0 }

// Width returns the number of columns the cell's character occupies.
// Spacer cells report 0.
func (c *Cell) Width() int {
	switch c.Wide {
	case WideWide:
		return 2
	case WideSpacerTail, WideSpacerHead:
		return 0
	default:
		if c.Codepoint == 0 {
			return 0
		}
		return 1
	}
}

// Runes returns the full grapheme cluster of the cell.
func (c *Cell) Runes() []rune {
	if c.Codepoint == 0 {
		return nil
	}
	if len(c.Grapheme) == 0 {
		return []rune{c.Codepoint}
	}
	out := make([]rune, 0, 1+len(c.Grapheme))
	out = append(out, c.Codepoint)
	out = append(out, c.Grapheme...)
	return out
}

// AppendGrapheme attaches a zero-width codepoint to the cell.
func (c *Cell) AppendGrapheme(cp rune) {
	c.Grapheme = append(c.Grapheme, cp)
}
