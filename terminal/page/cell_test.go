package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCellWidth(t *testing.T) {
	var c Cell
	assert.Equal(t, 0, c.Width())
	assert.False(t, c.HasText())

	c.Codepoint = 'a'
	assert.Equal(t, 1, c.Width())
	assert.True(t, c.HasText())

	c = Cell{Codepoint: '漢', Wide: WideWide}
	assert.Equal(t, 2, c.Width())

	c = Cell{Wide: WideSpacerTail}
	assert.Equal(t, 0, c.Width())
	c = Cell{Wide: WideSpacerHead}
	assert.Equal(t, 0, c.Width())
}

func TestCellGrapheme(t *testing.T) {
	c := Cell{Codepoint: 'e'}
	c.AppendGrapheme(0x0301) // combining acute
	assert.Equal(t, []rune{'e', 0x0301}, c.Runes())
}

func TestRowString(t *testing.T) {
	r := NewRow(8)
	r.Cells[0].Codepoint = 'h'
	r.Cells[1].Codepoint = 'i'
	assert.Equal(t, "hi", r.String())

	// Gap renders as a space.
	r.Cells[3].Codepoint = '!'
	assert.Equal(t, "hi !", r.String())
}

func TestRowStringWide(t *testing.T) {
	r := NewRow(4)
	r.Cells[0] = Cell{Codepoint: '漢', Wide: WideWide}
	r.Cells[1] = Cell{Wide: WideSpacerTail}
	r.Cells[2].Codepoint = 'x'
	assert.Equal(t, "漢x", r.String())
}

func TestRowClear(t *testing.T) {
	r := NewRow(2)
	r.Cells[0].Codepoint = 'a'
	r.Wrapped = true
	r.Clear()
	assert.False(t, r.Wrapped)
	assert.Equal(t, Cell{}, r.Cells[0])
}

func TestTrailingBlank(t *testing.T) {
	r := NewRow(5)
	assert.Equal(t, uint16(0), uint16(r.TrailingBlank()))
	r.Cells[2].Codepoint = 'z'
	assert.Equal(t, uint16(3), uint16(r.TrailingBlank()))
}
