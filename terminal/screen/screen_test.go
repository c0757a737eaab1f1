package screen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hnimtadd/termcore/terminal/page"
	"github.com/hnimtadd/termcore/terminal/size"
	"github.com/hnimtadd/termcore/terminal/style"
)

func putString(s *Screen, x, y size.CellCountInt, text string) {
	for _, cp := range text {
		s.SetCell(x, y, page.Cell{Codepoint: cp})
		x++
	}
}

func putWide(s *Screen, x, y size.CellCountInt, cp rune) {
	s.SetCell(x, y, page.Cell{Codepoint: cp, Wide: page.WideWide})
	s.SetCell(x+1, y, page.Cell{Wide: page.WideSpacerTail})
}

func TestSetCellReleasesPrevious(t *testing.T) {
	s := NewScreen(4, 2, 0)

	bold, err := s.Styles().Add(style.Style{Bold: true})
	require.NoError(t, err)
	s.SetCell(0, 0, page.Cell{Codepoint: 'a', StyleID: bold})
	s.Styles().Release(bold)
	require.Equal(t, 1, s.Styles().Count())

	s.SetCell(0, 0, page.Cell{Codepoint: 'b'})
	require.Equal(t, 0, s.Styles().Count())
	require.Nil(t, s.Styles().Get(bold))
}

func TestClearCellsBackground(t *testing.T) {
	s := NewScreen(5, 1, 0)
	putString(s, 0, 0, "hello")

	bg, err := s.Styles().Add(style.Style{Inverse: true})
	require.NoError(t, err)
	s.ClearCells(0, 1, 4, bg)
	s.Styles().Release(bg)

	require.Equal(t, "h   o", s.Row(0).String())
	require.Equal(t, bg, s.Cell(1, 0).StyleID)
	require.Equal(t, 1, s.Styles().Count())

	s.ClearCells(0, 0, 5, 0)
	require.Equal(t, 0, s.Styles().Count())
}

func TestScrollUpFeedsScrollback(t *testing.T) {
	s := NewScreen(5, 3, 10)
	putString(s, 0, 0, "one")
	putString(s, 0, 1, "two")
	putString(s, 0, 2, "three")

	s.ScrollUp(1)

	require.Equal(t, 1, s.ScrollbackLen())
	require.Equal(t, "one", s.ScrollbackRow(0).String())
	require.Equal(t, "two\nthree\n", s.String())
	require.True(t, s.ScrollbackDirty())
}

func TestScrollUpRestrictedRegionDiscards(t *testing.T) {
	s := NewScreen(5, 3, 10)
	putString(s, 0, 0, "one")
	putString(s, 0, 1, "two")
	putString(s, 0, 2, "three")
	s.SetScrollRegion(1, 2)

	s.ScrollUp(1)

	require.Equal(t, 0, s.ScrollbackLen())
	require.Equal(t, "one\nthree\n", s.String())
}

func TestScrollUpNoScrollbackReleasesStyles(t *testing.T) {
	s := NewScreen(5, 2, 0)
	bold, err := s.Styles().Add(style.Style{Bold: true})
	require.NoError(t, err)
	s.SetCell(0, 0, page.Cell{Codepoint: 'x', StyleID: bold})
	s.Styles().Release(bold)
	require.Equal(t, 1, s.Styles().Count())

	s.ScrollUp(1)
	require.Equal(t, 0, s.Styles().Count())
}

func TestScrollDown(t *testing.T) {
	s := NewScreen(5, 3, 0)
	putString(s, 0, 0, "one")
	putString(s, 0, 1, "two")
	putString(s, 0, 2, "three")

	s.ScrollDown(1)
	require.Equal(t, "\none\ntwo", s.String())

	s.SetScrollRegion(0, 1)
	s.ScrollDown(1)
	require.Equal(t, "\n\ntwo", s.String())
}

func TestInsertLines(t *testing.T) {
	s := NewScreen(5, 4, 0)
	for y, text := range []string{"a", "b", "c", "d"} {
		putString(s, 0, size.CellCountInt(y), text)
	}

	s.InsertLines(1, 1)
	require.Equal(t, "a\n\nb\nc", s.String())

	// Outside the scroll region nothing happens.
	s.SetScrollRegion(0, 1)
	s.InsertLines(2, 1)
	require.Equal(t, "a\n\nb\nc", s.String())
}

func TestDeleteLines(t *testing.T) {
	s := NewScreen(5, 4, 0)
	for y, text := range []string{"a", "b", "c", "d"} {
		putString(s, 0, size.CellCountInt(y), text)
	}

	s.DeleteLines(1, 2)
	require.Equal(t, "a\nd\n\n", s.String())

	s.SetScrollRegion(2, 3)
	s.DeleteLines(0, 1)
	require.Equal(t, "a\nd\n\n", s.String())
}

func TestInsertCells(t *testing.T) {
	s := NewScreen(5, 1, 0)
	putString(s, 0, 0, "abcde")

	s.InsertCells(1, 0, 2, 0)
	require.Equal(t, "a  bc", s.Row(0).String())
}

func TestDeleteCells(t *testing.T) {
	s := NewScreen(5, 1, 0)
	putString(s, 0, 0, "abcde")

	s.DeleteCells(1, 0, 2, 0)
	require.Equal(t, "ade", s.Row(0).String())
}

func TestDeleteCellsWideFixup(t *testing.T) {
	s := NewScreen(4, 1, 0)
	s.SetCell(0, 0, page.Cell{Codepoint: 'a'})
	putWide(s, 1, 0, '漢')

	// Deleting the head leaves an orphaned spacer tail that must be
	// cleared.
	s.DeleteCells(1, 0, 1, 0)
	require.Equal(t, page.WideNarrow, s.Cell(1, 0).Wide)
	require.False(t, s.Cell(1, 0).HasText())
	require.Equal(t, "a", s.Row(0).String())
}

func TestInsertCellsWideFixup(t *testing.T) {
	s := NewScreen(4, 1, 0)
	putWide(s, 0, 0, '漢')
	s.SetCell(2, 0, page.Cell{Codepoint: 'c'})

	// Splitting the pair clears both halves.
	s.InsertCells(1, 0, 1, 0)
	require.False(t, s.Cell(0, 0).HasText())
	require.Equal(t, page.WideNarrow, s.Cell(0, 0).Wide)
	require.Equal(t, "   c", s.Row(0).String())
}

func TestScrollbackFIFOBound(t *testing.T) {
	s := NewScreen(5, 1, 2)
	for _, text := range []string{"a", "b", "c", "d"} {
		putString(s, 0, 0, text)
		s.ScrollUp(1)
	}

	require.Equal(t, 2, s.ScrollbackLen())
	require.Equal(t, "c", s.ScrollbackRow(0).String())
	require.Equal(t, "d", s.ScrollbackRow(1).String())
}

func TestClearScrollback(t *testing.T) {
	s := NewScreen(5, 1, 4)
	putString(s, 0, 0, "a")
	s.ScrollUp(1)
	require.Equal(t, 1, s.ScrollbackLen())

	s.ClearScrollback()
	require.Equal(t, 0, s.ScrollbackLen())
}

func TestClear(t *testing.T) {
	s := NewScreen(5, 2, 0)
	putString(s, 0, 0, "ab")
	putString(s, 0, 1, "cd")
	s.Row(0).Wrapped = true

	s.Clear(0)
	require.Equal(t, "\n", s.String())
	require.False(t, s.Row(0).Wrapped)
}

func TestDirtyTracking(t *testing.T) {
	s := NewScreen(5, 3, 0)
	s.DirtyReset()
	require.False(t, s.Dirty(1))

	s.SetCell(0, 1, page.Cell{Codepoint: 'x'})
	require.True(t, s.Dirty(1))
	require.False(t, s.Dirty(0))

	s.DirtyReset()
	require.False(t, s.Dirty(1))
}

func TestSetScrollRegionInvalidResets(t *testing.T) {
	s := NewScreen(5, 4, 0)
	s.SetScrollRegion(2, 1)
	top, bottom := s.ScrollRegion()
	require.Equal(t, size.CellCountInt(0), top)
	require.Equal(t, size.CellCountInt(3), bottom)

	s.SetScrollRegion(1, 10)
	top, bottom = s.ScrollRegion()
	require.Equal(t, size.CellCountInt(1), top)
	require.Equal(t, size.CellCountInt(3), bottom)
}

func TestResizeInvalid(t *testing.T) {
	s := NewScreen(5, 2, 0)
	require.ErrorIs(t, s.Resize(0, 2), ErrInvalidSize)
	require.ErrorIs(t, s.Resize(5, 0), ErrInvalidSize)
	require.NoError(t, s.Resize(5, 2))
}

func TestResizeWidenRejoinsSoftWrap(t *testing.T) {
	s := NewScreen(3, 2, 0)
	putString(s, 0, 0, "abc")
	s.Row(0).Wrapped = true
	putString(s, 0, 1, "de")

	require.NoError(t, s.Resize(10, 2))
	require.Equal(t, "abcde\n", s.String())
	require.False(t, s.Row(0).Wrapped)
}

func TestResizeShrinkSplitsLine(t *testing.T) {
	s := NewScreen(5, 1, 10)
	putString(s, 0, 0, "abcde")
	s.Cursor.X = 4

	require.NoError(t, s.Resize(3, 2))
	require.Equal(t, "abc\nde", s.String())
	require.True(t, s.Row(0).Wrapped)
	require.False(t, s.Row(1).Wrapped)
	require.Equal(t, size.CellCountInt(1), s.Cursor.Y)
	require.Equal(t, size.CellCountInt(1), s.Cursor.X)
}

func TestResizePreservesHardBreaks(t *testing.T) {
	s := NewScreen(5, 2, 0)
	putString(s, 0, 0, "ab")
	putString(s, 0, 1, "cd")

	require.NoError(t, s.Resize(10, 2))
	require.Equal(t, "ab\ncd", s.String())
}

func TestResizeShrinkRowsFeedsScrollback(t *testing.T) {
	s := NewScreen(5, 4, 10)
	for y, text := range []string{"a", "b", "c", "d"} {
		putString(s, 0, size.CellCountInt(y), text)
	}
	s.Cursor.Y = 3

	require.NoError(t, s.Resize(5, 2))
	require.Equal(t, 2, s.ScrollbackLen())
	require.Equal(t, "a", s.ScrollbackRow(0).String())
	require.Equal(t, "b", s.ScrollbackRow(1).String())
	require.Equal(t, "c\nd", s.String())
	require.Equal(t, size.CellCountInt(1), s.Cursor.Y)
}

func TestResizeKeepsCursorOnScreen(t *testing.T) {
	s := NewScreen(5, 4, 0)
	for y, text := range []string{"a", "b", "c", "d"} {
		putString(s, 0, size.CellCountInt(y), text)
	}
	s.Cursor.Y = 0

	// With no scrollback and the cursor pinned to the first line, the
	// bottom rows are dropped rather than the cursor pushed off.
	require.NoError(t, s.Resize(5, 2))
	require.Equal(t, "a\nb", s.String())
	require.Equal(t, size.CellCountInt(0), s.Cursor.Y)
}

func TestResizeWideCellAtBoundary(t *testing.T) {
	s := NewScreen(4, 2, 0)
	putString(s, 0, 0, "ab")
	putWide(s, 2, 0, '漢')

	require.NoError(t, s.Resize(3, 2))
	require.Equal(t, page.WideSpacerHead, s.Cell(2, 0).Wide)
	require.True(t, s.Row(0).Wrapped)
	require.Equal(t, page.WideWide, s.Cell(0, 1).Wide)
	require.Equal(t, "ab\n漢", s.String())
}

func TestResizeResetsScrollRegion(t *testing.T) {
	s := NewScreen(5, 4, 0)
	s.SetScrollRegion(1, 2)

	require.NoError(t, s.Resize(5, 6))
	top, bottom := s.ScrollRegion()
	require.Equal(t, size.CellCountInt(0), top)
	require.Equal(t, size.CellCountInt(5), bottom)
}

func TestResizeClearsPendingWrap(t *testing.T) {
	s := NewScreen(3, 1, 0)
	putString(s, 0, 0, "abc")
	s.Cursor.X = 2
	s.Cursor.PendingWrap = true

	require.NoError(t, s.Resize(4, 1))
	require.False(t, s.Cursor.PendingWrap)
}

func TestResizeRoundTrip(t *testing.T) {
	s := NewScreen(5, 2, 10)
	putString(s, 0, 0, "abcde")
	s.Row(0).Wrapped = true
	putString(s, 0, 1, "fg")
	s.Cursor.Y = 1
	s.Cursor.X = 2

	require.NoError(t, s.Resize(3, 2))
	require.NoError(t, s.Resize(5, 2))
	require.Equal(t, "abcde\nfg", s.String())
}
