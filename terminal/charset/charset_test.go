package charset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromFinal(t *testing.T) {
	cs, ok := FromFinal('B')
	require.True(t, ok)
	require.Equal(t, ASCII, cs)

	cs, ok = FromFinal('0')
	require.True(t, ok)
	require.Equal(t, DECSpecial, cs)

	cs, ok = FromFinal('A')
	require.True(t, ok)
	require.Equal(t, Latin1, cs)

	cs, ok = FromFinal('Z')
	require.False(t, ok)
	require.Equal(t, ASCII, cs)
}

func TestSlotFromIntermediate(t *testing.T) {
	for b, want := range map[uint8]Slot{'(': G0, ')': G1, '*': G2, '+': G3} {
		slot, ok := SlotFromIntermediate(b)
		require.True(t, ok)
		require.Equal(t, want, slot)
	}
	_, ok := SlotFromIntermediate('-')
	require.False(t, ok)
}

func TestShiftInOut(t *testing.T) {
	s := NewState(ASCII)
	s.Designate(G1, DECSpecial)
	require.Equal(t, G0, s.Active())
	require.Equal(t, 'q', s.Map('q'))

	s.ShiftOut()
	require.Equal(t, G1, s.Active())
	require.Equal(t, '─', s.Map('q'))

	s.ShiftIn()
	require.Equal(t, 'q', s.Map('q'))
}

func TestMapDECSpecial(t *testing.T) {
	s := NewState(DECSpecial)
	require.Equal(t, '┌', s.Map('l'))
	require.Equal(t, '┘', s.Map('j'))
	require.Equal(t, '│', s.Map('x'))
	// Bytes outside the graphics range pass through.
	require.Equal(t, 'A', s.Map('A'))
}

func TestMapLatin1(t *testing.T) {
	s := NewState(Latin1)
	require.Equal(t, 'A', s.Map('A'))
	require.Equal(t, 'é', s.Map(0xE9))
	require.Equal(t, 'ÿ', s.Map(0xFF))
}

func TestSnapshotRestore(t *testing.T) {
	s := NewState(ASCII)
	s.Designate(G0, DECSpecial)
	s.ShiftOut()
	snap := s.Snapshot()

	s.Reset()
	require.Equal(t, G0, s.Active())
	require.Equal(t, ASCII, s.Designation(G0))

	s.Restore(snap)
	require.Equal(t, G1, s.Active())
	require.Equal(t, DECSpecial, s.Designation(G0))
}
