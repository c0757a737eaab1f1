// Package charset implements the VT100 character set machinery: four
// designatable slots (G0-G3) and an active slot toggled by SI/SO.
package charset

import "golang.org/x/text/encoding/charmap"

// Charset enumerates the character sets a slot can be designated with.
type Charset uint8

const (
	// ASCII passes bytes through unchanged.
	ASCII Charset = iota
	// Latin1 maps the GR range onto ISO 8859-1.
	Latin1
	// DECSpecial is the VT100 special graphics (line drawing) set.
	DECSpecial
)

// Slot identifies one of the four designatable charset slots.
type Slot uint8

const (
	G0 Slot = iota
	G1
	G2
	G3
)

// FromFinal maps an escape sequence final byte to the charset it
// designates. Unknown finals designate ASCII, matching terminals that
// treat unsupported sets as the default.
func FromFinal(final uint8) (Charset, bool) {
	switch final {
	case 'B':
		return ASCII, true
	case 'A':
		return Latin1, true
	case '0':
		return DECSpecial, true
	default:
		return ASCII, false
	}
}

// SlotFromIntermediate maps the designator intermediate byte of
// ESC ( ) * + to the slot it selects.
func SlotFromIntermediate(intermediate uint8) (Slot, bool) {
	switch intermediate {
	case '(':
		return G0, true
	case ')':
		return G1, true
	case '*':
		return G2, true
	case '+':
		return G3, true
	default:
		return G0, false
	}
}

// State tracks the designation of each slot and which slot is active.
type State struct {
	slots  [4]Charset
	active Slot
}

// NewState returns a charset state with every slot designated to the
// given default and G0 active.
func NewState(def Charset) *State {
	return &State{
		slots: [4]Charset{def, def, def, def},
	}
}

// Designate assigns a charset to a slot (ESC ( ) * + final).
func (s *State) Designate(slot Slot, cs Charset) {
	s.slots[slot] = cs
}

// ShiftIn activates G0 (SI, 0x0F).
func (s *State) ShiftIn() { s.active = G0 }

// ShiftOut activates G1 (SO, 0x0E).
func (s *State) ShiftOut() { s.active = G1 }

// Active returns the currently active slot.
func (s *State) Active() Slot { return s.active }

// Designation returns the charset currently designated to a slot.
func (s *State) Designation(slot Slot) Charset { return s.slots[slot] }

// Map translates a printable byte through the active charset. Bytes
// without a substitution pass through unchanged.
func (s *State) Map(c uint8) rune {
	switch s.slots[s.active] {
	case DECSpecial:
		if r, ok := decSpecial[rune(c)]; ok {
			return r
		}
		return rune(c)
	case Latin1:
		return charmap.ISO8859_1.DecodeByte(c)
	default:
		return rune(c)
	}
}

// Reset restores the power-on designation: every slot ASCII, G0 active.
func (s *State) Reset() {
	*s = State{}
}

// Snapshot returns a copy of the state, used by DECSC.
func (s *State) Snapshot() State { return *s }

// Restore replaces the state with a snapshot, used by DECRC.
func (s *State) Restore(snap State) { *s = snap }

// decSpecial maps the DEC special graphics set onto Unicode box drawing
// runes. Only ESC ( 0 style designation uses this table.
var decSpecial = map[rune]rune{
	'`': '◆',
	'a': '▒',
	'b': '␉',
	'c': '␌',
	'd': '␍',
	'e': '␊',
	'f': '°',
	'g': '±',
	'h': '␤',
	'i': '␋',
	'j': '┘',
	'k': '┐',
	'l': '┌',
	'm': '└',
	'n': '┼',
	'o': '⎺',
	'p': '⎻',
	'q': '─',
	'r': '⎼',
	's': '⎽',
	't': '├',
	'u': '┤',
	'v': '┴',
	'w': '┬',
	'x': '│',
	'y': '≤',
	'z': '≥',
	'{': 'π',
	'|': '≠',
	'}': '£',
	'~': '·',
}
