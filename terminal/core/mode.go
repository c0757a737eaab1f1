package core

import (
	"maps"
	"slices"
)

// A struct that maintains the state of all settable modes
type Mode struct {
	Name  string
	Value int
	/// True if this is an ANSI mode
	Ansi    bool
	Default bool
}

func entryForMode(name string, value int, ansi bool, defaultMode bool) Mode {
	return Mode{
		Name:    name,
		Value:   value,
		Ansi:    ansi,
		Default: defaultMode,
	}
}

var (
	// ansi modes
	ModeDisableKeyboard = entryForMode("disable_keyboard", 2, true, false)  // KAM
	ModeInsert          = entryForMode("insert", 4, true, false)            // IRM
	ModeSendReceiveMode = entryForMode("send_receive_mode", 12, true, true) // SRM
	ModeLineFeed        = entryForMode("line_feed", 20, true, false)        // LNM

	// DEC private modes
	ModeCursorKeys    = entryForMode("cursor_keys", 1, false, false)      // DECCKM
	ModeOrigin        = entryForMode("origin", 6, false, false)           // DECOM
	ModeWraparound    = entryForMode("wraparound", 7, false, true)        // DECAWM
	ModeCursorVisible = entryForMode("cursor_visible", 25, false, true)   // DECTCEM
	ModeReverseColors = entryForMode("reverse_colors", 5, false, false)   // DECSCNM

	// Mouse tracking. These are mutually exclusive: setting one resets
	// the others.
	ModeMouseX10      = entryForMode("mouse_x10", 9, false, false)
	ModeMouseNormal   = entryForMode("mouse_normal", 1000, false, false)
	ModeMouseButton   = entryForMode("mouse_button", 1002, false, false)
	ModeMouseAnyEvent = entryForMode("mouse_any_event", 1003, false, false)
	ModeMouseSGR      = entryForMode("mouse_sgr", 1006, false, false)
	ModeFocusEvent    = entryForMode("focus_event", 1004, false, false)

	// Alternate screen family.
	ModeAltScreen         = entryForMode("alt_screen", 1047, false, false)
	ModeSaveCursor        = entryForMode("save_cursor", 1048, false, false)
	ModeAltScreenAndClear = entryForMode("alt_screen_and_clear", 1049, false, false)

	ModeBracketedPaste = entryForMode("bracketed_paste", 2004, false, false)

	// The full list of available entries. For documentation on these
	// modes, see how they are used in the VT100 and ECMA-48 standards
	// or google their values.
	entries = []Mode{
		ModeDisableKeyboard,
		ModeInsert,
		ModeSendReceiveMode,
		ModeLineFeed,
		ModeCursorKeys,
		ModeOrigin,
		ModeWraparound,
		ModeCursorVisible,
		ModeReverseColors,
		ModeMouseX10,
		ModeMouseNormal,
		ModeMouseButton,
		ModeMouseAnyEvent,
		ModeMouseSGR,
		ModeFocusEvent,
		ModeAltScreen,
		ModeSaveCursor,
		ModeAltScreenAndClear,
		ModeBracketedPaste,
	}

	// Groups of modes where at most one member may be set at a time.
	// The table is static: conflict semantics are data, not code.
	conflictGroups = [][]Mode{
		{ModeMouseX10, ModeMouseNormal, ModeMouseButton, ModeMouseAnyEvent},
	}
)

// A Packed map of all settable modes. This shouldn't be used directly
// but rather through the ModeState struct
var ModePacked = func() map[Mode]bool {
	packed := make(map[Mode]bool, len(entries))
	for _, m := range entries {
		packed[m] = m.Default
	}
	return packed
}()

// unknownKey identifies a mode number this implementation does not
// recognize. Unknown modes are still tracked so a later query can
// report their value back.
type unknownKey struct {
	Value int
	Ansi  bool
}

type ModeState struct {
	// The values of current modes
	values map[Mode]bool
	// The default values of modes
	defaults map[Mode]bool
	// Set/reset state of unrecognized mode numbers
	unknown map[unknownKey]bool
}

func NewModeState(values map[Mode]bool, def map[Mode]bool) *ModeState {
	state := &ModeState{
		defaults: def,
		values:   values,
		unknown:  make(map[unknownKey]bool),
	}
	if values == nil {
		state.values = make(map[Mode]bool)
		maps.Copy(state.values, ModePacked)
	}
	if def == nil {
		state.defaults = make(map[Mode]bool)
		maps.Copy(state.defaults, ModePacked)
	}
	return state
}

// Set stores a mode value. Setting a member of a conflict group resets
// every other member of that group.
func (s *ModeState) Set(m Mode, value bool) {
	if value {
		for _, group := range conflictGroups {
			if !slices.Contains(group, m) {
				continue
			}
			for _, other := range group {
				if other != m {
					s.values[other] = false
				}
			}
		}
	}
	s.values[m] = value
}

func (s *ModeState) Get(m Mode) bool {
	return s.values[m]
}

// SetUnknown records the value of a mode number we do not implement.
func (s *ModeState) SetUnknown(value int, ansi bool, set bool) {
	s.unknown[unknownKey{Value: value, Ansi: ansi}] = set
}

// Report returns the DECRPM value for a mode number: 1 when set, 2 when
// reset, 0 when the number was never recognized nor seen.
func (s *ModeState) Report(value int, ansi bool) int {
	if m := ModeFromInt(value, ansi); m != nil {
		if s.values[*m] {
			return 1
		}
		return 2
	}
	if set, ok := s.unknown[unknownKey{Value: value, Ansi: ansi}]; ok {
		if set {
			return 1
		}
		return 2
	}
	return 0
}

func (s *ModeState) Reset() {
	s.values = make(map[Mode]bool)
	maps.Copy(s.values, s.defaults)
	s.unknown = make(map[unknownKey]bool)
}

func ModeFromInt(input int, ansi bool) *Mode {
	for _, entry := range entries {
		entry := entry
		if entry.Value == input && entry.Ansi == ansi {
			return &entry
		}
	}
	return nil
}
