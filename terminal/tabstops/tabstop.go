package tabstops

import (
	"github.com/hnimtadd/termcore/terminal/size"
)

// Unit is the type we use per tabstop unit.
type Unit = uint8

const (
	unitBits         size.CellCountInt = 8 // bits in Unit (uint8)
	preallocCols                       = 512
	preallocCount                      = int(preallocCols / unitBits)
	TABSTOP_INTERVAL                   = 8 // Default tabstop interval
)

// Tabstops efficiently tracks tabstop locations. Columns up to 512 live
// in a fixed array, wider terminals spill into a dynamic slice.
type Tabstops struct {
	cols     size.CellCountInt
	prealloc [preallocCount]Unit
	dynamic  []Unit
}

// Helper: bit mask for each bit in a Unit
var masks = func() [unitBits]Unit {
	var m [unitBits]Unit
	for i := size.CellCountInt(0); i < unitBits; i++ {
		m[i] = 1 << i
	}
	return m
}()

func entry(col size.CellCountInt) int { return int(col / unitBits) }
func index(col size.CellCountInt) int { return int(col % unitBits) }

// NewTabstops creates a new Tabstops for the given number of columns
// and interval.
func NewTabstops(cols size.CellCountInt, interval uint8) *Tabstops {
	t := &Tabstops{cols: cols}
	t.Resize(cols)
	t.Reset(interval)
	return t
}

// Set sets the tabstop at a certain column (0-indexed).
func (t *Tabstops) Set(col size.CellCountInt) {
	i, idx := entry(col), index(col)
	if i < preallocCount {
		t.prealloc[i] |= masks[idx]
		return
	}
	dynI := i - preallocCount
	if dynI < len(t.dynamic) {
		t.dynamic[dynI] |= masks[idx]
	}
}

// Unset unsets the tabstop at a certain column (0-indexed).
func (t *Tabstops) Unset(col size.CellCountInt) {
	i, idx := entry(col), index(col)
	if i < preallocCount {
		t.prealloc[i] &^= masks[idx]
		return
	}
	dynI := i - preallocCount
	if dynI < len(t.dynamic) {
		t.dynamic[dynI] &^= masks[idx]
	}
}

// Get returns true if a tabstop is set at the given column.
func (t *Tabstops) Get(col size.CellCountInt) bool {
	i, idx := entry(col), index(col)
	mask := masks[idx]
	var unit Unit
	if i < preallocCount {
		unit = t.prealloc[i]
	} else {
		dynI := i - preallocCount
		if dynI >= len(t.dynamic) {
			return false
		}
		unit = t.dynamic[dynI]
	}
	return unit&mask == mask
}

// Resize ensures the Tabstops can support up to cols columns. Existing
// stops are preserved; new columns start without stops.
func (t *Tabstops) Resize(cols size.CellCountInt) {
	t.cols = cols

	// do nothing if it fits.
	if cols <= preallocCols {
		return
	}

	needed := (int(cols-preallocCols) + int(unitBits) - 1) / int(unitBits)
	if needed <= len(t.dynamic) {
		return
	}
	grown := make([]Unit, needed)
	copy(grown, t.dynamic)
	t.dynamic = grown
}

// Capacity returns the maximum number of columns this can support
// currently.
func (t *Tabstops) Capacity() int {
	return (preallocCount + len(t.dynamic)) * int(unitBits)
}

// Reset unsets all tabstops and then sets initial tabstops at the given
// interval. An interval of 0 leaves every column without a stop.
func (t *Tabstops) Reset(interval uint8) {
	for i := range t.prealloc {
		t.prealloc[i] = 0
	}
	for i := range t.dynamic {
		t.dynamic[i] = 0
	}
	if interval > 0 && t.cols > 0 {
		for i := size.CellCountInt(interval); i < t.cols; i += size.CellCountInt(interval) {
			t.Set(i)
		}
	}
}
