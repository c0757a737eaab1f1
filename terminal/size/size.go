package size

// CellCountInt is the integer type used to count cells on a screen:
// column positions, row positions, widths and heights. A terminal
// dimension never realistically exceeds this range.
type CellCountInt = uint16
