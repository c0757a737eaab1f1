package page

// Wide describes how a cell participates in wide-character pairing.
type Wide uint8

const (
	// WideNarrow is a regular single-column cell.
	WideNarrow Wide = iota

	// WideWide is the head of a two-column character.
	WideWide

	// WideSpacerTail sits immediately after a WideWide cell and holds
	// no content of its own.
	WideSpacerTail

	// WideSpacerHead fills the last column of a row when a wide
	// character did not fit and was wrapped to the next row.
	WideSpacerHead
)

func (w Wide) String() string {
	switch w {
	case WideNarrow:
		return "narrow"
	case WideWide:
		return "wide"
	case WideSpacerTail:
		return "spacer_tail"
	case WideSpacerHead:
		return "spacer_head"
	default:
		return "unknown"
	}
}
