// Package width classifies codepoints by the number of terminal columns
// they occupy and segments strings into grapheme clusters.
package width

import (
	dw "github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Of returns the number of display columns (0, 1 or 2) the codepoint
// occupies. Zero-width codepoints (combining marks, ZWJ, variation
// selectors) attach to the preceding cell rather than occupying one.
func Of(cp rune) int {
	// Fast path: ASCII and Latin-1 are always narrow. Control characters
	// never reach this function, they are filtered by the stream.
	if cp < 0x100 {
		return 1
	}
	w := dw.RuneWidth(cp)
	if w > 2 {
		return 2
	}
	return w
}

// IsCombining reports whether the codepoint joins the preceding
// grapheme cluster instead of starting a new cell.
func IsCombining(cp rune) bool {
	return cp >= 0x100 && dw.RuneWidth(cp) == 0
}

// String returns the number of display columns the string occupies,
// segmented by grapheme cluster so that combining sequences and emoji
// ZWJ sequences count once.
func String(s string) int {
	return uniseg.StringWidth(s)
}

// Clusters splits a string into grapheme clusters in order.
func Clusters(s string) []string {
	var out []string
	state := -1
	for len(s) > 0 {
		var cluster string
		cluster, s, _, state = uniseg.FirstGraphemeClusterInString(s, state)
		out = append(out, cluster)
	}
	return out
}
