// Package hyperlink models OSC 8 hyperlinks. Links are interned in a
// refcounted set and referenced by cells through a small integer id, so
// a link spanning many cells is stored once.
package hyperlink

import (
	"github.com/mitchellh/hashstructure/v2"

	"github.com/hnimtadd/termcore/terminal/set"
)

// NoID is the hyperlink id of cells that carry no link.
const NoID set.ID = 0

// MaxURILen bounds accepted URIs. Longer ones are dropped, matching
// what OSC 8 emitters like terminal multiplexers tolerate.
const MaxURILen = 2083

type Hyperlink struct {
	// URI the link points at.
	URI string

	// Explicit id from the "id=" parameter, empty when the emitter did
	// not supply one. Links with the same explicit id are the same link
	// even when opened in separate OSC 8 sequences.
	ID string
}

// Hash implements set.Hashable.
func (h Hyperlink) Hash() uint64 {
	hash, err := hashstructure.Hash(h, hashstructure.FormatV2, nil)
	if err != nil {
		panic(err)
	}
	return hash
}

// Equals implements set.Hashable.
func (h Hyperlink) Equals(other set.Hashable) bool {
	o, ok := other.(Hyperlink)
	return ok && h == o
}
