// Package set provides a reference-counted value set with small-integer
// ids. Cells reference shared values (styles, hyperlinks) by id instead
// of by pointer; the count tracks how many cells reference each value
// and ids are recycled once the count drops to zero.
package set

import (
	"errors"

	"github.com/hnimtadd/termcore/terminal/utils"
)

// Hashable is implemented by values stored in a set.
type Hashable interface {
	Hash() uint64
	Equals(other Hashable) bool
}

// ID is the small-integer handle for an item. ID 0 is reserved and
// means "no item" (the default style, no hyperlink).
type ID uint32

// ErrFull is returned by Add when the set has reached its capacity.
// This surfaces to the caller as an API-misuse error; it is never the
// result of untrusted terminal input alone, since eviction releases ids.
var ErrFull = errors.New("set: capacity exceeded")

type elem struct {
	value Hashable
	ref   int64
}

// RefCountedSet stores up to cap values, deduplicated by Hash/Equals.
type RefCountedSet struct {
	items  []elem          // index == ID; items[0] unused
	table  map[uint64][]ID // hash -> candidate ids
	free   []ID            // recycled ids
	next   ID
	living int
}

type Options struct {
	// Cap is the maximum number of live items. Defaults to 1024.
	Cap int
}

func NewRefCountedSet(opts Options) *RefCountedSet {
	capacity := opts.Cap
	if capacity <= 0 {
		capacity = 1024
	}
	return &RefCountedSet{
		items: make([]elem, capacity+1),
		table: make(map[uint64][]ID, capacity),
		next:  1,
	}
}

// Add inserts the value if not present and increments its ref count,
// returning its id. Adding an equal value returns the existing id.
func (s *RefCountedSet) Add(value Hashable) (ID, error) {
	hash := value.Hash()
	if id, ok := s.lookup(hash, value); ok {
		s.items[id].ref++
		return id, nil
	}

	id, ok := s.allocID()
	if !ok {
		return 0, ErrFull
	}
	s.items[id] = elem{value: value, ref: 1}
	s.table[hash] = append(s.table[hash], id)
	s.living++
	return id, nil
}

// Use increments the reference count of an existing item. It is a
// programming error to use a dead or reserved id.
func (s *RefCountedSet) Use(id ID) {
	utils.Assert(id > 0, "cannot use item with ID 0")
	utils.Assert(s.items[id].ref > 0, "use of dead item")
	s.items[id].ref++
}

// Release decrements the reference count. When it reaches zero the item
// is removed and its id becomes reusable.
func (s *RefCountedSet) Release(id ID) {
	utils.Assert(id > 0, "cannot release item with ID 0")
	item := &s.items[id]
	utils.Assert(item.ref > 0, "release of dead item")
	item.ref--
	if item.ref > 0 {
		return
	}

	hash := item.value.Hash()
	bucket := s.table[hash]
	for i, candidate := range bucket {
		if candidate == id {
			bucket[i] = bucket[len(bucket)-1]
			bucket = bucket[:len(bucket)-1]
			break
		}
	}
	if len(bucket) == 0 {
		delete(s.table, hash)
	} else {
		s.table[hash] = bucket
	}
	*item = elem{}
	s.free = append(s.free, id)
	s.living--
}

// Lookup finds an equal value and returns its id without touching the
// reference count.
func (s *RefCountedSet) Lookup(value Hashable) (ID, bool) {
	return s.lookup(value.Hash(), value)
}

// Get returns the value stored under id, or nil for dead/reserved ids.
func (s *RefCountedSet) Get(id ID) Hashable {
	if id == 0 || int(id) >= len(s.items) {
		return nil
	}
	if s.items[id].ref == 0 {
		return nil
	}
	return s.items[id].value
}

// Count returns the number of living items.
func (s *RefCountedSet) Count() int { return s.living }

func (s *RefCountedSet) lookup(hash uint64, value Hashable) (ID, bool) {
	for _, id := range s.table[hash] {
		if s.items[id].value.Equals(value) {
			return id, true
		}
	}
	return 0, false
}

func (s *RefCountedSet) allocID() (ID, bool) {
	if n := len(s.free); n > 0 {
		id := s.free[n-1]
		s.free = s.free[:n-1]
		return id, true
	}
	if int(s.next) >= len(s.items) {
		return 0, false
	}
	id := s.next
	s.next++
	return id, true
}
