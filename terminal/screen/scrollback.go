package screen

import "github.com/hnimtadd/termcore/terminal/page"

// Scrollback is a fixed-capacity FIFO of rows that scrolled off the top
// of the screen. When full, pushing evicts the oldest row.
type Scrollback struct {
	rows  []*page.Row
	head  int
	count int
}

func NewScrollback(capacity int) *Scrollback {
	if capacity < 0 {
		capacity = 0
	}
	return &Scrollback{rows: make([]*page.Row, capacity)}
}

func (s *Scrollback) Cap() int { return len(s.rows) }
func (s *Scrollback) Len() int { return s.count }

// Push appends a row, returning the evicted oldest row when the ring
// was full so the caller can release its cell references.
func (s *Scrollback) Push(row *page.Row) (evicted *page.Row) {
	if len(s.rows) == 0 {
		return row
	}
	if s.count == len(s.rows) {
		evicted = s.rows[s.head]
		s.rows[s.head] = row
		s.head = (s.head + 1) % len(s.rows)
		return evicted
	}
	s.rows[(s.head+s.count)%len(s.rows)] = row
	s.count++
	return nil
}

// At returns the i-th row, 0 being the oldest. Out of range returns
// nil.
func (s *Scrollback) At(i int) *page.Row {
	if i < 0 || i >= s.count {
		return nil
	}
	return s.rows[(s.head+i)%len(s.rows)]
}

// Drain removes and returns all rows, oldest first.
func (s *Scrollback) Drain() []*page.Row {
	out := make([]*page.Row, 0, s.count)
	for i := 0; i < s.count; i++ {
		out = append(out, s.At(i))
	}
	s.head = 0
	s.count = 0
	for i := range s.rows {
		s.rows[i] = nil
	}
	return out
}
