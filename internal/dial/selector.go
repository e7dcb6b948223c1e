// Package dial holds the day selection state and the layout math for the
// curved week view.
package dial

// ScrollThreshold is the accumulated wheel magnitude that moves the
// selection by one day.
const ScrollThreshold = 100

// Selector tracks the selected index into a day sequence of fixed length and
// converts continuous scroll input into single-day steps.
type Selector struct {
	length int
	index  int
	acc    int
}

// NewSelector returns a Selector over length entries with the given index
// selected.
func NewSelector(length, index int) Selector {
	s := Selector{}
	s.Reset(length, index)
	return s
}

// Reset replaces the sequence length, selects index and clears the scroll
// accumulator.
func (s *Selector) Reset(length, index int) {
	if length < 0 {
		length = 0
	}
	s.length = length
	s.acc = 0
	s.Select(index)
}

// Len returns the length of the sequence.
func (s Selector) Len() int { return s.length }

// Index returns the selected index.
func (s Selector) Index() int { return s.index }

// Accumulator returns the pending scroll magnitude.
func (s Selector) Accumulator() int { return s.acc }

// Select sets the selected index, clamped to [0, length-1].
func (s *Selector) Select(index int) {
	s.index = s.clamp(index)
}

// Move shifts the selection by step, clamped to the sequence bounds.
func (s *Selector) Move(step int) {
	s.Select(s.index + step)
}

// AccumulateScroll adds a signed wheel delta. Once the accumulated magnitude
// reaches ScrollThreshold the selection moves one step in the sign's
// direction and the accumulator resets, even when the selection is already
// at a boundary. It reports whether the threshold was crossed.
func (s *Selector) AccumulateScroll(delta int) bool {
	s.acc += delta
	if abs(s.acc) < ScrollThreshold {
		return false
	}
	if s.acc > 0 {
		s.Move(1)
	} else {
		s.Move(-1)
	}
	s.acc = 0
	return true
}

func (s Selector) clamp(i int) int {
	if s.length == 0 || i < 0 {
		return 0
	}
	if i > s.length-1 {
		return s.length - 1
	}
	return i
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
