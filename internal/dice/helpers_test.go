package dice_test

import "strconv"

// sequenceSource returns 1, 2, 3, ... on successive draws, wrapped into the
// requested range. It is not safe for concurrent use.
type sequenceSource struct {
	next  int
	draws int
}

func newSequenceSource() *sequenceSource {
	return &sequenceSource{next: 1}
}

func (s *sequenceSource) Uniform(min, max int) int {
	v := s.next
	s.next++
	s.draws++
	return min + (v-1)%(max-min+1)
}

// constSource always returns v, even when v is outside the requested range.
type constSource int

func (c constSource) Uniform(_, _ int) int { return int(c) }

func itoa(n int) string { return strconv.Itoa(n) }
