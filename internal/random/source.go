// Package random provides the uniform integer source consumed by the dice
// engine, together with array sampling helpers built on top of it.
package random

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

// Source draws uniformly distributed integers.
//
// Implementations returned by NewCryptoSource are safe for concurrent use.
type Source interface {
	// Uniform returns a uniformly distributed int in [min, max], both inclusive.
	//
	// Precondition: min <= max and max-min < math.MaxUint32.
	Uniform(min, max int) int
}

// readerSource implements Source by rejection sampling 32-bit words read from r.
//
// Invariant: no raw word at or above the rejection limit is ever mapped onto
// the output range, so every value in [min, max] is equally likely.
type readerSource struct {
	r io.Reader
}

// NewCryptoSource returns a Source backed by crypto/rand.
//
// Postcondition: every value returned by Uniform(min, max) is in [min, max].
func NewCryptoSource() Source {
	return &readerSource{r: rand.Reader}
}

// NewReaderSource returns a Source drawing its entropy from r. The source is
// only as safe for concurrent use as r is.
//
// Precondition: r must be non-nil and should be a high-entropy stream.
func NewReaderSource(r io.Reader) Source {
	return &readerSource{r: r}
}

// Uniform returns a uniformly distributed int in [min, max].
//
// Panics if min > max, if the range exceeds math.MaxUint32 values, or if the
// underlying reader fails.
func (s *readerSource) Uniform(min, max int) int {
	if min > max {
		panic(fmt.Sprintf("random: Uniform called with min %d > max %d", min, max))
	}
	// Two's-complement distance is exact for any min <= max.
	diff := uint64(max) - uint64(min)
	if diff >= math.MaxUint32 {
		panic(fmt.Sprintf("random: Uniform range [%d, %d] exceeds 32 bits", min, max))
	}
	span := diff + 1
	limit := uint64(math.MaxUint32) - uint64(math.MaxUint32)%span

	for {
		word := uint64(s.next())
		if word < limit {
			return min + int(word%span)
		}
	}
}

func (s *readerSource) next() uint32 {
	var b [4]byte
	if _, err := io.ReadFull(s.r, b[:]); err != nil {
		panic("random: entropy read failure: " + err.Error())
	}
	return binary.LittleEndian.Uint32(b[:])
}
