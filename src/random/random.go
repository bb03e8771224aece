// Package random produces uniformly distributed values from the operating
// environment's entropy device. It is safe for concurrent use from any
// number of goroutines: every draw checks out an exclusive entropy source,
// so no generator state is ever shared or locked across callers.
//
// The package is deliberately not seedable and not reproducible. When the
// entropy device cannot be read the affected call panics; randomness for
// security-sensitive callers is never degraded to a best-effort substitute.
package random

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Byte returns one uniformly distributed byte.
func Byte() byte {
	return NextInRange[uint8](0, math.MaxUint8)
}

// NextInRange returns a value uniformly distributed over the inclusive
// range [begin, end]. The full width of T is a valid range. Sampling is
// promoted to uint64 internally, so single-byte types take the same path
// as everything else.
//
// Panics if begin > end.
func NextInRange[T constraints.Unsigned](begin, end T) T {
	if begin > end {
		panic(fmt.Sprintf("random: invalid range [%d, %d]", uint64(begin), uint64(end)))
	}
	s := acquireSource()
	defer releaseSource(s)
	return begin + T(s.uniformUint64(uint64(end-begin)))
}

// Fill overwrites every element of out, in order, with an independently
// drawn uniform byte.
func Fill(out []byte) {
	if len(out) == 0 {
		return
	}
	s := acquireSource()
	defer releaseSource(s)
	for i := range out {
		out[i] = byte(s.uniformUint64(math.MaxUint8))
	}
}
