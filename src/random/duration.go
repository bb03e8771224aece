package random

import "time"

// Duration randomly selects a duration in the range
// [expiration - expiration/ratio, expiration] at millisecond resolution.
// Spreading deadlines across that window keeps independent actors from
// expiring or retrying in lockstep.
//
// A ratio of zero requests no jitter and returns expiration unchanged, as
// does any window too small for expiration/ratio to reach a whole
// millisecond. A zero-width sampling range is meaningless, so both cases
// short-circuit rather than special-case the draw.
func Duration(expiration time.Duration, ratio uint8) time.Duration {
	if ratio == 0 {
		return expiration
	}

	maxExpire := expiration.Milliseconds()

	// [10 secs, 4] => 10000 / 4 => 2500
	limit := maxExpire / int64(ratio)
	if limit <= 0 {
		return expiration
	}

	// (10000 - [0..2500]) => [7500..10000]
	offset := NextInRange[uint64](0, uint64(limit))
	return time.Duration(maxExpire-int64(offset)) * time.Millisecond
}
