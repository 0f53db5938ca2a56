package growth

import "hash/fnv"

// jitter produces stable pseudo-random values for per-element placement.
// It is seeded from the roadmap title, so two renders of the same roadmap
// lay out every leaf identically while different titles still look organic.
// An unseeded source here would reshuffle the foliage on every render.
type jitter struct {
	seed uint64
}

func newJitter(title string) jitter {
	h := fnv.New64a()
	_, _ = h.Write([]byte(title))
	return jitter{seed: h.Sum64()}
}

// Unit returns a value in [0, 1) for element i in channel salt. Channels
// keep independent properties (size, angle, color pick) uncorrelated.
func (j jitter) Unit(i, salt int) float64 {
	x := j.seed ^ (uint64(i)+1)*0x9E3779B97F4A7C15 ^ (uint64(salt)+1)*0xBF58476D1CE4E5B9

	// splitmix64 finalizer
	x ^= x >> 30
	x *= 0xBF58476D1CE4E5B9
	x ^= x >> 27
	x *= 0x94D049BB133111EB
	x ^= x >> 31

	return float64(x>>11) / float64(1<<53)
}

// Range returns a value in [lo, hi).
func (j jitter) Range(i, salt int, lo, hi float64) float64 {
	return lo + j.Unit(i, salt)*(hi-lo)
}

// Pick returns a stable index in [0, n).
func (j jitter) Pick(i, salt, n int) int {
	if n <= 0 {
		return 0
	}
	return int(j.Unit(i, salt) * float64(n))
}
