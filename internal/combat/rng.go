package combat

const golden = 0x9E3779B97F4A7C15

// Next advances a splitmix64 stream. It returns a value uniformly drawn from
// [0, 1) and the seed to store for the following draw. The same seed always
// yields the same pair, so persisted seeds replay exactly.
func Next(seed int64) (float64, int64) {
	state := uint64(seed) + golden
	x := state
	x = (x ^ (x >> 30)) * 0xBF58476D1CE4E5B9
	x = (x ^ (x >> 27)) * 0x94D049BB133111EB
	x ^= x >> 31
	return float64(x>>11) / (1 << 53), int64(state)
}

// Uniform draws from [lo, hi) and returns the advanced seed.
func Uniform(seed int64, lo, hi float64) (float64, int64) {
	v, next := Next(seed)
	return lo + v*(hi-lo), next
}
