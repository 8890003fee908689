package assign

import "math/rand/v2"

// DefaultAttempts is the attempt budget used when [Options.Attempts] is
// not positive.
const DefaultAttempts = 1000

// Options controls the randomized search.
type Options struct {
	// Attempts bounds the number of candidate assignments built per call.
	// Zero or negative means DefaultAttempts.
	Attempts int

	// Seed makes generation reproducible when non-zero: the same seed and
	// Workers value always give the same result. Ignored when Rand is set.
	Seed uint64

	// Rand is the random source. It is only read from the calling
	// goroutine; parallel workers get their own streams seeded from it.
	Rand *rand.Rand

	// Workers splits the attempt budget across this many goroutines, each
	// with its own random stream. Values below 2 run attempts sequentially.
	// Changing Workers changes which candidates are drawn.
	Workers int
}

func (o Options) attempts() int {
	if o.Attempts <= 0 {
		return DefaultAttempts
	}
	return o.Attempts
}

func (o Options) workers() int {
	return max(1, min(o.Workers, o.attempts()))
}

// source returns the sequential random source.
func (o Options) source() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return newRand(o.seed())
}

func (o Options) seed() uint64 {
	if o.Seed != 0 {
		return o.Seed
	}
	return rand.Uint64()
}

// workerSeeds derives one seed per worker from the configured source.
func (o Options) workerSeeds(k int) []uint64 {
	seeds := make([]uint64, k)
	if o.Rand != nil {
		for i := range seeds {
			seeds[i] = o.Rand.Uint64()
		}
		return seeds
	}
	base := o.seed()
	for i := range seeds {
		seeds[i] = base + uint64(i)*0x9e3779b97f4a7c15
	}
	return seeds
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
}
