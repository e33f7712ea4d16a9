package sim

import (
	"hash/fnv"
	"math/rand"
)

// serviceStreamSalt is hashed into the run seed to derive the service stream.
const serviceStreamSalt = "service"

// Streams holds the two random sources of one run.
//
// Arrivals is seeded with the run seed itself; Service is seeded with the run
// seed XOR fnv1a64("service"). Because neither stream feeds the other, runs
// that differ only in server count see the same arrival times, and customer k
// gets the k-th service draw no matter how long it queued.
//
// Not safe for concurrent use; one run owns one Streams.
type Streams struct {
	Seed     int64
	Arrivals *rand.Rand
	Service  *rand.Rand
}

// NewStreams derives both streams from seed.
func NewStreams(seed int64) *Streams {
	return &Streams{
		Seed:     seed,
		Arrivals: rand.New(rand.NewSource(seed)),
		Service:  rand.New(rand.NewSource(serviceSeed(seed))),
	}
}

func serviceSeed(seed int64) int64 {
	h := fnv.New64a()
	h.Write([]byte(serviceStreamSalt))
	return seed ^ int64(h.Sum64())
}
