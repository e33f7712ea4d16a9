package sim

import (
	"fmt"
	"math/rand"
)

// DurationSampler draws a simulated duration in minutes.
type DurationSampler interface {
	// Sample returns a non-negative duration.
	Sample(rng *rand.Rand) float64
}

// ExponentialSampler produces exponentially-distributed durations with the given mean.
// Used for both inter-arrival times (a Poisson arrival stream) and service times.
type ExponentialSampler struct {
	mean float64
}

// NewExponentialSampler returns a sampler with the given mean. The mean must be positive.
func NewExponentialSampler(mean float64) (*ExponentialSampler, error) {
	if !(mean > 0) {
		return nil, fmt.Errorf("%w: exponential mean must be positive, got %v", ErrInvalidParameter, mean)
	}
	return &ExponentialSampler{mean: mean}, nil
}

// Mean returns the distribution mean.
func (s *ExponentialSampler) Mean() float64 {
	return s.mean
}

// Sample returns an exponentially distributed duration with the sampler's mean.
func (s *ExponentialSampler) Sample(rng *rand.Rand) float64 {
	return rng.ExpFloat64() * s.mean
}
