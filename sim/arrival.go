package sim

import (
	"fmt"
	"math/rand"

	"github.com/atmsim/atmsim/sim/trace"
)

// ArrivalGenerator is the unbounded arrival stream. Each resumption spawns the
// customer whose inter-arrival delay just elapsed and then waits for the next one.
// It never terminates on its own; the run stops it by not advancing time past the horizon.
type ArrivalGenerator struct {
	pool         *ResourcePool
	interarrival DurationSampler
	service      DurationSampler
	arrivalRNG   *rand.Rand
	serviceRNG   *rand.Rand
	metrics      *Metrics
	trace        *trace.SimulationTrace

	started bool
	nextID  int
}

// NewArrivalGenerator wires an arrival stream to pool. Inter-arrival delays come
// from interarrival and streams.Arrivals; customers draw service durations from
// service and streams.Service.
func NewArrivalGenerator(pool *ResourcePool, interarrival, service DurationSampler, streams *Streams, metrics *Metrics) *ArrivalGenerator {
	return &ArrivalGenerator{
		pool:         pool,
		interarrival: interarrival,
		service:      service,
		arrivalRNG:   streams.Arrivals,
		serviceRNG:   streams.Service,
		metrics:      metrics,
	}
}

// WithTrace attaches a trace handed to every spawned customer.
func (g *ArrivalGenerator) WithTrace(st *trace.SimulationTrace) *ArrivalGenerator {
	g.trace = st
	return g
}

// Resume implements Process.
func (g *ArrivalGenerator) Resume(sim *Simulator) Effect {
	if g.started {
		c := NewCustomer(g.nextID, g.pool, g.service, g.serviceRNG, g.metrics).WithTrace(g.trace)
		sim.Spawn(fmt.Sprintf("customer-%d", g.nextID), c)
		g.nextID++
		g.metrics.Arrivals++
	}
	g.started = true
	return Wait(g.interarrival.Sample(g.arrivalRNG))
}
