package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/atmsim/atmsim/sim/trace"
)

type customerStage int

const (
	customerArriving customerStage = iota
	customerQueued
	customerInService
	customerDone
)

// Customer is one customer's lifecycle:
// arrive → request a server → record wait on grant → hold for a sampled
// service duration → release → leave.
//
// The wait is recorded on the resumption that follows the grant, never before,
// so every sample equals grant time − arrival time exactly.
type Customer struct {
	ID      int
	pool    *ResourcePool
	service DurationSampler
	rng     *rand.Rand
	metrics *Metrics
	trace   *trace.SimulationTrace

	stage       customerStage
	arrivedAt   float64
	serviceTime float64
	ticket      *Ticket
}

// NewCustomer creates a customer that will be served by pool with service
// durations drawn from service using rng. Wait times go to metrics.
func NewCustomer(id int, pool *ResourcePool, service DurationSampler, rng *rand.Rand, metrics *Metrics) *Customer {
	return &Customer{
		ID:      id,
		pool:    pool,
		service: service,
		rng:     rng,
		metrics: metrics,
	}
}

// WithTrace attaches a trace that receives a record per served customer.
func (c *Customer) WithTrace(st *trace.SimulationTrace) *Customer {
	c.trace = st
	return c
}

// Resume implements Process.
func (c *Customer) Resume(sim *Simulator) Effect {
	switch c.stage {
	case customerArriving:
		c.arrivedAt = sim.Now()
		c.ticket = c.pool.Request(sim)
		c.stage = customerQueued
		return Acquire(c.ticket)

	case customerQueued:
		wait := sim.Now() - c.arrivedAt
		c.metrics.RecordWait(wait)
		c.serviceTime = c.service.Sample(c.rng)
		c.stage = customerInService
		logrus.Debugf("[t=%9.3f] customer %d waited %.4f, service %.4f", sim.Now(), c.ID, wait, c.serviceTime)
		return Wait(c.serviceTime)

	case customerInService:
		c.pool.Release(sim, c.ticket)
		c.metrics.Completed++
		c.stage = customerDone
		if c.trace != nil && c.trace.CapturesCustomers() {
			c.trace.RecordCustomer(trace.CustomerRecord{
				CustomerID:  c.ID,
				TicketID:    c.ticket.ID,
				ArrivedAt:   c.arrivedAt,
				GrantedAt:   c.ticket.GrantedAt,
				ServiceTime: c.serviceTime,
				ReleasedAt:  sim.Now(),
			})
		}
		return Done()

	default:
		return Done()
	}
}
