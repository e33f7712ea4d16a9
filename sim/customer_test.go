package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/atmsim/atmsim/sim/trace"
)

func TestCustomer_WaitRecordedOnGrant(t *testing.T) {
	// GIVEN a single server already held until t=4
	sim := NewSimulator()
	pool, err := NewResourcePool("atm", 1)
	require.NoError(t, err)
	sim.Spawn("holder", &holder{pool: pool, hold: 4})

	// AND a customer arriving at t=1 with a 2 minute service
	metrics := NewMetrics()
	c := NewCustomer(0, pool, constSampler(2), nil, metrics)
	sim.Spawn("delay", &scriptedProcess{steps: []func(*Simulator) Effect{
		waitStep(1),
		func(s *Simulator) Effect {
			s.Spawn("customer-0", c)
			return Done()
		},
	}})

	// WHEN the simulation runs
	require.NoError(t, sim.RunUntil(20))

	// THEN the wait is grant − arrival exactly, and the server is released after service
	require.Equal(t, []float64{3}, metrics.WaitTimes)
	assert.Equal(t, 1.0, c.arrivedAt)
	assert.Equal(t, 4.0, c.ticket.GrantedAt)
	assert.Equal(t, 1, metrics.Completed)
	assert.Equal(t, 0, pool.InUse())
}

func TestCustomer_QueuedAtHorizon_ContributesNoSample(t *testing.T) {
	// GIVEN a server held past the horizon and a customer queued behind it
	sim := NewSimulator()
	pool, err := NewResourcePool("atm", 1)
	require.NoError(t, err)
	sim.Spawn("holder", &holder{pool: pool, hold: 50})
	metrics := NewMetrics()
	c := NewCustomer(0, pool, constSampler(1), nil, metrics)
	proc := sim.Spawn("customer-0", c)

	// WHEN the run stops at 10
	require.NoError(t, sim.RunUntil(10))

	// THEN the customer is still waiting and no sample exists
	assert.Empty(t, metrics.WaitTimes)
	assert.Equal(t, StateAwaitingResource, proc.State)
	assert.Equal(t, 1, pool.QueueLen())
}

func TestArrivalGenerator_DeterministicStream(t *testing.T) {
	// GIVEN arrivals every minute, a 3 minute service and one server
	sim := NewSimulator()
	pool, err := NewResourcePool("atm", 1)
	require.NoError(t, err)
	metrics := NewMetrics()
	st := trace.NewSimulationTrace(trace.TraceConfig{Level: trace.TraceLevelCustomers})
	pool.OnGrant = func(tk *Ticket) {
		st.RecordGrant(trace.GrantRecord{TicketID: tk.ID, RequestedAt: tk.RequestedAt, GrantedAt: tk.GrantedAt, InUse: pool.InUse(), Capacity: pool.Capacity()})
	}
	gen := NewArrivalGenerator(pool, constSampler(1), constSampler(3), NewStreams(1), metrics).WithTrace(st)
	sim.Spawn("arrivals", gen)

	// WHEN running until t=10
	require.NoError(t, sim.RunUntil(10))

	// THEN customers 0..9 arrived at t=1..10
	assert.Equal(t, 10, metrics.Arrivals)
	// AND customers 0..3 were granted at 1, 4, 7, 10 after waiting 0, 2, 4, 6
	assert.Equal(t, []float64{0, 2, 4, 6}, metrics.WaitTimes)
	assert.Equal(t, 3, metrics.Completed)
	// AND the rest are still queued, one is mid-service
	assert.Equal(t, 6, pool.QueueLen())
	assert.Equal(t, 1, pool.InUse())

	// AND the trace agrees
	require.Len(t, st.Customers, 3)
	for i, rec := range st.Customers {
		assert.Equal(t, i, rec.CustomerID)
		assert.Equal(t, metrics.WaitTimes[i], rec.Wait())
		assert.Equal(t, rec.GrantedAt+3, rec.ReleasedAt)
	}
	summary := trace.Summarize(st)
	assert.Equal(t, 4, summary.TotalGrants)
	assert.Zero(t, summary.OutOfOrderGrants)
}

func TestArrivalGenerator_SequentialIDs(t *testing.T) {
	sim := NewSimulator()
	pool, err := NewResourcePool("atm", 5)
	require.NoError(t, err)
	metrics := NewMetrics()
	gen := NewArrivalGenerator(pool, constSampler(0.5), constSampler(0.1), NewStreams(1), metrics)
	sim.Spawn("arrivals", gen)

	require.NoError(t, sim.RunUntil(2))

	// arrivals at 0.5, 1.0, 1.5, 2.0
	assert.Equal(t, 4, metrics.Arrivals)
	assert.Equal(t, 4, gen.nextID)
	assert.Equal(t, []float64{0, 0, 0, 0}, metrics.WaitTimes)
}
