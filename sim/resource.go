package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

type ticketState int

const (
	ticketPending ticketState = iota
	ticketGranted
	ticketReleased
)

// Ticket is a single request for one server of a ResourcePool.
// Tickets are numbered in request order, so a FIFO pool grants them in ID order.
type Ticket struct {
	ID          int64
	RequestedAt float64
	GrantedAt   float64
	pool        *ResourcePool
	owner       *Proc
	state       ticketState
}

// Granted reports whether the ticket currently holds (or has held) a server.
func (t *Ticket) Granted() bool {
	return t.state != ticketPending
}

// ResourcePool models a fixed number of identical servers shared by all customers.
// Requests are granted strictly in arrival order; there is no priority and no preemption.
// Invariant: 0 <= InUse() <= Capacity().
type ResourcePool struct {
	name     string
	capacity int
	inUse    int
	// waiting is the FIFO of tickets that could not be granted on request
	waiting []*Ticket

	nextTicketID int64
	grants       int64
	peakQueueLen int

	// busy-time integral for utilization
	busyArea   float64
	lastChange float64

	// OnGrant, when set, is called each time a ticket is granted.
	OnGrant func(t *Ticket)
}

// NewResourcePool creates a pool with capacity identical servers.
func NewResourcePool(name string, capacity int) (*ResourcePool, error) {
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: pool %q capacity must be positive, got %d", ErrInvalidParameter, name, capacity)
	}
	return &ResourcePool{
		name:     name,
		capacity: capacity,
		waiting:  make([]*Ticket, 0),
	}, nil
}

// Name returns the pool name.
func (rp *ResourcePool) Name() string { return rp.name }

// Capacity returns the number of servers.
func (rp *ResourcePool) Capacity() int { return rp.capacity }

// InUse returns the number of servers currently held.
func (rp *ResourcePool) InUse() int { return rp.inUse }

// QueueLen returns the number of requests waiting for a server.
func (rp *ResourcePool) QueueLen() int { return len(rp.waiting) }

// PeakQueueLen returns the longest the waiting line has been.
func (rp *ResourcePool) PeakQueueLen() int { return rp.peakQueueLen }

// Grants returns the number of tickets granted so far.
func (rp *ResourcePool) Grants() int64 { return rp.grants }

// Request creates a ticket stamped with the current time. The ticket is not
// queued until the calling process yields Acquire(ticket).
func (rp *ResourcePool) Request(sim *Simulator) *Ticket {
	t := &Ticket{
		ID:          rp.nextTicketID,
		RequestedAt: sim.Now(),
		pool:        rp,
	}
	rp.nextTicketID++
	return t
}

// admit grants t at once if a server is free and nobody is queued ahead,
// otherwise appends it to the waiting line. Reports whether t was granted.
func (rp *ResourcePool) admit(sim *Simulator, t *Ticket, p *Proc) bool {
	if t.pool != rp {
		panic(fmt.Sprintf("admit: ticket %d belongs to pool %q, not %q", t.ID, t.pool.name, rp.name))
	}
	if t.state != ticketPending || t.owner != nil {
		panic(fmt.Sprintf("admit: ticket %d already acquired", t.ID))
	}
	t.owner = p
	if rp.inUse < rp.capacity && len(rp.waiting) == 0 {
		rp.account(sim.Now())
		rp.inUse++
		rp.grant(sim, t)
		return true
	}
	rp.waiting = append(rp.waiting, t)
	rp.peakQueueLen = max(rp.peakQueueLen, len(rp.waiting))
	logrus.Debugf("[t=%9.3f] %s queued on %s (in use %d/%d, queue %d)",
		sim.Now(), p, rp.name, rp.inUse, rp.capacity, len(rp.waiting))
	return false
}

// Release returns t's server to the pool. If a request is waiting, the server
// passes straight to the longest-waiting ticket at the same simulated time and
// its process is resumed with zero delay.
//
// Releasing a ticket that does not hold a server of this pool panics.
func (rp *ResourcePool) Release(sim *Simulator, t *Ticket) {
	if t.pool != rp {
		panic(fmt.Sprintf("Release: ticket %d belongs to pool %q, not %q", t.ID, t.pool.name, rp.name))
	}
	if t.state != ticketGranted {
		panic(fmt.Sprintf("Release: ticket %d does not hold a server", t.ID))
	}
	t.state = ticketReleased
	rp.account(sim.Now())
	rp.inUse--

	if len(rp.waiting) == 0 {
		return
	}
	head := rp.waiting[0]
	rp.waiting[0] = nil
	rp.waiting = rp.waiting[1:]
	rp.inUse++
	rp.grant(sim, head)
	// Zero delay cannot fail.
	_ = sim.ScheduleAfter(0, head.owner)
}

func (rp *ResourcePool) grant(sim *Simulator, t *Ticket) {
	t.state = ticketGranted
	t.GrantedAt = sim.Now()
	rp.grants++
	logrus.Debugf("[t=%9.3f] %s granted %s ticket %d after %.4f (in use %d/%d)",
		sim.Now(), t.owner, rp.name, t.ID, t.GrantedAt-t.RequestedAt, rp.inUse, rp.capacity)
	if rp.OnGrant != nil {
		rp.OnGrant(t)
	}
}

func (rp *ResourcePool) account(now float64) {
	rp.busyArea += float64(rp.inUse) * (now - rp.lastChange)
	rp.lastChange = now
}

// Utilization returns the time-averaged fraction of servers busy over [0, now].
func (rp *ResourcePool) Utilization(now float64) float64 {
	if now <= 0 {
		return 0
	}
	area := rp.busyArea + float64(rp.inUse)*(now-rp.lastChange)
	return area / (now * float64(rp.capacity))
}
