// sim/simulator.go
package sim

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/atmsim/atmsim/sim/trace"
)

// Simulator is the core object that holds simulation time, the pending events
// and the event loop. It is not safe for concurrent use; one run owns one Simulator.
type Simulator struct {
	// Clock is the current simulated time in minutes. Monotonically non-decreasing.
	Clock float64
	// events has all pending resumptions, ordered by (timestamp, event ID)
	events      *EventHeap
	nextEventID int64
	nextProcID  int64
	// EventCount is the number of events executed so far
	EventCount int64
	// Trace, when non-nil, receives event records at TraceLevelEvents
	Trace *trace.SimulationTrace
}

// NewSimulator creates a Simulator with the clock at zero and no pending events.
func NewSimulator() *Simulator {
	return &Simulator{
		Clock:  0,
		events: NewEventHeap(),
	}
}

// Now returns the current simulated time.
func (sim *Simulator) Now() float64 {
	return sim.Clock
}

// Pending returns the number of events waiting to be executed.
func (sim *Simulator) Pending() int {
	return sim.events.Len()
}

// Spawn registers a process and schedules its first resumption at the current time.
func (sim *Simulator) Spawn(name string, body Process) *Proc {
	if body == nil {
		panic("Spawn: process must not be nil")
	}
	p := &Proc{
		ID:    sim.nextProcID,
		Name:  name,
		State: StateAwaitingTimeout,
		body:  body,
	}
	sim.nextProcID++
	sim.push(sim.Clock, p)
	logrus.Debugf("[t=%9.3f] spawned %s", sim.Clock, p)
	return p
}

// ScheduleAfter arranges for p to be resumed delay minutes from now.
// A negative or NaN delay is rejected with ErrInvalidDelay; it is never clamped.
func (sim *Simulator) ScheduleAfter(delay float64, p *Proc) error {
	if delay < 0 || math.IsNaN(delay) {
		return fmt.Errorf("%w: %v for %s at t=%v", ErrInvalidDelay, delay, p, sim.Clock)
	}
	sim.push(sim.Clock+delay, p)
	return nil
}

func (sim *Simulator) push(at float64, p *Proc) {
	sim.events.Schedule(&ResumeEvent{time: at, id: sim.nextEventID, Proc: p})
	sim.nextEventID++
}

// RunUntil executes events in (timestamp, event ID) order while the next event is
// due no later than stop. Events due after stop stay pending: processes holding a
// server stay mid-service and queued requests stay ungranted. When the loop halts
// the clock is advanced to stop.
//
// Any error from a process (ErrInvalidDelay) aborts the run and is returned as is.
func (sim *Simulator) RunUntil(stop float64) error {
	if math.IsNaN(stop) || stop < sim.Clock {
		return fmt.Errorf("%w: stop time %v is before current time %v", ErrInvalidParameter, stop, sim.Clock)
	}
	for sim.events.Len() > 0 {
		if sim.events.Peek().Timestamp() > stop {
			break
		}
		ev := sim.events.PopNext()
		// Delays are non-negative, so the heap never yields an event in the past.
		sim.Clock = ev.Timestamp()
		sim.EventCount++
		if err := ev.Execute(sim); err != nil {
			return err
		}
	}
	if !math.IsInf(stop, 1) {
		sim.Clock = stop
	}
	logrus.Debugf("[t=%9.3f] simulation stopped with %d pending events", sim.Clock, sim.events.Len())
	return nil
}

// resume drives p until it reaches a suspend point that needs the event loop.
// Immediate grants are handled inline so the process observes no gap between
// its request and the grant.
func (sim *Simulator) resume(p *Proc) error {
	if p.State == StateDone {
		panic(fmt.Sprintf("resume: %s already terminated", p))
	}
	if sim.Trace != nil && sim.Trace.CapturesEvents() {
		sim.Trace.RecordEvent(trace.EventRecord{
			Clock:     sim.Clock,
			ProcessID: p.ID,
			Process:   p.Name,
		})
	}
	for {
		p.State = StateRunning
		eff := p.body.Resume(sim)
		logrus.Tracef("[t=%9.3f] %s yields %s", sim.Clock, p, eff)
		switch eff.kind {
		case effectWait:
			p.State = StateAwaitingTimeout
			return sim.ScheduleAfter(eff.delay, p)
		case effectAcquire:
			if eff.ticket.pool.admit(sim, eff.ticket, p) {
				continue
			}
			p.State = StateAwaitingResource
			return nil
		default:
			p.State = StateDone
			return nil
		}
	}
}
