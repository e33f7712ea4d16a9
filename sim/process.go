package sim

import "fmt"

// Process is one logical actor in the simulation: the arrival generator or a
// single customer's lifecycle. Implementations are explicit state machines.
//
// Resume runs the process from its current suspend point up to the next one and
// reports what it is waiting for. It is always called from the Simulator's event
// loop, at the simulated time the previous wait was satisfied.
type Process interface {
	Resume(sim *Simulator) Effect
}

// ProcessState is the lifecycle state of a spawned process.
type ProcessState string

const (
	StateRunning          ProcessState = "running"
	StateAwaitingTimeout  ProcessState = "awaiting-timeout"
	StateAwaitingResource ProcessState = "awaiting-resource"
	StateDone             ProcessState = "done"
)

type effectKind int

const (
	effectWait effectKind = iota
	effectAcquire
	effectDone
)

// Effect is what a process yields at a suspend point.
// Build one with Wait, Acquire or Done.
type Effect struct {
	kind   effectKind
	delay  float64
	ticket *Ticket
}

// Wait suspends the process until delay simulated minutes have elapsed.
func Wait(delay float64) Effect {
	return Effect{kind: effectWait, delay: delay}
}

// Acquire suspends the process until the ticket's pool grants it.
// If the pool has a free server and nobody is queued ahead, the grant is
// immediate and the process is resumed within the same step.
func Acquire(t *Ticket) Effect {
	if t == nil {
		panic("Acquire: ticket must not be nil")
	}
	return Effect{kind: effectAcquire, ticket: t}
}

// Done terminates the process.
func Done() Effect {
	return Effect{kind: effectDone}
}

func (e Effect) String() string {
	switch e.kind {
	case effectWait:
		return fmt.Sprintf("wait(%.4f)", e.delay)
	case effectAcquire:
		return fmt.Sprintf("acquire(%s)", e.ticket.pool.name)
	default:
		return "done"
	}
}

// Proc is the Simulator's handle on a spawned Process.
type Proc struct {
	ID    int64
	Name  string
	State ProcessState
	body  Process
}

func (p *Proc) String() string {
	return fmt.Sprintf("%s#%d", p.Name, p.ID)
}
