package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events.
// Each event has a Timestamp (in simulated minutes), an EventID used to break
// ties between equal timestamps, and an Execute method that advances
// simulation state when invoked.
type Event interface {
	Timestamp() float64
	EventID() int64
	Execute(*Simulator) error
}

// ResumeEvent delivers control back to a suspended process.
// It is the only event kind the kernel needs: timeouts and resource grants
// both end with a process being resumed at a given time.
type ResumeEvent struct {
	time float64 // Simulation time at which the process resumes
	id   int64   // Insertion sequence, assigned by the Simulator
	Proc *Proc   // The process to resume
}

// Timestamp returns the scheduled time of the ResumeEvent.
func (e *ResumeEvent) Timestamp() float64 {
	return e.time
}

// EventID returns the insertion sequence of the ResumeEvent.
func (e *ResumeEvent) EventID() int64 {
	return e.id
}

// Execute resumes the process until its next suspend point.
func (e *ResumeEvent) Execute(sim *Simulator) error {
	logrus.Tracef("<< Resume: %s at t=%.4f", e.Proc, e.time)
	return sim.resume(e.Proc)
}
