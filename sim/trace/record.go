// Package trace provides run-trace recording for post-run analysis and invariant checks.
// It has no dependencies on sim/ and stores pure data types.
package trace

// CustomerRecord captures one customer that completed service.
type CustomerRecord struct {
	CustomerID  int
	TicketID    int64
	ArrivedAt   float64
	GrantedAt   float64
	ServiceTime float64
	ReleasedAt  float64
}

// Wait returns the time the customer spent queued.
func (r CustomerRecord) Wait() float64 {
	return r.GrantedAt - r.ArrivedAt
}

// GrantRecord captures a server grant, including ones still in service at the horizon.
type GrantRecord struct {
	TicketID    int64 // tickets are numbered in request order
	RequestedAt float64
	GrantedAt   float64
	InUse       int // servers held right after the grant
	Capacity    int
}

// EventRecord captures one executed event.
type EventRecord struct {
	Clock     float64
	ProcessID int64
	Process   string
}
