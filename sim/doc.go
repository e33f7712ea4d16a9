// Package sim provides the discrete-event simulation engine for atmsim.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - simulator.go: the clock, the event loop and process resumption
//   - process.go: the Process contract and the effects a process can yield
//   - resource.go: the FIFO server pool customers contend for
//   - run.go: the run driver that wires everything together and reduces statistics
//
// # Architecture
//
// Processes are explicit state machines. Each call to Process.Resume runs the
// process up to its next suspend point and returns an Effect: Wait (suspend for
// a simulated duration), Acquire (suspend until a pool grants a ticket) or Done.
// The Simulator owns the clock and a min-heap of pending events keyed on
// (timestamp, event ID), so equal-time events run in the order they were scheduled.
//
// Everything runs on a single goroutine. Mutation of the pool and of the wait
// sample is serialized by the event loop; no locking is needed.
//
// Randomness is threaded explicitly through Streams: the arrival stream and the
// service-time stream draw from separate generators derived from one run seed.
//
// Sub-packages:
//   - sim/trace/: per-customer and per-event trace records and their summary
package sim
