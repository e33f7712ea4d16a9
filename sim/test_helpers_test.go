package sim

import "math/rand"

// constSampler always returns the same duration.
type constSampler float64

func (c constSampler) Sample(*rand.Rand) float64 { return float64(c) }

// seqSampler returns the scripted durations in order, then repeats the last one.
type seqSampler struct {
	values []float64
	i      int
}

func (s *seqSampler) Sample(*rand.Rand) float64 {
	v := s.values[min(s.i, len(s.values)-1)]
	s.i++
	return v
}

// scriptedProcess yields the given effects in order, then Done.
// Each step may run a hook first (e.g. to release a ticket).
type scriptedProcess struct {
	steps  []func(sim *Simulator) Effect
	i      int
	resume []float64 // times at which Resume was called
}

func (p *scriptedProcess) Resume(sim *Simulator) Effect {
	p.resume = append(p.resume, sim.Now())
	if p.i >= len(p.steps) {
		return Done()
	}
	step := p.steps[p.i]
	p.i++
	return step(sim)
}

func waitStep(d float64) func(*Simulator) Effect {
	return func(*Simulator) Effect { return Wait(d) }
}

// holder requests a server at start, records the grant time, holds it for
// hold minutes and releases.
type holder struct {
	pool      *ResourcePool
	hold      float64
	ticket    *Ticket
	stage     int
	grantedAt float64
	granted   *[]int // shared log of holder IDs in grant order
	id        int
}

func (h *holder) Resume(sim *Simulator) Effect {
	switch h.stage {
	case 0:
		h.ticket = h.pool.Request(sim)
		h.stage = 1
		return Acquire(h.ticket)
	case 1:
		h.grantedAt = sim.Now()
		if h.granted != nil {
			*h.granted = append(*h.granted, h.id)
		}
		h.stage = 2
		return Wait(h.hold)
	case 2:
		h.pool.Release(sim, h.ticket)
		h.stage = 3
		return Done()
	}
	return Done()
}

func int64Ptr(v int64) *int64 { return &v }
