package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents      int
	TotalGrants      int
	CompletedCount   int
	MeanWait         float64
	MaxWait          float64
	MeanServiceTime  float64
	PeakInUse        int
	OutOfOrderGrants int // grants whose ticket was requested before an earlier-granted one
	OverCapacity     int // grants that left more servers in use than the pool has
	ClockRegressions int // events executed at an earlier time than their predecessor
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for i := 1; i < len(st.Events); i++ {
		if st.Events[i].Clock < st.Events[i-1].Clock {
			summary.ClockRegressions++
		}
	}

	summary.TotalGrants = len(st.Grants)
	lastTicket := int64(-1)
	totalWait := 0.0
	for _, g := range st.Grants {
		if g.TicketID < lastTicket {
			summary.OutOfOrderGrants++
		}
		lastTicket = max(lastTicket, g.TicketID)
		if g.InUse > g.Capacity || g.InUse < 0 {
			summary.OverCapacity++
		}
		summary.PeakInUse = max(summary.PeakInUse, g.InUse)
		wait := g.GrantedAt - g.RequestedAt
		totalWait += wait
		if wait > summary.MaxWait {
			summary.MaxWait = wait
		}
	}
	if len(st.Grants) > 0 {
		summary.MeanWait = totalWait / float64(len(st.Grants))
	}

	summary.CompletedCount = len(st.Customers)
	if len(st.Customers) > 0 {
		totalService := 0.0
		for _, c := range st.Customers {
			totalService += c.ServiceTime
		}
		summary.MeanServiceTime = totalService / float64(len(st.Customers))
	}

	return summary
}
