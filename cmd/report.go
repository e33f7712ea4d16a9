package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	sim "github.com/atmsim/atmsim/sim"
	"github.com/atmsim/atmsim/sim/trace"
)

// RunReport is the JSON document written by `run --output`.
type RunReport struct {
	RunID  string        `json:"run_id"`
	Config sim.RunConfig `json:"config"`
	Result *sim.Result   `json:"result"`
}

// printResult writes the human-readable metrics block of one run.
func printResult(w io.Writer, cfg sim.RunConfig, res *sim.Result) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "ATMs                 : %d\n", cfg.Servers)
	fmt.Fprintf(w, "Mean Service Time    : %.2f minutes\n", cfg.MeanServiceTime)
	fmt.Fprintf(w, "Mean Arrival Interval: %.2f minutes\n", cfg.MeanArrivalInterval)
	fmt.Fprintf(w, "Simulation Ended Time: %.2f minutes\n", res.SimEndedTime)
	fmt.Fprintf(w, "Seed                 : %d\n", res.Seed)
	fmt.Fprintf(w, "Arrivals             : %d\n", res.Arrivals)
	fmt.Fprintf(w, "Served               : %d\n", res.Served)
	fmt.Fprintf(w, "Completed            : %d\n", res.Completed)
	fmt.Fprintf(w, "Still Queued         : %d\n", res.StillQueued)
	fmt.Fprintf(w, "In Service           : %d\n", res.InService)
	fmt.Fprintf(w, "Peak Queue Length    : %d\n", res.PeakQueueLen)
	fmt.Fprintf(w, "Utilization          : %.2f%%\n", res.Utilization*100)
	fmt.Fprintf(w, "Average Wait Time    : %.2f minutes\n", res.AverageWait)
	fmt.Fprintf(w, "P50 Wait Time        : %.2f minutes\n", res.P50Wait)
	fmt.Fprintf(w, "P95 Wait Time        : %.2f minutes\n", res.P95Wait)
	fmt.Fprintf(w, "Peak Wait Time       : %.2f minutes\n", res.PeakWait)

	if res.Trace == nil {
		return
	}
	s := trace.Summarize(res.Trace)
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Events Recorded      : %d\n", s.TotalEvents)
	fmt.Fprintf(w, "Grants Recorded      : %d\n", s.TotalGrants)
	fmt.Fprintf(w, "Customers Completed  : %d\n", s.CompletedCount)
	fmt.Fprintf(w, "Mean Service Time    : %.2f minutes\n", s.MeanServiceTime)
	fmt.Fprintf(w, "Peak Servers In Use  : %d\n", s.PeakInUse)
	if s.OutOfOrderGrants > 0 || s.OverCapacity > 0 || s.ClockRegressions > 0 {
		fmt.Fprintf(w, "Anomalies            : %d out-of-order grants, %d over capacity, %d clock regressions\n",
			s.OutOfOrderGrants, s.OverCapacity, s.ClockRegressions)
	}
}

// writeResultJSON saves the run's configuration and result to path.
func writeResultJSON(path, id string, cfg sim.RunConfig, res *sim.Result) error {
	data, err := json.MarshalIndent(RunReport{RunID: id, Config: cfg, Result: res}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling result: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
