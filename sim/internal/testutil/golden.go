// Package testutil provides shared test infrastructure for the atmsim simulator.
// It holds the golden run dataset types and assertion helpers used by sim/ tests.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/golden_runs.json.
type GoldenDataset struct {
	Runs []GoldenRun `json:"runs"`
}

// GoldenRun is one pinned reference run: its inputs and the statistics it produced.
type GoldenRun struct {
	Name                string  `json:"name"`
	Servers             int     `json:"servers"`
	MeanServiceTime     float64 `json:"mean_service_time"`
	MeanArrivalInterval float64 `json:"mean_arrival_interval"`
	Horizon             float64 `json:"horizon"`
	Seed                int64   `json:"seed"`

	AverageWait float64 `json:"average_wait"`
	PeakWait    float64 `json:"peak_wait"`
	Served      int     `json:"served"`
	Arrivals    int     `json:"arrivals"`
}

// Find returns the run with the given name.
func (d *GoldenDataset) Find(name string) (GoldenRun, bool) {
	for _, r := range d.Runs {
		if r.Name == name {
			return r, true
		}
	}
	return GoldenRun{}, false
}

// GoldenPath returns the location of the golden dataset.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func GoldenPath(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	return filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "golden_runs.json")
}

// LoadGoldenDataset loads the golden dataset. A missing file fails the test.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()
	data, err := os.ReadFile(GoldenPath(t))
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}
	return &dataset
}

// WriteGoldenDataset replaces the golden dataset on disk.
func WriteGoldenDataset(t *testing.T, dataset *GoldenDataset) {
	t.Helper()
	path := GoldenPath(t)
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		t.Fatalf("Failed to encode golden dataset: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create testdata dir: %v", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		t.Fatalf("Failed to write golden dataset: %v", err)
	}
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}
