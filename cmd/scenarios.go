package cmd

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/atmsim/atmsim/sim"
)

//go:embed defaults.yaml
var defaultScenarios []byte

// ScenarioFileVersion is the only sweep file format version understood.
const ScenarioFileVersion = "1"

// ScenarioFile is the sweep definition read by the sweep command.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type ScenarioFile struct {
	Version   string     `yaml:"version"` // empty means ScenarioFileVersion
	Horizon   float64    `yaml:"horizon"`
	Seed      *int64     `yaml:"seed"`
	Scenarios []Scenario `yaml:"scenarios"`
}

// Scenario is a group of runs that vary one parameter.
type Scenario struct {
	Name    string        `yaml:"name"`
	Title   string        `yaml:"title"`
	Metrics []string      `yaml:"metrics"` // "average", "peak"
	Runs    []ScenarioRun `yaml:"runs"`
}

// ScenarioRun is one row of a scenario.
type ScenarioRun struct {
	Label               string   `yaml:"label"`
	Servers             int      `yaml:"servers"`
	MeanServiceTime     float64  `yaml:"mean_service_time"`
	MeanArrivalInterval float64  `yaml:"mean_arrival_interval"`
	Horizon             *float64 `yaml:"horizon"` // overrides the file horizon when set
}

// ValidScenarioMetrics is the set of statistics a scenario can report.
var ValidScenarioMetrics = map[string]bool{"average": true, "peak": true}

// LoadScenarioFile reads a sweep definition. An empty path selects the built-in defaults.
func LoadScenarioFile(path string) (*ScenarioFile, error) {
	data := defaultScenarios
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading scenario file: %w", err)
		}
	}
	return ParseScenarioFile(data)
}

// ParseScenarioFile decodes and validates a sweep definition.
// Unknown fields are rejected so typos surface as errors.
func ParseScenarioFile(data []byte) (*ScenarioFile, error) {
	var file ScenarioFile
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&file); err != nil {
		return nil, fmt.Errorf("parsing scenario file: %w", err)
	}
	if err := file.Validate(); err != nil {
		return nil, err
	}
	return &file, nil
}

// Validate checks the file version, scenario names, metric names and every run's parameters.
func (f *ScenarioFile) Validate() error {
	if f.Version != "" && f.Version != ScenarioFileVersion {
		return fmt.Errorf("%w: unsupported scenario file version %q (want %q)", sim.ErrInvalidParameter, f.Version, ScenarioFileVersion)
	}
	if len(f.Scenarios) == 0 {
		return fmt.Errorf("%w: scenario file has no scenarios", sim.ErrInvalidParameter)
	}
	seen := make(map[string]bool)
	for _, sc := range f.Scenarios {
		if sc.Name == "" {
			return fmt.Errorf("%w: scenario without a name", sim.ErrInvalidParameter)
		}
		if seen[sc.Name] {
			return fmt.Errorf("%w: duplicate scenario %q", sim.ErrInvalidParameter, sc.Name)
		}
		seen[sc.Name] = true
		if len(sc.Runs) == 0 {
			return fmt.Errorf("%w: scenario %q has no runs", sim.ErrInvalidParameter, sc.Name)
		}
		for _, m := range sc.Metrics {
			if !ValidScenarioMetrics[m] {
				return fmt.Errorf("%w: scenario %q: unknown metric %q", sim.ErrInvalidParameter, sc.Name, m)
			}
		}
		for i, run := range sc.Runs {
			if err := f.RunConfig(run, nil).Validate(); err != nil {
				return fmt.Errorf("scenario %q run %d (%s): %w", sc.Name, i, run.Label, err)
			}
		}
	}
	return nil
}

// RunConfig builds the simulation parameters for one row. seed, when non-nil,
// takes precedence over the file's seed.
func (f *ScenarioFile) RunConfig(run ScenarioRun, seed *int64) sim.RunConfig {
	horizon := f.Horizon
	if run.Horizon != nil {
		horizon = *run.Horizon
	}
	if seed == nil {
		seed = f.Seed
	}
	return sim.RunConfig{
		Servers:             run.Servers,
		MeanServiceTime:     run.MeanServiceTime,
		MeanArrivalInterval: run.MeanArrivalInterval,
		Horizon:             horizon,
		Seed:                seed,
	}
}

// reports returns the metrics a scenario prints, defaulting to the average.
func (sc Scenario) reports() []string {
	if len(sc.Metrics) == 0 {
		return []string{"average"}
	}
	return sc.Metrics
}
