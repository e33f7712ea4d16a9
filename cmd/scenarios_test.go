package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/atmsim/atmsim/sim"
)

func TestLoadScenarioFile_EmbeddedDefaults(t *testing.T) {
	// GIVEN no scenario path
	// WHEN the defaults are loaded
	file, err := LoadScenarioFile("")
	require.NoError(t, err)

	// THEN the three ATM scenarios are present in order
	require.Len(t, file.Scenarios, 3)
	assert.Equal(t, ScenarioFileVersion, file.Version)
	assert.Equal(t, 100.0, file.Horizon)
	assert.Nil(t, file.Seed)

	atms := file.Scenarios[0]
	assert.Equal(t, "Varying the Number of ATMs", atms.Title)
	assert.Equal(t, []string{"average", "peak"}, atms.Metrics)
	for i, run := range atms.Runs {
		assert.Equal(t, i+1, run.Servers)
		assert.Equal(t, 4.0, run.MeanServiceTime)
		assert.Equal(t, 2.0, run.MeanArrivalInterval)
	}

	rates := file.Scenarios[1]
	assert.Equal(t, []string{"Low Arrival Rate", "Medium Arrival Rate", "High Arrival Rate"},
		[]string{rates.Runs[0].Label, rates.Runs[1].Label, rates.Runs[2].Label})
	assert.Equal(t, 3.0, rates.Runs[0].MeanArrivalInterval)
	assert.Equal(t, 1.0, rates.Runs[2].MeanArrivalInterval)

	service := file.Scenarios[2]
	assert.Equal(t, 3.0, service.Runs[0].MeanServiceTime)
	assert.Equal(t, 2.5, service.Runs[0].MeanArrivalInterval)
	assert.Equal(t, 5.0, service.Runs[2].MeanServiceTime)
}

func TestParseScenarioFile_UnknownField_Rejected(t *testing.T) {
	// GIVEN a run with a misspelled key
	data := []byte(`
horizon: 100
scenarios:
  - name: typo
    runs:
      - {label: a, servers: 1, mean_service_tme: 4, mean_arrival_interval: 2}
`)

	// WHEN parsed
	_, err := ParseScenarioFile(data)

	// THEN strict decoding reports the unknown field
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mean_service_tme")
}

func TestParseScenarioFile_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no scenarios", "horizon: 100\n"},
		{"unsupported version", `
version: "2"
horizon: 100
scenarios:
  - {name: a, runs: [{label: x, servers: 1, mean_service_time: 4, mean_arrival_interval: 2}]}
`},
		{"zero horizon", `
horizon: 0
scenarios:
  - {name: a, runs: [{label: x, servers: 1, mean_service_time: 4, mean_arrival_interval: 2}]}
`},
		{"zero servers", `
horizon: 100
scenarios:
  - {name: a, runs: [{label: x, servers: 0, mean_service_time: 4, mean_arrival_interval: 2}]}
`},
		{"negative service time", `
horizon: 100
scenarios:
  - {name: a, runs: [{label: x, servers: 1, mean_service_time: -4, mean_arrival_interval: 2}]}
`},
		{"duplicate name", `
horizon: 100
scenarios:
  - {name: a, runs: [{label: x, servers: 1, mean_service_time: 4, mean_arrival_interval: 2}]}
  - {name: a, runs: [{label: y, servers: 1, mean_service_time: 4, mean_arrival_interval: 2}]}
`},
		{"unknown metric", `
horizon: 100
scenarios:
  - {name: a, metrics: [median], runs: [{label: x, servers: 1, mean_service_time: 4, mean_arrival_interval: 2}]}
`},
		{"no runs", `
horizon: 100
scenarios:
  - {name: a, runs: []}
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenarioFile([]byte(tt.yaml))
			assert.True(t, errors.Is(err, sim.ErrInvalidParameter), "got %v", err)
		})
	}
}

func TestScenarioFile_RunConfig_Overrides(t *testing.T) {
	fileSeed := int64(5)
	rowHorizon := 30.0
	file := &ScenarioFile{Horizon: 100, Seed: &fileSeed}
	row := ScenarioRun{Label: "x", Servers: 2, MeanServiceTime: 4, MeanArrivalInterval: 2}

	// file values apply by default
	cfg := file.RunConfig(row, nil)
	assert.Equal(t, 100.0, cfg.Horizon)
	assert.Equal(t, int64(5), *cfg.Seed)

	// a row horizon and an explicit seed take precedence
	row.Horizon = &rowHorizon
	override := int64(9)
	cfg = file.RunConfig(row, &override)
	assert.Equal(t, 30.0, cfg.Horizon)
	assert.Equal(t, int64(9), *cfg.Seed)
	assert.Equal(t, 2, cfg.Servers)
}

func TestLoadScenarioFile_FromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
version: "1"
horizon: 50
seed: 3
scenarios:
  - name: only
    title: Only
    runs:
      - {label: One, servers: 1, mean_service_time: 1, mean_arrival_interval: 2}
`), 0o644))

	file, err := LoadScenarioFile(path)

	require.NoError(t, err)
	require.Len(t, file.Scenarios, 1)
	assert.Equal(t, int64(3), *file.Seed)
	assert.Equal(t, []string{"average"}, file.Scenarios[0].reports())
}

func TestParseScenarioFile_VersionOptional(t *testing.T) {
	file, err := ParseScenarioFile([]byte(`
horizon: 10
scenarios:
  - {name: a, runs: [{label: x, servers: 1, mean_service_time: 4, mean_arrival_interval: 2}]}
`))

	require.NoError(t, err)
	assert.Empty(t, file.Version)
}

func TestLoadScenarioFile_MissingFile(t *testing.T) {
	_, err := LoadScenarioFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
