package cmd

import (
	"os"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/atmsim/atmsim/sim"
	"github.com/atmsim/atmsim/sim/trace"
)

var (
	// CLI flags for a single run
	servers         int     // Number of ATMs
	serviceTime     float64 // Mean service time (minutes)
	arrivalInterval float64 // Mean time between arrivals (minutes)
	horizon         float64 // Simulated minutes per run
	seed            int64   // Seed for the arrival and service streams
	traceLevel      string  // Trace verbosity: none, customers, events
	outputPath      string  // Optional JSON result file

	// Shared flags
	logLevel     string // Log verbosity level
	envFile      string // Optional .env file with ATMSIM_* defaults
	scenarioPath string // Sweep definition; empty means the built-in scenarios

	// runID tags every log line and result file of one invocation
	runID  string
	runLog = logrus.NewEntry(logrus.StandardLogger())
)

// rootCmd is the base command for the CLI
var rootCmd = &cobra.Command{
	Use:   "atmsim",
	Short: "Discrete-event simulator for a bank's ATM queue",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if err := loadEnvFile(envFile); err != nil {
			logrus.Fatalf("loading %s: %v", envFile, err)
		}
		applyEnvLogLevel(cmd)

		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", logLevel)
		}
		logrus.SetLevel(level)
		runID = xid.New().String()
		runLog = logrus.WithField("run_id", runID)
	},
}

// runCmd executes one simulation using parameters from CLI flags
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one ATM queue simulation",
	Run: func(cmd *cobra.Command, args []string) {
		seedOverride, err := seedFromFlagOrEnv(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		cfg := sim.RunConfig{
			Servers:             servers,
			MeanServiceTime:     serviceTime,
			MeanArrivalInterval: arrivalInterval,
			Horizon:             horizon,
			Seed:                seedOverride,
			TraceLevel:          trace.TraceLevel(traceLevel),
		}
		runLog.Infof("Starting run: servers=%d service=%.2f interval=%.2f horizon=%.1f",
			cfg.Servers, cfg.MeanServiceTime, cfg.MeanArrivalInterval, cfg.Horizon)

		res, err := sim.Run(cfg)
		if err != nil {
			logrus.Fatalf("simulation failed: %v", err)
		}
		printResult(cmd.OutOrStdout(), cfg, res)
		if outputPath != "" {
			if err := writeResultJSON(outputPath, runID, cfg, res); err != nil {
				logrus.Fatalf("writing results: %v", err)
			}
			runLog.Infof("Results written to %s", outputPath)
		}
		runLog.Info("Simulation complete.")
	},
}

// sweepCmd runs every scenario of a sweep file and prints the comparison tables
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Run the scenario sweep (built-in ATM scenarios unless --scenarios is given)",
	Run: func(cmd *cobra.Command, args []string) {
		file, err := LoadScenarioFile(scenarioPath)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		seedOverride, err := seedFromFlagOrEnv(cmd)
		if err != nil {
			logrus.Fatalf("%v", err)
		}
		if err := runSweep(cmd.OutOrStdout(), file, seedOverride); err != nil {
			logrus.Fatalf("sweep failed: %v", err)
		}
		runLog.Info("Sweep complete.")
	},
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// init sets up CLI flags and subcommands
func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level (trace, debug, info, warn, error, fatal, panic); env ATMSIM_LOG")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "File of ATMSIM_* defaults; ignored when missing")

	runCmd.Flags().IntVar(&servers, "servers", 1, "Number of ATMs")
	runCmd.Flags().Float64Var(&serviceTime, "service-time", 4, "Mean service time in minutes")
	runCmd.Flags().Float64Var(&arrivalInterval, "arrival-interval", 2, "Mean time between customer arrivals in minutes")
	runCmd.Flags().Float64Var(&horizon, "horizon", 100, "Simulated minutes")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "Seed for the random streams; unset means time-derived (env ATMSIM_SEED)")
	runCmd.Flags().StringVar(&traceLevel, "trace", "none", "Trace level (none, customers, events)")
	runCmd.Flags().StringVar(&outputPath, "output", "", "Write the result as JSON to this file")

	sweepCmd.Flags().StringVar(&scenarioPath, "scenarios", "", "YAML sweep definition (default: built-in ATM scenarios)")
	sweepCmd.Flags().Int64Var(&seed, "seed", 0, "Seed shared by every run; overrides the file seed (env ATMSIM_SEED)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(sweepCmd)
}
