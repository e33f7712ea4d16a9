package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	sim "github.com/atmsim/atmsim/sim"
)

const (
	envLogLevel = "ATMSIM_LOG"
	envSeed     = "ATMSIM_SEED"
)

// loadEnvFile exports the variables of path into the process environment.
// A missing file is not an error. Variables already set are left alone.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// applyEnvLogLevel takes the log level from ATMSIM_LOG unless --log was given.
func applyEnvLogLevel(cmd *cobra.Command) {
	if cmd.Flags().Changed("log") {
		return
	}
	if v := os.Getenv(envLogLevel); v != "" {
		logLevel = v
	}
}

// seedFromFlagOrEnv returns the seed chosen by --seed, else ATMSIM_SEED, else nil.
func seedFromFlagOrEnv(cmd *cobra.Command) (*int64, error) {
	if cmd.Flags().Changed("seed") {
		s := seed
		return &s, nil
	}
	return parseSeedEnv(os.Getenv(envSeed))
}

func parseSeedEnv(v string) (*int64, error) {
	if v == "" {
		return nil, nil
	}
	s, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s=%q is not an integer", sim.ErrInvalidParameter, envSeed, v)
	}
	return &s, nil
}
