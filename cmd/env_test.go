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

func TestParseSeedEnv(t *testing.T) {
	s, err := parseSeedEnv("")
	require.NoError(t, err)
	assert.Nil(t, s, "unset means no override")

	s, err = parseSeedEnv("-17")
	require.NoError(t, err)
	assert.Equal(t, int64(-17), *s)

	_, err = parseSeedEnv("abc")
	assert.True(t, errors.Is(err, sim.ErrInvalidParameter), "got %v", err)
}

func TestLoadEnvFile_MissingFileIgnored(t *testing.T) {
	assert.NoError(t, loadEnvFile(filepath.Join(t.TempDir(), ".env")))
	assert.NoError(t, loadEnvFile(""))
}

func TestLoadEnvFile_ExportsUnsetVariables(t *testing.T) {
	// GIVEN a .env file and a variable already present in the environment
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("ATMSIM_SEED=99\nATMSIM_LOG=debug\n"), 0o644))
	t.Setenv(envLogLevel, "error")
	t.Setenv(envSeed, "")
	require.NoError(t, os.Unsetenv(envSeed))

	// WHEN the file is loaded
	require.NoError(t, loadEnvFile(path))

	// THEN only the unset variable is taken from the file
	assert.Equal(t, "99", os.Getenv(envSeed))
	assert.Equal(t, "error", os.Getenv(envLogLevel))
}
