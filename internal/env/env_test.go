package env

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_LaterWins(t *testing.T) {
	got := Merge(Vars{"A": "1", "B": "1"}, nil, Vars{"B": "2"})
	assert.Equal(t, Vars{"A": "1", "B": "2"}, got)
}

func TestLoad_ProcessEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("MEADBOT_TEST_A=file\nMEADBOT_TEST_B=file\n"), 0o600))
	t.Setenv("MEADBOT_TEST_B", "process")

	vars, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "file", vars["MEADBOT_TEST_A"])
	assert.Equal(t, "process", vars["MEADBOT_TEST_B"])
}

func TestLoad_MissingFileIsSkipped(t *testing.T) {
	t.Setenv("MEADBOT_TEST_C", "set")

	vars, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"), "")

	require.NoError(t, err)
	assert.Equal(t, "set", vars["MEADBOT_TEST_C"])
}
