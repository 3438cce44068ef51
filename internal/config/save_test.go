package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSaveAutoCompile_PreservesComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefaultConfig(path))

	require.NoError(t, SaveAutoCompile(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	require.Contains(t, out, "auto_compile: false")
	require.Contains(t, out, "# irscope configuration")
	require.Contains(t, out, "terminal_height: 10")
}

func TestSaveAutoCompile_NewFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	require.NoError(t, SaveAutoCompile(path, true))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "auto_compile: true\n", string(data))
}

func TestSaveAutoCompile_AppendsMissingKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("watch: false\n"), 0o600))

	require.NoError(t, SaveAutoCompile(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "watch: false\nauto_compile: false\n", string(data))
}

func TestSaveAutoCompile_RejectsNonMapping(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- a\n- b\n"), 0o600))

	require.Error(t, SaveAutoCompile(path, false))
}
