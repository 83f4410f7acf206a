package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cafelife/menuqr/config"
)

func TestNewInitCmd(t *testing.T) {
	t.Parallel()

	cmd := NewInitCmd()
	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag)
	assert.Equal(t, "o", flag.Shorthand)
	assert.Equal(t, config.DefaultConfigFile, flag.DefValue)

	force := cmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "false", force.DefValue)
}

func TestRunInitCmd(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "menuqr.yaml")

	out, err := runCLI(t, "", "init", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	// the template round-trips into the defaults
	cfg, err := config.Load(path, "")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())
	def := config.Defaults()
	assert.Equal(t, def.Brand, cfg.Brand)
	assert.Equal(t, def.Deploy.Timeout, cfg.Deploy.Timeout)
	assert.Equal(t, def.LogoPaths, cfg.LogoPaths)

	_, err = runCLI(t, "", "init", "-o", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))
	_, err = runCLI(t, "", "init", "-o", path, "-f")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotEqual(t, "old", string(data))
}
