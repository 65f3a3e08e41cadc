package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opd-ai/go-hexbounce/pkg/config"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sim.yaml")

	out, _, err := execute(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig(), loaded)

	out, _, err = execute(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")

	_, _, err = execute(t, "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force", path)
	assert.NoError(t, err)
}

func TestConfigValidate_Rejects(t *testing.T) {
	dir := t.TempDir()

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"physics":{"bounce":2}}`), 0o644))

		_, _, err := execute(t, "config", "validate", path)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("invalid environment override", func(t *testing.T) {
		path := filepath.Join(dir, "good.json")
		require.NoError(t, config.SaveConfig(config.DefaultConfig(), path))
		t.Setenv(config.EnvBounce, "1.5")

		_, _, err := execute(t, "config", "validate", path)
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("missing file", func(t *testing.T) {
		_, _, err := execute(t, "config", "validate", filepath.Join(dir, "nope.json"))
		assert.Error(t, err)
	})
}

func TestRun_Fast(t *testing.T) {
	out, _, err := execute(t, "run", "--fast", "--ticks", "120")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ticks=120 "), "unexpected summary %q", out)
}

func TestRun_Trace(t *testing.T) {
	_, logs, err := execute(t, "run", "--fast", "--ticks", "3", "--trace", "--log-level", "info")
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(logs, `"msg":"tick"`))
}

func TestRun_FlagErrors(t *testing.T) {
	_, _, err := execute(t, "run", "--fast")
	assert.ErrorContains(t, err, "--fast requires --ticks")

	_, _, err = execute(t, "run", "--renderer", "opengl", "--ticks", "1")
	assert.ErrorContains(t, err, "unknown renderer")
}

func TestRun_TerminalRenderer(t *testing.T) {
	t.Setenv(config.EnvTickRate, "200")

	out, _, err := execute(t, "run", "--ticks", "10", "--renderer", "terminal", "--width", "20", "--height", "10")
	require.NoError(t, err)
	assert.Contains(t, out, "+"+strings.Repeat("-", 20)+"+")
	assert.Contains(t, out, "ticks=10 ")
}

func TestRun_WithHealthServer(t *testing.T) {
	t.Setenv(config.EnvTickRate, "200")

	out, _, err := execute(t, "run", "--ticks", "20", "--health-addr", "127.0.0.1:0")
	require.NoError(t, err)
	assert.Contains(t, out, "ticks=20 ")
}

func TestRun_MissingConfigFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	out, logs, err := execute(t, "--config", path, "--log-level", "info", "run", "--fast", "--ticks", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "ticks=1 ")
	assert.Contains(t, logs, "using default configuration")
}

func TestView_UnknownBackend(t *testing.T) {
	_, _, err := execute(t, "view", "--backend", "sdl")
	assert.ErrorContains(t, err, "unknown backend")
}
