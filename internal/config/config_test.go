package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energydash/internal/engine"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, DefaultDataPath, cfg.DataPath)
	assert.False(t, cfg.Watch)
	assert.Equal(t, engine.FillZero, cfg.Fill())
	assert.Equal(t, engine.GrowthEndpoint, cfg.Growth())
	assert.Equal(t, DefaultTopN, cfg.TopN)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	content := "port: 9090\ndata_path: data/energy.csv\nwatch: true\nfill_policy: forward\ngrowth_formula: compound\ntop_n: 5\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "data/energy.csv", cfg.DataPath)
	assert.True(t, cfg.Watch)
	assert.Equal(t, engine.FillForward, cfg.Fill())
	assert.Equal(t, engine.GrowthCompound, cfg.Growth())
	assert.Equal(t, 5, cfg.TopN)
}

func TestLoadAltFileName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileNameAlt), []byte("port: 7070\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("port: 9090\n"), 0o644))
	t.Setenv("ENERGYDASH_PORT", "6060")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 6060, cfg.Port)
}

func TestUnrecognizedValuesFallBack(t *testing.T) {
	dir := t.TempDir()
	content := "fill_policy: interpolate\ngrowth_formula: quadratic\ntop_n: -3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, engine.FillZero, cfg.Fill())
	assert.Equal(t, engine.GrowthEndpoint, cfg.Growth())
	assert.Equal(t, DefaultTopN, cfg.TopN)
}
