package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("FMD_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.Equal(t, "futures-properties.csv", cfg.Feed.PropertiesFile)
	assert.Empty(t, cfg.Feed.Symbols)
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	configFile := filepath.Join(dir, "config.yaml")
	content := "logging:\n" +
		"  level: debug\n" +
		"  format: text\n" +
		"feed:\n" +
		"  properties_file: props.xlsx\n" +
		"  symbols:\n" +
		"    - ES\n" +
		"    - VX\n"
	require.NoError(t, os.WriteFile(configFile, []byte(content), 0644))

	t.Setenv("FMD_CONFIG_FILE", configFile)
	t.Setenv("FMD_LOGGING_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	// Environment wins over the file; file wins over defaults.
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "props.xlsx", cfg.Feed.PropertiesFile)
	assert.Equal(t, []string{"ES", "VX"}, cfg.Feed.Symbols)
}

func TestLoadInvalidLevel(t *testing.T) {
	t.Setenv("FMD_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("FMD_LOGGING_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")
}

func TestBuildPaths(t *testing.T) {
	base := t.TempDir()
	cfg := &Config{
		Paths: PathsConfig{BaseDir: base, DataDir: "data"},
		Feed:  FeedConfig{PropertiesFile: "props.csv"},
	}

	paths, err := cfg.BuildPaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, "data"), paths.DataDir)
	assert.Equal(t, filepath.Join(base, "data", "feeds"), paths.FeedsDir)
	assert.Equal(t, filepath.Join(base, "data", "reports"), paths.ReportsDir)
	assert.Equal(t, filepath.Join(base, "logs"), paths.LogsDir)
	assert.Equal(t, filepath.Join(base, "data", "props.csv"), paths.PropertiesFile)

	require.NoError(t, paths.EnsureDirectories())
	for _, dir := range []string{paths.FeedsDir, paths.ReportsDir, paths.LogsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestBuildPathsAbsoluteOverrides(t *testing.T) {
	data := t.TempDir()
	props := filepath.Join(t.TempDir(), "props.xlsx")
	cfg := &Config{
		Paths: PathsConfig{BaseDir: t.TempDir(), DataDir: data},
		Feed:  FeedConfig{PropertiesFile: props},
	}

	paths, err := cfg.BuildPaths()
	require.NoError(t, err)

	assert.Equal(t, data, paths.DataDir)
	assert.Equal(t, props, paths.PropertiesFile)
}

func TestGetReportAndLogPaths(t *testing.T) {
	p := &Paths{ReportsDir: "/r", LogsDir: "/l"}

	assert.Equal(t, filepath.Join("/r", "ticks.csv"), p.GetReportPath("ticks.csv"))
	assert.Equal(t, filepath.Join("/l", "processor.log"), p.GetLogPath("processor.log"))
}
