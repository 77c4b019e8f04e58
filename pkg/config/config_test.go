package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	config := GetDefaultConfig()
	err := config.Validate()
	assert.NoError(t, err)

	config.Engine.MinSwaps = 0
	err = config.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestConfigEngineOptions(t *testing.T) {
	config := GetDefaultConfig()
	config.Engine.Seed = 42
	config.Engine.MinSwaps = 2
	config.Engine.MaxSwaps = 3
	config.Engine.MaxAttempts = 500

	opts := config.EngineOptions()
	require.NotNil(t, opts)
	assert.Equal(t, int64(42), opts.Seed)
	assert.Equal(t, 2, opts.MinSwaps)
	assert.Equal(t, 3, opts.MaxSwaps)
	assert.Equal(t, 500, opts.MaxAttempts)
}

func TestConfigRunOptions(t *testing.T) {
	config := GetDefaultConfig()
	config.Run.Generations = 250
	config.Run.NBest = 3
	config.Run.NChildren = 6

	opts := config.RunOptions()
	assert.Equal(t, 250, opts.Generations)
	assert.Equal(t, 3, opts.NBest)
	assert.Equal(t, 6, opts.NChildren)

	// The progress callback is paired with ProgressEvery by the caller
	assert.Nil(t, opts.Progress)
	assert.Equal(t, 0, opts.ProgressEvery)
}

func TestBuildLoggerDefaults(t *testing.T) {
	cfg := LoggingConfig{}

	logger, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestBuildLoggerConsole(t *testing.T) {
	cfg := LoggingConfig{
		Level: "DEBUG",
		Outputs: []LogOutputConfig{
			{Type: "console", Colors: true},
		},
	}

	logger, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)
}

func TestBuildLoggerFile(t *testing.T) {
	tempDir := t.TempDir()
	logPath := filepath.Join(tempDir, "evolve.log")

	cfg := LoggingConfig{
		Level: "INFO",
		Outputs: []LogOutputConfig{
			{Type: "file", FilePath: logPath},
		},
		DefaultFields: map[string]interface{}{
			"service": "evolve-go",
		},
	}

	logger, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.NotNil(t, logger)

	logger.Info(context.Background(), "search started")

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "search started")
	assert.Contains(t, string(content), "service")
}

func TestBuildLoggerFileError(t *testing.T) {
	tempDir := t.TempDir()

	cfg := LoggingConfig{
		Outputs: []LogOutputConfig{
			{Type: "file", FilePath: filepath.Join(tempDir, "missing", "evolve.log")},
		},
	}

	logger, err := cfg.BuildLogger()
	assert.Error(t, err)
	assert.Nil(t, logger)
}
