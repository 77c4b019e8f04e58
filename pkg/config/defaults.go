package config

import (
	"github.com/XiaoConstantine/evolve-go/pkg/evolve"
)

// GetDefaultConfig returns the default configuration for evolve-go.
// Engine and run defaults mirror the engine package so a config file is
// never required to start a search.
func GetDefaultConfig() *Config {
	return &Config{
		Engine:      getDefaultEngineConfig(),
		Run:         getDefaultRunConfig(),
		Pool:        getDefaultPoolConfig(),
		Logging:     getDefaultLoggingConfig(),
		Concurrency: getDefaultConcurrencyConfig(),
	}
}

// getDefaultEngineConfig returns default engine configuration.
func getDefaultEngineConfig() EngineConfig {
	defaults := evolve.DefaultConfig()
	return EngineConfig{
		Seed:        0,
		MinSwaps:    defaults.MinSwaps,
		MaxSwaps:    defaults.MaxSwaps,
		MaxAttempts: defaults.MaxAttempts,
	}
}

// getDefaultRunConfig returns default run configuration.
func getDefaultRunConfig() RunConfig {
	defaults := evolve.DefaultRunOptions()
	return RunConfig{
		Generations:   defaults.Generations,
		NBest:         defaults.NBest,
		NChildren:     defaults.NChildren,
		ProgressEvery: 0,
	}
}

// getDefaultPoolConfig returns default pool configuration. The path is
// empty; pools are supplied programmatically unless a file is
// configured.
func getDefaultPoolConfig() PoolConfig {
	return PoolConfig{}
}

// getDefaultLoggingConfig returns default logging configuration.
func getDefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		Level: "INFO",
		Outputs: []LogOutputConfig{
			{
				Type:   "console",
				Colors: true,
			},
		},
	}
}

// getDefaultConcurrencyConfig returns default concurrency
// configuration. MaxConcurrent 0 defers to the engine's one-per-CPU
// behavior.
func getDefaultConcurrencyConfig() ConcurrencyConfig {
	return ConcurrencyConfig{
		MaxConcurrent: 0,
	}
}
