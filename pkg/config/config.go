package config

import (
	"github.com/XiaoConstantine/evolve-go/pkg/evolve"
	"github.com/XiaoConstantine/evolve-go/pkg/logging"
)

// Config represents the complete configuration for the evolve-go system.
type Config struct {
	// Engine configuration
	Engine EngineConfig `yaml:"engine" validate:"required"`

	// Run configuration
	Run RunConfig `yaml:"run,omitempty" validate:"omitempty"`

	// Gene pool configuration
	Pool PoolConfig `yaml:"pool,omitempty" validate:"omitempty"`

	// Logging configuration
	Logging LoggingConfig `yaml:"logging,omitempty" validate:"omitempty"`

	// Concurrency configuration
	Concurrency ConcurrencyConfig `yaml:"concurrency,omitempty" validate:"omitempty"`
}

// EngineConfig holds engine-level search parameters.
type EngineConfig struct {
	// Random seed; 0 derives one from the clock
	Seed int64 `yaml:"seed"`

	// Minimum genes replaced per mutation
	MinSwaps int `yaml:"min_swaps" validate:"min=1"`

	// Maximum genes replaced per mutation
	MaxSwaps int `yaml:"max_swaps" validate:"min=1"`

	// Attempt budget for rejection-sampling loops; 0 means unbounded
	MaxAttempts int `yaml:"max_attempts" validate:"min=0"`
}

// RunConfig holds per-run parameters.
type RunConfig struct {
	// Number of generations to breed
	Generations int `yaml:"generations" validate:"min=1"`

	// Archive capacity for the all-time best candidates
	NBest int `yaml:"n_best" validate:"min=1"`

	// Children bred per generation, equal to the population size
	NChildren int `yaml:"n_children" validate:"min=2"`

	// Progress callback cadence; 0 disables progress reporting
	ProgressEvery int `yaml:"progress_every" validate:"min=0"`
}

// PoolConfig points at a gene-pool definition on disk.
type PoolConfig struct {
	// Path to the pool file
	Path string `yaml:"path,omitempty"`

	// File format; inferred from the extension when empty
	Format string `yaml:"format,omitempty" validate:"omitempty,oneof=yaml ini"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Log level (DEBUG, INFO, WARN, ERROR, FATAL)
	Level string `yaml:"level" validate:"oneof=DEBUG INFO WARN ERROR FATAL"`

	// Output configurations
	Outputs []LogOutputConfig `yaml:"outputs"`

	// Default fields to include in all logs
	DefaultFields map[string]interface{} `yaml:"default_fields"`
}

// LogOutputConfig represents a logging output destination.
type LogOutputConfig struct {
	// Type of output (console, file)
	Type string `yaml:"type" validate:"required,oneof=console file"`

	// File path (for file outputs)
	FilePath string `yaml:"file_path"`

	// Whether to use colors (for console outputs)
	Colors bool `yaml:"colors"`
}

// ConcurrencyConfig bounds parallel search fan-out.
type ConcurrencyConfig struct {
	// Maximum engines running at once; 0 means one per CPU
	MaxConcurrent int `yaml:"max_concurrent" validate:"min=0"`
}

// Validate validates the configuration using the global validator.
func (c *Config) Validate() error {
	return ValidateConfiguration(c)
}

// EngineOptions converts the engine section into the engine's own
// configuration type.
func (c *Config) EngineOptions() *evolve.Config {
	return &evolve.Config{
		Seed:        c.Engine.Seed,
		MinSwaps:    c.Engine.MinSwaps,
		MaxSwaps:    c.Engine.MaxSwaps,
		MaxAttempts: c.Engine.MaxAttempts,
	}
}

// RunOptions converts the run section into the engine's per-run option
// type. The progress callback is left nil; callers pair it with
// ProgressEvery themselves.
func (c *Config) RunOptions() evolve.RunOptions {
	return evolve.RunOptions{
		Generations: c.Run.Generations,
		NBest:       c.Run.NBest,
		NChildren:   c.Run.NChildren,
	}
}

// BuildLogger constructs a logger from the logging section. An empty
// section yields an INFO console logger.
func (c *LoggingConfig) BuildLogger() (*logging.Logger, error) {
	outputs := make([]logging.Output, 0, len(c.Outputs))
	for _, out := range c.Outputs {
		switch out.Type {
		case "file":
			fileOut, err := logging.NewFileOutput(out.FilePath)
			if err != nil {
				return nil, err
			}
			outputs = append(outputs, fileOut)
		default:
			outputs = append(outputs, logging.NewConsoleOutput(true, logging.WithColor(out.Colors)))
		}
	}
	if len(outputs) == 0 {
		outputs = append(outputs, logging.NewConsoleOutput(true))
	}

	return logging.NewLogger(logging.Config{
		Severity:      logging.ParseSeverity(c.Level),
		Outputs:       outputs,
		DefaultFields: c.DefaultFields,
	}), nil
}
