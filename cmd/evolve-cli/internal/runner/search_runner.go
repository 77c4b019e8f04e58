// Package runner drives engine runs for the CLI: it assembles
// configuration from files and flags, builds the problem, and reports
// results without any user boilerplate.
package runner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/problems"
	"github.com/XiaoConstantine/evolve-go/pkg/config"
	"github.com/XiaoConstantine/evolve-go/pkg/evolve"
	"github.com/XiaoConstantine/evolve-go/pkg/logging"
)

// ProgressUpdate is a point-in-time view of a running search.
type ProgressUpdate struct {
	Generation  int
	BestFitness float64
	BestUnique  string
	ArchiveSize int
}

// SearchConfig holds everything needed to run a built-in problem.
type SearchConfig struct {
	ProblemName string

	// Optional configuration file; flags below override its values
	ConfigPath string

	// Engine settings; zero values defer to the config file or defaults
	Seed        int64
	MaxAttempts int

	// Run settings; zero values defer to the config file or defaults
	Generations int
	NBest       int
	NChildren   int

	// Problem parameters
	Target   string
	PoolPath string

	// Progress is invoked every ProgressEvery generations when both are
	// set
	ProgressEvery int
	Progress      func(ProgressUpdate)

	// TracePath enables flight recording for the run; when the run
	// fails, a runtime trace snapshot is written there
	TracePath string

	Verbose      bool
	SuppressLogs bool // No console output in TUI mode
}

// ArchiveEntry is one all-time best candidate.
type ArchiveEntry struct {
	Unique  string
	Fitness float64
}

// RunResult holds the outcome of a search run.
type RunResult struct {
	ProblemName string
	RunID       string
	Generations int
	Duration    time.Duration
	Archive     []ArchiveEntry
	Best        ArchiveEntry
	Solved      bool
	HasOptimum  bool
}

// RunSearch builds the problem and drives the engine to completion.
func RunSearch(cfg SearchConfig) (*RunResult, error) {
	setupLogging(cfg.Verbose, cfg.SuppressLogs)

	engineCfg, runOpts, progressEvery, err := resolveOptions(cfg)
	if err != nil {
		return nil, err
	}

	buildOpts := problems.BuildOptions{Target: cfg.Target, PoolPath: cfg.PoolPath}
	pool, factory, err := problems.Build(cfg.ProblemName, buildOpts)
	if err != nil {
		return nil, err
	}

	engine, err := evolve.New(pool, factory, engineCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	// The engine is quiescent while the callback runs, so reading the
	// archive from inside it is safe.
	if cfg.Progress != nil && progressEvery > 0 {
		runOpts.ProgressEvery = progressEvery
		runOpts.Progress = func(generation int) {
			update := ProgressUpdate{Generation: generation}
			if best := engine.Best(); len(best) > 0 {
				update.BestFitness = best[0].FitnessLevel()
				update.BestUnique = best[0].Unique()
				update.ArchiveSize = len(best)
			}
			cfg.Progress(update)
		}
	}

	var recorder *logging.FlightRecorder
	if cfg.TracePath != "" {
		recorder = logging.NewFlightRecorder()
		if err := recorder.Start(); err != nil {
			return nil, fmt.Errorf("failed to start flight recorder: %w", err)
		}
		defer recorder.Stop()
	}

	startTime := time.Now()
	if err := engine.Run(context.Background(), runOpts); err != nil {
		if recorder != nil {
			return nil, recorder.SnapshotOnError(err, cfg.TracePath)
		}
		return nil, err
	}

	result := &RunResult{
		ProblemName: cfg.ProblemName,
		RunID:       engine.RunID(),
		Generations: runOpts.Generations,
		Duration:    time.Since(startTime),
	}

	for _, cand := range engine.Best() {
		result.Archive = append(result.Archive, ArchiveEntry{
			Unique:  cand.Unique(),
			Fitness: cand.FitnessLevel(),
		})
	}
	if len(result.Archive) > 0 {
		result.Best = result.Archive[0]
	}

	if optimum, known := problems.Optimum(cfg.ProblemName, buildOpts); known {
		result.HasOptimum = true
		result.Solved = result.Best.Fitness >= optimum
	}

	return result, nil
}

// PlannedGenerations reports how many generations a search with this
// configuration will run, after config file and flag layering.
func PlannedGenerations(cfg SearchConfig) (int, error) {
	_, runOpts, _, err := resolveOptions(cfg)
	if err != nil {
		return 0, err
	}
	return runOpts.Generations, nil
}

// resolveOptions layers settings: package defaults, then the config
// file when given, then explicit flag values.
func resolveOptions(cfg SearchConfig) (*evolve.Config, evolve.RunOptions, int, error) {
	base := config.GetDefaultConfig()

	if cfg.ConfigPath != "" {
		// An explicitly named file that does not exist would otherwise
		// load as pure defaults
		if _, err := os.Stat(cfg.ConfigPath); err != nil {
			return nil, evolve.RunOptions{}, 0, fmt.Errorf("config file not found: %s", cfg.ConfigPath)
		}

		manager, err := config.NewManager(config.WithConfigPath(cfg.ConfigPath))
		if err != nil {
			return nil, evolve.RunOptions{}, 0, fmt.Errorf("failed to create config manager: %w", err)
		}
		if err := manager.Load(); err != nil {
			return nil, evolve.RunOptions{}, 0, fmt.Errorf("failed to load config file: %w", err)
		}
		base = manager.Get()
	}

	engineCfg := base.EngineOptions()
	if cfg.Seed != 0 {
		engineCfg.Seed = cfg.Seed
	}
	if cfg.MaxAttempts != 0 {
		engineCfg.MaxAttempts = cfg.MaxAttempts
	}

	runOpts := base.RunOptions()
	if cfg.Generations != 0 {
		runOpts.Generations = cfg.Generations
	}
	if cfg.NBest != 0 {
		runOpts.NBest = cfg.NBest
	}
	if cfg.NChildren != 0 {
		runOpts.NChildren = cfg.NChildren
	}

	progressEvery := base.Run.ProgressEvery
	if cfg.ProgressEvery != 0 {
		progressEvery = cfg.ProgressEvery
	}

	return engineCfg, runOpts, progressEvery, nil
}

func setupLogging(verbose bool, suppressLogs bool) {
	severity := logging.INFO
	if verbose {
		severity = logging.DEBUG
	}

	// If suppressing logs (TUI mode), drop everything but errors
	if suppressLogs {
		logger := logging.NewLogger(logging.Config{
			Severity: logging.ERROR,
			Outputs:  []logging.Output{},
		})
		logging.SetLogger(logger)
		return
	}

	output := logging.NewConsoleOutput(true, logging.WithColor(true))
	logger := logging.NewLogger(logging.Config{
		Severity: severity,
		Outputs:  []logging.Output{output},
	})
	logging.SetLogger(logger)
}
