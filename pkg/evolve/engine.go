// Package evolve implements a generic evolutionary-search engine. Given a
// gene pool and a candidate factory, it evolves a population toward higher
// fitness via selection, position-sliced recombination, and mutation,
// without gradient information.
package evolve

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"github.com/XiaoConstantine/evolve-go/pkg/errors"
	"github.com/XiaoConstantine/evolve-go/pkg/logging"
)

// ErrInfeasible reports that a rejection-sampling loop exhausted its
// attempt budget without producing a survivable candidate. It is only
// returned when Config.MaxAttempts is positive; with the default
// unbounded behavior these loops spin until the constraint is satisfied
// or the context is canceled.
var ErrInfeasible = errors.New(errors.ResourceExhausted, "survivability constraint cannot be satisfied")

// Config holds engine-level parameters. Zero values mean defaults.
type Config struct {
	// Seed initializes the engine's random source. 0 derives a seed from
	// the clock, making runs non-reproducible.
	Seed int64

	// MinSwaps and MaxSwaps bound the number of gene replacements applied
	// by each mutation. Defaults: 1 and 2.
	MinSwaps int
	MaxSwaps int

	// MaxAttempts caps every rejection-sampling loop (random generation,
	// recombination, mutation draws). 0 leaves them unbounded, matching
	// the documented non-termination hazard when survivability is near
	// impossible to satisfy.
	MaxAttempts int
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		MinSwaps:    1,
		MaxSwaps:    2,
		MaxAttempts: 0,
	}
}

// RunOptions holds per-run parameters. Zero values mean defaults.
type RunOptions struct {
	Generations int // Default: 1000
	NBest       int // Default: 5; archive capacity
	NChildren   int // Default: 4; population size, must be at least 2

	// ProgressEvery and Progress must be supplied together or not at
	// all. The callback fires on generation indices 0, ProgressEvery,
	// 2*ProgressEvery, ... before that generation's breeding.
	ProgressEvery int
	Progress      ProgressFunc
}

// DefaultRunOptions returns the default run parameters.
func DefaultRunOptions() RunOptions {
	return RunOptions{
		Generations: 1000,
		NBest:       5,
		NChildren:   4,
	}
}

// ProgressFunc observes a run in flight. It is called for observability
// only; no return value is consumed. The engine is quiescent while the
// callback runs, so closures that capture it may call Best or
// Population safely.
type ProgressFunc func(generation int)

// member pairs a candidate with the allele index the engine maintains
// for it. The index exists so the member can later serve as a parent in
// position-sliced recombination.
type member[A comparable] struct {
	cand core.Evolvable[A]
	idx  *core.AlleleIndex[A]
}

// Engine owns one evolutionary search: the gene pool, the current
// population, and the all-time best archive. It is not safe for
// concurrent use; callers wanting parallel searches run independent
// engines (see RunConcurrent).
type Engine[A comparable] struct {
	config  *Config
	pool    core.Pool[A]
	genes   []string // sorted pool keys, the engine's iteration order
	factory core.Factory[A]
	rng     *rand.Rand
	runID   string
	logger  *logging.Logger

	population []member[A]
	archive    []member[A]
}

// New creates an engine over the given pool and candidate factory. A nil
// config uses DefaultConfig; zero-valued fields are merged from it.
func New[A comparable](pool core.Pool[A], factory core.Factory[A], config *Config) (*Engine[A], error) {
	if config == nil {
		config = DefaultConfig()
	}

	// Merge with defaults for any missing fields
	defaults := DefaultConfig()
	if config.MinSwaps <= 0 {
		config.MinSwaps = defaults.MinSwaps
	}
	if config.MaxSwaps <= 0 {
		config.MaxSwaps = defaults.MaxSwaps
	}

	if config.MaxSwaps < config.MinSwaps {
		return nil, errors.WithFields(
			errors.New(errors.InvalidInput, "max swaps must not be less than min swaps"),
			errors.Fields{"min_swaps": config.MinSwaps, "max_swaps": config.MaxSwaps},
		)
	}
	if config.MaxAttempts < 0 {
		return nil, errors.New(errors.InvalidInput, "max attempts must not be negative")
	}
	if factory == nil {
		return nil, errors.New(errors.InvalidInput, "candidate factory is required")
	}
	if err := pool.Validate(); err != nil {
		return nil, errors.Wrap(err, errors.InvalidInput, "invalid gene pool")
	}

	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	return &Engine[A]{
		config:  config,
		pool:    pool.Clone(),
		genes:   pool.Genes(),
		factory: factory,
		rng:     rand.New(rand.NewSource(seed)),
		runID:   uuid.New().String(),
		logger:  logging.GetLogger(),
	}, nil
}

// Run drives the generation loop: seed the population if empty, then for
// each generation select the two best parents, breed NChildren
// replacements, and fold the new population into the archive. The
// population always carries over between calls, so a second Run resumes
// from the previous population instead of reseeding.
func (e *Engine[A]) Run(ctx context.Context, opts RunOptions) error {
	opts = mergeRunDefaults(opts)
	if err := validateRunOptions(opts); err != nil {
		return err
	}

	ctx = logging.WithRunID(ctx, e.runID)
	ctx, endTask := logging.TraceTask(ctx, "EvolutionRun")
	defer endTask()

	e.logger.Info(ctx, "starting evolution run: generations=%d, n_best=%d, n_children=%d",
		opts.Generations,
		opts.NBest,
		opts.NChildren)

	if len(e.population) == 0 {
		if err := e.seedPopulation(ctx, opts.NChildren); err != nil {
			return err
		}
		e.updateArchive(opts.NBest)
	}

	best := e.bestFitness()
	for generation := 0; generation < opts.Generations; generation++ {
		if err := errors.CheckContext(ctx, "evolution run"); err != nil {
			return err
		}

		if opts.Progress != nil && generation%opts.ProgressEvery == 0 {
			opts.Progress(generation)
		}

		parents := e.selectParents(2)
		next := make([]member[A], 0, opts.NChildren)
		for i := 0; i < opts.NChildren; i++ {
			child, err := e.recombine(ctx, parents)
			if err != nil {
				return errors.WithFields(err, errors.Fields{"generation": generation})
			}
			next = append(next, child)
		}
		e.population = next
		e.updateArchive(opts.NBest)

		if f := e.bestFitness(); f > best {
			logging.TraceLog(ctx, "evolve", fmt.Sprintf("best fitness improved to %v at generation %d", f, generation))
			best = f
		}
		e.logger.Generation(ctx, generation, e.bestFitness(), len(e.archive))
	}

	e.logger.Info(ctx, "evolution run finished: best_fitness=%.4f, archive_size=%d",
		e.bestFitness(),
		len(e.archive))

	return nil
}

// Reset discards the population and archive, so the next Run reseeds
// from scratch.
func (e *Engine[A]) Reset() {
	e.population = nil
	e.archive = nil
}

// Best returns the archive: the highest-fitness candidates seen across
// all generations, deduplicated and fitness-descending.
func (e *Engine[A]) Best() []core.Evolvable[A] {
	return candidatesOf(e.archive)
}

// Population returns the current generation's candidates.
func (e *Engine[A]) Population() []core.Evolvable[A] {
	return candidatesOf(e.population)
}

// RunID returns the engine's identifier, attached to every log entry the
// engine writes.
func (e *Engine[A]) RunID() string {
	return e.runID
}

// Pool returns a copy of the engine's gene pool.
func (e *Engine[A]) Pool() core.Pool[A] {
	return e.pool.Clone()
}

func (e *Engine[A]) seedPopulation(ctx context.Context, nChildren int) error {
	e.logger.Info(ctx, "seeding population with %d random candidates", nChildren)

	members := make([]member[A], 0, nChildren)
	for i := 0; i < nChildren; i++ {
		m, err := e.generateRandom(ctx)
		if err != nil {
			return err
		}
		members = append(members, m)
	}
	e.population = members
	return nil
}

func (e *Engine[A]) bestFitness() float64 {
	if len(e.archive) == 0 {
		return math.Inf(-1)
	}
	return e.archive[0].cand.FitnessLevel()
}

// checkAttempts gates one iteration of a rejection-sampling loop on both
// cancellation and the configured attempt budget.
func (e *Engine[A]) checkAttempts(ctx context.Context, attempt int, operation string) error {
	if err := errors.CheckContext(ctx, operation); err != nil {
		return err
	}
	if e.config.MaxAttempts > 0 && attempt >= e.config.MaxAttempts {
		return errors.WithFields(
			errors.Wrap(ErrInfeasible, errors.ResourceExhausted, operation+" exceeded attempt budget"),
			errors.Fields{"max_attempts": e.config.MaxAttempts},
		)
	}
	return nil
}

func mergeRunDefaults(opts RunOptions) RunOptions {
	defaults := DefaultRunOptions()
	if opts.Generations <= 0 {
		opts.Generations = defaults.Generations
	}
	if opts.NBest <= 0 {
		opts.NBest = defaults.NBest
	}
	if opts.NChildren <= 0 {
		opts.NChildren = defaults.NChildren
	}
	return opts
}

func validateRunOptions(opts RunOptions) error {
	if opts.NChildren < 2 {
		return errors.WithFields(
			errors.New(errors.InvalidInput, "n_children must be at least 2"),
			errors.Fields{"n_children": opts.NChildren},
		)
	}
	if opts.ProgressEvery < 0 {
		return errors.WithFields(
			errors.New(errors.InvalidInput, "progress interval must not be negative"),
			errors.Fields{"progress_every": opts.ProgressEvery},
		)
	}
	if (opts.Progress == nil) != (opts.ProgressEvery == 0) {
		return errors.New(errors.InvalidInput,
			"progress callback and progress interval have to be specified together")
	}
	return nil
}

func candidatesOf[A comparable](members []member[A]) []core.Evolvable[A] {
	out := make([]core.Evolvable[A], len(members))
	for i, m := range members {
		out[i] = m.cand
	}
	return out
}
