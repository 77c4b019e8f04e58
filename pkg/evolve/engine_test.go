package evolve

import (
	"context"
	stderrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/XiaoConstantine/evolve-go/internal/testutil"
	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"github.com/XiaoConstantine/evolve-go/pkg/errors"
	"github.com/XiaoConstantine/evolve-go/pkg/logging"
)

func TestMain(m *testing.M) {
	// Engine runs log at INFO; keep test output readable.
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.ERROR,
		Outputs:  []logging.Output{logging.NewConsoleOutput(true)},
	}))
	os.Exit(m.Run())
}

func newTestEngine(t *testing.T, pool core.Pool[string], factory core.Factory[string], config *Config) *Engine[string] {
	t.Helper()
	engine, err := New(pool, factory, config)
	require.NoError(t, err)
	return engine
}

func uniqueKeys(cands []core.Evolvable[string]) []string {
	keys := make([]string, len(cands))
	for i, c := range cands {
		keys[i] = c.Unique()
	}
	return keys
}

func TestNew(t *testing.T) {
	t.Run("nil config uses defaults", func(t *testing.T) {
		engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), nil)

		assert.Equal(t, 1, engine.config.MinSwaps)
		assert.Equal(t, 2, engine.config.MaxSwaps)
		assert.Equal(t, 0, engine.config.MaxAttempts)
		assert.NotNil(t, engine.rng)
		assert.NotEmpty(t, engine.RunID())
	})

	t.Run("zero fields are merged with defaults", func(t *testing.T) {
		engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{MaxSwaps: 5})

		assert.Equal(t, 1, engine.config.MinSwaps)
		assert.Equal(t, 5, engine.config.MaxSwaps)
	})

	t.Run("genes iterate in sorted order", func(t *testing.T) {
		engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), nil)

		assert.Equal(t, []string{"accent", "primary", "secondary"}, engine.genes)
	})

	t.Run("pool is cloned at construction", func(t *testing.T) {
		pool := testutil.DisjointPool()
		engine := newTestEngine(t, pool, testutil.StubFactory(nil, nil), nil)

		pool["primary"][0] = "poisoned"
		assert.Equal(t, "red", engine.Pool()["primary"][0])
	})
}

func TestNewValidation(t *testing.T) {
	factory := testutil.StubFactory(nil, nil)

	tests := []struct {
		name    string
		pool    core.Pool[string]
		factory core.Factory[string]
		config  *Config
	}{
		{
			name:    "swap bounds inverted",
			pool:    testutil.DisjointPool(),
			factory: factory,
			config:  &Config{MinSwaps: 3, MaxSwaps: 2},
		},
		{
			name:    "negative attempt budget",
			pool:    testutil.DisjointPool(),
			factory: factory,
			config:  &Config{MaxAttempts: -1},
		},
		{
			name:    "missing factory",
			pool:    testutil.DisjointPool(),
			factory: nil,
		},
		{
			name:    "empty pool",
			pool:    core.Pool[string]{},
			factory: factory,
		},
		{
			name:    "gene without alleles",
			pool:    core.Pool[string]{"hollow": {}},
			factory: factory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.pool, tt.factory, tt.config)
			require.Error(t, err)

			var appErr *errors.Error
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.InvalidInput, appErr.Code())
		})
	}
}

func TestRunOptionsValidation(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), nil)

	tests := []struct {
		name string
		opts RunOptions
	}{
		{
			name: "n_children below minimum",
			opts: RunOptions{Generations: 1, NChildren: 1},
		},
		{
			name: "negative progress interval",
			opts: RunOptions{Generations: 1, ProgressEvery: -2},
		},
		{
			name: "callback without interval",
			opts: RunOptions{Generations: 1, Progress: func(int) {}},
		},
		{
			name: "interval without callback",
			opts: RunOptions{Generations: 1, ProgressEvery: 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := engine.Run(context.Background(), tt.opts)
			require.Error(t, err)

			var appErr *errors.Error
			require.True(t, stderrors.As(err, &appErr))
			assert.Equal(t, errors.InvalidInput, appErr.Code())
		})
	}
}

func TestRunSeedsPopulation(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{Seed: 11})

	err := engine.Run(context.Background(), RunOptions{Generations: 1, NChildren: 3})
	require.NoError(t, err)

	population := engine.Population()
	assert.Len(t, population, 3)
	for _, cand := range population {
		assert.True(t, cand.CanSurvive())
	}
	assert.NotEmpty(t, engine.Best())
}

func TestRunReusesPopulation(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{Seed: 11})
	require.NoError(t, engine.Run(context.Background(), RunOptions{Generations: 2, NChildren: 3}))

	carried := uniqueKeys(engine.Population())

	// The generation-0 callback fires before any breeding, so it observes
	// the population left behind by the previous run.
	var observed []string
	opts := RunOptions{
		Generations:   1,
		NChildren:     3,
		ProgressEvery: 1,
		Progress: func(generation int) {
			if generation == 0 {
				observed = uniqueKeys(engine.Population())
			}
		},
	}
	require.NoError(t, engine.Run(context.Background(), opts))

	assert.Equal(t, carried, observed)
}

func TestRunProgressCadence(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{Seed: 2})

	var calls []int
	opts := RunOptions{
		Generations:   5,
		NChildren:     2,
		ProgressEvery: 2,
		Progress: func(generation int) {
			calls = append(calls, generation)
		},
	}
	require.NoError(t, engine.Run(context.Background(), opts))

	assert.Equal(t, []int{0, 2, 4}, calls)
}

func TestRunReplacesPopulation(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{Seed: 3})
	require.NoError(t, engine.Run(context.Background(), RunOptions{Generations: 1, NChildren: 4}))

	before := make(map[core.Evolvable[string]]bool)
	for _, cand := range engine.Population() {
		before[cand] = true
	}

	require.NoError(t, engine.Run(context.Background(), RunOptions{Generations: 1, NChildren: 4}))

	assert.Len(t, engine.Population(), 4)
	for _, cand := range engine.Population() {
		assert.False(t, before[cand], "population is rebuilt every generation")
	}
}

func TestRunBestNeverRegresses(t *testing.T) {
	target := map[string]string{"primary": "red", "secondary": "cyan", "accent": "black"}
	factory := testutil.StubFactory(testutil.MatchFitness(target), nil)
	engine := newTestEngine(t, testutil.DisjointPool(), factory, &Config{Seed: 5})

	var bests []float64
	opts := RunOptions{
		Generations:   40,
		NChildren:     4,
		ProgressEvery: 1,
		Progress: func(int) {
			bests = append(bests, engine.bestFitness())
		},
	}
	require.NoError(t, engine.Run(context.Background(), opts))

	require.Len(t, bests, 40)
	for i := 1; i < len(bests); i++ {
		assert.GreaterOrEqual(t, bests[i], bests[i-1])
	}
}

func TestRunConvergesOnTarget(t *testing.T) {
	pool := testutil.DisjointPool()
	target := map[string]string{"primary": "red", "secondary": "cyan", "accent": "black"}
	factory := testutil.StubFactory(testutil.MatchFitness(target), testutil.RequireAllGenes(pool))
	engine := newTestEngine(t, pool, factory, &Config{Seed: 42})

	require.NoError(t, engine.Run(context.Background(), RunOptions{Generations: 500, NBest: 2, NChildren: 4}))

	best := engine.Best()
	require.Len(t, best, 2)
	assert.Equal(t, 3.0, best[0].FitnessLevel())
	assert.GreaterOrEqual(t, best[0].FitnessLevel(), best[1].FitnessLevel())
}

func TestRunInfeasible(t *testing.T) {
	never := func(map[string]string) bool { return false }
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, never), &Config{Seed: 9, MaxAttempts: 25})

	err := engine.Run(context.Background(), RunOptions{Generations: 1, NChildren: 2})
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, ErrInfeasible))

	var appErr *errors.Error
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.ResourceExhausted, appErr.Code())
	assert.Equal(t, 25, appErr.Fields()["max_attempts"])
}

func TestRunCanceledContext(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{Seed: 4})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := engine.Run(ctx, RunOptions{Generations: 10, NChildren: 2})
	require.Error(t, err)

	var appErr *errors.Error
	require.True(t, stderrors.As(err, &appErr))
	assert.Equal(t, errors.Canceled, appErr.Code())
}

func TestReset(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), &Config{Seed: 6})
	require.NoError(t, engine.Run(context.Background(), RunOptions{Generations: 1, NChildren: 2}))
	require.NotEmpty(t, engine.Population())

	engine.Reset()
	assert.Empty(t, engine.Population())
	assert.Empty(t, engine.Best())

	// The next run reseeds from scratch at the new population size.
	require.NoError(t, engine.Run(context.Background(), RunOptions{Generations: 1, NChildren: 5}))
	assert.Len(t, engine.Population(), 5)
}

func TestAccessors(t *testing.T) {
	engine := newTestEngine(t, testutil.DisjointPool(), testutil.StubFactory(nil, nil), nil)

	assert.Equal(t, engine.RunID(), engine.RunID())

	pool := engine.Pool()
	pool["primary"][0] = "poisoned"
	assert.Equal(t, "red", engine.Pool()["primary"][0])
}

func BenchmarkRun(b *testing.B) {
	pools := testutil.CreateBenchmarkPools()
	profile := testutil.StandardRunProfiles()["fast"]

	for _, name := range []string{"tiny", "small", "medium"} {
		bp := pools[name]
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				engine, err := New(bp.Pool, testutil.StubFactory(nil, nil), &Config{Seed: int64(i + 1)})
				if err != nil {
					b.Fatal(err)
				}
				opts := RunOptions{
					Generations: profile.Generations,
					NBest:       profile.NBest,
					NChildren:   profile.NChildren,
				}
				if err := engine.Run(context.Background(), opts); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
