package testutil

import (
	"fmt"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
)

// BenchmarkPool pairs a named gene pool with its dimensions.
type BenchmarkPool struct {
	Name   string
	NGenes int
	Pool   core.Pool[string]
}

// CreateBenchmarkPools creates standardized pools for benchmarking the
// engine. Allele sets are disjoint across genes so candidate generation
// never starves on the value-uniqueness rule.
func CreateBenchmarkPools() map[string]BenchmarkPool {
	sizes := map[string]struct{ genes, alleles int }{
		"tiny":   {genes: 3, alleles: 4},
		"small":  {genes: 8, alleles: 6},
		"medium": {genes: 20, alleles: 8},
		"large":  {genes: 50, alleles: 10},
	}

	pools := make(map[string]BenchmarkPool, len(sizes))
	for name, size := range sizes {
		pool := make(core.Pool[string], size.genes)
		for g := 0; g < size.genes; g++ {
			gene := fmt.Sprintf("gene%02d", g)
			alleles := make([]string, size.alleles)
			for a := 0; a < size.alleles; a++ {
				alleles[a] = fmt.Sprintf("%s-allele%02d", gene, a)
			}
			pool[gene] = alleles
		}

		pools[name] = BenchmarkPool{
			Name:   fmt.Sprintf("%s_pool", name),
			NGenes: size.genes,
			Pool:   pool,
		}
	}

	return pools
}

// RunProfile represents common run parameters for benchmarks. It stays
// decoupled from the engine's option types so white-box engine tests
// can import this package.
type RunProfile struct {
	Generations   int
	NBest         int
	NChildren     int
	MaxConcurrent int
}

// StandardRunProfiles provides predefined benchmark run profiles.
func StandardRunProfiles() map[string]RunProfile {
	return map[string]RunProfile{
		"fast": {
			Generations:   20,
			NBest:         3,
			NChildren:     4,
			MaxConcurrent: 2,
		},
		"standard": {
			Generations:   100,
			NBest:         5,
			NChildren:     4,
			MaxConcurrent: 4,
		},
		"comprehensive": {
			Generations:   500,
			NBest:         10,
			NChildren:     8,
			MaxConcurrent: 8,
		},
	}
}

// BenchmarkResult captures the results of a benchmark run.
type BenchmarkResult struct {
	PoolName    string
	Profile     RunProfile
	RunTime     float64 // seconds
	BestFitness float64
	Success     bool
	Error       string
}

// LogBenchmarkResult logs benchmark results in a structured format.
func LogBenchmarkResult(result BenchmarkResult) {
	status := "SUCCESS"
	if !result.Success {
		status = "FAILED"
	}

	fmt.Printf("BENCHMARK [%s] %s: %.3fs, best fitness: %.3f, generations: %d\n",
		status,
		result.PoolName,
		result.RunTime,
		result.BestFitness,
		result.Profile.Generations,
	)

	if result.Error != "" {
		fmt.Printf("  Error: %s\n", result.Error)
	}
}
