// Package evolve is a Go implementation of a positional gene pool search,
// an evolutionary engine for problems whose solutions decompose into named
// genes drawn from fixed allele lists.
//
// Evolve-Go provides a generic engine, a configuration layer, and supporting
// tooling for running evolutionary searches. It focuses on making it easy to:
//   - Describe a search space as a gene pool with named positions
//   - Plug in any fitness function through a small candidate interface
//   - Breed populations with position-sliced recombination and bounded mutation
//   - Track the best distinct candidates ever seen in a sorted archive
//   - Run independent searches concurrently with isolated randomness
//
// Key Components:
//
//   - Core: Fundamental abstractions like Pool, Evolvable, Factory and
//     Population for defining a search space and the candidates that
//     inhabit it.
//
//   - Evolve: The engine itself:
//     * New: Builds an engine from a pool, a candidate factory and a Config
//     * Run: Breeds generation after generation, archiving the best candidates
//     * Best: Returns the archive, sorted by fitness, highest first
//     * RunConcurrent: Fans independent engines out across goroutines
//
//   - Config: Declarative configuration with file discovery, validation,
//     environment overrides and live reload:
//     * Manager: Loads, validates and watches YAML configuration
//     * LoadPool / SavePoolYAML: Reads and writes gene pools in YAML or INI form
//     * GetDefaultConfig: The engine and run defaults as a starting point
//
//   - Logging: Structured, severity-filtered logging with console and file
//     outputs, colorization and per-generation progress records.
//
//   - Errors: Error wrapping with stable error codes and structured fields
//     so failures can be classified without string matching.
//
// Simple Example:
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//
//	    "github.com/XiaoConstantine/evolve-go/pkg/core"
//	    "github.com/XiaoConstantine/evolve-go/pkg/evolve"
//	)
//
//	type word struct {
//	    genes map[string]string
//	}
//
//	func (w *word) Genes() map[string]string { return w.genes }
//	func (w *word) CanSurvive() bool         { return true }
//	func (w *word) Unique() string           { return w.genes["first"] + w.genes["second"] }
//
//	func (w *word) FitnessLevel() float64 {
//	    score := 0.0
//	    if w.genes["first"] == "g" {
//	        score++
//	    }
//	    if w.genes["second"] == "o" {
//	        score++
//	    }
//	    return score
//	}
//
//	func main() {
//	    // Describe the search space
//	    pool := core.Pool[string]{
//	        "first":  {"a", "g", "x", "z"},
//	        "second": {"b", "o", "q", "y"},
//	    }
//
//	    // Build an engine with a deterministic seed
//	    engine, err := evolve.New(pool,
//	        func(genes map[string]string) core.Evolvable[string] {
//	            return &word{genes: genes}
//	        },
//	        &evolve.Config{Seed: 42},
//	    )
//	    if err != nil {
//	        log.Fatalf("Failed to create engine: %v", err)
//	    }
//
//	    // Run the search
//	    opts := evolve.DefaultRunOptions()
//	    opts.Generations = 100
//	    if err := engine.Run(context.Background(), opts); err != nil {
//	        log.Fatalf("Error running search: %v", err)
//	    }
//
//	    best := engine.Best()
//	    fmt.Printf("Best candidate: %s (fitness %.1f)\n", best[0].Unique(), best[0].FitnessLevel())
//	}
//
// Advanced Features:
//
//   - Progress Callbacks: Observe the search at a fixed generation cadence.
//     The engine is quiescent while the callback runs, so closures that
//     capture it may inspect the archive or population safely.
//
//   - Survival Constraints: CanSurvive vetoes archive membership, which keeps
//     hard constraints out of the fitness function.
//
//   - Attribute Caching: CacheAttrs freezes fitness and identity for
//     candidates whose evaluation is expensive.
//
//   - Deterministic Replay: A fixed seed reproduces a search exactly,
//     including every mutation draw and recombination slice.
//
//   - Pool Files: Gene pools round-trip through YAML and INI, with the
//     format inferred from the file extension when not stated.
//
//   - Configuration Watching: The config manager re-reads watched files on
//     change and notifies subscribers, so long-lived processes can pick up
//     tuning adjustments without restarting.
//
// Running Concurrent Searches:
//
//	import "github.com/XiaoConstantine/evolve-go/pkg/evolve"
//
//	// One engine per independent search, each with its own seed
//	engines := make([]*evolve.Engine[string], 0, 3)
//	for seed := int64(1); seed <= 3; seed++ {
//	    engine, err := evolve.New(pool, factory, &evolve.Config{Seed: seed})
//	    if err != nil {
//	        log.Fatalf("Failed to create engine: %v", err)
//	    }
//	    engines = append(engines, engine)
//	}
//	if err := evolve.RunConcurrent(ctx, engines, opts, 0); err != nil {
//	    log.Fatalf("Concurrent run failed: %v", err)
//	}
//	for i, engine := range engines {
//	    fmt.Printf("engine %d found %s\n", i, engine.Best()[0].Unique())
//	}
//
// For more examples and detailed documentation, visit:
// https://github.com/XiaoConstantine/evolve-go
//
// Evolve-Go is released under the MIT License.
package evolve
