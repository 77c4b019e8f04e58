package testutil

import (
	"sort"
	"strings"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
)

// StubCandidate is a configurable Evolvable for tests. Behavior hooks
// default to "always survivable, zero fitness" when nil, so most tests
// only set the hook they care about.
type StubCandidate struct {
	GeneMap    map[string]string
	FitnessFn  func(genes map[string]string) float64
	SurviveFn  func(genes map[string]string) bool
	CacheCalls int
}

func (c *StubCandidate) Genes() map[string]string {
	return c.GeneMap
}

func (c *StubCandidate) FitnessLevel() float64 {
	if c.FitnessFn != nil {
		return c.FitnessFn(c.GeneMap)
	}
	return 0
}

func (c *StubCandidate) CanSurvive() bool {
	if c.SurviveFn != nil {
		return c.SurviveFn(c.GeneMap)
	}
	return true
}

// Unique keys the candidate by its full assignment, sorted by gene, so
// two candidates with equal gene maps collide in the archive.
func (c *StubCandidate) Unique() string {
	pairs := make([]string, 0, len(c.GeneMap))
	for gene, value := range c.GeneMap {
		pairs = append(pairs, gene+"="+value)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ";")
}

// CacheAttrs counts invocations so tests can assert the cache hook runs
// exactly once per surviving candidate.
func (c *StubCandidate) CacheAttrs() {
	c.CacheCalls++
}

// Ensure StubCandidate implements the candidate interfaces.
var _ core.Evolvable[string] = (*StubCandidate)(nil)
var _ core.AttrCacher = (*StubCandidate)(nil)

// StubFactory builds a factory whose candidates all share the given
// behavior hooks. Either hook may be nil.
func StubFactory(fitness func(map[string]string) float64, survive func(map[string]string) bool) core.Factory[string] {
	return func(genes map[string]string) core.Evolvable[string] {
		return &StubCandidate{
			GeneMap:   genes,
			FitnessFn: fitness,
			SurviveFn: survive,
		}
	}
}

// MatchFitness scores a candidate by how many genes carry the target's
// value. The maximum score is len(target).
func MatchFitness(target map[string]string) func(genes map[string]string) float64 {
	return func(genes map[string]string) float64 {
		matches := 0.0
		for gene, want := range target {
			if genes[gene] == want {
				matches++
			}
		}
		return matches
	}
}

// RequireAllGenes builds a survivability hook that accepts only
// candidates carrying a value for every gene in the pool.
func RequireAllGenes(pool core.Pool[string]) func(genes map[string]string) bool {
	return func(genes map[string]string) bool {
		for gene := range pool {
			if _, ok := genes[gene]; !ok {
				return false
			}
		}
		return true
	}
}

// DisjointPool returns three genes whose allele sets do not overlap, so
// the value-uniqueness rule never rejects a draw.
func DisjointPool() core.Pool[string] {
	return core.Pool[string]{
		"primary":   {"red", "blue", "green"},
		"secondary": {"cyan", "magenta", "yellow"},
		"accent":    {"black", "white", "gold"},
	}
}

// OverlappingPool returns two genes that share alleles, exercising the
// value-uniqueness rule during generation and mutation.
func OverlappingPool() core.Pool[string] {
	return core.Pool[string]{
		"left":  {"oak", "pine", "birch"},
		"right": {"oak", "pine", "maple"},
	}
}
