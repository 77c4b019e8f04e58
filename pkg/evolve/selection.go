package evolve

import (
	"sort"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
)

// SelectParents returns the n fittest candidates of the current
// population, fitness-descending. The population itself is left
// untouched, so repeated calls over an unchanged population return the
// same candidates in the same order.
func (e *Engine[A]) SelectParents(n int) []core.Evolvable[A] {
	return candidatesOf(e.selectParents(n))
}

func (e *Engine[A]) selectParents(n int) []member[A] {
	ranked := make([]member[A], len(e.population))
	copy(ranked, e.population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].cand.FitnessLevel() > ranked[j].cand.FitnessLevel()
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// updateArchive folds the current population into the all-time best
// list: concatenate archive then population, drop candidates whose
// identity key was already seen, rank by fitness, and keep the top
// nBest. Archive entries precede the population in the scan, so an
// archived candidate is never displaced by an equal newcomer.
func (e *Engine[A]) updateArchive(nBest int) {
	combined := make([]member[A], 0, len(e.archive)+len(e.population))
	combined = append(combined, e.archive...)
	combined = append(combined, e.population...)

	seen := make(map[string]bool, len(combined))
	unique := make([]member[A], 0, len(combined))
	for _, m := range combined {
		key := m.cand.Unique()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, m)
	}

	sort.SliceStable(unique, func(i, j int) bool {
		return unique[i].cand.FitnessLevel() > unique[j].cand.FitnessLevel()
	})
	if nBest < len(unique) {
		unique = unique[:nBest]
	}
	e.archive = unique
}
