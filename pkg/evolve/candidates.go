package evolve

import (
	"context"

	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"github.com/XiaoConstantine/evolve-go/pkg/errors"
	"github.com/XiaoConstantine/evolve-go/pkg/logging"
)

// GenerateRandom builds one survivable candidate from uniformly drawn
// alleles. Within a single candidate no allele value repeats across
// genes, so pools whose alleles overlap between genes yield candidates
// with pairwise-distinct values.
func (e *Engine[A]) GenerateRandom(ctx context.Context) (core.Evolvable[A], error) {
	m, err := e.generateRandom(ctx)
	if err != nil {
		return nil, err
	}
	return m.cand, nil
}

func (e *Engine[A]) generateRandom(ctx context.Context) (member[A], error) {
	for attempt := 0; ; attempt++ {
		if err := e.checkAttempts(ctx, attempt, "random candidate generation"); err != nil {
			return member[A]{}, err
		}

		genes := make(map[string]A, len(e.genes))
		if err := e.fillRandomGenes(ctx, genes); err != nil {
			return member[A]{}, err
		}

		cand := e.factory(genes)
		if !cand.CanSurvive() {
			continue
		}
		cacheAttrs(cand)
		return member[A]{cand: cand, idx: e.indexFor(cand)}, nil
	}
}

// fillRandomGenes assigns one allele per pool gene, redrawing any value
// already present in the candidate. Genes are visited in sorted order so
// a seeded engine fills candidates deterministically.
func (e *Engine[A]) fillRandomGenes(ctx context.Context, genes map[string]A) error {
	for _, gene := range e.genes {
		alleles := e.pool[gene]
		for attempt := 0; ; attempt++ {
			if err := e.checkAttempts(ctx, attempt, "allele draw"); err != nil {
				return err
			}
			value := alleles[e.rng.Intn(len(alleles))]
			if !containsValue(genes, value) {
				genes[gene] = value
				break
			}
		}
	}
	return nil
}

// Mutate replaces the values of MinSwaps to MaxSwaps genes in place.
// Genes are drawn from the pool, so a mutation can supply a gene the
// candidate was missing; replacement values are redrawn until they do
// not collide with any value the candidate already carries, which also
// rules out no-op swaps. Each call touches distinct genes.
func (e *Engine[A]) Mutate(ctx context.Context, cand core.Evolvable[A]) error {
	genes := cand.Genes()

	swaps := e.config.MinSwaps
	if spread := e.config.MaxSwaps - e.config.MinSwaps; spread > 0 {
		swaps += e.rng.Intn(spread + 1)
	}
	if swaps > len(e.genes) {
		swaps = len(e.genes)
	}

	swapped := make(map[string]bool, swaps)
	for attempt := 0; len(swapped) < swaps; attempt++ {
		if err := e.checkAttempts(ctx, attempt, "mutation"); err != nil {
			return err
		}

		gene := e.genes[e.rng.Intn(len(e.genes))]
		if swapped[gene] {
			continue
		}
		alleles := e.pool[gene]
		value := alleles[e.rng.Intn(len(alleles))]
		if containsValue(genes, value) {
			continue
		}
		genes[gene] = value
		swapped[gene] = true
	}
	return nil
}

// Recombine breeds one survivable child from exactly two parent
// candidates. Parents supplied from outside the engine have no
// positional bookkeeping yet, so each gets fresh random positions
// before the crossover range is drawn; within Run, parents keep the
// positions they inherited at birth.
func (e *Engine[A]) Recombine(ctx context.Context, parents ...core.Evolvable[A]) (core.Evolvable[A], error) {
	members := make([]member[A], len(parents))
	for i, p := range parents {
		members[i] = member[A]{cand: p, idx: e.indexFor(p)}
	}

	child, err := e.recombine(ctx, members)
	if err != nil {
		return nil, err
	}
	return child.cand, nil
}

// recombine breeds one child from two parents. A random position range
// is drawn; the child inherits the in-range entries of one parent and
// the out-of-range entries of the other, then receives exactly one
// mutation. The whole procedure repeats until the child is survivable.
func (e *Engine[A]) recombine(ctx context.Context, parents []member[A]) (member[A], error) {
	if len(parents) != 2 {
		return member[A]{}, errors.WithFields(
			errors.New(errors.InvalidInput, "recombination requires exactly two parents"),
			errors.Fields{"n_parents": len(parents)},
		)
	}

	defer logging.TraceRegion(ctx, "Recombine")()

	for attempt := 0; ; attempt++ {
		if err := e.checkAttempts(ctx, attempt, "recombination"); err != nil {
			return member[A]{}, err
		}

		start, stop := e.rng.Float64(), e.rng.Float64()
		if start > stop {
			start, stop = stop, start
		}
		donor := e.rng.Intn(2)

		inside := parents[donor].idx.Range(start, stop)
		outside := parents[1-donor].idx.Complement(start, stop)

		inherited := make([]core.Entry[A], 0, len(inside)+len(outside))
		inherited = append(inherited, inside...)
		inherited = append(inherited, outside...)

		// Both slices can name the same gene; the donor's entry comes
		// first and wins.
		genes := make(map[string]A, len(inherited))
		for _, entry := range inherited {
			if _, ok := genes[entry.Gene]; !ok {
				genes[entry.Gene] = entry.Value
			}
		}

		child := e.factory(genes)
		if err := e.Mutate(ctx, child); err != nil {
			return member[A]{}, err
		}
		if !child.CanSurvive() {
			continue
		}
		cacheAttrs(child)
		return member[A]{cand: child, idx: e.buildChildIndex(child, inherited)}, nil
	}
}

// buildChildIndex rebuilds positional bookkeeping for a freshly bred
// candidate. Inherited genes keep their parent positions, paired with
// whatever value the child carries after mutation; genes the child
// holds beyond the inherited ones get fresh random positions.
func (e *Engine[A]) buildChildIndex(child core.Evolvable[A], inherited []core.Entry[A]) *core.AlleleIndex[A] {
	genes := child.Genes()
	idx := core.NewAlleleIndex[A](e.rng)

	seen := make(map[string]bool, len(genes))
	for _, entry := range inherited {
		if seen[entry.Gene] {
			continue
		}
		value, ok := genes[entry.Gene]
		if !ok {
			continue
		}
		seen[entry.Gene] = true
		idx.AddAt(entry.Gene, value, entry.Position)
	}
	for _, gene := range e.genes {
		if seen[gene] {
			continue
		}
		if value, ok := genes[gene]; ok {
			idx.Add(gene, value)
		}
	}
	return idx
}

// indexFor assigns fresh random positions to every gene the candidate
// carries, in sorted gene order.
func (e *Engine[A]) indexFor(cand core.Evolvable[A]) *core.AlleleIndex[A] {
	genes := cand.Genes()
	idx := core.NewAlleleIndex[A](e.rng)
	for _, gene := range e.genes {
		if value, ok := genes[gene]; ok {
			idx.Add(gene, value)
		}
	}
	return idx
}

func cacheAttrs[A comparable](cand core.Evolvable[A]) {
	if cacher, ok := cand.(core.AttrCacher); ok {
		cacher.CacheAttrs()
	}
}

func containsValue[A comparable](genes map[string]A, value A) bool {
	for _, v := range genes {
		if v == value {
			return true
		}
	}
	return false
}
