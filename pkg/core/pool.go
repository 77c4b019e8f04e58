package core

import (
	"sort"

	"github.com/XiaoConstantine/evolve-go/pkg/errors"
)

// Pool maps each gene name to the alleles that gene may take. Alleles
// within one gene's slice are mutually exclusive choices.
type Pool[A comparable] map[string][]A

// Validate checks the pool is usable for evolution: at least one gene,
// at least one allele per gene, and no duplicate alleles within a gene.
func (p Pool[A]) Validate() error {
	if len(p) == 0 {
		return errors.New(errors.ValidationFailed, "gene pool is empty")
	}

	for gene, alleles := range p {
		if len(alleles) == 0 {
			return errors.WithFields(
				errors.New(errors.ValidationFailed, "gene has no alleles"),
				errors.Fields{"gene": gene},
			)
		}

		seen := make(map[A]struct{}, len(alleles))
		for _, a := range alleles {
			if _, dup := seen[a]; dup {
				return errors.WithFields(
					errors.New(errors.ValidationFailed, "duplicate allele within gene"),
					errors.Fields{"gene": gene, "allele": a},
				)
			}
			seen[a] = struct{}{}
		}
	}

	return nil
}

// Genes returns the gene names in sorted order. The engine iterates the
// pool through this so candidate construction is deterministic for a
// given seed.
func (p Pool[A]) Genes() []string {
	names := make([]string, 0, len(p))
	for gene := range p {
		names = append(names, gene)
	}
	sort.Strings(names)
	return names
}

// Clone returns a deep copy of the pool.
func (p Pool[A]) Clone() Pool[A] {
	out := make(Pool[A], len(p))
	for gene, alleles := range p {
		out[gene] = append([]A(nil), alleles...)
	}
	return out
}
