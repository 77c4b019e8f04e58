package core

import (
	"math/rand"
	"time"
)

// Entry is one allele instance in an AlleleIndex. Position is a synthetic
// coordinate in [0, 1) used purely as a recombination axis; it is not a
// biological locus and carries no meaning outside crossover. The gene
// name rides along so a candidate's mapping can be rebuilt from spliced
// entries.
type Entry[A comparable] struct {
	Gene     string
	Value    A
	Position float64
}

// AlleleIndex is an ordered collection of allele entries addressable by
// position. Entries are appended or removed by range, never edited in
// place. Positions need not be unique, and range queries are inclusive on
// both ends.
//
// An AlleleIndex is not safe for concurrent use.
type AlleleIndex[A comparable] struct {
	entries []Entry[A]
	rng     *rand.Rand
}

// NewAlleleIndex creates an empty index. Positions for Add are drawn from
// rng; passing nil falls back to a time-seeded source.
func NewAlleleIndex[A comparable](rng *rand.Rand) *AlleleIndex[A] {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &AlleleIndex[A]{rng: rng}
}

// Add appends an allele at a position drawn uniformly from [0, 1).
func (ix *AlleleIndex[A]) Add(gene string, value A) {
	ix.AddAt(gene, value, ix.rng.Float64())
}

// AddAt appends an allele at an explicit position.
func (ix *AlleleIndex[A]) AddAt(gene string, value A, position float64) {
	ix.entries = append(ix.entries, Entry[A]{Gene: gene, Value: value, Position: position})
}

// Range returns the entries with start ≤ position ≤ stop, preserving
// original relative order. The result is freshly allocated and never
// aliases the index. A range whose start exceeds its stop matches
// nothing; an empty result is valid, not an error.
func (ix *AlleleIndex[A]) Range(start, stop float64) []Entry[A] {
	return ix.filter(func(p float64) bool { return p >= start && p <= stop })
}

// Complement returns the entries whose position falls outside
// [start, stop], with the same guarantees as Range.
func (ix *AlleleIndex[A]) Complement(start, stop float64) []Entry[A] {
	return ix.filter(func(p float64) bool { return p < start || p > stop })
}

// Remove destructively drops every entry inside [start, stop]. Remaining
// entries keep their positions and relative order.
func (ix *AlleleIndex[A]) Remove(start, stop float64) {
	kept := ix.entries[:0]
	for _, e := range ix.entries {
		if e.Position < start || e.Position > stop {
			kept = append(kept, e)
		}
	}
	// Release references the shortened slice no longer covers
	for i := len(kept); i < len(ix.entries); i++ {
		ix.entries[i] = Entry[A]{}
	}
	ix.entries = kept
}

// Copy returns a deep, independent snapshot. Recombination must not let
// a child alias a parent's index.
func (ix *AlleleIndex[A]) Copy() *AlleleIndex[A] {
	return &AlleleIndex[A]{
		entries: append([]Entry[A](nil), ix.entries...),
		rng:     ix.rng,
	}
}

// Len returns the number of entries.
func (ix *AlleleIndex[A]) Len() int {
	return len(ix.entries)
}

// Entries returns a copy of all entries in insertion order.
func (ix *AlleleIndex[A]) Entries() []Entry[A] {
	return append([]Entry[A](nil), ix.entries...)
}

func (ix *AlleleIndex[A]) filter(keep func(position float64) bool) []Entry[A] {
	out := make([]Entry[A], 0, len(ix.entries))
	for _, e := range ix.entries {
		if keep(e.Position) {
			out = append(out, e)
		}
	}
	return out
}
