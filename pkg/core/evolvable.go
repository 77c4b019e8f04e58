package core

// Evolvable is the capability set the engine requires from a candidate
// solution. Concrete candidate types live outside this module; the engine
// never inspects how fitness or survivability is computed, it only calls
// these methods.
type Evolvable[A comparable] interface {
	// Genes returns the candidate's live gene→allele mapping, one allele
	// per gene. The engine writes through this map during mutation, so
	// implementations must return the backing map, not a copy.
	Genes() map[string]A

	// FitnessLevel scores the candidate. Higher is better; the ordering
	// is total.
	FitnessLevel() float64

	// CanSurvive reports whether the candidate satisfies the hard
	// constraints of the problem. Candidates failing this gate are never
	// admitted to a population or archive.
	CanSurvive() bool

	// Unique returns a key that is stable across logically equal
	// candidates, used to deduplicate the archive.
	Unique() string
}

// Factory constructs a candidate from a gene→allele mapping. The map is
// freshly allocated per call; implementations may retain it.
type Factory[A comparable] func(genes map[string]A) Evolvable[A]

// AttrCacher is an optional capability. When a candidate implements it,
// the engine calls CacheAttrs exactly once, after the candidate has
// passed survivability, signalling that derived attributes (fitness,
// uniqueness key) will not change and may be cached.
type AttrCacher interface {
	CacheAttrs()
}
