package problems

import (
	"fmt"
	"sort"
)

// Info describes a built-in search problem.
type Info struct {
	Name        string
	Description string
	GeneSpace   string
	Fitness     string
	Difficulty  string
	Convergence string
	BestFor     []string
	Example     string
}

var Registry = map[string]Info{
	"queens": {
		Name:        "Eight Queens",
		Description: "Place eight queens on a chess board so that no two attack each other",
		GeneSpace:   "8 genes (one per column), 8 alleles each (the column paired with the queen's row)",
		Fitness:     "Negated count of attacking pairs; 0 is a solved board",
		Difficulty:  "Medium",
		Convergence: "Usually under a few thousand generations",
		BestFor: []string{
			"Watching the archive converge on a known optimum",
			"Seeing mutation escape local plateaus",
		},
		Example: "evolve-cli try queens --seed 7",
	},
	"phrase": {
		Name:        "Phrase Match",
		Description: "Evolve a string of letters toward a target phrase",
		GeneSpace:   "One gene per character position, 27 alleles each (a-z and space)",
		Fitness:     "Number of positions matching the target",
		Difficulty:  "Low",
		Convergence: "Fast; targets with repeated letters lean on recombination and take longer",
		BestFor: []string{
			"First contact with the engine",
			"Demonstrating deterministic runs with a fixed seed",
		},
		Example: "evolve-cli try phrase --target \"run fast\"",
	},
	"palette": {
		Name:        "Theme Palette",
		Description: "Pick colors for UI roles that contrast well with each other",
		GeneSpace:   "4 genes (background, foreground, accent, border) with color-name alleles",
		Fitness:     "Weighted contrast between roles; no single known optimum",
		Difficulty:  "Low",
		Convergence: "Fast, but the archive keeps several near-ties",
		BestFor: []string{
			"Problems with hard constraints (text must not match the background)",
			"Loading gene pools from YAML or INI files",
		},
		Example: "evolve-cli try palette --pool my-colors.yaml",
	},
}

// Get returns the registry entry for a problem.
func Get(name string) (Info, error) {
	if info, exists := Registry[name]; exists {
		return info, nil
	}
	return Info{}, fmt.Errorf("problem '%s' not found", name)
}

// ListAll returns every registered problem name, sorted.
func ListAll() []string {
	var names []string
	for name := range Registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
