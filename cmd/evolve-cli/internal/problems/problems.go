// Package problems holds the built-in search problems the CLI can run
// without any user code. Each problem contributes a gene pool and a
// candidate factory for the engine.
package problems

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/XiaoConstantine/evolve-go/pkg/config"
	"github.com/XiaoConstantine/evolve-go/pkg/core"
)

const queensBoardSize = 8

// BuildOptions carries per-problem parameters.
type BuildOptions struct {
	// Target phrase for the phrase problem
	Target string

	// Gene pool file for the palette problem; empty uses the built-in
	// colors
	PoolPath string
}

// Build returns the gene pool and candidate factory for a problem.
func Build(name string, opts BuildOptions) (core.Pool[string], core.Factory[string], error) {
	switch name {
	case "queens":
		return queensPool(), newQueensBoard, nil
	case "phrase":
		target := opts.Target
		if target == "" {
			target = "go fast"
		}
		if err := validateTarget(target); err != nil {
			return nil, nil, err
		}
		return phrasePool(target), phraseFactory(target), nil
	case "palette":
		pool := palettePool()
		if opts.PoolPath != "" {
			loaded, err := config.LoadPool(opts.PoolPath, "")
			if err != nil {
				return nil, nil, err
			}
			pool = loaded
		}
		return pool, newPalette, nil
	default:
		return nil, nil, fmt.Errorf("problem '%s' not found", name)
	}
}

// Optimum returns the best reachable fitness for a problem when one is
// known.
func Optimum(name string, opts BuildOptions) (float64, bool) {
	switch name {
	case "queens":
		return 0, true
	case "phrase":
		target := opts.Target
		if target == "" {
			target = "go fast"
		}
		return float64(len(target)), true
	default:
		return 0, false
	}
}

// Eight queens. One gene per column; the allele pairs the column with
// the queen's row ("c:r"), giving every column a private value range.
// The engine redraws allele values already present in a candidate, so
// bare row values shared between columns would starve mutation once a
// board holds all eight.

type queensBoard struct {
	genes map[string]string

	cached  bool
	fitness float64
	unique  string
}

func newQueensBoard(genes map[string]string) core.Evolvable[string] {
	return &queensBoard{genes: genes}
}

func (b *queensBoard) Genes() map[string]string { return b.genes }

func (b *queensBoard) FitnessLevel() float64 {
	if b.cached {
		return b.fitness
	}
	return b.computeFitness()
}

func (b *queensBoard) CanSurvive() bool { return true }

func (b *queensBoard) Unique() string {
	if b.cached {
		return b.unique
	}
	return b.computeUnique()
}

func (b *queensBoard) CacheAttrs() {
	b.fitness = b.computeFitness()
	b.unique = b.computeUnique()
	b.cached = true
}

func (b *queensBoard) computeFitness() float64 {
	rows := b.rows()
	attacks := 0
	for i := 0; i < queensBoardSize; i++ {
		for j := i + 1; j < queensBoardSize; j++ {
			if rows[i] == rows[j] {
				attacks++
			}
			diff := rows[i] - rows[j]
			if diff < 0 {
				diff = -diff
			}
			if diff == j-i {
				attacks++
			}
		}
	}
	return -float64(attacks)
}

func (b *queensBoard) computeUnique() string {
	var sb strings.Builder
	for _, row := range b.rows() {
		sb.WriteString(strconv.Itoa(row))
	}
	return sb.String()
}

func (b *queensBoard) rows() []int {
	rows := make([]int, queensBoardSize)
	for c := 0; c < queensBoardSize; c++ {
		rows[c] = queensRow(b.genes[queensGene(c)])
	}
	return rows
}

func queensGene(column int) string { return fmt.Sprintf("q%d", column) }

func queensAllele(column, row int) string { return fmt.Sprintf("%d:%d", column, row) }

func queensRow(allele string) int {
	sep := strings.IndexByte(allele, ':')
	if sep < 0 {
		return 0
	}
	row, _ := strconv.Atoi(allele[sep+1:])
	return row
}

func queensPool() core.Pool[string] {
	pool := make(core.Pool[string], queensBoardSize)
	for c := 0; c < queensBoardSize; c++ {
		rows := make([]string, queensBoardSize)
		for r := range rows {
			rows[r] = queensAllele(c, r)
		}
		pool[queensGene(c)] = rows
	}
	return pool
}

// FormatQueensBoard renders a board layout string like "04752613" as an
// ASCII chess board.
func FormatQueensBoard(unique string) string {
	var sb strings.Builder
	for r := 0; r < queensBoardSize; r++ {
		for c := 0; c < queensBoardSize && c < len(unique); c++ {
			if int(unique[c]-'0') == r {
				sb.WriteString(" Q")
			} else {
				sb.WriteString(" .")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Phrase match. One gene per character position.

const phraseAlphabet = "abcdefghijklmnopqrstuvwxyz "

type phraseCandidate struct {
	genes  map[string]string
	target string
}

func phraseFactory(target string) core.Factory[string] {
	return func(genes map[string]string) core.Evolvable[string] {
		return &phraseCandidate{genes: genes, target: target}
	}
}

func (p *phraseCandidate) Genes() map[string]string { return p.genes }

func (p *phraseCandidate) FitnessLevel() float64 {
	matches := 0
	for i := 0; i < len(p.target); i++ {
		if p.genes[phraseGene(i)] == string(p.target[i]) {
			matches++
		}
	}
	return float64(matches)
}

func (p *phraseCandidate) CanSurvive() bool { return true }

func (p *phraseCandidate) Unique() string {
	var sb strings.Builder
	for i := 0; i < len(p.target); i++ {
		sb.WriteString(p.genes[phraseGene(i)])
	}
	return sb.String()
}

func phraseGene(position int) string { return fmt.Sprintf("p%d", position) }

func phrasePool(target string) core.Pool[string] {
	alleles := make([]string, 0, len(phraseAlphabet))
	for _, r := range phraseAlphabet {
		alleles = append(alleles, string(r))
	}

	pool := make(core.Pool[string], len(target))
	for i := 0; i < len(target); i++ {
		pool[phraseGene(i)] = alleles
	}
	return pool
}

func validateTarget(target string) error {
	for _, r := range target {
		if !strings.ContainsRune(phraseAlphabet, r) {
			return fmt.Errorf("target must use only lowercase letters and spaces, got %q", r)
		}
	}
	return nil
}

// Theme palette. Genes are UI roles, alleles are color names scored by
// approximate luminance contrast.

var paletteLuminance = map[string]float64{
	"black":    0.00,
	"navy":     0.10,
	"charcoal": 0.15,
	"crimson":  0.30,
	"slate":    0.35,
	"teal":     0.40,
	"olive":    0.45,
	"gray":     0.50,
	"coral":    0.60,
	"gold":     0.70,
	"silver":   0.75,
	"sky":      0.80,
	"ivory":    0.95,
	"white":    1.00,
}

type paletteCandidate struct {
	genes map[string]string
}

func newPalette(genes map[string]string) core.Evolvable[string] {
	return &paletteCandidate{genes: genes}
}

func (p *paletteCandidate) Genes() map[string]string { return p.genes }

func (p *paletteCandidate) FitnessLevel() float64 {
	bg := paletteLuminance[p.genes["background"]]
	fg := paletteLuminance[p.genes["foreground"]]
	accent := paletteLuminance[p.genes["accent"]]
	border := paletteLuminance[p.genes["border"]]

	score := 2*colorContrast(bg, fg) + colorContrast(bg, accent) + 0.5*colorContrast(fg, border)
	if p.genes["accent"] == p.genes["border"] {
		score -= 1
	}
	return score
}

// CanSurvive rejects palettes whose text would be invisible.
func (p *paletteCandidate) CanSurvive() bool {
	return p.genes["background"] != p.genes["foreground"]
}

func (p *paletteCandidate) Unique() string {
	return strings.Join([]string{
		p.genes["background"],
		p.genes["foreground"],
		p.genes["accent"],
		p.genes["border"],
	}, "|")
}

func colorContrast(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}

func palettePool() core.Pool[string] {
	return core.Pool[string]{
		"background": {"black", "charcoal", "navy", "slate", "ivory", "white"},
		"foreground": {"white", "ivory", "silver", "black", "charcoal", "gold"},
		"accent":     {"teal", "coral", "gold", "crimson", "sky"},
		"border":     {"gray", "silver", "slate", "charcoal"},
	}
}
