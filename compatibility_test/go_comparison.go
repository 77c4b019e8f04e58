package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/XiaoConstantine/evolve-go/pkg/config"
	"github.com/XiaoConstantine/evolve-go/pkg/core"
	"github.com/XiaoConstantine/evolve-go/pkg/evolve"
	"github.com/XiaoConstantine/evolve-go/pkg/logging"
)

// ComparisonMetrics tracks per-seed outcomes for one scenario.
type ComparisonMetrics struct {
	Scores         []float64 `json:"scores"`
	ExecutionTimes []float64 `json:"execution_times"`
	ArchiveSizes   []int     `json:"archive_sizes"`
}

func (cm *ComparisonMetrics) AddScore(score float64) {
	cm.Scores = append(cm.Scores, score)
}

func (cm *ComparisonMetrics) AddExecutionTime(seconds float64) {
	cm.ExecutionTimes = append(cm.ExecutionTimes, seconds)
}

func (cm *ComparisonMetrics) AddArchiveSize(size int) {
	cm.ArchiveSizes = append(cm.ArchiveSizes, size)
}

func (cm *ComparisonMetrics) GetAverageScore() float64 {
	if len(cm.Scores) == 0 {
		return 0.0
	}
	sum := 0.0
	for _, score := range cm.Scores {
		sum += score
	}
	return sum / float64(len(cm.Scores))
}

func (cm *ComparisonMetrics) GetBestScore() float64 {
	best := 0.0
	for _, score := range cm.Scores {
		if score > best {
			best = score
		}
	}
	return best
}

func (cm *ComparisonMetrics) GetTotalTime() float64 {
	sum := 0.0
	for _, t := range cm.ExecutionTimes {
		sum += t
	}
	return sum
}

// Eight queens scenario. One gene per column; allele "c:r" keeps every
// column's value range private so mutation always has a spare draw.

const queensSize = 8

type queensCandidate struct {
	genes map[string]string

	cached  bool
	fitness float64
	unique  string
}

func newQueensCandidate(genes map[string]string) core.Evolvable[string] {
	return &queensCandidate{genes: genes}
}

func (q *queensCandidate) Genes() map[string]string { return q.genes }

func (q *queensCandidate) FitnessLevel() float64 {
	if q.cached {
		return q.fitness
	}
	return q.computeFitness()
}

func (q *queensCandidate) CanSurvive() bool { return true }

func (q *queensCandidate) Unique() string {
	if q.cached {
		return q.unique
	}
	return q.computeUnique()
}

func (q *queensCandidate) CacheAttrs() {
	q.fitness = q.computeFitness()
	q.unique = q.computeUnique()
	q.cached = true
}

func (q *queensCandidate) computeFitness() float64 {
	rows := q.rows()
	attacks := 0
	for i := 0; i < queensSize; i++ {
		for j := i + 1; j < queensSize; j++ {
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

func (q *queensCandidate) computeUnique() string {
	var sb strings.Builder
	for _, row := range q.rows() {
		sb.WriteString(strconv.Itoa(row))
	}
	return sb.String()
}

func (q *queensCandidate) rows() []int {
	rows := make([]int, queensSize)
	for c := 0; c < queensSize; c++ {
		allele := q.genes[fmt.Sprintf("q%d", c)]
		if sep := strings.IndexByte(allele, ':'); sep >= 0 {
			rows[c], _ = strconv.Atoi(allele[sep+1:])
		}
	}
	return rows
}

func queensScenarioPool() core.Pool[string] {
	pool := make(core.Pool[string], queensSize)
	for c := 0; c < queensSize; c++ {
		alleles := make([]string, queensSize)
		for r := range alleles {
			alleles[r] = fmt.Sprintf("%d:%d", c, r)
		}
		pool[fmt.Sprintf("q%d", c)] = alleles
	}
	return pool
}

// Phrase scenario: evolve toward a fixed target with distinct letters.

const phraseTarget = "go fast"

type phraseCandidate struct {
	genes map[string]string
}

func newPhraseCandidate(genes map[string]string) core.Evolvable[string] {
	return &phraseCandidate{genes: genes}
}

func (p *phraseCandidate) Genes() map[string]string { return p.genes }

func (p *phraseCandidate) FitnessLevel() float64 {
	matches := 0
	for i := 0; i < len(phraseTarget); i++ {
		if p.genes[fmt.Sprintf("p%d", i)] == string(phraseTarget[i]) {
			matches++
		}
	}
	return float64(matches)
}

func (p *phraseCandidate) CanSurvive() bool { return true }

func (p *phraseCandidate) Unique() string {
	var sb strings.Builder
	for i := 0; i < len(phraseTarget); i++ {
		sb.WriteString(p.genes[fmt.Sprintf("p%d", i)])
	}
	return sb.String()
}

func phraseScenarioPool() core.Pool[string] {
	alphabet := "abcdefghijklmnopqrstuvwxyz "
	alleles := make([]string, 0, len(alphabet))
	for _, r := range alphabet {
		alleles = append(alleles, string(r))
	}

	pool := make(core.Pool[string], len(phraseTarget))
	for i := 0; i < len(phraseTarget); i++ {
		pool[fmt.Sprintf("p%d", i)] = alleles
	}
	return pool
}

// Palette scenario: contrast-driven color assignment with a hard
// background/foreground constraint.

var paletteLuminance = map[string]float64{
	"black": 0.00, "navy": 0.10, "charcoal": 0.15, "crimson": 0.30,
	"slate": 0.35, "teal": 0.40, "olive": 0.45, "gray": 0.50,
	"coral": 0.60, "gold": 0.70, "silver": 0.75, "sky": 0.80,
	"ivory": 0.95, "white": 1.00,
}

type paletteCandidate struct {
	genes map[string]string
}

func newPaletteCandidate(genes map[string]string) core.Evolvable[string] {
	return &paletteCandidate{genes: genes}
}

func (p *paletteCandidate) Genes() map[string]string { return p.genes }

func (p *paletteCandidate) FitnessLevel() float64 {
	contrast := func(a, b string) float64 {
		d := paletteLuminance[p.genes[a]] - paletteLuminance[p.genes[b]]
		if d < 0 {
			return -d
		}
		return d
	}

	score := 2*contrast("background", "foreground") +
		contrast("background", "accent") +
		0.5*contrast("foreground", "border")
	if p.genes["accent"] == p.genes["border"] {
		score -= 1
	}
	return score
}

func (p *paletteCandidate) CanSurvive() bool {
	return p.genes["background"] != p.genes["foreground"]
}

func (p *paletteCandidate) Unique() string {
	return strings.Join([]string{
		p.genes["background"], p.genes["foreground"],
		p.genes["accent"], p.genes["border"],
	}, "|")
}

func paletteScenarioPool() core.Pool[string] {
	return core.Pool[string]{
		"background": {"black", "charcoal", "navy", "slate", "ivory", "white"},
		"foreground": {"white", "ivory", "silver", "black", "charcoal", "gold"},
		"accent":     {"teal", "coral", "gold", "crimson", "sky"},
		"border":     {"gray", "silver", "slate", "charcoal"},
	}
}

// ScenarioComparison drives the reference scenarios across seeds and
// collects comparable metrics.
type ScenarioComparison struct {
	Seeds []int64
	Opts  evolve.RunOptions

	QueensMetrics  *ComparisonMetrics
	PhraseMetrics  *ComparisonMetrics
	PaletteMetrics *ComparisonMetrics
}

func NewScenarioComparison(nSeeds int, opts evolve.RunOptions) *ScenarioComparison {
	seeds := make([]int64, nSeeds)
	for i := range seeds {
		seeds[i] = int64(i + 1)
	}

	return &ScenarioComparison{
		Seeds:          seeds,
		Opts:           opts,
		QueensMetrics:  &ComparisonMetrics{},
		PhraseMetrics:  &ComparisonMetrics{},
		PaletteMetrics: &ComparisonMetrics{},
	}
}

// runScenario evolves one pool/factory pair once per seed. Scores are
// normalized to [0,1] by the caller-provided function so scenarios with
// different fitness scales stay comparable.
func (sc *ScenarioComparison) runScenario(
	ctx context.Context,
	pool core.Pool[string],
	factory core.Factory[string],
	normalize func(fitness float64) float64,
	metrics *ComparisonMetrics,
) (int, error) {
	solved := 0
	for _, seed := range sc.Seeds {
		engine, err := evolve.New(pool, factory, &evolve.Config{Seed: seed})
		if err != nil {
			return solved, err
		}

		startTime := time.Now()
		if err := engine.Run(ctx, sc.Opts); err != nil {
			return solved, err
		}
		metrics.AddExecutionTime(time.Since(startTime).Seconds())

		best := engine.Best()
		if len(best) == 0 {
			return solved, fmt.Errorf("seed %d produced an empty archive", seed)
		}
		score := normalize(best[0].FitnessLevel())
		metrics.AddScore(score)
		metrics.AddArchiveSize(len(best))
		if score >= 1.0 {
			solved++
		}
	}
	return solved, nil
}

func (sc *ScenarioComparison) TestQueens(ctx context.Context) (map[string]interface{}, error) {
	log.Println("Running eight queens scenario")

	// 28 pairs is the worst case, every pair attacking
	solved, err := sc.runScenario(ctx, queensScenarioPool(), newQueensCandidate,
		func(fitness float64) float64 { return 1.0 + fitness/28.0 },
		sc.QueensMetrics)
	if err != nil {
		return nil, err
	}

	return sc.scenarioResults("queens", sc.QueensMetrics, solved), nil
}

func (sc *ScenarioComparison) TestPhrase(ctx context.Context) (map[string]interface{}, error) {
	log.Println("Running phrase scenario")

	solved, err := sc.runScenario(ctx, phraseScenarioPool(), newPhraseCandidate,
		func(fitness float64) float64 { return fitness / float64(len(phraseTarget)) },
		sc.PhraseMetrics)
	if err != nil {
		return nil, err
	}

	return sc.scenarioResults("phrase", sc.PhraseMetrics, solved), nil
}

func (sc *ScenarioComparison) TestPalette(ctx context.Context) (map[string]interface{}, error) {
	log.Println("Running palette scenario")

	// 3.5 is the theoretical ceiling of the weighted contrast sum
	solved, err := sc.runScenario(ctx, paletteScenarioPool(), newPaletteCandidate,
		func(fitness float64) float64 {
			score := fitness / 3.5
			if score > 1.0 {
				score = 1.0
			}
			return score
		},
		sc.PaletteMetrics)
	if err != nil {
		return nil, err
	}

	return sc.scenarioResults("palette", sc.PaletteMetrics, solved), nil
}

func (sc *ScenarioComparison) scenarioResults(name string, metrics *ComparisonMetrics, solved int) map[string]interface{} {
	return map[string]interface{}{
		"problem":       name,
		"generations":   sc.Opts.Generations,
		"n_children":    sc.Opts.NChildren,
		"n_best":        sc.Opts.NBest,
		"seeds":         len(sc.Seeds),
		"scores":        metrics.Scores,
		"average_score": metrics.GetAverageScore(),
		"best_score":    metrics.GetBestScore(),
		"total_time":    metrics.GetTotalTime(),
		"solved_runs":   solved,
	}
}

func SaveResults(results map[string]interface{}, filename string) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return err
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return err
	}

	log.Printf("Results saved to %s", filename)
	return nil
}

func main() {
	var problem = flag.String("problem", "all", "Scenario to run: queens, phrase, palette, or all")
	var nSeeds = flag.Int("seeds", 5, "Seeds to run per scenario")
	var generations = flag.Int("generations", 0, "Generations per run (0 = config default)")
	var children = flag.Int("children", 8, "Children per generation")
	var output = flag.String("output", "go_comparison_results.json", "Results file")
	flag.Parse()

	consoleOutput := logging.NewConsoleOutput(true, logging.WithColor(false))
	logging.SetLogger(logging.NewLogger(logging.Config{
		Severity: logging.WARN,
		Outputs:  []logging.Output{consoleOutput},
	}))

	opts := config.GetDefaultConfig().RunOptions()
	if *generations > 0 {
		opts.Generations = *generations
	}
	opts.NChildren = *children

	ctx := context.Background()
	comparison := NewScenarioComparison(*nSeeds, opts)

	results := map[string]interface{}{
		"problem_tested": *problem,
		"seeds":          *nSeeds,
		"generations":    opts.Generations,
	}

	run := func(name string, test func(context.Context) (map[string]interface{}, error)) {
		if *problem != name && *problem != "all" {
			return
		}
		fmt.Printf("Running %s...\n", name)
		scenarioResults, err := test(ctx)
		if err != nil {
			log.Fatalf("Scenario %s failed: %v", name, err)
		}
		results[name] = scenarioResults
	}

	run("queens", comparison.TestQueens)
	run("phrase", comparison.TestPhrase)
	run("palette", comparison.TestPalette)

	if *problem == "all" {
		queensScore := comparison.QueensMetrics.GetAverageScore()
		phraseScore := comparison.PhraseMetrics.GetAverageScore()
		paletteScore := comparison.PaletteMetrics.GetAverageScore()

		bestProblem := "queens"
		bestScore := queensScore
		if phraseScore > bestScore {
			bestProblem = "phrase"
			bestScore = phraseScore
		}
		if paletteScore > bestScore {
			bestProblem = "palette"
			bestScore = paletteScore
		}

		results["comparison"] = map[string]interface{}{
			"queens_vs_phrase_score_diff":  phraseScore - queensScore,
			"queens_vs_palette_score_diff": paletteScore - queensScore,
			"phrase_vs_palette_score_diff": paletteScore - phraseScore,
			"queens_time":                  comparison.QueensMetrics.GetTotalTime(),
			"phrase_time":                  comparison.PhraseMetrics.GetTotalTime(),
			"palette_time":                 comparison.PaletteMetrics.GetTotalTime(),
			"best_problem":                 bestProblem,
			"best_score":                   bestScore,
		}
	}

	if err := SaveResults(results, *output); err != nil {
		log.Printf("Error saving results: %v", err)
	}

	fmt.Println("\n=== evolve-go Scenario Comparison Results ===")
	fmt.Printf("Scenario tested: %v\n", results["problem_tested"])
	fmt.Printf("Seeds per scenario: %v\n", results["seeds"])
	fmt.Printf("Generations per run: %v\n", results["generations"])

	for _, name := range []string{"queens", "phrase", "palette"} {
		scenario, ok := results[name].(map[string]interface{})
		if !ok {
			continue
		}
		fmt.Printf("\n%s:\n", name)
		fmt.Printf("  - Average score: %.3f\n", scenario["average_score"])
		fmt.Printf("  - Best score: %.3f\n", scenario["best_score"])
		fmt.Printf("  - Solved runs: %d/%d\n", scenario["solved_runs"], len(comparison.Seeds))
		fmt.Printf("  - Total time: %.2fs\n", scenario["total_time"])
	}

	if comparisonResults, ok := results["comparison"].(map[string]interface{}); ok {
		fmt.Printf("\nBest scenario: %v (%.3f)\n", comparisonResults["best_problem"], comparisonResults["best_score"])
	}
}
