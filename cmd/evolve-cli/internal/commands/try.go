package commands

import (
	"fmt"
	"strings"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/display"
	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/problems"
	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/runner"
	"github.com/spf13/cobra"
)

func NewTryCommand() *cobra.Command {
	var configPath string
	var seed int64
	var maxAttempts int
	var generations int
	var nBest int
	var children int
	var progressEvery int
	var target string
	var poolPath string
	var tracePath string
	var verbose bool

	cmd := &cobra.Command{
		Use:   "try <problem>",
		Short: "Run a built-in problem (eliminates all boilerplate)",
		Long: `Run an evolutionary search on a built-in problem without writing any
code. This command wires up logging, configuration, the gene pool, and
the candidate factory, and prints the all-time best candidates when the
run finishes.

Perfect for:
- Quick experimentation with engine settings
- Understanding how seeds affect convergence
- Comparing runs across problems`,
		Example: `  # Solve eight queens with a fixed seed
  evolve-cli try queens --seed 7

  # Evolve a phrase with more children per generation
  evolve-cli try phrase --target "run fast" --children 20

  # Run the palette problem from a custom gene pool
  evolve-cli try palette --pool my-colors.yaml

  # Use a configuration file for engine settings
  evolve-cli try queens --config evolve.yaml`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return problems.ListAll(), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			problemName := strings.ToLower(args[0])

			info, err := problems.Get(problemName)
			if err != nil {
				fmt.Printf("%sError:%s Unknown problem '%s'\n\n", display.ColorRed, display.ColorReset, problemName)
				fmt.Println("Available problems:")
				for _, name := range problems.ListAll() {
					fmt.Printf("  - %s\n", name)
				}
				return
			}

			fmt.Printf("%s%sRunning %s%s\n", display.ColorBold, display.ColorBlue, info.Name, display.ColorReset)
			fmt.Println(strings.Repeat("=", 50))
			fmt.Printf("%sGenes:%s %s\n", display.ColorCyan, display.ColorReset, info.GeneSpace)
			fmt.Printf("%sFitness:%s %s\n", display.ColorCyan, display.ColorReset, info.Fitness)
			fmt.Println()

			cfg := runner.SearchConfig{
				ProblemName: problemName,
				ConfigPath:  configPath,
				Seed:        seed,
				MaxAttempts: maxAttempts,
				Generations: generations,
				NBest:       nBest,
				NChildren:   children,
				Target:      target,
				PoolPath:    poolPath,
				TracePath:   tracePath,
				Verbose:     verbose,
			}

			if progressEvery > 0 {
				cfg.ProgressEvery = progressEvery
				cfg.Progress = func(update runner.ProgressUpdate) {
					fmt.Printf("%sgeneration %d%s  best fitness %.3f\n",
						display.ColorYellow, update.Generation, display.ColorReset, update.BestFitness)
				}
			}

			result, err := runner.RunSearch(cfg)
			if err != nil {
				fmt.Printf("\n%sSearch failed%s\n", display.ColorRed, display.ColorReset)
				fmt.Printf("%sError:%s %s\n", display.ColorRed, display.ColorReset, err.Error())
				return
			}

			displayResults(result)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Configuration file for engine and run settings")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed; 0 derives one from the clock")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Attempt budget for constraint retries (0 = unbounded)")
	cmd.Flags().IntVar(&generations, "generations", 0, "Generations to breed (0 = config default)")
	cmd.Flags().IntVar(&nBest, "n-best", 0, "Archive capacity (0 = config default)")
	cmd.Flags().IntVar(&children, "children", 0, "Children per generation (0 = config default)")
	cmd.Flags().IntVar(&progressEvery, "progress-every", 0, "Print progress every N generations (0 = silent)")
	cmd.Flags().StringVar(&target, "target", "", "Target phrase for the phrase problem")
	cmd.Flags().StringVar(&poolPath, "pool", "", "Gene pool file for the palette problem")
	cmd.Flags().StringVar(&tracePath, "trace", "", "Write a runtime trace snapshot to this file if the run fails")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

func displayResults(result *runner.RunResult) {
	fmt.Printf("\n%s%sSearch Complete%s\n", display.ColorBold, display.ColorGreen, display.ColorReset)
	fmt.Println(strings.Repeat("=", 40))

	fmt.Printf("%sProblem:%s %s\n", display.ColorCyan, display.ColorReset, result.ProblemName)
	fmt.Printf("%sRun:%s %s\n", display.ColorCyan, display.ColorReset, result.RunID)
	fmt.Printf("%sGenerations:%s %d\n", display.ColorCyan, display.ColorReset, result.Generations)
	fmt.Printf("%sDuration:%s %v\n", display.ColorCyan, display.ColorReset, result.Duration.Round(1000000))

	fmt.Println()
	fmt.Printf("%sAll-time best candidates%s\n", display.ColorBold, display.ColorBlue)
	fmt.Println(strings.Repeat("-", 25))
	for i, entry := range result.Archive {
		fmt.Printf("%d. %sfitness %.2f%s  %s\n", i+1, display.ColorGreen, entry.Fitness, display.ColorReset, entry.Unique)
	}

	if result.ProblemName == "queens" && result.Best.Unique != "" {
		fmt.Println()
		fmt.Print(problems.FormatQueensBoard(result.Best.Unique))
	}

	fmt.Println()
	if result.HasOptimum {
		if result.Solved {
			fmt.Printf("%sOptimum reached.%s\n", display.ColorGreen, display.ColorReset)
		} else {
			fmt.Printf("%sOptimum not reached; try more generations or another seed.%s\n",
				display.ColorYellow, display.ColorReset)
		}
	}

	fmt.Printf("\n%sNext steps:%s\n", display.ColorPurple, display.ColorReset)
	fmt.Printf("• Watch a run live: %sevolve-cli watch %s%s\n", display.ColorCyan, result.ProblemName, display.ColorReset)
	fmt.Printf("• Compare seeds: %sevolve-cli try %s --seed 2%s\n", display.ColorCyan, result.ProblemName, display.ColorReset)
}
