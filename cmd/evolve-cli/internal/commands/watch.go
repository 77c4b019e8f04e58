package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/display"
	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/problems"
	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/runner"
	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/tui"
)

// NewWatchCommand creates the watch command
func NewWatchCommand() *cobra.Command {
	var configPath string
	var seed int64
	var maxAttempts int
	var generations int
	var nBest int
	var children int
	var progressEvery int
	var target string
	var poolPath string

	cmd := &cobra.Command{
		Use:   "watch [problem]",
		Short: "Run a built-in problem with a live progress view",
		Long: `Run a built-in search problem inside a live terminal view.

The view tracks the current generation, the best fitness seen so far,
and every improvement of the all-time best candidate while the engine
breeds in the background.`,
		Example: `  # Watch the eight queens search live
  evolve-cli watch queens

  # Watch a phrase search with a custom target
  evolve-cli watch phrase --target "run fast" --generations 5000`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return problems.ListAll(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal() {
				return fmt.Errorf("watch mode requires a terminal; use 'try' instead")
			}

			problemName := strings.ToLower(args[0])
			if _, err := problems.Get(problemName); err != nil {
				return fmt.Errorf("%w\nAvailable problems: %s",
					err, strings.Join(problems.ListAll(), ", "))
			}

			searchCfg := runner.SearchConfig{
				ProblemName:   problemName,
				ConfigPath:    configPath,
				Seed:          seed,
				MaxAttempts:   maxAttempts,
				Generations:   generations,
				NBest:         nBest,
				NChildren:     children,
				Target:        target,
				PoolPath:      poolPath,
				ProgressEvery: progressEvery,
			}

			totalGenerations, err := runner.PlannedGenerations(searchCfg)
			if err != nil {
				return err
			}

			model := tui.NewWatchModel(problemName, searchCfg, totalGenerations)
			p := tea.NewProgram(model, tea.WithAltScreen())

			finalModel, err := p.Run()
			if err != nil {
				return fmt.Errorf("error running watch mode: %w", err)
			}

			watchModel, ok := finalModel.(tui.WatchModel)
			if !ok || !watchModel.Done() {
				fmt.Printf("%sSearch interrupted.%s\n", display.ColorYellow, display.ColorReset)
				return nil
			}

			result, runErr := watchModel.Result()
			if runErr != nil {
				fmt.Printf("%sSearch failed%s\n", display.ColorRed, display.ColorReset)
				fmt.Printf("%sError:%s %s\n", display.ColorRed, display.ColorReset, runErr.Error())
				return nil
			}

			displayResults(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Configuration file (YAML)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Random seed (0 = time-based)")
	cmd.Flags().IntVar(&maxAttempts, "max-attempts", 0, "Cap on rejected children per breeding (0 = config default)")
	cmd.Flags().IntVar(&generations, "generations", 0, "Generations to breed (0 = config default)")
	cmd.Flags().IntVar(&nBest, "n-best", 0, "Size of the all-time best archive (0 = config default)")
	cmd.Flags().IntVar(&children, "children", 0, "Children per generation (0 = config default)")
	cmd.Flags().IntVar(&progressEvery, "progress-every", 10, "Refresh the view every N generations")
	cmd.Flags().StringVar(&target, "target", "", "Target phrase for the phrase problem")
	cmd.Flags().StringVar(&poolPath, "pool", "", "Gene pool file for the palette problem (YAML or INI)")

	return cmd
}

// isTerminal checks if we're running in a terminal
func isTerminal() bool {
	fileInfo, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}
