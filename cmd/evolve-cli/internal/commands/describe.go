package commands

import (
	"fmt"
	"strings"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/display"
	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/problems"
	"github.com/spf13/cobra"
)

func NewDescribeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "describe <problem>",
		Short: "Get detailed information about a built-in problem",
		Long: `Display details about a built-in search problem including:
- What the genes and alleles represent
- How fitness is scored
- Expected convergence behavior
- A quick start command

This helps you pick a problem before running a search.`,
		Example: `  # Describe the eight queens problem
  evolve-cli describe queens

  # Describe the phrase problem (case insensitive)
  evolve-cli describe PHRASE`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			return problems.ListAll(), cobra.ShellCompDirectiveNoFileComp
		},
		Run: func(cmd *cobra.Command, args []string) {
			problemName := strings.ToLower(args[0])

			info, err := problems.Get(problemName)
			if err != nil {
				fmt.Printf("Error: %s\n\n", err)
				fmt.Println("Available problems:")
				for _, name := range problems.ListAll() {
					fmt.Printf("  - %s\n", name)
				}
				return
			}

			fmt.Print(display.FormatProblemDetails(problemName, info))
		},
	}
}
