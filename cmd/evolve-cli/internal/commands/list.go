package commands

import (
	"fmt"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/display"
	"github.com/spf13/cobra"
)

func NewListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all built-in search problems",
		Long: `Display the built-in search problems this CLI can run, with their
search-space shape, difficulty, and typical convergence behavior.

This command helps you discover what is available before reaching for
'evolve-cli try'.`,
		Example: `  # List all problems
  evolve-cli list

  # Pipe to grep for filtering
  evolve-cli list | grep -i "low"`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(display.FormatProblemList())
		},
	}
}
