package commands

import (
	"fmt"
	"runtime"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/evolve-go/pkg/evolve"
)

// Build metadata, overridden through -ldflags at release time.
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
)

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version and default engine settings",
		Run: func(cmd *cobra.Command, args []string) {
			title := color.New(color.Bold, color.FgCyan)
			label := color.New(color.FgGreen)

			title.Println("evolve-cli")
			fmt.Printf("%s %s (commit %s, %s)\n",
				label.Sprint("version:"), Version, GitCommit, runtime.Version())

			engineDefaults := evolve.DefaultConfig()
			runDefaults := evolve.DefaultRunOptions()
			fmt.Printf("%s min_swaps=%d max_swaps=%d max_attempts=%d\n",
				label.Sprint("engine defaults:"),
				engineDefaults.MinSwaps, engineDefaults.MaxSwaps, engineDefaults.MaxAttempts)
			fmt.Printf("%s generations=%d n_best=%d n_children=%d\n",
				label.Sprint("run defaults:"),
				runDefaults.Generations, runDefaults.NBest, runDefaults.NChildren)
		},
	}
}
