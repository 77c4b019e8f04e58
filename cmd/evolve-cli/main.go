package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/XiaoConstantine/evolve-go/cmd/evolve-cli/internal/commands"
)

var rootCmd = &cobra.Command{
	Use:   "evolve-cli",
	Short: "Evolve-Go CLI for exploring gene pool searches",
	Long: `A command-line interface for the Evolve-Go engine that makes it easy to
explore evolutionary searches over discrete gene pools without writing
boilerplate code.

The CLI provides:
- Built-in sample problems for experimentation
- One-line runs with config file and flag layering
- A live terminal view of running searches
- Gene pool and configuration validation`,
	Version: commands.Version,
}

func main() {
	rootCmd.AddCommand(
		commands.NewListCommand(),
		commands.NewDescribeCommand(),
		commands.NewTryCommand(),
		commands.NewWatchCommand(),
		commands.NewValidateCommand(),
		commands.NewVersionCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
