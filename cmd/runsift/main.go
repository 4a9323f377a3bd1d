package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runsift/runsift/pkg/cli"
	"github.com/runsift/runsift/pkg/console"
	"github.com/runsift/runsift/pkg/constants"
)

// Build-time variable set by GoReleaser
var version = "dev"

var rootCmd = &cobra.Command{
	Use:     constants.CLIBinaryName,
	Short:   "Triage agent run logs into outcome categories",
	Version: version,
	Long: `Triage agent run logs into outcome categories.

runsift scans a directory of per-run log files produced by a tool-calling
agent, assigns each run exactly one outcome category, and prints aggregate
counts, percentages, and run identifier lists.

Common Tasks:
  runsift analyze output/result/251022_185914          # Print the report
  runsift analyze output/result/251022_185914 --json   # Report as JSON

For detailed help on any command, use:
  runsift [command] --help`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	rootCmd.SilenceUsage = true
	rootCmd.SetVersionTemplate(fmt.Sprintf("%s version {{.Version}}\n", constants.CLIBinaryName))
	rootCmd.AddCommand(cli.NewAnalyzeCommand())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(err.Error()))
		os.Exit(1)
	}
}
