// This file provides command-line interface functionality for runsift.
// This file (analyze_command.go) contains the CLI command definition for
// the analyze command.
//
// Key responsibilities:
//   - Defining the Cobra command structure and flags for runsift analyze
//   - Validating the base directory argument
//   - Delegating run collection, classification, and report rendering

package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/runsift/runsift/pkg/console"
	"github.com/runsift/runsift/pkg/constants"
	"github.com/runsift/runsift/pkg/logger"
	"github.com/runsift/runsift/pkg/triage"
)

var analyzeCommandLog = logger.New("cli:analyze_command")

// NewAnalyzeCommand creates the analyze command
func NewAnalyzeCommand() *cobra.Command {
	var jsonFlag bool
	var verboseFlag bool

	analyzeCmd := &cobra.Command{
		Use:   "analyze <dir>",
		Short: "Classify agent run logs and print an aggregate report",
		Long: `Scan a directory of agent run logs and classify each run's outcome.

The directory is expected to contain one subdirectory per run, each holding
a ` + constants.RunLogFileName + ` file. Each run is assigned exactly one outcome category by
inspecting marker substrings in its log text, and the aggregate counts,
percentages, and run identifier lists are printed as a report.

Subdirectories without a ` + constants.RunLogFileName + ` file are skipped and not counted. A run
whose log cannot be read still counts: it is routed to the fallback
category and reported as a diagnostic.

Examples:
  ` + constants.CLIBinaryName + ` analyze output/result/251022_185914
  ` + constants.CLIBinaryName + ` analyze output/result/251022_185914 --json
  ` + constants.CLIBinaryName + ` analyze output/result/251022_185914 -v`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(args[0], jsonFlag, verboseFlag)
		},
	}

	analyzeCmd.Flags().BoolVar(&jsonFlag, "json", false, "Output the report as JSON")
	analyzeCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print per-run classifications")

	return analyzeCmd
}

// runAnalyze executes one full analysis pass: collect runs, classify each
// one sequentially, then render the aggregate report.
func runAnalyze(baseDir string, jsonOutput, verbose bool) error {
	analyzeCommandLog.Printf("Starting analysis: dir=%s, json=%v", baseDir, jsonOutput)

	stat, err := os.Stat(baseDir)
	if err != nil || !stat.IsDir() {
		fmt.Fprintln(os.Stderr, console.FormatErrorMessage(fmt.Sprintf("Not a valid directory: '%s'", baseDir)))
		return nil
	}

	runs, err := CollectRuns(baseDir)
	if err != nil {
		return err
	}

	outcomes := make([]RunOutcome, 0, len(runs))
	for _, run := range runs {
		outcome := classifyRun(run)
		if outcome.Note != "" {
			fmt.Fprintln(os.Stderr, console.FormatWarningMessage(
				fmt.Sprintf("Failed to process run '%s': %s", outcome.RunID, outcome.Note)))
		}
		if verbose {
			fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
				fmt.Sprintf("run %s → %s", outcome.RunID, outcome.Category)))
		}
		outcomes = append(outcomes, outcome)
	}

	if len(outcomes) == 0 {
		fmt.Fprintln(os.Stderr, console.FormatInfoMessage(
			fmt.Sprintf("No subdirectories with %s found in '%s'", constants.RunLogFileName, baseDir)))
		return nil
	}

	data := buildReportData(outcomes)
	if jsonOutput {
		return renderReportJSON(data)
	}
	fmt.Print(renderReportConsole(data))
	return nil
}

// classifyRun assigns a category to one run. Unreadable runs fall into the
// fallback category with the failure kept as a diagnostic note so the two
// origins stay distinguishable.
func classifyRun(run Run) RunOutcome {
	if run.ReadErr != nil {
		return RunOutcome{
			RunID:    run.ID,
			Category: triage.MissingFunctionCallInfo,
			Note:     run.ReadErr.Error(),
		}
	}
	category, _ := triage.Classify(run.LogText)
	analyzeCommandLog.Printf("Classified run %s as %s", run.ID, category)
	return RunOutcome{RunID: run.ID, Category: category}
}
