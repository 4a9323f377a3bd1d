// This file provides command-line interface functionality for runsift.
// This file (run_source.go) contains run discovery: locating per-run log
// files under a base directory and reading their text.
//
// Key responsibilities:
//   - Enumerating immediate subdirectories of the base directory
//   - Reading each run's log.txt, tolerating per-run failures
//   - Ordering runs numerically by identifier

package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"unicode/utf8"

	"github.com/runsift/runsift/pkg/constants"
	"github.com/runsift/runsift/pkg/logger"
)

var runSourceLog = logger.New("cli:run_source")

// Run is one evaluated episode of the agent under test: a subdirectory of
// the base directory holding a log file.
type Run struct {
	// ID is the subdirectory name, ideally numeric.
	ID string
	// LogText is the raw UTF-8 log text. Empty when ReadErr is set.
	LogText string
	// ReadErr is set when the log file exists but could not be read or is
	// not valid UTF-8. Such runs still count toward totals.
	ReadErr error
}

// CollectRuns enumerates the immediate subdirectories of baseDir and reads
// each run's log file. Subdirectories without a log file are skipped and do
// not count toward totals. A per-run read failure is recorded on the Run
// rather than aborting the scan.
//
// Runs are returned ordered numerically by identifier; non-numeric
// identifiers sort after all numeric ones, keeping directory order.
func CollectRuns(baseDir string) ([]Run, error) {
	runSourceLog.Printf("Collecting runs from: %s", baseDir)

	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read base directory %s: %w", baseDir, err)
	}

	var ids []string
	for _, entry := range entries {
		if entry.IsDir() {
			ids = append(ids, entry.Name())
		}
	}
	sortRunIDs(ids)

	var runs []Run
	for _, id := range ids {
		logPath := filepath.Join(baseDir, id, constants.RunLogFileName)
		if stat, err := os.Stat(logPath); err != nil || stat.IsDir() {
			runSourceLog.Printf("Skipping run %s: no %s", id, constants.RunLogFileName)
			continue
		}
		runs = append(runs, readRun(id, logPath))
	}

	runSourceLog.Printf("Collected %d runs from %d subdirectories", len(runs), len(ids))
	return runs, nil
}

// readRun reads one run's log file, folding read and decode failures into
// Run.ReadErr.
func readRun(id, logPath string) Run {
	data, err := os.ReadFile(logPath)
	if err != nil {
		runSourceLog.Printf("Failed to read %s: %v", logPath, err)
		return Run{ID: id, ReadErr: err}
	}
	if !utf8.Valid(data) {
		runSourceLog.Printf("Log is not valid UTF-8: %s", logPath)
		return Run{ID: id, ReadErr: fmt.Errorf("log file %s is not valid UTF-8", logPath)}
	}
	return Run{ID: id, LogText: string(data)}
}

// sortRunIDs orders identifiers numerically when they parse as integers.
// Non-numeric identifiers keep their relative order after all numeric ones.
func sortRunIDs(ids []string) {
	sort.SliceStable(ids, func(i, j int) bool {
		a, aok := runIDKey(ids[i])
		b, bok := runIDKey(ids[j])
		if aok != bok {
			return aok
		}
		if !aok {
			return false
		}
		return a < b
	})
}

func runIDKey(id string) (int, bool) {
	n, err := strconv.Atoi(id)
	return n, err == nil
}
