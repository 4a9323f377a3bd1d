//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsift/runsift/pkg/testutil"
	"github.com/runsift/runsift/pkg/triage"
)

const trulyCorrectLog = `step 1: planning
--- google模型回答 ---
calling the population tool
functionCall: query_population
--- google模型回答 ---
summarizing results
--- 最终答复 ---
男性有23人，女性有23人
`

const malformedLog = `step 1: planning
MALFORMED_FUNCTION_CALL
`

func TestAnalyzeDirectoryEndToEnd(t *testing.T) {
	baseDir := testutil.TempDir(t, "runsift-test-*")

	writeRunLog(t, baseDir, "1", []byte(trulyCorrectLog))
	writeRunLog(t, baseDir, "2", []byte(malformedLog))
	writeRunLog(t, baseDir, "4", []byte{0xff, 0xfe}) // unreadable: not UTF-8

	// Run 3 has no log file and must not appear anywhere in the report.
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "3"), 0755))

	runs, err := CollectRuns(baseDir)
	require.NoError(t, err)
	require.Len(t, runs, 3)

	outcomes := make([]RunOutcome, 0, len(runs))
	for _, run := range runs {
		outcomes = append(outcomes, classifyRun(run))
	}

	data := buildReportData(outcomes)
	assert.Equal(t, 3, data.TotalProcessed)

	counts := map[string][]string{}
	for _, block := range data.Categories {
		counts[block.Category] = block.RunIDs
	}
	assert.Equal(t, []string{"1"}, counts["truly_correct"])
	assert.Equal(t, []string{"2"}, counts["malformed_call"])
	assert.Equal(t, []string{"4"}, counts["missing_function_call_info"])

	// The skipped run never shows up in any bucket.
	for _, ids := range counts {
		assert.NotContains(t, ids, "3")
	}

	// The unreadable run is distinguishable through its diagnostic.
	require.Len(t, data.Diagnostics, 1)
	assert.Contains(t, data.Diagnostics[0], "run 4:")
}

func TestClassifyRun(t *testing.T) {
	outcome := classifyRun(Run{ID: "7", LogText: trulyCorrectLog})
	assert.Equal(t, triage.TrulyCorrect, outcome.Category)
	assert.Empty(t, outcome.Note)

	outcome = classifyRun(Run{ID: "8", ReadErr: os.ErrPermission})
	assert.Equal(t, triage.MissingFunctionCallInfo, outcome.Category)
	assert.Equal(t, os.ErrPermission.Error(), outcome.Note)
}

func TestRunAnalyzeInvalidDirectory(t *testing.T) {
	// Missing and non-directory paths report an error message and return nil.
	assert.NoError(t, runAnalyze(filepath.Join(testutil.TempDir(t, "runsift-test-*"), "missing"), false, false))

	file := filepath.Join(testutil.TempDir(t, "runsift-test-*"), "plain.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))
	assert.NoError(t, runAnalyze(file, false, false))
}

func TestRunAnalyzeEmptyDirectory(t *testing.T) {
	assert.NoError(t, runAnalyze(testutil.TempDir(t, "runsift-test-*"), false, false))
}

func TestNewAnalyzeCommand(t *testing.T) {
	cmd := NewAnalyzeCommand()
	assert.Equal(t, "analyze <dir>", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("json"))
	assert.NotNil(t, cmd.Flags().Lookup("verbose"))

	// Exactly one positional argument is required.
	assert.Error(t, cmd.Args(cmd, []string{}))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
	assert.NoError(t, cmd.Args(cmd, []string{"a"}))
}
