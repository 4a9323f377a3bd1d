//go:build !integration

package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runsift/runsift/pkg/sliceutil"
	"github.com/runsift/runsift/pkg/testutil"
)

// writeRunLog creates baseDir/<id>/log.txt with the given content.
func writeRunLog(t *testing.T, baseDir, id string, content []byte) {
	t.Helper()
	dir := filepath.Join(baseDir, id)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "log.txt"), content, 0644))
}

func TestCollectRuns(t *testing.T) {
	baseDir := testutil.TempDir(t, "runsift-test-*")

	writeRunLog(t, baseDir, "10", []byte("run ten"))
	writeRunLog(t, baseDir, "2", []byte("run two"))
	writeRunLog(t, baseDir, "1", []byte("run one"))
	writeRunLog(t, baseDir, "alpha", []byte("run alpha"))

	// Subdirectory without a log file: skipped, not counted
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "99"), 0755))

	// Stray file at the top level: not a run
	require.NoError(t, os.WriteFile(filepath.Join(baseDir, "notes.txt"), []byte("x"), 0644))

	runs, err := CollectRuns(baseDir)
	require.NoError(t, err)

	ids := sliceutil.Map(runs, func(r Run) string { return r.ID })
	assert.Equal(t, []string{"1", "2", "10", "alpha"}, ids)

	for _, run := range runs {
		assert.NoError(t, run.ReadErr)
		assert.NotEmpty(t, run.LogText)
	}
}

func TestCollectRunsInvalidUTF8(t *testing.T) {
	baseDir := testutil.TempDir(t, "runsift-test-*")
	writeRunLog(t, baseDir, "1", []byte{0xff, 0xfe, 0x00, 0x80})

	runs, err := CollectRuns(baseDir)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Error(t, runs[0].ReadErr)
	assert.Empty(t, runs[0].LogText)
}

func TestCollectRunsMissingBaseDir(t *testing.T) {
	_, err := CollectRuns(filepath.Join(testutil.TempDir(t, "runsift-test-*"), "missing"))
	assert.Error(t, err)
}

func TestCollectRunsLogIsDirectory(t *testing.T) {
	baseDir := testutil.TempDir(t, "runsift-test-*")
	require.NoError(t, os.MkdirAll(filepath.Join(baseDir, "1", "log.txt"), 0755))

	runs, err := CollectRuns(baseDir)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestSortRunIDs(t *testing.T) {
	tests := []struct {
		name     string
		ids      []string
		expected []string
	}{
		{
			name:     "numeric ordering",
			ids:      []string{"10", "9", "100", "1"},
			expected: []string{"1", "9", "10", "100"},
		},
		{
			name:     "non-numeric ids keep their order after numeric ones",
			ids:      []string{"beta", "2", "alpha", "1"},
			expected: []string{"1", "2", "beta", "alpha"},
		},
		{
			name:     "empty",
			ids:      nil,
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := append([]string(nil), tt.ids...)
			sortRunIDs(ids)
			assert.Equal(t, tt.expected, ids)
		})
	}
}
