package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendToHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_history.jsonl")

	require.NoError(t, AppendToHistory(path, sampleData()))

	second := sampleData()
	second.Summary.RunID = "run-43"
	require.NoError(t, AppendToHistory(path, second))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(raw), "\n"), "\n")
	assert.Len(t, lines, 2)

	entries, err := LoadHistory(path)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-42", entries[0].RunID)
	assert.Equal(t, "run-43", entries[1].RunID)
	assert.Equal(t, 3, entries[0].Total)
	assert.Equal(t, "5s", entries[0].Duration)
	assert.InDelta(t, 66.67, entries[0].PassRate, 0.01)
}

func TestLoadHistoryMissingFile(t *testing.T) {
	entries, err := LoadHistory(filepath.Join(t.TempDir(), "absent.jsonl"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestLoadHistoryCorruptLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run_history.jsonl")
	require.NoError(t, AppendToHistory(path, sampleData()))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("{truncated\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	entries, err := LoadHistory(path)
	require.ErrorIs(t, err, ErrReportWrite)
	// Entries before the corruption are still returned.
	assert.Len(t, entries, 1)
}
