package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// HistoryEntry is one suite run in the historical log.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	RunID     string    `json:"run_id"`
	Browser   string    `json:"browser"`
	Total     int       `json:"total"`
	Passed    int       `json:"passed"`
	Failed    int       `json:"failed"`
	Skipped   int       `json:"skipped"`
	Duration  string    `json:"duration"`
	PassRate  float64   `json:"pass_rate"`
}

// AppendToHistory adds the run to the log at historyPath. Each
// entry is a single JSON line, so the log can be tailed and
// diffed across runs.
func AppendToHistory(historyPath string, data Data) error {
	entry := HistoryEntry{
		Timestamp: data.Generated,
		RunID:     data.Summary.RunID,
		Browser:   data.Browser,
		Total:     data.Summary.Total,
		Passed:    data.Summary.Passed,
		Failed:    data.Summary.Failed,
		Skipped:   data.Summary.Skipped,
		Duration:  data.Summary.Duration.String(),
		PassRate:  data.Summary.PassRate,
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("%w: marshal history entry: %v", ErrReportWrite, err)
	}

	file, err := os.OpenFile(
		historyPath,
		os.O_CREATE|os.O_APPEND|os.O_WRONLY,
		0644,
	)
	if err != nil {
		return fmt.Errorf("%w: open history %s: %v", ErrReportWrite, historyPath, err)
	}
	defer file.Close()

	if _, err := file.Write(append(line, '\n')); err != nil {
		return fmt.Errorf("%w: append history %s: %v", ErrReportWrite, historyPath, err)
	}
	return nil
}

// LoadHistory reads all entries from the log at historyPath. A
// missing file yields an empty history.
func LoadHistory(historyPath string) ([]HistoryEntry, error) {
	data, err := os.ReadFile(historyPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read history %s: %v", ErrReportWrite, historyPath, err)
	}

	var entries []HistoryEntry
	decoder := json.NewDecoder(bytes.NewReader(data))
	for decoder.More() {
		var entry HistoryEntry
		if err := decoder.Decode(&entry); err != nil {
			return entries, fmt.Errorf("%w: parse history %s: %v",
				ErrReportWrite, historyPath, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
