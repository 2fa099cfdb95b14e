// Package report renders suite run results as self-contained
// HTML and JSON documents, and appends each run to a JSON-lines
// history log.
package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"digital.vasic.storefront/pkg/run"
)

// ErrReportWrite wraps every report output failure.
var ErrReportWrite = errors.New("report write failed")

// Data is the fully prepared input for a reporter: the run
// summary plus its individual results.
type Data struct {
	Summary   run.Summary  `json:"summary"`
	Results   []run.Result `json:"results"`
	Generated time.Time    `json:"generated"`

	// Browser and BaseURL describe the environment the run
	// executed against.
	Browser string `json:"browser"`
	BaseURL string `json:"base_url"`
}

// Prepare assembles the report input from a recorder.
func Prepare(recorder *run.Recorder, browser, baseURL string) Data {
	return Data{
		Summary:   recorder.Summary(),
		Results:   recorder.Results(),
		Generated: time.Now(),
		Browser:   browser,
		BaseURL:   baseURL,
	}
}

// Reporter renders run data into one output format.
type Reporter interface {
	// WriteReport writes the rendered report to w.
	WriteReport(w io.Writer, data Data) error

	// Extension is the file extension of this format, without
	// the dot.
	Extension() string
}

// Save renders the data with each reporter into dir, one file
// per format, named test-report_<timestamp>.<ext>. It returns
// the written paths.
func Save(dir string, data Data, reporters ...Reporter) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create %s: %v", ErrReportWrite, dir, err)
	}

	stamp := data.Generated.Format("20060102_150405")
	var paths []string
	for _, reporter := range reporters {
		path := filepath.Join(dir,
			fmt.Sprintf("test-report_%s.%s", stamp, reporter.Extension()))

		f, err := os.Create(path)
		if err != nil {
			return paths, fmt.Errorf("%w: create %s: %v", ErrReportWrite, path, err)
		}
		if err := reporter.WriteReport(f, data); err != nil {
			f.Close()
			return paths, fmt.Errorf("%w: render %s: %v", ErrReportWrite, path, err)
		}
		if err := f.Close(); err != nil {
			return paths, fmt.Errorf("%w: close %s: %v", ErrReportWrite, path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
