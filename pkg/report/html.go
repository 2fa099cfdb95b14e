package report

import (
	"encoding/base64"
	"fmt"
	"html"
	"io"
	"os"
	"strings"
	"time"

	"digital.vasic.storefront/pkg/run"
)

// HTMLReporter renders a run as a single self-contained HTML
// page. Failure screenshots are inlined as data URIs so the
// file can be attached to CI artifacts on its own.
type HTMLReporter struct {
	title string
}

// NewHTMLReporter creates an HTML reporter. An empty title
// falls back to "Storefront Test Report".
func NewHTMLReporter(title string) *HTMLReporter {
	if title == "" {
		title = "Storefront Test Report"
	}
	return &HTMLReporter{title: title}
}

// Extension returns "html".
func (r *HTMLReporter) Extension() string {
	return "html"
}

// WriteReport renders the report to w.
func (r *HTMLReporter) WriteReport(w io.Writer, data Data) error {
	r.writeHeader(w)

	fmt.Fprintf(w, "<h1>%s</h1>\n", html.EscapeString(r.title))
	fmt.Fprintf(
		w,
		"<p class=\"meta\">Run %s &middot; %s on %s &middot; generated %s</p>\n",
		html.EscapeString(data.Summary.RunID),
		html.EscapeString(data.Browser),
		html.EscapeString(data.BaseURL),
		data.Generated.Format(time.RFC3339),
	)

	r.writeSummaryCards(w, data.Summary)
	r.writePassRateBar(w, data.Summary)
	r.writeResults(w, data.Results)

	r.writeFooter(w)
	return nil
}

func (r *HTMLReporter) writeSummaryCards(w io.Writer, summary run.Summary) {
	fmt.Fprintln(w, "<div class=\"cards\">")
	cards := []struct {
		label string
		value string
		class string
	}{
		{label: "Total", value: fmt.Sprintf("%d", summary.Total), class: ""},
		{label: "Passed", value: fmt.Sprintf("%d", summary.Passed), class: "passed"},
		{label: "Failed", value: fmt.Sprintf("%d", summary.Failed), class: "failed"},
		{label: "Skipped", value: fmt.Sprintf("%d", summary.Skipped), class: "skipped"},
		{label: "Duration", value: summary.Duration.Round(time.Millisecond).String(), class: ""},
	}
	for _, card := range cards {
		fmt.Fprintf(
			w,
			"<div class=\"card %s\"><span class=\"value\">%s</span>"+
				"<span class=\"label\">%s</span></div>\n",
			card.class, card.value, card.label,
		)
	}
	fmt.Fprintln(w, "</div>")
}

func (r *HTMLReporter) writePassRateBar(w io.Writer, summary run.Summary) {
	fmt.Fprintf(
		w,
		"<div class=\"rate\"><div class=\"rate-fill\" style=\"width:%.1f%%\">"+
			"</div><span>%.1f%% passed</span></div>\n",
		summary.PassRate, summary.PassRate,
	)
}

func (r *HTMLReporter) writeResults(w io.Writer, results []run.Result) {
	fmt.Fprintln(w, "<h2>Tests</h2>")
	if len(results) == 0 {
		fmt.Fprintln(w, "<p>No tests were recorded.</p>")
		return
	}

	for _, result := range results {
		r.writeResult(w, result)
	}
}

func (r *HTMLReporter) writeResult(w io.Writer, result run.Result) {
	open := ""
	if result.Status == run.StatusFailed {
		// Failed tests start expanded.
		open = " open"
	}

	fmt.Fprintf(w, "<details class=\"test %s\"%s>\n",
		statusClass(result.Status), open)
	fmt.Fprintf(
		w,
		"<summary><span class=\"badge\">%s</span> %s "+
			"<span class=\"duration\">%v</span></summary>\n",
		strings.ToUpper(result.Status),
		html.EscapeString(result.Test),
		result.Duration.Round(time.Millisecond),
	)

	if result.Suite != "" {
		fmt.Fprintf(w, "<p><strong>Suite:</strong> %s</p>\n",
			html.EscapeString(result.Suite))
	}
	if result.Error != "" {
		fmt.Fprintf(w, "<pre class=\"error\">%s</pre>\n",
			html.EscapeString(result.Error))
	}
	r.writeScreenshot(w, result.ScreenshotPath)

	fmt.Fprintln(w, "</details>")
}

// writeScreenshot inlines the failure screenshot as a data URI,
// degrading to a placeholder note when the file cannot be read.
func (r *HTMLReporter) writeScreenshot(w io.Writer, path string) {
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(
			w,
			"<p class=\"missing\">Screenshot unavailable: %s</p>\n",
			html.EscapeString(path),
		)
		return
	}

	fmt.Fprintf(
		w,
		"<img class=\"screenshot\" alt=\"failure screenshot\" "+
			"src=\"data:image/png;base64,%s\">\n",
		base64.StdEncoding.EncodeToString(data),
	)
}

func statusClass(status string) string {
	switch status {
	case run.StatusPassed:
		return "passed"
	case run.StatusFailed:
		return "failed"
	default:
		return "skipped"
	}
}

func (r *HTMLReporter) writeHeader(w io.Writer) {
	fmt.Fprintf(w, `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
body {
  font-family: -apple-system, BlinkMacSystemFont,
    "Segoe UI", Roboto, sans-serif;
  max-width: 960px;
  margin: 0 auto;
  padding: 20px;
  color: #333;
  background: #f9f9f9;
}
.meta { color: #777; }
.cards { display: flex; gap: 12px; flex-wrap: wrap; }
.card {
  background: #fff;
  border: 1px solid #ddd;
  border-radius: 6px;
  padding: 12px 20px;
  min-width: 90px;
  text-align: center;
}
.card .value { display: block; font-size: 1.6em; font-weight: 600; }
.card .label { color: #777; font-size: 0.85em; }
.card.passed .value { color: #2e7d32; }
.card.failed .value { color: #c62828; }
.card.skipped .value { color: #f9a825; }
.rate {
  position: relative;
  height: 22px;
  margin: 16px 0;
  background: #e0e0e0;
  border-radius: 11px;
  overflow: hidden;
}
.rate-fill { height: 100%%; background: #2e7d32; }
.rate span {
  position: absolute;
  inset: 0;
  text-align: center;
  line-height: 22px;
  font-size: 0.85em;
  color: #fff;
  mix-blend-mode: difference;
}
.test {
  background: #fff;
  border: 1px solid #ddd;
  border-radius: 6px;
  margin: 8px 0;
  padding: 8px 14px;
}
.test summary { cursor: pointer; }
.test .badge {
  display: inline-block;
  min-width: 70px;
  text-align: center;
  border-radius: 4px;
  font-size: 0.75em;
  font-weight: 600;
  padding: 2px 6px;
  color: #fff;
}
.test.passed .badge { background: #2e7d32; }
.test.failed .badge { background: #c62828; }
.test.skipped .badge { background: #f9a825; }
.test .duration { float: right; color: #777; font-size: 0.85em; }
.error {
  background: #fdecea;
  border-left: 3px solid #c62828;
  padding: 8px;
  white-space: pre-wrap;
}
.missing { color: #777; font-style: italic; }
.screenshot { max-width: 100%%; border: 1px solid #ddd; }
footer { margin-top: 24px; color: #777; font-size: 0.8em; }
</style>
</head>
<body>
`, html.EscapeString(r.title))
}

func (r *HTMLReporter) writeFooter(w io.Writer) {
	fmt.Fprintln(w, "<footer>Generated by the storefront suite.</footer>")
	fmt.Fprintln(w, "</body>")
	fmt.Fprintln(w, "</html>")
}
