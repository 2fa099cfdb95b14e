// Package evidence captures screenshots and failure bundles from
// a live browser session: a full-page image, and on failure also
// the page source and a metadata sidecar under timestamped
// filenames.
package evidence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"

	"digital.vasic.storefront/pkg/logging"
	"digital.vasic.storefront/pkg/page"
)

// timestampLayout is shared by all generated artifact names.
const timestampLayout = "20060102_150405"

// Bundle holds the paths of a complete failure evidence capture.
type Bundle struct {
	// CaptureID uniquely identifies this capture.
	CaptureID string `json:"capture_id"`

	// ScreenshotPath is the PNG screenshot file.
	ScreenshotPath string `json:"screenshot_path"`

	// PageSourcePath is the dumped page HTML.
	PageSourcePath string `json:"page_source_path"`

	// MetadataPath is the JSON sidecar with session metadata.
	MetadataPath string `json:"metadata_path"`
}

// Metadata is the JSON sidecar written alongside a failure
// bundle.
type Metadata struct {
	CaptureID string    `json:"capture_id"`
	TestName  string    `json:"test_name"`
	URL       string    `json:"url"`
	Title     string    `json:"title"`
	Browser   string    `json:"browser"`
	Platform  string    `json:"platform"`
	Timestamp time.Time `json:"timestamp"`
}

// Capturer writes evidence files for one browser session.
type Capturer struct {
	browser page.Browser
	dir     string
	name    string // browser name for metadata
	logger  logging.Logger
	now     func() time.Time
}

// CapturerOption configures a Capturer.
type CapturerOption func(*Capturer)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) CapturerOption {
	return func(c *Capturer) {
		c.logger = logger
	}
}

// WithBrowserName records the browser name in metadata sidecars.
func WithBrowserName(name string) CapturerOption {
	return func(c *Capturer) {
		c.name = name
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) CapturerOption {
	return func(c *Capturer) {
		c.now = now
	}
}

// NewCapturer creates a Capturer writing into dir. The directory
// is created on first use.
func NewCapturer(
	browser page.Browser,
	dir string,
	opts ...CapturerOption,
) *Capturer {
	c := &Capturer{
		browser: browser,
		dir:     dir,
		logger:  logging.NullLogger{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// sanitizeName replaces filename characters the common
// filesystems reject.
func sanitizeName(name string) string {
	replacer := strings.NewReplacer(
		"/", "-",
		"\\", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"\"", "-",
		"<", "-",
		">", "-",
		"|", "-",
		" ", "_",
	)
	return replacer.Replace(name)
}

func (c *Capturer) ensureDir() error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("create evidence dir %s: %w", c.dir, err)
	}
	return nil
}

// Capture takes a screenshot and writes it under a timestamped,
// sanitized filename. The optional step name is embedded in the
// filename when non-empty. Returns the written path.
func (c *Capturer) Capture(testName, step string) (string, error) {
	if err := c.ensureDir(); err != nil {
		return "", err
	}

	data, err := c.browser.Screenshot()
	if err != nil {
		return "", fmt.Errorf("take screenshot: %w", err)
	}

	name := sanitizeName(testName)
	if step != "" {
		name += "_" + sanitizeName(step)
	}
	path := filepath.Join(
		c.dir,
		fmt.Sprintf("%s_%s.png", name, c.now().Format(timestampLayout)),
	)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot %s: %w", path, err)
	}

	c.logger.Debug("screenshot captured",
		logging.StringField("path", path),
	)
	return path, nil
}

// CaptureFailureBundle writes the full evidence bundle for a
// failed test: screenshot, page source, and a metadata sidecar.
// Partial failures return the bundle written so far along with
// the error.
func (c *Capturer) CaptureFailureBundle(testName string) (Bundle, error) {
	bundle := Bundle{CaptureID: uuid.NewString()}

	if err := c.ensureDir(); err != nil {
		return bundle, err
	}

	ts := c.now().Format(timestampLayout)
	stem := filepath.Join(
		c.dir,
		fmt.Sprintf("%s_failure_%s", sanitizeName(testName), ts),
	)

	shot, err := c.browser.Screenshot()
	if err != nil {
		return bundle, fmt.Errorf("take screenshot: %w", err)
	}
	bundle.ScreenshotPath = stem + ".png"
	if err := os.WriteFile(bundle.ScreenshotPath, shot, 0o644); err != nil {
		return bundle, fmt.Errorf("write screenshot: %w", err)
	}

	source, err := c.browser.PageSource()
	if err != nil {
		return bundle, fmt.Errorf("read page source: %w", err)
	}
	bundle.PageSourcePath = stem + ".html"
	if err := os.WriteFile(bundle.PageSourcePath, []byte(source), 0o644); err != nil {
		return bundle, fmt.Errorf("write page source: %w", err)
	}

	meta := Metadata{
		CaptureID: bundle.CaptureID,
		TestName:  testName,
		Browser:   c.name,
		Platform:  runtime.GOOS,
		Timestamp: c.now(),
	}
	// URL and title are best-effort context.
	meta.URL, _ = c.browser.CurrentURL()
	meta.Title, _ = c.browser.Title()

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return bundle, fmt.Errorf("marshal metadata: %w", err)
	}
	bundle.MetadataPath = stem + ".json"
	if err := os.WriteFile(bundle.MetadataPath, data, 0o644); err != nil {
		return bundle, fmt.Errorf("write metadata: %w", err)
	}

	c.logger.Info("failure evidence captured",
		logging.StringField("test", testName),
		logging.StringField("screenshot", bundle.ScreenshotPath),
	)
	return bundle, nil
}
