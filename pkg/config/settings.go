// Package config resolves suite settings from the process
// environment. Settings are plain values constructed once by the
// caller and passed into collaborators; there is no package-level
// singleton.
package config

import (
	"fmt"
	"time"

	"digital.vasic.storefront/pkg/env"
)

// Browser name constants.
const (
	BrowserChrome  = "chrome"
	BrowserFirefox = "firefox"
)

// Environment variable names read by Resolve.
const (
	EnvBaseURL             = "BASE_URL"
	EnvBrowser             = "BROWSER"
	EnvHeadless            = "HEADLESS"
	EnvCI                  = "CI"
	EnvWindowWidth         = "WINDOW_WIDTH"
	EnvWindowHeight        = "WINDOW_HEIGHT"
	EnvImplicitWait        = "IMPLICIT_WAIT"
	EnvExplicitWait        = "EXPLICIT_WAIT"
	EnvPageLoadTimeout     = "PAGE_LOAD_TIMEOUT"
	EnvScreenshotOnFailure = "SCREENSHOT_ON_FAILURE"
	EnvScreenshotDir       = "SCREENSHOT_DIR"
	EnvReportDir           = "REPORT_DIR"
	EnvDataDir             = "DATA_DIR"
	EnvDriverPath          = "DRIVER_PATH"
	EnvDriverPort          = "DRIVER_PORT"
	EnvMonitorAddr         = "MONITOR_ADDR"
	EnvVerbose             = "VERBOSE"
)

// Settings holds the resolved suite configuration. The struct is
// a value type; copies are cheap and mutation after Resolve is
// not expected.
type Settings struct {
	// BaseURL is the root URL of the storefront under test.
	BaseURL string

	// Browser is the browser name, one of the Browser*
	// constants.
	Browser string

	// Headless disables the browser UI. Forced on when CI is
	// set.
	Headless bool

	// WindowWidth and WindowHeight set the browser window size.
	WindowWidth  int
	WindowHeight int

	// ImplicitWait is the driver-side implicit wait applied to
	// every element lookup.
	ImplicitWait time.Duration

	// ExplicitWait is the default timeout for condition-based
	// waits in the page layer.
	ExplicitWait time.Duration

	// PageLoadTimeout bounds full page navigations.
	PageLoadTimeout time.Duration

	// ScreenshotOnFailure enables failure evidence capture.
	ScreenshotOnFailure bool

	// ScreenshotDir is where screenshots and failure bundles
	// are written.
	ScreenshotDir string

	// ReportDir is where HTML/JSON reports are written.
	ReportDir string

	// DataDir is the directory holding test data files.
	DataDir string

	// DriverPath is the path to the chromedriver/geckodriver
	// binary.
	DriverPath string

	// DriverPort is the local port the driver service listens
	// on.
	DriverPort int

	// MonitorAddr is the listen address for the live monitor.
	// Empty disables the monitor.
	MonitorAddr string

	// Verbose enables debug logging.
	Verbose bool
}

// Resolve builds Settings from the given environment loader.
// Every field has a default; Resolve never fails.
func Resolve(loader env.Loader) Settings {
	s := Settings{
		BaseURL:             loader.GetWithDefault(EnvBaseURL, "https://www.saucedemo.com"),
		Browser:             loader.GetWithDefault(EnvBrowser, BrowserChrome),
		Headless:            loader.GetBool(EnvHeadless, false),
		WindowWidth:         loader.GetInt(EnvWindowWidth, 1920),
		WindowHeight:        loader.GetInt(EnvWindowHeight, 1080),
		ImplicitWait:        loader.GetDuration(EnvImplicitWait, 0),
		ExplicitWait:        loader.GetDuration(EnvExplicitWait, 10*time.Second),
		PageLoadTimeout:     loader.GetDuration(EnvPageLoadTimeout, 30*time.Second),
		ScreenshotOnFailure: loader.GetBool(EnvScreenshotOnFailure, true),
		ScreenshotDir:       loader.GetWithDefault(EnvScreenshotDir, "reports/screenshots"),
		ReportDir:           loader.GetWithDefault(EnvReportDir, "reports"),
		DataDir:             loader.GetWithDefault(EnvDataDir, "testdata"),
		DriverPath:          loader.Get(EnvDriverPath),
		DriverPort:          loader.GetInt(EnvDriverPort, 4444),
		MonitorAddr:         loader.Get(EnvMonitorAddr),
		Verbose:             loader.GetBool(EnvVerbose, false),
	}

	// CI runs have no display; headless is not optional there.
	if loader.GetBool(EnvCI, false) {
		s.Headless = true
	}

	return s
}

// Validate checks that the settings are usable.
func (s Settings) Validate() error {
	switch s.Browser {
	case BrowserChrome, BrowserFirefox:
	default:
		return fmt.Errorf(
			"unsupported browser %q (expected %s or %s)",
			s.Browser, BrowserChrome, BrowserFirefox,
		)
	}
	if s.BaseURL == "" {
		return fmt.Errorf("base URL must not be empty")
	}
	if s.ExplicitWait <= 0 {
		return fmt.Errorf("explicit wait must be positive, got %v", s.ExplicitWait)
	}
	return nil
}
