// Package suite wires the full test stack together: settings
// resolution, logging, the browser session, page objects,
// failure evidence, result recording and report generation.
// Browser test suites embed BrowserSuite and get all of it.
package suite

import (
	"context"
	"os"
	"path/filepath"
	"time"

	testsuite "github.com/stretchr/testify/suite"
	"github.com/tebeka/selenium"

	"digital.vasic.storefront/pkg/config"
	"digital.vasic.storefront/pkg/driver"
	"digital.vasic.storefront/pkg/env"
	"digital.vasic.storefront/pkg/evidence"
	"digital.vasic.storefront/pkg/logging"
	"digital.vasic.storefront/pkg/monitor"
	"digital.vasic.storefront/pkg/page"
	"digital.vasic.storefront/pkg/report"
	"digital.vasic.storefront/pkg/run"
	"digital.vasic.storefront/pkg/sitecheck"
	"digital.vasic.storefront/pkg/testdata"
)

// siteProbeTimeout bounds the reachability check before the
// first test runs.
const siteProbeTimeout = 30 * time.Second

// BrowserSuite is the shared base for browser-driven suites.
// SetupSuite resolves settings and probes the site once;
// SetupTest opens a fresh browser session per test so tests
// never share state.
type BrowserSuite struct {
	testsuite.Suite

	// Name labels the suite in results and reports.
	Name string

	Settings config.Settings
	Logger   logging.Logger
	Recorder *run.Recorder
	Events   *monitor.EventCollector

	manager   *driver.Manager
	browser   selenium.WebDriver
	base      *page.Base
	testStart time.Time

	monitorStop context.CancelFunc
	closeLogger func()
}

// SetupSuite resolves configuration, starts logging and checks
// that the target site answers.
func (s *BrowserSuite) SetupSuite() {
	loader := env.NewLoader()
	// A missing .env file is fine; the process environment
	// still applies.
	if _, err := os.Stat(".env"); err == nil {
		s.Require().NoError(loader.Load(".env"))
	}

	s.Settings = config.Resolve(loader)
	s.Require().NoError(s.Settings.Validate())

	s.Logger = s.buildLogger()
	s.Recorder = run.NewRecorder(run.WithLogger(s.Logger))
	s.Events = monitor.NewEventCollector()

	if s.Settings.MonitorAddr != "" {
		s.startMonitor()
	}

	ctx, cancel := context.WithTimeout(context.Background(), siteProbeTimeout)
	defer cancel()
	checker := sitecheck.NewChecker(sitecheck.WithLogger(s.Logger))
	s.Require().NoError(
		checker.Wait(ctx, s.Settings.BaseURL, 2*time.Second),
		"target site %s is unreachable", s.Settings.BaseURL,
	)
}

func (s *BrowserSuite) buildLogger() logging.Logger {
	console := logging.NewConsoleLogger(s.Settings.Verbose)

	logsDir := filepath.Join(s.Settings.ReportDir, "logs")
	jsonLogger, err := logging.SetupLogging(logsDir, s.Settings.Verbose)
	if err != nil {
		// File logging is not worth failing the run over.
		console.Warn("file logging disabled", logging.ErrorField(err))
		s.closeLogger = func() {}
		return logging.NewRedactingLogger(console)
	}

	s.closeLogger = func() { jsonLogger.Close() }
	return logging.NewRedactingLogger(
		logging.NewMultiLogger(console, jsonLogger),
	)
}

func (s *BrowserSuite) startMonitor() {
	dashboard := monitor.NewDashboard(s.Recorder.RunID())
	server := monitor.NewServer(
		s.Settings.MonitorAddr,
		s.Events,
		dashboard,
		monitor.WithServerLogger(s.Logger),
	)

	ctx, cancel := context.WithCancel(context.Background())
	s.monitorStop = cancel
	go func() {
		if err := server.Start(ctx); err != nil {
			s.Logger.Warn("monitor stopped", logging.ErrorField(err))
		}
	}()
}

// SetupTest opens a fresh browser session and navigates to the
// login page.
func (s *BrowserSuite) SetupTest() {
	s.testStart = time.Now()
	s.Events.EmitStarted(s.Name, s.T().Name())

	s.manager = driver.NewManager(s.Settings, driver.WithLogger(s.Logger))
	browser, err := s.manager.Create()
	s.Require().NoError(err, "browser session")
	s.browser = browser

	s.manager.SetEvidence(evidence.NewCapturer(
		browser,
		s.Settings.ScreenshotDir,
		evidence.WithLogger(s.Logger),
		evidence.WithBrowserName(s.Settings.Browser),
	))

	s.base = page.NewBase(browser,
		page.WithLogger(s.Logger),
		page.WithTimeout(s.Settings.ExplicitWait),
	)

	s.Require().NoError(s.LoginPage().Open(), "open login page")
}

// TearDownTest records the result, captures evidence on
// failure and closes the session.
func (s *BrowserSuite) TearDownTest() {
	name := s.T().Name()
	duration := time.Since(s.testStart)

	result := run.Result{
		Suite:     s.Name,
		Test:      name,
		Status:    run.StatusPassed,
		StartTime: s.testStart,
		Duration:  duration,
	}

	switch {
	case s.T().Skipped():
		result.Status = run.StatusSkipped
		s.Events.Emit(monitor.TestEvent{
			Type: monitor.EventSkipped, Suite: s.Name, Test: name,
		})
	case s.T().Failed():
		result.Status = run.StatusFailed
		if s.manager != nil {
			result.ScreenshotPath = s.manager.CaptureFailureEvidence(name)
		}
		s.Events.EmitFailed(s.Name, name, "assertion failed")
		if result.ScreenshotPath != "" {
			s.Events.EmitScreenshot(s.Name, name, result.ScreenshotPath)
		}
	default:
		s.Events.EmitPassed(s.Name, name, duration)
	}

	s.Recorder.Record(result)
	if s.manager != nil {
		s.manager.Close()
	}
}

// TearDownSuite writes the reports and the run history entry.
func (s *BrowserSuite) TearDownSuite() {
	data := report.Prepare(s.Recorder, s.Settings.Browser, s.Settings.BaseURL)

	paths, err := report.Save(s.Settings.ReportDir, data,
		report.NewHTMLReporter(""),
		report.NewJSONReporter(true),
	)
	if err != nil {
		s.Logger.Error("write reports", logging.ErrorField(err))
	}
	for _, path := range paths {
		s.Logger.Info("report written", logging.StringField("path", path))
	}

	history := filepath.Join(s.Settings.ReportDir, "run_history.jsonl")
	if err := report.AppendToHistory(history, data); err != nil {
		s.Logger.Error("append run history", logging.ErrorField(err))
	}

	if s.monitorStop != nil {
		s.monitorStop()
	}
	if s.closeLogger != nil {
		s.closeLogger()
	}
}

// Browser returns the live session for direct driver calls.
func (s *BrowserSuite) Browser() selenium.WebDriver {
	return s.browser
}

// Base returns the shared page primitives bound to the live
// session.
func (s *BrowserSuite) Base() *page.Base {
	return s.base
}

// LoginPage returns a login page object for the live session.
func (s *BrowserSuite) LoginPage() *page.LoginPage {
	return page.NewLoginPage(s.base, s.Settings.BaseURL)
}

// ProductsPage returns a products page object for the live
// session.
func (s *BrowserSuite) ProductsPage() *page.ProductsPage {
	return page.NewProductsPage(s.base, s.Settings.BaseURL)
}

// CartPage returns a cart page object for the live session.
func (s *BrowserSuite) CartPage(opts ...page.CartOption) *page.CartPage {
	return page.NewCartPage(s.base, s.Settings.BaseURL, opts...)
}

// Login signs in and waits for the inventory page.
func (s *BrowserSuite) Login(username, password string) {
	s.Require().NoError(s.LoginPage().Login(username, password))
	ok, err := s.ProductsPage().IsCurrent()
	s.Require().NoError(err)
	s.Require().True(ok, "inventory page after login")
}

// LoadUsers reads the credential rows from the configured data
// directory and fails the suite when the file is invalid.
func (s *BrowserSuite) LoadUsers(name string) []testdata.UserCredentials {
	users, err := testdata.LoadUsers(filepath.Join(s.Settings.DataDir, name))
	s.Require().NoError(err)
	s.Require().Empty(testdata.ValidateUsers(users))
	return users
}

// LoadScenarios reads every shopping scenario from the
// configured data directory.
func (s *BrowserSuite) LoadScenarios(dir string) []testdata.ShoppingScenario {
	scenarios, err := testdata.LoadScenariosFromDir(
		filepath.Join(s.Settings.DataDir, dir))
	s.Require().NoError(err)
	s.Require().Empty(testdata.ValidateScenarios(scenarios))
	return scenarios
}
