// Package driver manages the lifecycle of a WebDriver session:
// starting the browser service, creating the remote session with
// the configured capabilities, and tearing both down.
package driver

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"github.com/tebeka/selenium/firefox"

	"digital.vasic.storefront/pkg/config"
	"digital.vasic.storefront/pkg/evidence"
	"digital.vasic.storefront/pkg/logging"
)

var (
	// ErrNotInitialized is returned when no session is live.
	ErrNotInitialized = errors.New("no live browser session")

	// ErrSessionLive is returned by Create when a session is
	// already running. Close the existing session first.
	ErrSessionLive = errors.New("browser session already live")
)

// EvidenceCapturer captures failure evidence for a session.
type EvidenceCapturer interface {
	CaptureFailureBundle(testName string) (evidence.Bundle, error)
}

// Manager owns at most one browser session at a time.
type Manager struct {
	mu       sync.Mutex
	settings config.Settings
	logger   logging.Logger
	evidence EvidenceCapturer

	service *selenium.Service
	driver  selenium.WebDriver

	// newService and newRemote are injection points for tests.
	newService func(settings config.Settings) (*selenium.Service, error)
	newRemote  func(settings config.Settings) (selenium.WebDriver, error)
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger.
func WithLogger(logger logging.Logger) ManagerOption {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithEvidence attaches a failure evidence capturer used by
// CaptureFailureEvidence.
func WithEvidence(capturer EvidenceCapturer) ManagerOption {
	return func(m *Manager) {
		m.evidence = capturer
	}
}

// NewManager creates a Manager for the given settings.
func NewManager(settings config.Settings, opts ...ManagerOption) *Manager {
	m := &Manager{
		settings: settings,
		logger:   logging.NullLogger{},
	}
	m.newService = startService
	m.newRemote = connectRemote
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateOption overrides resolved settings for one Create call.
type CreateOption func(*config.Settings)

// WithBrowser overrides the browser for this session.
func WithBrowser(browser string) CreateOption {
	return func(s *config.Settings) {
		s.Browser = browser
	}
}

// WithHeadless overrides headless mode for this session.
func WithHeadless(headless bool) CreateOption {
	return func(s *config.Settings) {
		s.Headless = headless
	}
}

// Create starts the driver service and opens a new remote
// session. It returns ErrSessionLive if a session is already
// running. The three timeout tiers from the settings are applied
// to the fresh session before it is returned.
func (m *Manager) Create(opts ...CreateOption) (selenium.WebDriver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver != nil {
		return nil, ErrSessionLive
	}

	settings := m.settings
	for _, opt := range opts {
		opt(&settings)
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("session settings: %w", err)
	}

	service, err := m.newService(settings)
	if err != nil {
		return nil, fmt.Errorf("start %s driver service: %w", settings.Browser, err)
	}

	driver, err := m.newRemote(settings)
	if err != nil {
		m.stopService(service)
		return nil, fmt.Errorf("open %s session: %w", settings.Browser, err)
	}

	if err := applyTimeouts(driver, settings); err != nil {
		_ = driver.Quit()
		m.stopService(service)
		return nil, err
	}

	if err := driver.ResizeWindow("", settings.WindowWidth, settings.WindowHeight); err != nil {
		// Window size is cosmetic for headless runs.
		m.logger.Warn("resize window", logging.ErrorField(err))
	}

	m.service = service
	m.driver = driver
	m.logger.Info("browser session created",
		logging.StringField("browser", settings.Browser),
		logging.BoolField("headless", settings.Headless),
	)
	return driver, nil
}

// SetEvidence attaches a failure evidence capturer. Capturers
// wrap the live browser, so callers typically attach one right
// after Create.
func (m *Manager) SetEvidence(capturer EvidenceCapturer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evidence = capturer
}

// Current returns the live session, or ErrNotInitialized when
// none exists.
func (m *Manager) Current() (selenium.WebDriver, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver == nil {
		return nil, ErrNotInitialized
	}
	return m.driver, nil
}

// Close quits the session and stops the driver service. It is
// idempotent; quit errors from an already-dead session are
// logged and swallowed.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.driver != nil {
		if err := m.driver.Quit(); err != nil &&
			!strings.Contains(err.Error(), "invalid session id") {
			m.logger.Warn("quit browser session", logging.ErrorField(err))
		}
		m.driver = nil
	}
	m.stopService(m.service)
	m.service = nil
}

func (m *Manager) stopService(service *selenium.Service) {
	if service == nil {
		return
	}
	if err := service.Stop(); err != nil {
		m.logger.Warn("stop driver service", logging.ErrorField(err))
	}
}

// CaptureFailureEvidence captures a failure bundle for the live
// session and returns the screenshot path. Capture problems are
// logged, never propagated; the returned path is empty when
// nothing was captured.
func (m *Manager) CaptureFailureEvidence(testName string) string {
	m.mu.Lock()
	capturer := m.evidence
	live := m.driver != nil
	m.mu.Unlock()

	if capturer == nil || !live || !m.settings.ScreenshotOnFailure {
		return ""
	}

	bundle, err := capturer.CaptureFailureBundle(testName)
	if err != nil {
		m.logger.Warn("capture failure evidence",
			logging.StringField("test", testName),
			logging.ErrorField(err),
		)
	}
	return bundle.ScreenshotPath
}

func applyTimeouts(driver selenium.WebDriver, settings config.Settings) error {
	if err := driver.SetImplicitWaitTimeout(settings.ImplicitWait); err != nil {
		return fmt.Errorf("set implicit wait: %w", err)
	}
	if err := driver.SetPageLoadTimeout(settings.PageLoadTimeout); err != nil {
		return fmt.Errorf("set page load timeout: %w", err)
	}
	if err := driver.SetAsyncScriptTimeout(settings.ExplicitWait); err != nil {
		return fmt.Errorf("set script timeout: %w", err)
	}
	return nil
}

func startService(settings config.Settings) (*selenium.Service, error) {
	switch settings.Browser {
	case config.BrowserFirefox:
		return selenium.NewGeckoDriverService(
			driverPath(settings, "geckodriver"),
			settings.DriverPort,
		)
	default:
		return selenium.NewChromeDriverService(
			driverPath(settings, "chromedriver"),
			settings.DriverPort,
		)
	}
}

func connectRemote(settings config.Settings) (selenium.WebDriver, error) {
	caps := selenium.Capabilities{"browserName": settings.Browser}

	switch settings.Browser {
	case config.BrowserFirefox:
		caps.AddFirefox(firefox.Capabilities{
			Args: firefoxArgs(settings),
			Prefs: map[string]any{
				"dom.webnotifications.enabled": false,
			},
		})
		// geckodriver serves the root path, not /wd/hub.
		return selenium.NewRemote(caps,
			fmt.Sprintf("http://localhost:%d", settings.DriverPort))
	default:
		caps.AddChrome(chrome.Capabilities{Args: chromeArgs(settings)})
		return selenium.NewRemote(caps,
			fmt.Sprintf("http://localhost:%d/wd/hub", settings.DriverPort))
	}
}

func driverPath(settings config.Settings, fallback string) string {
	if settings.DriverPath != "" {
		return settings.DriverPath
	}
	return fallback
}

func chromeArgs(settings config.Settings) []string {
	args := []string{
		"--no-sandbox",
		"--disable-gpu",
		"--disable-notifications",
		fmt.Sprintf("--window-size=%d,%d",
			settings.WindowWidth, settings.WindowHeight),
	}
	if settings.Headless {
		args = append(args, "--headless")
	}
	return args
}

func firefoxArgs(settings config.Settings) []string {
	args := []string{
		fmt.Sprintf("--width=%d", settings.WindowWidth),
		fmt.Sprintf("--height=%d", settings.WindowHeight),
	}
	if settings.Headless {
		args = append(args, "-headless")
	}
	return args
}
