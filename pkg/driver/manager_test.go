package driver

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tebeka/selenium"

	"digital.vasic.storefront/pkg/config"
	"digital.vasic.storefront/pkg/evidence"
	"digital.vasic.storefront/pkg/logging"
)

type fakeDriver struct {
	selenium.WebDriver

	quits    int
	quitErr  error
	implicit time.Duration
	pageLoad time.Duration
	script   time.Duration
	width    int
	height   int
}

func (f *fakeDriver) Quit() error {
	f.quits++
	return f.quitErr
}

func (f *fakeDriver) SetImplicitWaitTimeout(d time.Duration) error {
	f.implicit = d
	return nil
}

func (f *fakeDriver) SetPageLoadTimeout(d time.Duration) error {
	f.pageLoad = d
	return nil
}

func (f *fakeDriver) SetAsyncScriptTimeout(d time.Duration) error {
	f.script = d
	return nil
}

func (f *fakeDriver) ResizeWindow(name string, width, height int) error {
	f.width = width
	f.height = height
	return nil
}

type warnCapture struct {
	logging.NullLogger

	warnings []string
}

func (w *warnCapture) Warn(msg string, fields ...logging.Field) {
	w.warnings = append(w.warnings, msg)
}

type fakeEvidence struct {
	bundle evidence.Bundle
	err    error
	tests  []string
}

func (f *fakeEvidence) CaptureFailureBundle(testName string) (evidence.Bundle, error) {
	f.tests = append(f.tests, testName)
	return f.bundle, f.err
}

func testSettings() config.Settings {
	return config.Settings{
		BaseURL:             "https://www.saucedemo.com",
		Browser:             config.BrowserChrome,
		WindowWidth:         1920,
		WindowHeight:        1080,
		ImplicitWait:        0,
		ExplicitWait:        10 * time.Second,
		PageLoadTimeout:     30 * time.Second,
		ScreenshotOnFailure: true,
	}
}

// newFakeManager wires the manager to in-memory service and
// remote constructors.
func newFakeManager(settings config.Settings, opts ...ManagerOption) (*Manager, *fakeDriver) {
	fake := &fakeDriver{}
	m := NewManager(settings, opts...)
	m.newService = func(config.Settings) (*selenium.Service, error) {
		return nil, nil
	}
	m.newRemote = func(config.Settings) (selenium.WebDriver, error) {
		return fake, nil
	}
	return m, fake
}

func TestCurrentBeforeCreate(t *testing.T) {
	m, _ := newFakeManager(testSettings())

	_, err := m.Current()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestCreateAppliesTimeouts(t *testing.T) {
	m, fake := newFakeManager(testSettings())

	driver, err := m.Create()
	require.NoError(t, err)
	assert.Same(t, fake, driver)

	assert.Equal(t, time.Duration(0), fake.implicit)
	assert.Equal(t, 30*time.Second, fake.pageLoad)
	assert.Equal(t, 10*time.Second, fake.script)
	assert.Equal(t, 1920, fake.width)
	assert.Equal(t, 1080, fake.height)
}

func TestCreateTwiceFails(t *testing.T) {
	m, _ := newFakeManager(testSettings())

	_, err := m.Create()
	require.NoError(t, err)

	_, err = m.Create()
	require.ErrorIs(t, err, ErrSessionLive)
}

func TestCreateAfterClose(t *testing.T) {
	m, _ := newFakeManager(testSettings())

	_, err := m.Create()
	require.NoError(t, err)
	m.Close()

	_, err = m.Create()
	require.NoError(t, err)
}

func TestCreateRejectsUnknownBrowser(t *testing.T) {
	m, _ := newFakeManager(testSettings())

	_, err := m.Create(WithBrowser("safari"))
	require.Error(t, err)

	// The bad override must not poison the stored settings.
	_, err = m.Create()
	require.NoError(t, err)
}

func TestCreateRemoteError(t *testing.T) {
	m, _ := newFakeManager(testSettings())
	m.newRemote = func(config.Settings) (selenium.WebDriver, error) {
		return nil, errors.New("connection refused")
	}

	_, err := m.Create()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open chrome session")

	_, err = m.Current()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestCloseIsIdempotent(t *testing.T) {
	m, fake := newFakeManager(testSettings())

	_, err := m.Create()
	require.NoError(t, err)

	m.Close()
	m.Close()

	assert.Equal(t, 1, fake.quits)
	_, err = m.Current()
	require.ErrorIs(t, err, ErrNotInitialized)
}

func TestCloseSwallowsDeadSession(t *testing.T) {
	logger := &warnCapture{}
	m, fake := newFakeManager(testSettings(), WithLogger(logger))
	fake.quitErr = errors.New("invalid session id: session deleted")

	_, err := m.Create()
	require.NoError(t, err)
	m.Close()

	assert.Empty(t, logger.warnings)
}

func TestCloseLogsQuitError(t *testing.T) {
	logger := &warnCapture{}
	m, fake := newFakeManager(testSettings(), WithLogger(logger))
	fake.quitErr = errors.New("connection reset")

	_, err := m.Create()
	require.NoError(t, err)
	m.Close()

	assert.Contains(t, logger.warnings, "quit browser session")
}

func TestCaptureFailureEvidence(t *testing.T) {
	capturer := &fakeEvidence{
		bundle: evidence.Bundle{ScreenshotPath: "shots/TestCart_failure.png"},
	}
	m, _ := newFakeManager(testSettings(), WithEvidence(capturer))

	_, err := m.Create()
	require.NoError(t, err)

	path := m.CaptureFailureEvidence("TestCart")
	assert.Equal(t, "shots/TestCart_failure.png", path)
	assert.Equal(t, []string{"TestCart"}, capturer.tests)
}

func TestCaptureFailureEvidenceWithoutSession(t *testing.T) {
	capturer := &fakeEvidence{}
	m, _ := newFakeManager(testSettings(), WithEvidence(capturer))

	path := m.CaptureFailureEvidence("TestCart")
	assert.Empty(t, path)
	assert.Empty(t, capturer.tests)
}

func TestCaptureFailureEvidenceDisabled(t *testing.T) {
	settings := testSettings()
	settings.ScreenshotOnFailure = false
	capturer := &fakeEvidence{}
	m, _ := newFakeManager(settings, WithEvidence(capturer))

	_, err := m.Create()
	require.NoError(t, err)

	assert.Empty(t, m.CaptureFailureEvidence("TestCart"))
	assert.Empty(t, capturer.tests)
}

func TestBrowserArgs(t *testing.T) {
	settings := testSettings()
	settings.Headless = true

	assert.Contains(t, chromeArgs(settings), "--headless")
	assert.Contains(t, chromeArgs(settings), "--window-size=1920,1080")
	assert.Contains(t, firefoxArgs(settings), "-headless")

	settings.Headless = false
	assert.NotContains(t, chromeArgs(settings), "--headless")
	assert.NotContains(t, firefoxArgs(settings), "-headless")
}
