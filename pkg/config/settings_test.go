package config

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.storefront/pkg/env"
)

// fakeLoader backs env.Loader with a plain map so tests do not
// touch the process environment.
type fakeLoader struct {
	env.Loader
	vars map[string]string
}

func newFakeLoader(vars map[string]string) *fakeLoader {
	if vars == nil {
		vars = map[string]string{}
	}
	return &fakeLoader{vars: vars}
}

func (f *fakeLoader) Get(key string) string { return f.vars[key] }

func (f *fakeLoader) GetWithDefault(key, defaultValue string) string {
	if v := f.vars[key]; v != "" {
		return v
	}
	return defaultValue
}

func (f *fakeLoader) GetBool(key string, defaultValue bool) bool {
	switch f.vars[key] {
	case "true", "1":
		return true
	case "false", "0":
		return false
	}
	return defaultValue
}

func (f *fakeLoader) GetInt(key string, defaultValue int) int {
	if v := f.vars[key]; v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func (f *fakeLoader) GetDuration(
	key string,
	defaultValue time.Duration,
) time.Duration {
	if v := f.vars[key]; v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

func TestResolve_Defaults(t *testing.T) {
	s := Resolve(newFakeLoader(nil))

	assert.Equal(t, "https://www.saucedemo.com", s.BaseURL)
	assert.Equal(t, BrowserChrome, s.Browser)
	assert.False(t, s.Headless)
	assert.Equal(t, 1920, s.WindowWidth)
	assert.Equal(t, 1080, s.WindowHeight)
	assert.Equal(t, time.Duration(0), s.ImplicitWait)
	assert.Equal(t, 10*time.Second, s.ExplicitWait)
	assert.Equal(t, 30*time.Second, s.PageLoadTimeout)
	assert.True(t, s.ScreenshotOnFailure)
	assert.Equal(t, "reports/screenshots", s.ScreenshotDir)
	assert.Equal(t, "reports", s.ReportDir)
	assert.Equal(t, "testdata", s.DataDir)
	assert.Equal(t, 4444, s.DriverPort)
	assert.Empty(t, s.MonitorAddr)
}

func TestResolve_Overrides(t *testing.T) {
	s := Resolve(newFakeLoader(map[string]string{
		EnvBaseURL:       "http://localhost:3000",
		EnvBrowser:       BrowserFirefox,
		EnvHeadless:      "true",
		EnvWindowWidth:   "800",
		EnvWindowHeight:  "600",
		EnvExplicitWait:  "20s",
		EnvDriverPort:    "9515",
		EnvMonitorAddr:   ":8077",
		EnvScreenshotDir: "artifacts",
	}))

	assert.Equal(t, "http://localhost:3000", s.BaseURL)
	assert.Equal(t, BrowserFirefox, s.Browser)
	assert.True(t, s.Headless)
	assert.Equal(t, 800, s.WindowWidth)
	assert.Equal(t, 600, s.WindowHeight)
	assert.Equal(t, 20*time.Second, s.ExplicitWait)
	assert.Equal(t, 9515, s.DriverPort)
	assert.Equal(t, ":8077", s.MonitorAddr)
	assert.Equal(t, "artifacts", s.ScreenshotDir)
}

func TestResolve_CIForcesHeadless(t *testing.T) {
	s := Resolve(newFakeLoader(map[string]string{
		EnvHeadless: "false",
		EnvCI:       "true",
	}))
	assert.True(t, s.Headless)
}

func TestSettings_Validate(t *testing.T) {
	s := Resolve(newFakeLoader(nil))
	require.NoError(t, s.Validate())

	bad := s
	bad.Browser = "safari"
	err := bad.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "safari")

	bad = s
	bad.BaseURL = ""
	assert.Error(t, bad.Validate())

	bad = s
	bad.ExplicitWait = 0
	assert.Error(t, bad.Validate())
}
