package page

import (
	"fmt"
	"strings"
	"time"

	"github.com/tebeka/selenium"

	"digital.vasic.storefront/pkg/logging"
)

const (
	defaultTimeout      = 10 * time.Second
	defaultPollInterval = 100 * time.Millisecond
)

// Base provides the shared wait/act primitives used by every
// page object. Wait discipline lives here so individual pages
// never re-implement polling or timeout logic, and failure
// messages always carry the locator.
type Base struct {
	browser  Browser
	logger   logging.Logger
	timeout  time.Duration
	interval time.Duration
}

// BaseOption configures a Base.
type BaseOption func(*Base)

// WithLogger sets the logger used for browser command logging.
func WithLogger(logger logging.Logger) BaseOption {
	return func(b *Base) {
		b.logger = logger
	}
}

// WithTimeout sets the default explicit wait timeout.
func WithTimeout(timeout time.Duration) BaseOption {
	return func(b *Base) {
		b.timeout = timeout
	}
}

// WithPollInterval sets the interval between condition polls.
func WithPollInterval(interval time.Duration) BaseOption {
	return func(b *Base) {
		b.interval = interval
	}
}

// NewBase creates a Base over the given browser handle. The Base
// holds a non-owning reference; session lifecycle belongs to the
// driver manager.
func NewBase(browser Browser, opts ...BaseOption) *Base {
	b := &Base{
		browser:  browser,
		logger:   logging.NullLogger{},
		timeout:  defaultTimeout,
		interval: defaultPollInterval,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Within returns a copy of the Base whose operations use the
// given timeout instead of the default.
func (b *Base) Within(timeout time.Duration) *Base {
	c := *b
	c.timeout = timeout
	return &c
}

// Browser returns the underlying browser handle.
func (b *Base) Browser() Browser {
	return b.browser
}

// Navigate opens the given URL.
func (b *Base) Navigate(url string) error {
	start := time.Now()
	err := b.browser.Get(url)
	b.logCommand("navigate", Locator{}, url, start, err)
	return err
}

// CurrentURL returns the browser's current URL.
func (b *Base) CurrentURL() (string, error) {
	return b.browser.CurrentURL()
}

// waitUntil polls cond every interval until it returns true or
// the timeout elapses.
func (b *Base) waitUntil(cond func() bool) bool {
	deadline := time.Now().Add(b.timeout)
	for {
		if cond() {
			return true
		}
		if time.Now().After(deadline) {
			return false
		}
		time.Sleep(b.interval)
	}
}

func (b *Base) logCommand(
	command string,
	loc Locator,
	value string,
	start time.Time,
	err error,
) {
	entry := logging.BrowserCommandLog{
		Timestamp:  start.Format(time.RFC3339Nano),
		Command:    command,
		Value:      value,
		DurationMs: time.Since(start).Milliseconds(),
	}
	if loc != (Locator{}) {
		entry.Locator = loc.String()
	}
	if err != nil {
		entry.Error = err.Error()
	}
	b.logger.LogBrowserCommand(entry)
}

// Find polls until an element matching the locator exists and
// returns it.
func (b *Base) Find(loc Locator) (selenium.WebElement, error) {
	start := time.Now()
	var el selenium.WebElement

	found := b.waitUntil(func() bool {
		e, err := b.browser.FindElement(loc.By, loc.Value)
		if err != nil {
			return false
		}
		el = e
		return true
	})

	var err error
	if !found {
		err = notFoundErr(loc, b.timeout)
	}
	b.logCommand("find", loc, "", start, err)
	return el, err
}

// FindAll returns all elements currently matching the locator.
// It does not wait; zero matches is not an error.
func (b *Base) FindAll(loc Locator) ([]selenium.WebElement, error) {
	els, err := b.browser.FindElements(loc.By, loc.Value)
	if err != nil {
		return nil, notFoundErr(loc, 0)
	}
	return els, nil
}

// WaitVisible polls until an element matching the locator exists
// and is displayed.
func (b *Base) WaitVisible(loc Locator) (selenium.WebElement, error) {
	start := time.Now()
	var el selenium.WebElement

	visible := b.waitUntil(func() bool {
		e, err := b.browser.FindElement(loc.By, loc.Value)
		if err != nil {
			return false
		}
		displayed, err := e.IsDisplayed()
		if err != nil || !displayed {
			return false
		}
		el = e
		return true
	})

	var err error
	if !visible {
		err = notVisibleErr(loc, b.timeout)
	}
	b.logCommand("wait_visible", loc, "", start, err)
	return el, err
}

// Click waits for the element to be visible and enabled, then
// dispatches a click.
func (b *Base) Click(loc Locator) error {
	start := time.Now()

	el, err := b.WaitVisible(loc)
	if err != nil {
		return err
	}

	enabled := b.waitUntil(func() bool {
		ok, err := el.IsEnabled()
		return err == nil && ok
	})
	if !enabled {
		err = clickErr(loc, notVisibleErr(loc, b.timeout))
		b.logCommand("click", loc, "", start, err)
		return err
	}

	if clickFailure := el.Click(); clickFailure != nil {
		err = clickErr(loc, clickFailure)
	}
	b.logCommand("click", loc, "", start, err)
	return err
}

// Type waits for the element to be visible, clears it, and sends
// the text. No trimming or validation is applied.
func (b *Base) Type(loc Locator, text string) error {
	return b.sendKeys(loc, text, true)
}

// TypeAppend sends text without clearing the current value.
func (b *Base) TypeAppend(loc Locator, text string) error {
	return b.sendKeys(loc, text, false)
}

func (b *Base) sendKeys(loc Locator, text string, clear bool) error {
	start := time.Now()

	el, err := b.WaitVisible(loc)
	if err != nil {
		return err
	}

	if clear {
		if err = el.Clear(); err != nil {
			b.logCommand("type", loc, text, start, err)
			return err
		}
	}

	err = el.SendKeys(text)
	b.logCommand("type", loc, text, start, err)
	return err
}

// Text waits for the element to be visible and returns its text.
func (b *Base) Text(loc Locator) (string, error) {
	start := time.Now()

	el, err := b.WaitVisible(loc)
	if err != nil {
		return "", err
	}

	text, err := el.Text()
	b.logCommand("read_text", loc, "", start, err)
	return text, err
}

// Attribute returns the value of the named attribute. An unset
// attribute yields ("", false, nil) rather than an error.
func (b *Base) Attribute(
	loc Locator,
	name string,
) (string, bool, error) {
	el, err := b.Find(loc)
	if err != nil {
		return "", false, err
	}

	value, err := el.GetAttribute(name)
	if err != nil {
		// The wire protocol reports an unset attribute as a
		// nil value.
		if strings.Contains(err.Error(), "nil return value") {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

// IsDisplayed reports whether an element matching the locator
// exists and is visible. All failures collapse to false; an
// existence probe must never itself fail.
func (b *Base) IsDisplayed(loc Locator) bool {
	el, err := b.browser.FindElement(loc.By, loc.Value)
	if err != nil {
		return false
	}
	displayed, err := el.IsDisplayed()
	return err == nil && displayed
}

// IsEnabled reports whether an element matching the locator
// exists and is enabled. All failures collapse to false.
func (b *Base) IsEnabled(loc Locator) bool {
	el, err := b.browser.FindElement(loc.By, loc.Value)
	if err != nil {
		return false
	}
	enabled, err := el.IsEnabled()
	return err == nil && enabled
}

// WaitGone polls until no element matches the locator or the
// first match is no longer visible.
func (b *Base) WaitGone(loc Locator) error {
	start := time.Now()

	gone := b.waitUntil(func() bool {
		els, err := b.browser.FindElements(loc.By, loc.Value)
		if err != nil || len(els) == 0 {
			return true
		}
		displayed, err := els[0].IsDisplayed()
		return err != nil || !displayed
	})

	var err error
	if !gone {
		err = stillVisibleErr(loc, b.timeout)
	}
	b.logCommand("wait_gone", loc, "", start, err)
	return err
}

// WaitPageReady polls the document ready state until it reports
// "complete".
func (b *Base) WaitPageReady() error {
	start := time.Now()

	ready := b.waitUntil(func() bool {
		v, err := b.browser.ExecuteScript(
			"return document.readyState;", nil,
		)
		if err != nil {
			return false
		}
		state, ok := v.(string)
		return ok && state == "complete"
	})

	var err error
	if !ready {
		err = fmt.Errorf("%w after %v", ErrPageNotReady, b.timeout)
	}
	b.logCommand("wait_page_ready", Locator{}, "", start, err)
	return err
}

// ScrollIntoView scrolls the element into the viewport and waits
// until its position stops changing, bounded by the timeout. A
// position that never settles is not treated as a failure.
func (b *Base) ScrollIntoView(loc Locator) error {
	start := time.Now()

	el, err := b.Find(loc)
	if err != nil {
		return err
	}

	_, err = b.browser.ExecuteScript(
		"arguments[0].scrollIntoView({block: 'center'});",
		[]any{el},
	)
	if err != nil {
		b.logCommand("scroll", loc, "", start, err)
		return err
	}

	top := func() (float64, bool) {
		v, scriptErr := b.browser.ExecuteScript(
			"return arguments[0].getBoundingClientRect().top;",
			[]any{el},
		)
		f, ok := v.(float64)
		return f, scriptErr == nil && ok
	}

	prev, havePrev := top()
	b.waitUntil(func() bool {
		cur, ok := top()
		if !ok {
			return false
		}
		if havePrev && cur == prev {
			return true
		}
		prev, havePrev = cur, true
		return false
	})

	b.logCommand("scroll", loc, "", start, nil)
	return nil
}
