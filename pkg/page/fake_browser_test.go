package page

import (
	"errors"
	"strings"
	"time"

	"github.com/tebeka/selenium"

	"digital.vasic.storefront/pkg/logging"
)

// fakeElement implements the parts of selenium.WebElement the
// page layer touches. Unimplemented methods panic via the
// embedded nil interface, which is fine: reaching them in a test
// is a bug.
type fakeElement struct {
	selenium.WebElement

	text      string
	displayed bool
	enabled   bool
	attrs     map[string]string
	clickErr  error

	clicked bool
	cleared bool
	typed   []string

	children  map[string]*fakeElement
	childList map[string][]selenium.WebElement
}

func newFakeElement(text string) *fakeElement {
	return &fakeElement{
		text:      text,
		displayed: true,
		enabled:   true,
		attrs:     map[string]string{},
		children:  map[string]*fakeElement{},
		childList: map[string][]selenium.WebElement{},
	}
}

func (e *fakeElement) Click() error {
	if e.clickErr != nil {
		return e.clickErr
	}
	e.clicked = true
	return nil
}

func (e *fakeElement) SendKeys(keys string) error {
	e.typed = append(e.typed, keys)
	return nil
}

func (e *fakeElement) Clear() error {
	e.cleared = true
	return nil
}

func (e *fakeElement) Text() (string, error) {
	return e.text, nil
}

func (e *fakeElement) IsDisplayed() (bool, error) {
	return e.displayed, nil
}

func (e *fakeElement) IsEnabled() (bool, error) {
	return e.enabled, nil
}

func (e *fakeElement) GetAttribute(name string) (string, error) {
	if v, ok := e.attrs[name]; ok {
		return v, nil
	}
	// tebeka/selenium reports unset attributes this way.
	return "", errors.New("nil return value")
}

func (e *fakeElement) FindElement(by, value string) (selenium.WebElement, error) {
	if child, ok := e.children[by+"="+value]; ok {
		return child, nil
	}
	return nil, errors.New("no such element")
}

func (e *fakeElement) FindElements(by, value string) ([]selenium.WebElement, error) {
	if list, ok := e.childList[by+"="+value]; ok {
		return list, nil
	}
	if child, ok := e.children[by+"="+value]; ok {
		return []selenium.WebElement{child}, nil
	}
	return nil, nil
}

// fakeBrowser implements Browser against in-memory elements.
type fakeBrowser struct {
	url        string
	title      string
	source     string
	screenshot []byte

	elements map[string]*fakeElement
	lists    map[string][]selenium.WebElement

	// appearAfter delays element visibility by a number of
	// FindElement calls, to exercise polling.
	appearAfter map[string]int

	script func(script string, args []any) (any, error)

	navigated []string
}

func newFakeBrowser() *fakeBrowser {
	return &fakeBrowser{
		url:         "https://www.saucedemo.com/",
		elements:    map[string]*fakeElement{},
		lists:       map[string][]selenium.WebElement{},
		appearAfter: map[string]int{},
	}
}

func locKey(loc Locator) string {
	return loc.By + "=" + loc.Value
}

func (f *fakeBrowser) add(loc Locator, el *fakeElement) *fakeElement {
	f.elements[locKey(loc)] = el
	return el
}

func (f *fakeBrowser) Get(url string) error {
	f.navigated = append(f.navigated, url)
	f.url = url
	return nil
}

func (f *fakeBrowser) CurrentURL() (string, error) { return f.url, nil }

func (f *fakeBrowser) Title() (string, error) { return f.title, nil }

func (f *fakeBrowser) PageSource() (string, error) { return f.source, nil }

func (f *fakeBrowser) FindElement(by, value string) (selenium.WebElement, error) {
	key := by + "=" + value
	if remaining, ok := f.appearAfter[key]; ok && remaining > 0 {
		f.appearAfter[key] = remaining - 1
		return nil, errors.New("no such element")
	}
	if el, ok := f.elements[key]; ok {
		return el, nil
	}
	return nil, errors.New("no such element")
}

func (f *fakeBrowser) FindElements(by, value string) ([]selenium.WebElement, error) {
	key := by + "=" + value
	if list, ok := f.lists[key]; ok {
		return list, nil
	}
	if el, ok := f.elements[key]; ok {
		return []selenium.WebElement{el}, nil
	}
	return nil, nil
}

func (f *fakeBrowser) ExecuteScript(script string, args []any) (any, error) {
	if f.script != nil {
		return f.script(script, args)
	}
	if strings.Contains(script, "readyState") {
		return "complete", nil
	}
	return nil, nil
}

func (f *fakeBrowser) Screenshot() ([]byte, error) {
	if f.screenshot == nil {
		return nil, errors.New("screenshot unavailable")
	}
	return f.screenshot, nil
}

// newFakeBase builds a Base with short timeouts so negative wait
// paths finish quickly.
func newFakeBase(f *fakeBrowser, opts ...BaseOption) *Base {
	base := []BaseOption{
		WithTimeout(50 * time.Millisecond),
		WithPollInterval(time.Millisecond),
	}
	return NewBase(f, append(base, opts...)...)
}

// commandCapture records browser command logs.
type commandCapture struct {
	logging.NullLogger
	commands []logging.BrowserCommandLog
}

func (c *commandCapture) LogBrowserCommand(cmd logging.BrowserCommandLog) {
	c.commands = append(c.commands, cmd)
}
