// Package page implements the page object layer for the
// storefront: a shared base of wait/act primitives plus one page
// object per logical screen (login, products, cart/checkout).
package page

import "github.com/tebeka/selenium"

// Browser is the capability set the page layer consumes from the
// underlying automation driver. selenium.WebDriver satisfies it;
// tests substitute fakes.
type Browser interface {
	// Get navigates to the given URL.
	Get(url string) error

	// CurrentURL returns the URL of the current page.
	CurrentURL() (string, error)

	// Title returns the current page title.
	Title() (string, error)

	// PageSource returns the current page HTML.
	PageSource() (string, error)

	// FindElement locates the first element matching the
	// strategy and selector.
	FindElement(by, value string) (selenium.WebElement, error)

	// FindElements locates all elements matching the strategy
	// and selector.
	FindElements(by, value string) ([]selenium.WebElement, error)

	// ExecuteScript runs JavaScript in the page context.
	ExecuteScript(script string, args []any) (any, error)

	// Screenshot captures a PNG of the current viewport.
	Screenshot() ([]byte, error)
}

// Page is the shared capability interface for the closed set of
// page variants. Each variant owns only the locators and
// operations relevant to it.
type Page interface {
	// Name returns the human-readable page name.
	Name() string

	// Path returns the URL path of the page relative to the
	// base URL.
	Path() string

	// Open navigates the browser to the page.
	Open() error

	// IsCurrent reports whether the browser is currently on
	// this page.
	IsCurrent() (bool, error)
}
