package page

import (
	"fmt"

	"github.com/tebeka/selenium"
)

// Locator describes how to find an element in the rendered page.
// It is opaque to everything except the browser automation layer.
type Locator struct {
	// By is the lookup strategy, one of the selenium.By*
	// constants.
	By string

	// Value is the selector string for the strategy.
	Value string
}

// ByID creates a locator for an element id.
func ByID(id string) Locator {
	return Locator{By: selenium.ByID, Value: id}
}

// ByName creates a locator for a name attribute.
func ByName(name string) Locator {
	return Locator{By: selenium.ByName, Value: name}
}

// ByCSS creates a locator for a CSS selector.
func ByCSS(selector string) Locator {
	return Locator{By: selenium.ByCSSSelector, Value: selector}
}

// ByXPath creates a locator for an XPath expression.
func ByXPath(expr string) Locator {
	return Locator{By: selenium.ByXPATH, Value: expr}
}

// ByClassName creates a locator for a class name.
func ByClassName(name string) Locator {
	return Locator{By: selenium.ByClassName, Value: name}
}

// String renders the locator for failure messages.
func (l Locator) String() string {
	return fmt.Sprintf("%s=%s", l.By, l.Value)
}
