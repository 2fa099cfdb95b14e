package page

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// priceTolerance is the floating tolerance for money comparisons.
const priceTolerance = 0.01

// Product is one inventory entry as read from the products page.
type Product struct {
	Name        string
	Description string
	Price       float64
	PriceText   string
}

// CartItem is one row of the shopping cart.
type CartItem struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

// CheckoutInfo holds the user-supplied checkout form fields.
type CheckoutInfo struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	PostalCode string `json:"postal_code"`
}

// OrderSummary is the parsed checkout review page.
type OrderSummary struct {
	Items    []CartItem
	Subtotal float64
	Tax      float64
	Total    float64
}

// ExpectedSubtotal computes the item-derived subtotal.
func (o OrderSummary) ExpectedSubtotal() float64 {
	var sum float64
	for _, item := range o.Items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

// Verify checks the summary against its own items: the displayed
// subtotal must match the sum over items, and the total must be
// subtotal plus tax, both within the price tolerance.
func (o OrderSummary) Verify() error {
	expected := o.ExpectedSubtotal()
	if math.Abs(o.Subtotal-expected) >= priceTolerance {
		return fmt.Errorf(
			"subtotal %.2f does not match item sum %.2f",
			o.Subtotal, expected,
		)
	}
	if math.Abs(o.Total-(o.Subtotal+o.Tax)) >= priceTolerance {
		return fmt.Errorf(
			"total %.2f does not match subtotal %.2f + tax %.2f",
			o.Total, o.Subtotal, o.Tax,
		)
	}
	return nil
}

// ParsePrice extracts a numeric price from label text such as
// "$29.99" or "Item total: $39.98" by stripping everything except
// digits and the decimal point.
func ParsePrice(text string) (float64, error) {
	var sb strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, fmt.Errorf("no numeric value in %q", text)
	}
	price, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("parse price %q: %w", text, err)
	}
	return price, nil
}

// ParseQuantity parses a cart quantity string.
func ParseQuantity(text string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, fmt.Errorf("parse quantity %q: %w", text, err)
	}
	return qty, nil
}

// ProductID derives the element id fragment the storefront uses
// for a product: lowercased, with whitespace runs collapsed to
// single hyphens. The site never documents this convention; tests
// validate it against the live page ids.
func ProductID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// AddToCartLocator returns the add-to-cart control for a product
// name.
func AddToCartLocator(name string) Locator {
	return ByID("add-to-cart-" + ProductID(name))
}

// RemoveFromCartLocator returns the remove control for a product
// name.
func RemoveFromCartLocator(name string) Locator {
	return ByID("remove-" + ProductID(name))
}
