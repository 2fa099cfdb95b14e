package page

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
)

// Checkout flow URL fragments.
const (
	cartPath             = "/cart.html"
	checkoutInfoPath     = "/checkout-step-one.html"
	checkoutReviewPath   = "/checkout-step-two.html"
	checkoutCompletePath = "/checkout-complete.html"
)

// Cart and checkout locators.
var (
	cartRow          = ByClassName("cart_item")
	cartQuantity     = ByClassName("cart_quantity")
	continueShopping = ByID("continue-shopping")
	checkoutButton   = ByID("checkout")
	firstNameField   = ByID("first-name")
	lastNameField    = ByID("last-name")
	postalCodeField  = ByID("postal-code")
	continueButton   = ByID("continue")
	cancelButton     = ByID("cancel")
	finishButton     = ByID("finish")
	subtotalLabel    = ByClassName("summary_subtotal_label")
	taxLabel         = ByClassName("summary_tax_label")
	totalLabel       = ByClassName("summary_total_label")
	completeHeader   = ByClassName("complete-header")
	completeText     = ByClassName("complete-text")
	backToProducts   = ByID("back-to-products")
)

// CartPage wraps the cart screen and the checkout flow that
// follows it: cart, checkout information, review, completion.
// The page does not enforce the flow's state transitions; it
// trusts callers to follow the site's own navigation.
type CartPage struct {
	base       *Base
	baseURL    string
	strictRows bool
}

// CartOption configures a CartPage.
type CartOption func(*CartPage)

// WithStrictRows makes Items fail on the first unparsable cart
// row instead of skipping it. Lenient mode is the default; it
// tolerates layout drift at the cost of silently dropping rows.
func WithStrictRows() CartOption {
	return func(p *CartPage) {
		p.strictRows = true
	}
}

// NewCartPage creates a CartPage over the given base.
func NewCartPage(base *Base, baseURL string, opts ...CartOption) *CartPage {
	p := &CartPage{base: base, baseURL: baseURL}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the page name.
func (p *CartPage) Name() string { return "cart" }

// Path returns the page path relative to the base URL.
func (p *CartPage) Path() string { return cartPath }

// Open navigates to the cart page.
func (p *CartPage) Open() error {
	if err := p.base.Navigate(p.baseURL + cartPath); err != nil {
		return fmt.Errorf("open cart page: %w", err)
	}
	return p.base.WaitPageReady()
}

// IsCurrent reports whether the browser shows the cart page.
func (p *CartPage) IsCurrent() (bool, error) {
	url, err := p.base.CurrentURL()
	if err != nil {
		return false, err
	}
	return strings.Contains(url, cartPath) &&
		p.base.IsDisplayed(pageTitle), nil
}

// readCartItem extracts one item from a cart row.
func readCartItem(row selenium.WebElement) (CartItem, error) {
	var item CartItem

	nameEl, err := row.FindElement(itemName.By, itemName.Value)
	if err != nil {
		return item, fmt.Errorf("item name: %w", err)
	}
	if item.Name, err = nameEl.Text(); err != nil {
		return item, fmt.Errorf("item name text: %w", err)
	}

	descEl, err := row.FindElement(itemDescription.By, itemDescription.Value)
	if err != nil {
		return item, fmt.Errorf("item description: %w", err)
	}
	if item.Description, err = descEl.Text(); err != nil {
		return item, fmt.Errorf("item description text: %w", err)
	}

	priceEl, err := row.FindElement(itemPrice.By, itemPrice.Value)
	if err != nil {
		return item, fmt.Errorf("item price: %w", err)
	}
	priceText, err := priceEl.Text()
	if err != nil {
		return item, fmt.Errorf("item price text: %w", err)
	}
	if item.Price, err = ParsePrice(priceText); err != nil {
		return item, err
	}

	qtyEl, err := row.FindElement(cartQuantity.By, cartQuantity.Value)
	if err != nil {
		return item, fmt.Errorf("item quantity: %w", err)
	}
	qtyText, err := qtyEl.Text()
	if err != nil {
		return item, fmt.Errorf("item quantity text: %w", err)
	}
	if item.Quantity, err = ParseQuantity(qtyText); err != nil {
		return item, err
	}

	return item, nil
}

// Items extracts every cart row. In lenient mode (the default) a
// row that fails to parse is skipped and reading continues; in
// strict mode the whole read fails.
func (p *CartPage) Items() ([]CartItem, error) {
	rows, err := p.base.FindAll(cartRow)
	if err != nil {
		return nil, err
	}

	items := make([]CartItem, 0, len(rows))
	for i, row := range rows {
		item, err := readCartItem(row)
		if err != nil {
			if p.strictRows {
				return nil, fmt.Errorf("cart row %d: %w", i, err)
			}
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// ItemCount returns the number of cart rows.
func (p *CartPage) ItemCount() (int, error) {
	rows, err := p.base.FindAll(cartRow)
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// IsCartEmpty reports whether the cart has no rows.
func (p *CartPage) IsCartEmpty() (bool, error) {
	count, err := p.ItemCount()
	return count == 0, err
}

// ExpectedSubtotal computes price times quantity over the current
// cart items.
func (p *CartPage) ExpectedSubtotal() (float64, error) {
	items, err := p.Items()
	if err != nil {
		return 0, err
	}
	var sum float64
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum, nil
}

// RemoveItem removes a product from the cart by name.
func (p *CartPage) RemoveItem(name string) error {
	return p.base.Click(RemoveFromCartLocator(name))
}

// ContinueShopping returns to the products page.
func (p *CartPage) ContinueShopping() error {
	return p.base.Click(continueShopping)
}

// ProceedToCheckout advances from the cart to the checkout
// information form.
func (p *CartPage) ProceedToCheckout() error {
	return p.base.Click(checkoutButton)
}

// FillInformation fills the checkout information form.
func (p *CartPage) FillInformation(info CheckoutInfo) error {
	if err := p.base.Type(firstNameField, info.FirstName); err != nil {
		return err
	}
	if err := p.base.Type(lastNameField, info.LastName); err != nil {
		return err
	}
	return p.base.Type(postalCodeField, info.PostalCode)
}

// ContinueToReview advances from the information form to the
// order review.
func (p *CartPage) ContinueToReview() error {
	return p.base.Click(continueButton)
}

// CancelCheckout abandons the information form and returns to
// the cart.
func (p *CartPage) CancelCheckout() error {
	return p.base.Click(cancelButton)
}

// FinishOrder places the order from the review page.
func (p *CartPage) FinishOrder() error {
	return p.base.Click(finishButton)
}

// OrderSummary reads the review page: cart items plus the parsed
// subtotal, tax, and total labels.
func (p *CartPage) OrderSummary() (OrderSummary, error) {
	var summary OrderSummary

	items, err := p.Items()
	if err != nil {
		return summary, err
	}
	summary.Items = items

	subtotalText, err := p.base.Text(subtotalLabel)
	if err != nil {
		return summary, err
	}
	if summary.Subtotal, err = ParsePrice(subtotalText); err != nil {
		return summary, err
	}

	taxText, err := p.base.Text(taxLabel)
	if err != nil {
		return summary, err
	}
	if summary.Tax, err = ParsePrice(taxText); err != nil {
		return summary, err
	}

	totalText, err := p.base.Text(totalLabel)
	if err != nil {
		return summary, err
	}
	if summary.Total, err = ParsePrice(totalText); err != nil {
		return summary, err
	}

	return summary, nil
}

// VerifyOrderCalculations recomputes the expected subtotal from
// the items and checks the displayed subtotal and total against
// it within the price tolerance.
func (p *CartPage) VerifyOrderCalculations() error {
	summary, err := p.OrderSummary()
	if err != nil {
		return err
	}
	return summary.Verify()
}

// CompleteCheckout runs the whole flow from the cart page:
// proceed, fill the form, continue, finish.
func (p *CartPage) CompleteCheckout(info CheckoutInfo) error {
	if err := p.ProceedToCheckout(); err != nil {
		return err
	}
	if err := p.FillInformation(info); err != nil {
		return err
	}
	if err := p.ContinueToReview(); err != nil {
		return err
	}
	return p.FinishOrder()
}

// IsOrderComplete reports whether the completion page is shown.
func (p *CartPage) IsOrderComplete() (bool, error) {
	url, err := p.base.CurrentURL()
	if err != nil {
		return false, err
	}
	return strings.Contains(url, checkoutCompletePath) &&
		p.base.IsDisplayed(completeHeader), nil
}

// CompletionMessage returns the completion header text.
func (p *CartPage) CompletionMessage() (string, error) {
	return p.base.Text(completeHeader)
}

// CompletionDetails returns the completion body text.
func (p *CartPage) CompletionDetails() (string, error) {
	return p.base.Text(completeText)
}

// BackToProducts returns from the completion page to the
// products page.
func (p *CartPage) BackToProducts() error {
	return p.base.Click(backToProducts)
}
