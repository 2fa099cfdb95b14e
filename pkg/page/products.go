package page

import (
	"fmt"
	"strings"

	"github.com/tebeka/selenium"
)

// inventoryPath is the URL fragment of the post-login products
// page.
const inventoryPath = "/inventory.html"

// Sort option values, mapped 1:1 to the sort widget.
const (
	SortNameAscending  = "az"
	SortNameDescending = "za"
	SortPriceLowHigh   = "lohi"
	SortPriceHighLow   = "hilo"
)

// Products page locators.
var (
	pageTitle         = ByClassName("title")
	inventoryItem     = ByClassName("inventory_item")
	itemName          = ByClassName("inventory_item_name")
	itemDescription   = ByClassName("inventory_item_desc")
	itemPrice         = ByClassName("inventory_item_price")
	cartBadge         = ByClassName("shopping_cart_badge")
	cartLink          = ByClassName("shopping_cart_link")
	sortSelect        = ByClassName("product_sort_container")
	menuButton        = ByID("react-burger-menu-btn")
	logoutLink        = ByID("logout_sidebar_link")
)

// ProductsPage wraps the inventory screen.
type ProductsPage struct {
	base    *Base
	baseURL string
}

// NewProductsPage creates a ProductsPage over the given base.
func NewProductsPage(base *Base, baseURL string) *ProductsPage {
	return &ProductsPage{base: base, baseURL: baseURL}
}

// Name returns the page name.
func (p *ProductsPage) Name() string { return "products" }

// Path returns the page path relative to the base URL.
func (p *ProductsPage) Path() string { return inventoryPath }

// Open navigates directly to the products page. The storefront
// redirects to login when no user is authenticated.
func (p *ProductsPage) Open() error {
	if err := p.base.Navigate(p.baseURL + inventoryPath); err != nil {
		return fmt.Errorf("open products page: %w", err)
	}
	return p.base.WaitPageReady()
}

// IsCurrent reports whether the browser shows the products page.
func (p *ProductsPage) IsCurrent() (bool, error) {
	url, err := p.base.CurrentURL()
	if err != nil {
		return false, err
	}
	return strings.Contains(url, inventoryPath) &&
		p.base.IsDisplayed(pageTitle), nil
}

// ProductCount returns the number of inventory rows currently in
// the DOM.
func (p *ProductsPage) ProductCount() (int, error) {
	els, err := p.base.FindAll(inventoryItem)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

// readProduct extracts one product from an inventory row.
func readProduct(row selenium.WebElement) (Product, error) {
	var product Product

	nameEl, err := row.FindElement(itemName.By, itemName.Value)
	if err != nil {
		return product, fmt.Errorf("product name: %w", err)
	}
	if product.Name, err = nameEl.Text(); err != nil {
		return product, fmt.Errorf("product name text: %w", err)
	}

	descEl, err := row.FindElement(itemDescription.By, itemDescription.Value)
	if err != nil {
		return product, fmt.Errorf("product description: %w", err)
	}
	if product.Description, err = descEl.Text(); err != nil {
		return product, fmt.Errorf("product description text: %w", err)
	}

	priceEl, err := row.FindElement(itemPrice.By, itemPrice.Value)
	if err != nil {
		return product, fmt.Errorf("product price: %w", err)
	}
	if product.PriceText, err = priceEl.Text(); err != nil {
		return product, fmt.Errorf("product price text: %w", err)
	}
	if product.Price, err = ParsePrice(product.PriceText); err != nil {
		return product, err
	}

	return product, nil
}

// Products re-queries the live DOM and returns every listed
// product. Results always reflect the current state, including
// after a sort.
func (p *ProductsPage) Products() ([]Product, error) {
	rows, err := p.base.FindAll(inventoryItem)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(rows))
	for i, row := range rows {
		product, err := readProduct(row)
		if err != nil {
			return nil, fmt.Errorf("inventory row %d: %w", i, err)
		}
		products = append(products, product)
	}
	return products, nil
}

// ProductNames returns the listed product names in page order.
func (p *ProductsPage) ProductNames() ([]string, error) {
	products, err := p.Products()
	if err != nil {
		return nil, err
	}
	names := make([]string, len(products))
	for i, product := range products {
		names[i] = product.Name
	}
	return names, nil
}

// ProductPrices returns the listed prices in page order.
func (p *ProductsPage) ProductPrices() ([]float64, error) {
	products, err := p.Products()
	if err != nil {
		return nil, err
	}
	prices := make([]float64, len(products))
	for i, product := range products {
		prices[i] = product.Price
	}
	return prices, nil
}

// AddToCart clicks the add-to-cart control derived from the
// product name.
func (p *ProductsPage) AddToCart(name string) error {
	return p.base.Click(AddToCartLocator(name))
}

// RemoveFromCart clicks the remove control derived from the
// product name.
func (p *ProductsPage) RemoveFromCart(name string) error {
	return p.base.Click(RemoveFromCartLocator(name))
}

// IsProductInCart reports whether the remove control for the
// product is present, which the storefront shows only for items
// already in the cart.
func (p *ProductsPage) IsProductInCart(name string) bool {
	return p.base.IsDisplayed(RemoveFromCartLocator(name))
}

// CartItemCount parses the cart badge. An absent badge means an
// empty cart, not an error.
func (p *ProductsPage) CartItemCount() (int, error) {
	if !p.base.IsDisplayed(cartBadge) {
		return 0, nil
	}
	text, err := p.base.Text(cartBadge)
	if err != nil {
		return 0, err
	}
	return ParseQuantity(text)
}

// Sort applies one of the Sort* options to the product list.
func (p *ProductsPage) Sort(option string) error {
	switch option {
	case SortNameAscending, SortNameDescending,
		SortPriceLowHigh, SortPriceHighLow:
	default:
		return fmt.Errorf("unknown sort option %q", option)
	}

	sel, err := p.base.WaitVisible(sortSelect)
	if err != nil {
		return err
	}

	opt, err := sel.FindElement(
		selenium.ByCSSSelector,
		fmt.Sprintf("option[value='%s']", option),
	)
	if err != nil {
		return fmt.Errorf("sort option %q: %w", option, err)
	}
	if err := opt.Click(); err != nil {
		return clickErr(sortSelect, err)
	}
	return nil
}

// CurrentSortOption returns the active sort widget value.
func (p *ProductsPage) CurrentSortOption() (string, error) {
	value, _, err := p.base.Attribute(sortSelect, "value")
	return value, err
}

// MostExpensiveProduct returns the product with the strictly
// highest price. On ties the first occurrence wins.
func (p *ProductsPage) MostExpensiveProduct() (Product, error) {
	products, err := p.Products()
	if err != nil {
		return Product{}, err
	}
	if len(products) == 0 {
		return Product{}, fmt.Errorf("no products listed")
	}

	best := products[0]
	for _, product := range products[1:] {
		if product.Price > best.Price {
			best = product
		}
	}
	return best, nil
}

// LeastExpensiveProduct returns the product with the strictly
// lowest price. On ties the first occurrence wins.
func (p *ProductsPage) LeastExpensiveProduct() (Product, error) {
	products, err := p.Products()
	if err != nil {
		return Product{}, err
	}
	if len(products) == 0 {
		return Product{}, fmt.Errorf("no products listed")
	}

	best := products[0]
	for _, product := range products[1:] {
		if product.Price < best.Price {
			best = product
		}
	}
	return best, nil
}

// GoToCart opens the shopping cart.
func (p *ProductsPage) GoToCart() error {
	return p.base.Click(cartLink)
}

// OpenMenu opens the burger menu and waits for its entries to
// become visible.
func (p *ProductsPage) OpenMenu() error {
	if err := p.base.Click(menuButton); err != nil {
		return err
	}
	_, err := p.base.WaitVisible(logoutLink)
	return err
}

// Logout opens the menu and clicks the logout entry.
func (p *ProductsPage) Logout() error {
	if err := p.OpenMenu(); err != nil {
		return err
	}
	return p.base.Click(logoutLink)
}
