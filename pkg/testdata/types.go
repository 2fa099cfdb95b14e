// Package testdata loads and validates external test data:
// user credential sets from CSV files and shopping scenarios
// from JSON or YAML files.
package testdata

import (
	"errors"

	"digital.vasic.storefront/pkg/page"
)

// ErrDataLoad wraps every loader failure so callers can treat
// missing or malformed data files uniformly.
var ErrDataLoad = errors.New("test data load failed")

// Expected login outcomes for a credential row.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// UserCredentials is one login test case.
type UserCredentials struct {
	// Username to type into the login form.
	Username string `json:"username"`

	// Password to type into the login form.
	Password string `json:"password"`

	// UserType classifies the account (standard, locked_out,
	// problem, ...). Filters select rows by it.
	UserType string `json:"user_type"`

	// ExpectedResult is ResultSuccess or ResultFailure.
	ExpectedResult string `json:"expected_result"`

	// Description is free text shown in reports.
	Description string `json:"description"`
}

// ShouldSucceed reports whether the row describes a login that
// is expected to land on the inventory page.
func (u UserCredentials) ShouldSucceed() bool {
	return u.ExpectedResult == ResultSuccess
}

// ShoppingScenario is a data-driven end-to-end purchase flow.
type ShoppingScenario struct {
	// Name identifies the scenario in filters and reports.
	Name string `json:"name"`

	// Products are the display names to add to the cart.
	Products []string `json:"products"`

	// Checkout is the information for the checkout form.
	Checkout page.CheckoutInfo `json:"checkout"`

	// ExpectedItemCount is the cart size expected at review.
	ExpectedItemCount int `json:"expected_item_count"`
}
