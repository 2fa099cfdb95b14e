package testdata

import "fmt"

// ValidationError describes one problem found in loaded test
// data.
type ValidationError struct {
	Field   string
	Message string
	Index   int // -1 if not applicable
}

func (e ValidationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("row %d, %s: %s", e.Index, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateUsers checks credential rows and returns every
// problem found. Rows with an empty password are allowed; the
// login form itself is expected to reject them.
func ValidateUsers(users []UserCredentials) []ValidationError {
	var errs []ValidationError

	seen := make(map[string]bool)
	for i, user := range users {
		if user.Username == "" && user.Password == "" {
			// Fully blank rows are allowed as negative cases,
			// but only once.
			if seen[""] {
				errs = append(errs, ValidationError{
					Field: "username", Message: "duplicate blank row", Index: i,
				})
			}
			seen[""] = true
		} else if user.Username != "" {
			if seen[user.Username] {
				errs = append(errs, ValidationError{
					Field:   "username",
					Message: fmt.Sprintf("duplicate username: %s", user.Username),
					Index:   i,
				})
			}
			seen[user.Username] = true
		}

		if user.ExpectedResult != ResultSuccess &&
			user.ExpectedResult != ResultFailure {
			errs = append(errs, ValidationError{
				Field: "expected_result",
				Message: fmt.Sprintf("must be %q or %q, got %q",
					ResultSuccess, ResultFailure, user.ExpectedResult),
				Index: i,
			})
		}
	}
	return errs
}

// ValidateScenarios checks shopping scenarios and returns every
// problem found.
func ValidateScenarios(scenarios []ShoppingScenario) []ValidationError {
	var errs []ValidationError

	names := make(map[string]bool)
	for i, scenario := range scenarios {
		label := scenarioLabel(scenario, i)

		if scenario.Name == "" {
			errs = append(errs, ValidationError{
				Field: "name", Message: "scenario name is required", Index: i,
			})
		} else if names[scenario.Name] {
			errs = append(errs, ValidationError{
				Field:   "name",
				Message: fmt.Sprintf("duplicate scenario name: %s", scenario.Name),
				Index:   i,
			})
		} else {
			names[scenario.Name] = true
		}

		if len(scenario.Products) == 0 {
			errs = append(errs, ValidationError{
				Field:   "products",
				Message: fmt.Sprintf("%s lists no products", label),
				Index:   i,
			})
		}

		if scenario.ExpectedItemCount != len(scenario.Products) {
			errs = append(errs, ValidationError{
				Field: "expected_item_count",
				Message: fmt.Sprintf("%s expects %d items but lists %d products",
					label, scenario.ExpectedItemCount, len(scenario.Products)),
				Index: i,
			})
		}

		if scenario.Checkout.FirstName == "" || scenario.Checkout.LastName == "" ||
			scenario.Checkout.PostalCode == "" {
			errs = append(errs, ValidationError{
				Field:   "checkout",
				Message: fmt.Sprintf("%s has incomplete checkout information", label),
				Index:   i,
			})
		}
	}
	return errs
}
