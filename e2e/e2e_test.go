// Package e2e holds the browser-driven suites against the live
// storefront. The suites need a running chromedriver or
// geckodriver and network access, so they only run when the E2E
// environment variable is set.
package e2e

import (
	"os"
	"testing"
)

func skipUnlessE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("E2E") == "" {
		t.Skip("set E2E=1 to run browser tests")
	}
}

// Credentials shared by the saucedemo test accounts.
const (
	standardUser  = "standard_user"
	lockedOutUser = "locked_out_user"
	password      = "secret_sauce"
)
