package e2e

import (
	"testing"

	testsuite "github.com/stretchr/testify/suite"

	"digital.vasic.storefront/pkg/suite"
)

// JourneySuite runs full purchase journeys driven by the
// scenario files under testdata/scenarios.
type JourneySuite struct {
	suite.BrowserSuite
}

func TestJourneySuite(t *testing.T) {
	skipUnlessE2E(t)
	testsuite.Run(t, &JourneySuite{
		BrowserSuite: suite.BrowserSuite{Name: "JourneySuite"},
	})
}

func (s *JourneySuite) TestShoppingScenarios() {
	scenarios := s.LoadScenarios("scenarios")
	s.Require().NotEmpty(scenarios)

	for _, scenario := range scenarios {
		s.Run(scenario.Name, func() {
			s.Require().NoError(s.LoginPage().Open())
			s.Login(standardUser, password)

			productsPage := s.ProductsPage()
			for _, product := range scenario.Products {
				s.Require().NoError(productsPage.AddToCart(product))
			}

			count, err := productsPage.CartItemCount()
			s.Require().NoError(err)
			s.Equal(scenario.ExpectedItemCount, count)

			s.Require().NoError(productsPage.GoToCart())
			cart := s.CartPage()

			items, err := cart.Items()
			s.Require().NoError(err)
			s.Len(items, scenario.ExpectedItemCount)

			s.Require().NoError(cart.CompleteCheckout(scenario.Checkout))

			done, err := cart.IsOrderComplete()
			s.Require().NoError(err)
			s.True(done)

			// Back to a clean state for the next scenario.
			s.Require().NoError(cart.BackToProducts())
			s.Require().NoError(productsPage.Logout())
		})
	}
}
