package testdata

import "github.com/ryanuber/go-glob"

// FilterUsers returns the rows whose user type matches the
// glob pattern. An empty pattern matches everything.
func FilterUsers(users []UserCredentials, pattern string) []UserCredentials {
	if pattern == "" {
		return users
	}

	var matched []UserCredentials
	for _, user := range users {
		if glob.Glob(pattern, user.UserType) {
			matched = append(matched, user)
		}
	}
	return matched
}

// FilterScenarios returns the scenarios whose name matches the
// glob pattern. An empty pattern matches everything.
func FilterScenarios(scenarios []ShoppingScenario, pattern string) []ShoppingScenario {
	if pattern == "" {
		return scenarios
	}

	var matched []ShoppingScenario
	for _, scenario := range scenarios {
		if glob.Glob(pattern, scenario.Name) {
			matched = append(matched, scenario)
		}
	}
	return matched
}
