package page

import (
	"fmt"
	"strings"
)

// Login page locators.
var (
	usernameField    = ByID("user-name")
	passwordField    = ByID("password")
	loginButton      = ByID("login-button")
	loginLogo        = ByClassName("login_logo")
	errorBanner      = ByCSS("h3[data-test='error']")
	errorCloseButton = ByClassName("error-button")
	credentialsHint  = ByID("login_credentials")
)

// LoginPage wraps the storefront login screen.
type LoginPage struct {
	base    *Base
	baseURL string
}

// NewLoginPage creates a LoginPage over the given base.
func NewLoginPage(base *Base, baseURL string) *LoginPage {
	return &LoginPage{base: base, baseURL: baseURL}
}

// Name returns the page name.
func (p *LoginPage) Name() string { return "login" }

// Path returns the page path relative to the base URL.
func (p *LoginPage) Path() string { return "/" }

// Open navigates to the login page and waits for it to load.
func (p *LoginPage) Open() error {
	if err := p.base.Navigate(p.baseURL); err != nil {
		return fmt.Errorf("open login page: %w", err)
	}
	return p.base.WaitPageReady()
}

// IsCurrent reports whether the browser shows the login page:
// the URL matches the base, the logo and login button are
// visible, and the post-login inventory fragment is absent.
func (p *LoginPage) IsCurrent() (bool, error) {
	url, err := p.base.CurrentURL()
	if err != nil {
		return false, err
	}
	if !strings.HasPrefix(url, p.baseURL) {
		return false, nil
	}
	if strings.Contains(url, inventoryPath) {
		return false, nil
	}
	return p.base.IsDisplayed(loginLogo) &&
		p.base.IsDisplayed(loginButton), nil
}

// EnterUsername types the username into the login form.
func (p *LoginPage) EnterUsername(username string) error {
	return p.base.Type(usernameField, username)
}

// EnterPassword types the password into the login form.
func (p *LoginPage) EnterPassword(password string) error {
	return p.base.Type(passwordField, password)
}

// ClickLogin submits the login form.
func (p *LoginPage) ClickLogin() error {
	return p.base.Click(loginButton)
}

// Login fills both fields and submits.
func (p *LoginPage) Login(username, password string) error {
	if err := p.EnterUsername(username); err != nil {
		return err
	}
	if err := p.EnterPassword(password); err != nil {
		return err
	}
	return p.ClickLogin()
}

// ErrorMessage returns the text of the error banner, or the
// empty string when no banner is shown.
func (p *LoginPage) ErrorMessage() (string, error) {
	if !p.base.IsDisplayed(errorBanner) {
		return "", nil
	}
	return p.base.Text(errorBanner)
}

// IsErrorDisplayed reports whether the error banner is visible.
func (p *LoginPage) IsErrorDisplayed() bool {
	return p.base.IsDisplayed(errorBanner)
}

// CloseError dismisses the error banner. It is a no-op when the
// banner is not shown.
func (p *LoginPage) CloseError() error {
	if !p.base.IsDisplayed(errorCloseButton) {
		return nil
	}
	return p.base.Click(errorCloseButton)
}

// IsUsernameFieldPresent reports whether the username field is
// visible.
func (p *LoginPage) IsUsernameFieldPresent() bool {
	return p.base.IsDisplayed(usernameField)
}

// IsPasswordFieldPresent reports whether the password field is
// visible.
func (p *LoginPage) IsPasswordFieldPresent() bool {
	return p.base.IsDisplayed(passwordField)
}

// IsLoginButtonEnabled reports whether the login button accepts
// clicks.
func (p *LoginPage) IsLoginButtonEnabled() bool {
	return p.base.IsEnabled(loginButton)
}

// AcceptedUsernames parses the credentials hint block shown on
// the login page into one string per recognized entry. The
// heading line is skipped.
func (p *LoginPage) AcceptedUsernames() ([]string, error) {
	text, err := p.base.Text(credentialsHint)
	if err != nil {
		return nil, err
	}

	var usernames []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ":") {
			continue
		}
		usernames = append(usernames, line)
	}
	return usernames, nil
}

// ClearForm clears both login fields.
func (p *LoginPage) ClearForm() error {
	if err := p.base.Type(usernameField, ""); err != nil {
		return err
	}
	return p.base.Type(passwordField, "")
}
