package env

import (
	"net/url"
	"strings"
)

// RedactPassword masks a password, keeping only the first character.
func RedactPassword(password string) string {
	if len(password) <= 1 {
		return strings.Repeat("*", len(password))
	}
	return password[:1] + strings.Repeat("*", len(password)-1)
}

// RedactValue masks a value, showing only the first 4 characters.
// Short values are masked entirely.
func RedactValue(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return s[:4] + strings.Repeat("*", len(s)-4)
}

// RedactURL masks credentials embedded in a URL string.
func RedactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	if u.User != nil {
		password, hasPassword := u.User.Password()
		if hasPassword {
			u.User = url.UserPassword(u.User.Username(), RedactValue(password))
		}
	}
	return u.String()
}

// LooksSensitive reports whether an environment or field key names
// a credential-bearing value.
func LooksSensitive(key string) bool {
	k := strings.ToLower(key)
	for _, marker := range []string{
		"password", "passwd", "secret", "token", "credential", "api_key", "apikey",
	} {
		if strings.Contains(k, marker) {
			return true
		}
	}
	return false
}
