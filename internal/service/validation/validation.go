package validation

import (
	"html"
	"regexp"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

const (
	maxLoginLength    = 50
	minPasswordLength = 8
	maxPasswordLength = 64
)

var (
	loginPattern = regexp.MustCompile(`^[\p{L}\p{N}\-_.!@#$%^&*()+=]+$`)
	strict       = bluemonday.StrictPolicy()
)

// ValidateLogin accepts 1-50 letters, digits and punctuation without spaces or markup.
func ValidateLogin(login string) bool {
	n := utf8.RuneCountInString(login)
	if n == 0 || n > maxLoginLength {
		return false
	}
	if !loginPattern.MatchString(login) {
		return false
	}
	// Entity escaping of "&" is not markup.
	return html.UnescapeString(strict.Sanitize(login)) == login
}

func ValidatePassword(password string) bool {
	n := utf8.RuneCountInString(password)
	if n < minPasswordLength || n > maxPasswordLength {
		return false
	}
	for _, r := range password {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
