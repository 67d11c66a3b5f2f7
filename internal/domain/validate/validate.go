// Package validate holds the stateless input predicates of the domain:
// email well-formedness and the password strength policy. All functions
// are pure and deterministic.
package validate

import (
	"regexp"
	"strings"
)

// emailPattern requires a localpart@domain.tld shape: word/dot/hyphen
// characters, an @, word/dot/hyphen characters, a literal dot, and a
// trailing run of word characters. No DNS or mailbox existence check.
var emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)

// specialChars is the fixed set of characters accepted as "special" by
// the password strength policy.
const specialChars = "!@#$%^&*()_+=-"

// NormalizeEmail lower-cases and trims an email address. The normalized
// form is the uniqueness key for accounts.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether s matches the expected email shape.
func IsValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// IsStrongPassword reports whether s satisfies the strength policy:
// length >= 8 with at least one uppercase ASCII letter, one lowercase
// ASCII letter, one digit and one special character. All five
// conditions are mandatory.
func IsStrongPassword(s string) bool {
	if len(s) < 8 {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(specialChars, r):
			special = true
		}
	}

	return upper && lower && digit && special
}
