package domain

import "strings"

const (
	minPasswordLen = 8
	maxPasswordLen = 16

	passwordSpecials = "!@#$%^&*"
)

// ValidPassword checks the account password policy: 8-16 characters drawn
// from letters, digits and !@#$%^&*, with at least one uppercase letter and
// at least one special character.
func ValidPassword(pw string) bool {
	if len(pw) < minPasswordLen || len(pw) > maxPasswordLen {
		return false
	}

	var hasUpper, hasSpecial bool
	for _, r := range pw {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case strings.ContainsRune(passwordSpecials, r):
			hasSpecial = true
		default:
			return false
		}
	}
	return hasUpper && hasSpecial
}
