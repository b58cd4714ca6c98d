package user

import "regexp"

// Field validators. By convention an empty value passes every shape check:
// mandatory presence is enforced by the service for the operations that
// require the field, so "missing" and "malformed" are never reported twice.

var (
	namePattern  = regexp.MustCompile(`^[A-Za-z\s'-]+$`)
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9+_.-]+@[A-Za-z0-9-]+(\.[A-Za-z0-9-]+)*\.[A-Za-z]{2,}$`)
	digitsOnly   = regexp.MustCompile(`^[0-9]+$`)
)

const (
	nameMinLen = 2
	nameMaxLen = 100
)

// ValidName reports whether the name contains only letters, spaces,
// apostrophes and hyphens. Length bounds are checked separately by
// ValidNameLength; both must hold.
func ValidName(name string) bool {
	if name == "" {
		return true
	}
	return namePattern.MatchString(name)
}

// ValidNameLength reports whether the name length is within 2..100 inclusive.
func ValidNameLength(name string) bool {
	if name == "" {
		return true
	}
	return len(name) >= nameMinLen && len(name) <= nameMaxLen
}

// ValidEmail reports whether the address matches the accepted grammar:
// local part of alphanumerics and +_.-, then domain labels separated by
// dots with a final label of at least two letters.
func ValidEmail(email string) bool {
	if email == "" {
		return true
	}
	return emailPattern.MatchString(email)
}

// ValidPassword requires at least 8 characters with at least one ASCII
// letter and one digit. No upper bound, no special-character rule.
func ValidPassword(password string) bool {
	if password == "" {
		return true
	}
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
			hasLetter = true
		case r >= '0' && r <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

// ValidPhone reports whether the number is digits-only and its length falls
// within the country's configured range. An unknown country code fails
// regardless of the number.
func ValidPhone(code CountryCode, number string) bool {
	if number == "" {
		return true
	}
	if !code.Valid() {
		return false
	}
	min, max := code.PhoneLengthRange()
	return len(number) >= min && len(number) <= max && digitsOnly.MatchString(number)
}
