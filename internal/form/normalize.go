package form

import (
	"regexp"
	"strings"
)

var nonDigitRe = regexp.MustCompile(`\D`)

// NormalizePhone reduces a raw phone value to a canonical 10-digit string.
// A 7-digit number is completed with the default area code. Anything that
// does not end up at exactly 10 digits is rejected. Idempotent: a canonical
// number passes through unchanged.
func NormalizePhone(raw, defaultAreaCode string) (string, error) {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) == 7 {
		digits = defaultAreaCode + digits
	}
	if len(digits) != 10 {
		return "", &ValidationError{Field: "phone", Message: "invalid phone"}
	}
	return digits, nil
}

// CanonicalPhone is the lenient variant used when comparing against numbers
// stored in HCP, which arrive in E.164 form ("+14155551234"). Returns ""
// when the stored value cannot be reduced to 10 digits.
func CanonicalPhone(raw string) string {
	digits := nonDigitRe.ReplaceAllString(raw, "")
	if len(digits) == 11 && strings.HasPrefix(digits, "1") {
		digits = digits[1:]
	}
	if len(digits) != 10 {
		return ""
	}
	return digits
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// ParseName splits a combined name into first and last. Everything before
// the final token is treated as the first name ("Mary Jane Watson" becomes
// "Mary Jane" / "Watson"); a single token has no last name.
func ParseName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return strings.Join(parts[:len(parts)-1], " "), parts[len(parts)-1]
	}
}
