package waitlist

import "strings"

// Per-field gates for the signup form. These are deliberately minimal and must
// stay in lockstep with what the form UI enforces: a trimmed non-empty value,
// and for email merely the presence of an "@". Tightening them would reject
// signups the product currently accepts.

// ValidFullName reports whether the full name field may advance.
func ValidFullName(v string) bool {
	return strings.TrimSpace(v) != ""
}

// ValidEmail reports whether the email field may advance.
func ValidEmail(v string) bool {
	return strings.TrimSpace(v) != "" && strings.Contains(v, "@")
}

// ValidUsername reports whether the username field may advance.
func ValidUsername(v string) bool {
	return strings.TrimSpace(v) != ""
}
