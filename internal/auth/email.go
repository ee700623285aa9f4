package auth

import "regexp"

// emailPattern accepts local@domain where the domain has at least one dot and
// the final label is alphabetic with length >= 2. Purely syntactic; no DNS or
// mailbox checks.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// IsValidEmail reports whether the candidate has an acceptable email shape.
func IsValidEmail(candidate string) bool {
	return emailPattern.MatchString(candidate)
}
