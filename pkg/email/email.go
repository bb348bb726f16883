package email

import (
	"regexp"
	"strings"
)

// pattern accepts the common mailbox@domain.tld shape. Deliverability checks
// belong to whatever sends mail, not to declaration capture.
var pattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Normalize trims surrounding whitespace from a raw email address.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Valid reports whether the normalized address matches the accepted shape.
func Valid(address string) bool {
	return pattern.MatchString(address)
}
