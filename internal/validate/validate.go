package validate

import "strings"

const maxQty = 50

// Qty clamps a requested quantity into the allowed window. Anything below 1
// becomes 1; anything past the cap is clamped to avoid abuse.
func Qty(n int) int {
	if n < 1 {
		return 1
	}
	if n > maxQty {
		return maxQty
	}
	return n
}

// Username trims and bounds a platform display name before storing it.
func Username(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 64 {
		s = s[:64]
	}
	return s
}

// AddressField trims a single shipping address component.
func AddressField(s string) string {
	return strings.TrimSpace(s)
}
