package nlu

import (
	"regexp"
	"strings"
)

// orderIDPatterns are tried in order; the first match wins. Prefixed
// order codes precede bare digit runs so that phone numbers and
// quantities are not misread as order IDs.
var orderIDPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ORD[0-9]{3,6}`),
	regexp.MustCompile(`(?i)ORDER[0-9]{3,6}`),
	regexp.MustCompile(`\b[0-9]{5,8}\b`),
	regexp.MustCompile(`#[0-9]{4,6}`),
}

// FindOrderID extracts an order-identifier-like substring from the raw
// message, uppercased. Returns "" when nothing matches; callers treat
// that as "entity not present", never as an error.
func FindOrderID(text string) string {
	for _, p := range orderIDPatterns {
		if m := p.FindString(text); m != "" {
			return strings.ToUpper(m)
		}
	}
	return ""
}
