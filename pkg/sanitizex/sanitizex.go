package sanitizex

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanSingleLine normalizes Unicode (NFC), strips control characters, trims
// surrounding whitespace, and collapses any internal whitespace run to a
// single ASCII space. Use it for fields that must not contain newlines, such
// as email addresses, names, and titles.
func CleanSingleLine(s string) string {
	if s == "" {
		return ""
	}
	s = norm.NFC.String(s)
	s = strings.Map(func(r rune) rune {
		if r == '' || unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
	s = strings.TrimSpace(s)

	var b strings.Builder
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !space {
				b.WriteByte(' ')
				space = true
			}
		} else {
			b.WriteRune(r)
			space = false
		}
	}
	return b.String()
}

// CleanEmail lowercases in addition to CleanSingleLine. One verification
// record exists per email, so every path that keys on an address must agree
// on its casing.
func CleanEmail(s string) string {
	return strings.ToLower(CleanSingleLine(s))
}
