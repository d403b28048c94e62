package logging

import (
	"strings"
	"unicode/utf8"
)

// RedactEmail keeps the first two runes of the local part and the full
// domain, masking the rest. Inputs that are empty, malformed, or whose local
// part is shorter than three runes come back unchanged.
func RedactEmail(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	at := strings.IndexByte(s, '@')
	if at <= 0 || at == len(s)-1 {
		return s
	}

	local, domain := s[:at], s[at+1:]
	if utf8.RuneCountInString(local) < 3 {
		return s
	}

	offset := 0
	for count := 0; count < 2 && offset < len(local); count++ {
		_, size := utf8.DecodeRuneInString(local[offset:])
		offset += size
	}

	return local[:offset] + "****@" + domain
}
