package doh

import "strings"

// ConcatTXT normalizes the data field of a TXT answer. JSON DoH endpoints
// return TXT rdata as one or more quoted character-strings; the segments are
// concatenated with no separator, which is the RFC 1035 semantic long DKIM
// keys rely on. Data without quotes is returned trimmed.
func ConcatTXT(data string) string {
	if !strings.Contains(data, `"`) {
		return strings.TrimSpace(data)
	}
	var b strings.Builder
	inQuote := false
	for _, c := range data {
		if c == '"' {
			inQuote = !inQuote
			continue
		}
		if inQuote {
			b.WriteRune(c)
		}
	}
	return b.String()
}
