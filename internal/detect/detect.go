// Package detect maps observed DNS values to the hosting providers behind
// them. The signature tables are static data loaded once at startup, with an
// optional user override file.
package detect

import "strings"

// FallbackProvider is reported when no signature matches an MX exchange.
const FallbackProvider = "Custom / Private"

// Detector matches record values against the loaded signature tables.
type Detector struct {
	patterns Patterns
}

// NewDetector creates a Detector over the given patterns.
func NewDetector(patterns Patterns) *Detector {
	return &Detector{patterns: patterns}
}

// EmailProvider labels an MX exchange hostname by suffix signature.
// No match yields FallbackProvider.
func (d *Detector) EmailProvider(exchange string) string {
	host := strings.ToLower(strings.TrimSuffix(exchange, "."))
	for _, p := range d.patterns.Email {
		if matchSuffix(host, p.Suffix) {
			return p.Provider
		}
	}
	return FallbackProvider
}

// matchSuffix reports whether host equals suffix or ends with "."+suffix,
// so "google.com" matches "aspmx.l.google.com" but not "notgoogle.com".
func matchSuffix(host, suffix string) bool {
	return host == suffix || strings.HasSuffix(host, "."+suffix)
}
