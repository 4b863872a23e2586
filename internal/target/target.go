// Package target normalizes audit inputs and classifies them as domain,
// IPv4, or IPv6 targets. The kind decides which query family applies
// downstream (forward policy records vs. reverse/blocklist zones).
package target

import (
	"fmt"
	"net/netip"
	"regexp"
	"strings"

	"github.com/mailposture/mailposture/internal/apperr"
)

// Kind is the derived class of an audit target.
type Kind string

// Target kinds. A target's kind never changes after Parse.
const (
	KindDomain Kind = "domain"
	KindIPv4   Kind = "ipv4"
	KindIPv6   Kind = "ipv6"
)

// Target is a normalized audit input. Immutable once created.
type Target struct {
	// Input is the normalized form: trimmed, lowercased for domains,
	// verbatim (post-trim) for IP literals.
	Input string `json:"input"`
	Kind  Kind   `json:"kind"`
}

// domainRegexp validates RFC-compliant hostnames.
var domainRegexp = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)+[a-zA-Z]{2,}$`)

// IsDomain reports whether s is a valid RFC-compliant hostname.
func IsDomain(s string) bool {
	return domainRegexp.MatchString(s)
}

// Parse normalizes raw and derives its kind. Anything that is neither a
// dotted-quad IPv4 literal, a colon-bearing IPv6 literal, nor a valid
// hostname is rejected with apperr.ErrInvalidInput.
func Parse(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Target{}, fmt.Errorf("%w: empty target", apperr.ErrInvalidInput)
	}

	if addr, err := netip.ParseAddr(s); err == nil {
		if addr.Is4() {
			return Target{Input: s, Kind: KindIPv4}, nil
		}
		return Target{Input: s, Kind: KindIPv6}, nil
	}
	// A colon-bearing input that netip rejects is a malformed IPv6 literal,
	// not a domain candidate.
	if strings.Contains(s, ":") {
		return Target{}, fmt.Errorf("%w: malformed IPv6 address: %q", apperr.ErrInvalidInput, raw)
	}

	s = strings.ToLower(s)
	if !IsDomain(s) {
		return Target{}, fmt.Errorf("%w: must be a valid domain name or IP literal: %q", apperr.ErrInvalidInput, raw)
	}
	return Target{Input: s, Kind: KindDomain}, nil
}

// IsIP reports whether the target is an IP literal of either family.
func (t Target) IsIP() bool {
	return t.Kind == KindIPv4 || t.Kind == KindIPv6
}
