// Package dnsname constructs the exact query names used by the audit engine:
// policy-record owner names (SPF/DMARC/DKIM/CAA/MX), reverse-DNS zones for
// PTR lookups, and Spamhaus DQS blocklist zone names.
package dnsname

import (
	"fmt"
	"strings"

	"github.com/mailposture/mailposture/internal/apperr"
)

// Spamhaus DQS zone hosts. IP targets are checked against ZEN, domains
// against DBL.
const (
	ZenZone = "zen.dq.spamhaus.net"
	DBLZone = "dbl.dq.spamhaus.net"
)

// DMARC returns the TXT owner name for a domain's DMARC policy record.
func DMARC(domain string) string {
	return "_dmarc." + domain
}

// DKIM returns the TXT owner name for a domain's DKIM public key under the
// given selector.
func DKIM(selector, domain string) string {
	return selector + "._domainkey." + domain
}

// ReverseIPv4 reverses the octets of a dotted-quad address: "1.2.3.4" → "4.3.2.1".
// The input must already be a valid dotted-quad.
func ReverseIPv4(ip string) string {
	octets := strings.Split(ip, ".")
	for i, j := 0, len(octets)-1; i < j; i, j = i+1, j-1 {
		octets[i], octets[j] = octets[j], octets[i]
	}
	return strings.Join(octets, ".")
}

// ExpandIPv6 expands a compressed IPv6 literal to its eight 4-digit groups,
// lowercased. At most one "::" run is accepted; embedded IPv4-mapped forms
// and anything else outside the plain hex-group grammar are rejected with
// apperr.ErrInvalidInput rather than best-effort expanded.
func ExpandIPv6(ip string) ([]string, error) {
	s := strings.ToLower(strings.TrimSpace(ip))
	if s == "" || strings.Contains(s, ".") {
		return nil, fmt.Errorf("%w: not a plain IPv6 literal: %q", apperr.ErrInvalidInput, ip)
	}

	halves := strings.Split(s, "::")
	if len(halves) > 2 {
		return nil, fmt.Errorf("%w: multiple \"::\" runs in %q", apperr.ErrInvalidInput, ip)
	}

	var groups []string
	switch len(halves) {
	case 1:
		groups = strings.Split(s, ":")
		if len(groups) != 8 {
			return nil, fmt.Errorf("%w: expected 8 groups in uncompressed IPv6 %q, got %d", apperr.ErrInvalidInput, ip, len(groups))
		}
	case 2:
		left := splitGroups(halves[0])
		right := splitGroups(halves[1])
		missing := 8 - len(left) - len(right)
		if missing < 1 {
			return nil, fmt.Errorf("%w: \"::\" expands to no groups in %q", apperr.ErrInvalidInput, ip)
		}
		groups = left
		for range missing {
			groups = append(groups, "0")
		}
		groups = append(groups, right...)
	}

	expanded := make([]string, 8)
	for i, g := range groups {
		if !isHexGroup(g) {
			return nil, fmt.Errorf("%w: invalid IPv6 group %q in %q", apperr.ErrInvalidInput, g, ip)
		}
		expanded[i] = strings.Repeat("0", 4-len(g)) + g
	}
	return expanded, nil
}

// splitGroups splits one side of a "::" run, tolerating the empty side that
// appears when the run sits at either end of the address.
func splitGroups(half string) []string {
	if half == "" {
		return nil
	}
	return strings.Split(half, ":")
}

func isHexGroup(g string) bool {
	if len(g) == 0 || len(g) > 4 {
		return false
	}
	for _, c := range g {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// reverseNibbles expands ip and returns its 32 hex digits in reverse order,
// dot-joined, the label form shared by ip6.arpa and the DQS zones.
func reverseNibbles(ip string) (string, error) {
	groups, err := ExpandIPv6(ip)
	if err != nil {
		return "", err
	}
	hex := strings.Join(groups, "")
	nibbles := make([]string, 0, len(hex))
	for i := len(hex) - 1; i >= 0; i-- {
		nibbles = append(nibbles, string(hex[i]))
	}
	return strings.Join(nibbles, "."), nil
}

// PTR builds the reverse-DNS owner name for an IP literal:
// in-addr.arpa for IPv4, ip6.arpa (per-nibble) for IPv6. Input that is
// neither a dotted-quad nor colon-bearing is rejected without a lookup.
func PTR(ip string) (string, error) {
	if isDottedQuad(ip) {
		return ReverseIPv4(ip) + ".in-addr.arpa", nil
	}
	if strings.Contains(ip, ":") {
		rev, err := reverseNibbles(ip)
		if err != nil {
			return "", err
		}
		return rev + ".ip6.arpa", nil
	}
	return "", fmt.Errorf("%w: not an IP literal: %q", apperr.ErrInvalidInput, ip)
}

// Blocklist builds the DQS query name for a target. IPv4 addresses are
// octet-reversed and IPv6 addresses nibble-reversed like PTR zones; domains
// are used verbatim as the leftmost label. The DQS key sits between the
// target label(s) and the zone host.
func Blocklist(targetLabel, dqsKey, zone string) (string, error) {
	var label string
	switch {
	case isDottedQuad(targetLabel):
		label = ReverseIPv4(targetLabel)
	case strings.Contains(targetLabel, ":"):
		rev, err := reverseNibbles(targetLabel)
		if err != nil {
			return "", err
		}
		label = rev
	default:
		label = targetLabel
	}
	return label + "." + dqsKey + "." + zone, nil
}

// isDottedQuad reports whether s looks like an IPv4 dotted-quad: four
// dot-separated decimal octets in range.
func isDottedQuad(s string) bool {
	octets := strings.Split(s, ".")
	if len(octets) != 4 {
		return false
	}
	for _, o := range octets {
		if len(o) == 0 || len(o) > 3 {
			return false
		}
		n := 0
		for _, c := range o {
			if c < '0' || c > '9' {
				return false
			}
			n = n*10 + int(c-'0')
		}
		if n > 255 {
			return false
		}
	}
	return true
}
