// Package dkim audits a domain's DKIM public key under a given selector.
// Keys are fetched as TXT at <selector>._domainkey.<domain>; because long
// keys are split across multiple quoted strings, all TXT strings of the
// answer set are concatenated in answer order with no separator.
package dkim

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/dnsname"
	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// DefaultSelector is used when the caller does not name one.
const DefaultSelector = "default"

// Service audits DKIM key records via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
	selector string
}

// NewService creates a new DKIM audit service for the given selector.
func NewService(resolver *doh.Client, logger *slog.Logger, selector string) *Service {
	if selector == "" {
		selector = DefaultSelector
	}
	return &Service{resolver: resolver, logger: logger, selector: selector}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "dkim" }

// AggregateResults combines multiple DKIM results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves the selector-qualified key name and reassembles the key text.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: DKIM audits apply to domains, got %s %q", services.ErrInvalidInput, tgt.Kind, domain)
	}

	result := &Result{Input: tgt.Input, Selector: s.selector, Status: services.StatusMissing}

	resp, err := s.resolver.Resolve(ctx, dnsname.DKIM(s.selector, tgt.Input), dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	if resp.Outcome == doh.OutcomeNXDomain {
		s.logger.Debug("dkim: selector does not exist", "domain", tgt.Input, "selector", s.selector)
		return result, nil
	}

	var b strings.Builder
	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypeTXT) {
			continue
		}
		b.WriteString(doh.ConcatTXT(ans.Data))
	}
	if b.Len() == 0 {
		return result, nil
	}

	parsed := Parse(output.StripANSI(b.String()))
	parsed.Input = tgt.Input
	parsed.Selector = s.selector
	return &parsed, nil
}

// Parse classifies a reassembled DKIM key record. A record without a
// non-empty p= tag is a revoked or malformed key.
func Parse(raw string) Result {
	result := Result{Raw: raw}

	key := tagValue(raw, "p")
	if key == "" {
		result.Status = services.StatusInvalid
		return result
	}
	result.Status = services.StatusValid
	result.KeyType = tagValue(raw, "k")
	if result.KeyType == "" {
		// RFC 6376: k defaults to rsa.
		result.KeyType = "rsa"
	}
	return result
}

// tagValue extracts a semicolon-delimited tag value with a case-insensitive
// key match. Returns "" when absent.
func tagValue(raw, key string) string {
	for _, part := range strings.Split(raw, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			return strings.TrimSpace(kv[1])
		}
	}
	return ""
}
