// Package dmarc audits a domain's DMARC policy: TXT lookup at _dmarc.<domain>
// and RFC 7489 tag extraction with relaxed-alignment defaults.
package dmarc

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

// recordPrefix identifies a DMARC record, matched case-insensitively after
// trimming surrounding whitespace.
const recordPrefix = "v=dmarc1"

// RFC 7489 defaults applied when a tag is absent.
const (
	defaultPolicy    = "none"
	defaultAlignment = "r"
)

// Service audits DMARC records via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
}

// NewService creates a new DMARC audit service.
func NewService(resolver *doh.Client, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "dmarc" }

// AggregateResults combines multiple DMARC results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves TXT records at _dmarc.<domain> and parses the policy. Only
// the first answer with the v=DMARC1 prefix is used. NXDOMAIN or no
// prefixed answer yields the missing status.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: DMARC audits apply to domains, got %s %q", services.ErrInvalidInput, tgt.Kind, domain)
	}

	result := &Result{Input: tgt.Input, Status: services.StatusMissing}

	resp, err := s.resolver.Resolve(ctx, dnsname.DMARC(tgt.Input), dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	if resp.Outcome == doh.OutcomeNXDomain {
		s.logger.Debug("dmarc: record name does not exist", "domain", tgt.Input)
		return result, nil
	}

	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypeTXT) {
			continue
		}
		txt := output.StripANSI(doh.ConcatTXT(ans.Data))
		if strings.HasPrefix(strings.ToLower(strings.TrimSpace(txt)), recordPrefix) {
			parsed := Parse(txt)
			parsed.Input = tgt.Input
			return &parsed, nil
		}
	}
	return result, nil
}

// Parse classifies a single DMARC record text and extracts the p, adkim, and
// aspf tags, applying the RFC 7489 defaults for absent tags.
func Parse(raw string) Result {
	result := Result{Raw: raw}

	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(raw)), recordPrefix) {
		result.Status = services.StatusInvalid
		return result
	}

	result.Status = services.StatusValid
	result.Policy = tagValue(raw, "p", defaultPolicy)
	result.ADKIM = tagValue(raw, "adkim", defaultAlignment)
	result.ASPF = tagValue(raw, "aspf", defaultAlignment)
	return result
}

// tagValue extracts the lowercased value of a semicolon-delimited tag, with a
// case-insensitive key match. fallback applies when the tag is absent or empty.
func tagValue(raw, key, fallback string) string {
	for _, part := range strings.Split(raw, ";") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(kv[0]), key) {
			continue
		}
		if v := strings.ToLower(strings.TrimSpace(kv[1])); v != "" {
			return v
		}
	}
	return fallback
}
