// Package spf audits a domain's SPF policy: TXT lookup at the apex, record
// selection by the v=spf1 prefix, and RFC 7208 lookup-mechanism counting.
package spf

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// recordPrefix identifies an SPF record, matched case-insensitively.
const recordPrefix = "v=spf1"

// maxLookups is the RFC 7208 limit of DNS-querying mechanisms per record.
const maxLookups = 10

// lookupMechanisms are the substrings counted against maxLookups. The bare
// "a " / "mx " forms catch mechanisms without an explicit domain argument.
var lookupMechanisms = []string{"include:", "a:", "a ", "mx:", "mx ", "ptr", "exists:"}

// Service audits SPF records via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
}

// NewService creates a new SPF audit service.
func NewService(resolver *doh.Client, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "spf" }

// AggregateResults combines multiple SPF results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves TXT records for domain and parses the SPF policy. Only the
// first answer whose text begins with v=spf1 (case-insensitive) is used;
// further SPF-looking answers are ignored. No answer with the prefix, or an
// NXDOMAIN reply, yields the missing status.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: SPF audits apply to domains, got %s %q", services.ErrInvalidInput, tgt.Kind, domain)
	}

	result := &Result{Input: tgt.Input, Status: services.StatusMissing}

	resp, err := s.resolver.Resolve(ctx, tgt.Input, dns.TypeTXT)
	if err != nil {
		return nil, err
	}
	if resp.Outcome == doh.OutcomeNXDomain {
		s.logger.Debug("spf: domain does not exist", "domain", tgt.Input)
		return result, nil
	}

	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypeTXT) {
			continue
		}
		txt := output.StripANSI(doh.ConcatTXT(ans.Data))
		if strings.HasPrefix(strings.ToLower(txt), recordPrefix) {
			parsed := Parse(txt)
			parsed.Input = tgt.Input
			return &parsed, nil
		}
	}
	return result, nil
}

// Parse classifies a single SPF record text. Exposed separately from Run so
// record text from any source can be audited.
func Parse(raw string) Result {
	result := Result{Raw: raw}

	if !strings.HasPrefix(strings.ToLower(raw), recordPrefix) {
		result.Status = services.StatusInvalid
		return result
	}

	result.LookupCount = countLookups(raw)
	result.Mechanism = allQualifier(raw)
	if result.LookupCount > maxLookups {
		result.Status = services.StatusWarning
	} else {
		result.Status = services.StatusValid
	}
	return result
}

// countLookups counts lookup-consuming mechanism occurrences. Each occurrence
// of each form counts once, so eleven include: tokens trip the RFC limit.
func countLookups(raw string) int {
	lower := strings.ToLower(raw)
	count := 0
	for _, m := range lookupMechanisms {
		count += strings.Count(lower, m)
	}
	return count
}

// allQualifier returns the trailing all-mechanism token, normalizing the
// bare "all" form to "+all". Empty when the record has no all mechanism.
func allQualifier(raw string) string {
	for _, field := range strings.Fields(strings.ToLower(raw)) {
		switch field {
		case "+all", "-all", "~all", "?all":
			return field
		case "all":
			return "+all"
		}
	}
	return ""
}
