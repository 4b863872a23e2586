// Package ptr resolves the reverse-DNS hostname of an IP address. The
// owner name is built locally (in-addr.arpa or per-nibble ip6.arpa) so
// malformed addresses are rejected before any lookup happens.
package ptr

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/dnsname"
	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// Service resolves PTR records via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
}

// NewService creates a new reverse-DNS service.
func NewService(resolver *doh.Client, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "ptr" }

// AggregateResults combines multiple PTR results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves the reverse mapping for ip. Only the first answer is
// reported; a host with several PTR records is unusual and the extra
// names carry no posture signal.
func (s *Service) Run(ctx context.Context, ip string) (services.Result, error) {
	tgt, err := target.Parse(ip)
	if err != nil {
		return nil, err
	}
	if !tgt.IsIP() {
		return nil, fmt.Errorf("%w: reverse DNS applies to IP addresses, got %q", services.ErrInvalidInput, ip)
	}

	qname, err := dnsname.PTR(tgt.Input)
	if err != nil {
		return nil, err
	}

	result := &Result{Input: tgt.Input}

	resp, err := s.resolver.Resolve(ctx, qname, dns.TypePTR)
	if err != nil {
		return nil, err
	}
	if resp.Outcome == doh.OutcomeNXDomain {
		result.Status = services.StatusMissing
		return result, nil
	}

	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypePTR) {
			continue
		}
		result.Hostname = strings.ToLower(strings.TrimSuffix(strings.TrimSpace(ans.Data), "."))
		result.Status = services.StatusValid
		break
	}
	if result.Hostname == "" {
		result.Status = services.StatusMissing
	}
	return result, nil
}
