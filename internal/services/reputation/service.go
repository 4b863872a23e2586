// Package reputation queries the Spamhaus Data Query Service and decodes
// the returned loopback codes into datasets, reasons and a risk tier.
// IPs go to the ZEN zone (octet- or nibble-reversed), domains to the DBL
// zone verbatim. A rejected DQS key is surfaced as an error, never as a
// clean or listed verdict.
package reputation

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/dnsname"
	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// Service performs DQS blocklist lookups via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
	dqsKey   string
	release  *ReleaseClient
}

// NewService creates a new reputation service. release may be nil, in
// which case removal dates are never fetched.
func NewService(resolver *doh.Client, logger *slog.Logger, dqsKey string, release *ReleaseClient) *Service {
	return &Service{resolver: resolver, logger: logger, dqsKey: dqsKey, release: release}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "reputation" }

// AggregateResults combines multiple reputation results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Lookup runs the primary DQS query for input and classifies the answer
// set. It does not touch the release-date API.
func (s *Service) Lookup(ctx context.Context, input string) (*Result, error) {
	if s.dqsKey == "" {
		return nil, fmt.Errorf("%w: no Spamhaus DQS key configured", services.ErrInvalidInput)
	}
	tgt, err := target.Parse(input)
	if err != nil {
		return nil, err
	}

	zone := ZoneDBL
	zoneHost := dnsname.DBLZone
	if tgt.IsIP() {
		zone = ZoneZEN
		zoneHost = dnsname.ZenZone
	}
	qname, err := dnsname.Blocklist(tgt.Input, s.dqsKey, zoneHost)
	if err != nil {
		return nil, err
	}

	resp, err := s.resolver.Resolve(ctx, qname, dns.TypeA)
	if err != nil {
		return nil, err
	}

	result := &Result{Input: tgt.Input, Zone: zone}
	if resp.Outcome == doh.OutcomeNXDomain {
		result.Risk = RiskClean
		return result, nil
	}

	var addrs []string
	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypeA) {
			continue
		}
		addrs = append(addrs, ans.Data)
	}
	result.Classification = Classify(zone, addrs)
	if result.AuthError {
		return nil, fmt.Errorf("%w: %s lookup for %q returned the key-rejection sentinel", services.ErrAuthRejected, zone, tgt.Input)
	}
	return result, nil
}

// NeedsRelease reports whether a removal date can exist for result.
func (s *Service) NeedsRelease(result *Result) bool {
	return s.release != nil && NeedsRelease(result.Classification)
}

// FetchRelease resolves the removal date for a listed result and writes
// it into the result. Callers decide whether to run it in the foreground
// or as a background task.
func (s *Service) FetchRelease(ctx context.Context, result *Result) error {
	when, err := s.release.Fetch(ctx, result.Input)
	if err != nil {
		return err
	}
	result.ReleaseDate = &when
	return nil
}

// NeedsBackground reports whether result warrants a follow-up fetch.
// It satisfies the orchestrator's background-task contract.
func (s *Service) NeedsBackground(result services.Result) bool {
	r, ok := result.(*Result)
	return ok && s.NeedsRelease(r)
}

// RunBackground resolves the removal date into result. Satisfies the
// orchestrator's background-task contract.
func (s *Service) RunBackground(ctx context.Context, result services.Result) error {
	r, ok := result.(*Result)
	if !ok {
		return fmt.Errorf("%w: unexpected result type %T", services.ErrInvalidInput, result)
	}
	return s.FetchRelease(ctx, r)
}

// Run performs the lookup and, when a removal timeline can exist,
// resolves it in the foreground. A failed release fetch is logged and
// dropped; the verdict stands on its own.
func (s *Service) Run(ctx context.Context, input string) (services.Result, error) {
	result, err := s.Lookup(ctx, input)
	if err != nil {
		return nil, err
	}
	if s.NeedsRelease(result) {
		if err := s.FetchRelease(ctx, result); err != nil {
			s.logger.Debug("reputation: release date unavailable", "input", result.Input, "error", err)
		}
	}
	return result, nil
}
