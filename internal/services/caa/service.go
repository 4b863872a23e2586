// Package caa audits a domain's CAA issuance policy. An empty answer set is
// a meaningful posture — any CA may issue — and is reported as such, not as
// a failure.
package caa

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// criticalFlag is the RFC 6844 critical bit: a CA that does not understand a
// critical property must refuse to issue.
const criticalFlag = 128

// impactByTag maps known property tags to their posture description.
var impactByTag = map[string]string{
	"issue":        "authorizes the named CA to issue certificates for this domain",
	"issuewild":    "authorizes the named CA to issue wildcard certificates for this domain",
	"iodef":        "destination for CA policy-violation reports",
	"contactemail": "contact address published for CA validation",
	"contactphone": "contact phone number published for CA validation",
}

const genericImpact = "unrecognized property tag"

// OpenPosture is the description reported when a domain publishes no CAA
// records at all.
const OpenPosture = "no CAA records: any CA may issue certificates for this domain"

// Service audits CAA records via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
}

// NewService creates a new CAA audit service.
func NewService(resolver *doh.Client, logger *slog.Logger) *Service {
	return &Service{resolver: resolver, logger: logger}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "caa" }

// AggregateResults combines multiple CAA results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves CAA records for domain and parses every answer. An NXDOMAIN
// or empty answer set yields the open posture.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: CAA audits apply to domains, got %s %q", services.ErrInvalidInput, tgt.Kind, domain)
	}

	result := &Result{Input: tgt.Input}

	resp, err := s.resolver.Resolve(ctx, tgt.Input, dns.TypeCAA)
	if err != nil {
		return nil, err
	}
	if resp.Outcome == doh.OutcomeNXDomain {
		result.Open = true
		result.Status = services.StatusMissing
		return result, nil
	}

	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypeCAA) {
			continue
		}
		rec, err := ParseRecord(output.StripANSI(ans.Data))
		if err != nil {
			s.logger.Debug("caa: unparseable answer", "domain", tgt.Input, "data", ans.Data, "error", err)
			result.Status = services.StatusInvalid
			continue
		}
		result.Records = append(result.Records, rec)
	}

	if len(result.Records) == 0 && result.Status != services.StatusInvalid {
		result.Open = true
		result.Status = services.StatusMissing
	} else if result.Status == "" {
		result.Status = services.StatusValid
	}
	return result, nil
}

// ParseRecord tokenizes one CAA rdata string: numeric flag, tag, then the
// quote-stripped remainder as the value.
func ParseRecord(data string) (Record, error) {
	tokens := strings.Fields(strings.TrimSpace(data))
	if len(tokens) < 2 {
		return Record{}, fmt.Errorf("expected at least flag and tag, got %q", data)
	}
	flag, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Record{}, fmt.Errorf("invalid flag %q: %w", tokens[0], err)
	}

	tag := strings.ToLower(tokens[1])
	value := strings.Trim(strings.Join(tokens[2:], " "), `"`)

	desc, ok := impactByTag[tag]
	if !ok {
		desc = genericImpact
	}

	return Record{
		Flag:        flag,
		Tag:         tag,
		Value:       value,
		Critical:    flag == criticalFlag,
		Description: desc,
	}, nil
}
