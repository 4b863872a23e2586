// Package mx audits a domain's mail-exchanger configuration and labels each
// exchange with its hosting provider. An empty answer set means the domain
// is not configured to receive mail, which is distinct from a lookup error.
package mx

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/detect"
	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/output"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// Service audits MX records via the configured DoH resolver.
type Service struct {
	resolver *doh.Client
	logger   *slog.Logger
	detector *detect.Detector
}

// NewService creates a new MX audit service.
func NewService(resolver *doh.Client, logger *slog.Logger, detector *detect.Detector) *Service {
	return &Service{resolver: resolver, logger: logger, detector: detector}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "mx" }

// AggregateResults combines multiple MX results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run resolves MX records for domain, sorts them ascending by priority
// (stable: resolver order breaks ties), and labels each exchange.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: MX audits apply to domains, got %s %q", services.ErrInvalidInput, tgt.Kind, domain)
	}

	result := &Result{Input: tgt.Input}

	resp, err := s.resolver.Resolve(ctx, tgt.Input, dns.TypeMX)
	if err != nil {
		return nil, err
	}
	if resp.Outcome == doh.OutcomeNXDomain {
		result.NoMail = true
		result.Status = services.StatusMissing
		return result, nil
	}

	for _, ans := range resp.Answers {
		if ans.Type != int(dns.TypeMX) {
			continue
		}
		rec, err := parseAnswer(output.StripANSI(ans.Data))
		if err != nil {
			s.logger.Debug("mx: unparseable answer", "domain", tgt.Input, "data", ans.Data, "error", err)
			result.Status = services.StatusInvalid
			continue
		}
		if rec.Exchange == "" {
			// Null MX (RFC 7505): "0 ." advertises that the domain
			// does not accept mail at all.
			result.NoMail = true
			continue
		}
		rec.Provider = s.detector.EmailProvider(rec.Exchange)
		result.Records = append(result.Records, rec)
	}

	if result.NoMail {
		if result.Status == "" {
			result.Status = services.StatusValid
		}
		return result, nil
	}

	if len(result.Records) == 0 && result.Status != services.StatusInvalid {
		result.NoMail = true
		result.Status = services.StatusMissing
		return result, nil
	}

	sort.SliceStable(result.Records, func(i, j int) bool {
		return result.Records[i].Priority < result.Records[j].Priority
	})
	if result.Status == "" {
		result.Status = services.StatusValid
	}
	return result, nil
}

// parseAnswer tokenizes one MX rdata string ("10 mail.example.com."),
// stripping the trailing root dot from the exchange.
func parseAnswer(data string) (Record, error) {
	tokens := strings.Fields(strings.TrimSpace(data))
	if len(tokens) != 2 {
		return Record{}, fmt.Errorf("expected priority and exchange, got %q", data)
	}
	priority, err := strconv.Atoi(tokens[0])
	if err != nil {
		return Record{}, fmt.Errorf("invalid priority %q: %w", tokens[0], err)
	}
	return Record{
		Priority: priority,
		Exchange: strings.ToLower(strings.TrimSuffix(tokens[1], ".")),
	}, nil
}
