// Package posture runs the full email-security audit of a domain in one
// shot: SPF, DMARC, CAA, MX and blocklist reputation. Sub-audits run
// concurrently and fail independently; each section of the report stands
// on its own.
package posture

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/caa"
	"github.com/mailposture/mailposture/internal/services/dmarc"
	"github.com/mailposture/mailposture/internal/services/mx"
	"github.com/mailposture/mailposture/internal/services/reputation"
	"github.com/mailposture/mailposture/internal/services/spf"
	"github.com/mailposture/mailposture/internal/target"
)

// Service fans a domain out to the individual audit services.
type Service struct {
	logger     *slog.Logger
	spf        *spf.Service
	dmarc      *dmarc.Service
	caa        *caa.Service
	mx         *mx.Service
	reputation *reputation.Service
}

// NewService creates the combined posture service from the individual
// audit services.
func NewService(logger *slog.Logger, spfSvc *spf.Service, dmarcSvc *dmarc.Service, caaSvc *caa.Service, mxSvc *mx.Service, repSvc *reputation.Service) *Service {
	return &Service{
		logger:     logger,
		spf:        spfSvc,
		dmarc:      dmarcSvc,
		caa:        caaSvc,
		mx:         mxSvc,
		reputation: repSvc,
	}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "posture" }

// AggregateResults combines multiple posture results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

// Run audits domain across all sections concurrently. Each goroutine
// writes only its own section, so no locking is needed; a section error
// is recorded in place rather than failing the whole report.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: posture audits apply to domains, got %q", services.ErrInvalidInput, domain)
	}

	result := &Result{Input: tgt.Input}

	var wg sync.WaitGroup
	wg.Add(5)
	go func() {
		defer wg.Done()
		result.SPF = runSection[spf.Result](ctx, s.spf, tgt.Input)
	}()
	go func() {
		defer wg.Done()
		result.DMARC = runSection[dmarc.Result](ctx, s.dmarc, tgt.Input)
	}()
	go func() {
		defer wg.Done()
		result.CAA = runSection[caa.Result](ctx, s.caa, tgt.Input)
	}()
	go func() {
		defer wg.Done()
		result.MX = runSection[mx.Result](ctx, s.mx, tgt.Input)
	}()
	go func() {
		defer wg.Done()
		result.Reputation = runSection[reputation.Result](ctx, s.reputation, tgt.Input)
	}()
	wg.Wait()

	return result, nil
}

func runSection[T any](ctx context.Context, svc services.Service, input string) Section[T] {
	raw, err := svc.Run(ctx, input)
	if err != nil {
		return Section[T]{Error: err.Error()}
	}
	return Section[T]{Result: any(raw).(*T)}
}
