// Package rdap fetches domain registration data over the RDAP bootstrap
// redirector. A young registration date is its own phishing signal, so
// the result carries a human-readable domain age next to the raw dates.
package rdap

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/target"
)

// DefaultBaseURL is the RDAP bootstrap redirector. It forwards each
// query to the registry responsible for the TLD.
const DefaultBaseURL = "https://rdap.org"

// Service fetches registration data for domains.
type Service struct {
	http    *req.Client
	logger  *slog.Logger
	baseURL string
}

// NewService creates a new RDAP service against baseURL.
func NewService(http *req.Client, logger *slog.Logger, baseURL string) *Service {
	return &Service{http: http, logger: logger, baseURL: baseURL}
}

// Name returns the service identifier.
func (s *Service) Name() string { return "rdap" }

// AggregateResults combines multiple RDAP results into a MultiResult.
func (s *Service) AggregateResults(results []services.Result) services.Result {
	mr := &MultiResult{}
	for _, r := range results {
		mr.Results = append(mr.Results, r.(*Result))
	}
	return mr
}

type rdapDomain struct {
	Events []struct {
		EventAction string    `json:"eventAction"`
		EventDate   time.Time `json:"eventDate"`
	} `json:"events"`
	Entities []rdapEntity `json:"entities"`
}

type rdapEntity struct {
	Roles      []string `json:"roles"`
	Handle     string   `json:"handle"`
	VcardArray []any    `json:"vcardArray"`
}

// Run fetches the RDAP record for domain and extracts the registrar name
// and the registration and expiration events.
func (s *Service) Run(ctx context.Context, domain string) (services.Result, error) {
	tgt, err := target.Parse(domain)
	if err != nil {
		return nil, err
	}
	if tgt.Kind != target.KindDomain {
		return nil, fmt.Errorf("%w: RDAP lookups apply to domains, got %q", services.ErrInvalidInput, domain)
	}

	var body rdapDomain
	resp, err := s.http.R().
		SetContext(ctx).
		SetPathParam("domain", tgt.Input).
		SetSuccessResult(&body).
		Get(s.baseURL + "/domain/{domain}")
	if err != nil {
		return nil, fmt.Errorf("%w: rdap: %w", services.ErrRequestFailed, err)
	}

	result := &Result{Input: tgt.Input}
	if resp.StatusCode == http.StatusNotFound {
		result.Status = services.StatusMissing
		return result, nil
	}
	if resp.IsErrorState() {
		return nil, fmt.Errorf("%w: rdap: status %d", services.ErrRequestFailed, resp.StatusCode)
	}

	for _, ev := range body.Events {
		when := ev.EventDate
		switch ev.EventAction {
		case "registration":
			result.Registered = &when
			result.DomainAge = age(when, time.Now())
		case "expiration":
			result.Expires = &when
		}
	}
	result.Registrar = registrarName(body.Entities)
	result.Status = services.StatusValid
	return result, nil
}

// registrarName pulls the registrar's display name out of the entity
// list, preferring the vCard "fn" property over the bare handle.
func registrarName(entities []rdapEntity) string {
	for _, e := range entities {
		registrar := false
		for _, role := range e.Roles {
			if strings.EqualFold(role, "registrar") {
				registrar = true
				break
			}
		}
		if !registrar {
			continue
		}
		if fn := vcardFullName(e.VcardArray); fn != "" {
			return fn
		}
		return e.Handle
	}
	return ""
}

// vcardFullName extracts the "fn" value from a jCard structure
// (["vcard", [["fn", {}, "text", "Name"], ...]]).
func vcardFullName(vcard []any) string {
	if len(vcard) < 2 {
		return ""
	}
	props, ok := vcard[1].([]any)
	if !ok {
		return ""
	}
	for _, raw := range props {
		prop, ok := raw.([]any)
		if !ok || len(prop) < 4 {
			continue
		}
		name, ok := prop[0].(string)
		if !ok || !strings.EqualFold(name, "fn") {
			continue
		}
		if value, ok := prop[3].(string); ok {
			return value
		}
	}
	return ""
}

// age renders the elapsed time since registration in the largest useful
// unit.
func age(registered, now time.Time) string {
	days := int(now.Sub(registered).Hours() / 24)
	switch {
	case days < 0:
		return ""
	case days < 31:
		return fmt.Sprintf("%d days", days)
	case days < 365:
		return fmt.Sprintf("%d months", days/30)
	default:
		return fmt.Sprintf("%d years", days/365)
	}
}
