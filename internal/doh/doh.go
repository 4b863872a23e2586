// Package doh is the resolver client: it issues single DNS queries against a
// JSON DNS-over-HTTPS endpoint and normalizes the reply into either an answer
// set or a typed negative outcome. It performs no retries and no caching;
// retry policy (currently: none) belongs to the callers.
package doh

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/imroc/req/v3"
	"github.com/miekg/dns"

	"github.com/mailposture/mailposture/internal/apperr"
)

// Answer is one DNS resource record as returned by the resolver.
type Answer struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	TTL  int    `json:"TTL"`
	Data string `json:"data"`
}

// Outcome classifies the resolver's reply.
type Outcome string

// Resolver outcomes. OK covers the empty-success case: a Status 0 reply with
// no Answer section yields OK with zero answers, which is neither NXDOMAIN
// nor an error.
const (
	OutcomeOK       Outcome = "ok"
	OutcomeNXDomain Outcome = "nxdomain"
)

// Response is the normalized result of one DoH query.
type Response struct {
	Outcome Outcome
	Status  int
	Answers []Answer
}

// body mirrors the JSON DoH wire shape (Google/Cloudflare /resolve API).
type body struct {
	Status int      `json:"Status"`
	Answer []Answer `json:"Answer"`
}

// Client issues JSON DoH queries against a single resolver endpoint.
type Client struct {
	http    *req.Client
	baseURL string
}

// NewClient creates a Client for the resolver at baseURL (scheme + host,
// no trailing path; the /resolve endpoint is appended per query).
func NewClient(http *req.Client, baseURL string) *Client {
	return &Client{http: http, baseURL: baseURL}
}

// Resolve performs one GET against <base>/resolve?name=<qname>&type=<type>.
// qtype uses the standard record type codes (dns.TypeTXT, dns.TypeMX, ...).
// NXDOMAIN is a normal outcome, not an error. Transport failures, non-2xx
// replies, undecodable bodies, and unexpected DNS rcodes are reported as
// errors wrapping apperr.ErrRequestFailed; context cancellation and deadline
// errors pass through unwrapped so callers can distinguish a timeout.
func (c *Client) Resolve(ctx context.Context, qname string, qtype uint16) (*Response, error) {
	var parsed body
	httpResp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("name", qname).
		SetQueryParam("type", typeParam(qtype)).
		SetSuccessResult(&parsed).
		Get(c.baseURL + "/resolve")
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: doh request error for %q type %s: %w", apperr.ErrRequestFailed, qname, typeParam(qtype), err)
	}
	if !httpResp.IsSuccessState() {
		bodySnippet := httpResp.String()
		if len(bodySnippet) > 200 {
			bodySnippet = bodySnippet[:200] + "..."
		}
		return nil, fmt.Errorf("%w: doh returned HTTP %d for %q type %s: %q", apperr.ErrRequestFailed, httpResp.StatusCode, qname, typeParam(qtype), bodySnippet)
	}

	switch parsed.Status {
	case dns.RcodeSuccess:
		return &Response{Outcome: OutcomeOK, Status: parsed.Status, Answers: parsed.Answer}, nil
	case dns.RcodeNameError:
		return &Response{Outcome: OutcomeNXDomain, Status: parsed.Status}, nil
	default:
		return nil, fmt.Errorf("%w: doh returned rcode %s for %q type %s", apperr.ErrRequestFailed, rcodeName(parsed.Status), qname, typeParam(qtype))
	}
}

// typeParam renders qtype for the &type= query parameter: the mnemonic when
// known, the numeric code otherwise (the JSON API accepts both).
func typeParam(qtype uint16) string {
	if s, ok := dns.TypeToString[qtype]; ok {
		return s
	}
	return strconv.Itoa(int(qtype))
}

func rcodeName(status int) string {
	if s, ok := dns.RcodeToString[status]; ok {
		return s
	}
	return strconv.Itoa(status)
}
