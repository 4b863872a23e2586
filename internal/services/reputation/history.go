package reputation

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/imroc/req/v3"

	"github.com/mailposture/mailposture/internal/services"
)

// DefaultReleaseBaseURL is the listing-history API endpoint.
const DefaultReleaseBaseURL = "https://api.spamhaus.org"

// NeedsRelease reports whether a release-date fetch is worth making for
// the given listings. Policy lists (SBL, PBL) have no removal timeline,
// so only XBL, CSS and DBL hits qualify.
func NeedsRelease(c Classification) bool {
	if !c.Listed {
		return false
	}
	for _, l := range c.Listings {
		switch {
		case strings.Contains(l.Dataset, "XBL"),
			strings.Contains(l.Dataset, "CSS"),
			strings.Contains(l.Dataset, "DBL"):
			return true
		}
	}
	return false
}

// ReleaseClient fetches the scheduled removal date of a listed target.
type ReleaseClient struct {
	http    *req.Client
	baseURL string
}

// NewReleaseClient creates a release-date client against baseURL.
func NewReleaseClient(http *req.Client, baseURL string) *ReleaseClient {
	return &ReleaseClient{http: http, baseURL: baseURL}
}

type releaseResponse struct {
	Expires int64 `json:"expires"`
}

// Fetch returns the removal date for target, or services.ErrNotFound when
// the API has no timeline for it.
func (c *ReleaseClient) Fetch(ctx context.Context, target string) (time.Time, error) {
	var body releaseResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("target", target).
		SetSuccessResult(&body).
		Get(c.baseURL + "/api/v1/removals/{target}")
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: release date fetch: %w", services.ErrRequestFailed, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return time.Time{}, fmt.Errorf("%w: no removal timeline for %q", services.ErrNotFound, target)
	}
	if resp.IsErrorState() {
		return time.Time{}, fmt.Errorf("%w: release date fetch: status %d", services.ErrRequestFailed, resp.StatusCode)
	}
	if body.Expires == 0 {
		return time.Time{}, fmt.Errorf("%w: no removal timeline for %q", services.ErrNotFound, target)
	}
	return time.Unix(body.Expires, 0).UTC(), nil
}
