package reputation_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/reputation"
	"github.com/mailposture/mailposture/internal/testutil"
)

const (
	baseURL    = "https://dns.example"
	releaseURL = "https://history.example"
	dqsKey     = "testkey"
)

func newService(t *testing.T) *reputation.Service {
	t.Helper()
	client := testutil.NewMockedClient(t)
	release := reputation.NewReleaseClient(client, releaseURL)
	return reputation.NewService(doh.NewClient(client, baseURL), testutil.NopLogger(), dqsKey, release)
}

func TestLookup_IPv4QnameAndVerdict(t *testing.T) {
	svc := newService(t)
	var qname string
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		func(req *http.Request) (*http.Response, error) {
			qname = req.URL.Query().Get("name")
			return testutil.DoHResponder(http.StatusOK,
				`{"Status":0,"Answer":[{"name":"x.","type":1,"TTL":60,"data":"127.0.0.10"}]}`)(req)
		})

	result, err := svc.Lookup(context.Background(), "192.0.2.10")
	require.NoError(t, err)
	assert.Equal(t, "10.2.0.192.testkey.zen.dq.spamhaus.net", qname)
	assert.Equal(t, reputation.ZoneZEN, result.Zone)
	assert.True(t, result.Listed)
	assert.Equal(t, reputation.RiskLow, result.Risk)
}

func TestLookup_DomainUsesDBLVerbatim(t *testing.T) {
	svc := newService(t)
	var qname string
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		func(req *http.Request) (*http.Response, error) {
			qname = req.URL.Query().Get("name")
			return testutil.DoHResponder(http.StatusOK, `{"Status":3}`)(req)
		})

	result, err := svc.Lookup(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "example.com.testkey.dbl.dq.spamhaus.net", qname)
	assert.Equal(t, reputation.ZoneDBL, result.Zone)
	assert.False(t, result.Listed)
	assert.Equal(t, reputation.RiskClean, result.Risk)
}

func TestLookup_AuthSentinelIsAnError(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK,
			`{"Status":0,"Answer":[{"name":"x.","type":1,"TTL":60,"data":"127.0.0.1"}]}`))

	result, err := svc.Lookup(context.Background(), "192.0.2.10")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrAuthRejected)
	assert.Nil(t, result)
}

func TestLookup_MissingKeyFailsWithoutLookup(t *testing.T) {
	client := testutil.NewMockedClient(t)
	svc := reputation.NewService(doh.NewClient(client, baseURL), testutil.NopLogger(), "", nil)

	_, err := svc.Lookup(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Zero(t, httpmock.GetTotalCallCount())
}

func TestRun_FetchesReleaseDateForExploitListings(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK,
			`{"Status":0,"Answer":[{"name":"x.","type":1,"TTL":60,"data":"127.0.0.4"}]}`))
	httpmock.RegisterResponder(http.MethodGet, releaseURL+"/api/v1/removals/192.0.2.10",
		httpmock.NewStringResponder(http.StatusOK, `{"expires":1767225600}`))

	raw, err := svc.Run(context.Background(), "192.0.2.10")
	require.NoError(t, err)
	result := raw.(*reputation.Result)
	require.NotNil(t, result.ReleaseDate)
	assert.Equal(t, int64(1767225600), result.ReleaseDate.Unix())
}

func TestRun_NoReleaseFetchForPolicyListings(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK,
			`{"Status":0,"Answer":[{"name":"x.","type":1,"TTL":60,"data":"127.0.0.11"}]}`))

	raw, err := svc.Run(context.Background(), "192.0.2.10")
	require.NoError(t, err)
	result := raw.(*reputation.Result)
	assert.Nil(t, result.ReleaseDate)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "only the DQS lookup should fire")
}

func TestRun_ReleaseFetchFailureKeepsVerdict(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK,
			`{"Status":0,"Answer":[{"name":"x.","type":1,"TTL":60,"data":"127.0.0.4"}]}`))
	httpmock.RegisterResponder(http.MethodGet, releaseURL+"/api/v1/removals/192.0.2.10",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	raw, err := svc.Run(context.Background(), "192.0.2.10")
	require.NoError(t, err)
	result := raw.(*reputation.Result)
	assert.True(t, result.Listed)
	assert.Nil(t, result.ReleaseDate)
}
