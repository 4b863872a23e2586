package ptr_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/ptr"
	"github.com/mailposture/mailposture/internal/testutil"
)

const baseURL = "https://dns.example"

func newService(t *testing.T) *ptr.Service {
	t.Helper()
	client := testutil.NewMockedClient(t)
	return ptr.NewService(doh.NewClient(client, baseURL), testutil.NopLogger())
}

func TestRun_IPv4(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":0,"Answer":[
			{"name":"4.3.2.1.in-addr.arpa.","type":12,"TTL":300,"data":"host.example.com."}
		]}`))

	raw, err := svc.Run(context.Background(), "1.2.3.4")
	require.NoError(t, err)
	result := raw.(*ptr.Result)
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "host.example.com", result.Hostname, "trailing dot stripped")

	info := httpmock.GetCallCountInfo()
	require.Len(t, info, 1)
	for key := range info {
		assert.Contains(t, key, baseURL+"/resolve")
	}
}

func TestRun_IPv6QueriesNibbleZone(t *testing.T) {
	svc := newService(t)
	var qname string
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		func(req *http.Request) (*http.Response, error) {
			qname = req.URL.Query().Get("name")
			resp, err := testutil.DoHResponder(http.StatusOK,
				`{"Status":0,"Answer":[{"name":"x.","type":12,"TTL":300,"data":"v6.example.com."}]}`)(req)
			return resp, err
		})

	raw, err := svc.Run(context.Background(), "2001:db8::1")
	require.NoError(t, err)
	result := raw.(*ptr.Result)
	assert.Equal(t, "v6.example.com", result.Hostname)
	assert.Equal(t,
		"1.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.0.8.b.d.0.1.0.0.2.ip6.arpa",
		qname)
}

func TestRun_NXDomainIsMissingNotError(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":3}`))

	raw, err := svc.Run(context.Background(), "203.0.113.9")
	require.NoError(t, err)
	result := raw.(*ptr.Result)
	assert.Equal(t, services.StatusMissing, result.Status)
	assert.True(t, result.NotFound())
}

func TestRun_RejectsDomainsWithoutLookup(t *testing.T) {
	svc := newService(t)

	_, err := svc.Run(context.Background(), "example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Zero(t, httpmock.GetTotalCallCount())
}
