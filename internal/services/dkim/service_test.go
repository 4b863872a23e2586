package dkim_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/dkim"
	"github.com/mailposture/mailposture/internal/testutil"
)

const baseURL = "https://dns.example"

func newService(t *testing.T, selector string) *dkim.Service {
	t.Helper()
	client := testutil.NewMockedClient(t)
	return dkim.NewService(doh.NewClient(client, baseURL), testutil.NopLogger(), selector)
}

func TestRun_QueriesSelectorName(t *testing.T) {
	svc := newService(t, "selector1")
	var qname string
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		func(r *http.Request) (*http.Response, error) {
			qname = r.URL.Query().Get("name")
			return httpmock.NewStringResponse(http.StatusOK, `{"Status":0,"Answer":[
				{"name":"selector1._domainkey.example.com.","type":16,"TTL":300,"data":"\"v=DKIM1; k=rsa; p=MIGfMA0\""}
			]}`), nil
		})

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "selector1._domainkey.example.com", qname)

	result := raw.(*dkim.Result)
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "rsa", result.KeyType)
	assert.Equal(t, "selector1", result.Selector)
}

func TestRun_ConcatenatesSplitKey(t *testing.T) {
	svc := newService(t, "default")
	// A key split into two quoted strings within one answer plus a second
	// answer: all segments concatenate with no separator, in answer order.
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":0,"Answer":[
			{"name":"default._domainkey.example.com.","type":16,"TTL":300,"data":"\"v=DKIM1; p=AAAA\" \"BBBB\""},
			{"name":"default._domainkey.example.com.","type":16,"TTL":300,"data":"\"CCCC\""}
		]}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	result := raw.(*dkim.Result)
	assert.Equal(t, "v=DKIM1; p=AAAABBBBCCCC", result.Raw)
	assert.Equal(t, services.StatusValid, result.Status)
}

func TestRun_Missing(t *testing.T) {
	svc := newService(t, "default")
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":3}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	result := raw.(*dkim.Result)
	assert.Equal(t, services.StatusMissing, result.Status)
	assert.True(t, result.NotFound())
}

func TestRun_EmptySelectorUsesDefault(t *testing.T) {
	svc := newService(t, "")
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":3}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, dkim.DefaultSelector, raw.(*dkim.Result).Selector)
}

func TestParse_RevokedKeyIsInvalid(t *testing.T) {
	result := dkim.Parse("v=DKIM1; k=rsa; p=")
	assert.Equal(t, services.StatusInvalid, result.Status)
}

func TestParse_KeyTypeDefaultsToRSA(t *testing.T) {
	result := dkim.Parse("v=DKIM1; p=MIGfMA0")
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "rsa", result.KeyType)
}
