package rdap_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/rdap"
	"github.com/mailposture/mailposture/internal/testutil"
)

const baseURL = "https://rdap.example"

func newService(t *testing.T) *rdap.Service {
	t.Helper()
	client := testutil.NewMockedClient(t)
	return rdap.NewService(client, testutil.NopLogger(), baseURL)
}

func TestRun_ExtractsEventsAndRegistrar(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/domain/example.com",
		httpmock.NewStringResponder(http.StatusOK, `{
			"events": [
				{"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
				{"eventAction": "expiration", "eventDate": "2027-08-13T04:00:00Z"}
			],
			"entities": [
				{"roles": ["registrar"], "handle": "376",
				 "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "RESERVED-Internet Assigned Numbers Authority"]]]}
			]
		}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	result := raw.(*rdap.Result)
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "RESERVED-Internet Assigned Numbers Authority", result.Registrar)
	require.NotNil(t, result.Registered)
	assert.Equal(t, 1995, result.Registered.Year())
	require.NotNil(t, result.Expires)
	assert.Equal(t, 2027, result.Expires.Year())
	assert.Contains(t, result.DomainAge, "years")
}

func TestRun_RegistrarHandleFallback(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/domain/example.com",
		httpmock.NewStringResponder(http.StatusOK, `{
			"entities": [{"roles": ["registrant"], "handle": "ignore-me"},
			             {"roles": ["registrar"], "handle": "REG-42"}]
		}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "REG-42", raw.(*rdap.Result).Registrar)
}

func TestRun_UnregisteredDomain(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/domain/nosuch.example",
		httpmock.NewStringResponder(http.StatusNotFound, `{"errorCode": 404}`))

	raw, err := svc.Run(context.Background(), "nosuch.example")
	require.NoError(t, err)
	result := raw.(*rdap.Result)
	assert.True(t, result.NotFound())
}

func TestRun_RejectsIPs(t *testing.T) {
	svc := newService(t)
	_, err := svc.Run(context.Background(), "192.0.2.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
	assert.Zero(t, httpmock.GetTotalCallCount())
}
