package dmarc_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/dmarc"
	"github.com/mailposture/mailposture/internal/testutil"
)

const baseURL = "https://dns.example"

func newService(t *testing.T) *dmarc.Service {
	t.Helper()
	client := testutil.NewMockedClient(t)
	return dmarc.NewService(doh.NewClient(client, baseURL), testutil.NopLogger())
}

func TestRun_QueriesDmarcSubdomain(t *testing.T) {
	svc := newService(t)
	var qname string
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		func(r *http.Request) (*http.Response, error) {
			qname = r.URL.Query().Get("name")
			return httpmock.NewStringResponse(http.StatusOK, `{"Status":0,"Answer":[
				{"name":"_dmarc.example.com.","type":16,"TTL":300,"data":"\"v=DMARC1; p=reject\""}
			]}`), nil
		})

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.Equal(t, "_dmarc.example.com", qname)

	result := raw.(*dmarc.Result)
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "reject", result.Policy)
}

func TestRun_Missing(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":3}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	result := raw.(*dmarc.Result)
	assert.Equal(t, services.StatusMissing, result.Status)
	assert.True(t, result.NotFound())
}

func TestRun_InvalidInput(t *testing.T) {
	svc := newService(t)
	_, err := svc.Run(context.Background(), "192.0.2.1")
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestParse_DefaultsApplied(t *testing.T) {
	result := dmarc.Parse("v=DMARC1; p=reject")
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "reject", result.Policy)
	assert.Equal(t, "r", result.ADKIM)
	assert.Equal(t, "r", result.ASPF)
}

func TestParse_ExplicitTags(t *testing.T) {
	result := dmarc.Parse("v=DMARC1; p=Quarantine; adkim=S; aspf=s; rua=mailto:agg@example.com")
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "quarantine", result.Policy)
	assert.Equal(t, "s", result.ADKIM)
	assert.Equal(t, "s", result.ASPF)
}

func TestParse_MissingPolicyDefaultsToNone(t *testing.T) {
	result := dmarc.Parse("v=DMARC1; rua=mailto:agg@example.com")
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "none", result.Policy)
}

func TestParse_ToleratesSurroundingWhitespace(t *testing.T) {
	result := dmarc.Parse("  v=dmarc1; p=none  ")
	assert.Equal(t, services.StatusValid, result.Status)
	assert.Equal(t, "none", result.Policy)
}

func TestParse_WrongPrefixIsInvalid(t *testing.T) {
	for _, raw := range []string{"v=spf1 -all", "p=reject", "DMARC1; p=none"} {
		result := dmarc.Parse(raw)
		assert.Equal(t, services.StatusInvalid, result.Status, "raw %q", raw)
	}
}
