package caa_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/doh"
	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/caa"
	"github.com/mailposture/mailposture/internal/testutil"
)

const baseURL = "https://dns.example"

func newService(t *testing.T) *caa.Service {
	t.Helper()
	client := testutil.NewMockedClient(t)
	return caa.NewService(doh.NewClient(client, baseURL), testutil.NopLogger())
}

func TestRun_ParsesRecords(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":0,"Answer":[
			{"name":"example.com.","type":257,"TTL":300,"data":"0 issue \"letsencrypt.org\""},
			{"name":"example.com.","type":257,"TTL":300,"data":"128 issuewild \";\""}
		]}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	result := raw.(*caa.Result)
	assert.Equal(t, services.StatusValid, result.Status)
	assert.False(t, result.Open)
	require.Len(t, result.Records, 2)

	assert.Equal(t, 0, result.Records[0].Flag)
	assert.Equal(t, "issue", result.Records[0].Tag)
	assert.Equal(t, "letsencrypt.org", result.Records[0].Value)
	assert.False(t, result.Records[0].Critical)

	assert.Equal(t, 128, result.Records[1].Flag)
	assert.True(t, result.Records[1].Critical, "flag 128 must surface as critical")
}

func TestRun_EmptyAnswerIsOpenPosture(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":0}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	result := raw.(*caa.Result)
	assert.True(t, result.Open)
	assert.Equal(t, services.StatusMissing, result.Status)
	assert.Empty(t, result.Records)
}

func TestRun_NXDomainIsOpenPosture(t *testing.T) {
	svc := newService(t)
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/resolve",
		testutil.DoHResponder(http.StatusOK, `{"Status":3}`))

	raw, err := svc.Run(context.Background(), "example.com")
	require.NoError(t, err)
	assert.True(t, raw.(*caa.Result).Open)
}

func TestParseRecord(t *testing.T) {
	rec, err := caa.ParseRecord(`0 issue "letsencrypt.org"`)
	require.NoError(t, err)
	assert.Equal(t, 0, rec.Flag)
	assert.Equal(t, "issue", rec.Tag)
	assert.Equal(t, "letsencrypt.org", rec.Value)
	assert.Contains(t, rec.Description, "issue certificates")
}

func TestParseRecord_UnknownTag(t *testing.T) {
	rec, err := caa.ParseRecord(`0 futuretag "value"`)
	require.NoError(t, err)
	assert.Equal(t, "futuretag", rec.Tag)
	assert.Equal(t, "unrecognized property tag", rec.Description)
}

func TestParseRecord_Malformed(t *testing.T) {
	for _, data := range []string{"", "issue", `x issue "y"`} {
		_, err := caa.ParseRecord(data)
		require.Error(t, err, "data %q", data)
	}
}
