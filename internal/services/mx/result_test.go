package mx_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/services"
	"github.com/mailposture/mailposture/internal/services/mx"
)

func TestResult_WriteTable(t *testing.T) {
	result := &mx.Result{
		Input:  "example.com",
		Status: services.StatusValid,
		Records: []mx.Record{
			{Priority: 10, Exchange: "aspmx.l.google.com", Provider: "Google Workspace"},
			{Priority: 20, Exchange: "alt1.aspmx.l.google.com", Provider: "Google Workspace"},
		},
	}

	var buf bytes.Buffer
	err := result.WriteTable(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "DOMAIN")
	assert.Contains(t, out, "PRIORITY")
	assert.Contains(t, out, "EXCHANGE")
	assert.Contains(t, out, "PROVIDER")
	assert.Contains(t, out, "example.com")
	assert.Contains(t, out, "aspmx.l.google.com")
	assert.Contains(t, out, "Google Workspace")
}

func TestResult_WriteTable_NoMail(t *testing.T) {
	result := &mx.Result{
		Input:  "nomail.example",
		Status: services.StatusValid,
		NoMail: true,
	}

	var buf bytes.Buffer
	err := result.WriteTable(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "does not receive mail")
}

func TestMultiResult_WriteTable(t *testing.T) {
	m := &mx.MultiResult{}
	m.Results = append(m.Results,
		&mx.Result{
			Input:   "example.com",
			Status:  services.StatusValid,
			Records: []mx.Record{{Priority: 10, Exchange: "mx1.example.com", Provider: "Self-hosted"}},
		},
		&mx.Result{
			Input:   "example.org",
			Status:  services.StatusValid,
			Records: []mx.Record{{Priority: 5, Exchange: "mx.example.org", Provider: "Self-hosted"}},
		},
	)

	var buf bytes.Buffer
	err := m.WriteTable(&buf)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "mx1.example.com")
	assert.Contains(t, out, "mx.example.org")

	// example.com rows before example.org rows
	comIdx := strings.Index(out, "mx1.example.com")
	orgIdx := strings.Index(out, "mx.example.org")
	assert.Less(t, comIdx, orgIdx)
}
