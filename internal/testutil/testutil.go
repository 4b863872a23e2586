// Package testutil provides shared test helpers for service unit tests.
package testutil

import (
	"io"
	"log/slog"
	"testing"

	"github.com/imroc/req/v3"
	"github.com/jarcoal/httpmock"
)

// NopLogger returns a logger that discards all output.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// NewMockedClient returns a req.Client whose transport is intercepted by
// httpmock. The mock is deactivated and reset when the test finishes.
func NewMockedClient(t *testing.T) *req.Client {
	t.Helper()
	client := req.NewClient()
	httpmock.ActivateNonDefault(client.GetClient())
	t.Cleanup(httpmock.DeactivateAndReset)
	return client
}

// DoHResponder returns an httpmock responder serving a fixed JSON DoH body.
func DoHResponder(status int, jsonBody string) httpmock.Responder {
	return httpmock.NewStringResponder(status, jsonBody)
}
