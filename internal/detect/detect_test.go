package detect_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/detect"
)

func embedded(t *testing.T) *detect.Detector {
	t.Helper()
	patterns, err := detect.LoadPatterns()
	require.NoError(t, err)
	return detect.NewDetector(patterns)
}

func TestEmailProvider_KnownSuffixes(t *testing.T) {
	d := embedded(t)
	tests := []struct {
		exchange string
		provider string
	}{
		{"aspmx.l.google.com", "Google Workspace"},
		{"ASPMX.L.GOOGLE.COM.", "Google Workspace"},
		{"example-com.mail.protection.outlook.com", "Microsoft 365"},
		{"mxa-00000000.gslb.pphosted.com", "Proofpoint"},
		{"mx.zoho.com", "ZOHO Mail"},
		{"us-smtp-inbound-1.mimecast.com", "Mimecast"},
	}
	for _, tc := range tests {
		t.Run(tc.exchange, func(t *testing.T) {
			assert.Equal(t, tc.provider, d.EmailProvider(tc.exchange))
		})
	}
}

func TestEmailProvider_Fallback(t *testing.T) {
	d := embedded(t)
	assert.Equal(t, detect.FallbackProvider, d.EmailProvider("mail.example-corp.net"))
	// Suffix match must not fire on lookalike registrations.
	assert.Equal(t, detect.FallbackProvider, d.EmailProvider("notgoogle.com"))
}

func TestLoadPatterns_OverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yaml")
	content := "email:\n  - suffix: corp.example\n    provider: Example Corp Mail\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	patterns, err := detect.LoadPatterns(path)
	require.NoError(t, err)
	d := detect.NewDetector(patterns)
	assert.Equal(t, "Example Corp Mail", d.EmailProvider("mx1.corp.example"))
	// Override replaces the embedded table entirely.
	assert.Equal(t, detect.FallbackProvider, d.EmailProvider("aspmx.l.google.com"))
}

func TestLoadPatterns_MissingOverrideFallsBack(t *testing.T) {
	patterns, err := detect.LoadPatterns(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, patterns.Email)
}
