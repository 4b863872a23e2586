package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/config"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, config.DefaultOutput, cfg.Global.Output)
	assert.Equal(t, config.DefaultDoHURL, cfg.Global.DoHURL)
	assert.Equal(t, config.DefaultTimeout, cfg.Global.Timeout)
	assert.Empty(t, cfg.APIKeys.SpamhausDQS)
}

func TestLoad_ReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `global:
  output: json
  doh_url: https://cloudflare-dns.com
  timeout: 5s
  verbose: true
api_keys:
  spamhaus_dqs: testkey123
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Global.Output)
	assert.Equal(t, "https://cloudflare-dns.com", cfg.Global.DoHURL)
	assert.Equal(t, 5*time.Second, cfg.Global.Timeout)
	assert.True(t, cfg.Global.Verbose)
	assert.Equal(t, "testkey123", cfg.APIKeys.SpamhausDQS)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global:\n  output: plain\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.Global.Output)
	assert.Equal(t, config.DefaultDoHURL, cfg.Global.DoHURL)
	assert.Equal(t, config.DefaultGeoProviderURL, cfg.Global.GeoProviderURL)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("global: [not a map"), 0o600))

	_, err := config.Load(path)
	require.Error(t, err)
}
