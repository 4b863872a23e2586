package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootHelpListsAuditCommands(t *testing.T) {
	stdout, _, err := runCommand(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"spf", "dmarc", "dkim", "caa", "mx", "ptr", "reputation", "posture"} {
		assert.Contains(t, stdout, name)
	}
}

func TestInvalidOutputFormatRejected(t *testing.T) {
	_, _, err := runCommand(t, "--output", "xml", "services")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid output format")
}

func TestSubjectEncodeDecode(t *testing.T) {
	stdout, _, err := runCommand(t, "subject", "encode", "-e", "b", "Счёт")
	require.NoError(t, err)
	encoded := strings.TrimSpace(stdout)
	assert.Equal(t, "=?utf-8?b?0KHRh9GR0YI=?=", encoded)

	stdout, _, err = runCommand(t, "subject", "decode", encoded)
	require.NoError(t, err)
	assert.Equal(t, "Счёт", strings.TrimSpace(stdout))
}

func TestServicesCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "services")
	require.NoError(t, err)
	assert.Contains(t, stdout, "reputation")
	assert.Contains(t, stdout, "aggregate\tposture")
}

func TestVersionCommand(t *testing.T) {
	stdout, _, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, stdout, "mailposture version")
}
