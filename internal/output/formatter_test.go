package output_test

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/output"
)

type writableResult struct {
	Name string `json:"name"`
}

func (r *writableResult) WriteText(w io.Writer) error {
	_, err := fmt.Fprintf(w, "name\t%s\n", r.Name)
	return err
}

func (r *writableResult) WritePlain(w io.Writer) error {
	_, err := fmt.Fprintln(w, r.Name)
	return err
}

func (r *writableResult) WriteTable(w io.Writer) error {
	_, err := fmt.Fprintf(w, "| %s |\n", r.Name)
	return err
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatJSON, &writableResult{Name: "example"}))
	assert.JSONEq(t, `{"name": "example"}`, buf.String())
}

func TestWrite_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatTable, &writableResult{Name: "example"}))
	assert.Equal(t, "| example |\n", buf.String())
}

func TestWrite_Text(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatText, &writableResult{Name: "example"}))
	assert.Equal(t, "name\texample\n", buf.String())
}

func TestWrite_Plain(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.Write(&buf, output.FormatPlain, &writableResult{Name: "example"}))
	assert.Equal(t, "example\n", buf.String())
}

func TestWrite_UnsupportedFormat(t *testing.T) {
	err := output.Write(&bytes.Buffer{}, output.Format("yaml"), &writableResult{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported")
}

func TestWrite_TextNotSupported(t *testing.T) {
	err := output.Write(&bytes.Buffer{}, output.FormatText, struct{}{})
	require.Error(t, err)
}

func TestWrite_TableNotSupported(t *testing.T) {
	err := output.Write(&bytes.Buffer{}, output.FormatTable, struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table")
}

func TestStripANSI(t *testing.T) {
	in := "v=spf1 \x1b[31mevil\x1b[0m ~all"
	assert.Equal(t, "v=spf1 evil ~all", output.StripANSI(in))
	assert.Equal(t, "plain", output.StripANSI("plain"))
	assert.False(t, strings.Contains(output.StripANSI(in), "\x1b"))
}
