package input_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/input"
)

func TestRead(t *testing.T) {
	r := strings.NewReader("example.com\n\n# a comment\n  192.0.2.1  \n")
	targets, err := input.Read(r)
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "192.0.2.1"}, targets)
}

func TestDedupe(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "case insensitive, order preserving",
			in:   []string{"a.com", "a.com", "A.COM", "b.com"},
			want: []string{"a.com", "b.com"},
		},
		{
			name: "first spelling wins",
			in:   []string{"Example.COM", "example.com"},
			want: []string{"Example.COM"},
		},
		{
			name: "empty entries dropped",
			in:   []string{"", "  ", "a.com"},
			want: []string{"a.com"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, input.Dedupe(tt.in))
		})
	}
}
