package mime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mailposture/mailposture/internal/apperr"
	"github.com/mailposture/mailposture/internal/mime"
)

func TestEncodeSubject(t *testing.T) {
	tests := []struct {
		name    string
		subject string
		enc     mime.Encoding
		want    string
	}{
		{"ascii passes through q", "Invoice overdue", mime.EncodingQ, "Invoice overdue"},
		{"ascii passes through b", "Invoice overdue", mime.EncodingB, "Invoice overdue"},
		{"umlaut q", "Zahlungserinnerung fällig", mime.EncodingQ, "=?utf-8?q?Zahlungserinnerung_f=C3=A4llig?="},
		{"cyrillic b", "Счёт", mime.EncodingB, "=?utf-8?b?0KHRh9GR0YI=?="},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := mime.EncodeSubject(tt.subject, tt.enc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown encoding", func(t *testing.T) {
		_, err := mime.EncodeSubject("x", "z")
		require.Error(t, err)
		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}

func TestDecodeSubject(t *testing.T) {
	got, err := mime.DecodeSubject("=?utf-8?q?Zahlungserinnerung_f=C3=A4llig?=")
	require.NoError(t, err)
	assert.Equal(t, "Zahlungserinnerung fällig", got)
}

func TestDecodeSubject_RoundTrip(t *testing.T) {
	const subject = "審査結果のお知らせ"
	for _, enc := range []mime.Encoding{mime.EncodingQ, mime.EncodingB} {
		encoded, err := mime.EncodeSubject(subject, enc)
		require.NoError(t, err)
		assert.True(t, mime.IsEncoded(encoded))
		decoded, err := mime.DecodeSubject(encoded)
		require.NoError(t, err)
		assert.Equal(t, subject, decoded)
	}
}

func TestIsEncoded(t *testing.T) {
	assert.False(t, mime.IsEncoded("plain subject"))
	assert.True(t, mime.IsEncoded("=?utf-8?b?0KHRh9GR0YI=?="))
}
