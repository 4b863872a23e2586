// Package mime offers RFC 2047 encoded-word helpers for email subject
// lines. The standard library carries the codec; this wraps it with the
// encoding choice and the error taxonomy the rest of the tool uses.
package mime

import (
	"fmt"
	"mime"
	"strings"

	"github.com/mailposture/mailposture/internal/apperr"
)

// Encoding selects the encoded-word form.
type Encoding string

const (
	// EncodingQ is quoted-printable style, readable for mostly-ASCII text.
	EncodingQ Encoding = "q"
	// EncodingB is base64, denser for non-Latin scripts.
	EncodingB Encoding = "b"
)

// EncodeSubject renders subject as UTF-8 encoded-words when it contains
// non-ASCII characters; plain ASCII passes through unchanged.
func EncodeSubject(subject string, enc Encoding) (string, error) {
	switch enc {
	case EncodingQ:
		return mime.QEncoding.Encode("utf-8", subject), nil
	case EncodingB:
		return mime.BEncoding.Encode("utf-8", subject), nil
	default:
		return "", fmt.Errorf("%w: unknown encoding %q (want q or b)", apperr.ErrInvalidInput, enc)
	}
}

// DecodeSubject decodes every encoded-word in header, leaving plain
// segments untouched.
func DecodeSubject(header string) (string, error) {
	dec := &mime.WordDecoder{}
	out, err := dec.DecodeHeader(header)
	if err != nil {
		return "", fmt.Errorf("%w: decode subject: %w", apperr.ErrInvalidInput, err)
	}
	return out, nil
}

// IsEncoded reports whether header contains at least one encoded-word.
func IsEncoded(header string) bool {
	return strings.Contains(header, "=?") && strings.Contains(header, "?=")
}
