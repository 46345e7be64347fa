// Optional body compression layer.
//
// With the -zlib flag the token-substituted body is deflated at best
// compression and then base64-encoded so the wire document stays pure
// text with no embedded newlines. Base64 costs 33% over the raw
// stream, but the body must survive line-oriented transports and text
// editors, so a printable encoding is non-negotiable.
//
// Writers and readers are constructed per call: encode and decode are
// documented as safe for concurrent use on independent inputs, and
// zlib stream state cannot be shared.
package marqant

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// deflateBody compresses text and wraps it in base64.
func deflateBody(text string) (string, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, zlib.BestCompression)
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrEncoding, err)
	}
	if _, err := w.Write([]byte(text)); err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrEncoding, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrEncoding, err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// inflateBody reverses deflateBody.
func inflateBody(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: base64: %w", ErrEncoding, err)
	}
	r, err := zlib.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrEncoding, err)
	}
	defer r.Close()
	text, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: zlib: %w", ErrEncoding, err)
	}
	return string(text), nil
}
