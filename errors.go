// Package marqant implements the MARQANT (.mq) text compression format:
// dictionary substitution tuned for markdown-like documents, producing a
// smaller, still-text, self-describing artifact.
//
// Encoding replaces common markdown constructs and repeated multi-word
// phrases with single reserved bytes from the 0x01-0x7E range, then
// writes a header line, the token dictionary, a separator line, and the
// substituted body. The body can optionally be run through zlib and
// base64 (-zlib), heading boundaries can be marked (-semantic), and
// entries of a named standard dictionary can be omitted from the wire
// (-std:<id>). Decoding reverses each layer and is lossless up to
// trailing whitespace for any input that contains no reserved bytes.
package marqant

import "errors"

// Sentinel errors for programmatic handling. Callers use errors.Is to
// distinguish a malformed document (ErrFormat) from a failed standard
// dictionary lookup (ErrDictResolution) or a broken compression layer
// (ErrEncoding).
var (
	ErrFormat         = errors.New("invalid marqant format")
	ErrDictResolution = errors.New("standard dictionary unresolvable")
	ErrEncoding       = errors.New("body encoding failed")
)
