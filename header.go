// Header line parsing and formatting.
//
// The header is the first line of a document:
//
//	MARQANT <timestamp> <original-size> <compressed-size> [flags...]
//
// Sizes are decimal; the compressed size is an estimate written at
// encode time, not a promise about the exact serialized byte count.
// Unrecognized flags are carried but ignored.
package marqant

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatTag identifies a marqant version 1 document.
const FormatTag = "MARQANT"

// Separator terminates the dictionary section; everything after it is
// body.
const Separator = "---"

// Recognized flags.
const (
	FlagZlib      = "-zlib"
	FlagSemantic  = "-semantic"
	stdFlagPrefix = "-std:"
)

// Header carries the parsed first line of a document.
type Header struct {
	Timestamp      string   // Unix seconds, as written
	OriginalSize   int      // Byte length of the input
	CompressedSize int      // Reported estimate, see package doc
	Flags          []string // Whitespace-split flag list, possibly empty
}

// parseHeader validates and parses a header line.
func parseHeader(line string) (*Header, error) {
	if !strings.HasPrefix(line, FormatTag) {
		return nil, fmt.Errorf("%w: header %q does not start with %q", ErrFormat, firstN(line, 24), FormatTag)
	}
	fields := strings.Fields(line)
	if len(fields) < 4 {
		return nil, fmt.Errorf("%w: header has %d fields, want at least 4", ErrFormat, len(fields))
	}

	orig, err := strconv.Atoi(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: original size %q is not a number", ErrFormat, fields[2])
	}
	comp, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("%w: compressed size %q is not a number", ErrFormat, fields[3])
	}

	return &Header{
		Timestamp:      fields[1],
		OriginalSize:   orig,
		CompressedSize: comp,
		Flags:          fields[4:],
	}, nil
}

// line renders the header as its wire line, without the trailing
// newline. Flags are appended verbatim when present.
func (h *Header) line() string {
	base := fmt.Sprintf("%s %s %d %d", FormatTag, h.Timestamp, h.OriginalSize, h.CompressedSize)
	if len(h.Flags) == 0 {
		return base
	}
	return base + " " + strings.Join(h.Flags, " ")
}

// hasFlag reports whether the exact flag is present.
func (h *Header) hasFlag(flag string) bool {
	for _, f := range h.Flags {
		if f == flag {
			return true
		}
	}
	return false
}

// stdID returns the id of a -std:<id> flag, or "" when absent.
func (h *Header) stdID() string {
	for _, f := range h.Flags {
		if rest, ok := strings.CutPrefix(f, stdFlagPrefix); ok {
			return rest
		}
	}
	return ""
}

// firstN truncates s for error messages.
func firstN(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
