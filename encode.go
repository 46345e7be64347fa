// Encoding: orchestrates the static pass, the phrase miner, the
// optional compression layer, and wire serialization.
package marqant

import (
	"strconv"
	"strings"
	"time"
)

// Encoder holds encode-time configuration. The zero value is ready to
// use.
type Encoder struct {
	// Now supplies the header timestamp in unix seconds. Nil means
	// time.Now. Fixing it makes output byte-identical across calls.
	Now func() int64

	// Registry extends the set of locally known standard dictionaries
	// used for -std:<id> omission. Nil means built-ins only.
	Registry *Registry
}

// Encode compresses content with the default Encoder. See
// Encoder.Encode.
func Encode(content, flags string) (string, error) {
	return Encoder{}.Encode(content, flags)
}

// Tokenize runs the static-table and phrase-mining passes and returns
// the dictionary plus the token-substituted text, without any wire
// framing. Callers aggregating several documents use it to build a
// shared dictionary.
func Tokenize(content string) (Dictionary, string) {
	dict, tokenized := applyStatic(content)
	return assignTokens(minePhrases(content), dict, tokenized)
}

// Encode produces a complete wire document from content. flags is a
// whitespace-separated list; "" means none. Recognized flags are
// -zlib, -semantic and -std:<id>; anything else is carried in the
// header untouched. The transform is pure; only the -zlib layer can
// fail.
func (e Encoder) Encode(content, flags string) (string, error) {
	originalSize := len(content)

	processed := content
	flagList := strings.Fields(flags)
	hdr := &Header{Flags: flagList}

	if hdr.hasFlag(FlagSemantic) {
		processed = addSectionTags(processed)
	}

	dict, tokenized := Tokenize(processed)

	body := tokenized
	if hdr.hasFlag(FlagZlib) {
		var err error
		body, err = deflateBody(tokenized)
		if err != nil {
			return "", err
		}
	}

	hdr.OriginalSize = originalSize
	hdr.CompressedSize = len(body) + dict.wireSize() + 4
	hdr.Timestamp = e.timestamp()

	// Entries duplicated by a locally known standard dictionary are
	// left off the wire; the decoder re-seeds them from the same id.
	// An unknown id skips omission, but the flag still rides the
	// header, so decoding will demand the id resolve regardless.
	var std Dictionary
	if id := hdr.stdID(); id != "" {
		std = stdDict(id)
		if std == nil && e.Registry != nil {
			if d, err := e.Registry.Lookup(id); err == nil {
				std = d
			}
		}
	}

	var out strings.Builder
	out.WriteString(hdr.line())
	out.WriteByte('\n')
	out.WriteString(dict.wireLines(std))
	out.WriteString(Separator)
	out.WriteByte('\n')
	out.WriteString(body)

	return out.String(), nil
}

func (e Encoder) timestamp() string {
	if e.Now != nil {
		return strconv.FormatInt(e.Now(), 10)
	}
	return strconv.FormatInt(time.Now().Unix(), 10)
}

// addSectionTags prepends a ::section:<name>:: marker line before
// every top- or second-level heading outside fenced code blocks. The
// decoder strips the markers; intermediate consumers use them as
// cheap section boundaries.
func addSectionTags(content string) string {
	var b strings.Builder
	inFence := false

	for _, line := range strings.Split(strings.TrimSuffix(content, "\n"), "\n") {
		if strings.HasPrefix(strings.TrimLeft(line, " \t"), "```") {
			inFence = !inFence
		}

		if !inFence {
			if name, ok := strings.CutPrefix(line, "# "); ok {
				b.WriteString("::section:" + strings.TrimSpace(name) + "::\n")
			} else if name, ok := strings.CutPrefix(line, "## "); ok {
				b.WriteString("::section:" + strings.TrimSpace(name) + "::\n")
			}
		}

		b.WriteString(line)
		b.WriteByte('\n')
	}

	return b.String()
}
