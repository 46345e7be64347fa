// Decoding: header parse, dictionary reconstruction, compression
// reversal, and token back-substitution.
package marqant

import (
	"fmt"
	"sort"
	"strings"
)

// Decoder holds decode-time configuration. The zero value decodes any
// document that does not name a standard dictionary beyond the
// built-in table.
type Decoder struct {
	// Registry is an optional local standard-dictionary store,
	// consulted after the built-in table.
	Registry *Registry

	// Resolver is the remote fallback for standard dictionary ids,
	// consulted last. Nil disables remote resolution.
	Resolver Resolver
}

// Decode decompresses a wire document with the default Decoder. See
// Decoder.Decode.
func Decode(compressed string) (string, error) {
	return Decoder{}.Decode(compressed)
}

// Decode reverses Encode. Any parse, resolution, or decompression
// failure is returned immediately; there is no partial decode.
func (d Decoder) Decode(compressed string) (string, error) {
	lines := strings.Split(strings.TrimSuffix(compressed, "\n"), "\n")

	hdr, err := parseHeader(lines[0])
	if err != nil {
		return "", err
	}

	dict := make(Dictionary)
	if id := hdr.stdID(); id != "" {
		std, err := d.resolveStd(id)
		if err != nil {
			return "", err
		}
		for tok, pat := range std {
			dict[tok] = pat
		}
	}

	// Dictionary lines run to the separator; wire entries override
	// pre-seeded standard ones.
	contentStart := -1
	for i := 1; i < len(lines); i++ {
		if lines[i] == Separator {
			contentStart = i + 1
			break
		}
		if tok, pat, ok := strings.Cut(lines[i], "="); ok {
			dict[tok] = unescapePattern(pat)
		}
	}
	if contentStart < 0 {
		return "", fmt.Errorf("%w: missing %q separator line", ErrFormat, Separator)
	}

	body := strings.Join(lines[contentStart:], "\n")
	if hdr.hasFlag(FlagZlib) {
		body, err = inflateBody(body)
		if err != nil {
			return "", err
		}
	}

	text := substitute(body, dict)

	if hdr.hasFlag(FlagSemantic) {
		text = stripSectionTags(text)
	}

	return text, nil
}

// resolveStd resolves a standard dictionary id: built-in table, then
// the local registry, then the remote resolver. A miss everywhere is
// an error: decoding with an incomplete dictionary would silently
// produce a wrong document.
func (d Decoder) resolveStd(id string) (Dictionary, error) {
	if std := stdDict(id); std != nil {
		return std, nil
	}
	if d.Registry != nil {
		std, err := d.Registry.Lookup(id)
		if err != nil {
			return nil, fmt.Errorf("%w: registry lookup of %q: %w", ErrDictResolution, id, err)
		}
		if std != nil {
			return std, nil
		}
	}
	if d.Resolver != nil {
		std, err := d.Resolver.Resolve(id)
		if err != nil {
			return nil, fmt.Errorf("%w: remote resolution of %q: %w", ErrDictResolution, id, err)
		}
		if std != nil {
			return std, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown standard dictionary id %q", ErrDictResolution, id)
}

// substitute replaces every token with its pattern, longest token
// first. All current tokens are single bytes, so the length ordering
// is defensive; the secondary byte-value ordering keeps the pass
// deterministic.
func substitute(body string, dict Dictionary) string {
	toks := make([]string, 0, len(dict))
	for t := range dict {
		toks = append(toks, t)
	}
	sort.Slice(toks, func(i, j int) bool {
		if len(toks[i]) != len(toks[j]) {
			return len(toks[i]) > len(toks[j])
		}
		return toks[i] < toks[j]
	})

	for _, t := range toks {
		body = strings.ReplaceAll(body, t, dict[t])
	}
	return body
}

// stripSectionTags drops every line that is exactly a
// ::section:<name>:: marker and trims trailing whitespace.
func stripSectionTags(text string) string {
	var b strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(text, "\n"), "\n") {
		if strings.HasPrefix(line, "::section:") && strings.HasSuffix(line, "::") {
			continue
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), " \t\n\r")
}
