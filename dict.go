// Dictionary type and wire serialization.
//
// On the wire a dictionary is one "token=pattern" line per entry,
// sorted by token value, with embedded newlines escaped to the literal
// two-character sequence `\n`. Dictionaries also have a JSON form used
// by the file-backed registry and by resolver transports.
package marqant

import (
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// Dictionary maps a token (a single reserved byte, held as a one-byte
// string) to the pattern it stands for.
type Dictionary map[string]string

// clone returns a shallow copy. A nil receiver yields an empty map.
func (d Dictionary) clone() Dictionary {
	out := make(Dictionary, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// escapePattern makes a pattern safe for a single wire line.
func escapePattern(p string) string {
	return strings.ReplaceAll(p, "\n", `\n`)
}

// unescapePattern reverses escapePattern.
func unescapePattern(p string) string {
	return strings.ReplaceAll(p, `\n`, "\n")
}

// sortedTokens returns the dictionary's tokens in ascending byte
// order, the order entries are written to the wire.
func (d Dictionary) sortedTokens() []string {
	toks := make([]string, 0, len(d))
	for t := range d {
		toks = append(toks, t)
	}
	sort.Strings(toks)
	return toks
}

// wireLines serializes the dictionary as wire lines, each ending in a
// newline. std, when non-nil, is a standard dictionary whose exactly
// matching entries are omitted; the decoder re-seeds them from the
// same named source.
func (d Dictionary) wireLines(std Dictionary) string {
	var b strings.Builder
	for _, tok := range d.sortedTokens() {
		pat := d[tok]
		if std != nil {
			if sp, ok := std[tok]; ok && sp == pat {
				continue
			}
		}
		b.WriteString(tok)
		b.WriteByte('=')
		b.WriteString(escapePattern(pat))
		b.WriteByte('\n')
	}
	return b.String()
}

// wireSize is the dictionary's contribution to the reported compressed
// size: token + pattern + 3 bytes of per-line overhead for every
// entry, whether or not it is omitted as standard. The header records
// an estimate, not the exact serialized length.
func (d Dictionary) wireSize() int {
	n := 0
	for tok, pat := range d {
		n += len(tok) + len(pat) + 3
	}
	return n
}

// marshalJSON writes the dictionary as a flat token->pattern object,
// the form stored in registry files and returned by resolver
// transports.
func (d Dictionary) marshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string(d))
}
