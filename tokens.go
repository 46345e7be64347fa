// Static token table for common markdown constructs.
//
// The table is versioned: its byte assignments are part of the wire
// format and must never be reordered or renumbered within a version.
// Substitution order is also part of the format: an earlier, shorter
// pattern can shadow a later, longer one (e.g. "```" consumes the
// opening of "```bash"), and decoders rely on encoders sharing that
// order.
package marqant

import "strings"

// Reserved token range. Mined phrases are assigned bytes from
// tokenFirst upward; tokenLimit is the first byte never used.
// 0x0A and 0x0D are excluded everywhere because the wire format is
// line-oriented.
const (
	tokenFirst = 0x1B
	tokenLimit = 0x7F
)

// staticTable is version 1 of the static token table, in substitution
// order.
var staticTable = []struct {
	token   byte
	pattern string
}{
	{0x01, "# "},
	{0x02, "## "},
	{0x03, "### "},
	{0x04, "#### "},
	{0x05, "```"},
	{0x06, "\n\n"},
	{0x07, "- "},
	{0x0B, "* "},
	{0x0C, "**"},
	{0x0E, "__"},
	{0x0F, "> "},
	{0x10, "| "},
	{0x11, "---"},
	{0x12, "***"},
	{0x13, "["},
	{0x14, "]("},
	{0x15, "```bash"},
	{0x16, "```rust"},
	{0x17, "```javascript"},
	{0x18, "```python"},
	{0x19, "\n```\n"},
	{0x1A, "    "},
}

// worthSubstituting reports whether replacing count occurrences of a
// pattern with a one-byte token saves space net of the dictionary line
// the entry costs (token + '=' + pattern + newline, approximated as
// pattern length + 3).
func worthSubstituting(count, patternLen int) bool {
	return count*patternLen > count+patternLen+3
}

// applyStatic runs the static-table pass over content. It returns the
// dictionary of accepted entries and the substituted text. Only
// patterns whose substitution yields positive net savings are
// replaced; all occurrences of an accepted pattern are replaced.
func applyStatic(content string) (Dictionary, string) {
	dict := make(Dictionary)
	tokenized := content

	for _, e := range staticTable {
		count := strings.Count(tokenized, e.pattern)
		if count == 0 {
			continue
		}
		if !worthSubstituting(count, len(e.pattern)) {
			continue
		}
		tok := string(e.token)
		dict[tok] = e.pattern
		tokenized = strings.ReplaceAll(tokenized, e.pattern, tok)
	}

	return dict, tokenized
}
