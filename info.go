// Document inspection without decoding.
package marqant

import "strings"

// Info summarizes a document's header and wire dictionary.
type Info struct {
	Timestamp      string   // As written in the header
	OriginalSize   int      // Input byte length
	CompressedSize int      // Reported estimate from the header
	Flags          []string // Header flags, possibly empty
	Entries        int      // Wire dictionary entries (std omissions excluded)
	Fingerprint    string   // Digest of the wire dictionary
}

// Inspector holds inspection configuration. The zero value uses
// xxHash3 fingerprints.
type Inspector struct {
	// Algorithm selects the fingerprint digest: AlgXXHash3 (default),
	// AlgFNV1a, or AlgBlake2b.
	Algorithm int
}

// Inspect reads a document's metadata with the default Inspector.
func Inspect(input string) (*Info, error) {
	return Inspector{}.Inspect(input)
}

// Inspect parses the header and dictionary section of input without
// touching the body. Tooling uses it to list archives and dedupe
// dictionaries cheaply.
func (ins Inspector) Inspect(input string) (*Info, error) {
	lines := strings.Split(strings.TrimSuffix(input, "\n"), "\n")

	hdr, err := parseHeader(lines[0])
	if err != nil {
		return nil, err
	}

	dict := make(Dictionary)
	for i := 1; i < len(lines); i++ {
		if lines[i] == Separator {
			break
		}
		if tok, pat, ok := strings.Cut(lines[i], "="); ok {
			dict[tok] = unescapePattern(pat)
		}
	}

	alg := ins.Algorithm
	if alg == 0 {
		alg = AlgXXHash3
	}

	return &Info{
		Timestamp:      hdr.Timestamp,
		OriginalSize:   hdr.OriginalSize,
		CompressedSize: hdr.CompressedSize,
		Flags:          hdr.Flags,
		Entries:        len(dict),
		Fingerprint:    dict.Fingerprint(alg),
	}, nil
}
