// Standard dictionaries and remote resolution.
//
// A standard dictionary is a named token->pattern mapping both ends
// agree on out of band, letting the encoder leave matching entries off
// the wire. One id is built in: std-static-v1, the first seventeen
// entries of the version 1 static table. Every other id resolves
// through the decoder's registry or its injected Resolver.
//
// The remote mechanism publishes a dictionary as a DNS TXT record of
// whitespace-separated base64(token)=base64(pattern) pairs at
// _mq.<id>.<domain>. Transport is injectable so the codec tests never
// touch the network.
package marqant

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net"
	"strings"
)

// StdStaticV1 is the built-in baseline standard dictionary id.
const StdStaticV1 = "std-static-v1"

// stdStaticCount is how many leading static-table entries StdStaticV1
// covers (0x01 through 0x15).
const stdStaticCount = 17

// stdDict returns the built-in dictionary for id, or nil when the id
// is not known locally.
func stdDict(id string) Dictionary {
	if id != StdStaticV1 {
		return nil
	}
	d := make(Dictionary, stdStaticCount)
	for _, e := range staticTable[:stdStaticCount] {
		d[string(e.token)] = e.pattern
	}
	return d
}

// Resolver resolves a standard dictionary id that is not known
// locally. (nil, nil) means a definitive miss; an error means the
// attempt itself failed. Resolution may block on the network, so
// callers own any timeout policy.
type Resolver interface {
	Resolve(id string) (Dictionary, error)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(id string) (Dictionary, error)

// Resolve calls f.
func (f ResolverFunc) Resolve(id string) (Dictionary, error) { return f(id) }

// DefaultDomain is the DNS zone standard dictionaries are published
// under.
const DefaultDomain = "mq.mem8.org"

// DNSResolver resolves dictionary ids from DNS TXT records. The zero
// value queries _mq.<id>.mq.mem8.org through the system resolver.
type DNSResolver struct {
	// Domain overrides DefaultDomain.
	Domain string

	// Lookup overrides the TXT query, mainly for tests. Nil means
	// net.LookupTXT.
	Lookup func(name string) ([]string, error)
}

// Resolve queries the TXT record for id and parses its pairs.
// A missing or empty record is a miss, not an error; a record with a
// malformed pair is an error.
func (r DNSResolver) Resolve(id string) (Dictionary, error) {
	domain := r.Domain
	if domain == "" {
		domain = DefaultDomain
	}
	lookup := r.Lookup
	if lookup == nil {
		lookup = net.LookupTXT
	}

	records, err := lookup("_mq." + id + "." + domain)
	if err != nil {
		var dnsErr *net.DNSError
		if errors.As(err, &dnsErr) && dnsErr.IsNotFound {
			return nil, nil
		}
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	record := strings.Trim(strings.TrimSpace(records[0]), `"`)
	if record == "" {
		return nil, nil
	}

	dict := make(Dictionary)
	for _, pair := range strings.Fields(record) {
		tok, pat, err := splitPair(pair)
		if err != nil {
			return nil, fmt.Errorf("TXT record for %q: %w", id, err)
		}
		dict[tok] = pat
	}

	if len(dict) == 0 {
		return nil, nil
	}
	return dict, nil
}

// splitPair splits a base64(token)=base64(pattern) pair. Base64
// padding also uses '=', so the separator is the '=' at which both
// halves decode; tokens are short, making the scan cheap.
func splitPair(pair string) (tok, pat string, err error) {
	for i := 0; i < len(pair); i++ {
		if pair[i] != '=' {
			continue
		}
		t, terr := decodeB64(pair[:i])
		if terr != nil || len(t) == 0 {
			continue
		}
		p, perr := decodeB64(pair[i+1:])
		if perr != nil || len(p) == 0 {
			continue
		}
		return string(t), string(p), nil
	}
	return "", "", fmt.Errorf("invalid dictionary pair %q", pair)
}

// decodeB64 accepts both padded and unpadded standard base64.
func decodeB64(s string) ([]byte, error) {
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return b, nil
	}
	return base64.RawStdEncoding.DecodeString(s)
}
