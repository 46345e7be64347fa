// Dictionary fingerprints.
//
// A fingerprint is a 16 hex character digest of a dictionary's sorted
// wire lines, used to compare dictionaries across machines without
// shipping them. Three algorithms are supported, selectable via
// Inspector.Algorithm.
package marqant

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

// Fingerprint digests the dictionary's canonical serialization with
// the given algorithm. Two dictionaries fingerprint equal exactly
// when their wire forms are identical.
func (d Dictionary) Fingerprint(alg int) string {
	canon := d.wireLines(nil)
	switch alg {
	case AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.HashString(canon))
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write([]byte(canon))
		return fmt.Sprintf("%016x", h.Sum64())
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write([]byte(canon))
		return fmt.Sprintf("%016x", h.Sum(nil))
	default:
		return ""
	}
}
