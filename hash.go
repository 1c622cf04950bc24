// Name hashing for registry lock files.
//
// Resource names are arbitrary strings and may contain separators or
// characters a filesystem rejects, so a Registry stores each lock under a
// 16 hex character digest of the name. Three algorithms are offered,
// selectable via Config.HashAlgorithm. Every process sharing a directory
// must use the same one, or they will lock different files.
package advlock

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // Standard library only
	AlgBlake2b = 3 // Best distribution
)

// hashName returns the 16 hex character digest of name under alg.
func hashName(name string, alg int) (string, error) {
	var sum uint64
	switch alg {
	case AlgXXHash3:
		sum = xxh3.HashString(name)
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write([]byte(name))
		sum = h.Sum64()
	case AlgBlake2b:
		// An 8 byte digest with no key cannot fail.
		h, _ := blake2b.New(8, nil)
		h.Write([]byte(name))
		sum = binary.BigEndian.Uint64(h.Sum(nil))
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
	return fmt.Sprintf("%016x", sum), nil
}
