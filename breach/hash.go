package breach

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

// PrefixLength is how many hex characters of the digest leave the machine.
const PrefixLength = 5

// HashPrefix returns the uppercase SHA-1 hex digest of password split into the
// five character prefix that is sent and the 35 character suffix that is
// matched locally.
func HashPrefix(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password))
	digest := strings.ToUpper(hex.EncodeToString(sum[:]))

	return digest[:PrefixLength], digest[PrefixLength:]
}
