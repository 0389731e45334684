// Package digest computes SHA-256 content digests of files by streaming them
// in fixed-size chunks, and renders digests as lowercase hexadecimal.
package digest

import (
	"crypto/sha256"
	"encoding/hex"

	godigest "github.com/opencontainers/go-digest"
)

// Algorithm is the only digest algorithm fixity reads or writes. Records carry
// no algorithm tag, so changing it would invalidate every stored record.
const Algorithm = godigest.SHA256

// Size is the length of a raw digest in bytes.
const Size = sha256.Size

// EmptyDigest is the digest of zero bytes of input.
const EmptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

// Encode renders d as lowercase hex, two zero-padded digits per byte.
func Encode(d []byte) string {
	return hex.EncodeToString(d)
}

// Decode parses a hex digest string. Upper- and lowercase digits are accepted.
func Decode(s string) ([]byte, error) {
	return hex.DecodeString(s)
}

// Valid reports whether s is a canonical digest string: exactly 2*Size
// lowercase hex characters.
func Valid(s string) bool {
	return len(s) == 2*Size && OCI(s).Validate() == nil
}

// OCI renders a digest string in "sha256:<hex>" form for logs.
func OCI(s string) godigest.Digest {
	return godigest.NewDigestFromEncoded(Algorithm, s)
}
