// Package hashx computes the content digests that bind signatures to
// document bytes: SHA-256, lowercase hex, 64 characters.
package hashx

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"io"
)

// DigestSize is the length of a hex-encoded digest.
const DigestSize = sha256.Size * 2

// Sum returns the hex digest of data.
func Sum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SumReader streams r into the hash and returns its hex digest.
func SumReader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Equal compares two hex digests in constant time.
func Equal(a, b string) bool {
	return len(a) == len(b) && subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
