// Package crypto provides hashing and secp256k1 key helpers for the
// recovery tooling.
package crypto

import (
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// HashSize is the length of a BLAKE3-256 digest.
const HashSize = 32

// FingerprintSize is the number of digest bytes shown in a fingerprint.
const FingerprintSize = 4

// Hash computes a BLAKE3-256 hash of the input data.
func Hash(data []byte) [HashSize]byte {
	return blake3.Sum256(data)
}

// Fingerprint returns a short hex tag identifying secret material without
// revealing it. Log lines carry fingerprints, never secrets.
func Fingerprint(secret []byte) string {
	h := Hash(secret)
	return hex.EncodeToString(h[:FingerprintSize])
}
