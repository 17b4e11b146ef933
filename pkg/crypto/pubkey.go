package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// Key sizes in bytes.
const (
	PrivateKeySize         = 32
	CompressedPubKeySize   = 33
	UncompressedPubKeySize = 65
)

// ErrInvalidKey is returned for malformed key material.
var ErrInvalidKey = errors.New("invalid secp256k1 key")

// PubKeyFromPrivate returns the compressed public key of a 32-byte scalar.
func PubKeyFromPrivate(priv []byte) ([]byte, error) {
	if len(priv) != PrivateKeySize {
		return nil, fmt.Errorf("%w: private key must be %d bytes, got %d", ErrInvalidKey, PrivateKeySize, len(priv))
	}
	var scalar secp256k1.ModNScalar
	if overflow := scalar.SetByteSlice(priv); overflow || scalar.IsZero() {
		return nil, fmt.Errorf("%w: private key out of range", ErrInvalidKey)
	}
	key := secp256k1.NewPrivateKey(&scalar)
	defer key.Zero()
	return key.PubKey().SerializeCompressed(), nil
}

// DecompressPubKey parses a compressed or uncompressed public key and
// returns its 65-byte uncompressed form (0x04 || X || Y).
func DecompressPubKey(pub []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key.SerializeUncompressed(), nil
}

// CompressPubKey returns the 33-byte compressed form of a public key.
func CompressPubKey(pub []byte) ([]byte, error) {
	key, err := secp256k1.ParsePubKey(pub)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
	}
	return key.SerializeCompressed(), nil
}
