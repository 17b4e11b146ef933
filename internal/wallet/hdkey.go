package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip32"
)

// privateKeyLen is the BIP-32 private scalar length.
const privateKeyLen = 32

// HDKey represents a hierarchical deterministic key (BIP-32).
type HDKey struct {
	key *bip32.Key
}

// NewMasterKey creates a master HD key from a 16..64-byte seed. Raw SLIP-39
// master secrets are used as seeds directly, so shorter seeds are valid.
func NewMasterKey(seed []byte) (*HDKey, error) {
	if len(seed) < MinSeedSize || len(seed) > MaxSeedSize {
		return nil, fmt.Errorf("%w: seed must be %d..%d bytes, got %d", ErrInvalidSeed, MinSeedSize, MaxSeedSize, len(seed))
	}
	master, err := bip32.NewMasterKey(seed)
	if err != nil {
		return nil, fmt.Errorf("create master key: %w", err)
	}
	return &HDKey{key: master}, nil
}

// ParseExtendedPublicKey decodes a base58check extended public key of any
// SLIP-132 version. Extended private keys are refused.
func ParseExtendedPublicKey(s string) (*HDKey, error) {
	key, err := bip32.B58Deserialize(s)
	if err != nil {
		return nil, fmt.Errorf("decode extended key: %w", err)
	}
	if key.IsPrivate {
		return nil, ErrNotPublicKey
	}
	return &HDKey{key: key}, nil
}

// DeriveChild derives a child key at the given index.
// For hardened derivation, add HardenedOffset to the index.
func (k *HDKey) DeriveChild(index uint32) (*HDKey, error) {
	if !k.key.IsPrivate && index >= HardenedOffset {
		return nil, fmt.Errorf("derive child %d: %w", index, ErrHardenedFromPublic)
	}
	child, err := k.key.NewChildKey(index)
	if err != nil {
		return nil, fmt.Errorf("derive child %d: %w", index, err)
	}
	// Keep private scalars at full width so that later hardened steps and
	// serialization see the canonical 32 bytes.
	if child.IsPrivate && len(child.Key) < privateKeyLen {
		padded := make([]byte, privateKeyLen)
		copy(padded[privateKeyLen-len(child.Key):], child.Key)
		child.Key = padded
	}
	return &HDKey{key: child}, nil
}

// DerivePath derives a key along a sequence of indices.
func (k *HDKey) DerivePath(path Path) (*HDKey, error) {
	current := k
	for _, idx := range path {
		child, err := current.DeriveChild(idx)
		if err != nil {
			return nil, err
		}
		current = child
	}
	return current, nil
}

// PrivateKeyBytes returns the raw 32-byte private key.
// Returns nil if this is a public-only key.
func (k *HDKey) PrivateKeyBytes() []byte {
	if !k.key.IsPrivate {
		return nil
	}
	raw := k.key.Key
	if len(raw) == privateKeyLen+1 && raw[0] == 0 {
		return raw[1:]
	}
	return raw
}

// PublicKeyBytes returns the compressed 33-byte public key.
func (k *HDKey) PublicKeyBytes() []byte {
	pub := k.key.PublicKey()
	return pub.Key
}

// ExtendedPublicKey serializes the neutered key with the given version
// bytes (xpub, ypub, zpub, ...).
func (k *HDKey) ExtendedPublicKey(version [4]byte) string {
	pub := k.key.PublicKey()
	pub.Version = append([]byte(nil), version[:]...)
	return pub.B58Serialize()
}

// IsPrivate returns true if this key contains a private key.
func (k *HDKey) IsPrivate() bool {
	return k.key.IsPrivate
}

// Depth returns the derivation depth (0 for master).
func (k *HDKey) Depth() uint8 {
	return k.key.Depth
}

// Neuter returns a public-key-only copy (for watch-only wallets).
func (k *HDKey) Neuter() *HDKey {
	return &HDKey{key: k.key.PublicKey()}
}
