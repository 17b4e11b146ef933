package wallet

import (
	"fmt"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// SeedSize is the length of a BIP-39 stretched seed in bytes (512 bits).
const SeedSize = 64

// BIP-32 master key seeds must be 128..512 bits.
const (
	MinSeedSize = 16
	MaxSeedSize = SeedSize
)

// SeedFromMnemonic derives a 512-bit seed from a mnemonic and optional passphrase
// using PBKDF2-SHA512 as specified in BIP-39. Both inputs are NFKD-normalized.
func SeedFromMnemonic(mnemonic, passphrase string) ([]byte, error) {
	m := NormalizeMnemonic(mnemonic)
	if !validMnemonic(m) {
		return nil, ErrInvalidMnemonic
	}
	seed, err := bip39.NewSeedWithErrorChecking(m, norm.NFKD.String(passphrase))
	if err != nil {
		return nil, fmt.Errorf("derive seed: %w", err)
	}
	return seed, nil
}
