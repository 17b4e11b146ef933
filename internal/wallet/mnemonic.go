// Package wallet implements BIP-39 mnemonics and BIP-32 account derivation
// for recovered master secrets.
package wallet

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
	"golang.org/x/text/unicode/norm"
)

// MnemonicFromEntropy encodes entropy as a BIP-39 sentence.
func MnemonicFromEntropy(entropy []byte) (string, error) {
	mnemonic, err := bip39.NewMnemonic(entropy)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return mnemonic, nil
}

// NormalizeMnemonic applies NFKD, lower-cases and collapses whitespace to
// single spaces.
func NormalizeMnemonic(mnemonic string) string {
	words := strings.Fields(norm.NFKD.String(mnemonic))
	return strings.ToLower(strings.Join(words, " "))
}

// validMnemonic checks word count, words and checksum of a normalized
// sentence.
func validMnemonic(normalized string) bool {
	return bip39.IsMnemonicValid(normalized)
}

// EntropyFromMnemonic decodes a BIP-39 sentence back to its entropy.
func EntropyFromMnemonic(mnemonic string) ([]byte, error) {
	entropy, err := bip39.EntropyFromMnemonic(NormalizeMnemonic(mnemonic))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMnemonic, err)
	}
	return entropy, nil
}
