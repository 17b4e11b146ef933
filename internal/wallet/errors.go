package wallet

import "errors"

var (
	ErrInvalidMnemonic    = errors.New("invalid BIP-39 mnemonic")
	ErrInvalidSeed        = errors.New("invalid seed length")
	ErrInvalidPath        = errors.New("invalid derivation path")
	ErrIndexTooLarge      = errors.New("child index at or above the hardened boundary")
	ErrUnknownCurrency    = errors.New("unknown currency")
	ErrUnsupportedFormat  = errors.New("unsupported address format")
	ErrHardenedFromPublic = errors.New("hardened derivation from a public key")
	ErrNotPublicKey       = errors.New("extended key is not public")
)
