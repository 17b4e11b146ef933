// Package recovery ties the two mnemonic standards together: it recovers a
// master secret from SLIP-39 shares or a BIP-39 sentence, and creates new
// share sets along with the accounts they control.
package recovery

import (
	"errors"

	"github.com/Klingon-tech/klingnet-recovery/internal/log"
	"github.com/Klingon-tech/klingnet-recovery/internal/wallet"
	"github.com/Klingon-tech/klingnet-recovery/pkg/crypto"
	"github.com/Klingon-tech/klingnet-recovery/pkg/slip39"
)

var (
	ErrPassphraseWithEntropy = errors.New("passphrase is not used when recovering raw entropy")
	ErrInvalidGroupSpec      = errors.New("invalid group spec")
	ErrInvalidCryptopath     = errors.New("invalid cryptopath")
)

// RecoverOptions configure SLIP-39 recovery.
type RecoverOptions struct {
	Passphrase []byte
}

// Recover reconstructs the master secret from a set of SLIP-39 mnemonics.
// Blank entries are skipped; surplus shares beyond the thresholds are
// accepted.
func Recover(mnemonics []string, opts RecoverOptions) ([]byte, error) {
	defer log.Benchmark("recover")()

	secret, err := slip39.CombineMnemonics(mnemonics, opts.Passphrase)
	if err != nil {
		return nil, err
	}
	log.Recovery.Debug().
		Int("mnemonics", len(mnemonics)).
		Int("bits", len(secret)*8).
		Str("fingerprint", crypto.Fingerprint(secret)).
		Msg("Recovered SLIP-39 secret")
	return secret, nil
}

// BIP39Options configure BIP-39 recovery.
type BIP39Options struct {
	Passphrase string
	// AsEntropy returns the sentence's raw entropy instead of the
	// stretched 64-byte seed.
	AsEntropy bool
}

// RecoverBIP39 decodes a BIP-39 sentence. Raw entropy and the stretched
// seed are different secrets: accounts derived from one never match
// accounts derived from the other.
func RecoverBIP39(sentence string, opts BIP39Options) ([]byte, error) {
	if opts.AsEntropy {
		if opts.Passphrase != "" {
			return nil, ErrPassphraseWithEntropy
		}
		entropy, err := wallet.EntropyFromMnemonic(sentence)
		if err != nil {
			return nil, err
		}
		log.Recovery.Debug().
			Int("bits", len(entropy)*8).
			Str("fingerprint", crypto.Fingerprint(entropy)).
			Msg("Recovered BIP-39 entropy")
		return entropy, nil
	}

	seed, err := wallet.SeedFromMnemonic(sentence, opts.Passphrase)
	if err != nil {
		return nil, err
	}
	log.Recovery.Debug().
		Bool("passphrase", opts.Passphrase != "").
		Str("fingerprint", crypto.Fingerprint(seed)).
		Msg("Recovered BIP-39 seed")
	return seed, nil
}
