package recovery

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"

	"github.com/Klingon-tech/klingnet-recovery/internal/log"
	"github.com/Klingon-tech/klingnet-recovery/internal/wallet"
	"github.com/Klingon-tech/klingnet-recovery/pkg/crypto"
	"github.com/Klingon-tech/klingnet-recovery/pkg/slip39"
)

// DefaultSecretSize is the length of a generated master secret (128 bits).
const DefaultSecretSize = 16

// CreateOptions tune Create. Zero fields take the defaults below.
type CreateOptions struct {
	// MasterSecret is split as given; nil draws DefaultSecretSize bytes
	// from Random.
	MasterSecret []byte
	Passphrase   []byte
	// UsingBIP39 treats MasterSecret as BIP-39 entropy: accounts come from
	// the stretched seed and Passphrase feeds BIP-39 instead of encrypting
	// the shares.
	UsingBIP39        bool
	Cryptopaths       []Cryptopath
	AccountCount      int
	IterationExponent uint8
	Extendable        bool
	Random            io.Reader
}

// DefaultCreateOptions returns options with the default iteration exponent,
// one account per cryptopath and the default cryptopaths.
func DefaultCreateOptions() CreateOptions {
	return CreateOptions{
		Cryptopaths:       DefaultCryptopaths(),
		AccountCount:      1,
		IterationExponent: slip39.DefaultIterationExponent,
	}
}

// Group is one named group of mnemonics handed back to its holders.
type Group struct {
	Name      string
	Threshold int
	Mnemonics []string
}

// Details describe a created share set and the accounts it controls.
type Details struct {
	Name           string
	GroupThreshold int
	Groups         []Group
	// Accounts is indexed [account][cryptopath].
	Accounts [][]*wallet.Account
}

// Group returns the group with the given name.
func (d *Details) Group(name string) (Group, bool) {
	for _, g := range d.Groups {
		if g.Name == name {
			return g, true
		}
	}
	return Group{}, false
}

// Create splits a master secret into SLIP-39 groups and derives the accounts
// the secret controls.
func Create(ctx context.Context, name string, groupThreshold int, groups []slip39.GroupSpec, opts CreateOptions) (*Details, error) {
	defer log.Benchmark("create")()

	rnd := opts.Random
	if rnd == nil {
		rnd = rand.Reader
	}
	secret := opts.MasterSecret
	if secret == nil {
		secret = make([]byte, DefaultSecretSize)
		if _, err := io.ReadFull(rnd, secret); err != nil {
			return nil, fmt.Errorf("generate master secret: %w", err)
		}
	}
	paths := opts.Cryptopaths
	if len(paths) == 0 {
		paths = DefaultCryptopaths()
	}
	count := opts.AccountCount
	if count == 0 {
		count = 1
	}

	seed := secret
	sharePassphrase := opts.Passphrase
	if opts.UsingBIP39 {
		sentence, err := wallet.MnemonicFromEntropy(secret)
		if err != nil {
			return nil, fmt.Errorf("bip39 entropy: %w", err)
		}
		if seed, err = wallet.SeedFromMnemonic(sentence, string(opts.Passphrase)); err != nil {
			return nil, err
		}
		sharePassphrase = nil
	}

	mnemonics, err := slip39.SplitMnemonics(groupThreshold, groups, secret, slip39.SplitOptions{
		Passphrase:        sharePassphrase,
		IterationExponent: opts.IterationExponent,
		Extendable:        opts.Extendable,
		Random:            rnd,
	})
	if err != nil {
		return nil, err
	}

	accounts, err := DeriveAccounts(ctx, seed, paths, count)
	if err != nil {
		return nil, err
	}

	details := &Details{
		Name:           name,
		GroupThreshold: groupThreshold,
		Groups:         make([]Group, len(groups)),
		Accounts:       accounts,
	}
	for i, g := range groups {
		details.Groups[i] = Group{Name: g.Name, Threshold: g.MemberThreshold, Mnemonics: mnemonics[i]}
	}

	log.Recovery.Debug().
		Str("name", name).
		Int("groups", len(groups)).
		Int("threshold", groupThreshold).
		Bool("bip39", opts.UsingBIP39).
		Str("fingerprint", crypto.Fingerprint(secret)).
		Msg("Created SLIP-39 share set")
	return details, nil
}
