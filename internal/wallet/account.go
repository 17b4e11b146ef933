package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-recovery/internal/log"
)

// Account is the public result of one derivation: no private material.
type Account struct {
	Currency  string
	Format    Format
	Path      string
	PublicKey []byte
	Address   string
	XPub      string
}

// Derive derives the account at path from seed. An empty path selects the
// currency's default path for format; an empty format is inferred from the
// path's purpose.
func Derive(seed []byte, currency, path, format string) (*Account, error) {
	c, err := LookupCurrency(currency)
	if err != nil {
		return nil, err
	}
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	var p Path
	if path == "" {
		p = c.DefaultPath(f)
	} else if p, err = ParsePath(path); err != nil {
		return nil, err
	}
	master, err := NewMasterKey(seed)
	if err != nil {
		return nil, err
	}
	return c.Derive(master, p, f)
}

// Derive walks path from master and encodes the terminal node.
func (c *Currency) Derive(master *HDKey, path Path, format Format) (*Account, error) {
	if format == "" {
		format = c.FormatForPath(path)
	}
	if !c.Supports(format) {
		return nil, fmt.Errorf("%w: %s does not support %s", ErrUnsupportedFormat, c.Symbol, format)
	}
	key, err := master.DerivePath(path)
	if err != nil {
		return nil, fmt.Errorf("derive %s: %w", path, err)
	}
	pub := key.PublicKeyBytes()
	addr, err := c.Address(pub, format)
	if err != nil {
		return nil, err
	}
	log.Wallet.Debug().
		Str("currency", c.Symbol).
		Str("path", path.String()).
		Str("format", string(format)).
		Msg("Derived account")
	return &Account{
		Currency:  c.Symbol,
		Format:    format,
		Path:      path.String(),
		PublicKey: append([]byte(nil), pub...),
		Address:   addr,
		XPub:      key.ExtendedPublicKey(c.versions[format]),
	}, nil
}
