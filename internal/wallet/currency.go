package wallet

import (
	"fmt"
	"sort"
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
)

// Format selects an address encoding.
type Format string

// Address formats. For account-model chains only FormatLegacy applies.
const (
	FormatLegacy Format = "legacy" // base58check P2PKH
	FormatSegwit Format = "segwit" // base58check P2SH-wrapped P2WPKH
	FormatBech32 Format = "bech32" // native P2WPKH
)

// ParseFormat validates a format name. The empty string is returned as-is
// and means "infer from path or currency".
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatLegacy, FormatSegwit, FormatBech32:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// purpose returns the BIP-43 purpose that conventionally goes with f.
func (f Format) purpose() uint32 {
	switch f {
	case FormatSegwit:
		return PurposeBIP49
	case FormatBech32:
		return PurposeBIP84
	default:
		return PurposeBIP44
	}
}

// SLIP-132 extended public key version bytes.
var (
	versionXpub = [4]byte{0x04, 0x88, 0xb2, 0x1e}
	versionYpub = [4]byte{0x04, 0x9d, 0x7c, 0xb2}
	versionZpub = [4]byte{0x04, 0xb2, 0x47, 0x46}
	versionTpub = [4]byte{0x04, 0x35, 0x87, 0xcf}
	versionUpub = [4]byte{0x04, 0x4a, 0x52, 0x62}
	versionVpub = [4]byte{0x04, 0x5f, 0x1c, 0xf6}
	versionDgub = [4]byte{0x02, 0xfa, 0xca, 0xfd}
)

// Currency describes how accounts of one chain are derived and encoded.
type Currency struct {
	Symbol        string
	Name          string
	CoinType      uint32
	DefaultFormat Format

	// params is nil for account-model chains (ETH).
	params   *chaincfg.Params
	versions map[Format][4]byte
}

var litecoinParams = chaincfg.Params{
	Name:             "litecoin",
	PubKeyHashAddrID: 0x30,
	ScriptHashAddrID: 0x32,
	PrivateKeyID:     0xb0,
	Bech32HRPSegwit:  "ltc",
	HDPublicKeyID:    versionXpub,
	HDCoinType:       2,
}

var dogecoinParams = chaincfg.Params{
	Name:             "dogecoin",
	PubKeyHashAddrID: 0x1e,
	ScriptHashAddrID: 0x16,
	PrivateKeyID:     0x9e,
	HDPublicKeyID:    versionDgub,
	HDCoinType:       3,
}

var currencies = map[string]*Currency{
	"BTC": {
		Symbol: "BTC", Name: "Bitcoin", CoinType: 0, DefaultFormat: FormatBech32,
		params: &chaincfg.MainNetParams,
		versions: map[Format][4]byte{
			FormatLegacy: versionXpub, FormatSegwit: versionYpub, FormatBech32: versionZpub,
		},
	},
	"TBTC": {
		Symbol: "TBTC", Name: "Bitcoin Testnet", CoinType: 1, DefaultFormat: FormatBech32,
		params: &chaincfg.TestNet3Params,
		versions: map[Format][4]byte{
			FormatLegacy: versionTpub, FormatSegwit: versionUpub, FormatBech32: versionVpub,
		},
	},
	"LTC": {
		Symbol: "LTC", Name: "Litecoin", CoinType: 2, DefaultFormat: FormatBech32,
		params: &litecoinParams,
		versions: map[Format][4]byte{
			FormatLegacy: versionXpub, FormatSegwit: versionYpub, FormatBech32: versionZpub,
		},
	},
	"DOGE": {
		Symbol: "DOGE", Name: "Dogecoin", CoinType: 3, DefaultFormat: FormatLegacy,
		params: &dogecoinParams,
		versions: map[Format][4]byte{
			FormatLegacy: versionDgub,
		},
	},
	"ETH": {
		Symbol: "ETH", Name: "Ethereum", CoinType: 60, DefaultFormat: FormatLegacy,
		versions: map[Format][4]byte{
			FormatLegacy: versionXpub,
		},
	},
}

// LookupCurrency returns the currency registered under symbol (case
// insensitive).
func LookupCurrency(symbol string) (*Currency, error) {
	c, ok := currencies[strings.ToUpper(strings.TrimSpace(symbol))]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCurrency, symbol)
	}
	return c, nil
}

// Currencies returns the registered symbols in sorted order.
func Currencies() []string {
	out := make([]string, 0, len(currencies))
	for s := range currencies {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// Supports reports whether addresses of format f can be produced.
func (c *Currency) Supports(f Format) bool {
	_, ok := c.versions[f]
	return ok
}

// Formats returns the supported formats in legacy, segwit, bech32 order.
func (c *Currency) Formats() []Format {
	var out []Format
	for _, f := range []Format{FormatLegacy, FormatSegwit, FormatBech32} {
		if c.Supports(f) {
			out = append(out, f)
		}
	}
	return out
}

// DefaultPath returns m/purpose'/coin'/0'/0/0 for format f.
func (c *Currency) DefaultPath(f Format) Path {
	if f == "" {
		f = c.DefaultFormat
	}
	return Path{
		f.purpose() + HardenedOffset,
		c.CoinType + HardenedOffset,
		HardenedOffset,
		0,
		0,
	}
}

// FormatForPath infers the format from the path's purpose, falling back to
// the currency default.
func (c *Currency) FormatForPath(p Path) Format {
	if purpose, ok := p.Purpose(); ok {
		for _, f := range c.Formats() {
			if f.purpose() == purpose {
				return f
			}
		}
	}
	return c.DefaultFormat
}

func (c *Currency) String() string {
	return c.Symbol
}
