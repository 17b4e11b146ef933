package wallet

import (
	"bytes"
	"encoding/hex"
	"errors"
	"testing"

	"github.com/Klingon-tech/klingnet-recovery/pkg/crypto"
)

var onesSeed = bytes.Repeat([]byte{0xff}, 16)

func TestDerive_Vectors(t *testing.T) {
	tests := []struct {
		name     string
		seed     []byte
		currency string
		path     string
		format   string
		address  string
		xpub     string
	}{
		{
			name:     "btc legacy",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/44'/0'/0'/0/0",
			format:   "legacy",
			address:  "1MAjc529bjmkC1iCXTw2XMHL2zof5StqdQ",
			xpub:     "xpub6G8aEShqQuNemcHe4mA8fxnQm3MpcfoVcdwDWWisrhVSiBrbii74Nv94i2pKcMbmu4jTahKFr7JbhNEPTCdXodJ7DhbAMGnXcuMZneyiCYE",
		},
		{
			name:     "btc segwit on bip44 path",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/44'/0'/0'/0/0",
			format:   "segwit",
			address:  "3KhtBNzKCmWe3B3aBxCAZrcrEyzMyTKivN",
		},
		{
			name:     "btc bech32 on bip44 path",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/44'/0'/0'/0/0",
			format:   "bech32",
			address:  "bc1qm5ua96hx30snwrwsfnv97q96h53l86ded7wmjl",
		},
		{
			name:     "btc segwit",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/49'/0'/0'/0/0",
			format:   "segwit",
			address:  "3Nhzp8rPkgTZhnF6qRjpE8nz8EsS8JfDEu",
			xpub:     "ypub6aX3d5PwDbC9fgANumMJihTpu7UugcKaD2H8xv48DMJqdRXiH5u25EiC1XbpKrxyrDdcBPQp1RZ6q7E4bE9q27KLvTB5B6UaTWmYau1xfti",
		},
		{
			name:     "btc bech32 default path",
			seed:     onesSeed,
			currency: "BTC",
			address:  "bc1q9yscq3l2yfxlvnlk3cszpqefparrv7tk24u6pl",
			xpub:     "zpub6uMZYEpdewNa98z7Hge3R4GzeayoXCmtPUzFV7DVa4cc36k2Xh7oEDvs6baStXLxT8VtXkBZ56yfuk4D5JvM43nbB7EpdkmJC75ScEZm2QK",
		},
		{
			name:     "btc legacy on bip84 path",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/84'/0'/0'/0/0",
			format:   "legacy",
			address:  "14kUqZbtredTLv2yt8LtVYa6SuhAiDD5uD",
		},
		{
			name:     "btc segwit on bip84 path",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/84'/0'/0'/0/0",
			format:   "segwit",
			address:  "3EAzV8uweRwvrR5BJvkfRLmvUMxcxTdjze",
		},
		{
			name:     "btc account node",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/84'/0'/0'",
			address:  "bc1qupax5nqrrd56r5wq0xlg9uv30kadn8yas6u8x6",
			xpub:     "zpub6rYuQSdWiaGTwkFCuYY2XYGQLXenUf2prKh2j1C7NmYZSjubX1jbdbqVcPrFsSZF86f2g8Vh3qAXbZA9iCRMswbXbUfkcn4qUqsRUqNDD3j",
		},
		{
			name:     "btc second address",
			seed:     onesSeed,
			currency: "BTC",
			path:     "m/84'/0'/0'/0/1",
			address:  "bc1qnec684yvuhfrmy3q856gydllsc54p2tx9w955c",
		},
		{
			name:     "eth default",
			seed:     onesSeed,
			currency: "ETH",
			address:  "0x824b174803e688dE39aF5B3D7Cd39bE6515A19a1",
			xpub:     "xpub6H8dsEnLhLKRSYnHjVzAeTwSAN5ygc4mPtqVCbE1jSBfUNcAyAAbVdWYBPqNACw88QRCq3EwWSFddt1zfM9wxDhcXDmJ7donANdWJ3jJC4e",
		},
		{
			name:     "eth second account",
			seed:     onesSeed,
			currency: "eth",
			path:     "m/44'/60'/0'/0/1",
			address:  "0x8D342083549C635C0494d3c77567860ee7456963",
		},
		{
			name:     "ltc bech32",
			seed:     onesSeed,
			currency: "LTC",
			address:  "ltc1qe5m2mst9kjcqtfpapaanaty40qe8xtusmq4ake",
		},
		{
			name:     "ltc legacy",
			seed:     onesSeed,
			currency: "LTC",
			format:   "legacy",
			address:  "LY4KpbytKEv6CbecVH3m1s2QcFkQnfZ4Ld",
		},
		{
			name:     "doge",
			seed:     onesSeed,
			currency: "DOGE",
			address:  "DN8PNN3dipSJpLmyxtGe4EJH38EhqF8Sfy",
			xpub:     "dgub8vvGfxW6qsYQzDif2y8iHnbQVKc86px4fGahJCTqpJtkeYMJZYwHcUGxSULArA3shsEcV72Q9UucFppjQQgfwDKHUZCsK9GAHg4Z2JVPCQr",
		},
		{
			name:     "testnet bech32",
			seed:     onesSeed,
			currency: "TBTC",
			address:  "tb1q0k0cnlty2ly5gelm08u6g36jvhwgcghhsr7lt7",
			xpub:     "vpub5c3MBAm15bv6oYHVLb2EyzhLZzT3q2UppWQLERjzr9BBeBJbX5SBSryUWTSaFkqEqSi4v7D7spDaHynM6uN87Afqs3QwMebpu6ADTN6871K",
		},
		{
			name:     "bip32 vector 1 master",
			seed:     mustHexSeed("000102030405060708090a0b0c0d0e0f"),
			currency: "BTC",
			path:     "m",
			format:   "legacy",
			address:  "15mKKb2eos1hWa6tisdPwwDC1a5J1y9nma",
			xpub:     "xpub661MyMwAqRbcFtXgS5sYJABqqG9YLmC4Q1Rdap9gSE8NqtwybGhePY2gZ29ESFjqJoCu1Rupje8YtGqsefD265TMg7usUDFdp6W1EGMcet8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acct, err := Derive(tt.seed, tt.currency, tt.path, tt.format)
			if err != nil {
				t.Fatalf("Derive() error: %v", err)
			}
			if acct.Address != tt.address {
				t.Errorf("address = %s, want %s", acct.Address, tt.address)
			}
			if tt.xpub != "" && acct.XPub != tt.xpub {
				t.Errorf("xpub = %s, want %s", acct.XPub, tt.xpub)
			}
			if len(acct.PublicKey) != 33 {
				t.Errorf("public key length = %d, want 33", len(acct.PublicKey))
			}
		})
	}
}

func TestDerive_FromBIP39Seed(t *testing.T) {
	seed, err := SeedFromMnemonic("zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo zoo wrong", "")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	btc, err := Derive(seed, "BTC", "", "")
	if err != nil {
		t.Fatalf("Derive(BTC) error: %v", err)
	}
	if btc.Address != "bc1qk0a9hr7wjfxeenz9nwenw9flhq0tmsf6vsgnn2" {
		t.Errorf("BTC address = %s", btc.Address)
	}
	eth, err := Derive(seed, "ETH", "", "")
	if err != nil {
		t.Fatalf("Derive(ETH) error: %v", err)
	}
	if eth.Address != "0xfc2077CA7F403cBECA41B1B0F62D91B5EA631B5E" {
		t.Errorf("ETH address = %s", eth.Address)
	}
}

func TestDerive_LeadingZeroMasterKey(t *testing.T) {
	seed, err := SeedFromMnemonic("fruit wave dwarf banana earth journey tattoo true farm silk olive fence", "banana")
	if err != nil {
		t.Fatalf("SeedFromMnemonic() error: %v", err)
	}
	acct, err := Derive(seed, "BTC", "m/44'/0'/0'/0/0", "legacy")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	if acct.Address != "17rxURoF96VhmkcEGCj5LNQkmN9HVhWb7F" {
		t.Errorf("address = %s, want 17rxURoF96VhmkcEGCj5LNQkmN9HVhWb7F", acct.Address)
	}
}

func TestDerive_SameKeyAcrossFormats(t *testing.T) {
	var accounts []*Account
	for _, f := range []string{"legacy", "segwit", "bech32"} {
		acct, err := Derive(onesSeed, "BTC", "m/44'/0'/0'/0/0", f)
		if err != nil {
			t.Fatalf("Derive(%s) error: %v", f, err)
		}
		accounts = append(accounts, acct)
	}
	for i := 1; i < len(accounts); i++ {
		if !bytes.Equal(accounts[0].PublicKey, accounts[i].PublicKey) {
			t.Error("formats of one path must share the public key")
		}
		if accounts[0].Address == accounts[i].Address {
			t.Error("formats must yield different address strings")
		}
	}
}

func TestDerive_Errors(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		path     string
		format   string
		wantErr  error
	}{
		{"unknown currency", "XMR", "", "", ErrUnknownCurrency},
		{"unknown format", "BTC", "", "p2tr", ErrUnsupportedFormat},
		{"eth segwit", "ETH", "", "segwit", ErrUnsupportedFormat},
		{"doge bech32", "DOGE", "", "bech32", ErrUnsupportedFormat},
		{"bad path", "BTC", "m/x", "", ErrInvalidPath},
		{"unhardened overflow", "BTC", "m/44'/2147483648", "", ErrIndexTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Derive(onesSeed, tt.currency, tt.path, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Derive() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCurrencyDefaults(t *testing.T) {
	tests := []struct {
		symbol string
		format Format
		path   string
	}{
		{"BTC", FormatBech32, "m/84'/0'/0'/0/0"},
		{"TBTC", FormatBech32, "m/84'/1'/0'/0/0"},
		{"LTC", FormatBech32, "m/84'/2'/0'/0/0"},
		{"DOGE", FormatLegacy, "m/44'/3'/0'/0/0"},
		{"ETH", FormatLegacy, "m/44'/60'/0'/0/0"},
	}
	for _, tt := range tests {
		c, err := LookupCurrency(tt.symbol)
		if err != nil {
			t.Fatalf("LookupCurrency(%s) error: %v", tt.symbol, err)
		}
		if c.DefaultFormat != tt.format {
			t.Errorf("%s default format = %s, want %s", tt.symbol, c.DefaultFormat, tt.format)
		}
		if got := c.DefaultPath("").String(); got != tt.path {
			t.Errorf("%s default path = %s, want %s", tt.symbol, got, tt.path)
		}
	}

	btc, _ := LookupCurrency("btc")
	if got := btc.DefaultPath(FormatSegwit).String(); got != "m/49'/0'/0'/0/0" {
		t.Errorf("BTC segwit path = %s", got)
	}
	if got := btc.FormatForPath(mustParsePath(t, "m/44'/0'/0'/0/0")); got != FormatLegacy {
		t.Errorf("FormatForPath(44') = %s, want legacy", got)
	}
	if len(Currencies()) != 5 {
		t.Errorf("Currencies() = %v", Currencies())
	}
}

func mustHexSeed(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic(err)
	}
	return b
}

func TestAddress_UncompressedKey(t *testing.T) {
	acct, err := Derive(onesSeed, "BTC", "", "legacy")
	if err != nil {
		t.Fatalf("Derive() error: %v", err)
	}
	full, err := crypto.DecompressPubKey(acct.PublicKey)
	if err != nil {
		t.Fatalf("DecompressPubKey() error: %v", err)
	}
	btc, _ := LookupCurrency("BTC")
	for _, f := range btc.Formats() {
		a, err := btc.Address(acct.PublicKey, f)
		if err != nil {
			t.Fatalf("Address(compressed, %s) error: %v", f, err)
		}
		b, err := btc.Address(full, f)
		if err != nil {
			t.Fatalf("Address(uncompressed, %s) error: %v", f, err)
		}
		if a != b {
			t.Errorf("%s: compressed %s != uncompressed %s", f, a, b)
		}
	}
	if _, err := btc.Address([]byte{0x02, 0x01}, FormatBech32); !errors.Is(err, crypto.ErrInvalidKey) {
		t.Errorf("Address(garbage) error = %v, want ErrInvalidKey", err)
	}
}
