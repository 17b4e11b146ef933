// derive_key.go prints the public key and addresses for a hex-encoded
// secp256k1 private key file.
// Usage: go run scripts/derive_key.go <keyfile> [SYMBOL ...]
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/Klingon-tech/klingnet-recovery/internal/wallet"
	"github.com/Klingon-tech/klingnet-recovery/pkg/crypto"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: derive_key <keyfile> [SYMBOL ...]")
		os.Exit(1)
	}
	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	keyBytes, err := hex.DecodeString(strings.TrimSpace(string(data)))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	pub, err := crypto.PubKeyFromPrivate(keyBytes)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Printf("pubkey=%s\n", hex.EncodeToString(pub))

	symbols := os.Args[2:]
	if len(symbols) == 0 {
		symbols = []string{"BTC", "ETH"}
	}
	for _, sym := range symbols {
		c, err := wallet.LookupCurrency(sym)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		for _, f := range c.Formats() {
			addr, err := c.Address(pub, f)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("%s.%s=%s\n", strings.ToLower(c.Symbol), f, addr)
		}
	}
}
