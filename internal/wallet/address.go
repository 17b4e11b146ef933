package wallet

import (
	"fmt"

	"github.com/Klingon-tech/klingnet-recovery/pkg/crypto"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/ethereum/go-ethereum/common"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// Address encodes a public key in format f. Compressed and uncompressed
// keys give the same address.
func (c *Currency) Address(pub []byte, f Format) (string, error) {
	if !c.Supports(f) {
		return "", fmt.Errorf("%w: %s does not support %s", ErrUnsupportedFormat, c.Symbol, f)
	}
	if c.params == nil {
		return ethereumAddress(pub)
	}

	compressed, err := crypto.CompressPubKey(pub)
	if err != nil {
		return "", err
	}
	hash := btcutil.Hash160(compressed)
	switch f {
	case FormatLegacy:
		addr, err := btcutil.NewAddressPubKeyHash(hash, c.params)
		if err != nil {
			return "", fmt.Errorf("p2pkh address: %w", err)
		}
		return addr.EncodeAddress(), nil
	case FormatSegwit:
		// P2SH redeem script: OP_0 <20-byte key hash>.
		script := append([]byte{0x00, 0x14}, hash...)
		addr, err := btcutil.NewAddressScriptHash(script, c.params)
		if err != nil {
			return "", fmt.Errorf("p2sh-p2wpkh address: %w", err)
		}
		return addr.EncodeAddress(), nil
	case FormatBech32:
		addr, err := btcutil.NewAddressWitnessPubKeyHash(hash, c.params)
		if err != nil {
			return "", fmt.Errorf("p2wpkh address: %w", err)
		}
		return addr.EncodeAddress(), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
}

// ethereumAddress is the EIP-55 checksummed hex of the last 20 bytes of
// Keccak-256 over the 64-byte uncompressed key.
func ethereumAddress(pub []byte) (string, error) {
	full, err := crypto.DecompressPubKey(pub)
	if err != nil {
		return "", err
	}
	h := ethcrypto.Keccak256(full[1:])
	return common.BytesToAddress(h[12:]).Hex(), nil
}
