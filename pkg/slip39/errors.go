package slip39

import (
	"errors"
	"fmt"
)

// Decoding errors. A share that fails any of these is never constructed.
var (
	ErrInvalidWord     = errors.New("invalid mnemonic word")
	ErrInvalidLength   = errors.New("invalid mnemonic length")
	ErrInvalidPadding  = errors.New("invalid mnemonic padding")
	ErrInvalidChecksum = errors.New("invalid mnemonic checksum")
	ErrInvalidShare    = errors.New("invalid share parameters")
)

// Reconstruction errors.
var (
	ErrWrongNumberOfMnemonics = errors.New("wrong number of mnemonics")
	ErrInvalidSet             = errors.New("invalid set of mnemonics")

	// ErrInvalidDigest wraps ErrInvalidSet: the shares interpolated to a
	// secret whose digest does not match.
	ErrInvalidDigest = fmt.Errorf("%w: invalid digest of the shared secret", ErrInvalidSet)
)

// Splitting errors.
var (
	ErrInvalidParameter = errors.New("invalid sharing parameter")
	ErrSecretLength     = errors.New("invalid master secret length")
)
