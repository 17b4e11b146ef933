package slip39

import (
	"crypto/sha256"
	"encoding/binary"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// baseIterationCount is the total PBKDF2 work at exponent zero, spread
	// across all Feistel rounds.
	baseIterationCount = 10000
	roundCount         = 4
)

// cipherSalt returns the salt prefix for the round function. Extendable
// backups drop the identifier so that it can change between splits.
func cipherSalt(identifier uint16, extendable bool) []byte {
	if extendable {
		return nil
	}
	salt := make([]byte, len(customizationNonExtendable)+2)
	copy(salt, customizationNonExtendable)
	binary.BigEndian.PutUint16(salt[len(customizationNonExtendable):], identifier)
	return salt
}

func roundFunction(i int, passphrase []byte, exponent uint8, salt, r []byte) []byte {
	password := make([]byte, 0, 1+len(passphrase))
	password = append(password, byte(i))
	password = append(password, passphrase...)

	s := make([]byte, 0, len(salt)+len(r))
	s = append(s, salt...)
	s = append(s, r...)

	iterations := (baseIterationCount << exponent) / roundCount
	return pbkdf2.Key(password, s, iterations, len(r), sha256.New)
}

func feistel(in, passphrase []byte, exponent uint8, identifier uint16, extendable, reverse bool) []byte {
	half := len(in) / 2
	l := append([]byte(nil), in[:half]...)
	r := append([]byte(nil), in[half:]...)
	salt := cipherSalt(identifier, extendable)
	for n := 0; n < roundCount; n++ {
		i := n
		if reverse {
			i = roundCount - 1 - n
		}
		f := roundFunction(i, passphrase, exponent, salt, r)
		for k := range l {
			l[k] ^= f[k]
		}
		l, r = r, l
	}
	return append(r, l...)
}

// encrypt turns a master secret into the encrypted master secret that is
// actually split.
func encrypt(masterSecret, passphrase []byte, exponent uint8, identifier uint16, extendable bool) []byte {
	return feistel(masterSecret, passphrase, exponent, identifier, extendable, false)
}

// decrypt inverts encrypt. Any passphrase decrypts to some secret.
func decrypt(ems, passphrase []byte, exponent uint8, identifier uint16, extendable bool) []byte {
	return feistel(ems, passphrase, exponent, identifier, extendable, true)
}
