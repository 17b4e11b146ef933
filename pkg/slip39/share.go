package slip39

import (
	"bytes"
	"fmt"
	"strings"
)

// Share field widths and derived mnemonic sizes.
const (
	IDBits                = 15
	IterationExponentBits = 4
	maxShareCount         = 16

	// idExpWords is the number of words holding id, ext and exponent.
	idExpWords = 2
	// metadataWords covers the header and the checksum.
	metadataWords = idExpWords + 2 + ChecksumWords

	// MinStrengthBits is the smallest allowed master secret.
	MinStrengthBits = 128
	// MinMnemonicWords is the length of a mnemonic for a 128-bit secret.
	MinMnemonicWords = metadataWords + (MinStrengthBits+RadixBits-1)/RadixBits
)

// Share is one decoded SLIP-39 mnemonic. Thresholds and counts hold their
// real values (1..16); the mnemonic stores them minus one.
type Share struct {
	Identifier        uint16
	Extendable        bool
	IterationExponent uint8
	GroupIndex        uint8
	GroupThreshold    uint8
	GroupCount        uint8
	MemberIndex       uint8
	MemberThreshold   uint8
	Value             []byte
}

// commonParameters are the fields every share of one split must agree on.
type commonParameters struct {
	identifier        uint16
	extendable        bool
	iterationExponent uint8
	groupThreshold    uint8
	groupCount        uint8
	valueLen          int
}

func (s *Share) common() commonParameters {
	return commonParameters{
		identifier:        s.Identifier,
		extendable:        s.Extendable,
		iterationExponent: s.IterationExponent,
		groupThreshold:    s.GroupThreshold,
		groupCount:        s.GroupCount,
		valueLen:          len(s.Value),
	}
}

// Equal reports whether two shares carry identical fields and value.
func (s *Share) Equal(o *Share) bool {
	return s.common() == o.common() &&
		s.GroupIndex == o.GroupIndex &&
		s.MemberIndex == o.MemberIndex &&
		s.MemberThreshold == o.MemberThreshold &&
		bytes.Equal(s.Value, o.Value)
}

// validate checks field ranges before encoding.
func (s *Share) validate() error {
	switch {
	case s.Identifier >= 1<<IDBits:
		return fmt.Errorf("%w: identifier %d out of range", ErrInvalidShare, s.Identifier)
	case s.IterationExponent >= 1<<IterationExponentBits:
		return fmt.Errorf("%w: iteration exponent %d out of range", ErrInvalidShare, s.IterationExponent)
	case s.GroupThreshold < 1 || s.GroupThreshold > maxShareCount:
		return fmt.Errorf("%w: group threshold %d out of range", ErrInvalidShare, s.GroupThreshold)
	case s.GroupCount < s.GroupThreshold || s.GroupCount > maxShareCount:
		return fmt.Errorf("%w: group count %d out of range", ErrInvalidShare, s.GroupCount)
	case s.GroupIndex >= s.GroupCount:
		return fmt.Errorf("%w: group index %d out of range", ErrInvalidShare, s.GroupIndex)
	case s.MemberThreshold < 1 || s.MemberThreshold > maxShareCount:
		return fmt.Errorf("%w: member threshold %d out of range", ErrInvalidShare, s.MemberThreshold)
	case s.MemberIndex >= maxShareCount:
		return fmt.Errorf("%w: member index %d out of range", ErrInvalidShare, s.MemberIndex)
	case len(s.Value)*8 < MinStrengthBits:
		return fmt.Errorf("%w: share value of %d bytes", ErrSecretLength, len(s.Value))
	}
	return nil
}

// indices returns the 10-bit words of the share, checksum included.
func (s *Share) indices() ([]int, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}
	ext := 0
	if s.Extendable {
		ext = 1
	}
	id := int(s.Identifier)
	gc := int(s.GroupCount) - 1
	data := []int{
		id >> 5,
		(id&0x1f)<<5 | ext<<4 | int(s.IterationExponent),
		int(s.GroupIndex)<<6 | (int(s.GroupThreshold)-1)<<2 | gc>>2,
		(gc&0x3)<<8 | int(s.MemberIndex)<<4 | (int(s.MemberThreshold) - 1),
	}
	data = append(data, bytesToWords(s.Value)...)
	chk := rs1024CreateChecksum(s.Extendable, data)
	return append(data, chk[:]...), nil
}

// Words encodes the share as mnemonic words.
func (s *Share) Words() ([]string, error) {
	idx, err := s.indices()
	if err != nil {
		return nil, err
	}
	words := make([]string, len(idx))
	for i, v := range idx {
		words[i] = wordlist[v]
	}
	return words, nil
}

// Mnemonic encodes the share as a space-separated mnemonic sentence.
func (s *Share) Mnemonic() (string, error) {
	words, err := s.Words()
	if err != nil {
		return "", err
	}
	return strings.Join(words, " "), nil
}

// DecodeMnemonic parses and checksum-verifies a mnemonic sentence.
func DecodeMnemonic(mnemonic string) (*Share, error) {
	return DecodeWords(strings.Fields(mnemonic))
}

// DecodeWords parses and checksum-verifies mnemonic words.
func DecodeWords(words []string) (*Share, error) {
	if len(words) < MinMnemonicWords {
		return nil, fmt.Errorf("%w: %d words, need at least %d", ErrInvalidLength, len(words), MinMnemonicWords)
	}
	data, err := wordsToIndices(words)
	if err != nil {
		return nil, err
	}

	valueWords := len(data) - metadataWords
	padding := (RadixBits * valueWords) % 16
	if padding > 8 {
		return nil, fmt.Errorf("%w: %d words", ErrInvalidLength, len(words))
	}

	ext := (data[1]>>4)&1 == 1
	if !rs1024VerifyChecksum(ext, data) {
		return nil, ErrInvalidChecksum
	}

	gc := (data[2]&0x3)<<2 | data[3]>>8
	s := &Share{
		Identifier:        uint16(data[0]<<5 | data[1]>>5),
		Extendable:        ext,
		IterationExponent: uint8(data[1] & 0xf),
		GroupIndex:        uint8(data[2] >> 6),
		GroupThreshold:    uint8((data[2]>>2)&0xf) + 1,
		GroupCount:        uint8(gc) + 1,
		MemberIndex:       uint8((data[3] >> 4) & 0xf),
		MemberThreshold:   uint8(data[3]&0xf) + 1,
	}
	if s.GroupCount < s.GroupThreshold {
		return nil, fmt.Errorf("%w: group threshold %d exceeds group count %d",
			ErrInvalidShare, s.GroupThreshold, s.GroupCount)
	}
	if s.GroupIndex >= s.GroupCount {
		return nil, fmt.Errorf("%w: group index %d of %d groups",
			ErrInvalidShare, s.GroupIndex, s.GroupCount)
	}

	valueLen := (RadixBits*valueWords - padding) / 8
	s.Value, err = wordsToBytes(data[idExpWords+2:len(data)-ChecksumWords], valueLen)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// bytesToWords packs b, big-endian and left-padded with zero bits, into
// 10-bit words.
func bytesToWords(b []byte) []int {
	n := (len(b)*8 + RadixBits - 1) / RadixBits
	words := make([]int, n)
	acc, accBits, j := uint32(0), 0, n-1
	for i := len(b) - 1; i >= 0; i-- {
		acc |= uint32(b[i]) << uint(accBits)
		accBits += 8
		for accBits >= RadixBits {
			words[j] = int(acc & (Radix - 1))
			j--
			acc >>= RadixBits
			accBits -= RadixBits
		}
	}
	if accBits > 0 {
		words[j] = int(acc)
	}
	return words
}

// wordsToBytes unpacks 10-bit words into length bytes. The leading padding
// bits must be zero.
func wordsToBytes(words []int, length int) ([]byte, error) {
	out := make([]byte, length)
	acc, accBits, k := uint32(0), 0, length-1
	for i := len(words) - 1; i >= 0; i-- {
		acc |= uint32(words[i]) << uint(accBits)
		accBits += RadixBits
		for accBits >= 8 && k >= 0 {
			out[k] = byte(acc)
			k--
			acc >>= 8
			accBits -= 8
		}
	}
	if acc != 0 {
		return nil, ErrInvalidPadding
	}
	return out, nil
}
