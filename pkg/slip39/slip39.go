// Package slip39 implements SLIP-39 Shamir secret sharing of a master
// secret: splitting into grouped mnemonics and recovering from them.
package slip39

import (
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
	"strings"
)

// DefaultIterationExponent is the exponent used when none is configured.
const DefaultIterationExponent = 1

// GroupSpec describes one group: MemberThreshold of MemberCount member
// shares reconstruct the group share.
type GroupSpec struct {
	Name            string
	MemberThreshold int
	MemberCount     int
}

// SplitOptions tune Split. The zero value uses iteration exponent 0, no
// passphrase and crypto/rand.
type SplitOptions struct {
	Passphrase        []byte
	IterationExponent uint8
	Extendable        bool
	// Random supplies all randomness. Tests pass a deterministic reader.
	Random io.Reader
}

// DefaultSplitOptions returns options with DefaultIterationExponent.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{IterationExponent: DefaultIterationExponent}
}

// ValidatePassphrase checks that p holds only printable ASCII.
func ValidatePassphrase(p []byte) error {
	for _, c := range p {
		if c < 32 || c > 126 {
			return fmt.Errorf("%w: passphrase must be printable ASCII", ErrInvalidParameter)
		}
	}
	return nil
}

func validateSplit(groupThreshold int, groups []GroupSpec, secret []byte, opts SplitOptions) error {
	if len(secret)*8 < MinStrengthBits || len(secret)%2 != 0 {
		return fmt.Errorf("%w: %d bytes, need an even length of at least %d",
			ErrSecretLength, len(secret), MinStrengthBits/8)
	}
	if len(groups) == 0 || len(groups) > maxShareCount {
		return fmt.Errorf("%w: %d groups", ErrInvalidParameter, len(groups))
	}
	if groupThreshold < 1 || groupThreshold > len(groups) {
		return fmt.Errorf("%w: group threshold %d of %d groups", ErrInvalidParameter, groupThreshold, len(groups))
	}
	for i, g := range groups {
		switch {
		case g.MemberThreshold < 1 || g.MemberThreshold > g.MemberCount || g.MemberCount > maxShareCount:
			return fmt.Errorf("%w: group %d threshold %d of %d",
				ErrInvalidParameter, i, g.MemberThreshold, g.MemberCount)
		case g.MemberThreshold == 1 && g.MemberCount > 1:
			return fmt.Errorf("%w: group %d shares 1-of-%d, use 1-of-1 instead",
				ErrInvalidParameter, i, g.MemberCount)
		}
	}
	if opts.IterationExponent >= 1<<IterationExponentBits {
		return fmt.Errorf("%w: iteration exponent %d", ErrInvalidParameter, opts.IterationExponent)
	}
	return ValidatePassphrase(opts.Passphrase)
}

// Split encrypts secret with the passphrase and shares it across groups.
// The result holds one slice of member shares per group, in group order.
func Split(groupThreshold int, groups []GroupSpec, secret []byte, opts SplitOptions) ([][]*Share, error) {
	if err := validateSplit(groupThreshold, groups, secret, opts); err != nil {
		return nil, err
	}
	rnd := opts.Random
	if rnd == nil {
		rnd = rand.Reader
	}

	idBytes, err := readRandom(rnd, 2)
	if err != nil {
		return nil, err
	}
	identifier := binary.BigEndian.Uint16(idBytes) & (1<<IDBits - 1)

	ems := encrypt(secret, opts.Passphrase, opts.IterationExponent, identifier, opts.Extendable)

	groupPoints, err := splitSecret(groupThreshold, len(groups), ems, rnd)
	if err != nil {
		return nil, err
	}

	out := make([][]*Share, len(groups))
	for gi, g := range groups {
		memberPoints, err := splitSecret(g.MemberThreshold, g.MemberCount, groupPoints[gi].y, rnd)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", gi, err)
		}
		for _, mp := range memberPoints {
			out[gi] = append(out[gi], &Share{
				Identifier:        identifier,
				Extendable:        opts.Extendable,
				IterationExponent: opts.IterationExponent,
				GroupIndex:        groupPoints[gi].x,
				GroupThreshold:    uint8(groupThreshold),
				GroupCount:        uint8(len(groups)),
				MemberIndex:       mp.x,
				MemberThreshold:   uint8(g.MemberThreshold),
				Value:             mp.y,
			})
		}
	}
	return out, nil
}

// SplitMnemonics is Split with the shares encoded as mnemonic sentences.
func SplitMnemonics(groupThreshold int, groups []GroupSpec, secret []byte, opts SplitOptions) ([][]string, error) {
	shares, err := Split(groupThreshold, groups, secret, opts)
	if err != nil {
		return nil, err
	}
	out := make([][]string, len(shares))
	for gi, members := range shares {
		for _, s := range members {
			m, err := s.Mnemonic()
			if err != nil {
				return nil, err
			}
			out[gi] = append(out[gi], m)
		}
	}
	return out, nil
}

// Combine recovers the master secret from decoded shares. Identical
// duplicates are ignored and surplus shares beyond each threshold are
// accepted; groups short of their member threshold do not count.
func Combine(shares []*Share, passphrase []byte) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("%w: no mnemonics given", ErrWrongNumberOfMnemonics)
	}
	first := shares[0]
	params := first.common()

	groups := make(map[uint8]map[uint8]*Share)
	for _, s := range shares {
		if s.common() != params {
			return nil, fmt.Errorf("%w: mnemonics belong to different backups", ErrInvalidSet)
		}
		members, ok := groups[s.GroupIndex]
		if !ok {
			members = make(map[uint8]*Share)
			groups[s.GroupIndex] = members
		}
		if prev, dup := members[s.MemberIndex]; dup {
			if !prev.Equal(s) {
				return nil, fmt.Errorf("%w: conflicting shares for group %d member %d",
					ErrInvalidSet, s.GroupIndex, s.MemberIndex)
			}
			continue
		}
		for _, m := range members {
			if m.MemberThreshold != s.MemberThreshold {
				return nil, fmt.Errorf("%w: group %d member thresholds disagree", ErrInvalidSet, s.GroupIndex)
			}
			break
		}
		members[s.MemberIndex] = s
	}

	groupIndices := make([]int, 0, len(groups))
	for gi := range groups {
		groupIndices = append(groupIndices, int(gi))
	}
	sort.Ints(groupIndices)

	var groupPoints []point
	for _, gi := range groupIndices {
		if len(groupPoints) == int(params.groupThreshold) {
			break
		}
		members := groups[uint8(gi)]
		var threshold int
		for _, m := range members {
			threshold = int(m.MemberThreshold)
			break
		}
		if len(members) < threshold {
			continue
		}
		memberIndices := make([]int, 0, len(members))
		for mi := range members {
			memberIndices = append(memberIndices, int(mi))
		}
		sort.Ints(memberIndices)

		points := make([]point, 0, threshold)
		for _, mi := range memberIndices[:threshold] {
			points = append(points, point{x: uint8(mi), y: members[uint8(mi)].Value})
		}
		groupSecret, err := recoverSecret(threshold, points)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", gi, err)
		}
		groupPoints = append(groupPoints, point{x: uint8(gi), y: groupSecret})
	}

	if len(groupPoints) < int(params.groupThreshold) {
		return nil, fmt.Errorf("%w: %d complete groups, need %d",
			ErrWrongNumberOfMnemonics, len(groupPoints), params.groupThreshold)
	}

	ems, err := recoverSecret(int(params.groupThreshold), groupPoints)
	if err != nil {
		return nil, err
	}
	return decrypt(ems, passphrase, params.iterationExponent, params.identifier, params.extendable), nil
}

// CombineMnemonics decodes each mnemonic and recovers the master secret.
// Blank entries are skipped.
func CombineMnemonics(mnemonics []string, passphrase []byte) ([]byte, error) {
	shares := make([]*Share, 0, len(mnemonics))
	for i, m := range mnemonics {
		if strings.TrimSpace(m) == "" {
			continue
		}
		s, err := DecodeMnemonic(m)
		if err != nil {
			return nil, fmt.Errorf("mnemonic %d: %w", i+1, err)
		}
		shares = append(shares, s)
	}
	return Combine(shares, passphrase)
}
