package wallet

import (
	"fmt"
	"strconv"
	"strings"
)

// HardenedOffset is added to an index to request hardened derivation. It
// equals bip32.FirstHardenedChild.
const HardenedOffset = 0x80000000

// BIP-43 purpose fields per address format.
const (
	PurposeBIP44 = 44
	PurposeBIP49 = 49
	PurposeBIP84 = 84
)

// Path is a BIP-32 derivation path. Hardened segments carry HardenedOffset.
type Path []uint32

// ParsePath parses "m/44'/0'/0'/0/0". A trailing ', h or H marks a hardened
// segment. A plain index at or above the hardened boundary is rejected
// with ErrIndexTooLarge rather than silently hardened. Public "M/..." paths
// are refused since derivation always starts from the private master.
func ParsePath(s string) (Path, error) {
	s = strings.TrimSpace(s)
	segs := strings.Split(s, "/")
	if segs[0] != "m" {
		return nil, fmt.Errorf("%w: %q must start with m", ErrInvalidPath, s)
	}
	path := make(Path, 0, len(segs)-1)
	for _, seg := range segs[1:] {
		hardened := false
		if n := len(seg); n > 0 && (seg[n-1] == '\'' || seg[n-1] == 'h' || seg[n-1] == 'H') {
			hardened = true
			seg = seg[:n-1]
		}
		if seg == "" {
			return nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidPath, s)
		}
		idx, err := strconv.ParseUint(seg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: segment %q: %v", ErrInvalidPath, seg, err)
		}
		if idx >= HardenedOffset {
			return nil, fmt.Errorf("%w: %d in %q", ErrIndexTooLarge, idx, s)
		}
		if hardened {
			idx += HardenedOffset
		}
		path = append(path, uint32(idx))
	}
	return path, nil
}

// String formats the path with ' marking hardened segments.
func (p Path) String() string {
	var b strings.Builder
	b.WriteString("m")
	for _, idx := range p {
		b.WriteByte('/')
		if idx >= HardenedOffset {
			b.WriteString(strconv.FormatUint(uint64(idx-HardenedOffset), 10))
			b.WriteByte('\'')
		} else {
			b.WriteString(strconv.FormatUint(uint64(idx), 10))
		}
	}
	return b.String()
}

// Purpose returns the unhardened first segment, or false for a path
// without a hardened purpose.
func (p Path) Purpose() (uint32, bool) {
	if len(p) == 0 || p[0] < HardenedOffset {
		return 0, false
	}
	return p[0] - HardenedOffset, true
}

// WithLast returns a copy of p whose last segment is index, keeping that
// segment's hardened flag.
func (p Path) WithLast(index uint32) (Path, error) {
	if len(p) == 0 {
		return nil, fmt.Errorf("%w: master path has no segment to replace", ErrInvalidPath)
	}
	if index >= HardenedOffset {
		return nil, fmt.Errorf("%w: %d", ErrIndexTooLarge, index)
	}
	out := append(Path(nil), p...)
	if out[len(out)-1] >= HardenedOffset {
		index += HardenedOffset
	}
	out[len(out)-1] = index
	return out, nil
}
