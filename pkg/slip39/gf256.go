package slip39

import "fmt"

// GF(256) with the Rijndael polynomial x^8 + x^4 + x^3 + x + 1.
var (
	gfExp [255]byte
	gfLog [256]int
)

func init() {
	p := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(p)
		gfLog[p] = i
		// Multiply by the generator 3.
		p ^= p << 1
		if p&0x100 != 0 {
			p ^= 0x11b
		}
	}
}

// point is one evaluation of the sharing polynomial.
type point struct {
	x byte
	y []byte
}

func mod255(v int) int {
	v %= 255
	if v < 0 {
		v += 255
	}
	return v
}

// interpolate evaluates at x the unique polynomial through points. The
// x-coordinates must be distinct and all values of equal length.
func interpolate(points []point, x byte) ([]byte, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: no shares to interpolate", ErrWrongNumberOfMnemonics)
	}
	seen := make(map[byte]bool, len(points))
	n := len(points[0].y)
	for _, p := range points {
		if seen[p.x] {
			return nil, fmt.Errorf("%w: share indices must be unique", ErrInvalidSet)
		}
		seen[p.x] = true
		if len(p.y) != n {
			return nil, fmt.Errorf("%w: share values differ in length", ErrInvalidSet)
		}
	}
	for _, p := range points {
		if p.x == x {
			return append([]byte(nil), p.y...), nil
		}
	}

	logProd := 0
	for _, p := range points {
		logProd += gfLog[p.x^x]
	}

	out := make([]byte, n)
	for i, p := range points {
		basis := logProd - gfLog[p.x^x]
		for j, q := range points {
			if i != j {
				basis -= gfLog[p.x^q.x]
			}
		}
		basis = mod255(basis)
		for k, v := range p.y {
			if v != 0 {
				out[k] ^= gfExp[mod255(gfLog[v]+basis)]
			}
		}
	}
	return out, nil
}
