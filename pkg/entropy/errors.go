package entropy

import "errors"

var (
	ErrEmptyInput    = errors.New("empty input")
	ErrInvalidStride = errors.New("stride must be at least 2")
	ErrNoWindows     = errors.New("input shorter than one window")
	ErrNotPowerOfTwo = errors.New("length is not a power of two")
	ErrInvalidWidth  = errors.New("sample width must be 1..8 bits")
	ErrInvalidHeight = errors.New("frame height must be a power of two of at least 2")
	ErrShortSignal   = errors.New("signal shorter than one frame")
)
