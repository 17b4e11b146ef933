package entropy

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// MinDecibels is the score of data with no measurable shortfall from ideal.
const MinDecibels = -40.0

// ShannonOptions control the window layout. Stride 0 analyzes the whole
// buffer as a single window.
type ShannonOptions struct {
	Stride  int
	Overlap bool
}

// DefaultShannonOptions analyzes the whole buffer.
func DefaultShannonOptions() ShannonOptions {
	return ShannonOptions{Overlap: true}
}

// ShannonResult reports how far the mean per-window entropy falls short of
// the ideal for the window size.
type ShannonResult struct {
	DB      float64 // 10*log10(Ideal-Bits), floored at MinDecibels
	Bits    float64 // mean entropy per byte across windows
	Ideal   float64 // log2(min(window, 256))
	Windows int
}

// Shannon measures byte entropy over windows of opts.Stride bytes. With
// Overlap the window slides one byte at a time, otherwise it advances a
// full stride and a trailing partial window is ignored. Windows of distinct
// bytes score MinDecibels; repeated or biased data scores higher, up to
// 10*log10(Ideal) for a constant buffer.
func Shannon(data []byte, opts ShannonOptions) (ShannonResult, error) {
	if len(data) == 0 {
		return ShannonResult{}, ErrEmptyInput
	}
	stride := opts.Stride
	if stride == 0 {
		stride = len(data)
	}
	if stride < 2 {
		return ShannonResult{}, fmt.Errorf("%w: got %d", ErrInvalidStride, stride)
	}
	if stride > len(data) {
		return ShannonResult{}, fmt.Errorf("%w: %d bytes, window %d", ErrNoWindows, len(data), stride)
	}
	step := stride
	if opts.Overlap {
		step = 1
	}

	var counts [256]int
	probs := make([]float64, 0, 256)
	var total float64
	windows := 0
	for start := 0; start+stride <= len(data); start += step {
		for i := range counts {
			counts[i] = 0
		}
		for _, b := range data[start : start+stride] {
			counts[b]++
		}
		probs = probs[:0]
		for _, c := range counts {
			if c > 0 {
				probs = append(probs, float64(c)/float64(stride))
			}
		}
		total += stat.Entropy(probs) / math.Ln2
		windows++
	}

	res := ShannonResult{
		Bits:    total / float64(windows),
		Ideal:   math.Log2(math.Min(float64(stride), 256)),
		Windows: windows,
	}
	res.DB = toDecibels(res.Ideal - res.Bits)
	return res, nil
}

// toDecibels converts an entropy shortfall in bits, flooring at MinDecibels.
func toDecibels(shortfall float64) float64 {
	if shortfall <= 0 {
		return MinDecibels
	}
	return math.Max(10*math.Log10(shortfall), MinDecibels)
}
