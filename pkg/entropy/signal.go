package entropy

import (
	"fmt"
	"math"
)

// SignalResult describes the averaged folded spectrum of the data.
type SignalResult struct {
	DB         float64   // 10*log10(peak energy / mean energy)
	Magnitudes []float64 // averaged folded magnitudes, height/2+1 buckets
	Peak       int       // bucket holding the peak energy
	Frames     int
}

// Samples reads data as an MSB-first bit stream of width-bit samples and
// maps each to [-1, 1]. Trailing bits short of a sample are dropped.
func Samples(data []byte, width int) ([]float64, error) {
	if width < 1 || width > 8 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, width)
	}
	n := len(data) * 8 / width
	maxVal := float64(int(1)<<uint(width) - 1)
	out := make([]float64, n)
	bit := 0
	for i := range out {
		v := 0
		for j := 0; j < width; j++ {
			b := data[bit/8] >> uint(7-bit%8) & 1
			v = v<<1 | int(b)
			bit++
		}
		out[i] = 2*float64(v)/maxVal - 1
	}
	return out, nil
}

// Signal estimates spectral flatness. The samples are cut into frames of
// height samples, each frame is transformed and its folded magnitudes are
// averaged across frames. A flat spectrum gives 0 dB; a pure tone gives
// 10*log10(height/2+1). The scale is this package's own and only orders
// inputs; it is not comparable with other spectral scores.
func Signal(data []byte, width, height int) (SignalResult, error) {
	if len(data) == 0 {
		return SignalResult{}, ErrEmptyInput
	}
	if height < 2 || !IsPowerOfTwo(height) {
		return SignalResult{}, fmt.Errorf("%w: got %d", ErrInvalidHeight, height)
	}
	samples, err := Samples(data, width)
	if err != nil {
		return SignalResult{}, err
	}
	frames := len(samples) / height
	if frames == 0 {
		return SignalResult{}, fmt.Errorf("%w: %d samples, frame %d", ErrShortSignal, len(samples), height)
	}

	tr := newTransform(height)
	acc := make([]float64, height/2+1)
	for f := 0; f < frames; f++ {
		spectrum := tr.forward(Real(samples[f*height : (f+1)*height]))
		for i, m := range FoldReal(spectrum) {
			acc[i] += m
		}
	}

	res := SignalResult{Magnitudes: acc, Frames: frames}
	var sum, peak float64
	for i := range acc {
		acc[i] /= float64(frames)
		e := acc[i] * acc[i]
		sum += e
		if e > peak {
			peak = e
			res.Peak = i
		}
	}
	// Samples are never 0 since 2^width-1 is odd, so every frame has energy.
	mean := sum / float64(len(acc))
	res.DB = 10 * math.Log10(peak/mean)
	return res, nil
}
