// Package entropy measures the statistical quality of secret material with
// a windowed Shannon estimator and a spectral (DFT) estimator.
package entropy

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
)

// DFT computes the unnormalized discrete Fourier transform
// X[k] = sum x[n] * exp(-2*pi*i*k*n/N) directly, in O(N^2).
func DFT(x []complex128) []complex128 {
	n := len(x)
	out := make([]complex128, n)
	for k := 0; k < n; k++ {
		var sum complex128
		for j, v := range x {
			angle := -2 * math.Pi * float64(k*j%n) / float64(n)
			sum += v * cmplx.Rect(1, angle)
		}
		out[k] = sum
	}
	return out
}

// IDFT inverts DFT, including the 1/N scaling.
func IDFT(X []complex128) []complex128 {
	n := len(X)
	out := make([]complex128, n)
	if n == 0 {
		return out
	}
	for j := 0; j < n; j++ {
		var sum complex128
		for k, v := range X {
			angle := 2 * math.Pi * float64(k*j%n) / float64(n)
			sum += v * cmplx.Rect(1, angle)
		}
		out[j] = sum / complex(float64(n), 0)
	}
	return out
}

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FFT computes the same transform as DFT for power-of-two lengths.
func FFT(x []complex128) ([]complex128, error) {
	if !IsPowerOfTwo(len(x)) {
		return nil, fmt.Errorf("%w: length %d", ErrNotPowerOfTwo, len(x))
	}
	return newTransform(len(x)).forward(x), nil
}

// transform wraps a gonum plan so that it can be reused across frames.
type transform struct {
	plan *fourier.CmplxFFT
}

func newTransform(n int) *transform {
	return &transform{plan: fourier.NewCmplxFFT(n)}
}

func (t *transform) forward(x []complex128) []complex128 {
	return t.plan.Coefficients(nil, x)
}

// Magnitudes returns |X[k]| for every bucket.
func Magnitudes(X []complex128) []float64 {
	out := make([]float64, len(X))
	for i, v := range X {
		out[i] = cmplx.Abs(v)
	}
	return out
}

// FoldReal folds the spectrum of a real signal onto N/2+1 buckets: the DC
// magnitude, |X[k]| + |X[N-k]| for 0 < k < N/2, then the Nyquist magnitude
// for even N.
func FoldReal(X []complex128) []float64 {
	n := len(X)
	if n == 0 {
		return nil
	}
	out := make([]float64, 0, n/2+1)
	out = append(out, cmplx.Abs(X[0]))
	for k := 1; k < (n+1)/2; k++ {
		out = append(out, cmplx.Abs(X[k])+cmplx.Abs(X[n-k]))
	}
	if n%2 == 0 {
		out = append(out, cmplx.Abs(X[n/2]))
	}
	return out
}

// Real lifts a real sequence into the complex plane.
func Real(x []float64) []complex128 {
	out := make([]complex128, len(x))
	for i, v := range x {
		out[i] = complex(v, 0)
	}
	return out
}
