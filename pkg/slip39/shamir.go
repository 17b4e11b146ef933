package slip39

import (
	"crypto/hmac"
	"crypto/sha256"
	"fmt"
	"io"
)

const (
	secretIndex  = 255
	digestIndex  = 254
	digestLength = 4
)

func createDigest(random, secret []byte) []byte {
	mac := hmac.New(sha256.New, random)
	mac.Write(secret)
	return mac.Sum(nil)[:digestLength]
}

func readRandom(r io.Reader, n int) ([]byte, error) {
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return b, nil
}

// splitSecret shares secret as count points of which any threshold
// recover it. Points 254 and 255 carry the digest and the secret; the
// first threshold-2 points are random.
func splitSecret(threshold, count int, secret []byte, rnd io.Reader) ([]point, error) {
	if threshold < 1 || threshold > count || count > maxShareCount {
		return nil, fmt.Errorf("%w: threshold %d of %d", ErrInvalidParameter, threshold, count)
	}

	points := make([]point, 0, count)
	if threshold == 1 {
		for i := 0; i < count; i++ {
			points = append(points, point{x: byte(i), y: append([]byte(nil), secret...)})
		}
		return points, nil
	}

	randomLen := len(secret) - digestLength
	for i := 0; i < threshold-2; i++ {
		y, err := readRandom(rnd, len(secret))
		if err != nil {
			return nil, err
		}
		points = append(points, point{x: byte(i), y: y})
	}

	random, err := readRandom(rnd, randomLen)
	if err != nil {
		return nil, err
	}
	digest := append(createDigest(random, secret), random...)

	base := make([]point, 0, threshold)
	base = append(base, points...)
	base = append(base,
		point{x: digestIndex, y: digest},
		point{x: secretIndex, y: secret},
	)
	for i := threshold - 2; i < count; i++ {
		y, err := interpolate(base, byte(i))
		if err != nil {
			return nil, err
		}
		points = append(points, point{x: byte(i), y: y})
	}
	return points, nil
}

// recoverSecret interpolates the secret from exactly threshold points and
// verifies its digest.
func recoverSecret(threshold int, points []point) ([]byte, error) {
	if threshold == 1 {
		return append([]byte(nil), points[0].y...), nil
	}
	secret, err := interpolate(points, secretIndex)
	if err != nil {
		return nil, err
	}
	digestShare, err := interpolate(points, digestIndex)
	if err != nil {
		return nil, err
	}
	digest, random := digestShare[:digestLength], digestShare[digestLength:]
	if !hmac.Equal(digest, createDigest(random, secret)) {
		return nil, ErrInvalidDigest
	}
	return secret, nil
}
