// Package slug generates short public reference codes.
// This is part of the platform layer and contains no business logic.
package slug

import (
	"crypto/rand"
	"fmt"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// Length is the fixed length of generated codes.
const Length = 8

// maxUnbiasedByte is the largest multiple of len(alphabet) that fits in a
// byte; values at or above it are discarded to keep the draw uniform.
const maxUnbiasedByte = 256 - 256%len(alphabet)

// New returns a random fixed-length code over [A-Za-z0-9].
// Uniqueness is enforced by the caller (insert + retry on collision).
func New() (string, error) {
	out := make([]byte, 0, Length)
	buf := make([]byte, Length)
	for len(out) < Length {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("read random bytes: %w", err)
		}
		for _, b := range buf {
			if int(b) >= maxUnbiasedByte {
				continue
			}
			out = append(out, alphabet[int(b)%len(alphabet)])
			if len(out) == Length {
				break
			}
		}
	}
	return string(out), nil
}
