package internal

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
)

// MinRefreshValueBytes keeps refresh values at or above 128 bits of entropy.
const MinRefreshValueBytes = 16

// NewRefreshValue returns a hex-encoded opaque refresh value drawn from
// crypto/rand. n is the number of random bytes; the returned string is 2n
// characters long.
func NewRefreshValue(n int) (string, error) {
	if n < MinRefreshValueBytes {
		return "", errors.New("refresh value must be at least 16 bytes")
	}

	raw := make([]byte, n)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}

	return hex.EncodeToString(raw), nil
}

// ConstantTimeEquals compares two strings without leaking position
// information through timing.
func ConstantTimeEquals(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
