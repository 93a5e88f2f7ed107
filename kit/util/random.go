package util

import (
	"crypto/rand"

	"github.com/jxskiss/base62"
	"github.com/pkg/errors"
)

// GetRandomAlphanumeric returns a random string of [0-9A-Za-z] with the given length.
func GetRandomAlphanumeric(length int) (string, error) {
	if length <= 0 {
		return "", errors.New("length must be positive")
	}
	// n random bytes encode to more than n base62 chars
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes failed")
	}
	encoded := base62.Encode(buf)
	for len(encoded) < length {
		encoded = append(encoded, '0')
	}
	return string(encoded[:length]), nil
}
