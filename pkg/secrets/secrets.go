// Package secrets generates the random secret key written into the
// rendered settings file.
package secrets

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// KeyLength is the length of a generated secret key.
const KeyLength = 64

// keyAlphabet deliberately avoids quote and backslash characters so the key
// can be embedded into the settings file without escaping.
const keyAlphabet = "abcdefghijklmnopqrstuvwxyz" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"0123456789" +
	"!@#$%^&*()-_=+"

// GenerateKey returns a fresh random secret key of KeyLength characters.
func GenerateKey() (string, error) {
	return generate(KeyLength)
}

func generate(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("secret key length must be positive, got %d", length)
	}
	max := big.NewInt(int64(len(keyAlphabet)))
	key := make([]byte, length)
	for i := range key {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		key[i] = keyAlphabet[n.Int64()]
	}
	return string(key), nil
}
