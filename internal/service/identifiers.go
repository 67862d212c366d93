package service

import (
	"crypto/rand"
	"math/big"
)

const (
	referenceLength    = 10
	ticketNumberLength = 12
	// maxIdentifierAttempts bounds regeneration after unique key collisions.
	maxIdentifierAttempts = 5
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeGenerator returns a random code of n characters.
type CodeGenerator func(n int) (string, error)

// RandomCode draws n characters uniformly from [A-Z0-9] using crypto/rand.
func RandomCode(n int) (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	b := make([]byte, n)
	for i := range b {
		k, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = codeAlphabet[k.Int64()]
	}
	return string(b), nil
}
