package utils

import (
	"crypto/rand"
	"math/big"
)

const (
	mockAddressAlphabet = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"
	mockAddressLength   = 44
)

// GenerateMockAddress returns 44 characters drawn uniformly from the base58 alphabet.
// The result looks like a Solana address but is not guaranteed to decode to 32 bytes.
func GenerateMockAddress() string {
	alphabetSize := big.NewInt(int64(len(mockAddressAlphabet)))
	result := make([]byte, mockAddressLength)
	for i := range result {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			// crypto/rand does not fail on supported platforms
			panic(err)
		}
		result[i] = mockAddressAlphabet[n.Int64()]
	}
	return string(result)
}
