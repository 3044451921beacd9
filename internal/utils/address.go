package utils

import "github.com/mr-tron/base58"

// IsValidSolanaAddress is a format check only: base58 text decoding to a 32 byte key
func IsValidSolanaAddress(address string) bool {
	if address == "" {
		return false
	}
	decoded, err := base58.Decode(address)
	if err != nil {
		return false
	}
	return len(decoded) == 32
}
