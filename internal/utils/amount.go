package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("invalid amount")

// lamportsPerSol is 10^9
var lamportsPerSol = decimal.New(1, 9)

// ParseAmount parses a non-negative decimal string such as "0.01" or "20"
func ParseAmount(value string) (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if amount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, value)
	}
	return amount, nil
}

// IsValidAmount reports whether value parses as a non-negative decimal
func IsValidAmount(value string) bool {
	_, err := ParseAmount(value)
	return err == nil
}

// SolToLamports converts a SOL amount to lamports, dropping sub-lamport precision
func SolToLamports(value string) (uint64, error) {
	amount, err := ParseAmount(value)
	if err != nil {
		return 0, err
	}
	lamports := amount.Mul(lamportsPerSol).Truncate(0)
	if !lamports.IsPositive() {
		return 0, fmt.Errorf("%w: %q is below one lamport", ErrInvalidAmount, value)
	}
	if lamports.BigInt().BitLen() > 64 {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidAmount, value)
	}
	return lamports.BigInt().Uint64(), nil
}
