package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// accountNumberDigits is the fixed length of external account numbers.
const accountNumberDigits = 10

// GenerateAccountNumber returns a random 10-digit numeric string with a
// non-zero leading digit. Uniqueness is enforced by the store; callers retry
// on a duplicate-key rejection.
func GenerateAccountNumber() (string, error) {
	// Range [1000000000, 9999999999]: keeps the leading digit non-zero.
	max := big.NewInt(9_000_000_000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", fmt.Errorf("failed to generate account number: %w", err)
	}
	n.Add(n, big.NewInt(1_000_000_000))
	s := n.String()
	if len(s) != accountNumberDigits {
		return "", fmt.Errorf("generated account number has unexpected length %d", len(s))
	}
	return s, nil
}
