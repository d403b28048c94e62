package randcode

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// GenerateNumericCode returns a uniformly random zero-padded decimal string
// of the given length. A 6-digit code covers the full "000000"-"999999"
// range; leading zeros are valid codes.
func GenerateNumericCode(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("invalid code length: %d", length)
	}

	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%0*d", length, n), nil
}
