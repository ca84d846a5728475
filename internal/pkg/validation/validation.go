package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	addressPattern = regexp.MustCompile(`^0x[a-fA-F0-9]{40}$`)
	txHashPattern  = regexp.MustCompile(`^0x[a-fA-F0-9]{64}$`)
)

// IsValidEthereumAddress checks the 0x + 40 hex chars address format
func IsValidEthereumAddress(address string) bool {
	return addressPattern.MatchString(address)
}

// IsValidTxHash checks the 0x + 64 hex chars transaction hash format
func IsValidTxHash(hash string) bool {
	return txHashPattern.MatchString(hash)
}

// NormalizeAddress canonicalizes an address to lowercase for storage and
// comparison (checksum casing is not validated)
func NormalizeAddress(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// SanitizeInput trims, strips angle brackets and caps string length
func SanitizeInput(input string) string {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	if len(s) > 1000 {
		s = s[:1000]
	}
	return s
}

// NumericRange checks that value lies within [min, max]
func NumericRange(value decimal.Decimal, min, max decimal.Decimal, fieldName string) error {
	if value.LessThan(min) || value.GreaterThan(max) {
		return fmt.Errorf("%s must be between %s and %s", fieldName, min.String(), max.String())
	}
	return nil
}
