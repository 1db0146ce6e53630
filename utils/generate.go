package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// GenerateOTP returns a random 6-digit numeric code.
func GenerateOTP() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

// Digits strips every non-digit rune from s. Numeric form fields (phone,
// zip, years of experience, OTP input) are sanitized with this before
// validation rather than rejected outright.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
