package util

import (
	"crypto/rand"
	"encoding/hex"
)

// GenerateResetCode returns a random hex string of 2*byteLen characters.
func GenerateResetCode(byteLen int) (string, error) {
	if byteLen <= 0 {
		byteLen = 6
	}
	buf := make([]byte, byteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
