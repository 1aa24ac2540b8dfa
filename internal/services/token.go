package services

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

const (
	ResetTokenBytes = 32 // 256 бит -> 64 hex-символа
	ResetTokenTTL   = time.Hour
	BcryptCost      = 10
)

// NewResetToken: криптостойкий токен сброса в нижнем hex.
func NewResetToken() (string, error) {
	b := make([]byte, ResetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
