package domain

import (
	"crypto/sha256"
	"encoding/hex"
)

type User struct {
	Email        string
	LastName     string
	FirstName    string
	Phone        string
	PasswordHash string
}

type NewUser struct {
	Email        string `validate:"required,email,max=64"`
	LastName     string `validate:"required,max=32"`
	FirstName    string `validate:"required,max=32"`
	Phone        string `validate:"omitempty,numeric,len=10"`
	PasswordHash string `validate:"required,len=64,hexadecimal"`
}

// HashPassword returns the hex encoded SHA-256 digest stored in users.pwd.
func HashPassword(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}
