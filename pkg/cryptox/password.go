package cryptox

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const (
	// PasswordCost is the bcrypt work factor used for every stored hash.
	PasswordCost = 10

	// MaxPasswordBytes is the longest input bcrypt accepts.
	MaxPasswordBytes = 72
)

var (
	ErrEmptyPassword    = errors.New("cryptox: empty password")
	ErrPasswordTooLong  = errors.New("cryptox: password exceeds 72 bytes")
	ErrPasswordMismatch = errors.New("cryptox: password does not match")
)

// HashPassword returns a bcrypt hash of password. bcrypt draws a fresh
// random salt on every call, so hashing the same password twice yields
// different strings.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}

	h, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword compares password against a stored bcrypt hash. A mismatch
// is reported as ErrPasswordMismatch; anything else (corrupt hash) is
// returned as is. A password too long to have been hashed never matches.
func VerifyPassword(password, hash string) error {
	if len(password) > MaxPasswordBytes {
		return ErrPasswordMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrPasswordMismatch
		}
		return err
	}
	return nil
}
