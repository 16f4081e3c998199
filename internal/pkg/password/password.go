// Package password wraps bcrypt hashing for stored user credentials.
package password

import (
	"errors"

	"parking-gateway/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

// ErrMismatch reports that a login attempt does not match the stored hash.
// Any other error from Verify is a hashing-level failure, not a wrong
// password.
var ErrMismatch = errors.New("password does not match")

const hashCost = bcrypt.DefaultCost

// Hash derives the bcrypt hash persisted in the users table.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), hashCost)
	if err != nil {
		return "", errs.Wrap(err, "failed to hash password")
	}
	return string(hashed), nil
}

// Verify compares a login attempt against the stored hash.
func Verify(storedHash, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return errs.Wrap(err, "failed to compare password")
}
