// Package password provides one-way hashing and verification of user
// credentials. Helpers are free functions so callers can work with plain
// data fixtures instead of method-bearing records.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor. Fixed so verification time stays
// consistent across the user base.
const Cost = 10

// Hash produces a salted bcrypt digest of the plaintext password.
func Hash(plain string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(bytes), nil
}

// Verify reports whether plain matches the stored hash. A mismatch is
// (false, nil); a non-nil error means the stored hash itself is malformed
// and the record should be treated as corrupted.
func Verify(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("malformed password hash: %w", err)
}
