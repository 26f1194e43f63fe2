// Package password hashes and verifies user passwords.
//
// SHA256 reproduces the historical credential format: lowercase hex of an
// unsalted SHA-256 digest. Bcrypt is the opt-in replacement; it still accepts
// SHA256 hashes so existing accounts keep working after the switch.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// New returns the hasher named by algorithm ("sha256" or "bcrypt").
func New(algorithm string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case "", "sha256":
		return SHA256{}, nil
	case "bcrypt":
		return Bcrypt{Cost: bcryptCost}, nil
	default:
		return nil, fmt.Errorf("unknown password hash algorithm %q", algorithm)
	}
}

type SHA256 struct{}

func (SHA256) Hash(password string) (string, error) {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:]), nil
}

func (s SHA256) Verify(password, hash string) bool {
	got, _ := s.Hash(password)
	return subtle.ConstantTimeCompare([]byte(got), []byte(hash)) == 1
}

type Bcrypt struct {
	Cost int
}

func (b Bcrypt) Hash(password string) (string, error) {
	cost := b.Cost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

func (b Bcrypt) Verify(password, hash string) bool {
	if !strings.HasPrefix(hash, "$2") {
		return SHA256{}.Verify(password, hash)
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
