package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// HashFormat identifies the scheme a stored password hash uses.
type HashFormat int

const (
	// FormatUnknown means the stored value matches no supported scheme.
	FormatUnknown HashFormat = iota
	// FormatBcrypt is the primary format; all registrations produce it.
	FormatBcrypt
	// FormatLegacySHA256 is an unsalted hex digest. It only appears on rows
	// written by the seeding tool (cmd/seed) and is kept for compatibility
	// with those accounts. Do not remove the fallback.
	FormatLegacySHA256
)

// PasswordHasher hashes new passwords and verifies supplied passwords against
// stored hashes in either supported format.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}

// BcryptHasher is the production PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a hasher with bcrypt.DefaultCost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcrypt.DefaultCost}
}

// Hash produces a bcrypt hash of the password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Verify reports whether password matches the stored hash. The hash is
// classified by structure first, then checked with the matching strategy;
// unrecognized formats are rejected outright.
func (h *BcryptHasher) Verify(hash, password string) bool {
	switch ClassifyHash(hash) {
	case FormatBcrypt:
		return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
	case FormatLegacySHA256:
		digest := sha256.Sum256([]byte(password))
		candidate := hex.EncodeToString(digest[:])
		return subtle.ConstantTimeCompare([]byte(hash), []byte(candidate)) == 1
	}
	return false
}

// ClassifyHash detects the format of a stored hash.
func ClassifyHash(hash string) HashFormat {
	if strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$") || strings.HasPrefix(hash, "$2y$") {
		return FormatBcrypt
	}
	if isHexDigest(hash) {
		return FormatLegacySHA256
	}
	return FormatUnknown
}

func isHexDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
