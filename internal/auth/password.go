package auth

import "golang.org/x/crypto/bcrypt"

// PasswordHasher performs bcrypt hashing with a fixed cost factor. It is
// configured once at startup and injected; it holds no mutable state and is
// safe for concurrent use.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher builds a hasher, falling back to bcrypt.DefaultCost for
// out-of-range values.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash derives a salted digest from a plaintext password. A fresh random salt
// is generated per call, so two hashes of the same input differ. The digest
// string embeds the cost and salt, so previously stored digests remain
// verifiable after the configured cost changes.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext matches the digest. The comparison is
// constant-time in the password content. Malformed digests verify as false
// rather than erroring, so a corrupt stored hash reads as a failed login.
func (h *PasswordHasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
