package auth

import (
	"golang.org/x/crypto/bcrypt"

	"zorgkaart/internal/common"
)

// Gate verifies the shared access password against a configured bcrypt
// digest. The plaintext never reaches the server config or logs.
type Gate struct {
	digest []byte
}

// NewGate constructs a Gate for the given bcrypt digest.
func NewGate(digest string) *Gate {
	return &Gate{digest: []byte(digest)}
}

// Check compares the candidate password to the digest. A mismatch returns
// common.ErrorUnauthorized; malformed digests surface the same way, so a
// misconfigured gate fails closed.
func (g *Gate) Check(password string) error {
	if err := bcrypt.CompareHashAndPassword(g.digest, []byte(password)); err != nil {
		return common.ErrorUnauthorized
	}
	return nil
}
