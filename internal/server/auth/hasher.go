package auth

import (
	"github.com/dmitrijs2005/taskboard/internal/common"
	"golang.org/x/crypto/bcrypt"
)

// maxPasswordBytes is the longest input bcrypt accepts.
const maxPasswordBytes = 72

// Hasher hashes and verifies passwords with bcrypt. The salt is generated
// per call and embedded in the digest, so digests are self-describing.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher using cost. Costs outside bcrypt's accepted
// range fall back to bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if len(plaintext) > maxPasswordBytes {
		return "", common.ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches digest. Malformed digests and
// plaintexts longer than bcrypt accepts simply do not match; bcrypt would
// otherwise compare only their first 72 bytes.
func (h *Hasher) Verify(plaintext, digest string) bool {
	if len(plaintext) > maxPasswordBytes {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
