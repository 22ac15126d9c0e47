// Package auth implements the session machinery: password hashing, signed
// session tokens, resolving a session cookie to a user and gating pages
// that need one.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the payload of a session token: the user ID as subject plus
// the expiry.
type Claims struct {
	jwt.RegisteredClaims
}

// Codec issues and verifies HS256 session tokens.
type Codec struct {
	secret []byte
	now    func() time.Time
}

// CodecOption customises a Codec.
type CodecOption func(*Codec)

// WithClock replaces the wall clock used for both issuing and verifying.
func WithClock(now func() time.Time) CodecOption {
	return func(c *Codec) { c.now = now }
}

func NewCodec(secretKey []byte, opts ...CodecOption) *Codec {
	c := &Codec{secret: secretKey, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Issue signs a token for subject that expires ttl from now.
func (c *Codec) Issue(subject string, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(c.now().Add(ttl)),
		},
	})

	return token.SignedString(c.secret)
}

// Verify checks tokenString and returns its claims. Failures are reported
// as common.ErrInvalidSignature, common.ErrTokenExpired or
// common.ErrMalformedToken. There is no leeway on expiry.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(c.now),
	)

	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, common.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return nil, common.ErrInvalidSignature
	default:
		return nil, common.ErrMalformedToken
	}

	if claims.Subject == "" {
		return nil, common.ErrMalformedToken
	}

	return claims, nil
}
