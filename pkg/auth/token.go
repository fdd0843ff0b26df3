// Package auth implements the mocked credential check and the session tokens
// that gate the API. The credential pair is a demo fixture; the token
// machinery is real so the HTTP surface behaves like a production service.
package auth

import (
	"time"

	"github.com/lestrrat-go/jwx/jwa"
	"github.com/lestrrat-go/jwx/jwt"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidJWTKey means the signing key is empty.
	ErrInvalidJWTKey = errors.New("invalid JWT key")
	// ErrTokenValidation means the token failed to parse or verify.
	ErrTokenValidation = errors.New("token validation failed")
)

// DefaultSessionTTL bounds how long a session token stays valid.
const DefaultSessionTTL = 24 * time.Hour

// TokenIssuer signs and validates session tokens with a local symmetric key.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenIssuer creates a token issuer with the provided signing key.
func NewTokenIssuer(secret []byte, ttl time.Duration) (*TokenIssuer, error) {
	if len(secret) == 0 {
		return nil, ErrInvalidJWTKey
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &TokenIssuer{
		secret: secret,
		ttl:    ttl,
		now:    time.Now,
	}, nil
}

// Issue signs a session token for the given username.
func (i *TokenIssuer) Issue(username string) (string, error) {
	now := i.now()
	t := jwt.New()
	if err := t.Set(jwt.SubjectKey, username); err != nil {
		return "", errors.Wrap(err, "failed to set token subject")
	}
	if err := t.Set(jwt.IssuedAtKey, now); err != nil {
		return "", errors.Wrap(err, "failed to set token issue time")
	}
	if err := t.Set(jwt.ExpirationKey, now.Add(i.ttl)); err != nil {
		return "", errors.Wrap(err, "failed to set token expiration")
	}

	signed, err := jwt.Sign(t, jwa.HS256, i.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}
	return string(signed), nil
}

// Validate verifies the token signature and expiry and returns the username.
func (i *TokenIssuer) Validate(token string) (string, error) {
	t, err := jwt.Parse(
		[]byte(token),
		jwt.WithValidate(true),
		jwt.WithVerify(jwa.HS256, i.secret),
	)
	if err != nil {
		return "", errors.Wrapf(ErrTokenValidation, "%v", err)
	}
	return t.Subject(), nil
}
