package auth

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned for any username/password mismatch. The
// reason is deliberately not more specific.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Demo credential defaults. There is exactly one valid pair.
const (
	DefaultDemoUsername = "admin"
	DefaultDemoPassword = "admin"
)

// Authenticator checks the single demo credential pair with an artificial
// network delay, standing in for a real identity provider behind the same
// interface.
type Authenticator struct {
	username     string
	passwordHash []byte
	delay        time.Duration
}

// NewAuthenticator builds an authenticator for the given credential pair.
// The password is stored only as a bcrypt hash.
func NewAuthenticator(username, password string, delay time.Duration) (*Authenticator, error) {
	if username == "" {
		username = DefaultDemoUsername
	}
	if password == "" {
		password = DefaultDemoPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash demo password")
	}
	return &Authenticator{
		username:     username,
		passwordHash: hash,
		delay:        delay,
	}, nil
}

// Login validates the credential pair after the simulated delay. The delay
// respects context cancellation so a closed request does not hold a worker.
func (a *Authenticator) Login(ctx context.Context, username, password string) error {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	if username != a.username {
		return ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
