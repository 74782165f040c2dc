// Package auth validates the admin login and the static bearer secret.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"

	"goldrateservice/internal/config"
)

var (
	// ErrUnauthorized is returned by Login for any credential mismatch.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrMissingCredential is returned by Verify when no bearer token was supplied.
	ErrMissingCredential = errors.New("no token provided")
	// ErrInvalidCredential is returned by Verify when the token does not match.
	ErrInvalidCredential = errors.New("invalid token")
	// ErrNoSecret is returned by New when the static secret is not configured.
	ErrNoSecret = errors.New("static token secret is not configured")
)

// Identity is the principal bound to an authenticated request.
type Identity struct {
	Username string
}

// Authenticator holds the single admin identity and the process-wide static
// token. It is immutable after New.
type Authenticator struct {
	username []byte
	password []byte
	token    []byte
}

// New builds an Authenticator from configuration. It fails when the static
// token is empty so the process never serves without a usable credential.
func New(cfg config.AuthConfig) (*Authenticator, error) {
	if cfg.Token == "" {
		return nil, ErrNoSecret
	}
	return &Authenticator{
		username: []byte(cfg.AdminUsername),
		password: []byte(cfg.AdminPassword),
		token:    []byte(cfg.Token),
	}, nil
}

// Login returns the static token when username and password both match the
// admin identity.
func (a *Authenticator) Login(username, password string) (string, error) {
	userOK := equal(a.username, username)
	passOK := equal(a.password, password)
	if !userOK || !passOK || len(a.password) == 0 {
		return "", ErrUnauthorized
	}
	return string(a.token), nil
}

// Verify checks an Authorization header of the form "Bearer <token>".
func (a *Authenticator) Verify(authorization string) (Identity, error) {
	scheme, token, _ := strings.Cut(strings.TrimSpace(authorization), " ")
	token = strings.TrimSpace(token)
	if scheme == "" || token == "" {
		return Identity{}, ErrMissingCredential
	}
	if !strings.EqualFold(scheme, "Bearer") || !equal(a.token, token) {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{Username: string(a.username)}, nil
}

func equal(want []byte, got string) bool {
	return subtle.ConstantTimeCompare(want, []byte(got)) == 1
}
