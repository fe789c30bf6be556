// Package token issues and verifies HS256 access tokens.
package token

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/and161185/notes-keeper/internal/errs"
	"github.com/and161185/notes-keeper/internal/model"
)

// DefaultTTL is the validity window of an access token.
const DefaultTTL = time.Hour

// Config holds the process-wide signing settings.
type Config struct {
	Secret []byte
	TTL    time.Duration
}

// claims is the signed payload: {id, username} plus iat/exp.
type claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"id"`
	Username string `json:"username"`
}

// Manager signs and verifies tokens with one secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager validates cfg and returns a Manager.
func NewManager(cfg Config) (*Manager, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token: empty signing secret")
	}
	if cfg.TTL <= 0 {
		return nil, fmt.Errorf("token: non-positive ttl %s", cfg.TTL)
	}
	return &Manager{secret: cfg.Secret, ttl: cfg.TTL, now: time.Now}, nil
}

// Issue signs a token for u valid for the configured TTL.
func (m *Manager) Issue(u model.User) (model.Tokens, error) {
	now := m.now()
	exp := now.Add(m.ttl)
	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:   u.ID,
		Username: u.Username,
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return model.Tokens{}, err
	}
	// exp is signed at second precision; report what the token actually carries.
	return model.Tokens{AccessToken: signed, ExpiresAt: c.ExpiresAt.Time}, nil
}

// Verify checks signature and expiry of tok and returns its claims.
func (m *Manager) Verify(tok string) (model.Claims, error) {
	tok = strings.TrimSpace(tok)
	if tok == "" {
		return model.Claims{}, errs.ErrTokenMissing
	}

	var c claims
	_, err := jwt.ParseWithClaims(tok, &c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return model.Claims{}, errs.ErrTokenExpired
	default:
		return model.Claims{}, fmt.Errorf("%w: %v", errs.ErrTokenInvalid, err)
	}

	out := model.Claims{
		ID:        c.UserID,
		Username:  c.Username,
		ExpiresAt: c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	return out, nil
}

// TTL returns the configured validity window.
func (m *Manager) TTL() time.Duration { return m.ttl }
