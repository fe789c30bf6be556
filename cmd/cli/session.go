package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errNotLoggedIn    = errors.New("not logged in (run: nk login)")
	errSessionExpired = errors.New("session expired (run: nk login)")
)

// sessionFile is what nk keeps on disk between invocations.
type sessionFile struct {
	Server    string    `json:"server"`
	Username  string    `json:"username"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// session is the per-user token cache under the config dir.
type session struct {
	dir string
	now func() time.Time
}

// newSession resolves $XDG_CONFIG_HOME/notes-keeper, falling back to ~/.config.
func newSession() (*session, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("locate config dir: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return &session{dir: filepath.Join(base, "notes-keeper"), now: time.Now}, nil
}

func (s *session) path() string { return filepath.Join(s.dir, "session.json") }

// store writes sf readable by the owner only.
func (s *session) store(sf sessionFile) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	b, err := json.MarshalIndent(sf, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(), b, 0o600)
}

// token returns the cached bearer token for server, if still valid.
func (s *session) token(server string) (string, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, fs.ErrNotExist) {
		return "", errNotLoggedIn
	}
	if err != nil {
		return "", err
	}
	var sf sessionFile
	if err := json.Unmarshal(b, &sf); err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if sf.Token == "" || (sf.Server != "" && sf.Server != server) {
		return "", errNotLoggedIn
	}
	if !s.now().Before(sf.ExpiresAt) {
		return "", errSessionExpired
	}
	return sf.Token, nil
}

// clear forgets the cached token. A missing file is not an error.
func (s *session) clear() error {
	if err := os.Remove(s.path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// tokenExpiry reads exp from tok without verifying it; the server is the authority.
func tokenExpiry(tok string) (time.Time, bool) {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &claims); err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
