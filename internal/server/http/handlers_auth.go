package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/and161185/notes-keeper/internal/errs"
)

const (
	minUsernameLen = 3
	minPasswordLen = 5
)

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// userResponse is the public view of a user; the password hash never leaves the server.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type tokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type claimsResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

func (c credentials) validate() []fieldError {
	var out []fieldError
	if utf8.RuneCountInString(c.Username) < minUsernameLen {
		out = append(out, fieldError{Field: "username", Message: "must be at least 3 characters"})
	}
	if utf8.RuneCountInString(c.Password) < minPasswordLen {
		out = append(out, fieldError{Field: "password", Message: "must be at least 5 characters"})
	}
	return out
}

func decodeCredentials(w http.ResponseWriter, r *http.Request) (credentials, bool) {
	var c credentials
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&c); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request payload")
		return credentials{}, false
	}
	return c, true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCredentials(w, r)
	if !ok {
		return
	}
	if fe := c.validate(); len(fe) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string][]fieldError{"errors": fe})
		return
	}

	u, err := s.auth.Register(r.Context(), c.Username, c.Password)
	if err != nil {
		if errors.Is(err, errs.ErrUserAlreadyExists) {
			writeMessage(w, http.StatusConflict, "User already exists")
			return
		}
		s.internalError(w, r, "register", err)
		return
	}
	writeJSON(w, http.StatusCreated, userResponse{ID: u.ID, Username: u.Username})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	c, ok := decodeCredentials(w, r)
	if !ok {
		return
	}

	tok, err := s.auth.Authenticate(r.Context(), c.Username, c.Password)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrUserNotFound):
			writeMessage(w, http.StatusUnauthorized, "User not found")
		case errors.Is(err, errs.ErrInvalidPassword):
			writeMessage(w, http.StatusUnauthorized, "Invalid password")
		default:
			s.internalError(w, r, "login", err)
		}
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: tok.AccessToken, ExpiresAt: tok.ExpiresAt})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	c, ok := ClaimsFromCtx(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "Access denied")
		return
	}
	writeJSON(w, http.StatusOK, claimsResponse{ID: c.ID, Username: c.Username, IssuedAt: c.IssuedAt, ExpiresAt: c.ExpiresAt})
}
