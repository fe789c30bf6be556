// Package service contains application services for authentication and notes.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/and161185/notes-keeper/internal/errs"
	"github.com/and161185/notes-keeper/internal/model"
	"github.com/and161185/notes-keeper/internal/repository"
)

// AuthService defines registration and login.
type AuthService interface {
	// Register creates a new user with a bcrypt-hashed password.
	Register(ctx context.Context, username, password string) (model.User, error)
	// Authenticate checks credentials and issues an access token.
	Authenticate(ctx context.Context, username, password string) (model.Tokens, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(u model.User) (model.Tokens, error)
}

type AuthServiceImpl struct {
	users  repository.UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
}

// NewAuthService constructs AuthService with required dependencies.
func NewAuthService(users repository.UserRepository, hasher PasswordHasher, tokens TokenIssuer) *AuthServiceImpl {
	return &AuthServiceImpl{users: users, hasher: hasher, tokens: tokens}
}

// Register stores a new user. The returned record includes the hash; callers strip it before exposing.
func (s *AuthServiceImpl) Register(ctx context.Context, username, password string) (model.User, error) {
	if username == "" || password == "" {
		return model.User{}, errors.New("empty username/password")
	}

	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("load users: %w", err)
	}
	// Cheap rejection before paying for bcrypt; Create re-checks under the store lock.
	if _, exists := repository.FindByUsername(users, username); exists {
		return model.User{}, errs.ErrUserAlreadyExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}

	u := model.User{Username: username, Password: hash}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, errs.ErrUserAlreadyExists) {
			return model.User{}, err
		}
		return model.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Authenticate verifies username/password and returns a signed token.
func (s *AuthServiceImpl) Authenticate(ctx context.Context, username, password string) (model.Tokens, error) {
	users, err := s.users.LoadAll(ctx)
	if err != nil {
		return model.Tokens{}, fmt.Errorf("load users: %w", err)
	}
	u, ok := repository.FindByUsername(users, username)
	if !ok {
		return model.Tokens{}, errs.ErrUserNotFound
	}

	match, err := s.hasher.Verify(password, u.Password)
	if err != nil {
		return model.Tokens{}, fmt.Errorf("verify password: %w", err)
	}
	if !match {
		return model.Tokens{}, errs.ErrInvalidPassword
	}

	return s.tokens.Issue(u)
}
