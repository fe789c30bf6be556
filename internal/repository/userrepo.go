// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/and161185/notes-keeper/internal/model"
)

// UserRepository is the credential store.
type UserRepository interface {
	// LoadAll returns every stored user; an empty store yields an empty slice.
	LoadAll(ctx context.Context) ([]model.User, error)
	// SaveAll overwrites the store with users.
	SaveAll(ctx context.Context, users []model.User) error
	// Create assigns u.ID and appends u, failing with errs.ErrUserAlreadyExists on a taken username.
	Create(ctx context.Context, u *model.User) error
}

// FindByUsername returns the first user whose username equals name exactly.
func FindByUsername(users []model.User, name string) (model.User, bool) {
	for _, u := range users {
		if u.Username == name {
			return u, true
		}
	}
	return model.User{}, false
}
