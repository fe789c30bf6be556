package filestore

import (
	"context"

	"github.com/and161185/notes-keeper/internal/errs"
	"github.com/and161185/notes-keeper/internal/model"
	"github.com/and161185/notes-keeper/internal/repository"
)

// UserRepo implements UserRepository over the users file.
type UserRepo struct {
	db  *DB
	seq sequence
}

var _ repository.UserRepository = (*UserRepo)(nil)

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// LoadAll reads every user.
func (r *UserRepo) LoadAll(ctx context.Context) ([]model.User, error) {
	return r.db.Users.Load(ctx)
}

// SaveAll overwrites the users file.
func (r *UserRepo) SaveAll(ctx context.Context, users []model.User) error {
	return r.db.Users.Save(ctx, users)
}

// Create checks uniqueness, assigns the id and appends, all under the collection lock.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	return r.db.Users.Update(ctx, func(users []model.User) ([]model.User, bool, error) {
		if _, exists := repository.FindByUsername(users, u.Username); exists {
			return nil, false, errs.ErrUserAlreadyExists
		}
		var maxID int64
		for _, x := range users {
			maxID = max(maxID, x.ID)
		}
		u.ID = r.seq.next(maxID)
		return append(users, *u), true, nil
	})
}
