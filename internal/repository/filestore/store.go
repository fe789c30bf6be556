// Package filestore contains JSON-file implementations of repository interfaces.
package filestore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/and161185/notes-keeper/internal/jsonfile"
	"github.com/and161185/notes-keeper/internal/model"
)

// DB holds the collections backing the repositories.
type DB struct {
	Users *jsonfile.Collection[model.User]
	Notes *jsonfile.Collection[model.Note]
}

// Open prepares dir and checks that both collection files are readable.
// A corrupt file fails here instead of on the first request.
func Open(ctx context.Context, dir, usersFile, notesFile string) (*DB, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("mkdir %s: %w", dir, err)
	}
	db := &DB{
		Users: jsonfile.New[model.User](filepath.Join(dir, usersFile)),
		Notes: jsonfile.New[model.Note](filepath.Join(dir, notesFile)),
	}
	if _, err := db.Users.Load(ctx); err != nil {
		return nil, err
	}
	if _, err := db.Notes.Load(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// sequence hands out int64 ids. Callers hold the owning collection's lock.
type sequence struct{ last int64 }

// next returns an id above both the last one issued and maxID.
func (s *sequence) next(maxID int64) int64 {
	if maxID > s.last {
		s.last = maxID
	}
	s.last++
	return s.last
}
