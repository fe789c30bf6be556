package repository

import (
	"context"

	"github.com/and161185/notes-keeper/internal/model"
)

// NoteRepository persists notes. Misses on Update/Delete are reported via the bool result, not an error.
type NoteRepository interface {
	// Create assigns an id, appends the note and returns it.
	Create(ctx context.Context, title, content string) (model.Note, error)
	// List returns all notes in insertion order.
	List(ctx context.Context) ([]model.Note, error)
	// Update replaces title and content of the note with id.
	Update(ctx context.Context, id int64, title, content string) (model.Note, bool, error)
	// Delete removes the note with id.
	Delete(ctx context.Context, id int64) (bool, error)
}
