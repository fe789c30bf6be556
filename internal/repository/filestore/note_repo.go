package filestore

import (
	"context"
	"slices"

	"github.com/and161185/notes-keeper/internal/model"
	"github.com/and161185/notes-keeper/internal/repository"
)

// NoteRepo implements NoteRepository over the notes file.
type NoteRepo struct {
	db  *DB
	seq sequence
}

var _ repository.NoteRepository = (*NoteRepo)(nil)

// NewNoteRepo constructs a note repository.
func NewNoteRepo(db *DB) *NoteRepo { return &NoteRepo{db: db} }

// Create appends a note with a fresh id.
func (r *NoteRepo) Create(ctx context.Context, title, content string) (model.Note, error) {
	var n model.Note
	err := r.db.Notes.Update(ctx, func(notes []model.Note) ([]model.Note, bool, error) {
		var maxID int64
		for _, x := range notes {
			maxID = max(maxID, x.ID)
		}
		n = model.Note{ID: r.seq.next(maxID), Title: title, Content: content}
		return append(notes, n), true, nil
	})
	if err != nil {
		return model.Note{}, err
	}
	return n, nil
}

// List returns all notes in file order.
func (r *NoteRepo) List(ctx context.Context) ([]model.Note, error) {
	return r.db.Notes.Load(ctx)
}

// Update overwrites both title and content of the note with id.
func (r *NoteRepo) Update(ctx context.Context, id int64, title, content string) (model.Note, bool, error) {
	var (
		n     model.Note
		found bool
	)
	err := r.db.Notes.Update(ctx, func(notes []model.Note) ([]model.Note, bool, error) {
		i := slices.IndexFunc(notes, func(x model.Note) bool { return x.ID == id })
		if i < 0 {
			return notes, false, nil
		}
		n = model.Note{ID: id, Title: title, Content: content}
		notes[i] = n
		found = true
		return notes, true, nil
	})
	if err != nil {
		return model.Note{}, false, err
	}
	return n, found, nil
}

// Delete removes the note with id. A miss leaves the file untouched.
func (r *NoteRepo) Delete(ctx context.Context, id int64) (bool, error) {
	var deleted bool
	err := r.db.Notes.Update(ctx, func(notes []model.Note) ([]model.Note, bool, error) {
		kept := slices.DeleteFunc(slices.Clone(notes), func(x model.Note) bool { return x.ID == id })
		deleted = len(kept) != len(notes)
		return kept, deleted, nil
	})
	if err != nil {
		return false, err
	}
	return deleted, nil
}
