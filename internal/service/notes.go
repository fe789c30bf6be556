package service

import (
	"context"
	"fmt"

	"github.com/and161185/notes-keeper/internal/model"
	"github.com/and161185/notes-keeper/internal/repository"
)

// NoteService defines CRUD over the notes collection.
type NoteService interface {
	// Create stores a new note and returns it with its assigned id.
	Create(ctx context.Context, title, content string) (model.Note, error)
	// List returns every note in creation order.
	List(ctx context.Context) ([]model.Note, error)
	// Update replaces title and content; ok is false when no note has id.
	Update(ctx context.Context, id int64, title, content string) (note model.Note, ok bool, err error)
	// Delete removes the note; false when no note has id.
	Delete(ctx context.Context, id int64) (bool, error)
}

type NoteServiceImpl struct {
	repo repository.NoteRepository
}

// NewNoteService constructs NoteService.
func NewNoteService(repo repository.NoteRepository) *NoteServiceImpl {
	return &NoteServiceImpl{repo: repo}
}

func (s *NoteServiceImpl) Create(ctx context.Context, title, content string) (model.Note, error) {
	n, err := s.repo.Create(ctx, title, content)
	if err != nil {
		return model.Note{}, fmt.Errorf("create note: %w", err)
	}
	return n, nil
}

func (s *NoteServiceImpl) List(ctx context.Context) ([]model.Note, error) {
	ns, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	return ns, nil
}

func (s *NoteServiceImpl) Update(ctx context.Context, id int64, title, content string) (model.Note, bool, error) {
	n, ok, err := s.repo.Update(ctx, id, title, content)
	if err != nil {
		return model.Note{}, false, fmt.Errorf("update note %d: %w", id, err)
	}
	return n, ok, nil
}

func (s *NoteServiceImpl) Delete(ctx context.Context, id int64) (bool, error) {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete note %d: %w", id, err)
	}
	return ok, nil
}
