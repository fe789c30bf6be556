package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/and161185/notes-keeper/internal/errs"
	"github.com/and161185/notes-keeper/internal/model"
	"github.com/and161185/notes-keeper/internal/repository"
	"github.com/and161185/notes-keeper/internal/repository/filestore"
)

func newNoteService(t *testing.T) *NoteServiceImpl {
	t.Helper()
	db, err := filestore.Open(context.Background(), filepath.Join(t.TempDir(), "data"), "users.json", "db.json")
	require.NoError(t, err)
	return NewNoteService(filestore.NewNoteRepo(db))
}

func TestNotes_CreateThenList(t *testing.T) {
	t.Parallel()
	s := newNoteService(t)
	ctx := context.Background()

	n, err := s.Create(ctx, "T", "C")
	require.NoError(t, err)
	require.NotZero(t, n.ID)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Equal(t, []model.Note{{ID: n.ID, Title: "T", Content: "C"}}, list)
}

func TestNotes_Update(t *testing.T) {
	t.Parallel()
	s := newNoteService(t)
	ctx := context.Background()

	n, _ := s.Create(ctx, "T", "C")

	got, ok, err := s.Update(ctx, n.ID, "T2", "C2")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, model.Note{ID: n.ID, Title: "T2", Content: "C2"}, got)

	before, _ := s.List(ctx)
	_, ok, err = s.Update(ctx, n.ID+100, "X", "Y")
	require.NoError(t, err)
	require.False(t, ok)
	after, _ := s.List(ctx)
	require.Equal(t, before, after)
}

func TestNotes_DeleteIsIdempotentMiss(t *testing.T) {
	t.Parallel()
	s := newNoteService(t)
	ctx := context.Background()

	a, _ := s.Create(ctx, "a", "1")
	b, _ := s.Create(ctx, "b", "2")

	ok, err := s.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = s.Delete(ctx, a.ID)
	require.NoError(t, err)
	require.False(t, ok)

	list, _ := s.List(ctx)
	require.Equal(t, []model.Note{b}, list)
}

func TestNotes_EndToEndOrder(t *testing.T) {
	t.Parallel()
	s := newNoteService(t)
	ctx := context.Background()

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	first, _ := s.Create(ctx, "first", "1")
	second, _ := s.Create(ctx, "second", "2")

	list, _ = s.List(ctx)
	require.Equal(t, []model.Note{first, second}, list)

	_, err = s.Delete(ctx, first.ID)
	require.NoError(t, err)
	list, _ = s.List(ctx)
	require.Equal(t, []model.Note{second}, list)
}

type brokenNotes struct{ err error }

var _ repository.NoteRepository = brokenNotes{}

func (b brokenNotes) Create(context.Context, string, string) (model.Note, error) {
	return model.Note{}, b.err
}
func (b brokenNotes) List(context.Context) ([]model.Note, error) { return nil, b.err }
func (b brokenNotes) Update(context.Context, int64, string, string) (model.Note, bool, error) {
	return model.Note{}, false, b.err
}
func (b brokenNotes) Delete(context.Context, int64) (bool, error) { return false, b.err }

func TestNotes_PropagatesStoreErrors(t *testing.T) {
	t.Parallel()
	s := NewNoteService(brokenNotes{err: errs.ErrCorruptStore})
	ctx := context.Background()

	_, err := s.Create(ctx, "a", "b")
	require.True(t, errors.Is(err, errs.ErrCorruptStore))
	_, err = s.List(ctx)
	require.ErrorIs(t, err, errs.ErrCorruptStore)
	_, _, err = s.Update(ctx, 1, "a", "b")
	require.ErrorIs(t, err, errs.ErrCorruptStore)
	_, err = s.Delete(ctx, 1)
	require.ErrorIs(t, err, errs.ErrCorruptStore)
}
