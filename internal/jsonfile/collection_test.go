package jsonfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/and161185/notes-keeper/internal/errs"
)

type rec struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newColl(t *testing.T) *Collection[rec] {
	t.Helper()
	return New[rec](filepath.Join(t.TempDir(), "recs.json"))
}

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	c := newColl(t)

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, items)
	require.Empty(t, items)
}

func TestSaveLoad_RoundTripPreservesOrder(t *testing.T) {
	c := newColl(t)
	ctx := context.Background()

	in := []rec{{ID: 3, Name: "c"}, {ID: 1, Name: "a"}, {ID: 2, Name: "b"}}
	require.NoError(t, c.Save(ctx, in))

	out, err := c.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, in, out)

	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  {\n    \"id\": 3,")
}

func TestSave_NilWritesEmptyArray(t *testing.T) {
	c := newColl(t)

	require.NoError(t, c.Save(context.Background(), nil))
	raw, err := os.ReadFile(c.Path())
	require.NoError(t, err)
	require.Equal(t, "[]", string(raw))
}

func TestLoad_CorruptFile(t *testing.T) {
	cases := map[string]string{
		"garbage":     "{not json",
		"object":      `{"id": 1}`,
		"null":        "null",
		"wrong type":  `[{"id": "x"}]`,
		"null record": `[null]`,
		"null after":  `[{"id": 1, "name": "a"}, null]`,
		"unknown key": `[{"foo": 1}]`,
		"extra key":   `[{"id": 1, "name": "a", "password": "p"}]`,
		"wrong case":  `[{"ID": 5, "NAME": "x"}]`,
		"scalar":      `[1]`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			c := newColl(t)
			require.NoError(t, os.WriteFile(c.Path(), []byte(body), 0o600))

			_, err := c.Load(context.Background())
			require.ErrorIs(t, err, errs.ErrCorruptStore)
		})
	}
}

func TestLoad_PartialRecordsAccepted(t *testing.T) {
	c := newColl(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte(`[{"id": 1}, {"name": "b", "id": 2}]`), 0o600))

	items, err := c.Load(context.Background())
	require.NoError(t, err)
	require.Equal(t, []rec{{ID: 1}, {ID: 2, Name: "b"}}, items)
}

func TestUpdate_NoChangeSkipsWrite(t *testing.T) {
	c := newColl(t)
	ctx := context.Background()

	err := c.Update(ctx, func(items []rec) ([]rec, bool, error) {
		return append(items, rec{ID: 1}), false, nil
	})
	require.NoError(t, err)

	_, statErr := os.Stat(c.Path())
	require.True(t, errors.Is(statErr, os.ErrNotExist), "file must not be created")
}

func TestUpdate_FnErrorAbortsWrite(t *testing.T) {
	c := newColl(t)
	ctx := context.Background()
	require.NoError(t, c.Save(ctx, []rec{{ID: 1, Name: "keep"}}))

	boom := errors.New("boom")
	err := c.Update(ctx, func(items []rec) ([]rec, bool, error) {
		return nil, true, boom
	})
	require.ErrorIs(t, err, boom)

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []rec{{ID: 1, Name: "keep"}}, items)
}

func TestUpdate_CorruptFileNotOverwritten(t *testing.T) {
	c := newColl(t)
	require.NoError(t, os.WriteFile(c.Path(), []byte("{oops"), 0o600))

	called := false
	err := c.Update(context.Background(), func(items []rec) ([]rec, bool, error) {
		called = true
		return items, true, nil
	})
	require.ErrorIs(t, err, errs.ErrCorruptStore)
	require.False(t, called)

	raw, _ := os.ReadFile(c.Path())
	require.Equal(t, "{oops", string(raw))
}

func TestUpdate_ConcurrentAppendsAreNotLost(t *testing.T) {
	c := newColl(t)
	ctx := context.Background()

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			err := c.Update(ctx, func(items []rec) ([]rec, bool, error) {
				return append(items, rec{ID: int64(i)}), true, nil
			})
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	items, err := c.Load(ctx)
	require.NoError(t, err)
	require.Len(t, items, n)
}

func TestCancelledContext(t *testing.T) {
	c := newColl(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Load(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.ErrorIs(t, c.Save(ctx, []rec{{ID: 1}}), context.Canceled)

	_, statErr := os.Stat(c.Path())
	require.True(t, errors.Is(statErr, os.ErrNotExist))
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	c := newColl(t)
	ctx := context.Background()
	require.NoError(t, c.Save(ctx, []rec{{ID: 1}}))
	require.NoError(t, c.Save(ctx, []rec{{ID: 2}}))

	entries, err := os.ReadDir(filepath.Dir(c.Path()))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "recs.json", entries[0].Name())
}
