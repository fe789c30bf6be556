// Package jsonfile persists a collection of records as a single JSON array file.
//
// Every operation reloads the whole file; there is no in-memory cache. Mutations
// are serialized per Collection, and writes go through a temp file plus rename so
// readers never see a partially written file.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/and161185/notes-keeper/internal/errs"
)

// Collection is a file-backed ordered sequence of T.
type Collection[T any] struct {
	path string
	mu   sync.Mutex
}

// New returns a Collection stored at path. The file is created on first save.
func New[T any](path string) *Collection[T] {
	return &Collection[T]{path: path}
}

// Path returns the backing file path.
func (c *Collection[T]) Path() string { return c.path }

// Load returns all records. A missing file yields an empty slice.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.load(ctx)
}

// Save replaces the file contents with items.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.save(ctx, items)
}

// Update runs fn over the current records and persists its result when fn reports a change.
// The whole load-mutate-save cycle holds the collection lock.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	items, err := c.load(ctx)
	if err != nil {
		return err
	}
	next, changed, err := fn(items)
	if err != nil || !changed {
		return err
	}
	return c.save(ctx, next)
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.path, err)
	}
	items, err := decodeItems[T](data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", errs.ErrCorruptStore, c.path, err)
	}
	return items, nil
}

// decodeItems parses a JSON array whose every element is a well-formed T.
func decodeItems[T any](data []byte) ([]T, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, err
	}
	// "null" decodes without error but is not an array of records.
	if raws == nil {
		return nil, errors.New("not a JSON array")
	}
	items := make([]T, 0, len(raws))
	for i, raw := range raws {
		item, err := decodeItem[T](raw)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeItem[T any](raw json.RawMessage) (T, error) {
	var item T
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return item, errors.New("null record")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&item); err != nil {
		return item, err
	}

	// encoding/json matches keys case-insensitively; stored keys must match exactly.
	var got map[string]json.RawMessage
	if err := json.Unmarshal(raw, &got); err != nil {
		return item, err
	}
	canon, err := json.Marshal(item)
	if err != nil {
		return item, err
	}
	var want map[string]json.RawMessage
	if err := json.Unmarshal(canon, &want); err != nil {
		return item, err
	}
	for k := range got {
		if _, ok := want[k]; !ok {
			return item, fmt.Errorf("unexpected key %q", k)
		}
	}
	return item, nil
}

func (c *Collection[T]) save(ctx context.Context, items []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", c.path, err)
	}

	dir := filepath.Dir(c.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(c.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", tmpName, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, c.path); err != nil {
		return fmt.Errorf("rename %s: %w", c.path, err)
	}
	return nil
}
