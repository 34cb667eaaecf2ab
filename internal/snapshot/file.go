package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore writes one JSON file per snapshot, named after its id.
type FileStore struct {
	dir string
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		return nil, fmt.Errorf("file store needs a directory")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create snapshot directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// path only accepts uuid ids so nothing outside dir is ever touched.
func (f *FileStore) path(id string) (string, error) {
	if _, err := uuid.Parse(id); err != nil {
		return "", fmt.Errorf("%w: bad id %q", ErrInvalidSnapshot, id)
	}
	return filepath.Join(f.dir, id+".json"), nil
}

func (f *FileStore) Save(ctx context.Context, s *Snapshot) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}
	p, err := f.path(s.ID)
	if err != nil {
		return err
	}
	// write then rename so a crash never leaves a truncated blob
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	return os.Rename(tmp, p)
}

func (f *FileStore) Load(ctx context.Context, id string) (*Snapshot, error) {
	p, err := f.path(id)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot %s: %w", id, err)
	}
	return Decode(data)
}

func (f *FileStore) List(ctx context.Context) ([]Summary, error) {
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	var out []Summary
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := f.Load(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			// skip foreign or corrupt files
			continue
		}
		out = append(out, s.Summary())
	}
	sortSummaries(out)
	return out, nil
}

func (f *FileStore) Delete(ctx context.Context, id string) error {
	p, err := f.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (f *FileStore) Close() error { return nil }
