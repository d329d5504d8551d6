package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	domainRepo "mediconnect/internal/domain/repository"

	"github.com/spf13/afero"
)

var unsafeKeyChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// fileEnvelope is the on-disk form of a blob.
type fileEnvelope struct {
	Version int64           `json:"version"`
	Value   json.RawMessage `json:"value"`
}

// FileBlobStore writes one JSON file per key. Writes go to a temp file that is
// renamed over the target so readers never observe a partial document.
// The version check is serialized within this process only.
type FileBlobStore struct {
	fs  afero.Fs
	dir string
	mu  sync.Mutex
}

func NewFileBlobStore(fs afero.Fs, dir string) (*FileBlobStore, error) {
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir %s: %w", dir, err)
	}
	return &FileBlobStore{fs: fs, dir: dir}, nil
}

func (s *FileBlobStore) path(key string) string {
	return filepath.Join(s.dir, unsafeKeyChars.ReplaceAllString(key, "_")+".json")
}

func (s *FileBlobStore) read(key string) (*fileEnvelope, error) {
	raw, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domainRepo.ErrBlobNotFound
		}
		return nil, fmt.Errorf("read blob %s: %w", key, err)
	}

	var env fileEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		// A damaged envelope is handed back as-is so the caller can decide how to recover.
		return &fileEnvelope{Version: 1, Value: raw}, nil
	}
	return &env, nil
}

func (s *FileBlobStore) Get(ctx context.Context, key string) ([]byte, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	env, err := s.read(key)
	if err != nil {
		return nil, 0, err
	}
	return []byte(env.Value), env.Version, nil
}

func (s *FileBlobStore) CompareAndSwap(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var current int64
	env, err := s.read(key)
	switch {
	case err == nil:
		current = env.Version
	case errors.Is(err, domainRepo.ErrBlobNotFound):
		current = 0
	default:
		return 0, err
	}
	if current != expected {
		return 0, domainRepo.ErrVersionConflict
	}

	if !json.Valid(value) {
		return 0, fmt.Errorf("blob %s: value is not valid JSON", key)
	}
	next := expected + 1
	raw, err := json.Marshal(fileEnvelope{Version: next, Value: value})
	if err != nil {
		return 0, fmt.Errorf("encode blob %s: %w", key, err)
	}

	target := s.path(key)
	tmp := target + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, raw, 0o644); err != nil {
		return 0, fmt.Errorf("write blob %s: %w", key, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return 0, fmt.Errorf("commit blob %s: %w", key, err)
	}
	return next, nil
}

func (s *FileBlobStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.fs.Remove(s.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}
