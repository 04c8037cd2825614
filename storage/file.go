package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"

	"github.com/octabyte/quizmaster-client/utils"
	"github.com/octabyte/quizmaster-client/utils/logger"
)

const (
	fileMode = 0o600
	dirMode  = 0o700
)

// File keeps all values in a single JSON document on disk. Every write replaces the document
// atomically through a temporary file and rename.
type File struct {
	path string
	mu   sync.Mutex
}

func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFilePath is <user config dir>/quizmaster/storage.json.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quizmaster", "storage.json"), nil
}

func (f *File) Path() string {
	return f.path
}

func (f *File) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, wrap("get", key, err)
	}
	value, ok := values[key]
	return value, ok, nil
}

func (f *File) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.loadForWrite()
	if err != nil {
		return wrap("set", key, err)
	}
	values[key] = value
	if err := f.save(values); err != nil {
		return wrap("set", key, err)
	}
	return nil
}

func (f *File) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		values, err = f.loadForWrite()
	} else if _, ok := values[key]; err == nil && !ok {
		return nil
	}
	if err != nil {
		return wrap("remove", key, err)
	}
	delete(values, key)
	if err := f.save(values); err != nil {
		return wrap("remove", key, err)
	}
	return nil
}

func (f *File) load() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return values, nil
	}
	if err := utils.FromJSON(data, &values); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrCorrupt, f.path, err)
	}
	return values, nil
}

// loadForWrite is load with a corrupt document read as empty, so the next save replaces it.
func (f *File) loadForWrite() (map[string]string, error) {
	values, err := f.load()
	if errors.Is(err, ErrCorrupt) {
		logger.LogWarn("discarding corrupt storage document", zap.String("path", f.path), zap.Error(err))
		return make(map[string]string), nil
	}
	return values, err
}

func (f *File) save(values map[string]string) error {
	data, err := utils.ToIndentedJSON(values)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), dirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".storage-*.json")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Chmod(fileMode); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, f.path)
}
