package project

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Ext is the project archive file extension.
const Ext = ".ddd"

// Store persists project records by key.
type Store interface {
	Save(ctx context.Context, key string, s State) error
	Load(ctx context.Context, key string) (State, error)
	List(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, key string) error
}

// DirStore keeps each project as a .ddd archive in a directory.
type DirStore struct {
	Dir string
	Log *zap.Logger
}

// NewDirStore creates a store rooted at dir. The directory is created on
// first save.
func NewDirStore(dir string, log *zap.Logger) *DirStore {
	if log == nil {
		log = zap.NewNop()
	}
	return &DirStore{Dir: dir, Log: log}
}

// Path returns the archive path for key. A key that already names a .ddd
// file (absolute or containing a separator) is used as is. Any other key is
// a bare name inside Dir and must pass CheckKey.
func (s *DirStore) Path(key string) (string, error) {
	if explicitPath(key) {
		return key, nil
	}
	if err := CheckKey(key); err != nil {
		return "", err
	}
	return filepath.Join(s.Dir, strings.TrimSuffix(key, Ext)+Ext), nil
}

func explicitPath(key string) bool {
	return strings.HasSuffix(key, Ext) && (filepath.IsAbs(key) || strings.ContainsAny(key, `/\`))
}

// CheckKey rejects bare project names that could resolve outside the store:
// empty names, names with a path separator or "..", and dot-prefixed names,
// which are reserved for in-flight saves.
func CheckKey(key string) error {
	name := strings.TrimSuffix(key, Ext)
	switch {
	case name == "":
		return fmt.Errorf("%w: empty name", ErrInvalidKey)
	case strings.ContainsAny(name, `/\`) || strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidKey, key)
	case strings.Contains(name, ".."):
		return fmt.Errorf("%w: %q contains \"..\"", ErrInvalidKey, key)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidKey, key)
	}
	return nil
}

func (s *DirStore) Save(ctx context.Context, key string, st State) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create project directory: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteArchive(&buf, st); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}

	// Write to a temp file and rename so a failed save never truncates the
	// previous archive.
	tmp, err := os.CreateTemp(filepath.Dir(path), ".save-*"+Ext)
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()
	_, err = tmp.Write(buf.Bytes())
	err = multierr.Append(err, tmp.Close())
	if err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	s.Log.Info("project saved", zap.String("key", key), zap.String("path", path),
		zap.Int("layers", len(st.Layers)), zap.Int("bytes", buf.Len()))
	return nil
}

func (s *DirStore) Load(ctx context.Context, key string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	path, err := s.Path(key)
	if err != nil {
		return State{}, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return State{}, fmt.Errorf("load %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return State{}, fmt.Errorf("load %s: %w", key, err)
	}
	st, err := ReadArchive(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return State{}, fmt.Errorf("load %s: %w", key, err)
	}
	s.Log.Info("project loaded", zap.String("key", key), zap.String("path", path),
		zap.Int("layers", len(st.Layers)))
	return st, nil
}

func (s *DirStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	var keys []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, Ext) || strings.HasPrefix(name, ".") {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, Ext))
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *DirStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}
	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, ErrNotFound)
	}
	return err
}

// MemStore keeps records in memory.
type MemStore struct {
	mu   sync.Mutex
	data map[string]State
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{data: make(map[string]State)}
}

func (m *MemStore) Save(ctx context.Context, key string, s State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !explicitPath(key) {
		if err := CheckKey(key); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = s
	return nil
}

func (m *MemStore) Load(ctx context.Context, key string) (State, error) {
	if err := ctx.Err(); err != nil {
		return State{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.data[key]
	if !ok {
		return State{}, fmt.Errorf("load %s: %w", key, ErrNotFound)
	}
	return s, nil
}

func (m *MemStore) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[key]; !ok {
		return fmt.Errorf("delete %s: %w", key, ErrNotFound)
	}
	delete(m.data, key)
	return nil
}
