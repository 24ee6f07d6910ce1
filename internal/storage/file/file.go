package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

const filePerm = 0o600

var (
	ErrInvalidKey = errors.New("invalid slot key")

	keyPattern = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
)

type Config struct {
	Dir string
}

// DB keeps one file per key under Dir. Each Set rewrites the whole file in
// place; a crash mid-write can leave a truncated value, which loaders treat
// as malformed.
type DB struct {
	mu  sync.Mutex
	dir string
}

func New(conf Config) (*DB, error) {
	if err := os.MkdirAll(conf.Dir, 0o755); err != nil { //nolint:gomnd
		return nil, fmt.Errorf("create slot directory %s: %w", conf.Dir, err)
	}

	return &DB{dir: conf.Dir}, nil
}

func (db *DB) path(key string) (string, error) {
	if !keyPattern.MatchString(key) {
		return "", fmt.Errorf("key %q: %w", key, ErrInvalidKey)
	}

	return filepath.Join(db.dir, key+".json"), nil
}

func (db *DB) Get(_ context.Context, key string) (string, bool, error) {
	p, err := db.path(key)
	if err != nil {
		return "", false, err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("read slot %s: %w", key, err)
	}

	return string(b), true, nil
}

func (db *DB) Set(_ context.Context, key, value string) error {
	p, err := db.path(key)
	if err != nil {
		return err
	}

	db.mu.Lock()
	defer db.mu.Unlock()

	if err := os.WriteFile(p, []byte(value), filePerm); err != nil {
		return fmt.Errorf("write slot %s: %w", key, err)
	}

	return nil
}
