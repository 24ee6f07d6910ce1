package memory

import (
	"context"
	"sync"

	"github.com/avstrong/hotel/internal/logger"
)

type Config struct {
	L *logger.Logger
}

// DB is a process-local key-value slot. Values are lost on exit.
type DB struct {
	mu     sync.Mutex
	l      *logger.Logger
	values map[string]string
	writes int
}

func New(conf Config) *DB {
	//nolint:exhaustruct
	return &DB{
		l:      conf.L,
		values: make(map[string]string),
	}
}

func (db *DB) Get(_ context.Context, key string) (string, bool, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	v, ok := db.values[key]

	return v, ok, nil
}

func (db *DB) Set(_ context.Context, key, value string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.values[key] = value
	db.writes++

	if db.l != nil {
		db.l.LogDebugf("memory slot %q rewritten (%d bytes)", key, len(value))
	}

	return nil
}

// Writes counts Set calls since creation.
func (db *DB) Writes() int {
	db.mu.Lock()
	defer db.mu.Unlock()

	return db.writes
}
