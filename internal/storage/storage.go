// Package storage persists ledger snapshots. Two backends are provided: a
// single JSON file and an SQLite database. Both report every failure as a
// *PersistenceError and never modify the snapshot they are given.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tiliavir/workhours/internal/config"
	applog "github.com/Tiliavir/workhours/internal/log"
	"github.com/Tiliavir/workhours/internal/model"
)

// Store loads and saves the full snapshot.
type Store interface {
	Load(ctx context.Context) (model.Snapshot, error)
	Save(ctx context.Context, s model.Snapshot) error
	Close() error
}

// ErrPersistence matches every *PersistenceError via errors.Is.
var ErrPersistence = errors.New("persistence error")

// PersistenceError wraps a read, write or decode failure of a backend.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("storage error %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Err}
}

func persistErr(op, path string, err error) error {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

// Open returns the backend selected by cfg.
func Open(cfg config.StorageConfig, logger *applog.Logger) (Store, error) {
	logger = logger.WithComponent(applog.ComponentStorage)
	switch cfg.Backend {
	case config.BackendJSON, "":
		return NewJSONStore(cfg.DataFile, logger), nil
	case config.BackendSQLite:
		return NewSQLiteStore(cfg.SQLitePath, logger)
	}
	return nil, persistErr("open", cfg.Backend, fmt.Errorf("unknown backend %q", cfg.Backend))
}
