package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/Tiliavir/workhours/internal/config"
	"github.com/Tiliavir/workhours/internal/ledger"
	applog "github.com/Tiliavir/workhours/internal/log"
	"github.com/Tiliavir/workhours/internal/storage"
)

// session is the state one command invocation works on: the loaded ledger
// and the store it came from.
type session struct {
	log    *applog.Logger
	store  storage.Store
	ledger *ledger.Ledger
}

// openSession loads the configuration, opens the configured store and reads
// the ledger from it.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, err := applog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := applog.New(applog.Config{
		Level:     level,
		Component: applog.ComponentApp,
		Output:    os.Stderr,
	})
	applog.SetDefault(logger)

	store, err := storage.Open(cfg.Storage, logger)
	if err != nil {
		return nil, err
	}
	snap, err := store.Load(ctx)
	if err != nil {
		store.Close()
		return nil, err
	}

	l := ledger.FromSnapshot(snap)
	logger.WithComponent(applog.ComponentLedger).Debug("ledger loaded",
		applog.FieldBackend, cfg.Storage.Backend,
		applog.FieldEntries, l.Len())
	return &session{log: logger, store: store, ledger: l}, nil
}

func (s *session) Close() {
	if err := s.store.Close(); err != nil {
		s.log.Warn("closing store", applog.FieldError, err)
	}
}

// mutate applies op to a copy of the ledger and persists the result. The
// session's ledger is only replaced once the save succeeded, so a failed
// operation or save leaves it untouched.
func (s *session) mutate(ctx context.Context, operation string, op func(*ledger.Ledger) error) error {
	next := s.ledger.Clone()
	if err := op(next); err != nil {
		return err
	}
	if err := s.store.Save(ctx, next.Snapshot()); err != nil {
		s.log.Error("save failed", applog.FieldOperation, operation, applog.FieldError, err)
		return err
	}
	s.ledger = next
	s.log.Info("saved", applog.FieldOperation, operation, applog.FieldEntries, next.Len())
	return nil
}

// withSession opens a session, runs fn and closes the session again.
func withSession(ctx context.Context, fn func(*session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", arg)
	}
	return id, nil
}
