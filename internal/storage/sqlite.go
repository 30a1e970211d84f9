package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"

	applog "github.com/Tiliavir/workhours/internal/log"
	"github.com/Tiliavir/workhours/internal/model"
)

// Keys of the settings table.
const (
	settingHasBreak       = "has_break"
	settingBreakStartHour = "break_start_hour"
	settingBreakStartMin  = "break_start_min"
	settingBreakEndHour   = "break_end_hour"
	settingBreakEndMin    = "break_end_min"
	settingHourlyRate     = "hourly_rate"
)

// SQLiteStore keeps the snapshot in an SQLite database. Every save replaces
// the stored state inside one transaction.
type SQLiteStore struct {
	db   *sql.DB
	path string
	log  *applog.Logger
}

// NewSQLiteStore opens (creating if needed) the database at dbPath and
// applies pending migrations.
func NewSQLiteStore(dbPath string, logger *applog.Logger) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o700); err != nil {
		return nil, persistErr("mkdir", filepath.Dir(dbPath), err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, persistErr("open", dbPath, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, persistErr("ping", dbPath, err)
	}
	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, persistErr("migrate", dbPath, err)
	}

	return &SQLiteStore{db: db, path: dbPath, log: logger}, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Load reads the snapshot. An empty database yields the default categories.
func (s *SQLiteStore) Load(ctx context.Context) (model.Snapshot, error) {
	snap := model.NewSnapshot()

	entries, err := s.loadEntries(ctx)
	if err != nil {
		return model.Snapshot{}, persistErr("read entries", s.path, err)
	}
	snap.Entries = entries

	cats, rates, err := s.loadCategories(ctx)
	if err != nil {
		return model.Snapshot{}, persistErr("read categories", s.path, err)
	}
	if len(cats) > 0 {
		snap.Categories, snap.CategoryRates = cats, rates
	}

	settings, err := s.loadSettings(ctx)
	if err != nil {
		return model.Snapshot{}, persistErr("read settings", s.path, err)
	}
	snap.DefaultBreak = model.BreakConfig{
		Enabled:     settings[settingHasBreak] == "1",
		StartHour:   settings[settingBreakStartHour],
		StartMinute: settings[settingBreakStartMin],
		EndHour:     settings[settingBreakEndHour],
		EndMinute:   settings[settingBreakEndMin],
	}
	if v, ok := settings[settingHourlyRate]; ok {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return model.Snapshot{}, persistErr("decode", s.path, fmt.Errorf("hourly rate %q: %w", v, err))
		}
		snap.HourlyRate = rate
	}

	s.log.Debug("snapshot loaded", applog.FieldPath, s.path, applog.FieldEntries, len(snap.Entries))
	return snap, nil
}

func (s *SQLiteStore) loadEntries(ctx context.Context) ([]model.Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT entry_id, start_date, start_time, end_date, end_time, category, has_break,
		       break_start_hour, break_start_min, break_end_hour, break_end_min
		FROM entries ORDER BY position`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.Entry{}
	for rows.Next() {
		var e model.Entry
		var hasBreak int
		if err := rows.Scan(&e.ID, &e.StartDate, &e.StartTime, &e.EndDate, &e.EndTime, &e.Category, &hasBreak,
			&e.BreakStartHour, &e.BreakStartMin, &e.BreakEndHour, &e.BreakEndMin); err != nil {
			return nil, err
		}
		e.HasBreak = hasBreak == 1
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *SQLiteStore) loadCategories(ctx context.Context) ([]string, map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, rate FROM categories ORDER BY position`)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var cats []string
	rates := map[string]float64{}
	for rows.Next() {
		var name string
		var rate float64
		if err := rows.Scan(&name, &rate); err != nil {
			return nil, nil, err
		}
		cats = append(cats, name)
		rates[name] = rate
	}
	return cats, rates, rows.Err()
}

func (s *SQLiteStore) loadSettings(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key, value FROM settings`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		out[k] = v
	}
	return out, rows.Err()
}

// Save replaces the stored snapshot. On error the database is left as it
// was before the call.
func (s *SQLiteStore) Save(ctx context.Context, snap model.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr("begin", s.path, err)
	}
	defer tx.Rollback()

	if err := writeSnapshot(ctx, tx, snap); err != nil {
		return persistErr("write", s.path, err)
	}
	if err := tx.Commit(); err != nil {
		return persistErr("commit", s.path, err)
	}
	s.log.Debug("snapshot saved", applog.FieldPath, s.path, applog.FieldEntries, len(snap.Entries))
	return nil
}

func writeSnapshot(ctx context.Context, tx *sql.Tx, snap model.Snapshot) error {
	for _, table := range []string{"entries", "categories", "settings"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, e := range snap.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO entries (position, entry_id, start_date, start_time, end_date, end_time, category,
			                     has_break, break_start_hour, break_start_min, break_end_hour, break_end_min)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			i, e.ID, e.StartDate, e.StartTime, e.EndDate, e.EndTime, e.Category,
			boolToInt(e.HasBreak), e.BreakStartHour, e.BreakStartMin, e.BreakEndHour, e.BreakEndMin)
		if err != nil {
			return fmt.Errorf("insert entry %d: %w", e.ID, err)
		}
	}

	for i, name := range snap.Categories {
		if _, err := tx.ExecContext(ctx, `INSERT INTO categories (position, name, rate) VALUES (?, ?, ?)`,
			i, name, snap.CategoryRates[name]); err != nil {
			return fmt.Errorf("insert category %q: %w", name, err)
		}
	}

	b := snap.DefaultBreak
	settings := map[string]string{
		settingHasBreak:       strconv.Itoa(boolToInt(b.Enabled)),
		settingBreakStartHour: b.StartHour,
		settingBreakStartMin:  b.StartMinute,
		settingBreakEndHour:   b.EndHour,
		settingBreakEndMin:    b.EndMinute,
		settingHourlyRate:     strconv.FormatFloat(snap.HourlyRate, 'g', -1, 64),
	}
	for k, v := range settings {
		if _, err := tx.ExecContext(ctx, `INSERT INTO settings (key, value) VALUES (?, ?)`, k, v); err != nil {
			return fmt.Errorf("insert setting %s: %w", k, err)
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
