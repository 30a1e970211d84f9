package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	applog "github.com/Tiliavir/workhours/internal/log"
	"github.com/Tiliavir/workhours/internal/model"
)

// dataFile is the on-disk layout of the JSON backend. The default break is
// stored flat next to the entries.
type dataFile struct {
	Entries        []model.Entry      `json:"entries"`
	Categories     []string           `json:"categories"`
	CategoryRates  map[string]float64 `json:"category_rates"`
	HasBreak       bool               `json:"has_break"`
	BreakStartHour string             `json:"break_start_hour"`
	BreakStartMin  string             `json:"break_start_min"`
	BreakEndHour   string             `json:"break_end_hour"`
	BreakEndMin    string             `json:"break_end_min"`
	HourlyRate     float64            `json:"hourly_rate"`
}

func toDataFile(s model.Snapshot) dataFile {
	entries := s.Entries
	if entries == nil {
		entries = []model.Entry{}
	}
	return dataFile{
		Entries:        entries,
		Categories:     s.Categories,
		CategoryRates:  s.CategoryRates,
		HasBreak:       s.DefaultBreak.Enabled,
		BreakStartHour: s.DefaultBreak.StartHour,
		BreakStartMin:  s.DefaultBreak.StartMinute,
		BreakEndHour:   s.DefaultBreak.EndHour,
		BreakEndMin:    s.DefaultBreak.EndMinute,
		HourlyRate:     s.HourlyRate,
	}
}

func (df dataFile) snapshot() model.Snapshot {
	s := model.NewSnapshot()
	if df.Entries != nil {
		s.Entries = df.Entries
	}
	if len(df.Categories) > 0 {
		s.Categories = df.Categories
		s.CategoryRates = df.CategoryRates
	}
	if s.CategoryRates == nil {
		s.CategoryRates = map[string]float64{}
	}
	s.DefaultBreak = model.BreakConfig{
		Enabled:     df.HasBreak,
		StartHour:   df.BreakStartHour,
		StartMinute: df.BreakStartMin,
		EndHour:     df.BreakEndHour,
		EndMinute:   df.BreakEndMin,
	}
	s.HourlyRate = df.HourlyRate
	return s
}

// JSONStore keeps the snapshot in a single JSON file.
type JSONStore struct {
	path string
	log  *applog.Logger
}

// NewJSONStore returns a store backed by the file at path. The file is
// created on first save.
func NewJSONStore(path string, logger *applog.Logger) *JSONStore {
	return &JSONStore{path: path, log: logger}
}

// Path returns the data file location.
func (s *JSONStore) Path() string { return s.path }

// Load reads the snapshot. A missing file yields an empty snapshot with the
// default categories. A file that is not valid JSON is moved aside to
// <path>.corrupt and reported as an error.
func (s *JSONStore) Load(_ context.Context) (model.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.log.Debug("no data file yet", applog.FieldPath, s.path)
		return model.NewSnapshot(), nil
	}
	if err != nil {
		return model.Snapshot{}, persistErr("read", s.path, err)
	}

	var df dataFile
	if err := json.Unmarshal(data, &df); err != nil {
		// Back up corrupt file and abort.
		backupPath := s.path + ".corrupt"
		_ = os.Rename(s.path, backupPath)
		s.log.Error("corrupt data file moved aside", applog.FieldPath, backupPath, applog.FieldError, err)
		return model.Snapshot{}, persistErr("decode", s.path, fmt.Errorf("corrupt JSON (backed up to %s): %w", backupPath, err))
	}

	snap := df.snapshot()
	s.log.Debug("snapshot loaded", applog.FieldPath, s.path, applog.FieldEntries, len(snap.Entries))
	return snap, nil
}

// Save atomically writes the snapshot.
func (s *JSONStore) Save(_ context.Context, snap model.Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return persistErr("mkdir", filepath.Dir(s.path), err)
	}

	data, err := json.MarshalIndent(toDataFile(snap), "", "  ")
	if err != nil {
		return persistErr("encode", s.path, err)
	}

	// Atomic write: write to temp file then rename.
	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return persistErr("write", tmpPath, err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return persistErr("rename", s.path, err)
	}
	s.log.Debug("snapshot saved", applog.FieldPath, s.path, applog.FieldEntries, len(snap.Entries))
	return nil
}

// Close is a no-op; the JSON store holds no open handles.
func (s *JSONStore) Close() error { return nil }
