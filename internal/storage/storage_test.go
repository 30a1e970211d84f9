package storage_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Tiliavir/workhours/internal/config"
	applog "github.com/Tiliavir/workhours/internal/log"
	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/storage"
)

func quietLogger() *applog.Logger {
	cfg := applog.DefaultConfig()
	cfg.Output = io.Discard
	return applog.New(cfg)
}

func sampleSnapshot() model.Snapshot {
	s := model.NewSnapshot()
	s.Entries = []model.Entry{
		{ID: 1, StartDate: "2024-03-01", StartTime: "09:00", EndDate: "2024-03-01", EndTime: "17:00", Category: "Regular",
			HasBreak: true, BreakStartHour: "12", BreakStartMin: "00", BreakEndHour: "12", BreakEndMin: "30"},
		{ID: 2, StartDate: "2024-03-02", StartTime: "22:00", EndDate: "2024-03-03", EndTime: "06:00", Category: "Night shift"},
	}
	s.Categories = []string{"Regular", "Night shift", "On call"}
	s.CategoryRates = map[string]float64{"Regular": 20, "Night shift": 27.5, "On call": 0}
	s.DefaultBreak = model.BreakConfig{Enabled: true, StartHour: "12", StartMinute: "00", EndHour: "12", EndMinute: "45"}
	s.HourlyRate = 18.25
	return s
}

func TestJSONStoreMissingFile(t *testing.T) {
	st := storage.NewJSONStore(filepath.Join(t.TempDir(), "data.json"), quietLogger())
	snap, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
	if len(snap.Entries) != 0 {
		t.Errorf("entries = %d, want 0", len(snap.Entries))
	}
	if !reflect.DeepEqual(snap.Categories, model.DefaultCategories) {
		t.Errorf("categories = %v, want defaults", snap.Categories)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "data.json")
	st := storage.NewJSONStore(path, quietLogger())
	want := sampleSnapshot()

	if err := st.Save(context.Background(), want); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte("{bad json"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := storage.NewJSONStore(path, quietLogger()).Load(context.Background())
	if err == nil {
		t.Fatal("expected error for corrupt JSON, got nil")
	}
	if !errors.Is(err, storage.ErrPersistence) {
		t.Errorf("err = %v, want ErrPersistence", err)
	}
	var pe *storage.PersistenceError
	if !errors.As(err, &pe) || pe.Op != "decode" {
		t.Errorf("err = %#v, want decode PersistenceError", err)
	}
	if _, err := os.Stat(path + ".corrupt"); err != nil {
		t.Errorf("expected backup file: %v", err)
	}
}

func TestJSONStoreSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o600); err != nil {
		t.Fatal(err)
	}
	// The parent of the data file is a regular file, so mkdir fails.
	st := storage.NewJSONStore(filepath.Join(blocker, "data.json"), quietLogger())
	err := st.Save(context.Background(), sampleSnapshot())
	if !errors.Is(err, storage.ErrPersistence) {
		t.Errorf("err = %v, want ErrPersistence", err)
	}
}

func TestSQLiteStoreEmpty(t *testing.T) {
	st, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "wh.db"), quietLogger())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	defer st.Close()

	snap, err := st.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(snap, model.NewSnapshot()) {
		t.Errorf("empty database snapshot = %+v", snap)
	}
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wh.db")
	st, err := storage.NewSQLiteStore(path, quietLogger())
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	ctx := context.Background()
	want := sampleSnapshot()

	// Save twice; the second save must replace, not append.
	for range 2 {
		if err := st.Save(ctx, want); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := st.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen to make sure the data survives and migrations are idempotent.
	st, err = storage.NewSQLiteStore(path, quietLogger())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer st.Close()

	got, err := st.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSQLiteStoreSaveFailureKeepsState(t *testing.T) {
	st, err := storage.NewSQLiteStore(filepath.Join(t.TempDir(), "wh.db"), quietLogger())
	if err != nil {
		t.Fatal(err)
	}
	defer st.Close()
	ctx := context.Background()

	want := sampleSnapshot()
	if err := st.Save(ctx, want); err != nil {
		t.Fatal(err)
	}

	bad := sampleSnapshot()
	bad.Entries = nil
	bad.Categories = []string{"Dup", "Dup"}
	err = st.Save(ctx, bad)
	if !errors.Is(err, storage.ErrPersistence) {
		t.Fatalf("err = %v, want ErrPersistence", err)
	}

	got, err := st.Load(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("failed save changed stored state: %+v", got)
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		cfg     config.StorageConfig
		want    string
		wantErr bool
	}{
		{"json", config.StorageConfig{Backend: config.BackendJSON, DataFile: filepath.Join(dir, "d.json")}, "*storage.JSONStore", false},
		{"sqlite", config.StorageConfig{Backend: config.BackendSQLite, SQLitePath: filepath.Join(dir, "d.db")}, "*storage.SQLiteStore", false},
		{"unknown", config.StorageConfig{Backend: "csv"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := storage.Open(tt.cfg, quietLogger())
			if (err != nil) != tt.wantErr {
				t.Fatalf("Open() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer st.Close()
			if got := reflect.TypeOf(st).String(); got != tt.want {
				t.Errorf("Open() type = %s, want %s", got, tt.want)
			}
		})
	}
}
