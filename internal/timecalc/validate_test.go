package timecalc_test

import (
	"errors"
	"math"
	"testing"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

func TestValidateSession(t *testing.T) {
	tests := []struct {
		name           string
		sd, st, ed, et string
		wantHours      float64
		wantErr        error
	}{
		{"regular day", "2024-01-01", "09:00", "2024-01-01", "17:00", 8, nil},
		{"overnight", "2024-01-01", "22:00", "2024-01-02", "06:00", 8, nil},
		{"exactly 24h", "2024-01-01", "09:00", "2024-01-02", "09:00", 24, nil},
		{"one minute", "2024-01-01", "09:00", "2024-01-01", "09:01", 1.0 / 60, nil},
		{"over 24h", "2024-01-01", "09:00", "2024-01-02", "09:01", 0, timecalc.ErrDurationTooLong},
		{"end before start", "2024-01-01", "17:00", "2024-01-01", "09:00", 0, timecalc.ErrEndBeforeStart},
		{"zero length", "2024-01-01", "09:00", "2024-01-01", "09:00", 0, timecalc.ErrDurationNonPositive},
		{"bad date", "2024-13-01", "09:00", "2024-01-01", "17:00", 0, timecalc.ErrInvalidFormat},
		{"bad time", "2024-01-01", "9h", "2024-01-01", "17:00", 0, timecalc.ErrInvalidFormat},
		{"empty end", "2024-01-01", "09:00", "", "", 0, timecalc.ErrInvalidFormat},
		{"hour 24", "2024-01-01", "09:00", "2024-01-01", "24:00", 0, timecalc.ErrInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := timecalc.ValidateSession(tt.sd, tt.st, tt.ed, tt.et)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.wantHours) > 1e-9 {
				t.Errorf("hours = %v, want %v", got, tt.wantHours)
			}
		})
	}
}

func TestParseClockAndFormatClock(t *testing.T) {
	mins, err := timecalc.ParseClock("08:45")
	if err != nil {
		t.Fatal(err)
	}
	if mins != 525 {
		t.Errorf("ParseClock = %d, want 525", mins)
	}
	if got := timecalc.FormatClock(525); got != "08:45" {
		t.Errorf("FormatClock = %q, want %q", got, "08:45")
	}
	if _, err := timecalc.ParseClock("25:00"); !errors.Is(err, timecalc.ErrInvalidFormat) {
		t.Errorf("ParseClock(25:00) err = %v, want ErrInvalidFormat", err)
	}
}

func TestSplitClock(t *testing.T) {
	h, m, err := timecalc.SplitClock("12:05")
	if err != nil {
		t.Fatal(err)
	}
	if h != "12" || m != "05" {
		t.Errorf("SplitClock = %q, %q; want 12, 05", h, m)
	}
}

func TestBreakWindowAcceptsUnpaddedComponents(t *testing.T) {
	w, err := timecalc.BreakWindow("2024-01-01", model.BreakConfig{
		Enabled: true, StartHour: "12", StartMinute: "7", EndHour: "13", EndMinute: "0",
	})
	if err != nil {
		t.Fatalf("BreakWindow: %v", err)
	}
	if got := w.Start.Format(timecalc.ClockLayout); got != "12:07" {
		t.Errorf("start = %s, want 12:07", got)
	}
	if got := w.End.Format(timecalc.ClockLayout); got != "13:00" {
		t.Errorf("end = %s, want 13:00", got)
	}
}

func TestBreakWindowRejectsOutOfRange(t *testing.T) {
	cases := []model.BreakConfig{
		{StartHour: "24", StartMinute: "00", EndHour: "13", EndMinute: "00"},
		{StartHour: "12", StartMinute: "60", EndHour: "13", EndMinute: "00"},
		{StartHour: "", StartMinute: "", EndHour: "", EndMinute: ""},
		{StartHour: "-1", StartMinute: "00", EndHour: "13", EndMinute: "00"},
	}
	for _, b := range cases {
		if _, err := timecalc.BreakWindow("2024-01-01", b); !errors.Is(err, timecalc.ErrInvalidFormat) {
			t.Errorf("BreakWindow(%+v) err = %v, want ErrInvalidFormat", b, err)
		}
	}
}
