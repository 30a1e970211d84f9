package timecalc_test

import (
	"testing"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

func entry(sd, st, ed, et string) model.Entry {
	return model.Entry{StartDate: sd, StartTime: st, EndDate: ed, EndTime: et, Category: "Regular"}
}

func withBreak(e model.Entry, sh, sm, eh, em string) model.Entry {
	e.HasBreak = true
	e.BreakStartHour, e.BreakStartMin = sh, sm
	e.BreakEndHour, e.BreakEndMin = eh, em
	return e
}

func TestComputeDuration(t *testing.T) {
	day := entry("2024-01-01", "09:00", "2024-01-01", "17:00")

	tests := []struct {
		name     string
		entry    model.Entry
		want     float64
		wantDiag timecalc.DiagnosticKind
	}{
		{"no break", day, 8, ""},
		{"break inside", withBreak(day, "12", "00", "13", "00"), 7, ""},
		{"break partly before start", withBreak(day, "08", "00", "10", "00"), 7, ""},
		{"break partly after end", withBreak(day, "16", "30", "18", "00"), 7.5, ""},
		{"break before session", withBreak(day, "06", "00", "07", "00"), 8, ""},
		{"break after session", withBreak(day, "18", "00", "19", "00"), 8, ""},
		{"break touching end", withBreak(day, "17", "00", "18", "00"), 8, ""},
		{"break covering session", withBreak(day, "08", "00", "18", "00"), 0, ""},
		{"break flag off ignores fields", func() model.Entry {
			e := withBreak(day, "12", "00", "13", "00")
			e.HasBreak = false
			return e
		}(), 8, ""},
		{"malformed break", withBreak(day, "", "", "13", "00"), 8, timecalc.MalformedBreak},
		{"inverted break", withBreak(day, "13", "00", "12", "00"), 8, timecalc.MalformedBreak},
		{"five minute precision", withBreak(day, "12", "05", "12", "35"), 7.5, ""},
		{"rounded to two decimals", entry("2024-01-01", "09:00", "2024-01-01", "09:10"), 0.17, ""},
		{"overnight", entry("2024-01-01", "22:00", "2024-01-02", "06:00"), 8, ""},
		{"end before start", entry("2024-01-01", "17:00", "2024-01-01", "09:00"), 0, timecalc.MalformedStoredEntry},
		{"over 24h", entry("2024-01-01", "09:00", "2024-01-02", "10:00"), 0, timecalc.MalformedStoredEntry},
		{"unparsable", entry("01/01/2024", "09:00", "2024-01-01", "17:00"), 0, timecalc.MalformedStoredEntry},
		{"zero length", entry("2024-01-01", "09:00", "2024-01-01", "09:00"), 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, diags := timecalc.ComputeDuration(tt.entry)
			if got != tt.want {
				t.Errorf("ComputeDuration = %v, want %v", got, tt.want)
			}
			if tt.wantDiag == "" {
				if len(diags) != 0 {
					t.Errorf("unexpected diagnostics: %v", diags)
				}
				return
			}
			if len(diags) != 1 || diags[0].Kind != tt.wantDiag {
				t.Errorf("diagnostics = %v, want one %s", diags, tt.wantDiag)
			}
		})
	}
}

func TestComputeDurationMidnightBreakAnchoredToStartDate(t *testing.T) {
	// The break is placed on the start date, so a 00:30 break on an overnight
	// session lands before the session and is ignored.
	e := withBreak(entry("2024-01-01", "22:00", "2024-01-02", "06:00"), "00", "30", "01", "00")
	if got := timecalc.Hours(e); got != 8 {
		t.Errorf("Hours = %v, want 8", got)
	}
}

func TestDiagnosticString(t *testing.T) {
	d := timecalc.Diagnostic{EntryID: 3, Kind: timecalc.MalformedBreak, Detail: "bad"}
	if got := d.String(); got != "entry 3: malformed_break: bad" {
		t.Errorf("String = %q", got)
	}
}
