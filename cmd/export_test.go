package cmd

import (
	"testing"

	"github.com/Tiliavir/workhours/internal/report"
)

func TestCsvEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"with space", "with space"},
		{"with,comma", `"with,comma"`},
		{`with"quote`, `"with""quote"`},
		{"with\nnewline", "\"with\nnewline\""},
		{"with\rreturn", "\"with\rreturn\""},
		{"", ""},
	}
	for _, tt := range tests {
		got := csvEscape(tt.input)
		if got != tt.want {
			t.Errorf("csvEscape(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestCsvLine(t *testing.T) {
	r := report.Row{
		ID: 3, StartDate: "2024-03-01", StartTime: "09:00", BreakStart: "12:00", BreakEnd: "12:30",
		EndDate: "2024-03-01", EndTime: "17:00", Hours: 7.5, Category: "Night, late", Amount: 150,
	}
	want := `3,2024-03-01,09:00,12:00,12:30,2024-03-01,17:00,7.50,"Night, late",150.00`
	if got := csvLine(r); got != want {
		t.Errorf("csvLine = %q, want %q", got, want)
	}
}
