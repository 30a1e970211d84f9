package report

import (
	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

// Row is the computed view of one entry for table display and export.
type Row struct {
	ID         int     `json:"id"`
	StartDate  string  `json:"start_date"`
	StartTime  string  `json:"start_time"`
	BreakStart string  `json:"break_start"`
	BreakEnd   string  `json:"break_end"`
	EndDate    string  `json:"end_date"`
	EndTime    string  `json:"end_time"`
	Hours      float64 `json:"hours"`
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
}

// Rows builds one Row per entry along with any diagnostics raised while
// computing durations.
func Rows(entries []model.Entry, rates RateTable) ([]Row, []timecalc.Diagnostic) {
	rows := make([]Row, 0, len(entries))
	var diags []timecalc.Diagnostic
	for _, e := range entries {
		h, d := timecalc.ComputeDuration(e)
		diags = append(diags, d...)

		cat := e.Category
		if cat == "" {
			cat = rates.DefaultCategory()
		}
		r := Row{
			ID:        e.ID,
			StartDate: e.StartDate,
			StartTime: e.StartTime,
			EndDate:   e.EndDate,
			EndTime:   e.EndTime,
			Hours:     h,
			Category:  cat,
			Amount:    h * rates.Rate(cat),
		}
		if e.HasBreak {
			r.BreakStart = e.BreakStartHour + ":" + e.BreakStartMin
			r.BreakEnd = e.BreakEndHour + ":" + e.BreakEndMin
		}
		rows = append(rows, r)
	}
	return rows, diags
}
