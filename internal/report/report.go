// Package report computes read-only views over a set of entries: totals,
// trend series, table rows and the duration audit. Nothing here mutates the
// entries it is given.
package report

import (
	"iter"
	"time"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

// RateTable prices a category. Unknown categories must price at 0.0.
type RateTable interface {
	Rate(category string) float64
	DefaultCategory() string
}

// Totals is the sum of net hours and earnings over a set of entries.
type Totals struct {
	Hours    float64
	Earnings float64
}

// Point is one sample of the trend series.
type Point struct {
	Date     string  `json:"date"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

// WeekTotal aggregates the entries that start in one ISO week.
type WeekTotal struct {
	Week     string  `json:"week"`
	Entries  int     `json:"entries"`
	Hours    float64 `json:"hours"`
	Earnings float64 `json:"earnings"`
}

// ComputeTotals sums net hours and earnings over entries.
func ComputeTotals(entries []model.Entry, rates RateTable) Totals {
	var t Totals
	for _, e := range entries {
		h := timecalc.Hours(e)
		t.Hours += h
		t.Earnings += h * rates.Rate(e.Category)
	}
	return t
}

// DailySeries yields one point per entry, keyed by start date, in the order
// given. Entries sharing a date produce separate points. The sequence is
// computed lazily and can be ranged over any number of times.
func DailySeries(entries []model.Entry, rates RateTable) iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for _, e := range entries {
			h := timecalc.Hours(e)
			if !yield(Point{Date: e.StartDate, Hours: h, Earnings: h * rates.Rate(e.Category)}) {
				return
			}
		}
	}
}

// Weekly groups entries by the ISO week of their start date, in order of
// first appearance. Entries with an unreadable start date are skipped.
func Weekly(entries []model.Entry, rates RateTable) []WeekTotal {
	var out []WeekTotal
	index := map[string]int{}
	for _, e := range entries {
		day, err := time.Parse(timecalc.DateLayout, e.StartDate)
		if err != nil {
			continue
		}
		label := timecalc.ISOWeekLabel(day)
		i, ok := index[label]
		if !ok {
			i = len(out)
			index[label] = i
			out = append(out, WeekTotal{Week: label})
		}
		h := timecalc.Hours(e)
		out[i].Entries++
		out[i].Hours += h
		out[i].Earnings += h * rates.Rate(e.Category)
	}
	return out
}

// Diagnostics collects the duration diagnostics of every entry.
func Diagnostics(entries []model.Entry) []timecalc.Diagnostic {
	var out []timecalc.Diagnostic
	for _, e := range entries {
		_, d := timecalc.ComputeDuration(e)
		out = append(out, d...)
	}
	return out
}
