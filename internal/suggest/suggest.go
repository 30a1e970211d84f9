// Package suggest proposes default dates and times for the next entry based
// on recent history. Suggestions are hints only and must still be validated.
package suggest

import (
	"math"
	"sort"
	"time"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

const (
	DefaultStart = "09:00"
	DefaultEnd   = "17:00"

	// Window is how many of the most recent entries are averaged.
	Window = 5
)

// Suggestion holds proposed form values for a new entry.
type Suggestion struct {
	StartDate string
	StartTime string
	EndDate   string
	EndTime   string
}

// Next suggests the day after the most recent entry, with start and end times
// averaged over the last Window entries. With no usable history it proposes
// today from 09:00 to 17:00. Entries whose start cannot be parsed are ignored.
func Next(entries []model.Entry, now time.Time) Suggestion {
	type dated struct {
		entry model.Entry
		start time.Time
	}
	var recent []dated
	for _, e := range entries {
		t, err := timecalc.ParseDateTime(e.StartDate, e.StartTime)
		if err != nil {
			continue
		}
		recent = append(recent, dated{e, t})
	}
	if len(recent) == 0 {
		today := now.Format(timecalc.DateLayout)
		return Suggestion{StartDate: today, StartTime: DefaultStart, EndDate: today, EndTime: DefaultEnd}
	}

	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].start.After(recent[j].start)
	})
	if len(recent) > Window {
		recent = recent[:Window]
	}

	date := recent[0].start.AddDate(0, 0, 1).Format(timecalc.DateLayout)

	var startSum, endSum, endCount int
	for _, d := range recent {
		startSum += d.start.Hour()*60 + d.start.Minute()
		if m, err := timecalc.ParseClock(d.entry.EndTime); err == nil {
			endSum += m
			endCount++
		}
	}

	s := Suggestion{
		StartDate: date,
		StartTime: averageClock(startSum, len(recent)),
		EndDate:   date,
		EndTime:   DefaultEnd,
	}
	if endCount > 0 {
		s.EndTime = averageClock(endSum, endCount)
	}
	return s
}

func averageClock(sum, n int) string {
	return timecalc.FormatClock(int(math.Round(float64(sum) / float64(n))))
}
