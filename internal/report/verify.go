package report

import (
	"fmt"
	"math"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

// IssueKind classifies a finding of the duration audit.
type IssueKind string

const (
	IssueUnreadable       IssueKind = "unreadable"
	IssueRawNonPositive   IssueKind = "raw_non_positive"
	IssueRawTooLong       IssueKind = "raw_too_long"
	IssueFinalNonPositive IssueKind = "final_non_positive"
	IssueBreakDrift       IssueKind = "break_drift"
)

// MaxBreakDrift is the largest accepted gap, in hours, between raw and net
// duration before the audit flags an entry.
const MaxBreakDrift = 2.0

// Issue is one audit finding.
type Issue struct {
	EntryID int
	Kind    IssueKind
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("Entry %d: %s", i.EntryID, i.Message)
}

// Audit is the result of Verify.
type Audit struct {
	TotalHours float64
	Issues     []Issue
}

// Messages returns the issues as display strings.
func (a Audit) Messages() []string {
	out := make([]string, len(a.Issues))
	for i, is := range a.Issues {
		out[i] = is.String()
	}
	return out
}

// Verify checks every entry's durations and reports at most one issue per
// entry, the first that applies in this order: unreadable dates, raw
// duration <= 0, raw duration > 24h, net duration <= 0, and a gap of more
// than two hours between raw and net duration. TotalHours sums the net
// duration of every readable entry.
func Verify(entries []model.Entry) Audit {
	var a Audit
	for _, e := range entries {
		s, err := timecalc.ParseSession(e.StartDate, e.StartTime, e.EndDate, e.EndTime)
		if err != nil {
			a.Issues = append(a.Issues, Issue{e.ID, IssueUnreadable,
				fmt.Sprintf("could not be verified - %v", err)})
			continue
		}
		raw := s.Hours()
		final := timecalc.Hours(e)

		switch {
		case raw <= 0:
			a.Issues = append(a.Issues, Issue{e.ID, IssueRawNonPositive,
				fmt.Sprintf("invalid raw duration (%.2fh)", raw)})
		case raw > timecalc.MaxSessionHours:
			a.Issues = append(a.Issues, Issue{e.ID, IssueRawTooLong,
				fmt.Sprintf("raw duration exceeds 24h (%.2fh)", raw)})
		case final <= 0:
			a.Issues = append(a.Issues, Issue{e.ID, IssueFinalNonPositive,
				fmt.Sprintf("net duration is zero or negative (%.2fh)", final)})
		case math.Abs(final-raw) > MaxBreakDrift:
			a.Issues = append(a.Issues, Issue{e.ID, IssueBreakDrift,
				fmt.Sprintf("large gap between raw (%.2fh) and net (%.2fh) duration", raw, final)})
		}
		a.TotalHours += final
	}
	return a
}
