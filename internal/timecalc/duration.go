package timecalc

import (
	"fmt"

	"github.com/Tiliavir/workhours/internal/model"
)

// DiagnosticKind classifies a problem found while computing a stored entry's
// duration. Diagnostics never abort the computation.
type DiagnosticKind string

const (
	MalformedStoredEntry DiagnosticKind = "malformed_stored_entry"
	MalformedBreak       DiagnosticKind = "malformed_break"
	OversizedBreak       DiagnosticKind = "oversized_break"
	NegativeAfterBreak   DiagnosticKind = "negative_after_break"
)

// Diagnostic describes one recoverable problem with an entry.
type Diagnostic struct {
	EntryID int
	Kind    DiagnosticKind
	Detail  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("entry %d: %s: %s", d.EntryID, d.Kind, d.Detail)
}

// ComputeDuration returns the net worked hours of e, rounded to two decimals.
//
// It never fails. A malformed or out-of-range session yields 0.0, a malformed
// break is ignored, and an oversized break is clamped; each such case is
// reported as a Diagnostic.
func ComputeDuration(e model.Entry) (float64, []Diagnostic) {
	var diags []Diagnostic
	report := func(kind DiagnosticKind, format string, args ...any) {
		diags = append(diags, Diagnostic{EntryID: e.ID, Kind: kind, Detail: fmt.Sprintf(format, args...)})
	}

	session, err := ParseSession(e.StartDate, e.StartTime, e.EndDate, e.EndTime)
	if err != nil {
		report(MalformedStoredEntry, "%v", err)
		return 0, diags
	}
	if session.End.Before(session.Start) {
		report(MalformedStoredEntry, "end %s is before start %s",
			session.End.Format(DateTimeLayout), session.Start.Format(DateTimeLayout))
		return 0, diags
	}
	raw := session.Hours()
	if raw > MaxSessionHours {
		report(MalformedStoredEntry, "raw duration %.2fh exceeds 24h", raw)
		return 0, diags
	}

	if !e.HasBreak {
		return Round2(raw), diags
	}

	brk, err := BreakWindow(e.StartDate, e.Break())
	if err != nil {
		report(MalformedBreak, "%v", err)
		return Round2(raw), diags
	}
	if brk.End.Before(brk.Start) {
		report(MalformedBreak, "break end %s is before break start %s",
			brk.End.Format(ClockLayout), brk.Start.Format(ClockLayout))
		return Round2(raw), diags
	}

	// A break that does not touch the session has no effect.
	if !(brk.Start.Before(session.End) && brk.End.After(session.Start)) {
		return Round2(raw), diags
	}

	if brk.Start.Before(session.Start) {
		brk.Start = session.Start
	}
	if brk.End.After(session.End) {
		brk.End = session.End
	}

	breakHours := brk.Hours()
	if breakHours > raw {
		report(OversizedBreak, "break %.2fh longer than session %.2fh", breakHours, raw)
		breakHours = raw
	}

	net := raw - breakHours
	if net < 0 {
		report(NegativeAfterBreak, "net duration %.2fh after break", net)
		net = 0
	}
	return Round2(net), diags
}

// Hours is ComputeDuration without the diagnostics.
func Hours(e model.Entry) float64 {
	h, _ := ComputeDuration(e)
	return h
}
