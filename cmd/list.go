package cmd

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/report"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

var listWeek bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List entries with their net hours and amounts",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().BoolVar(&listWeek, "week", false, "Show only entries starting this week")
}

func runList(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		entries := s.ledger.Entries()
		if listWeek {
			entries = inWeek(entries, time.Now())
		}
		rows, diags := report.Rows(entries, s.ledger)
		s.log.Diagnostics(diags)
		printList(rows)
		return nil
	})
}

// inWeek keeps the entries whose start date falls in the ISO week of now.
func inWeek(entries []model.Entry, now time.Time) []model.Entry {
	from, to := timecalc.WeekRange(now)
	lo, hi := from.Format(timecalc.DateLayout), to.Format(timecalc.DateLayout)
	var out []model.Entry
	for _, e := range entries {
		if e.StartDate >= lo && e.StartDate <= hi {
			out = append(out, e)
		}
	}
	return out
}

// printList groups rows by start date and prints them.
func printList(rows []report.Row) {
	if len(rows) == 0 {
		fmt.Println("No entries found.")
		return
	}

	var currentDay string
	for _, r := range rows {
		if r.StartDate != currentDay {
			fmt.Println(r.StartDate)
			currentDay = r.StartDate
		}

		end := r.EndTime
		if r.EndDate != r.StartDate {
			end = r.EndDate + " " + r.EndTime
		}
		brk := ""
		if r.BreakStart != "" {
			brk = fmt.Sprintf("  break %s–%s", r.BreakStart, r.BreakEnd)
		}

		fmt.Printf("%4d  %s–%s  %-12s %6s h  %10s%s\n",
			r.ID, r.StartTime, end, r.Category, timecalc.FormatHours(r.Hours), formatAmount(r.Amount), brk)
	}
}

// formatAmount renders a monetary amount with thousands separators and two
// decimals.
func formatAmount(v float64) string {
	return humanize.FormatFloat("#,###.##", v)
}
