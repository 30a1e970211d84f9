package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/report"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

var totalsCmd = &cobra.Command{
	Use:   "totals",
	Short: "Show total net hours and earnings",
	Args:  cobra.NoArgs,
	RunE:  runTotals,
}

var seriesCmd = &cobra.Command{
	Use:   "series",
	Short: "Show hours and earnings per entry start date",
	Args:  cobra.NoArgs,
	RunE:  runSeries,
}

var weeklyFormat string

var weeklyCmd = &cobra.Command{
	Use:   "weekly",
	Short: "Show hours and earnings per ISO week",
	Args:  cobra.NoArgs,
	RunE:  runWeekly,
}

func init() {
	weeklyCmd.Flags().StringVar(&weeklyFormat, "format", "md", "Output format: md, csv, json")
}

func runTotals(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		entries := s.ledger.Entries()
		s.log.Diagnostics(report.Diagnostics(entries))
		t := report.ComputeTotals(entries, s.ledger)

		fmt.Printf("%-16s%s (%s)\n", "Hours", timecalc.FormatHours(t.Hours),
			timecalc.FormatDuration(timecalc.HoursToSeconds(t.Hours)))
		fmt.Printf("%-16s%s\n", "Earnings", formatAmount(t.Earnings))
		return nil
	})
}

func runSeries(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		entries := s.ledger.Entries()
		s.log.Diagnostics(report.Diagnostics(entries))

		n := 0
		for p := range report.DailySeries(entries, s.ledger) {
			fmt.Printf("%s  %6s h  %10s\n", p.Date, timecalc.FormatHours(p.Hours), formatAmount(p.Earnings))
			n++
		}
		if n == 0 {
			fmt.Println("No entries found.")
		}
		return nil
	})
}

func runWeekly(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		entries := s.ledger.Entries()
		s.log.Diagnostics(report.Diagnostics(entries))
		weeks := report.Weekly(entries, s.ledger)
		return printWeekly(weeks, weeklyFormat)
	})
}

func printWeekly(weeks []report.WeekTotal, format string) error {
	var total report.Totals
	for _, w := range weeks {
		total.Hours += w.Hours
		total.Earnings += w.Earnings
	}

	switch format {
	case "csv":
		fmt.Println("week,entries,hours,earnings")
		for _, w := range weeks {
			fmt.Printf("%s,%d,%.2f,%.2f\n", w.Week, w.Entries, w.Hours, w.Earnings)
		}
	case "json":
		data, err := json.MarshalIndent(struct {
			Weeks    []report.WeekTotal `json:"weeks"`
			Hours    float64            `json:"total_hours"`
			Earnings float64            `json:"total_earnings"`
		}{weeks, timecalc.Round2(total.Hours), timecalc.Round2(total.Earnings)}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		fmt.Println(string(data))
	case "md", "":
		fmt.Println("Week        Entries     Hours      Earnings")
		fmt.Println("--------------------------------------------")
		for _, w := range weeks {
			fmt.Printf("%-12s%7d%10s%14s\n", w.Week, w.Entries, timecalc.FormatHours(w.Hours), formatAmount(w.Earnings))
		}
		fmt.Println("--------------------------------------------")
		fmt.Printf("%-19s%10s%14s\n", "Total", timecalc.FormatHours(total.Hours), formatAmount(total.Earnings))
	default:
		return fmt.Errorf("unknown format %q: must be md, csv or json", format)
	}
	return nil
}
