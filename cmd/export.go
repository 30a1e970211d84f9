package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/report"
)

var (
	exportFormat string
	exportWeek   bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export entries to stdout",
	Args:  cobra.NoArgs,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Output format: csv, json, md")
	exportCmd.Flags().BoolVar(&exportWeek, "week", false, "Export only entries starting this week")
}

func runExport(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		entries := s.ledger.Entries()
		if exportWeek {
			entries = inWeek(entries, time.Now())
		}
		rows, diags := report.Rows(entries, s.ledger)
		s.log.Diagnostics(diags)

		switch exportFormat {
		case "json":
			data, err := json.MarshalIndent(rows, "", "  ")
			if err != nil {
				return fmt.Errorf("encoding JSON: %w", err)
			}
			fmt.Println(string(data))
		case "md":
			printList(rows)
		case "csv":
			printCSV(rows)
		default:
			return fmt.Errorf("unknown format %q: must be csv, json or md", exportFormat)
		}
		return nil
	})
}

func printCSV(rows []report.Row) {
	fmt.Println("id,start_date,start_time,break_start,break_end,end_date,end_time,hours,category,amount")
	for _, r := range rows {
		fmt.Println(csvLine(r))
	}
}

func csvLine(r report.Row) string {
	return strconv.Itoa(r.ID) + "," +
		csvEscape(r.StartDate) + "," +
		csvEscape(r.StartTime) + "," +
		csvEscape(r.BreakStart) + "," +
		csvEscape(r.BreakEnd) + "," +
		csvEscape(r.EndDate) + "," +
		csvEscape(r.EndTime) + "," +
		strconv.FormatFloat(r.Hours, 'f', 2, 64) + "," +
		csvEscape(r.Category) + "," +
		strconv.FormatFloat(r.Amount, 'f', 2, 64)
}

// csvEscape wraps a field in quotes if it contains a comma, quote, or newline.
func csvEscape(s string) string {
	needsQuote := false
	for _, c := range s {
		if c == ',' || c == '"' || c == '\n' || c == '\r' {
			needsQuote = true
			break
		}
	}
	if !needsQuote {
		return s
	}
	// Escape internal double quotes by doubling them.
	escaped := ""
	for _, c := range s {
		if c == '"' {
			escaped += "\""
		}
		escaped += string(c)
	}
	return `"` + escaped + `"`
}
