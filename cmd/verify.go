package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/report"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check every entry's duration for suspicious values",
	Args:  cobra.NoArgs,
	RunE:  runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		audit := report.Verify(s.ledger.Entries())

		fmt.Printf("Verified %d %s, %s h in total.\n", s.ledger.Len(),
			plural(s.ledger.Len(), "entry", "entries"), timecalc.FormatHours(audit.TotalHours))
		if len(audit.Issues) == 0 {
			fmt.Println("No issues found.")
			return nil
		}
		fmt.Printf("%d %s:\n", len(audit.Issues), plural(len(audit.Issues), "issue", "issues"))
		for _, msg := range audit.Messages() {
			fmt.Println("  " + msg)
		}
		return nil
	})
}
