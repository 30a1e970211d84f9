package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/suggest"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Show the values 'wh add' would use by default",
	Args:  cobra.NoArgs,
	RunE:  runSuggest,
}

func runSuggest(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		sug := suggest.Next(s.ledger.Entries(), time.Now())
		fmt.Printf("Start: %s %s\n", sug.StartDate, sug.StartTime)
		fmt.Printf("End:   %s %s\n", sug.EndDate, sug.EndTime)
		if b := s.ledger.DefaultBreak(); b.Enabled {
			fmt.Printf("Break: %s:%s–%s:%s\n", b.StartHour, b.StartMinute, b.EndHour, b.EndMinute)
		}
		return nil
	})
}
