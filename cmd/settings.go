package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/ledger"
	"github.com/Tiliavir/workhours/internal/model"
)

var rateCmd = &cobra.Command{
	Use:   "rate [value]",
	Short: "Show or set the default hourly rate",
	Long:  "Show or set the default hourly rate. Negative values are stored as 0.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRate,
}

var (
	breakStart   string
	breakEnd     string
	breakEnable  bool
	breakDisable bool
)

var breakCmd = &cobra.Command{
	Use:   "break",
	Short: "Show or change the default break",
	Long: `Show or change the default break offered for new entries.
Without flags the current setting is printed.`,
	Args: cobra.NoArgs,
	RunE: runBreak,
}

func init() {
	breakCmd.Flags().StringVar(&breakStart, "start", "", "Break start (HH:MM)")
	breakCmd.Flags().StringVar(&breakEnd, "end", "", "Break end (HH:MM)")
	breakCmd.Flags().BoolVar(&breakEnable, "enable", false, "Apply the break to new entries")
	breakCmd.Flags().BoolVar(&breakDisable, "disable", false, "Do not apply the break to new entries")
	breakCmd.MarkFlagsMutuallyExclusive("enable", "disable")
	breakCmd.MarkFlagsRequiredTogether("start", "end")
}

func runRate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		if len(args) == 0 {
			fmt.Printf("Default hourly rate: %s\n", formatAmount(s.ledger.HourlyRate()))
			return nil
		}
		rate, err := parseRate(args[0])
		if err != nil {
			return err
		}
		var stored float64
		err = s.mutate(ctx, "rate", func(l *ledger.Ledger) error {
			stored = l.SetDefaultRate(rate)
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("Default hourly rate set to %s.\n", formatAmount(stored))
		return nil
	})
}

func runBreak(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		b := s.ledger.DefaultBreak()
		changed := cmd.Flags().Changed
		if !changed("start") && !changed("enable") && !changed("disable") {
			fmt.Println(describeBreak(b))
			return nil
		}

		// Setting new times enables the break unless --disable is given.
		if changed("start") {
			nb, err := breakFromClocks(breakStart, breakEnd)
			if err != nil {
				return err
			}
			b = nb
		}
		switch {
		case breakEnable:
			b.Enabled = true
		case breakDisable:
			b.Enabled = false
		}

		err := s.mutate(ctx, "break", func(l *ledger.Ledger) error {
			return l.SetDefaultBreak(b)
		})
		if err != nil {
			return err
		}
		fmt.Println(describeBreak(b))
		return nil
	})
}

func describeBreak(b model.BreakConfig) string {
	if b.StartHour == "" {
		return "No default break configured."
	}
	state := "disabled"
	if b.Enabled {
		state = "enabled"
	}
	return fmt.Sprintf("Default break %s:%s–%s:%s (%s)", b.StartHour, b.StartMinute, b.EndHour, b.EndMinute, state)
}
