package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/ledger"
	"github.com/Tiliavir/workhours/internal/model"
	"github.com/Tiliavir/workhours/internal/suggest"
	"github.com/Tiliavir/workhours/internal/timecalc"
)

// entryFlags are the form fields shared by add and edit.
type entryFlags struct {
	startDate  string
	startTime  string
	endDate    string
	endTime    string
	category   string
	useBreak   bool
	noBreak    bool
	breakStart string
	breakEnd   string
}

func (f *entryFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.startDate, "start-date", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.startTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&f.endDate, "end-date", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.endTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&f.category, "category", "", "Category (default: first category)")
	cmd.Flags().BoolVar(&f.useBreak, "break", false, "Apply the default break")
	cmd.Flags().BoolVar(&f.noBreak, "no-break", false, "Record no break")
	cmd.Flags().StringVar(&f.breakStart, "break-start", "", "Break start (HH:MM)")
	cmd.Flags().StringVar(&f.breakEnd, "break-end", "", "Break end (HH:MM)")
	cmd.MarkFlagsMutuallyExclusive("break", "no-break")
	cmd.MarkFlagsMutuallyExclusive("no-break", "break-start")
	cmd.MarkFlagsMutuallyExclusive("no-break", "break-end")
	cmd.MarkFlagsRequiredTogether("break-start", "break-end")
}

// apply overwrites the fields of base whose flags were set on cmd.
func (f *entryFlags) apply(cmd *cobra.Command, base model.Fields, defaultBreak model.BreakConfig) (model.Fields, error) {
	changed := cmd.Flags().Changed
	if changed("start-date") {
		base.StartDate = f.startDate
	}
	if changed("start") {
		base.StartTime = f.startTime
	}
	if changed("end-date") {
		base.EndDate = f.endDate
	}
	if changed("end") {
		base.EndTime = f.endTime
	}
	if changed("category") {
		base.Category = f.category
	}

	switch {
	case f.noBreak:
		base.Break = model.BreakConfig{}
	case changed("break-start"):
		b, err := breakFromClocks(f.breakStart, f.breakEnd)
		if err != nil {
			return base, err
		}
		base.Break = b
	case f.useBreak:
		if defaultBreak.StartHour == "" {
			return base, errors.New("no default break configured; set one with 'wh break --start HH:MM --end HH:MM'")
		}
		base.Break = defaultBreak
		base.Break.Enabled = true
	}
	return base, nil
}

// breakFromClocks builds an enabled break from two HH:MM values.
func breakFromClocks(start, end string) (model.BreakConfig, error) {
	sh, sm, err := timecalc.SplitClock(start)
	if err != nil {
		return model.BreakConfig{}, fmt.Errorf("break start: %w", err)
	}
	eh, em, err := timecalc.SplitClock(end)
	if err != nil {
		return model.BreakConfig{}, fmt.Errorf("break end: %w", err)
	}
	return model.BreakConfig{Enabled: true, StartHour: sh, StartMinute: sm, EndHour: eh, EndMinute: em}, nil
}

var addFlags entryFlags

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a work session",
	Long: `Record a work session. Fields that are not given default to a suggestion
based on the most recent entries: the day after the latest entry, with start
and end times averaged over the last five sessions. The default break is
applied when it is enabled.`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

func init() {
	addFlags.register(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		sug := suggest.Next(s.ledger.Entries(), time.Now())
		base := model.Fields{
			StartDate: sug.StartDate,
			StartTime: sug.StartTime,
			EndDate:   sug.EndDate,
			EndTime:   sug.EndTime,
		}
		if def := s.ledger.DefaultBreak(); def.Enabled {
			base.Break = def
		}

		fields, err := addFlags.apply(cmd, base, s.ledger.DefaultBreak())
		if err != nil {
			return err
		}

		var added model.Entry
		err = s.mutate(ctx, "add", func(l *ledger.Ledger) error {
			var err error
			added, err = l.AddEntry(fields)
			return err
		})
		if err != nil {
			return err
		}

		fmt.Printf("Added entry %d: %s\n", added.ID, describeEntry(s, added))
		return nil
	})
}

// describeEntry renders a one-line summary of e including its net hours.
func describeEntry(s *session, e model.Entry) string {
	hours, diags := timecalc.ComputeDuration(e)
	s.log.Diagnostics(diags)
	category := e.Category
	if category == "" {
		category = s.ledger.DefaultCategory()
	}
	brk := ""
	if e.HasBreak {
		brk = fmt.Sprintf(", break %s:%s–%s:%s", e.BreakStartHour, e.BreakStartMin, e.BreakEndHour, e.BreakEndMin)
	}
	return fmt.Sprintf("%s %s → %s %s (%s h%s, %s)",
		e.StartDate, e.StartTime, e.EndDate, e.EndTime,
		timecalc.FormatHours(hours), brk, category)
}
