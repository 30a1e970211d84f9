package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/ledger"
	"github.com/Tiliavir/workhours/internal/model"
)

var editFlags entryFlags

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an existing entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

func init() {
	editFlags.register(editCmd)
}

func runEdit(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		current, err := s.ledger.Entry(id)
		if err != nil {
			return err
		}
		fields, err := editFlags.apply(cmd, current.Fields(), s.ledger.DefaultBreak())
		if err != nil {
			return err
		}

		var edited model.Entry
		err = s.mutate(ctx, "edit", func(l *ledger.Ledger) error {
			var err error
			edited, err = l.EditEntry(id, fields)
			return err
		})
		if err != nil {
			return err
		}

		if edited.ID != id {
			fmt.Printf("Updated entry %d (now %d): %s\n", id, edited.ID, describeEntry(s, edited))
		} else {
			fmt.Printf("Updated entry %d: %s\n", id, describeEntry(s, edited))
		}
		return nil
	})
}
