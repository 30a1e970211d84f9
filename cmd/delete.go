package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/ledger"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more entries",
	Long:  "Delete the entries with the given IDs. Remaining entries are renumbered.",
	RunE:  runDelete,
}

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all entries",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm deleting every entry")
}

func runDelete(cmd *cobra.Command, args []string) error {
	ids := make([]int, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		var removed int
		err := s.mutate(ctx, "delete", func(l *ledger.Ledger) error {
			var err error
			removed, err = l.DeleteEntries(ids)
			return err
		})
		if errors.Is(err, ledger.ErrNoSelection) {
			return fmt.Errorf("%w: give at least one entry id", err)
		}
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d %s.\n", removed, plural(removed, "entry", "entries"))
		return nil
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return errors.New("refusing to delete all entries without --yes")
	}

	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		n := s.ledger.Len()
		err := s.mutate(ctx, "clear", func(l *ledger.Ledger) error {
			l.ClearAll()
			return nil
		})
		if err != nil {
			return err
		}
		fmt.Printf("Deleted all %d %s.\n", n, plural(n, "entry", "entries"))
		return nil
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
