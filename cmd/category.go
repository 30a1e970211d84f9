package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/ledger"
)

var categoryAddRate float64

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Manage categories and their hourly rates",
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with their rates",
	Args:  cobra.NoArgs,
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a category",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryAdd,
}

var categoryRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a category; entries using it are priced at 0",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategoryRemove,
}

var categoryRenameCmd = &cobra.Command{
	Use:   "rename <old> <new>",
	Short: "Rename a category and every entry using it",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRename,
}

var categoryRateCmd = &cobra.Command{
	Use:   "rate <name> <rate>",
	Short: "Set the hourly rate of a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryRate,
}

func init() {
	categoryAddCmd.Flags().Float64Var(&categoryAddRate, "rate", 0, "Hourly rate")
	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categoryRemoveCmd, categoryRenameCmd, categoryRateCmd)
}

func runCategoryList(cmd *cobra.Command, args []string) error {
	return withSession(cmd.Context(), func(s *session) error {
		for i, c := range s.ledger.Categories() {
			marker := " "
			if i == 0 {
				marker = "*"
			}
			fmt.Printf("%s %-20s%10s\n", marker, c, formatAmount(s.ledger.Rate(c)))
		}
		return nil
	})
}

func runCategoryAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		err := s.mutate(ctx, "category add", func(l *ledger.Ledger) error {
			return l.AddCategory(args[0], categoryAddRate)
		})
		if err != nil {
			return err
		}
		fmt.Printf("Added category %q at %s/h.\n", args[0], formatAmount(categoryAddRate))
		return nil
	})
}

func runCategoryRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		err := s.mutate(ctx, "category remove", func(l *ledger.Ledger) error {
			return l.RemoveCategory(args[0])
		})
		if err != nil {
			return err
		}
		fmt.Printf("Removed category %q.\n", args[0])
		return nil
	})
}

func runCategoryRename(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		err := s.mutate(ctx, "category rename", func(l *ledger.Ledger) error {
			return l.RenameCategory(args[0], args[1])
		})
		if err != nil {
			return err
		}
		fmt.Printf("Renamed category %q to %q.\n", args[0], args[1])
		return nil
	})
}

func runCategoryRate(cmd *cobra.Command, args []string) error {
	rate, err := parseRate(args[1])
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	return withSession(ctx, func(s *session) error {
		err := s.mutate(ctx, "category rate", func(l *ledger.Ledger) error {
			return l.SetRate(args[0], rate)
		})
		if err != nil {
			return err
		}
		fmt.Printf("Rate of %q set to %s/h.\n", args[0], formatAmount(rate))
		return nil
	})
}

func parseRate(s string) (float64, error) {
	rate, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ledger.ErrInvalidRate, s)
	}
	return rate, nil
}
