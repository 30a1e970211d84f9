package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/workhours/internal/storage"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "wh",
	Short: "Work Hours – record work sessions and what they earn",
	Long: `wh records work sessions with optional breaks, prices them per category
and reports totals, trends and weekly summaries.
Data is stored in ~/.workhours/ as a JSON file or an SQLite database.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 for storage failures and 1 for everything else.
func exitCode(err error) int {
	if errors.Is(err, storage.ErrPersistence) {
		return 2
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default ~/.workhours/config.json)")

	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(totalsCmd)
	rootCmd.AddCommand(seriesCmd)
	rootCmd.AddCommand(weeklyCmd)
	rootCmd.AddCommand(suggestCmd)
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(categoryCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(breakCmd)
	rootCmd.AddCommand(exportCmd)
}
