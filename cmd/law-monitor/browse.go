// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/pkg/types"
)

var browseCmd = &cobra.Command{
	Use:   "browse <date> [end-date]",
	Short: "List the laws of one day or a date range",
	Long: `Browse lists the laws indexed under one calendar day, or under every day of
an inclusive range when an end date is given. Dates are YYYY-MM-DD. A range
that overlaps no day with laws is reported without querying the laws.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBrowse,
}

func init() {
	addFilterFlags(browseCmd)
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()
	c := s.coord
	ctx := cmd.Context()

	if len(args) == 1 {
		c.FetchLawsForDate(ctx, args[0])
	} else {
		c.FetchLawsByDateRange(ctx, types.DateRange{Start: args[0], End: args[1]})
	}
	if msg := c.DateMessage(); msg != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), msg)
		return nil
	}

	if err := applyFilters(cmd, c); err != nil {
		return err
	}
	return printDisplayed(cmd, c)
}
