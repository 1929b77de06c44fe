// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/pkg/types"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "List the laws of the most recent days",
	Long: `Latest lists the laws published in the most recent days, newest first. When
the window holds no laws it grows back in time until laws appear; after a run of
empty days the whole remaining history is loaded at once.

With --category or --ai the window keeps growing until at least one law
matches the filter or the history is exhausted. --journal-series restricts the
initial listing to one journal series.`,
	RunE: runLatest,
}

func init() {
	latestCmd.Flags().Int("days", 0, "size of the initial window in days (default from pagination.default_window_days)")
	latestCmd.Flags().Int("more", 0, "number of times to extend the window by --step days")
	latestCmd.Flags().Int("step", 0, "days added per extension (default from pagination.extension_days)")
	latestCmd.Flags().String("journal-series", "", "only show laws of this journal series")
	addFilterFlags(latestCmd)

	rootCmd.AddCommand(latestCmd)
}

func runLatest(cmd *cobra.Command, args []string) error {
	days, _ := cmd.Flags().GetInt("days")
	more, _ := cmd.Flags().GetInt("more")
	step, _ := cmd.Flags().GetInt("step")
	series, _ := cmd.Flags().GetString("journal-series")

	s, err := openSession(cmd, series != "")
	if err != nil {
		return err
	}
	defer s.close()
	c := s.coord
	ctx := cmd.Context()

	laws := c.LoadDefaultLaws(ctx, days)
	if series != "" {
		c.ShowLaws(inSeries(laws, series))
		c.SetInitialFilter(false)
	}
	for i := 0; i < more && c.HasMoreLaws(); i++ {
		if len(c.LoadMoreDays(ctx, step)) == 0 {
			break
		}
	}
	if err := applyFilters(cmd, c); err != nil {
		return err
	}

	if err := printDisplayed(cmd, c); err != nil {
		return err
	}
	status := "more history available"
	if !c.HasMoreLaws() {
		status = "history exhausted"
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%d days loaded, %s\n", c.DaysLoaded(), status)
	return nil
}

func inSeries(laws []types.Law, series string) []types.Law {
	out := []types.Law{}
	for _, l := range laws {
		if l.JournalSeries == series {
			out = append(out, l)
		}
	}
	return out
}
