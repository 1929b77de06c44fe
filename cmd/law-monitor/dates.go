// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/pkg/types"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Show which days have laws",
	Long: `Dates lists the calendar days that have laws, plus the first and last such
day and the days in between that have none.`,
	RunE: runDates,
}

func init() {
	datesCmd.Flags().Bool("json", false, "output as JSON")
	rootCmd.AddCommand(datesCmd)
}

type datesOutput struct {
	Available []string `json:"available"`
	First     string   `json:"first"`
	Last      string   `json:"last"`
	Missing   []string `json:"missing"`
}

func runDates(cmd *cobra.Command, args []string) error {
	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()
	ctx := cmd.Context()

	bounds := s.coord.DatePickerBounds(ctx)
	out := datesOutput{
		Available: s.coord.AvailableDates(ctx),
		First:     types.FormatDate(bounds.First),
		Last:      types.FormatDate(bounds.Last),
		Missing:   make([]string, len(bounds.Disabled)),
	}
	for i, d := range bounds.Disabled {
		out.Missing[i] = types.FormatDate(d)
	}

	w := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(w, "%d days with laws, %s to %s\n", len(out.Available), out.First, out.Last)
	if len(out.Missing) > 0 {
		fmt.Fprintf(w, "%d days without laws:\n", len(out.Missing))
		for _, d := range out.Missing {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}
	return nil
}
