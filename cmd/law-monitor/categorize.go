// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/pkg/types"
)

var categorizeCmd = &cobra.Command{
	Use:   "categorize <file-id> <OPEN|RELEVANT|NOT_RELEVANT>",
	Short: "Set the review category of a law",
	Long: `Categorize records a reviewer's verdict on a law. Pass --date with the law's
publication date to show the law before and after the change.`,
	Args: cobra.ExactArgs(2),
	RunE: runCategorize,
}

func init() {
	categorizeCmd.Flags().String("date", "", "publication date of the law (YYYY-MM-DD), to display it")
	categorizeCmd.Flags().Bool("json", false, "output the law as JSON")
	rootCmd.AddCommand(categorizeCmd)
}

func runCategorize(cmd *cobra.Command, args []string) error {
	lawID := args[0]
	category, err := types.ParseCategory(strings.ToUpper(args[1]))
	if err != nil {
		return err
	}
	date, _ := cmd.Flags().GetString("date")

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()
	c := s.coord
	ctx := cmd.Context()

	if date != "" {
		c.FetchLawsForDate(ctx, date)
	}
	if !c.UpdateLawCategory(ctx, lawID, category) {
		return fmt.Errorf("category of %s unchanged", lawID)
	}
	if date == "" {
		return nil
	}

	var shown []types.Law
	for _, l := range c.DisplayedLaws() {
		if l.ID == lawID {
			shown = append(shown, l)
		}
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLaws(cmd.OutOrStdout(), shown, jsonOutput)
}
