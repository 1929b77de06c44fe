// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/internal/coordinator"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// formatLaws prints laws as a table, or as indented JSON when jsonOutput is set.
func formatLaws(w io.Writer, laws []types.Law, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(laws)
	}

	if len(laws) == 0 {
		fmt.Fprintln(w, "No laws found.")
		return nil
	}

	fmt.Fprintf(w, "%-10s  %-16s  %-12s  %-3s  %-10s  %s\n",
		"Date", "File ID", "Category", "AI", "In force", "Title")
	fmt.Fprintln(w, strings.Repeat("-", 110))

	for _, l := range laws {
		date := l.BucketDate()
		if len(date) > len(types.DateLayout) {
			date = date[:len(types.DateLayout)]
		}
		id := truncate(l.ID, 16)
		ai := "-"
		if l.LikelyRelevant() {
			ai = "yes"
		}
		until := ""
		if t, ok := l.EndValidity(); ok {
			until = types.FormatDate(t)
		}
		title := truncate(l.Title, 50)
		fmt.Fprintf(w, "%-10s  %-16s  %-12s  %-3s  %-10s  %s\n",
			date, id, l.ReviewCategory(), ai, until, title)
	}

	fmt.Fprintf(w, "\n%d laws\n", len(laws))
	return nil
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n-3]) + "..."
}

// addFilterFlags registers the category and AI filter flags on cmd.
func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("category", "ALL", "review category filter: ALL, OPEN, RELEVANT, NOT_RELEVANT")
	cmd.Flags().String("ai", "ALL", "AI assessment filter: ALL, LIKELY_RELEVANT, LIKELY_IRRELEVANT")
	cmd.Flags().Bool("json", false, "output laws as JSON")
}

// applyFilters sets the filters named by the flags on c. In DEFAULT mode this
// loads older days until the filtered view is not empty.
func applyFilters(cmd *cobra.Command, c *coordinator.Coordinator) error {
	catFlag, _ := cmd.Flags().GetString("category")
	aiFlag, _ := cmd.Flags().GetString("ai")

	cf, err := types.ParseCategoryFilter(catFlag)
	if err != nil {
		return err
	}
	af, err := types.ParseAIFilter(aiFlag)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if cf != types.CategoryFilterAll {
		c.SetCategoryFilter(ctx, cf)
	}
	if af != types.AIFilterAll {
		c.SetAIFilter(ctx, af)
	}
	return nil
}

// printDisplayed writes the displayed laws of c.
func printDisplayed(cmd *cobra.Command, c *coordinator.Coordinator) error {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLaws(cmd.OutOrStdout(), c.DisplayedLaws(), jsonOutput)
}
