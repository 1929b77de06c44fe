// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/internal/snapshot"
	"github.com/pdiddy/law-monitor/pkg/types"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Manage the local law snapshot (save, query, export)",
	Long: `Snapshot manages a local SQLite copy of the laws with a full-text index on
titles. Every other command reads from it when --offline is set.`,
}

// --- save subcommand ---

var snapshotSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Copy laws from the law API into the snapshot",
	Long: `Save fetches the laws of a date range from the law API and upserts them into
the snapshot. Without --from the last --days days are saved; with --all the
whole history is saved.`,
	RunE: runSnapshotSave,
}

func runSnapshotSave(cmd *cobra.Command, args []string) error {
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	days, _ := cmd.Flags().GetInt("days")
	all, _ := cmd.Flags().GetBool("all")

	if to == "" {
		to = types.FormatDate(time.Now())
	}
	switch {
	case all:
		from = ""
	case from == "":
		if days <= 0 {
			days = 1
		}
		end, ok := types.ParseDate(to)
		if !ok {
			return fmt.Errorf("invalid --to date %q: want YYYY-MM-DD", to)
		}
		from = types.FormatDate(end.AddDate(0, 0, -(days - 1)))
	default:
		if err := (types.DateRange{Start: from, End: to}).Validate(); err != nil {
			return err
		}
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	client, err := newAPIClient(cfg.API)
	if err != nil {
		return err
	}
	store, err := snapshot.Open(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer store.Close()

	page, err := client.GetLawsByDateRange(cmd.Context(), from, to)
	if err != nil {
		return err
	}
	summary, err := store.Save(cmd.Context(), page.Laws)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "saved %d laws (inserted: %d, updated: %d) to %s\n",
		summary.Total(), summary.Inserted, summary.Updated, store.Dir())
	return nil
}

// --- query subcommand ---

var snapshotQueryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Full-text search the snapshot titles",
	Long: `Query matches every word of the text as a prefix of a title word and lists
the matching laws ranked by relevance.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSnapshotQuery,
}

func runSnapshotQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := snapshot.Open(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer store.Close()

	laws, err := store.SearchLawsByTitle(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatLaws(cmd.OutOrStdout(), laws, jsonOutput)
}

// --- export subcommand ---

var snapshotExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the snapshot to YAML or JSON",
	Long:  `Export writes every law in the snapshot to export.yaml or export.json in the snapshot directory.`,
	RunE:  runSnapshotExport,
}

func runSnapshotExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := snapshot.Open(cfg.Snapshot)
	if err != nil {
		return err
	}
	defer store.Close()

	var path string
	switch format {
	case "yaml", "":
		path, err = store.ExportYAML(cmd.Context())
	case "json":
		path, err = store.ExportJSON(cmd.Context())
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
	return nil
}

func init() {
	snapshotSaveCmd.Flags().String("from", "", "first day to save (YYYY-MM-DD)")
	snapshotSaveCmd.Flags().String("to", "", "last day to save (YYYY-MM-DD, default today)")
	snapshotSaveCmd.Flags().Int("days", 30, "number of trailing days to save when --from is not set")
	snapshotSaveCmd.Flags().Bool("all", false, "save the whole history up to --to")

	snapshotQueryCmd.Flags().Bool("json", false, "output laws as JSON")

	snapshotExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	snapshotCmd.AddCommand(snapshotSaveCmd)
	snapshotCmd.AddCommand(snapshotQueryCmd)
	snapshotCmd.AddCommand(snapshotExportCmd)

	rootCmd.AddCommand(snapshotCmd)
}
