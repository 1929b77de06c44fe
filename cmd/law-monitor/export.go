// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Download the relevant laws as CSV",
	Long: `Export downloads a CSV of either every law the AI flagged as likely relevant
for at least one team (--scope all-hits) or every law a reviewer has
categorized (--scope all-evaluated).`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("scope", "all-hits", "export scope: all-hits or all-evaluated")
	exportCmd.Flags().StringP("output", "o", "", "write the CSV to this file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	scopeFlag, _ := cmd.Flags().GetString("scope")
	scope, err := types.ParseCSVScope(scopeFlag)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("output")

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()

	csv, ok := s.coord.DownloadRelevantCSV(cmd.Context(), scope)
	if !ok {
		return fmt.Errorf("%s export failed", scopeFlag)
	}

	if out == "" {
		_, err := io.WriteString(cmd.OutOrStdout(), csv)
		return err
	}
	if err := os.WriteFile(out, []byte(csv), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", out, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", scope, out)
	return nil
}
