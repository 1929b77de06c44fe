// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/internal/search"
	"github.com/pdiddy/law-monitor/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [text]",
	Short: "Search laws by title, EuroVoc descriptor, type, series, or department",
	Long: `Search runs one kind of search against the law service and lists the
matching laws. The kind is chosen with --by:

  title            free text matched against law titles (default)
  eurovoc          one or more EuroVoc descriptors (--descriptor, repeatable)
  document-type    a document type such as REG or DIR
  journal-series   an official journal series such as L or C
  department       a department name

Use --save to keep the query and its results in a YAML file and --load to
rerun a saved query.`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("by", "title", "search kind: title, eurovoc, document-type, journal-series, department")
	searchCmd.Flags().StringSlice("descriptor", nil, "EuroVoc descriptor (repeatable, for --by eurovoc)")
	searchCmd.Flags().String("save", "", "write the query and its results to this YAML file")
	searchCmd.Flags().String("load", "", "rerun the query saved in this YAML file")
	addFilterFlags(searchCmd)

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	req, err := searchRequestFromFlags(cmd, args)
	if err != nil {
		return err
	}
	if req.IsEmpty() {
		return fmt.Errorf("search input required: provide text or --descriptor")
	}

	s, err := openSession(cmd, false)
	if err != nil {
		return err
	}
	defer s.close()
	c := s.coord

	results := c.Search(cmd.Context(), req)
	if errs := s.center.Errors(); len(errs) > 0 {
		return fmt.Errorf("%s", errs[0])
	}

	if path, _ := cmd.Flags().GetString("save"); path != "" {
		if err := search.WriteQueryFile(path, req, results); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Saved %q to %s\n", c.SearchQuery(), path)
	}

	if err := applyFilters(cmd, c); err != nil {
		return err
	}
	return printDisplayed(cmd, c)
}

func searchRequestFromFlags(cmd *cobra.Command, args []string) (search.Request, error) {
	if path, _ := cmd.Flags().GetString("load"); path != "" {
		qf, err := search.ReadQueryFile(path)
		if err != nil {
			return search.Request{}, err
		}
		return qf.Query, nil
	}

	by, _ := cmd.Flags().GetString("by")
	descriptors, _ := cmd.Flags().GetStringSlice("descriptor")
	text := strings.Join(args, " ")

	var t types.SearchType
	switch strings.ToLower(by) {
	case "title", "":
		t = types.SearchTitle
	case "eurovoc":
		t = types.SearchEurovoc
		if len(descriptors) == 0 && text != "" {
			descriptors = []string{text}
		}
	case "document-type":
		t = types.SearchDocumentType
	case "journal-series":
		t = types.SearchJournalSeries
	case "department":
		t = types.SearchDepartment
	default:
		return search.Request{}, fmt.Errorf("unknown search kind %q: use title, eurovoc, document-type, journal-series, or department", by)
	}
	return search.Request{Type: t, Text: text, Descriptors: descriptors}, nil
}
