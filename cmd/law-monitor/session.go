// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/law-monitor/internal/coordinator"
	"github.com/pdiddy/law-monitor/internal/lawapi"
	"github.com/pdiddy/law-monitor/internal/notify"
	"github.com/pdiddy/law-monitor/internal/snapshot"
	"github.com/pdiddy/law-monitor/pkg/types"
)

// session is one command's view of the law services.
type session struct {
	cfg    types.MonitorConfig
	coord  *coordinator.Coordinator
	center *notify.Center
	close  func() error
}

// openSession wires a coordinator to the law API, or to the snapshot when
// --offline is set.
func openSession(cmd *cobra.Command, initialFilter bool) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	offline, _ := cmd.Flags().GetBool("offline")

	center := notify.NewCenter(os.Stderr)
	svc := coordinator.Services{Notify: center, Log: os.Stderr}
	closeFn := func() error { return nil }

	if offline {
		snap, err := snapshot.Open(cfg.Snapshot)
		if err != nil {
			return nil, err
		}
		svc.Query, svc.Mutation, svc.Search = snap, snap, snap
		closeFn = snap.Close
	} else {
		client, err := newAPIClient(cfg.API)
		if err != nil {
			return nil, err
		}
		svc.Query, svc.Mutation, svc.Search = client, client, client
	}

	coord := coordinator.New(svc, coordinator.Options{
		Pagination:    cfg.Pagination,
		InitialFilter: initialFilter,
	})
	return &session{cfg: cfg, coord: coord, center: center, close: closeFn}, nil
}

var apiMetrics = lawapi.NewMetrics(registry)

func newAPIClient(cfg types.APIConfig) (*lawapi.Client, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	return lawapi.New(cfg, &http.Client{Timeout: cfg.Timeout}, apiMetrics)
}
