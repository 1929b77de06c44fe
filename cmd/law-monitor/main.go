// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the law-monitor CLI. It drives the law
// display coordinator against the law API, or against a local snapshot when
// --offline is set.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/law-monitor/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// apiTokenSecret is the secrets file that supplies api.token when unset.
const apiTokenSecret = "law-monitor-api-token"

// loadedSecrets holds credentials loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// registry collects the API client metrics for --metrics-textfile.
var registry = prometheus.NewRegistry()

// secretDefault returns fallback when set, otherwise the secret for key.
func secretDefault(key, fallback string) string {
	if fallback != "" {
		return fallback
	}
	return loadedSecrets[key]
}

// rootCmd is the base command for the law-monitor CLI.
var rootCmd = &cobra.Command{
	Use:   "law-monitor",
	Short: "Review newly published laws and their AI relevance assessments",
	Long: `law-monitor shows the laws published in the official journal together with
the automated per-team relevance assessments, and lets reviewers mark each law
as relevant or not relevant.

Laws can be listed for the most recent days (latest), for a calendar range
(browse), or by search. Filters on the review category and the AI assessment
apply to every listing. A local SQLite snapshot allows working offline.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/", os.Stderr)
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("metrics-textfile")
		if path == "" {
			return nil
		}
		if err := prometheus.WriteToTextfile(path, registry); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./law-monitor.yaml or ~/.config/law-monitor/config.yaml)")
	pf.Bool("offline", false, "read from the local snapshot instead of the law API")
	pf.String("base-url", "", "law API base URL (overrides api.base_url)")
	pf.String("snapshot-dir", "", "snapshot directory (overrides snapshot.dir)")
	pf.String("metrics-textfile", "", "write API request metrics in Prometheus text format to this file")

	viper.BindPFlag("api.base_url", pf.Lookup("base-url"))
	viper.BindPFlag("snapshot.dir", pf.Lookup("snapshot-dir"))
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: reading .env: %v\n", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("law-monitor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "law-monitor"))
		}
	}

	setDefaults()
	viper.SetEnvPrefix("LAW_MONITOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
