// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the nepjol-fetch CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/nepjol-fetch/internal/logging"
	"github.com/pdiddy/nepjol-fetch/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command. Invoked bare, it runs the interactive
// search shell.
var rootCmd = &cobra.Command{
	Use:   "nepjol-fetch",
	Short: "Search NepJOL and download article PDFs",
	Long: `nepjol-fetch searches NepJOL (Nepal Journals Online), lists matching
articles, and can resolve and download an article's PDF by following the
galley viewer chain the site serves.

Run without a subcommand for an interactive session, or use the search and
fetch subcommands for one-shot operation.`,
}

func init() {
	rootCmd.RunE = runInteractive
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./nepjol-fetch.yaml or ~/.config/nepjol-fetch/config.yaml)")
	rootCmd.PersistentFlags().String("log-dir", "", "directory for per-run log files (default: logs)")
	rootCmd.PersistentFlags().String("log-level", "", "console log level: debug, info, warn, error")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("nepjol-fetch")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "nepjol-fetch"))
		}
	}

	viper.SetEnvPrefix("NEPJOL_FETCH")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig merges defaults with any values from the viper config.
func loadConfig() types.PipelineConfig {
	cfg := types.PipelineConfig{
		Search:   types.DefaultSearchConfig(),
		Download: types.DefaultDownloadConfig(),
		History: types.HistoryConfig{
			Enabled:    true,
			DBPath:     "nepjol-history.db",
			MaxResults: 20,
		},
		Log: types.LogConfig{Dir: "logs"},
	}

	if v := viper.GetString("search.base_url"); v != "" {
		cfg.Search.BaseURL = v
	}
	if v := viper.GetString("search.site_origin"); v != "" {
		cfg.Search.SiteOrigin = v
	}
	if v := viper.GetDuration("search.timeout"); v > 0 {
		cfg.Search.Timeout = v
	}
	if v := viper.GetString("search.user_agent"); v != "" {
		cfg.Search.UserAgent = v
	}
	if v := viper.GetDuration("download.timeout"); v > 0 {
		cfg.Download.Timeout = v
	}
	if v := viper.GetInt("download.chunk_size"); v > 0 {
		cfg.Download.ChunkSize = v
	}
	if v := viper.GetString("download.output_dir"); v != "" {
		cfg.Download.OutputDir = v
	}
	if viper.IsSet("download.write_sidecar") {
		cfg.Download.WriteSidecar = viper.GetBool("download.write_sidecar")
	}
	if viper.IsSet("history.enabled") {
		cfg.History.Enabled = viper.GetBool("history.enabled")
	}
	if v := viper.GetString("history.db_path"); v != "" {
		cfg.History.DBPath = v
	}
	if v := viper.GetInt("history.max_results"); v > 0 {
		cfg.History.MaxResults = v
	}
	if v := viper.GetString("log.dir"); v != "" {
		cfg.Log.Dir = v
	}
	if v := viper.GetString("log.level"); v != "" {
		cfg.Log.Level = v
	}

	if v, _ := rootCmd.PersistentFlags().GetString("log-dir"); v != "" {
		cfg.Log.Dir = v
	}
	if v, _ := rootCmd.PersistentFlags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	return cfg
}

// app bundles the per-run dependencies every command needs: the merged
// configuration and the run logger with its teardown.
type app struct {
	cfg      types.PipelineConfig
	logger   *log.Logger
	logPath  string
	closeLog func() error
	started  time.Time
}

// newApp builds the run context. The logger writes to a fresh timestamped
// file under cfg.Log.Dir and echoes to stderr.
func newApp() (*app, error) {
	cfg := loadConfig()

	logger, logPath, closeLog, err := logging.New(cfg.Log.Dir, cfg.Log.Level, os.Stderr)
	if err != nil {
		return nil, err
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		logPath:  logPath,
		closeLog: closeLog,
		started:  time.Now(),
	}, nil
}

// close flushes the run log.
func (a *app) close() {
	a.logger.Info("program finished", "elapsed", time.Since(a.started).Round(time.Millisecond))
	if err := a.closeLog(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing log file: %v\n", err)
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
