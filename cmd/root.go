package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	flagIgnoreConfig bool
	flagDebug        bool
	flagSource       string
	flagSitesFile    string
	flagLogFormat    string
)

var rootCmd = &cobra.Command{
	Use:           "mangasrc",
	Short:         "Query manga sources: search, details, chapters, pages, home feeds and deep links",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagIgnoreConfig, "ignore-config", false, "ignore config and use only CLI flags")
	rootCmd.PersistentFlags().StringVarP(&flagSource, "source", "s", "", "source key (e.g. en.tcbscans)")
	rootCmd.PersistentFlags().StringVar(&flagSitesFile, "sites-file", "", "YAML file with extra template sites")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "log format: console or json")
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
