package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"pricescraper/internal/components/telemetry"

	"github.com/spf13/cobra"
)

var configPath string
var endpoint string
var verbose bool

var rootCmd = &cobra.Command{
	Use:           "pricescraper",
	Short:         "pricescraper scrapes hotel prices for a date range through the remote scrape service.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(os.Stderr, verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "The config file, searched for upwards from the cwd when unset.")
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "", "Overrides the scrape service url from the config.")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug information to stderr.")
}

func ExecuteContext(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return
	}
	// the failure banner has already been rendered
	if !errors.Is(err, errScrapeFailed) {
		fmt.Fprintln(os.Stderr, err)
	}
	os.Exit(1)
}
