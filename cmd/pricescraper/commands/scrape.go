package commands

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"pricescraper/internal/components/chrono"
	"pricescraper/internal/render"
	"pricescraper/internal/scrapeui"
	"pricescraper/lib/calendar"
	"pricescraper/lib/osutil"

	"github.com/spf13/cobra"
)

var errScrapeFailed = errors.New(scrapeui.FailureMessage)

type scrapeParams struct {
	arrival   string
	departure string
	urls      []string
	htmlPath  string
}

var scrapeFlags scrapeParams

func init() {
	scrapeCmd.Flags().StringVar(&scrapeFlags.arrival, "arrival", "", "The arrival date (YYYY-MM-DD), defaults to today.")
	scrapeCmd.Flags().StringVar(&scrapeFlags.departure, "departure", "", "The departure date (YYYY-MM-DD), defaults to today.")
	scrapeCmd.Flags().StringArrayVar(&scrapeFlags.urls, "url", nil, "A listing to scrape instead of the service's own list, repeatable.")
	scrapeCmd.Flags().StringVar(&scrapeFlags.htmlPath, "html", "", "Also write the result as an html page to this path.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--arrival <date>] [--departure <date>] [--url <listing>]... [--html <out.html>]",
	Short: "Scrapes prices for one date range and prints them as a table.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context(), configPath, endpoint)
		if err != nil {
			return err
		}
		defer env.close(osutil.DetachedContext(cmd.Context()))

		return runScrape(cmd.Context(), env, scrapeFlags, cmd.OutOrStdout())
	},
}

func parseDateOr(text string, fallback calendar.Date) (calendar.Date, error) {
	if text == "" {
		return fallback, nil
	}
	return calendar.Parse(text)
}

// startComponent runs a component until the returned stop func is called.
func startComponent(ctx context.Context, component *scrapeui.Component) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = component.Run(ctx)
	}()
	return func() {
		cancel()
		<-done
	}
}

func writeHTML(path string, state scrapeui.State) error {
	buff := &bytes.Buffer{}
	err := render.HTML(buff, state)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buff.Bytes(), 0644)
}

func runScrape(ctx context.Context, env environment, params scrapeParams, out io.Writer) error {
	today := chrono.Today(env.clock)
	arrival, err := parseDateOr(params.arrival, today)
	if err != nil {
		return fmt.Errorf("--arrival: %w", err)
	}
	departure, err := parseDateOr(params.departure, today)
	if err != nil {
		return fmt.Errorf("--departure: %w", err)
	}

	urls := params.urls
	if len(urls) == 0 {
		urls = env.cfg.URLs
	}

	component := scrapeui.New(env.client, scrapeui.Options{
		Today: today,
		URLs:  urls,
	})
	stop := startComponent(ctx, component)
	defer stop()

	component.SelectArrivalDate(arrival)
	component.SelectDepartureDate(departure)
	component.StartScrape()

	state, err := component.WaitFor(ctx, scrapeui.Settled)
	if err != nil {
		return err
	}

	err = render.Terminal(out, state)
	if err != nil {
		return err
	}
	if params.htmlPath != "" {
		err = writeHTML(params.htmlPath, state)
		if err != nil {
			return fmt.Errorf("write html: %w", err)
		}
	}

	if state.View() == scrapeui.ViewError {
		return errScrapeFailed
	}
	return nil
}
