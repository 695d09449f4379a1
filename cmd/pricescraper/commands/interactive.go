package commands

import (
	"context"
	"io"
	"pricescraper/internal/components/chrono"
	"pricescraper/internal/console"
	"pricescraper/internal/scrapeui"
	"pricescraper/lib/osutil"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Starts a session where dates are picked and scrapes started with line commands, type 'help' inside.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := setup(cmd.Context(), configPath, endpoint)
		if err != nil {
			return err
		}
		defer env.close(osutil.DetachedContext(cmd.Context()))

		return runInteractive(cmd.Context(), env, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func runInteractive(ctx context.Context, env environment, in io.Reader, out io.Writer) error {
	session := console.NewSession(out)
	component := scrapeui.New(env.client, scrapeui.Options{
		Today:    chrono.Today(env.clock),
		URLs:     env.cfg.URLs,
		Observer: session.Render,
	})
	stop := startComponent(ctx, component)
	defer stop()

	return session.Run(ctx, component, in)
}
