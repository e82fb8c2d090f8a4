package cli

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pulseplan/internal/cli/formatter"
)

func newRunCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the always-on engine until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Engine == nil {
				return errors.New("engine not configured")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(),
				syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := app.Engine.Run(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.Dim("Engine running. Press Ctrl-C to stop."))

			<-ctx.Done()
			app.Engine.Stop()
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Engine stopped."))
			return nil
		},
	}
}
