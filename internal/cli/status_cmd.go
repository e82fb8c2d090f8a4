package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pulseplan/internal/cli/formatter"
	"github.com/alexanderramin/pulseplan/internal/repository"
)

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show bio-load, plan adherence and last night's sleep",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			now := time.Now()

			snap, err := app.Plans.Snapshot(ctx, now)
			if err != nil {
				return err
			}

			data := formatter.StatusData{Snapshot: snap, Now: now}

			plan, err := app.Plans.Today(ctx, now)
			if err != nil && !errors.Is(err, repository.ErrNotFound) {
				return err
			}
			data.Plan = plan

			sessions, err := app.Sleeps.RecentSessions(ctx, 1)
			if err != nil {
				return err
			}
			if len(sessions) > 0 {
				data.LastSleep = &sessions[0]
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatStatus(data))
			return nil
		},
	}
}
