package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pulseplan/internal/cli/formatter"
)

func newSleepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sleep",
		Short: "Review and record sleep sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSleep(cmd, app, 7)
		},
	}

	cmd.AddCommand(
		newSleepAddCmd(app),
		newSleepRecentCmd(app),
	)
	return cmd
}

func showSleep(cmd *cobra.Command, app *App, limit int) error {
	sessions, err := app.Sleeps.RecentSessions(context.Background(), limit)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSleepSessions(sessions, time.Now()))
	return nil
}

func newSleepRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recent sleep sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showSleep(cmd, app, limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 7, "How many sessions to show")
	return cmd
}

func newSleepAddCmd(app *App) *cobra.Command {
	var startStr, endStr string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record a sleep session by hand",
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseClock(startStr)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			end, err := parseClock(endStr)
			if err != nil {
				return fmt.Errorf("invalid --end: %w", err)
			}
			session, err := app.Sleeps.AddManualSession(context.Background(), start, end)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.StyleGreen.Render("✔")+" Recorded "+
					formatter.Bold(formatter.FormatMinutes(session.DurationMinutes))+" of sleep")
			return nil
		},
	}

	cmd.Flags().StringVar(&startStr, "start", "", "Start time (RFC3339 or 'YYYY-MM-DD HH:MM')")
	cmd.Flags().StringVar(&endStr, "end", "", "End time (RFC3339 or 'YYYY-MM-DD HH:MM')")
	cmd.MarkFlagRequired("start")
	cmd.MarkFlagRequired("end")
	return cmd
}

func parseClock(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.ParseInLocation("2006-01-02 15:04", s, time.Local)
}
