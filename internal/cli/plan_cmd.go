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

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show and manage today's plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showPlan(cmd, app)
		},
	}

	cmd.AddCommand(
		newPlanRegenCmd(app),
		newPlanCompleteCmd(app),
		newPlanSkipCmd(app),
		newPlanSnoozeCmd(app),
	)
	return cmd
}

func showPlan(cmd *cobra.Command, app *App) error {
	now := time.Now()
	plan, err := app.Plans.Today(context.Background(), now)
	if errors.Is(err, repository.ErrNotFound) {
		fmt.Fprintln(cmd.OutOrStdout(),
			formatter.Dim("No plan for today yet. Run 'pulseplan plan regen'."))
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(plan, now))
	return nil
}

func newPlanRegenCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "regen",
		Short: "Regenerate today's plan from current logs and bio-load",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			res, err := app.Plans.Regenerate(context.Background(), now)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatPlan(res.Plan, now))
			return nil
		},
	}
}

func newPlanCompleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "complete <item-id>",
		Short: "Mark a plan item as done",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.CompleteItem(context.Background(), time.Now(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔ Completed"))
			return nil
		},
	}
}

func newPlanSkipCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "skip <item-id>",
		Short: "Skip a plan item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.SkipItem(context.Background(), time.Now(), args[0]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("⊘ Skipped"))
			return nil
		},
	}
}

func newPlanSnoozeCmd(app *App) *cobra.Command {
	var forDur time.Duration

	cmd := &cobra.Command{
		Use:   "snooze <item-id>",
		Short: "Defer a plan item's reminder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.SnoozeItem(context.Background(), time.Now(), args[0], forDur); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(),
				formatter.Dim(fmt.Sprintf("Snoozed for %s", forDur)))
			return nil
		},
	}

	cmd.Flags().DurationVar(&forDur, "for", 15*time.Minute, "How long to snooze")
	return cmd
}
