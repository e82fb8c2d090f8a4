package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/pulseplan/internal/cli/formatter"
	"github.com/alexanderramin/pulseplan/internal/domain"
)

// apply copies a flag's value into the profile only when the user set it,
// so unset flags never clobber stored fields.
func apply(flags *pflag.FlagSet, name string, set func()) {
	if flags.Changed(name) {
		set()
	}
}

func newProfileCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View and edit the user profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			return showProfile(cmd, app)
		},
	}

	cmd.AddCommand(newProfileSetCmd(app))
	return cmd
}

func showProfile(cmd *cobra.Command, app *App) error {
	p, err := app.Profiles.Get(context.Background())
	if err != nil {
		return err
	}

	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(fmt.Sprintf("  %-18s %s\n", formatter.Dim(label), formatter.StyleFg.Render(value)))
	}
	row("Name", orDash(p.Name))
	row("Sleep target", fmt.Sprintf("%.1f h", p.SleepTargetHours))
	row("Work schedule", string(p.WorkSchedule))
	row("Work intensity", string(p.WorkIntensity))
	row("Marital status", string(p.MaritalStatus))
	row("Children", fmt.Sprintf("%d", p.ChildrenCount))
	row("Conditions", orDash(strings.Join(p.Conditions, ", ")))
	row("Goal", orDash(p.Goal))

	fmt.Fprint(cmd.OutOrStdout(), formatter.RenderBox("Profile", b.String()))
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "--"
	}
	return s
}

func newProfileSetCmd(app *App) *cobra.Command {
	var (
		name        string
		sleepTarget float64
		schedule    string
		intensity   string
		marital     string
		children    int
		conditions  []string
		goal        string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Update profile fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := app.Profiles.Get(ctx)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			apply(flags, "name", func() { p.Name = name })
			apply(flags, "sleep-target", func() { p.SleepTargetHours = sleepTarget })
			apply(flags, "schedule", func() { p.WorkSchedule = domain.WorkSchedule(schedule) })
			apply(flags, "intensity", func() { p.WorkIntensity = domain.WorkIntensity(intensity) })
			apply(flags, "marital", func() { p.MaritalStatus = domain.MaritalStatus(marital) })
			apply(flags, "children", func() { p.ChildrenCount = children })
			apply(flags, "condition", func() { p.Conditions = conditions })
			apply(flags, "goal", func() { p.Goal = goal })

			if err := app.Profiles.Update(ctx, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.StyleGreen.Render("✔ Profile updated"))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().Float64Var(&sleepTarget, "sleep-target", 8, "Sleep target in hours")
	cmd.Flags().StringVar(&schedule, "schedule", "", "Work schedule: day_shift, night_shift, flexible")
	cmd.Flags().StringVar(&intensity, "intensity", "", "Work intensity: sedentary, moderate, heavy_labor")
	cmd.Flags().StringVar(&marital, "marital", "", "Marital status: single, partnered, married")
	cmd.Flags().IntVar(&children, "children", 0, "Number of children")
	cmd.Flags().StringSliceVar(&conditions, "condition", nil, "Health condition markers (repeatable)")
	cmd.Flags().StringVar(&goal, "goal", "", "Primary health goal")
	return cmd
}
