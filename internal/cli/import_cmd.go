package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pulseplan/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <archive.json>",
		Short: "Import a health-data archive",
		Long: "Import a JSON health-data archive: profile, log streams and\n" +
			"sleep sessions. Entries keep their archive timestamps.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadArchive(args[0])
			if err != nil {
				return err
			}

			if errs := importer.ValidateArchive(schema); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintln(cmd.ErrOrStderr(), "error:", e)
				}
				return fmt.Errorf("archive has %d validation error(s)", len(errs))
			}

			sum, err := importer.Apply(context.Background(), schema, app.Profiles, app.Logs, app.Sleeps)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported %d records", sum.Total())
			if sum.Profile {
				fmt.Fprint(out, " and profile")
			}
			fmt.Fprintln(out, ".")
			if sum.Food > 0 {
				fmt.Fprintf(out, "  food:     %d\n", sum.Food)
			}
			if sum.Activity > 0 {
				fmt.Fprintf(out, "  activity: %d\n", sum.Activity)
			}
			if sum.Mood > 0 {
				fmt.Fprintf(out, "  mood:     %d\n", sum.Mood)
			}
			if sum.Weight > 0 {
				fmt.Fprintf(out, "  weight:   %d\n", sum.Weight)
			}
			if sum.Water > 0 {
				fmt.Fprintf(out, "  water:    %d\n", sum.Water)
			}
			if sum.Sleep > 0 {
				fmt.Fprintf(out, "  sleep:    %d\n", sum.Sleep)
			}
			return nil
		},
	}
}
