package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/pulseplan/internal/cli/formatter"
	"github.com/alexanderramin/pulseplan/internal/domain"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Record food, activity, mood, weight and water entries",
	}

	cmd.AddCommand(
		newLogFoodCmd(app),
		newLogActivityCmd(app),
		newLogMoodCmd(app),
		newLogWeightCmd(app),
		newLogWaterCmd(app),
	)
	return cmd
}

func newLogFoodCmd(app *App) *cobra.Command {
	var calories float64
	var grade, desc string

	cmd := &cobra.Command{
		Use:   "food <name>",
		Short: "Log a meal or snack",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Logs.AddFood(context.Background(), domain.FoodLogEntry{
				Name:        args[0],
				Description: desc,
				Calories:    calories,
				HealthGrade: grade,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), logged("food", entry.Name))
			return nil
		},
	}

	cmd.Flags().Float64Var(&calories, "calories", 0, "Estimated calories")
	cmd.Flags().StringVar(&grade, "grade", "", "Health grade A-E")
	cmd.Flags().StringVar(&desc, "desc", "", "Free-form description")
	return cmd
}

func newLogActivityCmd(app *App) *cobra.Command {
	var minutes int
	var burned float64

	cmd := &cobra.Command{
		Use:   "activity <kind>",
		Short: "Log a workout or physical activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			entry, err := app.Logs.AddActivity(context.Background(), domain.ActivityLogEntry{
				Kind:           args[0],
				DurationMin:    minutes,
				CaloriesBurned: burned,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), logged("activity", entry.Kind))
			return nil
		},
	}

	cmd.Flags().IntVar(&minutes, "minutes", 0, "Duration in minutes")
	cmd.Flags().Float64Var(&burned, "calories", 0, "Calories burned")
	return cmd
}

func newLogMoodCmd(app *App) *cobra.Command {
	var note string

	cmd := &cobra.Command{
		Use:   "mood <calm|happy|stressed|sad|tired>",
		Short: "Log your current mood",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mood := domain.MoodKind(args[0])
			switch mood {
			case domain.MoodCalm, domain.MoodHappy, domain.MoodStressed,
				domain.MoodSad, domain.MoodTired:
			default:
				return fmt.Errorf("unknown mood %q", args[0])
			}
			entry, err := app.Logs.AddMood(context.Background(), domain.MoodLogEntry{
				Mood: mood,
				Note: note,
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), logged("mood", string(entry.Mood)))
			return nil
		},
	}

	cmd.Flags().StringVar(&note, "note", "", "Optional note")
	return cmd
}

func newLogWeightCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "weight <kg>",
		Short: "Log a weight measurement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kg, err := strconv.ParseFloat(args[0], 64)
			if err != nil || kg <= 0 {
				return fmt.Errorf("invalid weight %q", args[0])
			}
			if _, err := app.Logs.AddWeight(context.Background(), domain.WeightLogEntry{
				WeightKg: kg,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), logged("weight", fmt.Sprintf("%.1f kg", kg)))
			return nil
		},
	}
}

func newLogWaterCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "water <ml>",
		Short: "Log water intake",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ml, err := strconv.Atoi(args[0])
			if err != nil || ml <= 0 {
				return fmt.Errorf("invalid amount %q", args[0])
			}
			if _, err := app.Logs.AddWater(context.Background(), domain.WaterLogEntry{
				AmountML: ml,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), logged("water", fmt.Sprintf("%d ml", ml)))
			return nil
		},
	}
}

func logged(stream, what string) string {
	return formatter.StyleGreen.Render("✔") + " Logged " + stream + ": " + formatter.Bold(what)
}
