package importer

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/service"
)

// Summary counts what an import wrote.
type Summary struct {
	Food     int
	Activity int
	Mood     int
	Weight   int
	Water    int
	Sleep    int
	Profile  bool
}

func (s Summary) Total() int {
	return s.Food + s.Activity + s.Mood + s.Weight + s.Water + s.Sleep
}

// Apply validates the archive and writes its records through the
// services, so imported entries get the same stamping and persistence
// path as live ones. The archive must be valid; call ValidateArchive
// first for full error reporting.
func Apply(
	ctx context.Context,
	schema *ArchiveSchema,
	profiles service.ProfileService,
	logs service.LogService,
	sleeps service.SleepService,
) (Summary, error) {
	var sum Summary

	if errs := ValidateArchive(schema); len(errs) > 0 {
		return sum, fmt.Errorf("invalid archive: %w", errs[0])
	}

	if schema.Profile != nil {
		if err := applyProfile(ctx, profiles, schema.Profile); err != nil {
			return sum, fmt.Errorf("importing profile: %w", err)
		}
		sum.Profile = true
	}

	for _, f := range schema.Food {
		at, _ := time.Parse(time.RFC3339, f.At)
		_, err := logs.AddFood(ctx, domain.FoodLogEntry{
			Timestamp:   at.UnixMilli(),
			Name:        f.Name,
			Description: f.Description,
			Calories:    f.Calories,
			HealthGrade: f.HealthGrade,
		})
		if err != nil {
			return sum, fmt.Errorf("importing food entry: %w", err)
		}
		sum.Food++
	}

	for _, a := range schema.Activity {
		at, _ := time.Parse(time.RFC3339, a.At)
		_, err := logs.AddActivity(ctx, domain.ActivityLogEntry{
			Timestamp:      at.UnixMilli(),
			Kind:           a.Kind,
			DurationMin:    a.DurationMin,
			CaloriesBurned: a.CaloriesBurned,
		})
		if err != nil {
			return sum, fmt.Errorf("importing activity entry: %w", err)
		}
		sum.Activity++
	}

	for _, m := range schema.Mood {
		at, _ := time.Parse(time.RFC3339, m.At)
		_, err := logs.AddMood(ctx, domain.MoodLogEntry{
			Timestamp: at.UnixMilli(),
			Mood:      domain.MoodKind(m.Mood),
			Note:      m.Note,
		})
		if err != nil {
			return sum, fmt.Errorf("importing mood entry: %w", err)
		}
		sum.Mood++
	}

	for _, w := range schema.Weight {
		at, _ := time.Parse(time.RFC3339, w.At)
		_, err := logs.AddWeight(ctx, domain.WeightLogEntry{
			Timestamp: at.UnixMilli(),
			WeightKg:  w.WeightKg,
		})
		if err != nil {
			return sum, fmt.Errorf("importing weight entry: %w", err)
		}
		sum.Weight++
	}

	for _, w := range schema.Water {
		at, _ := time.Parse(time.RFC3339, w.At)
		_, err := logs.AddWater(ctx, domain.WaterLogEntry{
			Timestamp: at.UnixMilli(),
			AmountML:  w.AmountML,
		})
		if err != nil {
			return sum, fmt.Errorf("importing water entry: %w", err)
		}
		sum.Water++
	}

	for _, s := range schema.SleepSessions {
		start, _ := time.Parse(time.RFC3339, s.Start)
		end, _ := time.Parse(time.RFC3339, s.End)
		if _, err := sleeps.AddManualSession(ctx, start, end); err != nil {
			return sum, fmt.Errorf("importing sleep session: %w", err)
		}
		sum.Sleep++
	}

	return sum, nil
}

func applyProfile(ctx context.Context, profiles service.ProfileService, in *ProfileImport) error {
	p, err := profiles.Get(ctx)
	if err != nil {
		return err
	}
	if in.Name != "" {
		p.Name = in.Name
	}
	if in.SleepTargetHours != nil {
		p.SleepTargetHours = *in.SleepTargetHours
	}
	if in.WorkSchedule != "" {
		p.WorkSchedule = domain.WorkSchedule(in.WorkSchedule)
	}
	if in.WorkIntensity != "" {
		p.WorkIntensity = domain.WorkIntensity(in.WorkIntensity)
	}
	if in.MaritalStatus != "" {
		p.MaritalStatus = domain.MaritalStatus(in.MaritalStatus)
	}
	if in.ChildrenCount != nil {
		p.ChildrenCount = *in.ChildrenCount
	}
	if len(in.Conditions) > 0 {
		p.Conditions = in.Conditions
	}
	if in.Goal != "" {
		p.Goal = in.Goal
	}
	return profiles.Update(ctx, p)
}
