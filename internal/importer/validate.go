package importer

import (
	"fmt"
	"time"
)

var (
	validMoods = map[string]bool{
		"calm": true, "happy": true, "stressed": true, "sad": true, "tired": true,
	}
	validSchedules = map[string]bool{
		"day_shift": true, "night_shift": true, "flexible": true,
	}
	validIntensities = map[string]bool{
		"sedentary": true, "moderate": true, "heavy_labor": true,
	}
	validMaritalStatuses = map[string]bool{
		"single": true, "partnered": true, "married": true,
	}
	validHealthGrades = map[string]bool{
		"A": true, "B": true, "C": true, "D": true, "E": true,
	}
)

// ValidateArchive checks the archive for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateArchive(schema *ArchiveSchema) []error {
	var errs []error

	errs = append(errs, validateProfile(schema.Profile)...)

	for i, f := range schema.Food {
		errs = append(errs, validateAt(fmt.Sprintf("food[%d]", i), f.At)...)
		if f.Name == "" {
			errs = append(errs, fmt.Errorf("food[%d].name is required", i))
		}
		if f.HealthGrade != "" && !validHealthGrades[f.HealthGrade] {
			errs = append(errs, fmt.Errorf("food[%d].health_grade: invalid value %q", i, f.HealthGrade))
		}
		if f.Calories < 0 {
			errs = append(errs, fmt.Errorf("food[%d].calories must not be negative", i))
		}
	}

	for i, a := range schema.Activity {
		errs = append(errs, validateAt(fmt.Sprintf("activity[%d]", i), a.At)...)
		if a.Kind == "" {
			errs = append(errs, fmt.Errorf("activity[%d].kind is required", i))
		}
		if a.DurationMin < 0 {
			errs = append(errs, fmt.Errorf("activity[%d].duration_min must not be negative", i))
		}
	}

	for i, m := range schema.Mood {
		errs = append(errs, validateAt(fmt.Sprintf("mood[%d]", i), m.At)...)
		if !validMoods[m.Mood] {
			errs = append(errs, fmt.Errorf("mood[%d].mood: invalid value %q", i, m.Mood))
		}
	}

	for i, w := range schema.Weight {
		errs = append(errs, validateAt(fmt.Sprintf("weight[%d]", i), w.At)...)
		if w.WeightKg <= 0 {
			errs = append(errs, fmt.Errorf("weight[%d].weight_kg must be positive", i))
		}
	}

	for i, w := range schema.Water {
		errs = append(errs, validateAt(fmt.Sprintf("water[%d]", i), w.At)...)
		if w.AmountML <= 0 {
			errs = append(errs, fmt.Errorf("water[%d].amount_ml must be positive", i))
		}
	}

	for i, s := range schema.SleepSessions {
		start, startErrs := parseAt(fmt.Sprintf("sleep_sessions[%d].start", i), s.Start)
		end, endErrs := parseAt(fmt.Sprintf("sleep_sessions[%d].end", i), s.End)
		errs = append(errs, startErrs...)
		errs = append(errs, endErrs...)
		if len(startErrs) == 0 && len(endErrs) == 0 && !end.After(start) {
			errs = append(errs, fmt.Errorf("sleep_sessions[%d]: end %q must be after start %q", i, s.End, s.Start))
		}
	}

	return errs
}

func validateProfile(p *ProfileImport) []error {
	if p == nil {
		return nil
	}
	var errs []error

	if p.WorkSchedule != "" && !validSchedules[p.WorkSchedule] {
		errs = append(errs, fmt.Errorf("profile.work_schedule: invalid value %q", p.WorkSchedule))
	}
	if p.WorkIntensity != "" && !validIntensities[p.WorkIntensity] {
		errs = append(errs, fmt.Errorf("profile.work_intensity: invalid value %q", p.WorkIntensity))
	}
	if p.MaritalStatus != "" && !validMaritalStatuses[p.MaritalStatus] {
		errs = append(errs, fmt.Errorf("profile.marital_status: invalid value %q", p.MaritalStatus))
	}
	if p.SleepTargetHours != nil && (*p.SleepTargetHours < 3 || *p.SleepTargetHours > 14) {
		errs = append(errs, fmt.Errorf("profile.sleep_target_hours: %v out of range", *p.SleepTargetHours))
	}
	if p.ChildrenCount != nil && *p.ChildrenCount < 0 {
		errs = append(errs, fmt.Errorf("profile.children_count must not be negative"))
	}

	return errs
}

func validateAt(field, at string) []error {
	_, errs := parseAt(field+".at", at)
	return errs
}

func parseAt(field, at string) (time.Time, []error) {
	if at == "" {
		return time.Time{}, []error{fmt.Errorf("%s is required", field)}
	}
	t, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return time.Time{}, []error{fmt.Errorf("%s: invalid timestamp %q (expected RFC3339)", field, at)}
	}
	return t, nil
}
