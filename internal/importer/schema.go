// Package importer reads a JSON archive of health data (an export from a
// phone app or another tracker) and converts it into domain records.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
)

// ArchiveSchema is the top-level JSON structure for a health-data import.
type ArchiveSchema struct {
	Profile       *ProfileImport   `json:"profile,omitempty"`
	Food          []FoodImport     `json:"food,omitempty"`
	Activity      []ActivityImport `json:"activity,omitempty"`
	Mood          []MoodImport     `json:"mood,omitempty"`
	Weight        []WeightImport   `json:"weight,omitempty"`
	Water         []WaterImport    `json:"water,omitempty"`
	SleepSessions []SleepImport    `json:"sleep_sessions,omitempty"`
}

// ProfileImport defines the profile fields in the archive.
type ProfileImport struct {
	Name             string   `json:"name,omitempty"`
	SleepTargetHours *float64 `json:"sleep_target_hours,omitempty"`
	WorkSchedule     string   `json:"work_schedule,omitempty"`
	WorkIntensity    string   `json:"work_intensity,omitempty"`
	MaritalStatus    string   `json:"marital_status,omitempty"`
	ChildrenCount    *int     `json:"children_count,omitempty"`
	Conditions       []string `json:"conditions,omitempty"`
	Goal             string   `json:"goal,omitempty"`
}

// FoodImport defines one food log entry in the archive.
type FoodImport struct {
	At          string  `json:"at"` // RFC3339
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
	HealthGrade string  `json:"health_grade,omitempty"`
}

// ActivityImport defines one activity log entry in the archive.
type ActivityImport struct {
	At             string  `json:"at"`
	Kind           string  `json:"kind"`
	DurationMin    int     `json:"duration_min,omitempty"`
	CaloriesBurned float64 `json:"calories_burned,omitempty"`
}

// MoodImport defines one mood log entry in the archive.
type MoodImport struct {
	At   string `json:"at"`
	Mood string `json:"mood"`
	Note string `json:"note,omitempty"`
}

// WeightImport defines one weight measurement in the archive.
type WeightImport struct {
	At       string  `json:"at"`
	WeightKg float64 `json:"weight_kg"`
}

// WaterImport defines one water intake entry in the archive.
type WaterImport struct {
	At       string `json:"at"`
	AmountML int    `json:"amount_ml"`
}

// SleepImport defines one completed sleep session in the archive.
type SleepImport struct {
	Start string `json:"start"` // RFC3339
	End   string `json:"end"`
}

// LoadArchive reads and parses a health-data archive JSON file.
func LoadArchive(path string) (*ArchiveSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var schema ArchiveSchema
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("parsing archive file: %w", err)
	}
	return &schema, nil
}
