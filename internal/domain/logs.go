package domain

import "time"

// Log entries are timestamped facts: append-only, never mutated after
// creation, identified by opaque id plus epoch-millisecond timestamp.

type FoodLogEntry struct {
	ID          string  `json:"id"`
	Timestamp   int64   `json:"timestamp"` // epoch ms
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Calories    float64 `json:"calories,omitempty"`
	HealthGrade string  `json:"healthGrade,omitempty"` // "A".."E", best first
}

type ActivityLogEntry struct {
	ID             string  `json:"id"`
	Timestamp      int64   `json:"timestamp"`
	Kind           string  `json:"kind"`
	DurationMin    int     `json:"durationMin,omitempty"`
	CaloriesBurned float64 `json:"caloriesBurned,omitempty"`
}

type MoodLogEntry struct {
	ID        string   `json:"id"`
	Timestamp int64    `json:"timestamp"`
	Mood      MoodKind `json:"mood"`
	Note      string   `json:"note,omitempty"`
}

type WeightLogEntry struct {
	ID        string  `json:"id"`
	Timestamp int64   `json:"timestamp"`
	WeightKg  float64 `json:"weightKg"`
}

type WaterLogEntry struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"`
	AmountML  int    `json:"amountMl"`
}

// SleepHistoryEntry holds the confirmed sleep total for one calendar date.
// At most one entry per date; completing a session for a date upserts it.
type SleepHistoryEntry struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Hours float64 `json:"hours"`
}

// TimeOf converts an epoch-millisecond timestamp to a time.Time.
func TimeOf(epochMs int64) time.Time {
	return time.UnixMilli(epochMs)
}
