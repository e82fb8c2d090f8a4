package planner

import (
	"fmt"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

// EnvContext is the ambient situation sent with every plan request.
type EnvContext struct {
	LocalTime      string  `json:"localTime"` // RFC3339 in the user's zone
	Weekday        string  `json:"weekday"`
	WeatherSummary string  `json:"weatherSummary,omitempty"`
	TemperatureC   float64 `json:"temperatureC,omitempty"`
	Locale         string  `json:"locale"`
}

// PlanRequest is the body sent to the Planner Service. The service is
// idempotent for a given date; reconciliation with an existing plan is
// the orchestrator's job, not the service's.
type PlanRequest struct {
	Date         string                     `json:"date"` // YYYY-MM-DD
	Profile      Profile                    `json:"profile"`
	FoodLog      []domain.FoodLogEntry      `json:"foodLog,omitempty"`
	ActivityLog  []domain.ActivityLogEntry  `json:"activityLog,omitempty"`
	MoodLog      []domain.MoodLogEntry      `json:"moodLog,omitempty"`
	WeightLog    []domain.WeightLogEntry    `json:"weightLog,omitempty"`
	WaterLog     []domain.WaterLogEntry     `json:"waterLog,omitempty"`
	SleepHistory []domain.SleepHistoryEntry `json:"sleepHistory,omitempty"`
	BioLoad      BioLoad                    `json:"bioLoad"`
	Env          EnvContext                 `json:"env"`
	// Adherence of an already existing plan for the same date, so the
	// service can adapt rather than restart. Nil on the first run of a day.
	Adherence *Adherence `json:"adherence,omitempty"`
}

// Profile is the wire form of the user profile.
type Profile struct {
	Name             string   `json:"name,omitempty"`
	WeightKg         float64  `json:"weightKg,omitempty"`
	SleepTargetHours float64  `json:"sleepTargetHours"`
	WorkSchedule     string   `json:"workSchedule"`
	WorkIntensity    string   `json:"workIntensity"`
	MaritalStatus    string   `json:"maritalStatus"`
	ChildrenCount    int      `json:"childrenCount"`
	Conditions       []string `json:"conditions,omitempty"`
	Goal             string   `json:"goal,omitempty"`
}

// BioLoad is the wire form of the snapshot.
type BioLoad struct {
	NeuralBattery   float64  `json:"neuralBattery"`
	HormonalLoad    float64  `json:"hormonalLoad"`
	PhysicalFatigue float64  `json:"physicalFatigue"`
	VitaminWarnings []string `json:"vitaminWarnings,omitempty"`
	SocialDrain     float64  `json:"socialDrain"`
}

type Adherence struct {
	Completed int `json:"completed"`
	Skipped   int `json:"skipped"`
	Total     int `json:"total"`
}

// PlanResponse is the structured schedule returned by the service.
type PlanResponse struct {
	Date    string     `json:"date"`
	Summary string     `json:"summary"`
	BioLoad *BioLoad   `json:"bioLoad,omitempty"` // echo, display only
	Items   []PlanItem `json:"items"`
}

type PlanItem struct {
	ID            string `json:"id,omitempty"`
	ScheduledTime string `json:"scheduledTime"` // HH:MM
	Category      string `json:"category"`
	Title         string `json:"title"`
	Description   string `json:"description,omitempty"`
	Priority      string `json:"priority"`
	LinkedAction  string `json:"linkedAction,omitempty"`
}

// ValidatePlanResponse checks the structural invariants of a service
// response before it is accepted.
func ValidatePlanResponse(resp PlanResponse) error {
	if resp.Date == "" {
		return fmt.Errorf("missing date")
	}
	if len(resp.Items) == 0 {
		return fmt.Errorf("plan has no items")
	}
	for i, item := range resp.Items {
		if item.Title == "" {
			return fmt.Errorf("item %d: missing title", i)
		}
		if len(item.ScheduledTime) != 5 || item.ScheduledTime[2] != ':' {
			return fmt.Errorf("item %d: scheduledTime %q is not HH:MM", i, item.ScheduledTime)
		}
		if !domain.ValidItemCategories[item.Category] {
			return fmt.Errorf("item %d: unknown category %q", i, item.Category)
		}
	}
	return nil
}

// SnapshotToWire converts the domain snapshot to its wire form.
func SnapshotToWire(s domain.BioLoadSnapshot) BioLoad {
	return BioLoad{
		NeuralBattery:   s.NeuralBattery,
		HormonalLoad:    s.HormonalLoad,
		PhysicalFatigue: s.PhysicalFatigue,
		VitaminWarnings: s.VitaminWarnings,
		SocialDrain:     s.SocialDrain,
	}
}

// ProfileToWire converts the domain profile to its wire form.
func ProfileToWire(p domain.UserProfile) Profile {
	return Profile{
		Name:             p.Name,
		WeightKg:         p.WeightKg,
		SleepTargetHours: p.SleepTargetHours,
		WorkSchedule:     string(p.WorkSchedule),
		WorkIntensity:    string(p.WorkIntensity),
		MaritalStatus:    string(p.MaritalStatus),
		ChildrenCount:    p.ChildrenCount,
		Conditions:       p.Conditions,
		Goal:             p.Goal,
	}
}
