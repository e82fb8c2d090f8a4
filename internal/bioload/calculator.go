// Package bioload turns raw life-logs and a profile into a normalized
// physiological-load snapshot. Pure and deterministic: no I/O, no clock,
// no hidden state.
package bioload

import (
	"strings"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

const (
	sleepWindow    = 3  // sleep-history entries averaged
	moodWindow     = 5  // mood entries inspected
	foodWindow     = 10 // food entries inspected for vitamin flags
	activityWindow = 5  // activity entries summed for fatigue

	sleepDeficitWeight = 12.0
	drainPerChild      = 5.0
	drainHardWork      = 15.0
	drainPartnered     = 5.0

	hormonalBaseline  = 20.0
	hormonalDiabetes  = 20.0
	hormonalNightWork = 30.0
	hormonalPerMood   = 10.0

	fatigueCalorieUnit   = 500.0
	fatigueUnitWeight    = 10.0
	fatigueShortSleepMul = 1.5
	shortSleepHours      = 6.0
)

// Markers matched case-insensitively against free-text food descriptions.
var leafyGreenMarkers = []string{
	"spinach", "kale", "lettuce", "broccoli", "chard", "arugula",
	"cabbage", "salad", "greens",
}

const topHealthGrade = "A"

// Input carries everything Compute needs. Slices are ordered
// newest-first; missing history degrades to baseline defaults.
type Input struct {
	Profile      domain.UserProfile
	FoodLog      []domain.FoodLogEntry
	ActivityLog  []domain.ActivityLogEntry
	MoodLog      []domain.MoodLogEntry
	SleepHistory []domain.SleepHistoryEntry
}

// Compute derives the BioLoadSnapshot for one planning cycle.
func Compute(in Input) domain.BioLoadSnapshot {
	avgSleep, haveSleep := averageSleep(in.SleepHistory)
	sleepDeficit := 0.0
	if haveSleep {
		sleepDeficit = in.Profile.SleepTargetHours - avgSleep
	}

	battery := 100.0
	if sleepDeficit > 0 {
		battery -= sleepDeficitWeight * sleepDeficit
	}

	drain := socialDrain(in.Profile)
	battery -= drain

	hormonal := hormonalBaseline
	if in.Profile.HasCondition("diabet") {
		hormonal += hormonalDiabetes
	}
	if in.Profile.WorkSchedule == domain.WorkNightShift {
		hormonal += hormonalNightWork
	}
	hormonal += hormonalPerMood * float64(stressedMoods(in.MoodLog))

	fatigue := physicalFatigue(in.ActivityLog)
	if haveSleep && avgSleep < shortSleepHours {
		fatigue *= fatigueShortSleepMul
	}

	return domain.BioLoadSnapshot{
		NeuralBattery:   domain.Clamp(battery, 0, 100),
		HormonalLoad:    domain.Clamp(hormonal, 0, 100),
		PhysicalFatigue: domain.Clamp(fatigue, 0, 100),
		VitaminWarnings: vitaminWarnings(in.FoodLog, sleepDeficit),
		SocialDrain:     drain,
	}
}

func averageSleep(history []domain.SleepHistoryEntry) (float64, bool) {
	n := min(len(history), sleepWindow)
	if n == 0 {
		return 0, false
	}
	var sum float64
	for _, e := range history[:n] {
		sum += e.Hours
	}
	return sum / float64(n), true
}

func socialDrain(p domain.UserProfile) float64 {
	drain := drainPerChild * float64(p.ChildrenCount)
	if p.WorkIntensity == domain.IntensityHeavyLabor || p.WorkSchedule == domain.WorkNightShift {
		drain += drainHardWork
	}
	if p.Partnered() {
		drain += drainPartnered
	}
	return drain
}

func stressedMoods(moods []domain.MoodLogEntry) int {
	n := min(len(moods), moodWindow)
	count := 0
	for _, m := range moods[:n] {
		if m.Mood == domain.MoodStressed || m.Mood == domain.MoodSad {
			count++
		}
	}
	return count
}

func physicalFatigue(activities []domain.ActivityLogEntry) float64 {
	n := min(len(activities), activityWindow)
	var burned float64
	for _, a := range activities[:n] {
		burned += a.CaloriesBurned
	}
	return burned / fatigueCalorieUnit * fatigueUnitWeight
}

func vitaminWarnings(food []domain.FoodLogEntry, sleepDeficit float64) []string {
	n := min(len(food), foodWindow)
	recent := food[:n]

	var warnings []string
	// An empty food log carries no signal, so the intake flags stay off.
	if n > 0 {
		if !anyEntryMatches(recent, hasLeafyGreen) {
			warnings = append(warnings, "low green-vegetable intake")
		}
		if !anyEntryMatches(recent, func(e domain.FoodLogEntry) bool {
			return e.HealthGrade == topHealthGrade
		}) {
			warnings = append(warnings, "low vitamin C")
		}
	}
	if sleepDeficit > 2 {
		warnings = append(warnings, "cortisol likely depleting magnesium")
	}
	return warnings
}

func anyEntryMatches(entries []domain.FoodLogEntry, match func(domain.FoodLogEntry) bool) bool {
	for _, e := range entries {
		if match(e) {
			return true
		}
	}
	return false
}

func hasLeafyGreen(e domain.FoodLogEntry) bool {
	text := strings.ToLower(e.Name + " " + e.Description)
	for _, marker := range leafyGreenMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
