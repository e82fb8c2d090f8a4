package domain

type ItemCategory string

const (
	CategoryMeal      ItemCategory = "meal"
	CategoryWorkout   ItemCategory = "workout"
	CategoryHydration ItemCategory = "hydration"
	CategorySleep     ItemCategory = "sleep"
	CategoryBreak     ItemCategory = "break"
)

// ValidItemCategories is the canonical set of accepted plan item categories.
var ValidItemCategories = map[string]bool{
	"meal": true, "workout": true, "hydration": true,
	"sleep": true, "break": true,
}

type ItemPriority string

const (
	PriorityHigh   ItemPriority = "high"
	PriorityMedium ItemPriority = "medium"
	PriorityLow    ItemPriority = "low"
)

type LinkedAction string

const (
	ActionLogMeal     LinkedAction = "log_meal"
	ActionLogWater    LinkedAction = "log_water"
	ActionLogWorkout  LinkedAction = "log_workout"
	ActionStartSleep  LinkedAction = "start_sleep"
	ActionOpenCheckIn LinkedAction = "open_check_in"
)

// UserContextState is the discrete activity state derived from sensors.
type UserContextState string

const (
	ContextIdle     UserContextState = "idle"
	ContextWalking  UserContextState = "walking"
	ContextRunning  UserContextState = "running"
	ContextDriving  UserContextState = "driving"
	ContextSleeping UserContextState = "sleeping"
)

type WorkSchedule string

const (
	WorkDayShift   WorkSchedule = "day_shift"
	WorkNightShift WorkSchedule = "night_shift"
	WorkFlexible   WorkSchedule = "flexible"
)

type WorkIntensity string

const (
	IntensitySedentary  WorkIntensity = "sedentary"
	IntensityModerate   WorkIntensity = "moderate"
	IntensityHeavyLabor WorkIntensity = "heavy_labor"
)

type MaritalStatus string

const (
	StatusSingle    MaritalStatus = "single"
	StatusPartnered MaritalStatus = "partnered"
	StatusMarried   MaritalStatus = "married"
)

type MoodKind string

const (
	MoodCalm     MoodKind = "calm"
	MoodHappy    MoodKind = "happy"
	MoodStressed MoodKind = "stressed"
	MoodSad      MoodKind = "sad"
	MoodTired    MoodKind = "tired"
)

type SleepStage string

const (
	StageLight SleepStage = "light"
	StageDeep  SleepStage = "deep"
	StageAwake SleepStage = "awake"
)
