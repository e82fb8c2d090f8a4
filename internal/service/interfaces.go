package service

import (
	"context"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/orchestrator"
)

type ProfileService interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Update(ctx context.Context, p *domain.UserProfile) error
}

type LogService interface {
	AddFood(ctx context.Context, e domain.FoodLogEntry) (*domain.FoodLogEntry, error)
	AddActivity(ctx context.Context, e domain.ActivityLogEntry) (*domain.ActivityLogEntry, error)
	AddMood(ctx context.Context, e domain.MoodLogEntry) (*domain.MoodLogEntry, error)
	AddWeight(ctx context.Context, e domain.WeightLogEntry) (*domain.WeightLogEntry, error)
	AddWater(ctx context.Context, e domain.WaterLogEntry) (*domain.WaterLogEntry, error)
}

type PlanService interface {
	// Today returns the persisted plan for now's date, or ErrNotFound.
	Today(ctx context.Context, now time.Time) (*domain.DailyPlan, error)

	// Regenerate runs a full planning cycle for now's date, reconciles
	// with any existing plan, persists and returns the result. On
	// planner failure the stored plan is left untouched and the error
	// propagates.
	Regenerate(ctx context.Context, now time.Time) (*orchestrator.Result, error)

	// CompleteItem, SkipItem and SnoozeItem apply user actions to
	// today's plan and persist the mutation.
	CompleteItem(ctx context.Context, now time.Time, itemID string) error
	SkipItem(ctx context.Context, now time.Time, itemID string) error
	SnoozeItem(ctx context.Context, now time.Time, itemID string, d time.Duration) error

	// SavePlan persists a plan mutated elsewhere (gatekeeper auto-skips).
	SavePlan(ctx context.Context, plan *domain.DailyPlan) error

	// Snapshot computes the current bio-load snapshot from stored data
	// without calling the planner.
	Snapshot(ctx context.Context, now time.Time) (domain.BioLoadSnapshot, error)
}

type SleepService interface {
	// CompleteSession persists a finished session and upserts the sleep
	// history total for the wake date, atomically.
	CompleteSession(ctx context.Context, session *domain.SleepSession) error

	// AddManualSession records a hand-entered session for when motion
	// sensing is unavailable.
	AddManualSession(ctx context.Context, start, end time.Time) (*domain.SleepSession, error)

	RecentSessions(ctx context.Context, limit int) ([]domain.SleepSession, error)
	RecentHistory(ctx context.Context, limit int) ([]domain.SleepHistoryEntry, error)
}
