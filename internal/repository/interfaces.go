package repository

import (
	"context"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

type UserProfileRepo interface {
	Get(ctx context.Context) (*domain.UserProfile, error)
	Upsert(ctx context.Context, p *domain.UserProfile) error
}

type PlanRepo interface {
	GetByDate(ctx context.Context, date string) (*domain.DailyPlan, error)
	Save(ctx context.Context, plan *domain.DailyPlan) error
}

type SleepHistoryRepo interface {
	// Upsert writes the entry for its date, replacing any existing one.
	Upsert(ctx context.Context, e domain.SleepHistoryEntry) error
	// ListRecent returns up to limit entries, newest date first.
	ListRecent(ctx context.Context, limit int) ([]domain.SleepHistoryEntry, error)
}

type SleepSessionRepo interface {
	Save(ctx context.Context, s *domain.SleepSession) error
	// ListRecent returns up to limit sessions, newest start first.
	ListRecent(ctx context.Context, limit int) ([]domain.SleepSession, error)
}

// LogRepo covers the append-only log streams.
type LogRepo interface {
	AppendFood(ctx context.Context, e domain.FoodLogEntry) error
	AppendActivity(ctx context.Context, e domain.ActivityLogEntry) error
	AppendMood(ctx context.Context, e domain.MoodLogEntry) error
	AppendWeight(ctx context.Context, e domain.WeightLogEntry) error
	AppendWater(ctx context.Context, e domain.WaterLogEntry) error

	// List methods return up to limit entries, newest first.
	ListFood(ctx context.Context, limit int) ([]domain.FoodLogEntry, error)
	ListActivity(ctx context.Context, limit int) ([]domain.ActivityLogEntry, error)
	ListMood(ctx context.Context, limit int) ([]domain.MoodLogEntry, error)
	ListWeight(ctx context.Context, limit int) ([]domain.WeightLogEntry, error)
	ListWater(ctx context.Context, limit int) ([]domain.WaterLogEntry, error)
}
