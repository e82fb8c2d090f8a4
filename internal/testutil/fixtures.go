package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pulseplan/internal/domain"
)

// Profile options
type ProfileOption func(*domain.UserProfile)

func WithChildren(n int) ProfileOption {
	return func(p *domain.UserProfile) {
		p.ChildrenCount = n
	}
}

func WithConditions(markers ...string) ProfileOption {
	return func(p *domain.UserProfile) {
		p.Conditions = markers
	}
}

func WithWorkSchedule(s domain.WorkSchedule) ProfileOption {
	return func(p *domain.UserProfile) {
		p.WorkSchedule = s
	}
}

func NewTestProfile(opts ...ProfileOption) *domain.UserProfile {
	now := time.Now().UTC()
	p := &domain.UserProfile{
		ID:               "default",
		Name:             "Test User",
		SleepTargetHours: 8,
		WorkSchedule:     domain.WorkDayShift,
		WorkIntensity:    domain.IntensityModerate,
		MaritalStatus:    domain.StatusSingle,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Plan item options
type ItemOption func(*domain.PlanItem)

func WithPriority(p domain.ItemPriority) ItemOption {
	return func(it *domain.PlanItem) {
		it.Priority = p
	}
}

func WithResolved(completed bool) ItemOption {
	return func(it *domain.PlanItem) {
		if completed {
			it.Complete()
		} else {
			it.Skip()
		}
	}
}

func NewTestItem(scheduledTime, title string, opts ...ItemOption) domain.PlanItem {
	it := domain.PlanItem{
		ID:            uuid.New().String(),
		ScheduledTime: scheduledTime,
		Category:      domain.CategoryBreak,
		Title:         title,
		Priority:      domain.PriorityMedium,
	}
	for _, opt := range opts {
		opt(&it)
	}
	return it
}

func NewTestPlan(date string, items ...domain.PlanItem) *domain.DailyPlan {
	plan := &domain.DailyPlan{Date: date, Items: items}
	plan.SortItems()
	return plan
}

// NewTestSession builds a completed non-manual sleep session.
func NewTestSession(start time.Time, d time.Duration) *domain.SleepSession {
	return &domain.SleepSession{
		ID:              uuid.New().String(),
		StartTime:       start,
		EndTime:         start.Add(d),
		DurationMinutes: int(d.Minutes()),
		EfficiencyScore: 90,
	}
}
