package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/pulseplan/internal/bioload"
	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/orchestrator"
	"github.com/alexanderramin/pulseplan/internal/planner"
	"github.com/alexanderramin/pulseplan/internal/repository"
)

// ErrItemNotFound indicates the referenced plan item does not exist in
// today's plan.
var ErrItemNotFound = errors.New("plan item not found")

// recentWindow bounds how much log history is shipped to the planner.
const recentWindow = 20

type planService struct {
	orch     *orchestrator.Orchestrator
	plans    repository.PlanRepo
	profiles repository.UserProfileRepo
	logs     repository.LogRepo
	sleep    repository.SleepHistoryRepo
	observer UseCaseObserver
}

func NewPlanService(
	orch *orchestrator.Orchestrator,
	plans repository.PlanRepo,
	profiles repository.UserProfileRepo,
	logs repository.LogRepo,
	sleep repository.SleepHistoryRepo,
	observers ...UseCaseObserver,
) PlanService {
	return &planService{
		orch:     orch,
		plans:    plans,
		profiles: profiles,
		logs:     logs,
		sleep:    sleep,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *planService) Today(ctx context.Context, now time.Time) (*domain.DailyPlan, error) {
	return s.plans.GetByDate(ctx, domain.DateKey(now))
}

func (s *planService) Regenerate(ctx context.Context, now time.Time) (res *orchestrator.Result, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": domain.DateKey(now)}
	defer func() {
		observe(ctx, s.observer, "regenerate-plan", startedAt, fields, err)
	}()

	in, err := s.loadInput(ctx, now)
	if err != nil {
		return nil, err
	}

	res, err = s.orch.Regenerate(ctx, *in)
	if err != nil {
		// The stored plan stays untouched; the caller decides whether
		// to keep showing it or surface the failure.
		return nil, err
	}
	fields["items"] = len(res.Plan.Items)

	if err = s.plans.Save(ctx, res.Plan); err != nil {
		return nil, fmt.Errorf("saving regenerated plan: %w", err)
	}
	return res, nil
}

func (s *planService) loadInput(ctx context.Context, now time.Time) (*orchestrator.Input, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("loading profile: %w", err)
		}
		profile = defaultProfile()
	}

	in := orchestrator.Input{Profile: *profile, Now: now}

	if in.FoodLog, err = s.logs.ListFood(ctx, recentWindow); err != nil {
		return nil, fmt.Errorf("loading food log: %w", err)
	}
	if in.ActivityLog, err = s.logs.ListActivity(ctx, recentWindow); err != nil {
		return nil, fmt.Errorf("loading activity log: %w", err)
	}
	if in.MoodLog, err = s.logs.ListMood(ctx, recentWindow); err != nil {
		return nil, fmt.Errorf("loading mood log: %w", err)
	}
	if in.WeightLog, err = s.logs.ListWeight(ctx, recentWindow); err != nil {
		return nil, fmt.Errorf("loading weight log: %w", err)
	}
	if in.WaterLog, err = s.logs.ListWater(ctx, recentWindow); err != nil {
		return nil, fmt.Errorf("loading water log: %w", err)
	}
	if in.SleepHistory, err = s.sleep.ListRecent(ctx, recentWindow); err != nil {
		return nil, fmt.Errorf("loading sleep history: %w", err)
	}

	current, err := s.plans.GetByDate(ctx, domain.DateKey(now))
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading current plan: %w", err)
	}
	in.Current = current

	in.Env = planner.EnvContext{
		LocalTime: now.Format(time.RFC3339),
		Weekday:   now.Weekday().String(),
		Locale:    domain.CoalesceStr(profile.Locale, "en-US"),
	}
	return &in, nil
}

func (s *planService) CompleteItem(ctx context.Context, now time.Time, itemID string) error {
	return s.mutateItem(ctx, now, itemID, func(it *domain.PlanItem) {
		it.Complete()
	})
}

func (s *planService) SkipItem(ctx context.Context, now time.Time, itemID string) error {
	return s.mutateItem(ctx, now, itemID, func(it *domain.PlanItem) {
		it.Skip()
	})
}

func (s *planService) SnoozeItem(ctx context.Context, now time.Time, itemID string, d time.Duration) error {
	return s.mutateItem(ctx, now, itemID, func(it *domain.PlanItem) {
		it.Snooze(now, d)
	})
}

func (s *planService) mutateItem(ctx context.Context, now time.Time, itemID string, mutate func(*domain.PlanItem)) error {
	plan, err := s.plans.GetByDate(ctx, domain.DateKey(now))
	if err != nil {
		return err
	}
	item := plan.Item(itemID)
	if item == nil {
		return fmt.Errorf("item %q: %w", itemID, ErrItemNotFound)
	}
	mutate(item)
	return s.plans.Save(ctx, plan)
}

func (s *planService) SavePlan(ctx context.Context, plan *domain.DailyPlan) error {
	return s.plans.Save(ctx, plan)
}

func (s *planService) Snapshot(ctx context.Context, now time.Time) (domain.BioLoadSnapshot, error) {
	in, err := s.loadInput(ctx, now)
	if err != nil {
		return domain.BioLoadSnapshot{}, err
	}
	return bioload.Compute(bioload.Input{
		Profile:      in.Profile,
		FoodLog:      in.FoodLog,
		ActivityLog:  in.ActivityLog,
		MoodLog:      in.MoodLog,
		SleepHistory: in.SleepHistory,
	}), nil
}
