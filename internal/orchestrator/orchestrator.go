// Package orchestrator drives plan regeneration: it computes the bio-load
// snapshot, calls the external Planner Service, and reconciles the fresh
// schedule with whatever the user already did today.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pulseplan/internal/bioload"
	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/planner"
)

// ErrRegenerationInFlight is returned when a regeneration is requested
// while another is still running. Requests are dropped, not queued.
var ErrRegenerationInFlight = errors.New("plan regeneration already in flight")

// Input carries everything one regeneration cycle needs.
type Input struct {
	Profile      domain.UserProfile
	FoodLog      []domain.FoodLogEntry
	ActivityLog  []domain.ActivityLogEntry
	MoodLog      []domain.MoodLogEntry
	WeightLog    []domain.WeightLogEntry
	WaterLog     []domain.WaterLogEntry
	SleepHistory []domain.SleepHistoryEntry
	Current      *domain.DailyPlan // today's existing plan, nil if none
	Env          planner.EnvContext
	Now          time.Time
}

// Result is a reconciled plan plus the snapshot it was generated from.
// The snapshot is embedded for display only, never persisted as
// authoritative state.
type Result struct {
	Plan     *domain.DailyPlan
	Snapshot domain.BioLoadSnapshot
}

type Orchestrator struct {
	client planner.Client
	busy   atomic.Bool
}

func New(client planner.Client) *Orchestrator {
	return &Orchestrator{client: client}
}

// InFlight reports whether a regeneration is currently running.
func (o *Orchestrator) InFlight() bool { return o.busy.Load() }

// Regenerate runs one planning cycle. On Planner Service failure the
// error propagates untouched and no plan is fabricated; the caller
// decides whether to keep the stale plan or surface the error.
func (o *Orchestrator) Regenerate(ctx context.Context, in Input) (*Result, error) {
	if !o.busy.CompareAndSwap(false, true) {
		return nil, ErrRegenerationInFlight
	}
	defer o.busy.Store(false)

	snapshot := bioload.Compute(bioload.Input{
		Profile:      in.Profile,
		FoodLog:      in.FoodLog,
		ActivityLog:  in.ActivityLog,
		MoodLog:      in.MoodLog,
		SleepHistory: in.SleepHistory,
	})

	date := domain.DateKey(in.Now)
	req := planner.PlanRequest{
		Date:         date,
		Profile:      planner.ProfileToWire(in.Profile),
		FoodLog:      in.FoodLog,
		ActivityLog:  in.ActivityLog,
		MoodLog:      in.MoodLog,
		WeightLog:    in.WeightLog,
		WaterLog:     in.WaterLog,
		SleepHistory: in.SleepHistory,
		BioLoad:      planner.SnapshotToWire(snapshot),
		Env:          in.Env,
	}
	if in.Current != nil && in.Current.Date == date {
		a := in.Current.Adherence()
		req.Adherence = &planner.Adherence{
			Completed: a.Completed,
			Skipped:   a.Skipped,
			Total:     a.Total,
		}
	}

	resp, err := o.client.GeneratePlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("planner service: %w", err)
	}

	fresh := fromWire(date, *resp)
	merged := Reconcile(in.Current, fresh)
	return &Result{Plan: &merged, Snapshot: snapshot}, nil
}

// fromWire converts a service response into a domain plan for the
// requested date. The service echoes the date; the request date wins so a
// confused response cannot move the plan to another day.
func fromWire(date string, resp planner.PlanResponse) domain.DailyPlan {
	plan := domain.DailyPlan{
		Date:    date,
		Summary: resp.Summary,
		Items:   make([]domain.PlanItem, 0, len(resp.Items)),
	}
	for _, it := range resp.Items {
		id := it.ID
		if id == "" {
			id = uuid.New().String()
		}
		priority := domain.ItemPriority(it.Priority)
		switch priority {
		case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		default:
			priority = domain.PriorityMedium
		}
		plan.Items = append(plan.Items, domain.PlanItem{
			ID:            id,
			ScheduledTime: it.ScheduledTime,
			Category:      domain.ItemCategory(it.Category),
			Title:         it.Title,
			Description:   it.Description,
			Priority:      priority,
			LinkedAction:  domain.LinkedAction(it.LinkedAction),
		})
	}
	plan.SortItems()
	return plan
}

// Reconcile merges a freshly generated plan with the existing plan for
// the same date. Items the user already resolved are kept verbatim;
// fresh items that duplicate a resolved item's time or title are
// dropped, so a mid-day regeneration never erases what the user did and
// never reintroduces an item just completed.
func Reconcile(existing *domain.DailyPlan, fresh domain.DailyPlan) domain.DailyPlan {
	if existing == nil || existing.Date != fresh.Date {
		fresh.SortItems()
		return fresh
	}

	var history []domain.PlanItem
	historyTimes := make(map[string]bool)
	historyTitles := make(map[string]bool)
	for _, it := range existing.Items {
		if !it.Resolved() {
			continue
		}
		history = append(history, it)
		historyTimes[it.ScheduledTime] = true
		historyTitles[it.Title] = true
	}

	merged := domain.DailyPlan{
		Date:    fresh.Date,
		Summary: domain.CoalesceStr(fresh.Summary, existing.Summary),
		Items:   history,
	}
	for _, it := range fresh.Items {
		if historyTimes[it.ScheduledTime] || historyTitles[it.Title] {
			continue
		}
		merged.Items = append(merged.Items, it)
	}
	merged.SortItems()
	return merged
}
