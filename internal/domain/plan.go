package domain

import (
	"fmt"
	"sort"
	"time"
)

// PlanItem is a single scheduled entry in a daily plan. Created by the
// orchestrator; mutated in place by user actions and by the gatekeeper's
// auto-skip; never deleted within a day, only superseded at date rollover.
type PlanItem struct {
	ID            string       `json:"id"`
	ScheduledTime string       `json:"scheduledTime"` // HH:MM, local
	Category      ItemCategory `json:"category"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	Completed     bool         `json:"completed"`
	Skipped       bool         `json:"skipped"`
	SnoozedUntil  *int64       `json:"snoozedUntil,omitempty"` // epoch ms, nil when not snoozed
	Priority      ItemPriority `json:"priority"`
	LinkedAction  LinkedAction `json:"linkedAction,omitempty"`
}

// Complete marks the item done. Completing clears a skip: an item is never
// both completed and skipped.
func (it *PlanItem) Complete() {
	it.Completed = true
	it.Skipped = false
	it.SnoozedUntil = nil
}

// Skip marks the item skipped unless it is already completed.
func (it *PlanItem) Skip() {
	if it.Completed {
		return
	}
	it.Skipped = true
	it.SnoozedUntil = nil
}

// Snooze defers the item's interruption until now + d. No-op on items that
// already left the tick loop.
func (it *PlanItem) Snooze(now time.Time, d time.Duration) {
	if it.Completed || it.Skipped {
		return
	}
	until := now.Add(d).UnixMilli()
	it.SnoozedUntil = &until
}

// Snoozed reports whether the item is currently snoozed. A snooze instant
// already in the past counts as not snoozed.
func (it *PlanItem) Snoozed(now time.Time) bool {
	return it.SnoozedUntil != nil && now.UnixMilli() < *it.SnoozedUntil
}

// Resolved reports whether the item has left the tick loop for the day.
func (it *PlanItem) Resolved() bool {
	return it.Completed || it.Skipped
}

// ScheduledAt resolves the HH:MM scheduled time against a calendar date in
// the given location.
func (it *PlanItem) ScheduledAt(date string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02 15:04", date+" "+it.ScheduledTime, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing scheduled time %q: %w", it.ScheduledTime, err)
	}
	return t, nil
}

// DailyPlan is the full schedule for one calendar date. Items are kept
// sorted by scheduled time after every merge.
type DailyPlan struct {
	Date    string     `json:"date"` // YYYY-MM-DD
	Summary string     `json:"summary,omitempty"`
	Items   []PlanItem `json:"items"`
}

// SortItems orders the plan's items by scheduled time ascending. HH:MM
// strings compare correctly as text.
func (p *DailyPlan) SortItems() {
	sort.SliceStable(p.Items, func(i, j int) bool {
		return p.Items[i].ScheduledTime < p.Items[j].ScheduledTime
	})
}

// Item returns a pointer to the item with the given id, or nil.
func (p *DailyPlan) Item(id string) *PlanItem {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return &p.Items[i]
		}
	}
	return nil
}

// AdherenceSummary counts resolved items for the planner request, so a
// mid-day regeneration can adapt instead of restarting.
type AdherenceSummary struct {
	Completed int
	Skipped   int
	Total     int
}

func (p *DailyPlan) Adherence() AdherenceSummary {
	s := AdherenceSummary{Total: len(p.Items)}
	for i := range p.Items {
		switch {
		case p.Items[i].Completed:
			s.Completed++
		case p.Items[i].Skipped:
			s.Skipped++
		}
	}
	return s
}

// DateKey formats t as the plan calendar key in t's location.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
