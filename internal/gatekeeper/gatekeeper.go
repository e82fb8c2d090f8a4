// Package gatekeeper decides, per plan item, whether and when to surface
// an interruption, gated by the live activity context and the item's
// priority.
package gatekeeper

import (
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/interrupt"
)

// Notifier receives the single externally observable effect of this
// component.
type Notifier interface {
	Notify(title, body string)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(title, body string)

func (f NotifierFunc) Notify(title, body string) { f(title, body) }

// Config holds the gatekeeper policy windows. DueWindow and
// AutoSkipAfter default to the same 60 minutes but are independent
// policies and tuned separately.
type Config struct {
	DueWindow     time.Duration // interruption eligibility after scheduled time
	AutoSkipAfter time.Duration // overdue horizon before forcing a skip
	Snooze        time.Duration // deferral applied by a snooze action
}

func DefaultConfig() Config {
	return Config{
		DueWindow:     60 * time.Minute,
		AutoSkipAfter: 60 * time.Minute,
		Snooze:        15 * time.Minute,
	}
}

// TickResult reports what one evaluation cycle did, for persistence and
// logging by the caller.
type TickResult struct {
	Notified    []string // item ids that fired an interruption
	AutoSkipped []string // item ids force-skipped as overdue
	DateRolled  bool     // bookkeeping was reset, evaluation skipped
}

// Changed reports whether the tick mutated the plan or fired anything.
func (r TickResult) Changed() bool {
	return len(r.Notified) > 0 || len(r.AutoSkipped) > 0
}

// Gatekeeper is the per-item timer-driven state machine. Not safe for
// concurrent use; the engine loop owns it and always passes the current
// plan reference at tick time.
type Gatekeeper struct {
	cfg      Config
	loc      *time.Location
	notifier Notifier

	// Per-day bookkeeping, reset whenever the working plan's date
	// changes. notified is the explicit fire-at-most-once set keyed by
	// item id.
	planDate string
	notified map[string]bool
	items    map[string]*interrupt.Machine
}

func New(cfg Config, loc *time.Location, notifier Notifier) *Gatekeeper {
	if loc == nil {
		loc = time.Local
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string, string) {})
	}
	return &Gatekeeper{
		cfg:      cfg,
		loc:      loc,
		notifier: notifier,
		notified: make(map[string]bool),
		items:    make(map[string]*interrupt.Machine),
	}
}

// ResetBookkeeping clears the notified set and per-item timers. Called on
// date rollover and after a plan regeneration replaces today's plan.
func (g *Gatekeeper) ResetBookkeeping(planDate string) {
	g.planDate = planDate
	g.notified = make(map[string]bool)
	g.items = make(map[string]*interrupt.Machine)
}

// Tick evaluates every item of the given plan against now and the live
// context state. It mutates overdue items in place (auto-skip) and fires
// at most one notification per item per day.
func (g *Gatekeeper) Tick(now time.Time, plan *domain.DailyPlan, ctx domain.UserContextState) TickResult {
	var res TickResult
	if plan == nil {
		return res
	}

	// Date rollover: stale items must not be auto-skipped against a new
	// day's clock. Clear bookkeeping and sit this cycle out.
	today := domain.DateKey(now.In(g.loc))
	if plan.Date != today {
		g.ResetBookkeeping(plan.Date)
		res.DateRolled = true
		return res
	}
	if g.planDate != plan.Date {
		g.ResetBookkeeping(plan.Date)
	}

	for i := range plan.Items {
		g.tickItem(now, plan, &plan.Items[i], ctx, &res)
	}
	return res
}

func (g *Gatekeeper) tickItem(now time.Time, plan *domain.DailyPlan, item *domain.PlanItem, ctx domain.UserContextState, res *TickResult) {
	scheduledAt, err := item.ScheduledAt(plan.Date, g.loc)
	if err != nil {
		return
	}

	m, ok := g.items[item.ID]
	if !ok {
		m = interrupt.NewMachine(0, g.cfg.AutoSkipAfter)
		m.Arm(scheduledAt)
		g.items[item.ID] = m
	}

	// Drain the item's timer: Due marks due-window entry, Expired is the
	// unconditional overdue auto-skip.
	for ev := m.Tick(now); ev != interrupt.EventNone; ev = m.Tick(now) {
		if ev == interrupt.EventExpired && !item.Resolved() {
			item.Skip()
			res.AutoSkipped = append(res.AutoSkipped, item.ID)
		}
	}

	// Completed and skipped items have left the tick loop for the day.
	if item.Resolved() {
		return
	}
	if g.notified[item.ID] {
		return
	}
	if item.Snoozed(now) {
		return
	}

	since := now.Sub(scheduledAt)
	if since < 0 || since >= g.cfg.DueWindow {
		return
	}

	// Context gate: high priority bypasses suppression entirely (the
	// safety override for things like medication reminders).
	if suppressed(ctx) && item.Priority != domain.PriorityHigh {
		return
	}

	g.notifier.Notify(item.Title, item.Description)
	g.notified[item.ID] = true
	res.Notified = append(res.Notified, item.ID)
}

func suppressed(ctx domain.UserContextState) bool {
	return ctx == domain.ContextDriving || ctx == domain.ContextSleeping
}

// Snooze defers the item with the given id by the configured snooze
// duration. Returns false when the item is unknown or already resolved.
func (g *Gatekeeper) Snooze(now time.Time, plan *domain.DailyPlan, itemID string) bool {
	if plan == nil {
		return false
	}
	item := plan.Item(itemID)
	if item == nil || item.Resolved() {
		return false
	}
	item.Snooze(now, g.cfg.Snooze)
	return true
}
