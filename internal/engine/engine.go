// Package engine runs the always-on loop tying the sensors, the context
// classifier, the sleep tracker and the notification gatekeeper together.
// All shared state lives inside one goroutine; public methods funnel
// closures into it, so none of the owned components need locks.
package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pulseplan/internal/classifier"
	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/gatekeeper"
	"github.com/alexanderramin/pulseplan/internal/orchestrator"
	"github.com/alexanderramin/pulseplan/internal/sensors"
	"github.com/alexanderramin/pulseplan/internal/service"
	"github.com/alexanderramin/pulseplan/internal/sleep"
)

// ErrNotRunning is returned by commands issued before Run or after Stop.
var ErrNotRunning = errors.New("engine: not running")

// Config holds the loop cadence and clock. The zero value is unusable;
// start from DefaultConfig.
type Config struct {
	GatekeeperInterval time.Duration
	SleepInterval      time.Duration

	// Now supplies the loop's clock. Tests pin it.
	Now func() time.Time

	Location *time.Location
}

func DefaultConfig() Config {
	return Config{
		GatekeeperInterval: 10 * time.Second,
		SleepInterval:      5 * time.Second,
		Now:                time.Now,
		Location:           time.Local,
	}
}

// Status is a point-in-time view of the loop-owned state.
type Status struct {
	Context      domain.UserContextState
	ContextSince time.Time
	SleepState   sleep.State
	Plan         *domain.DailyPlan
	Regenerating bool
}

type regenOutcome struct {
	result *orchestrator.Result
	err    error
}

// Engine owns the cooperative event loop. Construct with New, then Run.
type Engine struct {
	cfg      Config
	plans    service.PlanService
	sleeps   service.SleepService
	gate     *gatekeeper.Gatekeeper
	tracker  *sleep.Tracker
	cls      *classifier.Classifier
	motion   sensors.MotionSource
	position sensors.PositionSource
	notifier gatekeeper.Notifier
	logger   *slog.Logger

	cmds    chan func()
	regens  chan regenOutcome
	done    chan struct{}
	stop    context.CancelFunc
	running atomic.Bool

	// Loop-owned; touched only from run().
	plan *domain.DailyPlan
	busy bool
}

func New(
	cfg Config,
	plans service.PlanService,
	sleeps service.SleepService,
	gate *gatekeeper.Gatekeeper,
	tracker *sleep.Tracker,
	motion sensors.MotionSource,
	position sensors.PositionSource,
	notifier gatekeeper.Notifier,
	logger *slog.Logger,
) *Engine {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if notifier == nil {
		notifier = gatekeeper.NotifierFunc(func(string, string) {})
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Engine{
		cfg:      cfg,
		plans:    plans,
		sleeps:   sleeps,
		gate:     gate,
		tracker:  tracker,
		cls:      classifier.New(),
		motion:   motion,
		position: position,
		notifier: notifier,
		logger:   logger,
		cmds:     make(chan func()),
		regens:   make(chan regenOutcome, 1),
		done:     make(chan struct{}),
	}
}

// Run starts the loop in its own goroutine. It loads today's plan if one
// is stored, then returns; the loop keeps going until Stop or ctx
// cancellation.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return errors.New("engine: already running")
	}
	now := e.cfg.Now()
	plan, err := e.plans.Today(ctx, now)
	if err == nil {
		e.plan = plan
		e.gate.ResetBookkeeping(plan.Date)
	}

	ctx, e.stop = context.WithCancel(ctx)
	e.done = make(chan struct{})
	go e.run(ctx)
	return nil
}

// Stop shuts the loop down and waits for it to exit. The sensor sources
// are closed so their producers stop as well.
func (e *Engine) Stop() {
	if !e.running.CompareAndSwap(true, false) {
		return
	}
	e.stop()
	<-e.done
}

func (e *Engine) run(ctx context.Context) {
	defer close(e.done)
	defer e.motion.Close()
	defer e.position.Close()

	gateTick := time.NewTicker(e.cfg.GatekeeperInterval)
	defer gateTick.Stop()
	sleepTick := time.NewTicker(e.cfg.SleepInterval)
	defer sleepTick.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case fn := <-e.cmds:
			fn()

		case sample, ok := <-e.motion.Motion():
			if !ok {
				continue
			}
			e.tracker.Motion(sample)

		case sample, ok := <-e.position.Positions():
			if !ok {
				continue
			}
			e.cls.Observe(sample)

		case out := <-e.regens:
			e.busy = false
			if out.err != nil {
				e.logger.Warn("plan regeneration failed", "error", out.err)
				continue
			}
			e.plan = out.result.Plan
			e.gate.ResetBookkeeping(e.plan.Date)
			e.logger.Info("plan regenerated",
				"date", e.plan.Date, "items", len(e.plan.Items))

		case <-gateTick.C:
			e.gatekeeperCycle(ctx)

		case <-sleepTick.C:
			e.sleepCycle(ctx)
		}
	}
}

func (e *Engine) gatekeeperCycle(ctx context.Context) {
	now := e.cfg.Now()
	res := e.gate.Tick(now, e.plan, e.contextState())
	if res.DateRolled {
		// Yesterday's plan is stale; fetch today's if one exists and
		// otherwise run dark until the next regeneration.
		plan, err := e.plans.Today(ctx, now)
		if err != nil {
			e.plan = nil
			return
		}
		e.plan = plan
		e.gate.ResetBookkeeping(plan.Date)
		return
	}
	if len(res.AutoSkipped) > 0 {
		if err := e.plans.SavePlan(ctx, e.plan); err != nil {
			e.logger.Warn("persisting auto-skips failed", "error", err)
		}
	}
}

func (e *Engine) sleepCycle(ctx context.Context) {
	now := e.cfg.Now()
	switch e.tracker.Tick(now) {
	case sleep.EventRealityCheck:
		e.notifier.Notify("Still awake?", "Tap to keep tracking your evening.")
	case sleep.EventConfirmedAsleep:
		e.logger.Info("sleep confirmed", "since", e.tracker.SleepStart())
	case sleep.EventAlarm:
		e.notifier.Notify("Wake up", "Good morning.")
		e.finishSleep(ctx, now)
	}
}

func (e *Engine) finishSleep(ctx context.Context, now time.Time) {
	session, ok := e.tracker.Stop(now)
	if !ok {
		return
	}
	if err := e.sleeps.CompleteSession(ctx, &session); err != nil {
		e.logger.Warn("persisting sleep session failed", "error", err)
	}
}

// contextState folds the sleep tracker into the classifier's answer: a
// confirmed-asleep session wins over anything position data says.
func (e *Engine) contextState() domain.UserContextState {
	if e.tracker.State() == sleep.StateConfirmed {
		return domain.ContextSleeping
	}
	state, _ := e.cls.Current()
	return state
}

// do runs fn on the loop goroutine and waits for it.
func (e *Engine) do(ctx context.Context, fn func()) error {
	if !e.running.Load() {
		return ErrNotRunning
	}
	ran := make(chan struct{})
	wrapped := func() {
		fn()
		close(ran)
	}
	select {
	case e.cmds <- wrapped:
	case <-e.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-ran:
		return nil
	case <-e.done:
		return ErrNotRunning
	case <-ctx.Done():
		return ctx.Err()
	}
}

// RequestRegeneration kicks off a planning cycle on its own goroutine.
// A request while one is in flight is dropped with
// orchestrator.ErrRegenerationInFlight rather than queued.
func (e *Engine) RequestRegeneration(ctx context.Context) error {
	var err error
	doErr := e.do(ctx, func() {
		if e.busy {
			err = orchestrator.ErrRegenerationInFlight
			return
		}
		e.busy = true
		now := e.cfg.Now()
		go func() {
			res, regenErr := e.plans.Regenerate(ctx, now)
			e.regens <- regenOutcome{result: res, err: regenErr}
		}()
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// Regenerating reports whether a planning cycle is in flight.
func (e *Engine) Regenerating(ctx context.Context) bool {
	busy := false
	_ = e.do(ctx, func() { busy = e.busy })
	return busy
}

// CompleteItem marks the item done on the loop's plan and persists it.
func (e *Engine) CompleteItem(ctx context.Context, itemID string) error {
	return e.mutatePlan(ctx, itemID, func(item *domain.PlanItem) {
		item.Complete()
	})
}

// SkipItem marks the item skipped on the loop's plan and persists it.
func (e *Engine) SkipItem(ctx context.Context, itemID string) error {
	return e.mutatePlan(ctx, itemID, func(item *domain.PlanItem) {
		item.Skip()
	})
}

// SnoozeItem defers the item by the gatekeeper's snooze policy.
func (e *Engine) SnoozeItem(ctx context.Context, itemID string) error {
	var err error
	doErr := e.do(ctx, func() {
		if e.plan == nil {
			err = service.ErrItemNotFound
			return
		}
		if !e.gate.Snooze(e.cfg.Now(), e.plan, itemID) {
			err = service.ErrItemNotFound
			return
		}
		err = e.plans.SavePlan(ctx, e.plan)
	})
	if doErr != nil {
		return doErr
	}
	return err
}

func (e *Engine) mutatePlan(ctx context.Context, itemID string, mutate func(*domain.PlanItem)) error {
	var err error
	doErr := e.do(ctx, func() {
		if e.plan == nil {
			err = service.ErrItemNotFound
			return
		}
		item := e.plan.Item(itemID)
		if item == nil {
			err = service.ErrItemNotFound
			return
		}
		mutate(item)
		err = e.plans.SavePlan(ctx, e.plan)
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// StartSleep begins a tracking session with the given alarm.
func (e *Engine) StartSleep(ctx context.Context, alarm sleep.Alarm) error {
	return e.do(ctx, func() {
		e.tracker.Start(e.cfg.Now(), alarm)
	})
}

// StopSleep ends any active session and persists the record.
func (e *Engine) StopSleep(ctx context.Context) error {
	var err error
	doErr := e.do(ctx, func() {
		now := e.cfg.Now()
		session, ok := e.tracker.Stop(now)
		if !ok {
			return
		}
		err = e.sleeps.CompleteSession(ctx, &session)
	})
	if doErr != nil {
		return doErr
	}
	return err
}

// Interaction reports an active-use gesture to the sleep tracker.
func (e *Engine) Interaction(ctx context.Context) error {
	return e.do(ctx, func() {
		e.tracker.Interaction(e.cfg.Now())
	})
}

// DismissRealityCheck answers the "still awake?" prompt.
func (e *Engine) DismissRealityCheck(ctx context.Context) error {
	return e.do(ctx, func() {
		e.tracker.DismissRealityCheck(e.cfg.Now())
	})
}

// ResetContext forces the classifier back to idle, the fail-safe after a
// sensor gap.
func (e *Engine) ResetContext(ctx context.Context) error {
	return e.do(ctx, func() { e.cls.Reset() })
}

// Status snapshots the loop-owned state. The returned plan is a copy.
func (e *Engine) Status(ctx context.Context) (Status, error) {
	var st Status
	err := e.do(ctx, func() {
		state, since := e.cls.Current()
		st.Context = state
		st.ContextSince = since
		st.SleepState = e.tracker.State()
		st.Regenerating = e.busy
		if e.plan != nil {
			cp := *e.plan
			cp.Items = append([]domain.PlanItem(nil), e.plan.Items...)
			st.Plan = &cp
		}
	})
	return st, err
}
