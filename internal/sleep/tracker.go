// Package sleep converts a raw motion stream into a confirmed sleep
// session using a reality-check confirmation with a silent-timeout
// fallback.
package sleep

import (
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/interrupt"
)

type State string

const (
	StateIdle         State = "idle"
	StateTracking     State = "tracking"
	StateRealityCheck State = "reality_check_active"
	StateConfirmed    State = "confirmed_asleep"
	StateEnded        State = "ended"
)

// Event is what a logic tick observed. The engine reacts: showing the
// reality-check prompt, sounding the alarm.
type Event int

const (
	EventNone Event = iota
	// EventRealityCheck requests the "are you still awake?" prompt.
	EventRealityCheck
	// EventConfirmedAsleep is the silent-timeout fallback: the prompt
	// went unanswered and the session is now asleep, backdated to when
	// stillness began.
	EventConfirmedAsleep
	// EventAlarm fires the scheduled wake alarm.
	EventAlarm
)

// Config holds the tracker policy windows.
type Config struct {
	StillnessWindow time.Duration // continuous stillness before the reality check
	ConfirmWindow   time.Duration // unanswered-prompt window before confirming sleep
	MotionThreshold float64       // magnitude counting as significant movement
	StageBucket     time.Duration // granularity of coarse stage estimation
}

func DefaultConfig() Config {
	return Config{
		StillnessWindow: 15 * time.Minute,
		ConfirmWindow:   10 * time.Minute,
		MotionThreshold: 1.5,
		StageBucket:     30 * time.Minute,
	}
}

// Alarm is the optional scheduled wake sub-rule. Independent of the
// reality-check state: while a session is active, the alarm fires when
// the clock passes WakeAt, or early when motion exceeds the threshold
// inside the smart-wake window before WakeAt.
type Alarm struct {
	Enabled   bool
	WakeAt    time.Time
	SmartWake time.Duration // window before WakeAt eligible for early wake
}

// Tracker is the sleep-session state machine. Not safe for concurrent
// use; the engine loop owns it and drives it from a single goroutine.
type Tracker struct {
	cfg Config

	state     State
	startedAt time.Time
	check     *interrupt.Machine
	sleepStart time.Time // backdated to stillness start once confirmed

	samples []domain.MotionSample

	alarm      Alarm
	alarmFired bool
}

func NewTracker(cfg Config) *Tracker {
	return &Tracker{
		cfg:   cfg,
		state: StateIdle,
		check: interrupt.NewMachine(cfg.StillnessWindow, cfg.ConfirmWindow),
	}
}

func (t *Tracker) State() State { return t.state }

// SleepStart returns the effective sleep start: the backdated stillness
// instant once confirmed, otherwise the start of the current stillness
// run (the estimated start for sessions stopped before confirmation).
func (t *Tracker) SleepStart() time.Time {
	if !t.sleepStart.IsZero() {
		return t.sleepStart
	}
	return t.check.ArmedAt()
}

// Start begins tracking. Any prior unfinished session state is discarded.
func (t *Tracker) Start(now time.Time, alarm Alarm) {
	t.state = StateTracking
	t.startedAt = now
	t.sleepStart = time.Time{}
	t.samples = nil
	t.alarm = alarm
	t.alarmFired = false
	t.check.Arm(now)
}

// Motion ingests one accelerometer sample. Magnitude above the threshold
// is proof of wakefulness.
func (t *Tracker) Motion(sample domain.MotionSample) {
	if t.state == StateIdle || t.state == StateEnded {
		return
	}
	t.samples = append(t.samples, sample)
	if sample.Magnitude > t.cfg.MotionThreshold {
		t.wakeProof(domain.TimeOf(sample.Timestamp))
	}
}

// Interaction records an active-use gesture (touch, scroll, key): proof
// of wakefulness equivalent to significant movement.
func (t *Tracker) Interaction(now time.Time) {
	t.wakeProof(now)
}

// DismissRealityCheck handles the user answering the prompt: they are
// awake, so tracking resumes and the stillness timer restarts.
func (t *Tracker) DismissRealityCheck(now time.Time) {
	if t.state != StateRealityCheck {
		return
	}
	t.state = StateTracking
	t.check.Arm(now)
}

func (t *Tracker) wakeProof(now time.Time) {
	switch t.state {
	case StateTracking:
		t.check.Arm(now)
	case StateRealityCheck:
		// Any interaction dismisses the prompt.
		t.state = StateTracking
		t.check.Arm(now)
	}
	// Once confirmed asleep, stray movement does not un-confirm; waking
	// is an explicit stop or the alarm.
}

// Tick advances the machine to now and returns at most one event.
func (t *Tracker) Tick(now time.Time) Event {
	if t.state == StateIdle || t.state == StateEnded {
		return EventNone
	}

	if t.alarmDue(now) {
		t.alarmFired = true
		return EventAlarm
	}

	switch t.check.Tick(now) {
	case interrupt.EventDue:
		if t.state == StateTracking {
			t.state = StateRealityCheck
			return EventRealityCheck
		}
	case interrupt.EventExpired:
		if t.state == StateRealityCheck {
			t.state = StateConfirmed
			// Backdate: asleep since stillness began, not since the
			// confirmation timed out.
			t.sleepStart = t.check.ArmedAt()
			return EventConfirmedAsleep
		}
	}
	return EventNone
}

func (t *Tracker) alarmDue(now time.Time) bool {
	if !t.alarm.Enabled || t.alarmFired {
		return false
	}
	if !now.Before(t.alarm.WakeAt) {
		return true
	}
	windowStart := t.alarm.WakeAt.Add(-t.alarm.SmartWake)
	if t.alarm.SmartWake <= 0 || now.Before(windowStart) {
		return false
	}
	// Smart wake: recent significant movement inside the window means
	// the sleeper is already surfacing.
	for i := len(t.samples) - 1; i >= 0; i-- {
		at := domain.TimeOf(t.samples[i].Timestamp)
		if at.Before(windowStart) {
			break
		}
		if t.samples[i].Magnitude > t.cfg.MotionThreshold {
			return true
		}
	}
	return false
}

// Stop ends the session and returns the immutable record. Movement
// samples recorded before the effective start are discarded.
func (t *Tracker) Stop(now time.Time) (domain.SleepSession, bool) {
	if t.state == StateIdle || t.state == StateEnded {
		return domain.SleepSession{}, false
	}

	start := t.SleepStart()
	if start.IsZero() || start.After(now) {
		start = t.startedAt
	}

	kept := make([]domain.MotionSample, 0, len(t.samples))
	for _, s := range t.samples {
		if !domain.TimeOf(s.Timestamp).Before(start) {
			kept = append(kept, s)
		}
	}

	session := domain.SleepSession{
		ID:              uuid.New().String(),
		StartTime:       start,
		EndTime:         now,
		DurationMinutes: int(now.Sub(start).Minutes()),
		MovementSamples: kept,
		EfficiencyScore: t.efficiency(start, now, kept),
		Stages:          t.stages(start, now, kept),
	}

	t.state = StateEnded
	t.check.Disarm()
	return session, true
}

// ManualSession builds the fallback record used when motion sensing is
// unavailable and the user enters times by hand.
func ManualSession(start, end time.Time) domain.SleepSession {
	return domain.SleepSession{
		ID:              uuid.New().String(),
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: int(end.Sub(start).Minutes()),
		EfficiencyScore: 0,
		Manual:          true,
	}
}

// efficiency is the share of the session free of significant movement.
func (t *Tracker) efficiency(start, end time.Time, samples []domain.MotionSample) float64 {
	total := end.Sub(start)
	if total <= 0 {
		return 0
	}
	restless := 0
	for _, s := range samples {
		if s.Magnitude > t.cfg.MotionThreshold {
			restless++
		}
	}
	if len(samples) == 0 {
		return 100
	}
	return domain.Clamp(100*(1-float64(restless)/float64(len(samples))), 0, 100)
}

// stages buckets the session and labels each bucket by movement density:
// none = deep, some = light, mostly moving = awake.
func (t *Tracker) stages(start, end time.Time, samples []domain.MotionSample) []domain.StageSegment {
	if t.cfg.StageBucket <= 0 || !start.Before(end) {
		return nil
	}
	var segs []domain.StageSegment
	for bucketStart := start; bucketStart.Before(end); bucketStart = bucketStart.Add(t.cfg.StageBucket) {
		bucketEnd := bucketStart.Add(t.cfg.StageBucket)
		if bucketEnd.After(end) {
			bucketEnd = end
		}
		total, moving := 0, 0
		for _, s := range samples {
			at := domain.TimeOf(s.Timestamp)
			if at.Before(bucketStart) || !at.Before(bucketEnd) {
				continue
			}
			total++
			if s.Magnitude > t.cfg.MotionThreshold {
				moving++
			}
		}
		stage := domain.StageDeep
		switch {
		case total > 0 && moving*2 >= total:
			stage = domain.StageAwake
		case moving > 0:
			stage = domain.StageLight
		}
		segs = append(segs, domain.StageSegment{Stage: stage, Start: bucketStart, End: bucketEnd})
	}
	return segs
}
