package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/orchestrator"
	"github.com/alexanderramin/pulseplan/internal/planner"
	"github.com/alexanderramin/pulseplan/internal/repository"
	"github.com/alexanderramin/pulseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct {
	resp *planner.PlanResponse
	err  error
}

func (s *stubPlanner) GeneratePlan(ctx context.Context, req planner.PlanRequest) (*planner.PlanResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubPlanner) Available(context.Context) bool { return s.err == nil }

type fixture struct {
	database *sql.DB
	plans    repository.PlanRepo
	profiles repository.UserProfileRepo
	logs     repository.LogRepo
	history  repository.SleepHistoryRepo
	sessions repository.SleepSessionRepo
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	return &fixture{
		database: database,
		plans:    repository.NewKVPlanRepo(database),
		profiles: repository.NewKVUserProfileRepo(database),
		logs:     repository.NewKVLogRepo(database),
		history:  repository.NewKVSleepHistoryRepo(database),
		sessions: repository.NewKVSleepSessionRepo(database),
	}
}

func (f *fixture) planService(client planner.Client) PlanService {
	return NewPlanService(orchestrator.New(client), f.plans, f.profiles, f.logs, f.history)
}

func plannerResponse() *planner.PlanResponse {
	return &planner.PlanResponse{
		Date:    "2025-06-01",
		Summary: "Steady day.",
		Items: []planner.PlanItem{
			{ScheduledTime: "08:00", Category: "meal", Title: "Breakfast", Priority: "medium"},
			{ScheduledTime: "14:00", Category: "hydration", Title: "Water", Priority: "low"},
		},
	}
}

var testNow = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func TestPlanService_RegeneratePersistsPlan(t *testing.T) {
	f := newFixture(t)
	svc := f.planService(&stubPlanner{resp: plannerResponse()})
	ctx := context.Background()

	res, err := svc.Regenerate(ctx, testNow)
	require.NoError(t, err)
	require.Len(t, res.Plan.Items, 2)

	stored, err := svc.Today(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, res.Plan, stored)
}

func TestPlanService_TodayWithoutPlan(t *testing.T) {
	f := newFixture(t)
	svc := f.planService(&stubPlanner{resp: plannerResponse()})

	_, err := svc.Today(context.Background(), testNow)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPlanService_FailedRegenerationKeepsStoredPlan(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ok := f.planService(&stubPlanner{resp: plannerResponse()})
	first, err := ok.Regenerate(ctx, testNow)
	require.NoError(t, err)

	failing := f.planService(&stubPlanner{err: planner.ErrUnavailable})
	_, err = failing.Regenerate(ctx, testNow.Add(time.Hour))
	require.ErrorIs(t, err, planner.ErrUnavailable)

	stored, err := ok.Today(ctx, testNow)
	require.NoError(t, err)
	assert.Equal(t, first.Plan, stored, "stored plan untouched after planner failure")
}

func TestPlanService_RegenerateReconcilesCompletedItems(t *testing.T) {
	f := newFixture(t)
	svc := f.planService(&stubPlanner{resp: plannerResponse()})
	ctx := context.Background()

	first, err := svc.Regenerate(ctx, testNow)
	require.NoError(t, err)
	doneID := first.Plan.Items[0].ID
	require.NoError(t, svc.CompleteItem(ctx, testNow, doneID))

	second, err := svc.Regenerate(ctx, testNow.Add(time.Hour))
	require.NoError(t, err)

	done := second.Plan.Item(doneID)
	require.NotNil(t, done, "completed item survives regeneration")
	assert.True(t, done.Completed)

	// The fresh "Breakfast" duplicate was suppressed.
	count := 0
	for _, it := range second.Plan.Items {
		if it.Title == "Breakfast" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestPlanService_ItemActionsPersist(t *testing.T) {
	f := newFixture(t)
	svc := f.planService(&stubPlanner{resp: plannerResponse()})
	ctx := context.Background()

	res, err := svc.Regenerate(ctx, testNow)
	require.NoError(t, err)
	a, b := res.Plan.Items[0].ID, res.Plan.Items[1].ID

	require.NoError(t, svc.CompleteItem(ctx, testNow, a))
	require.NoError(t, svc.SnoozeItem(ctx, testNow, b, 15*time.Minute))

	stored, err := svc.Today(ctx, testNow)
	require.NoError(t, err)
	assert.True(t, stored.Item(a).Completed)
	assert.True(t, stored.Item(b).Snoozed(testNow.Add(10*time.Minute)))

	err = svc.SkipItem(ctx, testNow, "missing")
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestPlanService_SnapshotWithoutPlanner(t *testing.T) {
	f := newFixture(t)
	svc := f.planService(&stubPlanner{err: planner.ErrUnavailable})

	snap, err := svc.Snapshot(context.Background(), testNow)
	require.NoError(t, err, "snapshot never touches the planner")
	assert.GreaterOrEqual(t, snap.NeuralBattery, 0.0)
	assert.LessOrEqual(t, snap.NeuralBattery, 100.0)
}

func TestLogService_StampsIDAndTimestamp(t *testing.T) {
	f := newFixture(t)
	svc := NewLogService(f.logs)

	entry, err := svc.AddFood(context.Background(), domain.FoodLogEntry{Name: "Salad"})
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.NotZero(t, entry.Timestamp)

	listed, err := f.logs.ListFood(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Salad", listed[0].Name)
}

func TestSleepService_CompleteSessionUpsertsHistory(t *testing.T) {
	f := newFixture(t)
	svc := NewSleepService(f.sessions, f.history, db.NewSQLiteUnitOfWork(f.database))
	ctx := context.Background()

	session := &domain.SleepSession{
		ID:              "s1",
		StartTime:       time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
		DurationMinutes: 480,
	}
	require.NoError(t, svc.CompleteSession(ctx, session))

	history, err := svc.RecentHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "2025-06-02", history[0].Date, "history total belongs to the wake date")
	assert.Equal(t, 8.0, history[0].Hours)

	sessions, err := svc.RecentSessions(ctx, 10)
	require.NoError(t, err)
	require.Len(t, sessions, 1)
}

func TestSleepService_SecondSessionSameDateReplacesTotal(t *testing.T) {
	f := newFixture(t)
	svc := NewSleepService(f.sessions, f.history, db.NewSQLiteUnitOfWork(f.database))
	ctx := context.Background()

	night := &domain.SleepSession{
		ID:              "s1",
		StartTime:       time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 6, 2, 5, 0, 0, 0, time.UTC),
		DurationMinutes: 360,
	}
	require.NoError(t, svc.CompleteSession(ctx, night))

	later := &domain.SleepSession{
		ID:              "s2",
		StartTime:       time.Date(2025, 6, 2, 1, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 6, 2, 8, 30, 0, 0, time.UTC),
		DurationMinutes: 450,
	}
	require.NoError(t, svc.CompleteSession(ctx, later))

	history, err := svc.RecentHistory(ctx, 10)
	require.NoError(t, err)
	require.Len(t, history, 1, "one entry per calendar date")
	assert.Equal(t, 7.5, history[0].Hours)
}

func TestSleepService_AddManualSession(t *testing.T) {
	f := newFixture(t)
	svc := NewSleepService(f.sessions, f.history, db.NewSQLiteUnitOfWork(f.database))
	ctx := context.Background()

	start := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	session, err := svc.AddManualSession(ctx, start, start.Add(7*time.Hour))
	require.NoError(t, err)
	assert.True(t, session.Manual)
	assert.Equal(t, 420, session.DurationMinutes)

	_, err = svc.AddManualSession(ctx, start, start)
	assert.Error(t, err)
}

func TestProfileService_DefaultWhenMissing(t *testing.T) {
	f := newFixture(t)
	svc := NewProfileService(f.profiles)
	ctx := context.Background()

	p, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "default", p.ID)
	assert.Equal(t, 8.0, p.SleepTargetHours)

	updated := testutil.NewTestProfile(
		testutil.WithChildren(2),
		testutil.WithConditions("diabetes"),
	)
	require.NoError(t, svc.Update(ctx, updated))

	reloaded, err := svc.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.ChildrenCount)
	assert.Equal(t, []string{"diabetes"}, reloaded.Conditions)
	assert.False(t, reloaded.UpdatedAt.IsZero())
}

func TestSleepService_RollbackLeavesNothingBehind(t *testing.T) {
	f := newFixture(t)
	uow := &testutil.FailOnNthExecUoW{
		DB:     f.database,
		FailOn: 2,
		Err:    errors.New("disk full"),
	}
	svc := NewSleepService(f.sessions, f.history, uow)
	ctx := context.Background()

	session := &domain.SleepSession{
		ID:              "s1",
		StartTime:       time.Date(2025, 6, 1, 23, 0, 0, 0, time.UTC),
		EndTime:         time.Date(2025, 6, 2, 7, 0, 0, 0, time.UTC),
		DurationMinutes: 480,
	}
	err := svc.CompleteSession(ctx, session)
	require.Error(t, err)

	sessions, err := svc.RecentSessions(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, sessions, "session write rolled back with the history write")

	history, err := svc.RecentHistory(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, history)
}
