package orchestrator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/pulseplan/internal/domain"
	"github.com/alexanderramin/pulseplan/internal/planner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns a canned response, optionally blocking until
// released so in-flight behavior can be exercised.
type fakeClient struct {
	mu       sync.Mutex
	requests []planner.PlanRequest
	resp     *planner.PlanResponse
	err      error
	block    chan struct{}
}

func (f *fakeClient) GeneratePlan(ctx context.Context, req planner.PlanRequest) (*planner.PlanResponse, error) {
	f.mu.Lock()
	f.requests = append(f.requests, req)
	f.mu.Unlock()
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return nil, planner.ErrTimeout
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeClient) Available(context.Context) bool { return true }

func freshResponse() *planner.PlanResponse {
	return &planner.PlanResponse{
		Date:    "2025-06-01",
		Summary: "Recovery focus.",
		Items: []planner.PlanItem{
			{ScheduledTime: "08:00", Category: "meal", Title: "Breakfast", Priority: "medium"},
			{ScheduledTime: "12:30", Category: "meal", Title: "Lunch", Priority: "medium"},
			{ScheduledTime: "15:00", Category: "hydration", Title: "Water break", Priority: "low"},
		},
	}
}

func testInput(current *domain.DailyPlan) Input {
	return Input{
		Profile: domain.UserProfile{ID: "default", SleepTargetHours: 8},
		Current: current,
		Now:     time.Date(2025, 6, 1, 11, 0, 0, 0, time.UTC),
	}
}

func TestRegenerate_FirstRunOfDay(t *testing.T) {
	client := &fakeClient{resp: freshResponse()}
	o := New(client)

	res, err := o.Regenerate(context.Background(), testInput(nil))
	require.NoError(t, err)

	assert.Equal(t, "2025-06-01", res.Plan.Date)
	require.Len(t, res.Plan.Items, 3)
	assert.NotEmpty(t, res.Plan.Items[0].ID, "items without ids get generated ones")
	assert.Equal(t, 100.0, res.Snapshot.NeuralBattery)

	require.Len(t, client.requests, 1)
	assert.Nil(t, client.requests[0].Adherence, "no adherence on the first run of a day")
}

func TestRegenerate_SendsAdherenceForExistingPlan(t *testing.T) {
	client := &fakeClient{resp: freshResponse()}
	o := New(client)

	done := domain.PlanItem{ID: "x", ScheduledTime: "07:00", Title: "Early walk"}
	done.Complete()
	current := &domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{
		done,
		{ID: "y", ScheduledTime: "10:00", Title: "Snack"},
	}}

	_, err := o.Regenerate(context.Background(), testInput(current))
	require.NoError(t, err)

	require.Len(t, client.requests, 1)
	adh := client.requests[0].Adherence
	require.NotNil(t, adh)
	assert.Equal(t, 1, adh.Completed)
	assert.Equal(t, 2, adh.Total)
}

func TestRegenerate_PlannerFailurePropagates(t *testing.T) {
	client := &fakeClient{err: planner.ErrUnavailable}
	o := New(client)

	_, err := o.Regenerate(context.Background(), testInput(nil))
	assert.ErrorIs(t, err, planner.ErrUnavailable)
}

func TestRegenerate_DropsConcurrentRequests(t *testing.T) {
	client := &fakeClient{resp: freshResponse(), block: make(chan struct{})}
	o := New(client)

	firstDone := make(chan error, 1)
	go func() {
		_, err := o.Regenerate(context.Background(), testInput(nil))
		firstDone <- err
	}()

	// Wait until the first call is inside the planner.
	require.Eventually(t, o.InFlight, time.Second, time.Millisecond)

	_, err := o.Regenerate(context.Background(), testInput(nil))
	assert.ErrorIs(t, err, ErrRegenerationInFlight)

	close(client.block)
	require.NoError(t, <-firstDone)

	// Once the first finishes, regeneration is accepted again.
	_, err = o.Regenerate(context.Background(), testInput(nil))
	assert.NoError(t, err)
}

func TestReconcile_KeepsResolvedHistory(t *testing.T) {
	done := domain.PlanItem{ID: "a", ScheduledTime: "08:00", Title: "Breakfast"}
	done.Complete()
	skipped := domain.PlanItem{ID: "b", ScheduledTime: "09:30", Title: "Jog"}
	skipped.Skip()
	existing := &domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{
		done, skipped,
		{ID: "c", ScheduledTime: "11:00", Title: "Snack"}, // pending, discarded
	}}

	fresh := domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{
		{ID: "n1", ScheduledTime: "08:00", Title: "Oatmeal"},      // same time as history
		{ID: "n2", ScheduledTime: "10:00", Title: "Jog"},          // same title as history
		{ID: "n3", ScheduledTime: "12:30", Title: "Lunch"},        // survives
		{ID: "n4", ScheduledTime: "16:00", Title: "Water break"},  // survives
	}}

	merged := Reconcile(existing, fresh)

	ids := make([]string, 0, len(merged.Items))
	for _, it := range merged.Items {
		ids = append(ids, it.ID)
	}
	assert.Equal(t, []string{"a", "b", "n3", "n4"}, ids)

	// Resolved state survives regeneration.
	assert.True(t, merged.Item("a").Completed)
	assert.True(t, merged.Item("b").Skipped)
}

func TestReconcile_IsIdempotentOnResolvedItems(t *testing.T) {
	done := domain.PlanItem{ID: "a", ScheduledTime: "08:00", Title: "Breakfast"}
	done.Complete()
	existing := &domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{done}}

	fresh := domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{
		{ID: "n1", ScheduledTime: "08:00", Title: "Breakfast"},
		{ID: "n2", ScheduledTime: "12:30", Title: "Lunch"},
	}}

	once := Reconcile(existing, fresh)
	twice := Reconcile(&once, fresh)

	assert.Equal(t, once, twice)

	seen := make(map[string]bool)
	for _, it := range twice.Items {
		key := it.ScheduledTime + "|" + it.Title
		assert.False(t, seen[key], "duplicate (time, title) pair %q", key)
		seen[key] = true
	}
	assert.True(t, twice.Item("a").Completed, "regeneration never reverts a completed item")
}

func TestReconcile_SortedAfterMerge(t *testing.T) {
	late := domain.PlanItem{ID: "a", ScheduledTime: "20:00", Title: "Wind down"}
	late.Skip()
	existing := &domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{late}}

	fresh := domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{
		{ID: "n1", ScheduledTime: "07:00", Title: "Breakfast"},
		{ID: "n2", ScheduledTime: "12:00", Title: "Lunch"},
	}}

	merged := Reconcile(existing, fresh)
	require.Len(t, merged.Items, 3)
	assert.Equal(t, "07:00", merged.Items[0].ScheduledTime)
	assert.Equal(t, "12:00", merged.Items[1].ScheduledTime)
	assert.Equal(t, "20:00", merged.Items[2].ScheduledTime)
}

func TestReconcile_DifferentDateReplacesOutright(t *testing.T) {
	done := domain.PlanItem{ID: "a", ScheduledTime: "08:00", Title: "Breakfast"}
	done.Complete()
	existing := &domain.DailyPlan{Date: "2025-05-31", Items: []domain.PlanItem{done}}

	fresh := domain.DailyPlan{Date: "2025-06-01", Items: []domain.PlanItem{
		{ID: "n1", ScheduledTime: "08:00", Title: "Breakfast"},
	}}

	merged := Reconcile(existing, fresh)
	require.Len(t, merged.Items, 1)
	assert.Equal(t, "n1", merged.Items[0].ID)
	assert.False(t, merged.Items[0].Completed)
}

func TestRegenerate_ErrorVariantsAreDistinct(t *testing.T) {
	client := &fakeClient{err: planner.ErrTimeout}
	o := New(client)
	_, err := o.Regenerate(context.Background(), testInput(nil))
	assert.ErrorIs(t, err, planner.ErrTimeout)
	assert.False(t, errors.Is(err, ErrRegenerationInFlight))
}
