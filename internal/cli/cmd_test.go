package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/orchestrator"
	"github.com/alexanderramin/pulseplan/internal/planner"
	"github.com/alexanderramin/pulseplan/internal/repository"
	"github.com/alexanderramin/pulseplan/internal/service"
	"github.com/alexanderramin/pulseplan/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPlanner struct {
	resp *planner.PlanResponse
	err  error
}

func (s *stubPlanner) GeneratePlan(context.Context, planner.PlanRequest) (*planner.PlanResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func (s *stubPlanner) Available(context.Context) bool { return s.err == nil }

// testApp wires a full App backed by an in-memory DB for CLI integration tests.
func testApp(t *testing.T, client planner.Client) *App {
	t.Helper()
	database := testutil.NewTestDB(t)

	plans := repository.NewKVPlanRepo(database)
	profiles := repository.NewKVUserProfileRepo(database)
	logs := repository.NewKVLogRepo(database)
	history := repository.NewKVSleepHistoryRepo(database)
	sessions := repository.NewKVSleepSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	return &App{
		Plans:    service.NewPlanService(orchestrator.New(client), plans, profiles, logs, history),
		Logs:     service.NewLogService(logs),
		Profiles: service.NewProfileService(profiles),
		Sleeps:   service.NewSleepService(sessions, history, uow),
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func dinnerPlanResponse(itemID string) *planner.PlanResponse {
	return &planner.PlanResponse{
		Date:    "2025-06-01",
		Summary: "Take it easy tonight.",
		Items: []planner.PlanItem{
			{ID: itemID, ScheduledTime: "19:00", Category: "meal", Title: "Dinner", Priority: "medium"},
		},
	}
}

func TestPlanCmd_NoPlanYet(t *testing.T) {
	app := testApp(t, &stubPlanner{err: planner.ErrUnavailable})

	out, err := executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "No plan for today yet")
}

func TestPlanCmd_RegenThenShow(t *testing.T) {
	app := testApp(t, &stubPlanner{resp: dinnerPlanResponse("it-1")})

	out, err := executeCmd(t, app, "plan", "regen")
	require.NoError(t, err)
	assert.Contains(t, out, "Dinner")
	assert.Contains(t, out, "19:00")

	out, err = executeCmd(t, app, "plan")
	require.NoError(t, err)
	assert.Contains(t, out, "Dinner")
}

func TestPlanCmd_RegenFailsWhenPlannerDown(t *testing.T) {
	app := testApp(t, &stubPlanner{err: planner.ErrUnavailable})

	_, err := executeCmd(t, app, "plan", "regen")
	assert.ErrorIs(t, err, planner.ErrUnavailable)
}

func TestPlanCmd_CompleteAndSkip(t *testing.T) {
	app := testApp(t, &stubPlanner{resp: dinnerPlanResponse("it-1")})
	_, err := executeCmd(t, app, "plan", "regen")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "plan", "complete", "it-1")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")

	_, err = executeCmd(t, app, "plan", "skip", "missing")
	assert.ErrorIs(t, err, service.ErrItemNotFound)
}

func TestPlanCmd_Snooze(t *testing.T) {
	app := testApp(t, &stubPlanner{resp: dinnerPlanResponse("it-1")})
	_, err := executeCmd(t, app, "plan", "regen")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "plan", "snooze", "it-1", "--for", "30m")
	require.NoError(t, err)
	assert.Contains(t, out, "Snoozed")
}

func TestLogCmd_Food(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	out, err := executeCmd(t, app, "log", "food", "Oatmeal", "--calories", "350", "--grade", "B")
	require.NoError(t, err)
	assert.Contains(t, out, "Oatmeal")
}

func TestLogCmd_MoodValidation(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	_, err := executeCmd(t, app, "log", "mood", "grumpy")
	assert.ErrorContains(t, err, "unknown mood")

	out, err := executeCmd(t, app, "log", "mood", "stressed", "--note", "deadline")
	require.NoError(t, err)
	assert.Contains(t, out, "stressed")
}

func TestLogCmd_WeightAndWater(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	_, err := executeCmd(t, app, "log", "weight", "abc")
	assert.ErrorContains(t, err, "invalid weight")

	out, err := executeCmd(t, app, "log", "weight", "72.5")
	require.NoError(t, err)
	assert.Contains(t, out, "72.5 kg")

	out, err = executeCmd(t, app, "log", "water", "250")
	require.NoError(t, err)
	assert.Contains(t, out, "250 ml")
}

func TestSleepCmd_AddAndRecent(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	out, err := executeCmd(t, app, "sleep", "add",
		"--start", "2025-06-01 23:00", "--end", "2025-06-02 06:30")
	require.NoError(t, err)
	assert.Contains(t, out, "7h 30m")

	out, err = executeCmd(t, app, "sleep", "recent")
	require.NoError(t, err)
	assert.Contains(t, out, "(manual)")
}

func TestSleepCmd_RejectsBackwardsRange(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	_, err := executeCmd(t, app, "sleep", "add",
		"--start", "2025-06-02 08:00", "--end", "2025-06-02 07:00")
	assert.Error(t, err)
}

func TestProfileCmd_SetAndShow(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	_, err := executeCmd(t, app, "profile", "set",
		"--name", "Alex", "--children", "2", "--schedule", "night_shift",
		"--condition", "diabetes")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Alex")
	assert.Contains(t, out, "night_shift")
	assert.Contains(t, out, "diabetes")
}

func TestStatusCmd_RendersWithoutPlan(t *testing.T) {
	app := testApp(t, &stubPlanner{err: planner.ErrUnavailable})

	out, err := executeCmd(t, app, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "BIO-LOAD")
	assert.Contains(t, out, "No plan yet")
	assert.Contains(t, out, "No sessions recorded")
}

func TestImportCmd_LoadsArchive(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	path := filepath.Join(t.TempDir(), "archive.json")
	archive := `{
		"profile": {"name": "Alex", "sleep_target_hours": 8},
		"food": [{"at": "2025-05-30T12:15:00Z", "name": "Salad", "calories": 320}],
		"sleep_sessions": [{"start": "2025-05-29T23:00:00Z", "end": "2025-05-30T06:30:00Z"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(archive), 0o644))

	out, err := executeCmd(t, app, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 records and profile")
	assert.Contains(t, out, "food:     1")
	assert.Contains(t, out, "sleep:    1")

	out, err = executeCmd(t, app, "profile")
	require.NoError(t, err)
	assert.Contains(t, out, "Alex")
}

func TestImportCmd_ReportsAllValidationErrors(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	path := filepath.Join(t.TempDir(), "archive.json")
	archive := `{
		"mood": [{"at": "yesterday", "mood": "grumpy"}]
	}`
	require.NoError(t, os.WriteFile(path, []byte(archive), 0o644))

	out, err := executeCmd(t, app, "import", path)
	assert.ErrorContains(t, err, "2 validation error(s)")
	assert.Contains(t, out, "mood[0].at")
	assert.Contains(t, out, "mood[0].mood")
}

func TestRunCmd_FailsWithoutEngine(t *testing.T) {
	app := testApp(t, &stubPlanner{})

	_, err := executeCmd(t, app, "run")
	assert.ErrorContains(t, err, "engine not configured")
}
