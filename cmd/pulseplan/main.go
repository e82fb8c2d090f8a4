package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/pulseplan/internal/cli"
	"github.com/alexanderramin/pulseplan/internal/cli/formatter"
	"github.com/alexanderramin/pulseplan/internal/db"
	"github.com/alexanderramin/pulseplan/internal/engine"
	"github.com/alexanderramin/pulseplan/internal/gatekeeper"
	"github.com/alexanderramin/pulseplan/internal/orchestrator"
	"github.com/alexanderramin/pulseplan/internal/planner"
	"github.com/alexanderramin/pulseplan/internal/repository"
	"github.com/alexanderramin/pulseplan/internal/sensors"
	"github.com/alexanderramin/pulseplan/internal/service"
	"github.com/alexanderramin/pulseplan/internal/sleep"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.pulseplan/pulseplan.db
	dbPath := os.Getenv("PULSEPLAN_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".pulseplan", "pulseplan.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories over the shared key-value store.
	planRepo := repository.NewKVPlanRepo(database)
	profileRepo := repository.NewKVUserProfileRepo(database)
	logRepo := repository.NewKVLogRepo(database)
	historyRepo := repository.NewKVSleepHistoryRepo(database)
	sessionRepo := repository.NewKVSleepSessionRepo(database)
	uow := db.NewSQLiteUnitOfWork(database)

	// Wire the planner client from environment configuration.
	plannerCfg := planner.LoadConfig()
	var plannerObs planner.Observer = planner.NoopObserver{}
	if plannerCfg.LogCalls {
		plannerObs = planner.NewLogObserver(os.Stderr)
	}
	plannerClient := planner.NewHTTPClient(plannerCfg, plannerObs)

	var observers []service.UseCaseObserver
	if os.Getenv("PULSEPLAN_LOG") != "" {
		observers = append(observers, service.NewLogUseCaseObserver(os.Stderr))
	}

	orch := orchestrator.New(plannerClient)
	planSvc := service.NewPlanService(orch, planRepo, profileRepo, logRepo, historyRepo, observers...)
	sleepSvc := service.NewSleepService(sessionRepo, historyRepo, uow, observers...)

	app := &cli.App{
		Plans:    planSvc,
		Logs:     service.NewLogService(logRepo),
		Profiles: service.NewProfileService(profileRepo),
		Sleeps:   sleepSvc,
	}

	// The run command gets a full engine. Sensor feeds are in-process: a
	// real deployment pushes samples into them from platform hooks.
	notifier := gatekeeper.NotifierFunc(func(title, body string) {
		line := formatter.Bold("» "+title) + " " + formatter.Dim(body)
		if !isatty.IsTerminal(os.Stdout.Fd()) {
			line = "» " + title + " " + body
		}
		fmt.Fprintln(os.Stdout, line)
	})
	gate := gatekeeper.New(gatekeeper.DefaultConfig(), time.Local, notifier)
	tracker := sleep.NewTracker(sleep.DefaultConfig())
	app.Engine = engine.New(
		engine.DefaultConfig(),
		planSvc,
		sleepSvc,
		gate,
		tracker,
		sensors.NewMotionFeed(64),
		sensors.NewPositionFeed(64),
		notifier,
		nil,
	)

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
