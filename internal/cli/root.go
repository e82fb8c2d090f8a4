// Package cli implements the pulseplan command tree.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/pulseplan/internal/engine"
	"github.com/alexanderramin/pulseplan/internal/service"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Plans    service.PlanService
	Logs     service.LogService
	Profiles service.ProfileService
	Sleeps   service.SleepService

	// Engine is set only for the run command; the one-shot commands work
	// without it.
	Engine *engine.Engine
}

// NewRootCmd creates the top-level "pulseplan" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "pulseplan",
		Short: "Bio-adaptive daily planner",
	}

	root.AddCommand(
		newPlanCmd(app),
		newLogCmd(app),
		newSleepCmd(app),
		newProfileCmd(app),
		newStatusCmd(app),
		newImportCmd(app),
		newRunCmd(app),
	)

	return root
}
