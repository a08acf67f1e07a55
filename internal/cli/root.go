package cli

import (
	"time"

	"github.com/alexanderramin/mindweave/internal/config"
	"github.com/alexanderramin/mindweave/internal/metrics"
	"github.com/alexanderramin/mindweave/internal/planclient"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds everything the commands need. Remote and Metrics may be nil.
type App struct {
	Plans   service.PlanService
	Remote  planclient.Client
	Config  *config.Config
	Logger  *zap.Logger
	Metrics *metrics.Metrics
	Version string

	// Now is the clock used for default start dates.
	Now func() time.Time
	// IsInteractive reports whether stdin is a terminal; TUI commands fall
	// back to plain output when it is not.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *zap.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return zap.NewNop()
}

// NewRootCmd creates the top-level "mindweave" command.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "mindweave",
		Short:         "Study-hour planner",
		Long:          "mindweave spreads the hours each subject needs across the days before its deadline.",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newPlanCmd(app),
		newServeCmd(app),
	)

	return root
}
