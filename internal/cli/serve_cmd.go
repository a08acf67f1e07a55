package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/mindweave/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner HTTP API",
		Long: `Serves POST /api/planner, the saved-plan endpoints under /api/plans,
GET /api/health and GET /metrics until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") {
				port = app.Config.Port
			}
			if port <= 0 || port > 65535 {
				return fmt.Errorf("port %d out of range", port)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(server.Deps{
				Plans:   app.Plans,
				Metrics: app.Metrics,
				Logger:  app.logger(),
				Version: app.Version,
				Now:     app.Now,
			})
			return srv.Run(ctx, fmt.Sprintf(":%d", port))
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Listen port (default: MINDWEAVE_PORT or 8000)")

	return cmd
}
