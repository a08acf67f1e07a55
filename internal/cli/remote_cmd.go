package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/mindweave/internal/cli/formatter"
	"github.com/alexanderramin/mindweave/internal/contract"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/spf13/cobra"
)

func newPlanRemoteCmd(app *App) *cobra.Command {
	var (
		in     planInput
		check  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Ask a remote planning service for a plan",
		Long: `Sends the plan request to the planning service configured by
MINDWEAVE_REMOTE_ENDPOINT and renders its answer like "plan generate".`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Remote == nil {
				return fmt.Errorf("remote planner is not configured")
			}
			ctx := cmd.Context()
			w := cmd.OutOrStdout()

			if check {
				if !app.Remote.Available(ctx) {
					return fmt.Errorf("remote planner at %s is unreachable", app.Config.Remote.Endpoint)
				}
				fmt.Fprintf(w, "Remote planner at %s is reachable.\n", app.Config.Remote.Endpoint)
				return nil
			}

			req, _, err := in.resolve(cmd, app.now())
			if err != nil {
				return err
			}
			start := req.StartDate
			if start.IsZero() {
				start = domain.CivilDate(app.now())
			}
			wire := contract.NewPlanRequest(req.Subjects, req.Capacity, start, req.Policy)

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Asking remote planner...")
			}
			resp, err := app.Remote.Generate(ctx, wire)
			stop()
			if err != nil {
				return err
			}

			if asJSON {
				if err := writeJSON(w, resp); err != nil {
					return err
				}
				if !resp.Success {
					return fmt.Errorf("remote planner: %s", resp.Error)
				}
				return nil
			}

			result, err := remoteResult(resp, req.Subjects, start, req.Policy)
			if err != nil {
				return err
			}
			fmt.Fprint(w, formatter.FormatResult(result, req.Capacity))
			return infeasibleError(result)
		},
	}

	in.bind(cmd, false)
	cmd.Flags().BoolVar(&check, "check", false, "Only check that the remote planner is reachable")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw plan response as JSON")

	return cmd
}

// remoteResult converts a remote response into a result for rendering. A
// failure without shortage details is the remote rejecting the request.
func remoteResult(resp *contract.PlanResponse, subjects []domain.Subject, start time.Time, policy domain.PolicyName) (*domain.Result, error) {
	result := &domain.Result{Policy: policy, StartDate: start}

	if !resp.Success {
		shortage, ok := resp.Shortage()
		if !ok {
			return nil, fmt.Errorf("remote planner rejected the request: %s", resp.Error)
		}
		result.Shortages = []domain.Shortage{shortage}
		return result, nil
	}

	schedule, err := resp.BaseAllocation.ToSchedule(subjects)
	if err != nil {
		return nil, fmt.Errorf("remote planner returned an unusable allocation: %w", err)
	}
	result.Schedule = schedule
	for _, u := range resp.Unscheduled {
		result.Residuals = append(result.Residuals, domain.Residual{
			Subject:        u.Subject,
			RemainingHours: u.RemainingHours,
			Reason:         domain.ResidualReason(u.Reason),
		})
	}
	return result, nil
}
