package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/mindweave/internal/cli/formatter"
	"github.com/alexanderramin/mindweave/internal/contract"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/export"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/spf13/cobra"
)

func newPlanCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and manage study plans",
	}

	cmd.AddCommand(
		newPlanGenerateCmd(app),
		newPlanSaveCmd(app),
		newPlanNewCmd(app),
		newPlanListCmd(app),
		newPlanShowCmd(app),
		newPlanViewCmd(app),
		newPlanExportCmd(app),
		newPlanDeleteCmd(app),
		newPlanRemoteCmd(app),
		newPlanClearCacheCmd(app),
	)

	return cmd
}

func newPlanGenerateCmd(app *App) *cobra.Command {
	var (
		in     planInput
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Compute a plan without saving it",
		Example: `  mindweave plan generate --weekday 3 --weekend 5 -s "Math:6:2025-01-09:high" -s "History:4:2025-01-17"
  mindweave plan generate -f finals.yaml --policy daily_mix`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, _, err := in.resolve(cmd, app.now())
			if err != nil {
				return err
			}

			out, err := app.Plans.Generate(cmd.Context(), req)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				if err := writeJSON(w, contract.FromResult(out.Result)); err != nil {
					return err
				}
			} else {
				fmt.Fprint(w, formatter.FormatResult(out.Result, req.Capacity))
			}
			return infeasibleError(out.Result)
		},
	}

	in.bind(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the plan response as JSON")

	return cmd
}

func newPlanSaveCmd(app *App) *cobra.Command {
	var in planInput

	cmd := &cobra.Command{
		Use:   "save",
		Short: "Compute a plan and save it",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, name, err := in.resolve(cmd, app.now())
			if err != nil {
				return err
			}
			return savePlan(cmd, app, service.SaveRequest{GenerateRequest: req, Name: name})
		},
	}

	in.bind(cmd, true)

	return cmd
}

func savePlan(cmd *cobra.Command, app *App, req service.SaveRequest) error {
	plan, err := app.Plans.Save(cmd.Context(), req)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	label := plan.Name
	if label == "" {
		label = "plan"
	}
	fmt.Fprintf(w, "Saved %s [%s]\n", label, formatter.StyleBlue.Render(plan.DisplayID()))
	if !plan.Feasible {
		fmt.Fprintln(w, formatter.StyleYellow.Render("Warning: at least one deadline cannot be met; the schedule is partial."))
	}
	return nil
}

func newPlanListCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			plans, err := app.Plans.List(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if asJSON {
				return writeJSON(w, contract.FromSummaries(plans))
			}
			if len(plans) == 0 {
				fmt.Fprintln(w, "No saved plans.")
				return nil
			}
			fmt.Fprint(w, formatter.FormatPlanList(plans))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func newPlanShowCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show ID",
		Short: "Show a saved plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), contract.FromStoredPlan(plan))
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStoredPlan(plan))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")

	return cmd
}

func newPlanExportCmd(app *App) *cobra.Command {
	var formatStr, output string

	cmd := &cobra.Command{
		Use:   "export ID",
		Short: "Export a saved plan's schedule as CSV or PDF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := export.ParseFormat(formatStr)
			if err != nil {
				return err
			}
			plan, err := app.Plans.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				return export.WritePlan(cmd.OutOrStdout(), plan, format)
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			if err := export.WritePlan(f, plan, format); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVar(&formatStr, "format", string(export.FormatCSV), "Export format: csv or pdf")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default: stdout)")

	return cmd
}

func newPlanDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a saved plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			plan, err := app.Plans.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := app.Plans.Delete(cmd.Context(), plan.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted plan [%s]\n", plan.DisplayID())
			return nil
		},
	}
}

func newPlanClearCacheCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Drop every cached plan result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Plans.ClearCache(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Plan cache cleared.")
			return nil
		},
	}
}

// infeasibleError turns an infeasible result into a non-zero exit after the
// shortages have been printed.
func infeasibleError(result *domain.Result) error {
	if result.Feasible() {
		return nil
	}
	return fmt.Errorf("plan is infeasible: %d subject(s) cannot meet their deadline", len(result.Shortages))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
