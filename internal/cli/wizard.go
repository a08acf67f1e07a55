package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/cli/formatter"
	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

// mindweaveHuhTheme styles huh forms with the formatter palette.
func mindweaveHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// planWizard holds the raw answers of the "plan new" forms.
type planWizard struct {
	Name     string
	Start    string
	Weekday  string
	Weekend  string
	MaxDaily string
	Slot     string
	Policy   string
	Subjects []wizardSubject
}

type wizardSubject struct {
	Name       string
	Hours      string
	Deadline   string
	Importance string
}

func (w *planWizard) settingsForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Plan name").Placeholder("Finals").Value(&w.Name),
			huh.NewInput().Title("Start date (YYYY-MM-DD, blank for today)").Value(&w.Start).Validate(validateOptionalDate),
			huh.NewInput().Title("Hours per weekday").Placeholder("3").Value(&w.Weekday).Validate(validateNonNegative),
			huh.NewInput().Title("Hours per weekend day").Placeholder("5").Value(&w.Weekend).Validate(validateNonNegative),
			huh.NewInput().Title("Most hours in one day (blank for no extra cap)").Value(&w.MaxDaily).Validate(validateOptionalNonNegative),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Allocation policy").
				Options(
					huh.NewOption("Urgency weighted: spread by days left", string(domain.PolicyUrgencyWeighted)),
					huh.NewOption("Fixed cap: a fixed block per subject", string(domain.PolicyFixedCap)),
					huh.NewOption("Daily mix: rotate subjects each day", string(domain.PolicyDailyMix)),
				).
				Value(&w.Policy),
			huh.NewSelect[string]().
				Title("Preferred time slot").
				Options(
					huh.NewOption("No preference", ""),
					huh.NewOption("Morning", "morning"),
					huh.NewOption("Afternoon", "afternoon"),
					huh.NewOption("Evening", "evening"),
				).
				Value(&w.Slot),
		),
	).WithTheme(mindweaveHuhTheme()).WithShowHelp(false)
}

func subjectForm(s *wizardSubject, more *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Subject").Value(&s.Name).Validate(validateRequired("subject name")),
			huh.NewInput().Title("Hours required").Placeholder("6").Value(&s.Hours).Validate(validatePositive),
			huh.NewInput().Title("Deadline (YYYY-MM-DD)").Value(&s.Deadline).Validate(validateRequiredDate),
			huh.NewSelect[string]().
				Title("Importance").
				Options(huh.NewOptions("medium", "high", "low")...).
				Value(&s.Importance),
			huh.NewConfirm().Title("Add another subject?").Affirmative("Yes").Negative("No").Value(more),
		),
	).WithTheme(mindweaveHuhTheme()).WithShowHelp(false)
}

// request converts the answers into a save request. Form validators have
// already run, but the conversion re-checks so a bad answer never panics.
func (w *planWizard) request() (service.SaveRequest, error) {
	weekday, err := parseHours("hours per weekday", w.Weekday)
	if err != nil {
		return service.SaveRequest{}, err
	}
	weekend, err := parseHours("hours per weekend day", w.Weekend)
	if err != nil {
		return service.SaveRequest{}, err
	}

	req := service.SaveRequest{
		Name: strings.TrimSpace(w.Name),
		GenerateRequest: service.GenerateRequest{
			Capacity: domain.UncappedCapacity(weekday, weekend),
			Policy:   domain.PolicyName(w.Policy),
		},
	}
	req.Capacity.PreferredTimeSlot = w.Slot
	if strings.TrimSpace(w.MaxDaily) != "" {
		if req.Capacity.MaxDailyHours, err = parseHours("most hours in one day", w.MaxDaily); err != nil {
			return service.SaveRequest{}, err
		}
	}
	if strings.TrimSpace(w.Start) != "" {
		if req.StartDate, err = scheduler.ParseDate(strings.TrimSpace(w.Start)); err != nil {
			return service.SaveRequest{}, fmt.Errorf("start date: %w", err)
		}
	}

	for _, s := range w.Subjects {
		hours, err := parseHours(s.Name+" hours", s.Hours)
		if err != nil {
			return service.SaveRequest{}, err
		}
		deadline, err := scheduler.ParseDate(strings.TrimSpace(s.Deadline))
		if err != nil {
			return service.SaveRequest{}, fmt.Errorf("%s deadline: %w", s.Name, err)
		}
		importance, err := domain.ParseImportance(s.Importance)
		if err != nil {
			return service.SaveRequest{}, err
		}
		req.Subjects = append(req.Subjects, domain.Subject{
			Name:          strings.TrimSpace(s.Name),
			Importance:    importance,
			Deadline:      deadline,
			RequiredHours: hours,
		})
	}
	if len(req.Subjects) == 0 {
		return service.SaveRequest{}, fmt.Errorf("at least one subject is required")
	}
	return req, nil
}

func newPlanNewCmd(app *App) *cobra.Command {
	var noSave bool

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Build a plan interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return fmt.Errorf("plan new needs an interactive terminal; use plan save with flags or --file")
			}

			w := &planWizard{Policy: string(app.Config.Planner.DefaultPolicy)}
			if err := w.settingsForm().Run(); err != nil {
				return wizardErr(err)
			}
			for {
				s := wizardSubject{Importance: string(domain.ImportanceMedium)}
				more := false
				if err := subjectForm(&s, &more).Run(); err != nil {
					return wizardErr(err)
				}
				w.Subjects = append(w.Subjects, s)
				if !more {
					break
				}
			}

			req, err := w.request()
			if err != nil {
				return err
			}
			if noSave {
				out, err := app.Plans.Generate(cmd.Context(), req.GenerateRequest)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(out.Result, req.Capacity))
				return infeasibleError(out.Result)
			}
			return savePlan(cmd, app, req)
		},
	}

	cmd.Flags().BoolVar(&noSave, "no-save", false, "Only print the generated plan")

	return cmd
}

func wizardErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) {
		return fmt.Errorf("cancelled")
	}
	return err
}

func parseHours(field, raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a number", field, raw)
	}
	return v, nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func validateOptionalDate(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateRequiredDate(s)
}

func validateRequiredDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD")
	}
	return nil
}

func validateNonNegative(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a number of hours, 0 or more")
	}
	return nil
}

func validateOptionalNonNegative(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validateNonNegative(s)
}

func validatePositive(s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !(v > 0) {
		return fmt.Errorf("enter a positive number of hours")
	}
	return nil
}
