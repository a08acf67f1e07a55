package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/importer"
	"github.com/alexanderramin/mindweave/internal/scheduler"
	"github.com/alexanderramin/mindweave/internal/service"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// policyValue is a pflag.Value that only accepts known policy names.
type policyValue domain.PolicyName

var _ pflag.Value = (*policyValue)(nil)

func (p *policyValue) String() string { return string(*p) }

func (p *policyValue) Set(s string) error {
	name := domain.PolicyName(strings.TrimSpace(s))
	if !domain.ValidPolicies[name] {
		return fmt.Errorf("unknown policy %q (expected urgency_weighted, fixed_cap or daily_mix)", s)
	}
	*p = policyValue(name)
	return nil
}

func (p *policyValue) Type() string { return "policy" }

// planInput collects the flags shared by generate, save and remote. A plan
// file supplies the base values; explicit flags override it.
type planInput struct {
	file     string
	name     string
	subjects []string
	weekday  float64
	weekend  float64
	maxDaily float64
	start    string
	slot     string
	policy   policyValue
}

func (in *planInput) bind(cmd *cobra.Command, withName bool) {
	f := cmd.Flags()
	f.StringVarP(&in.file, "file", "f", "", "Plan file (YAML or JSON)")
	f.StringArrayVarP(&in.subjects, "subject", "s", nil, `Subject as NAME:HOURS:DEADLINE[:IMPORTANCE], e.g. "Math:6:2025-01-09:high" (repeatable)`)
	f.Float64Var(&in.weekday, "weekday", 0, "Study hours available on a weekday")
	f.Float64Var(&in.weekend, "weekend", 0, "Study hours available on a weekend day")
	f.Float64Var(&in.maxDaily, "max-daily", 0, "Upper bound on hours in any one day (default: no extra cap)")
	f.StringVar(&in.start, "start", "", "First plannable date, YYYY-MM-DD (default: today)")
	f.StringVar(&in.slot, "slot", "", "Preferred time slot, stored with the plan")
	f.Var(&in.policy, "policy", "Allocation policy: urgency_weighted, fixed_cap or daily_mix")
	if withName {
		f.StringVar(&in.name, "name", "", "Plan name")
	}
}

// resolve builds the engine request from the plan file and flags. It also
// returns the plan name, from --name or the file.
func (in *planInput) resolve(cmd *cobra.Command, now time.Time) (service.GenerateRequest, string, error) {
	var (
		req  service.GenerateRequest
		name string
	)

	if in.file != "" {
		plan, err := importer.Load(in.file, now)
		if err != nil {
			return req, "", err
		}
		req = service.GenerateRequest{
			Subjects:  plan.Subjects,
			Capacity:  plan.Capacity,
			StartDate: plan.StartDate,
			Policy:    plan.Policy,
		}
		name = plan.Name
	}

	f := cmd.Flags()
	if in.file == "" && (!f.Changed("weekday") || !f.Changed("weekend")) {
		return req, "", fmt.Errorf("--weekday and --weekend are required without --file")
	}
	if f.Changed("weekday") || f.Changed("weekend") || f.Changed("max-daily") {
		weekday, weekend := req.Capacity.WeekdayHours, req.Capacity.WeekendHours
		if f.Changed("weekday") {
			weekday = in.weekday
		}
		if f.Changed("weekend") {
			weekend = in.weekend
		}
		prev := req.Capacity
		req.Capacity = domain.UncappedCapacity(weekday, weekend)
		req.Capacity.PreferredTimeSlot = prev.PreferredTimeSlot
		switch {
		case f.Changed("max-daily"):
			req.Capacity.MaxDailyHours = in.maxDaily
		case in.file != "" && prev.MaxDailyHours != domain.UncappedCapacity(prev.WeekdayHours, prev.WeekendHours).MaxDailyHours:
			// keep an explicit cap from the file
			req.Capacity.MaxDailyHours = prev.MaxDailyHours
		}
	}
	if f.Changed("slot") {
		req.Capacity.PreferredTimeSlot = in.slot
	}

	if len(in.subjects) > 0 {
		subjects := make([]domain.Subject, 0, len(in.subjects))
		for _, raw := range in.subjects {
			s, err := parseSubjectFlag(raw)
			if err != nil {
				return req, "", err
			}
			subjects = append(subjects, s)
		}
		req.Subjects = subjects
	}
	if len(req.Subjects) == 0 {
		return req, "", fmt.Errorf("at least one --subject or a --file with subjects is required")
	}

	if in.start != "" {
		start, err := scheduler.ParseDate(in.start)
		if err != nil {
			return req, "", fmt.Errorf("--start: %w", err)
		}
		req.StartDate = start
	}
	if req.StartDate.IsZero() {
		req.StartDate = domain.CivilDate(now)
	}
	if in.policy != "" {
		req.Policy = domain.PolicyName(in.policy)
	}
	if in.name != "" {
		name = in.name
	}

	return req, name, nil
}

// parseSubjectFlag parses NAME:HOURS:DEADLINE[:IMPORTANCE]. The name may
// itself contain colons; the trailing fields are split off from the right.
func parseSubjectFlag(raw string) (domain.Subject, error) {
	parts := strings.Split(raw, ":")
	if len(parts) < 3 {
		return domain.Subject{}, fmt.Errorf("subject %q: expected NAME:HOURS:DEADLINE[:IMPORTANCE]", raw)
	}

	importance := ""
	if last := parts[len(parts)-1]; len(parts) >= 4 && !looksLikeDate(last) {
		importance = last
		parts = parts[:len(parts)-1]
	}
	deadline := parts[len(parts)-1]
	hoursStr := parts[len(parts)-2]
	name := strings.TrimSpace(strings.Join(parts[:len(parts)-2], ":"))

	hours, err := strconv.ParseFloat(strings.TrimSpace(hoursStr), 64)
	if err != nil {
		return domain.Subject{}, fmt.Errorf("subject %q: invalid hours %q", raw, hoursStr)
	}
	due, err := scheduler.ParseDate(strings.TrimSpace(deadline))
	if err != nil {
		return domain.Subject{}, fmt.Errorf("subject %q: %w", raw, err)
	}
	imp, err := domain.ParseImportance(strings.ToLower(strings.TrimSpace(importance)))
	if err != nil {
		return domain.Subject{}, fmt.Errorf("subject %q: %w", raw, err)
	}

	return domain.Subject{Name: name, Importance: imp, Deadline: due, RequiredHours: hours}, nil
}

func looksLikeDate(s string) bool {
	_, err := scheduler.ParseDate(strings.TrimSpace(s))
	return err == nil
}
