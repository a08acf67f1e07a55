package importer

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
)

// Plan is a converted plan file, ready for the engine.
type Plan struct {
	Name      string
	StartDate time.Time
	Policy    domain.PolicyName
	Capacity  domain.CapacityConfig
	Subjects  []domain.Subject
}

// Convert transforms a validated PlanFile into domain values. Call
// ValidatePlanFile first; Convert assumes the file is valid. today is the
// start date when the file carries none.
func Convert(file *PlanFile, today time.Time) (*Plan, error) {
	start := domain.CivilDate(today)
	if file.StartDate != "" {
		parsed, err := scheduler.ParseDate(file.StartDate)
		if err != nil {
			return nil, fmt.Errorf("parsing start_date: %w", err)
		}
		start = parsed
	}

	weekday := domain.Float64FromPtrWithDefault(0, file.Capacity.WeekdayHours)
	weekend := domain.Float64FromPtrWithDefault(0, file.Capacity.WeekendHours)
	capacity := domain.UncappedCapacity(weekday, weekend)
	capacity.MaxDailyHours = domain.Float64FromPtrWithDefault(capacity.MaxDailyHours, file.Capacity.MaxDailyHours)
	capacity.PreferredTimeSlot = file.Capacity.PreferredTimeSlot

	subjects := make([]domain.Subject, 0, len(file.Subjects))
	for _, s := range file.Subjects {
		// Cascade: subject field > file defaults > built-in default
		importance, err := domain.ParseImportance(domain.CoalesceStr(s.Importance, defaultImportance(file.Defaults)))
		if err != nil {
			return nil, fmt.Errorf("subject %q: %w", s.Name, err)
		}

		deadlineStr := domain.StrFromPtrWithDefault("", s.Deadline, defaultDeadline(file.Defaults))
		deadline, err := scheduler.ParseDate(deadlineStr)
		if err != nil {
			return nil, fmt.Errorf("subject %q: parsing deadline: %w", s.Name, err)
		}

		subjects = append(subjects, domain.Subject{
			Name:          strings.TrimSpace(s.Name),
			Importance:    importance,
			Deadline:      deadline,
			RequiredHours: domain.Float64FromPtrWithDefault(0, s.RequiredHours, defaultRequiredHours(file.Defaults)),
		})
	}

	return &Plan{
		Name:      file.Name,
		StartDate: start,
		Policy:    domain.PolicyName(file.Policy),
		Capacity:  capacity,
		Subjects:  subjects,
	}, nil
}

// FromPlan renders domain values back into a plan file with every field
// spelled out per subject.
func FromPlan(plan *Plan) *PlanFile {
	weekday := plan.Capacity.WeekdayHours
	weekend := plan.Capacity.WeekendHours
	file := &PlanFile{
		Name:   plan.Name,
		Policy: string(plan.Policy),
		Capacity: CapacityImport{
			WeekdayHours:      &weekday,
			WeekendHours:      &weekend,
			PreferredTimeSlot: plan.Capacity.PreferredTimeSlot,
		},
		Subjects: make([]SubjectImport, len(plan.Subjects)),
	}
	if !plan.StartDate.IsZero() {
		file.StartDate = plan.StartDate.Format(domain.DateLayout)
	}
	if plan.Capacity.MaxDailyHours != domain.UncappedCapacity(weekday, weekend).MaxDailyHours {
		maxDaily := plan.Capacity.MaxDailyHours
		file.Capacity.MaxDailyHours = &maxDaily
	}
	for i, s := range plan.Subjects {
		deadline := s.Deadline.Format(domain.DateLayout)
		hours := s.RequiredHours
		file.Subjects[i] = SubjectImport{
			Name:          s.Name,
			Importance:    string(s.Importance),
			Deadline:      &deadline,
			RequiredHours: &hours,
		}
	}
	return file
}

// Load reads, validates and converts a plan file in one step. Validation
// errors are joined into a single error listing every problem.
func Load(path string, today time.Time) (*Plan, error) {
	file, err := LoadPlanFile(path)
	if err != nil {
		return nil, err
	}
	if errs := ValidatePlanFile(file); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}
	return Convert(file, today)
}

// ValidationError collects every problem found in a plan file.
type ValidationError struct {
	Errors []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = "  - " + err.Error()
	}
	return fmt.Sprintf("plan file has %d error(s):\n%s", len(e.Errors), strings.Join(msgs, "\n"))
}

func defaultImportance(d *DefaultsImport) string {
	if d != nil {
		return d.Importance
	}
	return ""
}

func defaultDeadline(d *DefaultsImport) *string {
	if d != nil {
		return d.Deadline
	}
	return nil
}

func defaultRequiredHours(d *DefaultsImport) *float64 {
	if d != nil {
		return d.RequiredHours
	}
	return nil
}
