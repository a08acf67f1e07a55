package importer

import (
	"fmt"
	"math"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/alexanderramin/mindweave/internal/scheduler"
)

// ValidatePlanFile checks the plan file for errors before conversion.
// Returns a slice of all validation errors found.
func ValidatePlanFile(file *PlanFile) []error {
	var errs []error

	if file.StartDate != "" {
		if _, err := scheduler.ParseDate(file.StartDate); err != nil {
			errs = append(errs, fmt.Errorf("start_date: %v", err))
		}
	}
	if file.Policy != "" && !domain.ValidPolicies[domain.PolicyName(file.Policy)] {
		errs = append(errs, fmt.Errorf("policy: invalid value %q", file.Policy))
	}

	errs = append(errs, validateCapacity(&file.Capacity)...)
	errs = append(errs, validateDefaults(file.Defaults)...)
	errs = append(errs, validateSubjects(file.Subjects, file.Defaults)...)

	return errs
}

func validateCapacity(c *CapacityImport) []error {
	var errs []error

	if c.WeekdayHours == nil {
		errs = append(errs, fmt.Errorf("capacity.weekday_hours is required"))
	}
	if c.WeekendHours == nil {
		errs = append(errs, fmt.Errorf("capacity.weekend_hours is required"))
	}
	errs = append(errs, validateHours("capacity.weekday_hours", c.WeekdayHours)...)
	errs = append(errs, validateHours("capacity.weekend_hours", c.WeekendHours)...)
	errs = append(errs, validateHours("capacity.max_daily_hours", c.MaxDailyHours)...)

	return errs
}

func validateHours(field string, v *float64) []error {
	if v == nil {
		return nil
	}
	if *v < 0 || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return []error{fmt.Errorf("%s must be a non-negative number", field)}
	}
	return nil
}

func validateDefaults(d *DefaultsImport) []error {
	if d == nil {
		return nil
	}
	var errs []error

	if _, err := domain.ParseImportance(d.Importance); err != nil {
		errs = append(errs, fmt.Errorf("defaults.importance: %v", err))
	}
	errs = append(errs, validateOptionalDate("defaults.deadline", d.Deadline)...)
	if d.RequiredHours != nil && !(*d.RequiredHours > 0) {
		errs = append(errs, fmt.Errorf("defaults.required_hours must be positive"))
	}

	return errs
}

func validateSubjects(subjects []SubjectImport, defaults *DefaultsImport) []error {
	var errs []error

	if len(subjects) == 0 {
		return []error{fmt.Errorf("subjects: at least one subject is required")}
	}

	names := make(map[string]bool)
	for i, s := range subjects {
		prefix := fmt.Sprintf("subjects[%d]", i)

		if s.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		} else if names[s.Name] {
			errs = append(errs, fmt.Errorf("%s.name: duplicate name %q", prefix, s.Name))
		} else {
			names[s.Name] = true
		}

		if _, err := domain.ParseImportance(s.Importance); err != nil {
			errs = append(errs, fmt.Errorf("%s.importance: %v", prefix, err))
		}

		if s.Deadline == nil && defaultDeadline(defaults) == nil {
			errs = append(errs, fmt.Errorf("%s.deadline is required (no defaults.deadline)", prefix))
		}
		errs = append(errs, validateOptionalDate(prefix+".deadline", s.Deadline)...)

		if s.RequiredHours == nil && defaultRequiredHours(defaults) == nil {
			errs = append(errs, fmt.Errorf("%s.required_hours is required (no defaults.required_hours)", prefix))
		} else if s.RequiredHours != nil && (!(*s.RequiredHours > 0) || math.IsInf(*s.RequiredHours, 0)) {
			errs = append(errs, fmt.Errorf("%s.required_hours must be positive", prefix))
		}
	}

	return errs
}

func validateOptionalDate(field string, s *string) []error {
	if s == nil || *s == "" {
		return nil
	}
	if _, err := scheduler.ParseDate(*s); err != nil {
		return []error{fmt.Errorf("%s: %v", field, err)}
	}
	return nil
}
