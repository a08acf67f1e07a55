package scheduler

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
)

// SubjectInput is a subject as supplied by a caller, before deadline parsing.
type SubjectInput struct {
	Name          string
	Importance    string
	Deadline      string
	RequiredHours float64
}

// ParseDate parses a calendar date. RFC3339 timestamps are accepted and
// truncated to their own calendar date.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", s)
	}
	return domain.CivilDate(t), nil
}

// ParseSubjects converts caller input into domain subjects. The first invalid
// subject rejects the whole list.
func ParseSubjects(inputs []SubjectInput) ([]domain.Subject, error) {
	subjects := make([]domain.Subject, 0, len(inputs))
	for _, in := range inputs {
		deadline, err := ParseDate(in.Deadline)
		if err != nil {
			return nil, &PlanError{
				Code:    ErrInvalidDeadline,
				Subject: in.Name,
				Message: fmt.Sprintf("subject %q: %v", in.Name, err),
			}
		}
		importance, err := domain.ParseImportance(in.Importance)
		if err != nil {
			return nil, &PlanError{
				Code:    ErrInvalidSubject,
				Subject: in.Name,
				Message: fmt.Sprintf("subject %q: %v", in.Name, err),
			}
		}
		subjects = append(subjects, domain.Subject{
			Name:          in.Name,
			Importance:    importance,
			Deadline:      deadline,
			RequiredHours: in.RequiredHours,
		})
	}
	if err := ValidateSubjects(subjects); err != nil {
		return nil, err
	}
	return subjects, nil
}

// ValidateSubjects checks names, hours and importance of parsed subjects.
func ValidateSubjects(subjects []domain.Subject) error {
	seen := make(map[string]bool, len(subjects))
	for i, s := range subjects {
		if s.Name == "" {
			return &PlanError{Code: ErrInvalidSubject, Message: fmt.Sprintf("subject %d: name is required", i)}
		}
		if seen[s.Name] {
			return &PlanError{Code: ErrInvalidSubject, Subject: s.Name, Message: fmt.Sprintf("subject %q: duplicate name", s.Name)}
		}
		seen[s.Name] = true
		if !(s.RequiredHours > 0) || math.IsInf(s.RequiredHours, 0) {
			return &PlanError{Code: ErrInvalidSubject, Subject: s.Name, Message: fmt.Sprintf("subject %q: required hours must be positive", s.Name)}
		}
		if s.Importance.Rank() > domain.ImportanceLow.Rank() {
			return &PlanError{Code: ErrInvalidSubject, Subject: s.Name, Message: fmt.Sprintf("subject %q: unknown importance %q", s.Name, s.Importance)}
		}
	}
	return nil
}

// ValidateCapacity rejects negative budgets, and a zero daily maximum while
// any subject still requires hours.
func ValidateCapacity(cfg domain.CapacityConfig, subjectCount int) error {
	fields := []struct {
		name  string
		value float64
	}{
		{"weekday_hours", cfg.WeekdayHours},
		{"weekend_hours", cfg.WeekendHours},
		{"max_daily_hours", cfg.MaxDailyHours},
	}
	for _, f := range fields {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return &PlanError{Code: ErrInvalidCapacity, Message: fmt.Sprintf("%s must be a non-negative number, got %v", f.name, f.value)}
		}
	}
	if cfg.MaxDailyHours == 0 && subjectCount > 0 {
		return &PlanError{Code: ErrInvalidCapacity, Message: "max_daily_hours is zero while subjects require hours"}
	}
	return nil
}
