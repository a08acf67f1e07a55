package testutil

import (
	"time"

	"github.com/alexanderramin/mindweave/internal/domain"
	"github.com/google/uuid"
)

// Monday is a fixed start date used across tests: 2025-01-06.
var Monday = time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC)

// Day returns Monday plus offset days.
func Day(offset int) time.Time {
	return Monday.AddDate(0, 0, offset)
}

// Subject options
type SubjectOption func(*domain.Subject)

func WithImportance(i domain.Importance) SubjectOption {
	return func(s *domain.Subject) {
		s.Importance = i
	}
}

func WithDeadline(d time.Time) SubjectOption {
	return func(s *domain.Subject) {
		s.Deadline = d
	}
}

func WithHours(h float64) SubjectOption {
	return func(s *domain.Subject) {
		s.RequiredHours = h
	}
}

// NewTestSubject returns a medium-importance subject needing 4 hours by
// Friday of the Monday week.
func NewTestSubject(name string, opts ...SubjectOption) domain.Subject {
	s := domain.Subject{
		Name:          name,
		Importance:    domain.ImportanceMedium,
		Deadline:      Day(4),
		RequiredHours: 4,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Plan options
type PlanOption func(*domain.StoredPlan)

func WithPlanName(name string) PlanOption {
	return func(p *domain.StoredPlan) {
		p.Name = name
	}
}

func WithCreatedAt(t time.Time) PlanOption {
	return func(p *domain.StoredPlan) {
		p.CreatedAt = t
	}
}

func WithSubjects(subjects ...domain.Subject) PlanOption {
	return func(p *domain.StoredPlan) {
		p.Subjects = subjects
	}
}

func WithSchedule(schedule domain.Schedule) PlanOption {
	return func(p *domain.StoredPlan) {
		p.Schedule = schedule
	}
}

// NewTestStoredPlan returns a feasible two-day plan for a single subject.
func NewTestStoredPlan(opts ...PlanOption) *domain.StoredPlan {
	p := &domain.StoredPlan{
		ID:        uuid.New().String(),
		Name:      "Test plan",
		StartDate: Monday,
		Policy:    domain.PolicyUrgencyWeighted,
		Capacity:  domain.CapacityConfig{WeekdayHours: 3, WeekendHours: 5, MaxDailyHours: 5, PreferredTimeSlot: "evening"},
		Subjects:  []domain.Subject{NewTestSubject("Math")},
		Schedule: domain.Schedule{
			{Date: Day(0), DayOfWeek: time.Monday, TotalHours: 3, Entries: []domain.AllocationEntry{
				{SubjectName: "Math", HoursAllocated: 3, Importance: domain.ImportanceMedium},
			}},
			{Date: Day(1), DayOfWeek: time.Tuesday, TotalHours: 1, Entries: []domain.AllocationEntry{
				{SubjectName: "Math", HoursAllocated: 1, Importance: domain.ImportanceMedium},
			}},
		},
		Feasible:  true,
		CreatedAt: time.Date(2025, 1, 6, 8, 30, 0, 0, time.UTC),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
